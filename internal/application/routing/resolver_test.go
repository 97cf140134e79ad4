package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve(t *testing.T) {
	t.Run("resolves the full target", func(t *testing.T) {
		f := newResolverFixture()
		f.expectHappyPath()

		target, err := f.resolver.Resolve(context.Background(), testProduct, testDeployment, testVersion)
		require.NoError(t, err)
		assert.Equal(t, testProduct, target.Product.Name)
		assert.Equal(t, testDeployment, target.Deployment.Name)
		assert.Equal(t, testVersion, target.Version.Name)
		assert.Equal(t, testWorkspace, target.Workspace.Name)
	})

	t.Run("missing product fails the whole resolution", func(t *testing.T) {
		f := newResolverFixture()
		f.products.On("FindByName", mock.Anything, testProduct).Return(nil, shared.ErrNotFound)
		f.deployments.On("FindByName", mock.Anything, testProduct, testDeployment).Return(fixtureDeployment(), nil)
		f.versions.On("FindByName", mock.Anything, testProduct, testDeployment, testVersion).Return(fixtureVersion(), nil)

		_, err := f.resolver.Resolve(context.Background(), testProduct, testDeployment, testVersion)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)

		// the workspace lookup must never run after a failed join
		f.workspaces.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("missing version fails the whole resolution", func(t *testing.T) {
		f := newResolverFixture()
		f.products.On("FindByName", mock.Anything, testProduct).Return(fixtureProduct(), nil)
		f.deployments.On("FindByName", mock.Anything, testProduct, testDeployment).Return(fixtureDeployment(), nil)
		f.versions.On("FindByName", mock.Anything, testProduct, testDeployment, testVersion).Return(nil, shared.ErrNotFound)

		_, err := f.resolver.Resolve(context.Background(), testProduct, testDeployment, testVersion)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		f.workspaces.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	})

	t.Run("dangling workspace reference is not found", func(t *testing.T) {
		f := newResolverFixture()
		f.products.On("FindByName", mock.Anything, testProduct).Return(fixtureProduct(), nil)
		f.deployments.On("FindByName", mock.Anything, testProduct, testDeployment).Return(fixtureDeployment(), nil)
		f.versions.On("FindByName", mock.Anything, testProduct, testDeployment, testVersion).Return(fixtureVersion(), nil)
		f.workspaces.On("FindByName", mock.Anything, testWorkspace).Return(nil, shared.ErrNotFound)

		_, err := f.resolver.Resolve(context.Background(), testProduct, testDeployment, testVersion)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("repository failures pass through unmapped", func(t *testing.T) {
		f := newResolverFixture()
		dbErr := errors.New("connection reset")
		f.products.On("FindByName", mock.Anything, testProduct).Return(nil, dbErr)
		f.deployments.On("FindByName", mock.Anything, testProduct, testDeployment).Return(fixtureDeployment(), nil)
		f.versions.On("FindByName", mock.Anything, testProduct, testDeployment, testVersion).Return(fixtureVersion(), nil)

		_, err := f.resolver.Resolve(context.Background(), testProduct, testDeployment, testVersion)
		assert.ErrorIs(t, err, dbErr)
	})
}
