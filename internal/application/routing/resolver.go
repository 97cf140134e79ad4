package routing

import (
	"context"
	"errors"

	"github.com/modelserve/gateway/internal/domain/catalog"
	"github.com/modelserve/gateway/internal/domain/shared"
	"github.com/modelserve/gateway/internal/domain/workspace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Target is the fully resolved backend binding for one coordinate
// triple: the metadata records plus the workspace the version routes
// to. Derived per request and never cached across requests.
type Target struct {
	Product    *catalog.Product
	Deployment *catalog.Deployment
	Version    *catalog.APIVersion
	Workspace  *workspace.AMLWorkspace
}

// Resolver turns coordinate names into a backend target. The three
// catalog lookups are independent reads and run concurrently; the
// workspace lookup follows because it depends on the version record.
type Resolver struct {
	products    catalog.ProductRepository
	deployments catalog.DeploymentRepository
	versions    catalog.APIVersionRepository
	workspaces  workspace.Repository
	logger      *zap.Logger
}

// NewResolver creates a new coordinate resolver
func NewResolver(
	products catalog.ProductRepository,
	deployments catalog.DeploymentRepository,
	versions catalog.APIVersionRepository,
	workspaces workspace.Repository,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		products:    products,
		deployments: deployments,
		versions:    versions,
		workspaces:  workspaces,
		logger:      logger,
	}
}

// Resolve looks up the product, deployment and version concurrently
// and joins fail-fast: any miss aborts the whole resolution with
// NOT_FOUND before a single backend call is issued.
func (r *Resolver) Resolve(ctx context.Context, productName, deploymentName, versionName string) (*Target, error) {
	target := &Target{}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		product, err := r.products.FindByName(groupCtx, productName)
		if err != nil {
			return notFoundAs(err, "product")
		}
		target.Product = product
		return nil
	})
	group.Go(func() error {
		deployment, err := r.deployments.FindByName(groupCtx, productName, deploymentName)
		if err != nil {
			return notFoundAs(err, "deployment")
		}
		target.Deployment = deployment
		return nil
	})
	group.Go(func() error {
		version, err := r.versions.FindByName(groupCtx, productName, deploymentName, versionName)
		if err != nil {
			return notFoundAs(err, "API version")
		}
		target.Version = version
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	ws, err := r.workspaces.FindByName(ctx, target.Version.WorkspaceName)
	if err != nil {
		r.logger.Error("version references unknown workspace",
			zap.String("version", versionName),
			zap.String("workspace", target.Version.WorkspaceName),
			zap.Error(err))
		return nil, notFoundAs(err, "workspace")
	}
	target.Workspace = ws

	return target, nil
}

func notFoundAs(err error, entity string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFound(entity)
	}
	return err
}
