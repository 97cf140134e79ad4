package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	valid := []string{"sentiment", "Sentiment-v2", "a", "p_1"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "-lead", "_lead", "has space", "semi;colon", "x/y",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"}
	for _, name := range invalid {
		assert.Error(t, ValidateName(name), name)
	}
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("sentiment", "alice@example.com", ProductTypeTrainYourOwnModel)
	require.NoError(t, err)
	assert.Equal(t, "sentiment", p.Name)
	assert.Equal(t, ProductTypeTrainYourOwnModel, p.Type)
	assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")

	_, err = NewProduct("bad name", "alice@example.com", ProductTypeTrainYourOwnModel)
	assert.Error(t, err)
}

func TestNewDeployment(t *testing.T) {
	d, err := NewDeployment("sentiment", "eu")
	require.NoError(t, err)
	assert.Equal(t, "sentiment", d.ProductName)
	assert.Equal(t, "eu", d.Name)

	_, err = NewDeployment("sentiment", "")
	assert.Error(t, err)
}
