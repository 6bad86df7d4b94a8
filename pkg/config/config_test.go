package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-bff/pkg/config"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "storefront-bff", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.Upstreams.Catalog.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Upstreams.Inventory.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Upstreams.Reviews.Timeout)
	assert.Equal(t, config.TrendingSourceScored, cfg.Storefront.TrendingSource)
	assert.True(t, cfg.Storefront.VerifyCategoryCounts)
	assert.Equal(t, 4, cfg.Storefront.DefaultProductLimit)
	assert.Equal(t, 5, cfg.Storefront.DefaultCategoryLimit)
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("CATALOG_TIMEOUT", "4s")
	v.Set("INVENTORY_TIMEOUT", "2500ms")
	v.Set("REVIEWS_TIMEOUT", "5")
	v.Set("VERIFY_CATEGORY_COUNTS", "false")
	v.Set("TRENDING_SOURCE", "CATALOG")
	v.Set("REVIEWS_RPS", "12.5")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 4*time.Second, cfg.Upstreams.Catalog.Timeout)
	assert.Equal(t, 2500*time.Millisecond, cfg.Upstreams.Inventory.Timeout)
	assert.Equal(t, 5*time.Second, cfg.Upstreams.Reviews.Timeout, "un entero sin unidad son segundos")
	assert.False(t, cfg.Storefront.VerifyCategoryCounts)
	assert.Equal(t, config.TrendingSourceCatalog, cfg.Storefront.TrendingSource)
	assert.InDelta(t, 12.5, cfg.Upstreams.Reviews.RPS, 1e-9)
}

func TestFromViper_FuenteInvalida(t *testing.T) {
	v := viper.New()
	v.Set("TRENDING_SOURCE", "random")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestFromViper_LimiteMaximoNoCabeEnLote(t *testing.T) {
	v := viper.New()
	v.Set("TRENDING_MAX_LIMIT", "34")

	_, err := config.FromViper(v)
	assert.Error(t, err, "34×3 supera el lote de 100 ids")
}
