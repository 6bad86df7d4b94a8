package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

var _ ports.CatalogGateway = (*CatalogGateway)(nil)

var errMissingCount = errors.New("payload sin campo count")

// CatalogGateway adaptador HTTP del servicio de catálogo.
type CatalogGateway struct {
	client *Client
}

// NewCatalogGateway construye el adaptador sobre un cliente ya configurado.
func NewCatalogGateway(client *Client) *CatalogGateway {
	return &CatalogGateway{client: client}
}

func (g *CatalogGateway) ListTrending(ctx context.Context, limit int, correlationID string) ([]entity.Product, error) {
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	return g.products(ctx, "list_trending", "/api/products/trending", q, correlationID)
}

func (g *CatalogGateway) ListRecent(ctx context.Context, limit int, correlationID string) ([]entity.Product, error) {
	q := url.Values{
		"sort":   {"created_at"},
		"order":  {"desc"},
		"limit":  {strconv.Itoa(limit)},
		"active": {"true"},
	}
	return g.products(ctx, "list_recent", "/api/products", q, correlationID)
}

func (g *CatalogGateway) products(ctx context.Context, op, path string, q url.Values, correlationID string) ([]entity.Product, error) {
	out := []entity.Product{}
	if err := g.client.Get(ctx, op, path, q, correlationID, Into(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProduct un 404 del catálogo se traduce a domain.ErrNotFound.
func (g *CatalogGateway) GetProduct(ctx context.Context, id, correlationID string) (*entity.Product, error) {
	const op = "get_product"
	var (
		p     entity.Product
		found bool
	)
	err := g.client.Get(ctx, op, "/api/products/"+url.PathEscape(id), nil, correlationID, func(data gjson.Result) error {
		if !data.IsObject() {
			return nil
		}
		found = true
		return decode(data, &p)
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (g *CatalogGateway) ListTrendingCategories(ctx context.Context, limit int, correlationID string) ([]entity.CategoryStat, error) {
	const op = "list_trending_categories"
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	out := []entity.CategoryStat{}
	if err := g.client.Get(ctx, op, "/api/categories/trending", q, correlationID, Into(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *CatalogGateway) ListCategories(ctx context.Context, correlationID string) ([]string, error) {
	const op = "list_categories"
	out := []string{}
	if err := g.client.Get(ctx, op, "/api/categories", nil, correlationID, Into(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *CatalogGateway) CountByCategory(ctx context.Context, department, category, correlationID string) (int, error) {
	const op = "count_by_category"
	q := url.Values{"department": {department}, "category": {category}}
	var count int
	err := g.client.Get(ctx, op, "/api/categories/count", q, correlationID, func(data gjson.Result) error {
		c := data.Get("count")
		if !c.Exists() {
			return errMissingCount
		}
		count = int(c.Int())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
