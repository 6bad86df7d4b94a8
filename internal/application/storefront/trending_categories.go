package storefront

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jhoicas/storefront-bff/internal/application/dto"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
	"github.com/jhoicas/storefront-bff/pkg/settle"
)

// Valores por defecto para categorías que no están en las tablas estáticas.
const (
	DefaultCategoryImage      = "/images/categories/placeholder.jpg"
	DefaultCategoryDepartment = "All"
	defaultDescriptionFormat  = "Discover trending products in %s"
	fallbackPathPrefix        = "/products?category="
)

// GetTrendingCategories devuelve las categorías en tendencia con metadatos de presentación
// y navegación. El fallo del catálogo es fatal; la re-verificación del conteo es opcional y,
// si falla, se conserva el conteo reportado.
func (a *Aggregator) GetTrendingCategories(
	ctx context.Context,
	limit int,
	correlationID string,
) ([]dto.EnrichedCategory, error) {
	if limit <= 0 {
		return nil, invalidLimit(limit)
	}
	correlationID = a.ResolveCorrelationID(correlationID, ScopeCategoriesTrending)
	ctx = detach(ctx)

	stats, err := a.catalog.ListTrendingCategories(ctx, limit, correlationID)
	if err != nil {
		return nil, fmt.Errorf("storefront: categorías en tendencia: %w", err)
	}
	if len(stats) > limit {
		stats = stats[:limit]
	}

	out := make([]dto.EnrichedCategory, 0, len(stats))
	mapped := make([]bool, 0, len(stats))
	for _, s := range stats {
		cat, ok := a.DescribeCategory(s)
		out = append(out, cat)
		mapped = append(mapped, ok)
	}

	if a.opts.VerifyCategoryCounts {
		a.verifyCounts(ctx, out, mapped, correlationID)
	}
	return out, nil
}

// verifyCounts consulta en paralelo el conteo autoritativo de cada categoría con ruta mapeada.
// Las categorías sin mapeo no tienen departamento que consultar y conservan el conteo reportado.
func (a *Aggregator) verifyCounts(ctx context.Context, cats []dto.EnrichedCategory, mapped []bool, correlationID string) {
	idx := make([]int, 0, len(cats))
	tasks := make([]settle.Task[int], 0, len(cats))
	for i := range cats {
		if !mapped[i] {
			continue
		}
		department, category := cats[i].Department, cats[i].CategoryName
		idx = append(idx, i)
		tasks = append(tasks, func() (int, error) {
			return a.catalog.CountByCategory(ctx, department, category, correlationID)
		})
	}

	for j, res := range settle.All(tasks...) {
		i := idx[j]
		if !res.OK() {
			a.degrade(BranchCategoryCount, correlationID, fmt.Errorf("categoría %q: %w", cats[i].Name, res.Err))
			continue
		}
		if res.Value >= 0 {
			cats[i].AccurateCount = res.Value
		}
	}
}

// DescribeCategory combina la estadística del catálogo con las tablas estáticas.
// ok=false si la categoría no tiene ruta mapeada y se usó la ruta sintética.
func (a *Aggregator) DescribeCategory(s entity.CategoryStat) (dto.EnrichedCategory, bool) {
	display, hasDisplay := a.lookupDisplay(s.Name)
	if !hasDisplay {
		display = entity.CategoryDisplay{
			DisplayName: s.Name,
			Description: fmt.Sprintf(defaultDescriptionFormat, s.Name),
			Image:       DefaultCategoryImage,
		}
	}
	if display.DisplayName == "" {
		display.DisplayName = s.Name
	}
	if display.Image == "" {
		display.Image = DefaultCategoryImage
	}

	route, hasRoute := a.lookupRoute(s.Name)
	if !hasRoute {
		route = entity.CategoryRoute{
			Department:   DefaultCategoryDepartment,
			CategoryName: s.Name,
			Path:         FallbackCategoryPath(s.Name),
		}
	}

	count := s.ProductCount
	if count < 0 {
		count = 0
	}
	return dto.EnrichedCategory{
		Name:          s.Name,
		ProductCount:  count,
		AveragePrice:  s.AveragePrice,
		TrendingScore: s.TrendingScore,
		DisplayName:   display.DisplayName,
		Description:   display.Description,
		Image:         display.Image,
		Department:    route.Department,
		CategoryName:  route.CategoryName,
		AccurateCount: count,
		Path:          route.Path,
	}, hasRoute
}

// FallbackCategoryPath ruta sintética para categorías sin mapeo: /products?category=<name>.
func FallbackCategoryPath(name string) string {
	return fallbackPathPrefix + url.QueryEscape(name)
}

func (a *Aggregator) lookupDisplay(name string) (entity.CategoryDisplay, bool) {
	if a.directory == nil {
		return entity.CategoryDisplay{}, false
	}
	return a.directory.Display(name)
}

func (a *Aggregator) lookupRoute(name string) (entity.CategoryRoute, bool) {
	if a.directory == nil {
		return entity.CategoryRoute{}, false
	}
	return a.directory.Route(name)
}

// GetCategories lista los nombres de categoría del catálogo. No hay nada con qué degradar:
// el fallo del catálogo se propaga.
func (a *Aggregator) GetCategories(ctx context.Context, correlationID string) ([]string, error) {
	correlationID = a.ResolveCorrelationID(correlationID, ScopeCategoriesList)
	names, err := a.catalog.ListCategories(detach(ctx), correlationID)
	if err != nil {
		return nil, fmt.Errorf("storefront: listado de categorías: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
