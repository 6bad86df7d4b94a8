// Package trending contiene el motor de puntuación de tendencias y las fuentes de candidatos.
package trending

import (
	"sort"
	"time"

	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

// Config parámetros del motor de puntuación.
type Config struct {
	RecencyWindow  time.Duration // antigüedad máxima para considerar un producto reciente
	RecentBoost    float64       // multiplicador de puntuación para productos recientes
	MinReviews     int           // reseñas mínimas de la primera etapa de calificación
	PoolMultiplier int           // tamaño del pool de candidatos respecto al límite
}

// DefaultConfig valores de producción: 30 días, ×1.5, 3 reseñas, pool 3×.
func DefaultConfig() Config {
	return Config{
		RecencyWindow:  30 * 24 * time.Hour,
		RecentBoost:    1.5,
		MinReviews:     3,
		PoolMultiplier: 3,
	}
}

// Engine motor de puntuación de tendencias. Recalcula en cada llamada; no guarda estado.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine construye el motor. now puede ser nil (usa time.Now).
func NewEngine(cfg Config, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	if cfg.PoolMultiplier <= 0 {
		cfg.PoolMultiplier = 1
	}
	return &Engine{cfg: cfg, now: now}
}

// PoolSize tamaño del pool de candidatos a pedir al catálogo para un límite dado.
func (e *Engine) PoolSize(limit int) int {
	if limit <= 0 {
		return 0
	}
	return limit * e.cfg.PoolMultiplier
}

// Score calcula la puntuación de un candidato:
//
//	base  = averageRating × totalReviews
//	score = base × RecentBoost  si el producto tiene RecencyWindow o menos de antigüedad
func (e *Engine) Score(p entity.RatedProduct, now time.Time) entity.TrendingCandidate {
	base := p.Rating.AverageRating * float64(p.Rating.TotalReviews)
	recent := !p.CreatedAt.IsZero() && now.Sub(p.CreatedAt) <= e.cfg.RecencyWindow
	score := base
	if recent {
		score = base * e.cfg.RecentBoost
	}
	return entity.TrendingCandidate{
		RatedProduct:  p,
		TrendingScore: score,
		IsRecent:      recent,
	}
}

// Select puntúa el pool y devuelve como máximo limit candidatos ordenados por puntuación.
//
// Cascada de calificación (se detiene en la primera etapa que alcanza limit):
//  1. totalReviews >= MinReviews
//  2. totalReviews > 0, acotado al tamaño del pool
//  3. el pool completo, incluidos productos sin reseñas
//
// El orden es estable: ante empate se conserva el orden original del catálogo.
func (e *Engine) Select(pool []entity.RatedProduct, limit int) []entity.TrendingCandidate {
	if limit <= 0 || len(pool) == 0 {
		return []entity.TrendingCandidate{}
	}

	now := e.now()
	scored := make([]entity.TrendingCandidate, 0, len(pool))
	for _, p := range pool {
		scored = append(scored, e.Score(p, now))
	}

	qualified := filterByReviews(scored, func(n int) bool { return n >= e.cfg.MinReviews })
	if len(qualified) < limit {
		qualified = filterByReviews(scored, func(n int) bool { return n > 0 })
		if len(qualified) > len(pool) {
			qualified = qualified[:len(pool)]
		}
	}
	if len(qualified) < limit {
		qualified = scored
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].TrendingScore > qualified[j].TrendingScore
	})

	if len(qualified) > limit {
		qualified = qualified[:limit]
	}
	return qualified
}

func filterByReviews(in []entity.TrendingCandidate, keep func(totalReviews int) bool) []entity.TrendingCandidate {
	out := make([]entity.TrendingCandidate, 0, len(in))
	for _, c := range in {
		if keep(c.Rating.TotalReviews) {
			out = append(out, c)
		}
	}
	return out
}
