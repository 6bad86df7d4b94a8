package trending_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-bff/internal/application/trending"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newEngine() *trending.Engine {
	return trending.NewEngine(trending.DefaultConfig(), func() time.Time { return fixedNow })
}

// rated construye un candidato; ageDays es la antigüedad respecto a fixedNow.
func rated(id string, avg float64, reviews int, ageDays int) entity.RatedProduct {
	return entity.RatedProduct{
		Product: entity.Product{
			ID:        id,
			SKU:       "SKU-" + id,
			CreatedAt: fixedNow.Add(-time.Duration(ageDays) * 24 * time.Hour),
		},
		Rating: entity.RatingDetails{ProductID: id, AverageRating: avg, TotalReviews: reviews},
	}
}

func ids(cs []entity.TrendingCandidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

func TestScore_FormulaYBonoDeRecencia(t *testing.T) {
	e := newEngine()

	old := e.Score(rated("old", 4, 10, 90), fixedNow)
	assert.False(t, old.IsRecent)
	assert.InDelta(t, 40.0, old.TrendingScore, 1e-9)

	fresh := e.Score(rated("new", 4, 10, 5), fixedNow)
	assert.True(t, fresh.IsRecent)
	assert.InDelta(t, 60.0, fresh.TrendingScore, 1e-9)

	edge := e.Score(rated("edge", 4, 10, 30), fixedNow)
	assert.True(t, edge.IsRecent, "exactamente 30 días cuenta como reciente")

	noDate := e.Score(entity.RatedProduct{Product: entity.Product{ID: "x"}, Rating: entity.RatingDetails{AverageRating: 5, TotalReviews: 2}}, fixedNow)
	assert.False(t, noDate.IsRecent, "sin fecha de creación no hay bono")
}

func TestSelect_MismaBaseGanaElReciente(t *testing.T) {
	e := newEngine()
	pool := []entity.RatedProduct{
		rated("viejo", 4, 5, 120),
		rated("nuevo", 4, 5, 3),
	}

	out := e.Select(pool, 2)
	require.Len(t, out, 2)
	assert.Equal(t, []string{"nuevo", "viejo"}, ids(out))
	assert.Greater(t, out[0].TrendingScore, out[1].TrendingScore)
}

func TestSelect_EscenarioDoceCandidatos(t *testing.T) {
	e := newEngine()
	// 12 candidatos (3× limit=4): cinco con >=3 reseñas, cuatro con 1–2, tres sin reseñas.
	pool := []entity.RatedProduct{
		rated("q1", 4.0, 10, 60), // 40
		rated("l1", 5.0, 2, 5),   // excluido en etapa 1
		rated("q2", 3.0, 5, 60),  // 15
		rated("z1", 0, 0, 1),     // excluido
		rated("q3", 4.5, 20, 60), // 90
		rated("l2", 4.0, 1, 60),  // excluido
		rated("q4", 5.0, 3, 10),  // 22.5 (reciente)
		rated("z2", 0, 0, 1),     // excluido
		rated("l3", 3.0, 2, 60),  // excluido
		rated("q5", 2.0, 4, 60),  // 8 → quinto, se descarta
		rated("l4", 4.0, 2, 60),  // excluido
		rated("z3", 0, 0, 1),     // excluido
	}

	out := e.Select(pool, 4)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"q3", "q1", "q4", "q2"}, ids(out))
	assert.InDelta(t, 22.5, out[2].TrendingScore, 1e-9)
	assert.True(t, out[2].IsRecent)
}

func TestSelect_CascadaAmpliaAConResenas(t *testing.T) {
	e := newEngine()
	pool := []entity.RatedProduct{
		rated("z1", 0, 0, 60),
		rated("a", 4, 5, 60), // único con >=3
		rated("b", 5, 2, 60),
		rated("c", 3, 1, 60),
		rated("d", 4, 2, 60),
		rated("z2", 0, 0, 60),
	}

	out := e.Select(pool, 4)
	require.Len(t, out, 4)
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids(out), "la etapa 2 basta; los productos sin reseñas quedan fuera")
}

func TestSelect_CascadaAmpliaAlPoolCompleto(t *testing.T) {
	e := newEngine()
	pool := []entity.RatedProduct{
		rated("z1", 0, 0, 60),
		rated("a", 4, 3, 60), // 12, único con >=3
		rated("z2", 0, 0, 60),
		rated("b", 5, 1, 60), // 5
		rated("z3", 0, 0, 60),
	}

	out := e.Select(pool, 4)
	require.Len(t, out, 4, "nunca se devuelven menos de los disponibles en el pool")
	assert.Equal(t, []string{"a", "b", "z1", "z2"}, ids(out), "empates en cero conservan el orden del catálogo")
}

func TestSelect_PoolMenorQueLimite(t *testing.T) {
	e := newEngine()
	out := e.Select([]entity.RatedProduct{rated("a", 0, 0, 1), rated("b", 3, 1, 1)}, 4)
	assert.Equal(t, []string{"b", "a"}, ids(out))
}

func TestSelect_EmpatesConservanOrdenDelCatalogo(t *testing.T) {
	e := newEngine()
	pool := []entity.RatedProduct{
		rated("first", 4, 5, 60),
		rated("second", 5, 4, 60),
		rated("third", 2, 10, 60),
	}

	out := e.Select(pool, 3)
	assert.Equal(t, []string{"first", "second", "third"}, ids(out))
}

func TestSelect_LimiteCeroOPoolVacio(t *testing.T) {
	e := newEngine()
	assert.Empty(t, e.Select([]entity.RatedProduct{rated("a", 4, 4, 1)}, 0))
	assert.Empty(t, e.Select(nil, 4))
}

func TestPoolSize(t *testing.T) {
	e := newEngine()
	assert.Equal(t, 12, e.PoolSize(4))
	assert.Zero(t, e.PoolSize(0))
}
