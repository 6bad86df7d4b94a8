package entity

import (
	"encoding/json"
	"math"
	"strconv"
)

// MaxRating valor máximo de una calificación (estrellas).
const MaxRating = 5.0

// RatingDistribution conteo de reseñas por número de estrellas (índice 0 = 1 estrella).
// Se serializa como objeto {"1": n, ..., "5": n}, igual que lo entrega el servicio de reseñas.
type RatingDistribution [5]int

// MarshalJSON serializa la distribución con claves "1".."5".
func (d RatingDistribution) MarshalJSON() ([]byte, error) {
	m := make(map[string]int, len(d))
	for i, n := range d {
		m[strconv.Itoa(i+1)] = n
	}
	return json.Marshal(m)
}

// UnmarshalJSON acepta claves "1".."5"; las claves fuera de rango se ignoran.
func (d *RatingDistribution) UnmarshalJSON(b []byte) error {
	var m map[string]int
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = RatingDistribution{}
	for k, n := range m {
		star, err := strconv.Atoi(k)
		if err != nil || star < 1 || star > 5 {
			continue
		}
		if n < 0 {
			n = 0
		}
		d[star-1] = n
	}
	return nil
}

// RatingDetails resumen de calificaciones de un producto (ReviewAggregate).
type RatingDetails struct {
	ProductID             string             `json:"productId"`
	AverageRating         float64            `json:"averageRating"`
	TotalReviews          int                `json:"totalReviews"`
	Distribution          RatingDistribution `json:"ratingDistribution"`
	VerifiedPurchaseCount int                `json:"verifiedPurchaseCount"`
	VerifiedPurchaseRate  float64            `json:"verifiedPurchaseRate"`
	QualityScore          float64            `json:"qualityScore"`
}

// ZeroRating resumen por defecto para un producto sin reseñas o cuando el servicio falla.
func ZeroRating(productID string) RatingDetails {
	return RatingDetails{ProductID: productID}
}

// Normalize recorta los valores a rangos válidos: promedio en [0, 5] y conteos no negativos.
func (r RatingDetails) Normalize() RatingDetails {
	switch {
	case r.AverageRating < 0 || math.IsNaN(r.AverageRating):
		r.AverageRating = 0
	case r.AverageRating > MaxRating:
		r.AverageRating = MaxRating
	}
	if r.TotalReviews < 0 {
		r.TotalReviews = 0
	}
	if r.VerifiedPurchaseCount < 0 {
		r.VerifiedPurchaseCount = 0
	}
	if r.VerifiedPurchaseRate < 0 {
		r.VerifiedPurchaseRate = 0
	}
	if r.TotalReviews == 0 {
		r.AverageRating = 0
	}
	return r
}

// RatedProduct producto con su resumen de calificaciones ya adjunto.
type RatedProduct struct {
	Product
	Rating RatingDetails `json:"rating"`
}
