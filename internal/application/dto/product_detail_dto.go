package dto

import "github.com/jhoicas/storefront-bff/internal/domain/entity"

// ProductDetail respuesta de la ficha de producto.
//
// Product es obligatorio; Reviews y Rating son opcionales y, si su servicio falla, llegan
// vacíos/en cero. Degraded lista las ramas que cayeron a valores por defecto.
type ProductDetail struct {
	Product  entity.Product       `json:"product"`
	Rating   entity.RatingDetails `json:"rating"`
	Reviews  ReviewList           `json:"reviews"`
	Degraded []string             `json:"degraded"`
}

// ReviewList página de reseñas para mostrar.
type ReviewList struct {
	Items      []entity.Review   `json:"items"`
	Pagination entity.Pagination `json:"pagination"`
}
