package entity

import "time"

// Review reseña individual de un producto, solo para mostrar en la ficha.
type Review struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"productId"`
	Author           string    `json:"author"`
	Rating           int       `json:"rating"`
	Title            string    `json:"title"`
	Comment          string    `json:"comment"`
	VerifiedPurchase bool      `json:"verifiedPurchase"`
	HelpfulVotes     int       `json:"helpfulVotes"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Pagination metadatos de página de un listado remoto.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ReviewPage página de reseñas devuelta por el servicio de reseñas.
type ReviewPage struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}
