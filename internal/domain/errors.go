package domain

import "errors"

// MaxRatingsBatch es el límite duro de ids por lote que acepta el servicio de reseñas.
const MaxRatingsBatch = 100

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrBatchTooLarge       = errors.New("el lote supera el máximo de 100 ids")
	ErrUpstreamUnavailable = errors.New("servicio upstream no disponible")
)
