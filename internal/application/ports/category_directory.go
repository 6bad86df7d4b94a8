package ports

import "github.com/jhoicas/storefront-bff/internal/domain/entity"

// CategoryDirectory tablas estáticas de presentación y navegación de categorías.
// Las implementaciones son de solo lectura y se cargan una vez al arrancar el proceso.
type CategoryDirectory interface {
	// Display devuelve los metadatos de presentación; ok=false si la categoría no está mapeada.
	Display(category string) (entity.CategoryDisplay, bool)
	// Route devuelve los metadatos de navegación; ok=false si la categoría no está mapeada.
	Route(category string) (entity.CategoryRoute, bool)
}
