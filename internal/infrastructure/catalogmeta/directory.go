// Package catalogmeta tablas estáticas de presentación y navegación de categorías.
// Se cargan una sola vez al arrancar y después son de solo lectura.
package catalogmeta

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

//go:embed categories.yaml
var embeddedTables []byte

var _ ports.CategoryDirectory = (*Directory)(nil)

type document struct {
	Display map[string]entity.CategoryDisplay `yaml:"display"`
	Routes  map[string]entity.CategoryRoute   `yaml:"routes"`
}

// Directory implementación inmutable de ports.CategoryDirectory.
type Directory struct {
	display map[string]entity.CategoryDisplay
	routes  map[string]entity.CategoryRoute
}

// Load lee las tablas desde path; con path vacío usa las tablas embebidas en el binario.
func Load(path string) (*Directory, error) {
	if path == "" {
		return Parse(embeddedTables)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalogmeta: leer %s: %w", path, err)
	}
	return Parse(data)
}

// Default tablas embebidas.
func Default() (*Directory, error) {
	return Parse(embeddedTables)
}

// Parse decodifica y valida un documento YAML de tablas.
func Parse(data []byte) (*Directory, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalogmeta: yaml inválido: %w", err)
	}

	d := &Directory{
		display: make(map[string]entity.CategoryDisplay, len(doc.Display)),
		routes:  make(map[string]entity.CategoryRoute, len(doc.Routes)),
	}
	for name, disp := range doc.Display {
		k := key(name)
		if k == "" {
			return nil, fmt.Errorf("catalogmeta: display con nombre de categoría vacío")
		}
		if _, dup := d.display[k]; dup {
			return nil, fmt.Errorf("catalogmeta: display duplicado para %q", name)
		}
		d.display[k] = disp
	}
	for name, route := range doc.Routes {
		k := key(name)
		if k == "" {
			return nil, fmt.Errorf("catalogmeta: ruta con nombre de categoría vacío")
		}
		if route.Department == "" || route.CategoryName == "" || !strings.HasPrefix(route.Path, "/") {
			return nil, fmt.Errorf("catalogmeta: ruta incompleta para %q", name)
		}
		if _, dup := d.routes[k]; dup {
			return nil, fmt.Errorf("catalogmeta: ruta duplicada para %q", name)
		}
		d.routes[k] = route
	}
	return d, nil
}

func (d *Directory) Display(category string) (entity.CategoryDisplay, bool) {
	v, ok := d.display[key(category)]
	return v, ok
}

func (d *Directory) Route(category string) (entity.CategoryRoute, bool) {
	v, ok := d.routes[key(category)]
	return v, ok
}

// Len número de categorías con display y con ruta.
func (d *Directory) Len() (display, routes int) {
	return len(d.display), len(d.routes)
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
