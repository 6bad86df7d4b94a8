package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fuentes de candidatos para productos en tendencia.
const (
	TrendingSourceScored  = "scored"  // pool 3× por recencia + motor de puntuación local
	TrendingSourceCatalog = "catalog" // feed de tendencia propio del catálogo
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	HTTP       HTTPConfig
	Log        LogConfig
	Upstreams  UpstreamsConfig
	Storefront StorefrontConfig
	Swagger    SwaggerConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig nivel de log (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// UpstreamConfig conexión a un servicio upstream.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration // timeout por llamada (3–5 s)
	RPS     float64       // 0 = sin límite
	Burst   int
}

// UpstreamsConfig los tres servicios detrás del BFF más la firma opcional de token de servicio.
type UpstreamsConfig struct {
	Catalog   UpstreamConfig
	Inventory UpstreamConfig
	Reviews   UpstreamConfig
	// JWTSecret si no está vacío, cada llamada lleva un Bearer token de servicio firmado con él.
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// StorefrontConfig parámetros del agregador.
type StorefrontConfig struct {
	TrendingSource       string // scored | catalog
	VerifyCategoryCounts bool   // re-verificar productCount contra el conteo por departamento
	CategoryTablesPath   string // YAML opcional que reemplaza las tablas embebidas
	DefaultProductLimit  int
	DefaultCategoryLimit int
	MaxLimit             int
	DefaultReviewPage    int
	DefaultReviewLimit   int
}

// SwaggerConfig documentación OpenAPI servida en /docs.
type SwaggerConfig struct {
	Enabled  bool
	FilePath string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, CATALOG_SERVICE_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia de Viper ya poblada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "storefront-bff"),
		},
		HTTP: HTTPConfig{
			Host:         getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:         getInt(v, "HTTP_PORT", 8080),
			ReadTimeout:  getDuration(v, "HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration(v, "HTTP_WRITE_TIMEOUT", 15*time.Second),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Upstreams: UpstreamsConfig{
			Catalog: UpstreamConfig{
				BaseURL: getString(v, "CATALOG_SERVICE_URL", "http://localhost:3001"),
				Timeout: getDuration(v, "CATALOG_TIMEOUT", 5*time.Second),
				RPS:     getFloat(v, "CATALOG_RPS", 0),
				Burst:   getInt(v, "CATALOG_BURST", 10),
			},
			Inventory: UpstreamConfig{
				BaseURL: getString(v, "INVENTORY_SERVICE_URL", "http://localhost:3002"),
				Timeout: getDuration(v, "INVENTORY_TIMEOUT", 3*time.Second),
				RPS:     getFloat(v, "INVENTORY_RPS", 0),
				Burst:   getInt(v, "INVENTORY_BURST", 10),
			},
			Reviews: UpstreamConfig{
				BaseURL: getString(v, "REVIEWS_SERVICE_URL", "http://localhost:3003"),
				Timeout: getDuration(v, "REVIEWS_TIMEOUT", 3*time.Second),
				RPS:     getFloat(v, "REVIEWS_RPS", 0),
				Burst:   getInt(v, "REVIEWS_BURST", 10),
			},
			JWTSecret:     getString(v, "UPSTREAM_JWT_SECRET", ""),
			JWTIssuer:     getString(v, "UPSTREAM_JWT_ISSUER", "storefront-bff"),
			JWTExpMinutes: getInt(v, "UPSTREAM_JWT_EXPIRATION_MINUTES", 5),
		},
		Storefront: StorefrontConfig{
			TrendingSource:       strings.ToLower(getString(v, "TRENDING_SOURCE", TrendingSourceScored)),
			VerifyCategoryCounts: getBool(v, "VERIFY_CATEGORY_COUNTS", true),
			CategoryTablesPath:   getString(v, "CATEGORY_TABLES_PATH", ""),
			DefaultProductLimit:  getInt(v, "TRENDING_PRODUCTS_LIMIT", 4),
			DefaultCategoryLimit: getInt(v, "TRENDING_CATEGORIES_LIMIT", 5),
			MaxLimit:             getInt(v, "TRENDING_MAX_LIMIT", 25),
			DefaultReviewPage:    getInt(v, "REVIEWS_DEFAULT_PAGE", 1),
			DefaultReviewLimit:   getInt(v, "REVIEWS_DEFAULT_LIMIT", 10),
		},
		Swagger: SwaggerConfig{
			Enabled:  getBool(v, "SWAGGER_ENABLED", false),
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rechaza combinaciones que el agregador no puede servir.
func (c *Config) Validate() error {
	switch c.Storefront.TrendingSource {
	case TrendingSourceScored, TrendingSourceCatalog:
	default:
		return fmt.Errorf("config: TRENDING_SOURCE inválido %q (scored|catalog)", c.Storefront.TrendingSource)
	}
	// El pool de candidatos es 3× el límite y debe caber en un solo lote de reseñas (100 ids).
	if c.Storefront.MaxLimit <= 0 || c.Storefront.MaxLimit*3 > 100 {
		return fmt.Errorf("config: TRENDING_MAX_LIMIT debe estar entre 1 y 33 (actual %d)", c.Storefront.MaxLimit)
	}
	for name, up := range map[string]UpstreamConfig{
		"CATALOG":   c.Upstreams.Catalog,
		"INVENTORY": c.Upstreams.Inventory,
		"REVIEWS":   c.Upstreams.Reviews,
	} {
		if up.BaseURL == "" {
			return fmt.Errorf("config: %s_SERVICE_URL es obligatorio", name)
		}
		if up.Timeout <= 0 {
			return fmt.Errorf("config: %s_TIMEOUT debe ser positivo", name)
		}
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return def
			}
			return f
		}
		return v.GetFloat64(key)
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return def
			}
			return b
		}
		return v.GetBool(key)
	}
	return def
}

// getDuration acepta "3s", "1500ms" o un entero interpretado como segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	switch raw := v.Get(key).(type) {
	case string:
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		if n, err := strconv.Atoi(raw); err == nil {
			return time.Duration(n) * time.Second
		}
		return def
	case int:
		return time.Duration(raw) * time.Second
	case time.Duration:
		return raw
	default:
		return def
	}
}
