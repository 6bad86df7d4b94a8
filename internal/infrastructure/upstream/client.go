// Package upstream adaptadores HTTP hacia los servicios de catálogo, inventario y reseñas.
//
// Todas las respuestas llegan en el sobre {"success": bool, "data": ..., "error": {...}};
// el payload se extrae con gjson y se decodifica a las entidades del dominio.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/jhoicas/storefront-bff/internal/infrastructure/metrics"
	"github.com/jhoicas/storefront-bff/pkg/jwt"
	"github.com/jhoicas/storefront-bff/pkg/logger"
)

const (
	// HeaderCorrelationID cabecera con la que se propaga el id de correlación.
	HeaderCorrelationID = "X-Correlation-ID"

	maxResponseBytes = 4 << 20
	defaultTimeout   = 5 * time.Second
)

// Observer recibe una observación por llamada (ver metrics.Metrics).
type Observer interface {
	ObserveUpstream(service, operation, outcome string, d time.Duration)
}

// ClientConfig configuración de un cliente hacia un único servicio.
type ClientConfig struct {
	Service string
	BaseURL string
	Timeout time.Duration

	// RPS límite de peticiones por segundo hacia este servicio; 0 = sin límite.
	RPS   float64
	Burst int

	// JWTSecret si no está vacío cada llamada lleva un token de servicio Bearer.
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// Client cliente HTTP de un servicio upstream. Sin reintentos: cada fallo se devuelve tal cual.
type Client struct {
	cfg        ClientConfig
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	observer   Observer
	log        *logger.Logger
}

// NewClient construye el cliente. observer y log pueden ser nil.
func NewClient(cfg ClientConfig, log *logger.Logger, observer Observer) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.JWTExpMinutes <= 0 {
		cfg.JWTExpMinutes = 5
	}
	if log == nil {
		log = logger.Nop()
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RPS) + 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	return &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		// El timeout efectivo lo impone el context de cada llamada; este es solo un tope de red.
		httpClient: &http.Client{Timeout: cfg.Timeout + time.Second},
		limiter:    limiter,
		observer:   observer,
		log:        log.Component("upstream." + cfg.Service),
	}
}

// Decoder interpreta el campo data del sobre. Su error cuenta como fallo de la llamada,
// también en las métricas.
type Decoder func(data gjson.Result) error

// Into decodifica data como JSON en v. data ausente o null deja v sin tocar.
func Into(v any) Decoder {
	return func(data gjson.Result) error { return decode(data, v) }
}

// Get ejecuta un GET y entrega el campo data del sobre a dec (puede ser nil).
func (c *Client) Get(ctx context.Context, operation, path string, query url.Values, correlationID string, dec Decoder) error {
	return c.do(ctx, operation, http.MethodGet, path, query, nil, correlationID, dec)
}

// Post ejecuta un POST con cuerpo JSON y entrega el campo data del sobre a dec.
func (c *Client) Post(ctx context.Context, operation, path string, body any, correlationID string, dec Decoder) error {
	return c.do(ctx, operation, http.MethodPost, path, nil, body, correlationID, dec)
}

func (c *Client) do(
	ctx context.Context,
	operation, method, path string,
	query url.Values,
	body any,
	correlationID string,
	dec Decoder,
) (err error) {
	start := time.Now()
	outcome := metrics.OutcomeOK
	defer func() {
		if c.observer != nil {
			c.observer.ObserveUpstream(c.cfg.Service, operation, outcome, time.Since(start))
		}
		if err != nil {
			c.log.Debug().
				Err(err).
				Str("operation", operation).
				Str("outcome", outcome).
				Str("correlation_id", correlationID).
				Dur("elapsed", time.Since(start)).
				Msg("llamada upstream fallida")
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if c.limiter != nil {
		if werr := c.limiter.Wait(ctx); werr != nil {
			outcome = metrics.OutcomeTransport
			return c.fail(operation, 0, "límite de peticiones", werr)
		}
	}

	req, err := c.newRequest(ctx, method, path, query, body, correlationID)
	if err != nil {
		outcome = metrics.OutcomeTransport
		return c.fail(operation, 0, "crear request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = metrics.OutcomeTransport
		if ctx.Err() != nil {
			return c.fail(operation, 0, "timeout o cancelación", ctx.Err())
		}
		return c.fail(operation, 0, "llamada HTTP fallida", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		outcome = metrics.OutcomeTransport
		return c.fail(operation, resp.StatusCode, "leer respuesta", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeError
		if resp.StatusCode == http.StatusNotFound {
			outcome = metrics.OutcomeNotFound
		}
		return c.fail(operation, resp.StatusCode, envelopeMessage(raw, resp.Status), nil)
	}

	data, err := unwrapEnvelope(raw)
	if err != nil {
		outcome = metrics.OutcomeError
		return c.fail(operation, resp.StatusCode, err.Error(), nil)
	}
	if dec != nil {
		if derr := dec(data); derr != nil {
			outcome = metrics.OutcomeError
			return c.fail(operation, resp.StatusCode, "payload inválido", derr)
		}
	}
	return nil
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
	correlationID string,
) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("serializar body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if correlationID != "" {
		req.Header.Set(HeaderCorrelationID, correlationID)
	}
	if c.cfg.JWTSecret != "" {
		token, err := jwt.GenerateServiceToken(c.cfg.JWTSecret, c.cfg.JWTIssuer, c.cfg.Service, correlationID, c.cfg.JWTExpMinutes)
		if err != nil {
			return nil, fmt.Errorf("token de servicio: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) fail(operation string, status int, reason string, cause error) *Error {
	return &Error{
		Service:    c.cfg.Service,
		Operation:  operation,
		StatusCode: status,
		Reason:     reason,
		Err:        cause,
	}
}

var errNotJSON = errors.New("respuesta no es JSON válido")

// unwrapEnvelope valida el sobre y devuelve data. Un cuerpo sin campo success se acepta
// como payload directo.
func unwrapEnvelope(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, errNotJSON
	}
	doc := gjson.ParseBytes(raw)
	success := doc.Get("success")
	if !success.Exists() {
		return doc, nil
	}
	if !success.Bool() {
		return gjson.Result{}, fmt.Errorf("success=false: %s", envelopeMessage(raw, "sin detalle"))
	}
	return doc.Get("data"), nil
}

// envelopeMessage extrae error.message (o error si es texto) del sobre; fallback si no hay.
func envelopeMessage(raw []byte, fallback string) string {
	if !gjson.ValidBytes(raw) {
		return fallback
	}
	e := gjson.GetBytes(raw, "error")
	switch {
	case e.IsObject() && e.Get("message").String() != "":
		return e.Get("message").String()
	case e.Type == gjson.String && e.String() != "":
		return e.String()
	}
	if m := gjson.GetBytes(raw, "message"); m.Type == gjson.String && m.String() != "" {
		return m.String()
	}
	return fallback
}

// decode decodifica un gjson.Result a v. data ausente o null deja v sin tocar.
func decode(data gjson.Result, v any) error {
	if !data.Exists() || data.Type == gjson.Null {
		return nil
	}
	return json.Unmarshal([]byte(data.Raw), v)
}
