package upstream

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/storefront-bff/internal/domain"
)

// Error fallo de una llamada upstream: transporte, timeout, respuesta no-2xx o payload
// imposible de decodificar. Siempre envuelve domain.ErrUpstreamUnavailable.
type Error struct {
	Service    string
	Operation  string
	StatusCode int // 0 si la petición no llegó a tener respuesta
	Reason     string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s.%s: HTTP %d: %s", e.Service, e.Operation, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Service, e.Operation, e.Reason)
}

// Unwrap permite errors.Is contra domain.ErrUpstreamUnavailable y contra la causa original.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrUpstreamUnavailable, e.Err}
	}
	return []error{domain.ErrUpstreamUnavailable}
}

// IsNotFound indica si err es un *Error con estado 404.
func IsNotFound(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound
}
