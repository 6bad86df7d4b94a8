package dto

// LimitRequest parámetro de límite para listados del storefront.
type LimitRequest struct {
	Limit int `query:"limit"`
}

// Normalize aplica el valor por defecto si Limit quedó sin informar y lo acota a max.
func (r *LimitRequest) Normalize(def, max int) {
	if r.Limit <= 0 {
		r.Limit = def
	}
	if max > 0 && r.Limit > max {
		r.Limit = max
	}
}

// PageRequest paginación para listados.
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto si Page/Limit quedaron sin informar y acota Limit a max.
func (p *PageRequest) Normalize(defPage, defLimit, max int) {
	if p.Page <= 0 {
		p.Page = defPage
	}
	if p.Limit <= 0 {
		p.Limit = defLimit
	}
	if max > 0 && p.Limit > max {
		p.Limit = max
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}
