package ports

// DegradationRecorder registra cada rama opcional que cayó a valores por defecto.
type DegradationRecorder interface {
	RecordDegraded(branch string)
}

// NopRecorder implementación vacía para tests o cuando no hay métricas.
type NopRecorder struct{}

// RecordDegraded no hace nada.
func (NopRecorder) RecordDegraded(string) {}
