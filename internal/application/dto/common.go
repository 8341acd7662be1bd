package dto

// Límites de página para los listados (entradas, productos, historial de
// importaciones). Los listados de mermas se consultan desde dispositivos de
// tienda, por eso el tope es bajo.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage normaliza la página: aplica el límite por defecto y acota al
// máximo permitido.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP con código corto (p.ej. NOT_FOUND,
// EXPORT_FAILED) para que el cliente móvil pueda mapear mensajes.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
