package dto

// Envelope cuerpo uniforme de todas las respuestas HTTP.
type Envelope struct {
	Success    bool          `json:"success"`
	Data       any           `json:"data,omitempty"`
	Message    string        `json:"message,omitempty"`
	Code       string        `json:"code,omitempty"`
	Pagination *PageResponse `json:"pagination,omitempty"`
}

// PageRequest paginación por página (1-based).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y el máximo de 100 por página.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset desplazamiento SQL de la página.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse calcula el total de páginas.
func NewPageResponse(p PageRequest, total int) *PageResponse {
	pages := 0
	if p.Limit > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return &PageResponse{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
