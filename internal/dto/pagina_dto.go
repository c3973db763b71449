package dto

// PaginaFiltro is the common query string of paginated list endpoints.
type PaginaFiltro struct {
	Page     int    `form:"page,default=1"       validate:"min=1"`
	PageSize int    `form:"page_size,default=10" validate:"min=1,max=1000"`
	Search   string `form:"search"`
}

// Offset returns the number of rows to skip for the requested page.
func (f PaginaFiltro) Offset() int { return (f.Page - 1) * f.PageSize }

// Pagina is the paginated list envelope. Next and Previous are absolute links
// filled in by the HTTP layer; they are null on the first/last page.
type Pagina[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
