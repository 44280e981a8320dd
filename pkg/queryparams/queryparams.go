// Package queryparams liste uç noktalarının sıralama, filtre ve sayfalama parametreleri.
package queryparams

import "strings"

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 200
	DefaultOrderBy = "desc"
	DefaultSortBy  = "created_at"
)

// ListParams fiber QueryParser ile doldurulur.
type ListParams struct {
	SortBy  string `query:"sort_by"`
	OrderBy string `query:"order_by"`
	Name    string `query:"name"`
	// Query cevap tablosunda serbest metin araması.
	Query string `query:"q"`
	// Column/Value tek sütun üzerinde tam eşleşme filtresi.
	Column  string `query:"column"`
	Value   string `query:"value"`
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
}

// DefaultListParams varsayılan sıralama ile parametre üretir.
func DefaultListParams(sortBy string) ListParams {
	return ListParams{
		SortBy:  sortBy,
		OrderBy: DefaultOrderBy,
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
	}
}

// Validate sayfalama limitlerini ve sıralama yönünü düzeltir.
func (p *ListParams) Validate() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	p.OrderBy = strings.ToLower(strings.TrimSpace(p.OrderBy))
	if p.OrderBy != "asc" && p.OrderBy != "desc" {
		p.OrderBy = DefaultOrderBy
	}
	p.SortBy = strings.TrimSpace(p.SortBy)
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Query = strings.TrimSpace(p.Query)
	p.Column = strings.TrimSpace(p.Column)
}

// CalculateOffset sayfa için kayıt ofsetini döndürür.
func (p ListParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PerPage
}

// CalculateTotalPages toplam sayfa sayısı.
func CalculateTotalPages(totalItems int64, perPage int) int {
	if perPage <= 0 || totalItems <= 0 {
		return 0
	}
	return int((totalItems + int64(perPage) - 1) / int64(perPage))
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

type PaginatedResult struct {
	// Columns tablo görünümlerinde sütun başlıkları (ör. form alan etiketleri).
	Columns []string       `json:"columns,omitempty"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}
