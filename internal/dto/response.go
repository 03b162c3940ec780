package dto

// ── 分页 ──

// PaginationRequest 通用分页参数（查询串）
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 页码，默认 1
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 每页数量，未指定时使用 def
func (p *PaginationRequest) GetPageSize(def int) int {
	if p.PageSize <= 0 {
		return def
	}
	return p.PageSize
}

// Page 本地分页结果
type Page[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}
