package service

import "github.com/vega2004/modulo-hora-espacio/internal/dto"

// paginate 对已完整拉取的列表做本地分页，页码超出范围时返回空列表
func paginate[T any](items []T, req dto.PaginationRequest, defaultSize int) *dto.Page[T] {
	page := req.GetPage()
	size := req.GetPageSize(defaultSize)

	total := len(items)
	// 先比较页码再相乘，避免超大页码溢出
	start := total
	if page-1 <= total/size {
		start = min((page-1)*size, total)
	}
	end := min(start+size, total)

	list := make([]T, end-start)
	copy(list, items[start:end])

	return &dto.Page[T]{
		List:     list,
		Total:    int64(total),
		Page:     page,
		PageSize: size,
	}
}
