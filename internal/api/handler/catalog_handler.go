package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// CatalogHandler 星期与表单固定选项
type CatalogHandler struct {
	daySvc service.DayService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(daySvc service.DayService) *CatalogHandler {
	return &CatalogHandler{daySvc: daySvc}
}

// Days 星期列表（只读）
// GET /api/v1/days
func (h *CatalogHandler) Days(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	days, err := h.daySvc.List(c.Request.Context(), sess)
	if err != nil {
		handleRemoteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": days})
}

// Options 教室类型、楼栋、层级类型、专业的固定取值
// GET /api/v1/catalog/options
func (h *CatalogHandler) Options(c *gin.Context) {
	response.OK(c, service.CatalogDefaults())
}
