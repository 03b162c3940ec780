package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// AcademicLevelHandler 学业层级模块 HTTP 处理器
type AcademicLevelHandler struct {
	levelSvc service.AcademicLevelService
}

// NewAcademicLevelHandler 创建 AcademicLevelHandler
func NewAcademicLevelHandler(levelSvc service.AcademicLevelService) *AcademicLevelHandler {
	return &AcademicLevelHandler{levelSvc: levelSvc}
}

// List 学业层级列表，支持 q 关键字
// GET /api/v1/academic-levels
func (h *AcademicLevelHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.CatalogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.levelSvc.List(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleLevelError(c, err)
		return
	}

	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Create 创建学业层级
// POST /api/v1/academic-levels
func (h *AcademicLevelHandler) Create(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.AcademicLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.levelSvc.Create(c.Request.Context(), sess, &req); err != nil {
		h.handleLevelError(c, err)
		return
	}

	response.Created(c, nil)
}

// Update 更新学业层级
// PUT /api/v1/academic-levels/:id
func (h *AcademicLevelHandler) Update(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AcademicLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.levelSvc.Update(c.Request.Context(), sess, id, &req); err != nil {
		h.handleLevelError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除学业层级
// DELETE /api/v1/academic-levels/:id
func (h *AcademicLevelHandler) Delete(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.levelSvc.Delete(c.Request.Context(), sess, id); err != nil {
		h.handleLevelError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AcademicLevelHandler) handleLevelError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAcademicLevelNotFound):
		response.NotFound(c, 15001, "Nivel académico no encontrado")
	default:
		handleRemoteError(c, err)
	}
}
