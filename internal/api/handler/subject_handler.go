package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// SubjectHandler 课程模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// List 课程列表，支持 q 关键字
// GET /api/v1/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.CatalogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.subjectSvc.List(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Create 创建课程
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.subjectSvc.Create(c.Request.Context(), sess, &req); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.Created(c, nil)
}

// Update 更新课程
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) Update(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.subjectSvc.Update(c.Request.Context(), sess, id, &req); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除课程
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) Delete(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), sess, id); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14001, "Materia no encontrada")
	default:
		handleRemoteError(c, err)
	}
}
