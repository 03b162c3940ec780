package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// ClassroomHandler 教室模块 HTTP 处理器
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler 创建 ClassroomHandler
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// List 教室列表，支持 q 关键字
// GET /api/v1/classrooms
func (h *ClassroomHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.CatalogListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.classroomSvc.List(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Create 创建教室
// POST /api/v1/classrooms
func (h *ClassroomHandler) Create(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.classroomSvc.Create(c.Request.Context(), sess, &req); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, nil)
}

// Update 更新教室
// PUT /api/v1/classrooms/:id
func (h *ClassroomHandler) Update(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.classroomSvc.Update(c.Request.Context(), sess, id, &req); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除教室
// DELETE /api/v1/classrooms/:id
func (h *ClassroomHandler) Delete(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.classroomSvc.Delete(c.Request.Context(), sess, id); err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, nil)
}

// Buildings 现有教室所在楼栋，去重排序
// GET /api/v1/buildings
func (h *ClassroomHandler) Buildings(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	buildings, err := h.classroomSvc.Buildings(c.Request.Context(), sess)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, gin.H{"list": buildings})
}

func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 13001, "Aula no encontrada")
	default:
		handleRemoteError(c, err)
	}
}
