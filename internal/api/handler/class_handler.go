package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// ClassHandler 课程安排模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// List 课程安排列表，q 非空时多字段搜索
// GET /api/v1/classes
func (h *ClassHandler) List(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.ClassListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.classSvc.List(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// Options 表单下拉选项
// GET /api/v1/classes/options
func (h *ClassHandler) Options(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	opts, err := h.classSvc.Options(c.Request.Context(), sess)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, opts)
}

// CheckOverlap 提交前冲突预检，有冲突时仍返回 200
// POST /api/v1/classes/check-overlap
func (h *ClassHandler) CheckOverlap(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.OverlapCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	result, err := h.classSvc.CheckOverlap(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 创建课程安排
// POST /api/v1/classes
func (h *ClassHandler) Create(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.classSvc.Create(c.Request.Context(), sess, &req); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, nil)
}

// Update 更新课程安排
// PUT /api/v1/classes/:id
func (h *ClassHandler) Update(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindError(c, err)
		return
	}

	if err := h.classSvc.Update(c.Request.Context(), sess, id, &req); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除课程安排
// DELETE /api/v1/classes/:id
func (h *ClassHandler) Delete(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), sess, id); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		response.ErrorWithData(c, http.StatusConflict, 17001,
			"El aula ya está ocupada en ese horario", gin.H{"conflicts": conflict.Conflicts})
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 17002, "Clase no encontrada")
	case errors.Is(err, service.ErrInvalidClassIDs):
		response.BadRequest(c, 17003, "Profesor, materia, nivel, aula y día son obligatorios")
	case errors.Is(err, service.ErrInvalidClassTime):
		response.BadRequest(c, 17004, "El horario debe ser una hora exacta entre 07:00 y 21:00")
	case errors.Is(err, service.ErrClassTimeOrder):
		response.BadRequest(c, 17005, "La hora de inicio debe ser anterior a la hora de fin")
	case errors.Is(err, service.ErrClassroomNotFound):
		response.BadRequest(c, 17006, "El aula seleccionada no existe")
	case errors.Is(err, service.ErrDayNotFound):
		response.BadRequest(c, 17007, "El día seleccionado no existe")
	default:
		handleRemoteError(c, err)
	}
}
