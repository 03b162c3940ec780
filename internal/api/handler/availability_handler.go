package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

// AvailabilityHandler 空闲查询与报表 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// Buildings 可查询的楼栋
// GET /api/v1/availability/buildings
func (h *AvailabilityHandler) Buildings(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	buildings, err := h.availabilitySvc.Buildings(c.Request.Context(), sess)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": buildings})
}

// Classrooms 楼内有课程记录的教室
// GET /api/v1/availability/buildings/:building/classrooms
func (h *AvailabilityHandler) Classrooms(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	rooms, err := h.availabilitySvc.Classrooms(c.Request.Context(), sess, c.Param("building"))
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// Week 单个教室的周占用表
// GET /api/v1/availability/buildings/:building/classrooms/:id/week
func (h *AvailabilityHandler) Week(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	roomID, err := strconv.Atoi(c.Param("id"))
	if err != nil || roomID <= 0 {
		response.BadRequest(c, 10001, "ID inválido")
		return
	}

	week, err := h.availabilitySvc.ClassroomWeek(c.Request.Context(), sess, c.Param("building"), roomID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, week)
}

// Matrix 整栋楼某一天的占用矩阵，day 缺省为周一
// GET /api/v1/availability/buildings/:building/matrix?day=Lunes
func (h *AvailabilityHandler) Matrix(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	m, err := h.availabilitySvc.BuildingMatrix(c.Request.Context(), sess, c.Param("building"), c.Query("day"))
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, m)
}

// Report 按条件筛选的课程报表
// GET /api/v1/reports/classes
func (h *AvailabilityHandler) Report(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	page, err := h.availabilitySvc.Report(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OKPage(c, page.List, page.Total, page.Page, page.PageSize)
}

func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBuildingMissing):
		response.BadRequest(c, 18001, "Debes indicar un edificio")
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 18002, "El día debe ser de lunes a viernes")
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 18003, "El aula no pertenece a este edificio")
	case errors.Is(err, service.ErrInvalidClassTime):
		response.BadRequest(c, 18004, "El horario debe ser una hora exacta entre 07:00 y 21:00")
	case errors.Is(err, service.ErrClassTimeOrder):
		response.BadRequest(c, 18005, "La hora de inicio debe ser anterior a la hora de fin")
	default:
		handleRemoteError(c, err)
	}
}
