package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/service"
	"github.com/vega2004/modulo-hora-espacio/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReport 按报表条件导出 Excel
// GET /api/v1/export/classes?course=...&teacher=...
func (h *ExportHandler) ExportReport(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		handleBindError(c, err)
		return
	}

	buf, filename, err := h.exportSvc.ExportReport(c.Request.Context(), sess, &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// ExportBuildingMatrix 导出整栋楼一周的占用矩阵
// GET /api/v1/export/buildings/:building/matrix
func (h *ExportHandler) ExportBuildingMatrix(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportBuildingMatrix(c.Request.Context(), sess, c.Param("building"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeXLSX(c, buf, filename)
}

// writeXLSX 设置下载响应头并写出文件
func writeXLSX(c *gin.Context, buf *bytes.Buffer, filename string) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoData):
		response.NotFound(c, 16001, "No hay clases para exportar")
	case errors.Is(err, service.ErrBuildingMissing):
		response.BadRequest(c, 16002, "Debes indicar un edificio")
	case errors.Is(err, service.ErrInvalidClassTime):
		response.BadRequest(c, 16003, "El horario debe ser una hora exacta entre 07:00 y 21:00")
	case errors.Is(err, service.ErrClassTimeOrder):
		response.BadRequest(c, 16004, "La hora de inicio debe ser anterior a la hora de fin")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handleRemoteError(c, err)
	}
}
