package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoData       = errors.New("没有可导出的课程")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// reportHeaders 报表列
var reportHeaders = []string{
	"Curso", "Día", "Hora Inicio", "Hora Fin", "Profesor",
	"Aula", "Capacidad", "Grado", "Grupo", "Carrera",
}

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入。
type ExportService interface {
	// ExportReport 按报表筛选条件导出课程列表
	ExportReport(ctx context.Context, sess *session.Session, req *dto.ReportRequest) (*bytes.Buffer, string, error)
	// ExportBuildingMatrix 导出整栋楼的占用矩阵，每个工作日一个 Sheet
	ExportBuildingMatrix(ctx context.Context, sess *session.Session, building string) (*bytes.Buffer, string, error)
}

type exportService struct {
	availability AvailabilityService
	classrooms   remote.ClassroomAPI
	logger       *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(availability AvailabilityService, classrooms remote.ClassroomAPI, logger *zap.Logger) ExportService {
	return &exportService{availability: availability, classrooms: classrooms, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportReport
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportReport(ctx context.Context, sess *session.Session, req *dto.ReportRequest) (*bytes.Buffer, string, error) {
	rows, err := s.availability.ReportRows(ctx, sess, req)
	if err != nil {
		return nil, "", err
	}
	if len(rows) == 0 {
		return nil, "", ErrExportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reporte"
	f.SetSheetName("Sheet1", sheet)

	headerStyle := newHeaderStyle(f)
	for i, h := range reportHeaders {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
		f.SetColWidth(sheet, colName(i), colName(i), 16)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(reportHeaders)-1), 1), headerStyle)
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "E", "E", 28)

	for i, r := range rows {
		row := i + 2
		values := []any{
			r.Subject, r.Day, r.StartTime, r.EndTime, r.Teacher,
			r.Classroom, r.Capacity, r.Grade, r.Group, r.Career,
		}
		for j, v := range values {
			f.SetCellValue(sheet, cell(colName(j), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, "reporte_clases.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportBuildingMatrix
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Lunes" … "Viernes"
//   - 行头：时段 "07:00 - 08:00"
//   - 列头：教室名 (容量)
//   - 单元格：课程 (教师)，空闲为 "-"

func (s *exportService) ExportBuildingMatrix(ctx context.Context, sess *session.Session, building string) (*bytes.Buffer, string, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return nil, "", ErrBuildingMissing
	}

	records, err := s.classrooms.ClassesByBuilding(ctx, sess, building)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, "", ErrExportNoData
		}
		s.logger.Error("查询楼栋课程失败", zap.String("building", building), zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoData
	}
	sessions := remote.Sessions(records)

	f := excelize.NewFile()
	defer f.Close()
	headerStyle := newHeaderStyle(f)

	for i, day := range schedule.Weekdays {
		m := buildMatrix(building, day, sessions)

		if i == 0 {
			f.SetSheetName("Sheet1", day)
		} else {
			f.NewSheet(day)
		}

		f.SetCellValue(day, "A1", "Hora")
		f.SetColWidth(day, "A", "A", 16)
		for j, room := range m.Rooms {
			col := colName(j + 1)
			f.SetCellValue(day, cell(col, 1), fmt.Sprintf("%s (%d)", room.Name, room.Capacity))
			f.SetColWidth(day, col, col, 26)
		}
		f.SetCellStyle(day, "A1", cell(colName(len(m.Rooms)), 1), headerStyle)

		for r, mr := range m.Rows {
			row := r + 2
			f.SetCellValue(day, cell("A", row), mr.Slot)
			for j, c := range mr.Cells {
				text := "-"
				if !c.Free {
					text = fmt.Sprintf("%s (%s)", c.Subject, c.Teacher)
				}
				f.SetCellValue(day, cell(colName(j+1), row), text)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("edificio_%s.xlsx", building), nil
}

// ── 辅助函数 ──

func newHeaderStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	return style
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
