package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 空闲查询模块业务错误 ──

var (
	ErrInvalidDay      = errors.New("星期必须为周一至周五")
	ErrBuildingMissing = errors.New("楼栋不能为空")
)

// defaultMatrixDay 未指定星期时矩阵展示周一
const defaultMatrixDay = "Lunes"

// AvailabilityService 教室空闲查询与课程报表
type AvailabilityService interface {
	Buildings(ctx context.Context, sess *session.Session) ([]string, error)
	Classrooms(ctx context.Context, sess *session.Session, building string) ([]dto.ClassroomSummary, error)
	ClassroomWeek(ctx context.Context, sess *session.Session, building string, roomID int) (*dto.ClassroomWeekResponse, error)
	BuildingMatrix(ctx context.Context, sess *session.Session, building, day string) (*dto.BuildingMatrixResponse, error)
	Report(ctx context.Context, sess *session.Session, req *dto.ReportRequest) (*dto.Page[dto.ClassResponse], error)
	// ReportRows 报表的全部行（不分页），供导出使用
	ReportRows(ctx context.Context, sess *session.Session, req *dto.ReportRequest) ([]dto.ClassResponse, error)
}

type availabilityService struct {
	cfg    *config.Config
	gw     *remote.Gateway
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(cfg *config.Config, gw *remote.Gateway, logger *zap.Logger) AvailabilityService {
	return &availabilityService{cfg: cfg, gw: gw, logger: logger}
}

func (s *availabilityService) Buildings(ctx context.Context, sess *session.Session) ([]string, error) {
	rooms, err := s.gw.Classroom.ListClassrooms(ctx, sess, "")
	if err != nil {
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, err
	}
	return distinctBuildings(rooms), nil
}

// Classrooms 楼内有课程的教室，按教室 ID 去重并保留首次出现的顺序
func (s *availabilityService) Classrooms(ctx context.Context, sess *session.Session, building string) ([]dto.ClassroomSummary, error) {
	records, err := s.buildingClasses(ctx, sess, building)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]struct{})
	out := make([]dto.ClassroomSummary, 0)
	for _, r := range records {
		if _, ok := seen[r.IDAula]; ok {
			continue
		}
		seen[r.IDAula] = struct{}{}
		out = append(out, dto.ClassroomSummary{ID: r.IDAula, Name: r.Aula})
	}
	return out, nil
}

// ClassroomWeek 单个教室的周视图：行是时段，列是周一至周五
func (s *availabilityService) ClassroomWeek(ctx context.Context, sess *session.Session, building string, roomID int) (*dto.ClassroomWeekResponse, error) {
	records, err := s.buildingClasses(ctx, sess, building)
	if err != nil {
		return nil, err
	}

	var (
		roomName string
		found    bool
		sessions []schedule.Session
	)
	for _, r := range records {
		if r.IDAula != roomID {
			continue
		}
		if !found {
			roomName, found = r.Aula, true
		}
		cs := r.Session()
		cs.Room = roomName
		sessions = append(sessions, cs)
	}
	if !found {
		return nil, ErrClassroomNotFound
	}

	idx := schedule.BuildIndex(sessions)
	resp := &dto.ClassroomWeekResponse{
		Building:    strings.TrimSpace(building),
		ClassroomID: roomID,
		Classroom:   roomName,
		Days:        append([]string(nil), schedule.Weekdays...),
		Rows:        make([]dto.WeekRow, 0, schedule.LastHour-schedule.FirstHour),
	}
	for _, slot := range schedule.Slots() {
		row := dto.WeekRow{
			Slot:  slot.Label(),
			Range: slot.Range(),
			Cells: make([]dto.WeekCell, 0, len(schedule.Weekdays)),
		}
		for _, day := range schedule.Weekdays {
			c := dto.WeekCell{Slot: slot.Label(), Day: day, Free: true}
			if hit, ok := idx.Lookup(roomName, day, slot); ok {
				c.Free = false
				c.ClassID = hit.ID
				c.Subject = hit.Subject
				c.Teacher = hit.Teacher
			}
			row.Cells = append(row.Cells, c)
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp, nil
}

// BuildingMatrix 整栋楼某一天的占用矩阵，day 为空时取周一
func (s *availabilityService) BuildingMatrix(ctx context.Context, sess *session.Session, building, day string) (*dto.BuildingMatrixResponse, error) {
	if strings.TrimSpace(day) == "" {
		day = defaultMatrixDay
	}
	canonical, ok := schedule.CanonicalDay(day)
	if !ok {
		return nil, ErrInvalidDay
	}

	records, err := s.buildingClasses(ctx, sess, building)
	if err != nil {
		return nil, err
	}
	return buildMatrix(strings.TrimSpace(building), canonical, remote.Sessions(records)), nil
}

func (s *availabilityService) Report(ctx context.Context, sess *session.Session, req *dto.ReportRequest) (*dto.Page[dto.ClassResponse], error) {
	rows, err := s.ReportRows(ctx, sess, req)
	if err != nil {
		return nil, err
	}
	return paginate(rows, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

func (s *availabilityService) ReportRows(ctx context.Context, sess *session.Session, req *dto.ReportRequest) ([]dto.ClassResponse, error) {
	if err := validateReportTimes(req); err != nil {
		return nil, err
	}

	records, err := s.gw.Class.QueryClasses(ctx, sess, reportFilter(req))
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return []dto.ClassResponse{}, nil
		}
		s.logger.Error("查询课程报表失败", zap.Error(err))
		return nil, err
	}

	rows := make([]dto.ClassResponse, 0, len(records))
	for _, r := range records {
		// 远端不支持按容量筛选，本地精确匹配
		if req.Capacity != nil && int(r.Capacidad) != *req.Capacity {
			continue
		}
		rows = append(rows, toClassResponse(r))
	}
	return rows, nil
}

// buildingClasses 楼内全部课程，楼内无课程时返回空列表
func (s *availabilityService) buildingClasses(ctx context.Context, sess *session.Session, building string) ([]remote.ClassRecord, error) {
	building = strings.TrimSpace(building)
	if building == "" {
		return nil, ErrBuildingMissing
	}
	records, err := s.gw.Classroom.ClassesByBuilding(ctx, sess, building)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return []remote.ClassRecord{}, nil
		}
		s.logger.Error("查询楼栋课程失败", zap.String("building", building), zap.Error(err))
		return nil, err
	}
	return records, nil
}

// ── 辅助函数 ──

// buildMatrix 列为楼内全部教室（不限当天），行为 14 个时段
func buildMatrix(building, day string, sessions []schedule.Session) *dto.BuildingMatrixResponse {
	names := schedule.DistinctRooms(sessions)
	caps := schedule.CapacityByRoom(sessions)
	idx := schedule.BuildIndex(sessions)

	resp := &dto.BuildingMatrixResponse{
		Building: building,
		Day:      day,
		Rooms:    make([]dto.MatrixRoom, 0, len(names)),
		Rows:     make([]dto.MatrixRow, 0, schedule.LastHour-schedule.FirstHour),
	}
	for _, name := range names {
		resp.Rooms = append(resp.Rooms, dto.MatrixRoom{Name: name, Capacity: caps[name]})
	}
	for _, slot := range schedule.Slots() {
		row := dto.MatrixRow{Slot: slot.Range(), Cells: make([]dto.MatrixCell, 0, len(names))}
		for _, name := range names {
			c := dto.MatrixCell{Room: name, Free: true}
			if hit, ok := idx.Lookup(name, day, slot); ok {
				c.Free = false
				c.Subject = hit.Subject
				c.Teacher = hit.Teacher
			}
			row.Cells = append(row.Cells, c)
		}
		resp.Rows = append(resp.Rows, row)
	}
	return resp
}

func validateReportTimes(req *dto.ReportRequest) error {
	if req.StartTime != "" && !schedule.OnGrid(req.StartTime) {
		return ErrInvalidClassTime
	}
	if req.EndTime != "" && !schedule.OnGrid(req.EndTime) {
		return ErrInvalidClassTime
	}
	if req.StartTime != "" && req.EndTime != "" {
		start, _ := schedule.ParseClock(req.StartTime)
		end, _ := schedule.ParseClock(req.EndTime)
		if start >= end {
			return ErrClassTimeOrder
		}
	}
	return nil
}

// reportFilter 空字符串字段由 omitempty 丢弃
func reportFilter(req *dto.ReportRequest) remote.ClassFilter {
	f := remote.ClassFilter{
		NombreCurso:    strings.TrimSpace(req.Course),
		NombreProfesor: strings.TrimSpace(req.Teacher),
		Dia:            strings.TrimSpace(req.Day),
		Grupo:          strings.TrimSpace(req.Group),
		Carrera:        strings.TrimSpace(req.Career),
		Aula:           strings.TrimSpace(req.Classroom),
		HoraInicio:     req.StartTime,
		HoraFin:        req.EndTime,
	}
	if req.Grade != nil {
		grade := *req.Grade
		f.Grado = &grade
	}
	return f
}
