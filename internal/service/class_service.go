package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 课程安排模块业务错误 ──

var (
	ErrClassNotFound    = errors.New("课程安排不存在")
	ErrDayNotFound      = errors.New("星期不存在")
	ErrInvalidClassTime = errors.New("时间必须为 07:00 到 21:00 之间的整点")
	ErrClassTimeOrder   = errors.New("开始时间必须早于结束时间")
	ErrInvalidClassIDs  = errors.New("教师、课程、学业层级、教室和星期均为必填")
	ErrScheduleConflict = errors.New("该教室在此时间段已有课程")
)

// searchConcurrency 多字段搜索的并发上限
const searchConcurrency = 4

// ConflictError 提交前预检发现的冲突，errors.Is(err, ErrScheduleConflict) 为真
type ConflictError struct {
	Conflicts []dto.ClassResponse
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return ErrScheduleConflict.Error()
	}
	c := e.Conflicts[0]
	return fmt.Sprintf("%s: %s %s %s-%s", ErrScheduleConflict, c.Subject, c.Day, c.StartTime, c.EndTime)
}

func (e *ConflictError) Unwrap() error { return ErrScheduleConflict }

// ClassService 课程安排业务接口
type ClassService interface {
	List(ctx context.Context, sess *session.Session, req *dto.ClassListRequest) (*dto.Page[dto.ClassResponse], error)
	Options(ctx context.Context, sess *session.Session) (*dto.ClassOptionsResponse, error)
	CheckOverlap(ctx context.Context, sess *session.Session, req *dto.OverlapCheckRequest) (*dto.OverlapCheckResponse, error)
	Create(ctx context.Context, sess *session.Session, req *dto.ClassRequest) error
	Update(ctx context.Context, sess *session.Session, id int, req *dto.ClassRequest) error
	Delete(ctx context.Context, sess *session.Session, id int) error
}

type classService struct {
	cfg    *config.Config
	gw     *remote.Gateway
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(cfg *config.Config, gw *remote.Gateway, logger *zap.Logger) ClassService {
	return &classService{cfg: cfg, gw: gw, logger: logger}
}

// ────────────────────── List / Search ──────────────────────

func (s *classService) List(ctx context.Context, sess *session.Session, req *dto.ClassListRequest) (*dto.Page[dto.ClassResponse], error) {
	term := strings.TrimSpace(req.Search)

	var (
		records []remote.ClassRecord
		err     error
	)
	if term == "" {
		records, err = s.gw.Class.FilterClasses(ctx, sess, remote.ClassFilter{})
		if err != nil {
			s.logger.Error("查询课程安排失败", zap.Error(err))
			return nil, err
		}
	} else {
		records = s.search(ctx, sess, term)
	}

	list := make([]dto.ClassResponse, 0, len(records))
	for _, r := range records {
		list = append(list, toClassResponse(r))
	}
	return paginate(list, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

// fieldSearch 单个字段的搜索条件，name 为远端字段名
type fieldSearch struct {
	name   string
	filter remote.ClassFilter
}

// searchFilters 每个可搜索字段各一个过滤条件，grado/capacidad 仅在关键字为整数时参与
func searchFilters(term string) []fieldSearch {
	filters := []fieldSearch{
		{"nombreCurso", remote.ClassFilter{NombreCurso: term}},
		{"nombreProfesor", remote.ClassFilter{NombreProfesor: term}},
		{"dia", remote.ClassFilter{Dia: term}},
		{"grupo", remote.ClassFilter{Grupo: term}},
		{"carrera", remote.ClassFilter{Carrera: term}},
		{"aula", remote.ClassFilter{Aula: term}},
		{"horaInicio", remote.ClassFilter{HoraInicio: term}},
		{"horaFin", remote.ClassFilter{HoraFin: term}},
	}
	if n, err := strconv.Atoi(term); err == nil {
		grado, capacidad := n, n
		filters = append(filters,
			fieldSearch{"grado", remote.ClassFilter{Grado: &grado}},
			fieldSearch{"capacidad", remote.ClassFilter{Capacidad: &capacidad}},
		)
	}
	return filters
}

// search 按字段并发查询后合并，按 ID 去重并保留首次出现的顺序
// 单个字段查询失败只记录日志并跳过
func (s *classService) search(ctx context.Context, sess *session.Session, term string) []remote.ClassRecord {
	filters := searchFilters(term)
	results := make([][]remote.ClassRecord, len(filters))

	var g errgroup.Group
	g.SetLimit(searchConcurrency)
	for i, fs := range filters {
		g.Go(func() error {
			recs, err := s.gw.Class.FilterClasses(ctx, sess, fs.filter)
			if err != nil {
				s.logger.Warn("字段搜索失败，已跳过", zap.String("field", fs.name), zap.Error(err))
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[int]struct{})
	merged := make([]remote.ClassRecord, 0)
	for _, recs := range results {
		for _, r := range recs {
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}

// ────────────────────── Options ──────────────────────

func (s *classService) Options(ctx context.Context, sess *session.Session) (*dto.ClassOptionsResponse, error) {
	var (
		teachers   []remote.Teacher
		subjects   []remote.Subject
		levels     []remote.AcademicLevel
		classrooms []remote.Classroom
		days       []remote.Day
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { teachers, err = s.gw.Teacher.ListTeachers(gctx, sess, ""); return })
	g.Go(func() (err error) { subjects, err = s.gw.Subject.ListSubjects(gctx, sess, ""); return })
	g.Go(func() (err error) { levels, err = s.gw.AcademicLevel.ListAcademicLevels(gctx, sess, ""); return })
	g.Go(func() (err error) { classrooms, err = s.gw.Classroom.ListClassrooms(gctx, sess, ""); return })
	g.Go(func() (err error) { days, err = s.gw.Day.ListDays(gctx, sess); return })
	if err := g.Wait(); err != nil {
		s.logger.Error("加载课程安排选项失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.ClassOptionsResponse{
		Teachers:       make([]dto.OptionItem, 0, len(teachers)),
		Subjects:       make([]dto.OptionItem, 0, len(subjects)),
		AcademicLevels: make([]dto.OptionItem, 0, len(levels)),
		Classrooms:     make([]dto.OptionItem, 0, len(classrooms)),
		Days:           make([]dto.OptionItem, 0, len(days)),
		Hours:          schedule.HourBoundaries(),
	}
	for _, t := range teachers {
		resp.Teachers = append(resp.Teachers, dto.OptionItem{ID: t.ID, Label: t.FullName()})
	}
	for _, sub := range subjects {
		resp.Subjects = append(resp.Subjects, dto.OptionItem{ID: sub.ID, Label: sub.Nombre})
	}
	for _, l := range levels {
		label := l.Label()
		if l.Tipo != "" {
			label = l.Tipo + " " + label
		}
		resp.AcademicLevels = append(resp.AcademicLevels, dto.OptionItem{ID: l.ID, Label: label})
	}
	for _, c := range classrooms {
		resp.Classrooms = append(resp.Classrooms, dto.OptionItem{ID: c.ID, Label: c.Nombre})
	}
	for _, d := range days {
		resp.Days = append(resp.Days, dto.OptionItem{ID: d.ID, Label: d.Nombre})
	}
	return resp, nil
}

// ────────────────────── CheckOverlap ──────────────────────

func (s *classService) CheckOverlap(ctx context.Context, sess *session.Session, req *dto.OverlapCheckRequest) (*dto.OverlapCheckResponse, error) {
	conflicts, err := s.conflicts(ctx, sess, &req.ClassRequest, req.ExcludeID)
	if err != nil {
		return nil, err
	}
	return &dto.OverlapCheckResponse{Conflict: len(conflicts) > 0, Conflicts: conflicts}, nil
}

// ────────────────────── Create / Update ──────────────────────

func (s *classService) Create(ctx context.Context, sess *session.Session, req *dto.ClassRequest) error {
	conflicts, err := s.conflicts(ctx, sess, req, 0)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	if err := s.gw.Class.CreateClass(ctx, sess, toClassInput(req)); err != nil {
		s.logger.Error("创建课程安排失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *classService) Update(ctx context.Context, sess *session.Session, id int, req *dto.ClassRequest) error {
	conflicts, err := s.conflicts(ctx, sess, req, id)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}

	if err := s.gw.Class.UpdateClass(ctx, sess, id, toClassInput(req)); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("更新课程安排失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *classService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := s.gw.Class.DeleteClass(ctx, sess, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrClassNotFound
		}
		s.logger.Error("删除课程安排失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// conflicts 校验请求并返回同教室同一天的重叠课程（仅作提示，远端结果为准）
func (s *classService) conflicts(ctx context.Context, sess *session.Session, req *dto.ClassRequest, excludeID int) ([]dto.ClassResponse, error) {
	if err := validateClassRequest(req); err != nil {
		return nil, err
	}

	// 1. 解析教室名与星期名
	var (
		classrooms []remote.Classroom
		days       []remote.Day
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { classrooms, err = s.gw.Classroom.ListClassrooms(gctx, sess, ""); return })
	g.Go(func() (err error) { days, err = s.gw.Day.ListDays(gctx, sess); return })
	if err := g.Wait(); err != nil {
		s.logger.Error("加载教室或星期失败", zap.Error(err))
		return nil, err
	}

	room, ok := findClassroom(classrooms, req.ClassroomID)
	if !ok {
		return nil, ErrClassroomNotFound
	}
	day, ok := findDay(days, req.DayID)
	if !ok {
		return nil, ErrDayNotFound
	}

	// 2. 拉取该教室已有课程
	existing, err := s.gw.Class.FilterClasses(ctx, sess, remote.ClassFilter{Aula: room.Nombre})
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("查询教室课程失败", zap.String("aula", room.Nombre), zap.Error(err))
		return nil, err
	}

	candidate := schedule.Session{
		RoomID: room.ID,
		Room:   room.Nombre,
		DayID:  day.ID,
		Day:    day.Nombre,
		Start:  req.StartTime,
		End:    req.EndTime,
	}

	byID := make(map[int]remote.ClassRecord, len(existing))
	for _, r := range existing {
		byID[r.ID] = r
	}

	hits := schedule.Conflicts(remote.Sessions(existing), candidate, excludeID)
	out := make([]dto.ClassResponse, 0, len(hits))
	for _, h := range hits {
		out = append(out, toClassResponse(byID[h.ID]))
	}
	return out, nil
}

// ── 辅助函数 ──

func validateClassRequest(req *dto.ClassRequest) error {
	if req.TeacherID <= 0 || req.SubjectID <= 0 || req.AcademicLevelID <= 0 || req.ClassroomID <= 0 || req.DayID <= 0 {
		return ErrInvalidClassIDs
	}
	if !schedule.OnGrid(req.StartTime) || !schedule.OnGrid(req.EndTime) {
		return ErrInvalidClassTime
	}
	start, _ := schedule.ParseClock(req.StartTime)
	end, _ := schedule.ParseClock(req.EndTime)
	if start >= end {
		return ErrClassTimeOrder
	}
	return nil
}

func findClassroom(rooms []remote.Classroom, id int) (remote.Classroom, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return remote.Classroom{}, false
}

func findDay(days []remote.Day, id int) (remote.Day, bool) {
	for _, d := range days {
		if d.ID == id {
			return d, true
		}
	}
	return remote.Day{}, false
}

func toClassInput(req *dto.ClassRequest) remote.ClassInput {
	return remote.ClassInput{
		IDProfesor:       req.TeacherID,
		IDAsignatura:     req.SubjectID,
		IDNivelAcademico: req.AcademicLevelID,
		IDAula:           req.ClassroomID,
		HoraInicio:       req.StartTime,
		HoraFin:          req.EndTime,
		IDDia:            req.DayID,
	}
}

func toClassResponse(r remote.ClassRecord) dto.ClassResponse {
	return dto.ClassResponse{
		ID:              r.ID,
		TeacherID:       r.IDProfesor,
		SubjectID:       r.IDAsignatura,
		AcademicLevelID: r.IDNivelAcademico,
		ClassroomID:     r.IDAula,
		DayID:           r.IDDia,
		Subject:         r.Asignatura,
		Teacher:         r.Profesor,
		Classroom:       r.Aula,
		Day:             r.Dia,
		StartTime:       r.HoraInicio,
		EndTime:         r.HoraFin,
		Capacity:        int(r.Capacidad),
		Grade:           int(r.Grado),
		Group:           r.Grupo,
		Career:          r.Carrera,
		Level:           r.Level(),
	}
}
