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

// ── 教室模块业务错误 ──

var (
	ErrClassroomNotFound = errors.New("教室不存在")
)

// ClassroomService 教室业务接口
type ClassroomService interface {
	List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.ClassroomResponse], error)
	Buildings(ctx context.Context, sess *session.Session) ([]string, error)
	Create(ctx context.Context, sess *session.Session, req *dto.ClassroomRequest) error
	Update(ctx context.Context, sess *session.Session, id int, req *dto.ClassroomRequest) error
	Delete(ctx context.Context, sess *session.Session, id int) error
}

type classroomService struct {
	cfg    *config.Config
	api    remote.ClassroomAPI
	logger *zap.Logger
}

// NewClassroomService 创建 ClassroomService 实例
func NewClassroomService(cfg *config.Config, api remote.ClassroomAPI, logger *zap.Logger) ClassroomService {
	return &classroomService{cfg: cfg, api: api, logger: logger}
}

func (s *classroomService) List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.ClassroomResponse], error) {
	rooms, err := s.api.ListClassrooms(ctx, sess, strings.TrimSpace(req.Search))
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) && req.Search != "" {
			return paginate([]dto.ClassroomResponse{}, req.PaginationRequest, s.cfg.Portal.PageSize), nil
		}
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.ClassroomResponse, 0, len(rooms))
	for _, r := range rooms {
		list = append(list, toClassroomResponse(r))
	}
	return paginate(list, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

// Buildings 全部教室中出现过的楼栋，按教室名同样的规则排序
func (s *classroomService) Buildings(ctx context.Context, sess *session.Session) ([]string, error) {
	rooms, err := s.api.ListClassrooms(ctx, sess, "")
	if err != nil {
		s.logger.Error("查询教室列表失败", zap.Error(err))
		return nil, err
	}
	return distinctBuildings(rooms), nil
}

func (s *classroomService) Create(ctx context.Context, sess *session.Session, req *dto.ClassroomRequest) error {
	if err := s.api.CreateClassroom(ctx, sess, toRemoteClassroom(req)); err != nil {
		s.logger.Error("创建教室失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *classroomService) Update(ctx context.Context, sess *session.Session, id int, req *dto.ClassroomRequest) error {
	if err := s.api.UpdateClassroom(ctx, sess, id, toRemoteClassroom(req)); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrClassroomNotFound
		}
		s.logger.Error("更新教室失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *classroomService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := s.api.DeleteClassroom(ctx, sess, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrClassroomNotFound
		}
		s.logger.Error("删除教室失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 辅助函数 ──

func distinctBuildings(rooms []remote.Classroom) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range rooms {
		b := strings.TrimSpace(r.Edificio)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	schedule.SortNames(out)
	return out
}

func toRemoteClassroom(req *dto.ClassroomRequest) remote.Classroom {
	capacity := 0
	if req.Capacidad != nil {
		capacity = *req.Capacidad
	}
	return remote.Classroom{
		Nombre:    strings.TrimSpace(req.Nombre),
		Tipo:      strings.TrimSpace(req.Tipo),
		Edificio:  strings.TrimSpace(req.Edificio),
		Capacidad: remote.FlexInt(capacity),
	}
}

func toClassroomResponse(r remote.Classroom) dto.ClassroomResponse {
	return dto.ClassroomResponse{
		ID:        r.ID,
		Nombre:    r.Nombre,
		Tipo:      r.Tipo,
		Edificio:  r.Edificio,
		Capacidad: int(r.Capacidad),
	}
}
