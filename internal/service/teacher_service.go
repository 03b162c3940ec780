package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound = errors.New("教师不存在")
)

// TeacherService 教师业务接口
type TeacherService interface {
	List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.TeacherResponse], error)
	Create(ctx context.Context, sess *session.Session, req *dto.TeacherRequest) error
	Update(ctx context.Context, sess *session.Session, id int, req *dto.TeacherRequest) error
	Delete(ctx context.Context, sess *session.Session, id int) error
}

type teacherService struct {
	cfg    *config.Config
	api    remote.TeacherAPI
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(cfg *config.Config, api remote.TeacherAPI, logger *zap.Logger) TeacherService {
	return &teacherService{cfg: cfg, api: api, logger: logger}
}

func (s *teacherService) List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.TeacherResponse], error) {
	teachers, err := s.api.ListTeachers(ctx, sess, req.Search)
	if err != nil {
		// 按姓名搜索无结果时远端返回 404
		if errors.Is(err, pkgerrors.ErrNotFound) && req.Search != "" {
			return paginate([]dto.TeacherResponse{}, req.PaginationRequest, s.cfg.Portal.PageSize), nil
		}
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		list = append(list, toTeacherResponse(t))
	}
	return paginate(list, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

func (s *teacherService) Create(ctx context.Context, sess *session.Session, req *dto.TeacherRequest) error {
	if err := s.api.CreateTeacher(ctx, sess, toRemoteTeacher(req)); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *teacherService) Update(ctx context.Context, sess *session.Session, id int, req *dto.TeacherRequest) error {
	if err := s.api.UpdateTeacher(ctx, sess, id, toRemoteTeacher(req)); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("更新教师失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teacherService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := s.api.DeleteTeacher(ctx, sess, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("删除教师失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toRemoteTeacher(req *dto.TeacherRequest) remote.Teacher {
	return remote.Teacher{
		Nombre:    strings.TrimSpace(req.Nombre),
		ApPaterno: strings.TrimSpace(req.ApPaterno),
		ApMaterno: strings.TrimSpace(req.ApMaterno),
	}
}

func toTeacherResponse(t remote.Teacher) dto.TeacherResponse {
	return dto.TeacherResponse{
		ID:        t.ID,
		Nombre:    t.Nombre,
		ApPaterno: t.ApPaterno,
		ApMaterno: t.ApMaterno,
		FullName:  t.FullName(),
	}
}
