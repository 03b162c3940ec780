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

var (
	ErrSubjectNotFound = errors.New("课程不存在")
)

// SubjectService 课程（asignatura）业务接口
type SubjectService interface {
	List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.SubjectResponse], error)
	Create(ctx context.Context, sess *session.Session, req *dto.SubjectRequest) error
	Update(ctx context.Context, sess *session.Session, id int, req *dto.SubjectRequest) error
	Delete(ctx context.Context, sess *session.Session, id int) error
}

type subjectService struct {
	cfg    *config.Config
	api    remote.SubjectAPI
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(cfg *config.Config, api remote.SubjectAPI, logger *zap.Logger) SubjectService {
	return &subjectService{cfg: cfg, api: api, logger: logger}
}

func (s *subjectService) List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.SubjectResponse], error) {
	subjects, err := s.api.ListSubjects(ctx, sess, req.Search)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) && req.Search != "" {
			return paginate([]dto.SubjectResponse{}, req.PaginationRequest, s.cfg.Portal.PageSize), nil
		}
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.SubjectResponse, 0, len(subjects))
	for _, sub := range subjects {
		list = append(list, dto.SubjectResponse{ID: sub.ID, Nombre: sub.Nombre})
	}
	return paginate(list, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

func (s *subjectService) Create(ctx context.Context, sess *session.Session, req *dto.SubjectRequest) error {
	if err := s.api.CreateSubject(ctx, sess, remote.Subject{Nombre: strings.TrimSpace(req.Nombre)}); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *subjectService) Update(ctx context.Context, sess *session.Session, id int, req *dto.SubjectRequest) error {
	if err := s.api.UpdateSubject(ctx, sess, id, remote.Subject{Nombre: strings.TrimSpace(req.Nombre)}); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("更新课程失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *subjectService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := s.api.DeleteSubject(ctx, sess, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("删除课程失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}
