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
	ErrAcademicLevelNotFound = errors.New("学业层级不存在")
)

// 表单下拉的固定取值
var (
	classroomTypes = []string{"Aula", "Laboratorio"}
	buildingCodes  = []string{"A", "B", "C", "D", "E"}
	levelTypes     = []string{"Bachillerato", "Licenciatura"}
	careers        = []string{"Administración", "Ingeniería Industrial", "Médico Cirujano"}
)

// CatalogDefaults 目录表单的固定选项
func CatalogDefaults() *dto.CatalogOptions {
	return &dto.CatalogOptions{
		ClassroomTypes: append([]string(nil), classroomTypes...),
		Buildings:      append([]string(nil), buildingCodes...),
		LevelTypes:     append([]string(nil), levelTypes...),
		Careers:        append([]string(nil), careers...),
	}
}

// AcademicLevelService 学业层级业务接口
type AcademicLevelService interface {
	List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.AcademicLevelResponse], error)
	Create(ctx context.Context, sess *session.Session, req *dto.AcademicLevelRequest) error
	Update(ctx context.Context, sess *session.Session, id int, req *dto.AcademicLevelRequest) error
	Delete(ctx context.Context, sess *session.Session, id int) error
}

type academicLevelService struct {
	cfg    *config.Config
	api    remote.AcademicLevelAPI
	logger *zap.Logger
}

// NewAcademicLevelService 创建 AcademicLevelService 实例
func NewAcademicLevelService(cfg *config.Config, api remote.AcademicLevelAPI, logger *zap.Logger) AcademicLevelService {
	return &academicLevelService{cfg: cfg, api: api, logger: logger}
}

func (s *academicLevelService) List(ctx context.Context, sess *session.Session, req *dto.CatalogListRequest) (*dto.Page[dto.AcademicLevelResponse], error) {
	levels, err := s.api.ListAcademicLevels(ctx, sess, req.Search)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) && req.Search != "" {
			return paginate([]dto.AcademicLevelResponse{}, req.PaginationRequest, s.cfg.Portal.PageSize), nil
		}
		s.logger.Error("查询学业层级失败", zap.Error(err))
		return nil, err
	}

	list := make([]dto.AcademicLevelResponse, 0, len(levels))
	for _, l := range levels {
		list = append(list, toAcademicLevelResponse(l))
	}
	return paginate(list, req.PaginationRequest, s.cfg.Portal.PageSize), nil
}

func (s *academicLevelService) Create(ctx context.Context, sess *session.Session, req *dto.AcademicLevelRequest) error {
	if err := s.api.CreateAcademicLevel(ctx, sess, toRemoteAcademicLevel(req)); err != nil {
		s.logger.Error("创建学业层级失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *academicLevelService) Update(ctx context.Context, sess *session.Session, id int, req *dto.AcademicLevelRequest) error {
	if err := s.api.UpdateAcademicLevel(ctx, sess, id, toRemoteAcademicLevel(req)); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrAcademicLevelNotFound
		}
		s.logger.Error("更新学业层级失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *academicLevelService) Delete(ctx context.Context, sess *session.Session, id int) error {
	if err := s.api.DeleteAcademicLevel(ctx, sess, id); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return ErrAcademicLevelNotFound
		}
		s.logger.Error("删除学业层级失败", zap.Int("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toRemoteAcademicLevel(req *dto.AcademicLevelRequest) remote.AcademicLevel {
	return remote.AcademicLevel{
		Tipo:    strings.TrimSpace(req.Tipo),
		Grado:   remote.FlexInt(req.Grado),
		Grupo:   strings.TrimSpace(req.Grupo),
		Carrera: strings.TrimSpace(req.Carrera),
	}
}

func toAcademicLevelResponse(l remote.AcademicLevel) dto.AcademicLevelResponse {
	return dto.AcademicLevelResponse{
		ID:      l.ID,
		Tipo:    l.Tipo,
		Grado:   int(l.Grado),
		Grupo:   l.Grupo,
		Carrera: l.Carrera,
		Label:   l.Label(),
	}
}
