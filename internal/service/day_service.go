package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
)

// DayService 星期目录
type DayService interface {
	List(ctx context.Context, sess *session.Session) ([]dto.DayResponse, error)
}

type dayService struct {
	api    remote.DayAPI
	logger *zap.Logger
}

// NewDayService 创建 DayService 实例
func NewDayService(api remote.DayAPI, logger *zap.Logger) DayService {
	return &dayService{api: api, logger: logger}
}

func (s *dayService) List(ctx context.Context, sess *session.Session) ([]dto.DayResponse, error) {
	days, err := s.api.ListDays(ctx, sess)
	if err != nil {
		s.logger.Error("查询星期列表失败", zap.Error(err))
		return nil, err
	}
	out := make([]dto.DayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DayResponse{ID: d.ID, Nombre: d.Nombre})
	}
	return out, nil
}
