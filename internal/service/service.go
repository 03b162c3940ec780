package service

import (
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/repository"
	"github.com/vega2004/modulo-hora-espacio/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth          AuthService
	Teacher       TeacherService
	Classroom     ClassroomService
	Subject       SubjectService
	AcademicLevel AcademicLevelService
	Day           DayService
	Class         ClassService
	Availability  AvailabilityService
	Export        ExportService
}

// NewService 创建 Service 聚合
// blacklist 可为 nil
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	gw *remote.Gateway,
	jwtMgr *jwt.Manager,
	sealer TokenSealer,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	availability := NewAvailabilityService(cfg, gw, logger)
	return &Service{
		Auth:          NewAuthService(cfg, repo, gw.Auth, jwtMgr, sealer, blacklist, logger),
		Teacher:       NewTeacherService(cfg, gw.Teacher, logger),
		Classroom:     NewClassroomService(cfg, gw.Classroom, logger),
		Subject:       NewSubjectService(cfg, gw.Subject, logger),
		AcademicLevel: NewAcademicLevelService(cfg, gw.AcademicLevel, logger),
		Day:           NewDayService(gw.Day, logger),
		Class:         NewClassService(cfg, gw, logger),
		Availability:  availability,
		Export:        NewExportService(availability, gw.Classroom, logger),
	}
}
