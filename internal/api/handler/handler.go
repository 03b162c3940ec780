package handler

import "github.com/vega2004/modulo-hora-espacio/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth          *AuthHandler
	Teacher       *TeacherHandler
	Classroom     *ClassroomHandler
	Subject       *SubjectHandler
	AcademicLevel *AcademicLevelHandler
	Catalog       *CatalogHandler
	Class         *ClassHandler
	Availability  *AvailabilityHandler
	Export        *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:          NewAuthHandler(svc.Auth),
		Teacher:       NewTeacherHandler(svc.Teacher),
		Classroom:     NewClassroomHandler(svc.Classroom),
		Subject:       NewSubjectHandler(svc.Subject),
		AcademicLevel: NewAcademicLevelHandler(svc.AcademicLevel),
		Catalog:       NewCatalogHandler(svc.Day),
		Class:         NewClassHandler(svc.Class),
		Availability:  NewAvailabilityHandler(svc.Availability),
		Export:        NewExportHandler(svc.Export),
	}
}
