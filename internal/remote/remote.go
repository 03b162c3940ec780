package remote

import (
	"context"

	"github.com/vega2004/modulo-hora-espacio/internal/session"
)

// AuthAPI 远端认证接口
type AuthAPI interface {
	Login(ctx context.Context, cred Credentials) (*LoginResult, error)
	Register(ctx context.Context, reg Registration) error
}

// TeacherAPI 远端教师接口
type TeacherAPI interface {
	ListTeachers(ctx context.Context, sess *session.Session, name string) ([]Teacher, error)
	CreateTeacher(ctx context.Context, sess *session.Session, t Teacher) error
	UpdateTeacher(ctx context.Context, sess *session.Session, id int, t Teacher) error
	DeleteTeacher(ctx context.Context, sess *session.Session, id int) error
}

// ClassroomAPI 远端教室接口
type ClassroomAPI interface {
	ListClassrooms(ctx context.Context, sess *session.Session, name string) ([]Classroom, error)
	CreateClassroom(ctx context.Context, sess *session.Session, r Classroom) error
	UpdateClassroom(ctx context.Context, sess *session.Session, id int, r Classroom) error
	DeleteClassroom(ctx context.Context, sess *session.Session, id int) error
	ClassesByBuilding(ctx context.Context, sess *session.Session, building string) ([]ClassRecord, error)
}

// SubjectAPI 远端课程接口
type SubjectAPI interface {
	ListSubjects(ctx context.Context, sess *session.Session, name string) ([]Subject, error)
	CreateSubject(ctx context.Context, sess *session.Session, s Subject) error
	UpdateSubject(ctx context.Context, sess *session.Session, id int, s Subject) error
	DeleteSubject(ctx context.Context, sess *session.Session, id int) error
}

// AcademicLevelAPI 远端学业层级接口
type AcademicLevelAPI interface {
	ListAcademicLevels(ctx context.Context, sess *session.Session, filter string) ([]AcademicLevel, error)
	CreateAcademicLevel(ctx context.Context, sess *session.Session, l AcademicLevel) error
	UpdateAcademicLevel(ctx context.Context, sess *session.Session, id int, l AcademicLevel) error
	DeleteAcademicLevel(ctx context.Context, sess *session.Session, id int) error
}

// DayAPI 远端星期接口
type DayAPI interface {
	ListDays(ctx context.Context, sess *session.Session) ([]Day, error)
}

// ClassAPI 远端课程安排接口
type ClassAPI interface {
	FilterClasses(ctx context.Context, sess *session.Session, f ClassFilter) ([]ClassRecord, error)
	QueryClasses(ctx context.Context, sess *session.Session, f ClassFilter) ([]ClassRecord, error)
	CreateClass(ctx context.Context, sess *session.Session, in ClassInput) error
	UpdateClass(ctx context.Context, sess *session.Session, id int, in ClassInput) error
	DeleteClass(ctx context.Context, sess *session.Session, id int) error
}

// Gateway 远端接口的聚合入口
type Gateway struct {
	Auth          AuthAPI
	Teacher       TeacherAPI
	Classroom     ClassroomAPI
	Subject       SubjectAPI
	AcademicLevel AcademicLevelAPI
	Day           DayAPI
	Class         ClassAPI
}

// NewGateway 以同一个 Client 实现全部接口
func NewGateway(c *Client) *Gateway {
	return &Gateway{
		Auth:          c,
		Teacher:       c,
		Classroom:     c,
		Subject:       c,
		AcademicLevel: c,
		Day:           c,
		Class:         c,
	}
}
