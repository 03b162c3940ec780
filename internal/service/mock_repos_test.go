package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/model"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 测试配置 ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-tests",
			AccessTokenTTL: 2 * time.Hour,
			SessionTTL:     8 * time.Hour,
		},
		Portal: config.PortalConfig{PageSize: 10},
	}
}

func testSession() *session.Session {
	return &session.Session{
		ID:          "11111111-1111-1111-1111-111111111111",
		Token:       "remote-token",
		DisplayName: "Ana",
		Email:       "ana@uni.mx",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.PortalSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.PortalSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, sess *model.PortalSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sess
	m.sessions[sess.SessionID] = &cp
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.PortalSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Revoke(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok && s.RevokedAt == nil {
		t := at
		s.RevokedAt = &t
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock 黑名单 ──

type mockBlacklist struct {
	mu  sync.Mutex
	ttl map[string]time.Duration
	err error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{ttl: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.ttl[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ttl[jti]
	return ok, nil
}

// ── Mock 远端 API ──

// mockRemote 内存版远端 API，实现 remote 包的全部接口
type mockRemote struct {
	mu sync.Mutex

	loginResult *remote.LoginResult
	loginErr    error
	registerErr error
	registered  []remote.Registration

	teachers   []remote.Teacher
	classrooms []remote.Classroom
	subjects   []remote.Subject
	levels     []remote.AcademicLevel
	days       []remote.Day
	classes    []remote.ClassRecord

	// errs 按方法名注入错误
	errs map[string]error
	// filterHook 非 nil 时决定单次 FilterClasses 是否失败
	filterHook func(f remote.ClassFilter) error

	filters       []remote.ClassFilter
	queries       []remote.ClassFilter
	buildingCalls []string
	created       []remote.ClassInput
	updated       map[int]remote.ClassInput
	deleted       []int
	sessions      []*session.Session
}

func newMockRemote() *mockRemote {
	return &mockRemote{
		errs:    make(map[string]error),
		updated: make(map[int]remote.ClassInput),
	}
}

func (m *mockRemote) gateway() *remote.Gateway {
	return &remote.Gateway{
		Auth:          m,
		Teacher:       m,
		Classroom:     m,
		Subject:       m,
		AcademicLevel: m,
		Day:           m,
		Class:         m,
	}
}

func (m *mockRemote) record(sess *session.Session, method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append(m.sessions, sess)
	return m.errs[method]
}

// ── 认证 ──

func (m *mockRemote) Login(_ context.Context, _ remote.Credentials) (*remote.LoginResult, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResult, nil
}

func (m *mockRemote) Register(_ context.Context, reg remote.Registration) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, reg)
	return nil
}

// ── 目录 ──

func (m *mockRemote) ListTeachers(_ context.Context, sess *session.Session, name string) ([]remote.Teacher, error) {
	if err := m.record(sess, "ListTeachers"); err != nil {
		return nil, err
	}
	out := make([]remote.Teacher, 0)
	for _, t := range m.teachers {
		if name == "" || schedule.ContainsFold(t.FullName(), name) {
			out = append(out, t)
		}
	}
	if name != "" && len(out) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

func (m *mockRemote) CreateTeacher(_ context.Context, sess *session.Session, t remote.Teacher) error {
	if err := m.record(sess, "CreateTeacher"); err != nil {
		return err
	}
	t.ID = len(m.teachers) + 1
	m.teachers = append(m.teachers, t)
	return nil
}

func (m *mockRemote) UpdateTeacher(_ context.Context, sess *session.Session, id int, t remote.Teacher) error {
	if err := m.record(sess, "UpdateTeacher"); err != nil {
		return err
	}
	for i := range m.teachers {
		if m.teachers[i].ID == id {
			t.ID = id
			m.teachers[i] = t
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) DeleteTeacher(_ context.Context, sess *session.Session, id int) error {
	if err := m.record(sess, "DeleteTeacher"); err != nil {
		return err
	}
	for i := range m.teachers {
		if m.teachers[i].ID == id {
			m.teachers = append(m.teachers[:i], m.teachers[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) ListClassrooms(_ context.Context, sess *session.Session, name string) ([]remote.Classroom, error) {
	if err := m.record(sess, "ListClassrooms"); err != nil {
		return nil, err
	}
	out := make([]remote.Classroom, 0)
	for _, r := range m.classrooms {
		if name == "" || schedule.ContainsFold(r.Nombre, name) {
			out = append(out, r)
		}
	}
	if name != "" && len(out) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

func (m *mockRemote) CreateClassroom(_ context.Context, sess *session.Session, r remote.Classroom) error {
	if err := m.record(sess, "CreateClassroom"); err != nil {
		return err
	}
	r.ID = len(m.classrooms) + 1
	m.classrooms = append(m.classrooms, r)
	return nil
}

func (m *mockRemote) UpdateClassroom(_ context.Context, sess *session.Session, id int, r remote.Classroom) error {
	if err := m.record(sess, "UpdateClassroom"); err != nil {
		return err
	}
	for i := range m.classrooms {
		if m.classrooms[i].ID == id {
			r.ID = id
			m.classrooms[i] = r
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) DeleteClassroom(_ context.Context, sess *session.Session, id int) error {
	if err := m.record(sess, "DeleteClassroom"); err != nil {
		return err
	}
	for i := range m.classrooms {
		if m.classrooms[i].ID == id {
			m.classrooms = append(m.classrooms[:i], m.classrooms[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

// ClassesByBuilding 教室名以楼栋代号开头（"A-101" 属于楼栋 A）
func (m *mockRemote) ClassesByBuilding(_ context.Context, sess *session.Session, building string) ([]remote.ClassRecord, error) {
	if err := m.record(sess, "ClassesByBuilding"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.buildingCalls = append(m.buildingCalls, building)
	m.mu.Unlock()

	out := make([]remote.ClassRecord, 0)
	for _, c := range m.classes {
		if strings.HasPrefix(c.Aula, building+"-") {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

func (m *mockRemote) ListSubjects(_ context.Context, sess *session.Session, name string) ([]remote.Subject, error) {
	if err := m.record(sess, "ListSubjects"); err != nil {
		return nil, err
	}
	out := make([]remote.Subject, 0)
	for _, s := range m.subjects {
		if name == "" || schedule.ContainsFold(s.Nombre, name) {
			out = append(out, s)
		}
	}
	if name != "" && len(out) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

func (m *mockRemote) CreateSubject(_ context.Context, sess *session.Session, s remote.Subject) error {
	if err := m.record(sess, "CreateSubject"); err != nil {
		return err
	}
	s.ID = len(m.subjects) + 1
	m.subjects = append(m.subjects, s)
	return nil
}

func (m *mockRemote) UpdateSubject(_ context.Context, sess *session.Session, id int, s remote.Subject) error {
	if err := m.record(sess, "UpdateSubject"); err != nil {
		return err
	}
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			s.ID = id
			m.subjects[i] = s
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) DeleteSubject(_ context.Context, sess *session.Session, id int) error {
	if err := m.record(sess, "DeleteSubject"); err != nil {
		return err
	}
	for i := range m.subjects {
		if m.subjects[i].ID == id {
			m.subjects = append(m.subjects[:i], m.subjects[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) ListAcademicLevels(_ context.Context, sess *session.Session, filter string) ([]remote.AcademicLevel, error) {
	if err := m.record(sess, "ListAcademicLevels"); err != nil {
		return nil, err
	}
	out := make([]remote.AcademicLevel, 0)
	for _, l := range m.levels {
		if filter == "" || schedule.ContainsFold(l.Tipo+" "+l.Label(), filter) {
			out = append(out, l)
		}
	}
	if filter != "" && len(out) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

func (m *mockRemote) CreateAcademicLevel(_ context.Context, sess *session.Session, l remote.AcademicLevel) error {
	if err := m.record(sess, "CreateAcademicLevel"); err != nil {
		return err
	}
	l.ID = len(m.levels) + 1
	m.levels = append(m.levels, l)
	return nil
}

func (m *mockRemote) UpdateAcademicLevel(_ context.Context, sess *session.Session, id int, l remote.AcademicLevel) error {
	if err := m.record(sess, "UpdateAcademicLevel"); err != nil {
		return err
	}
	for i := range m.levels {
		if m.levels[i].ID == id {
			l.ID = id
			m.levels[i] = l
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) DeleteAcademicLevel(_ context.Context, sess *session.Session, id int) error {
	if err := m.record(sess, "DeleteAcademicLevel"); err != nil {
		return err
	}
	for i := range m.levels {
		if m.levels[i].ID == id {
			m.levels = append(m.levels[:i], m.levels[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) ListDays(_ context.Context, sess *session.Session) ([]remote.Day, error) {
	if err := m.record(sess, "ListDays"); err != nil {
		return nil, err
	}
	return append([]remote.Day(nil), m.days...), nil
}

// ── 课程安排 ──

func (m *mockRemote) FilterClasses(_ context.Context, sess *session.Session, f remote.ClassFilter) ([]remote.ClassRecord, error) {
	if err := m.record(sess, "FilterClasses"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.filters = append(m.filters, f)
	hook := m.filterHook
	m.mu.Unlock()
	if hook != nil {
		if err := hook(f); err != nil {
			return nil, err
		}
	}
	return m.match(f)
}

func (m *mockRemote) QueryClasses(_ context.Context, sess *session.Session, f remote.ClassFilter) ([]remote.ClassRecord, error) {
	if err := m.record(sess, "QueryClasses"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.queries = append(m.queries, f)
	m.mu.Unlock()
	return m.match(f)
}

func (m *mockRemote) CreateClass(_ context.Context, sess *session.Session, in remote.ClassInput) error {
	if err := m.record(sess, "CreateClass"); err != nil {
		return err
	}
	m.created = append(m.created, in)
	return nil
}

func (m *mockRemote) UpdateClass(_ context.Context, sess *session.Session, id int, in remote.ClassInput) error {
	if err := m.record(sess, "UpdateClass"); err != nil {
		return err
	}
	for _, c := range m.classes {
		if c.ID == id {
			m.updated[id] = in
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

func (m *mockRemote) DeleteClass(_ context.Context, sess *session.Session, id int) error {
	if err := m.record(sess, "DeleteClass"); err != nil {
		return err
	}
	for _, c := range m.classes {
		if c.ID == id {
			m.deleted = append(m.deleted, id)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

// match 字符串字段按包含匹配（忽略大小写与重音），整数字段精确匹配；无结果时返回 404
func (m *mockRemote) match(f remote.ClassFilter) ([]remote.ClassRecord, error) {
	text := func(field, want string) bool {
		return want == "" || schedule.ContainsFold(field, want)
	}
	out := make([]remote.ClassRecord, 0)
	for _, c := range m.classes {
		if !text(c.Asignatura, f.NombreCurso) || !text(c.Profesor, f.NombreProfesor) ||
			!text(c.Dia, f.Dia) || !text(c.Grupo, f.Grupo) || !text(c.Carrera, f.Carrera) ||
			!text(c.Aula, f.Aula) || !text(c.HoraInicio, f.HoraInicio) || !text(c.HoraFin, f.HoraFin) {
			continue
		}
		if f.Grado != nil && int(c.Grado) != *f.Grado {
			continue
		}
		if f.Capacidad != nil && int(c.Capacidad) != *f.Capacidad {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 && f != (remote.ClassFilter{}) {
		return nil, pkgerrors.ErrNotFound
	}
	return out, nil
}

// ── 测试数据 ──

func seedRemote() *mockRemote {
	m := newMockRemote()
	m.teachers = []remote.Teacher{
		{ID: 1, Nombre: "Laura", ApPaterno: "Gómez", ApMaterno: "Ruiz"},
		{ID: 2, Nombre: "Pedro", ApPaterno: "Sánchez", ApMaterno: "Luna"},
	}
	m.subjects = []remote.Subject{{ID: 1, Nombre: "Cálculo"}, {ID: 2, Nombre: "Física"}}
	m.levels = []remote.AcademicLevel{
		{ID: 1, Tipo: "Licenciatura", Grado: 3, Grupo: "B", Carrera: "Ingeniería Industrial"},
	}
	m.classrooms = []remote.Classroom{
		{ID: 10, Nombre: "A-101", Tipo: "Aula", Edificio: "A", Capacidad: 40},
		{ID: 11, Nombre: "A-102", Tipo: "Laboratorio", Edificio: "A", Capacidad: 25},
		{ID: 20, Nombre: "B-201", Tipo: "Aula", Edificio: "B", Capacidad: 30},
	}
	m.days = []remote.Day{
		{ID: 1, Nombre: "Lunes"}, {ID: 2, Nombre: "Martes"}, {ID: 3, Nombre: "Miércoles"},
		{ID: 4, Nombre: "Jueves"}, {ID: 5, Nombre: "Viernes"},
	}
	m.classes = []remote.ClassRecord{
		{
			ID: 100, IDProfesor: 1, IDAsignatura: 1, IDNivelAcademico: 1, IDAula: 10, IDDia: 1,
			Profesor: "Laura Gómez Ruiz", Asignatura: "Cálculo", Grado: 3, Grupo: "B",
			Carrera: "Ingeniería Industrial", Aula: "A-101", Dia: "Lunes",
			HoraInicio: "08:00", HoraFin: "10:00", Capacidad: 40,
		},
		{
			ID: 101, IDProfesor: 2, IDAsignatura: 2, IDNivelAcademico: 1, IDAula: 11, IDDia: 3,
			Profesor: "Pedro Sánchez Luna", Asignatura: "Física", Grado: 3, Grupo: "B",
			Carrera: "Ingeniería Industrial", Aula: "A-102", Dia: "Miércoles",
			HoraInicio: "12:00", HoraFin: "14:00", Capacidad: 25,
		},
		{
			ID: 102, IDProfesor: 1, IDAsignatura: 2, IDNivelAcademico: 1, IDAula: 20, IDDia: 1,
			Profesor: "Laura Gómez Ruiz", Asignatura: "Física", Grado: 3, Grupo: "B",
			Carrera: "Ingeniería Industrial", Aula: "B-201", Dia: "Lunes",
			HoraInicio: "08:00", HoraFin: "09:00", Capacidad: 30,
		},
	}
	return m
}
