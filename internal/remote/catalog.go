package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vega2004/modulo-hora-espacio/internal/session"
)

// ────── Profesores ──────

func (c *Client) ListTeachers(ctx context.Context, sess *session.Session, name string) ([]Teacher, error) {
	return fetchList[Teacher](ctx, c, sess, http.MethodGet, "GET /api/Profesores/obtenerProfesores",
		searchPath("/api/Profesores/obtenerProfesores", name), nil)
}

func (c *Client) CreateTeacher(ctx context.Context, sess *session.Session, t Teacher) error {
	t.ID = 0
	_, err := c.send(ctx, sess, http.MethodPost, "POST /api/Profesores/crear/profesores", "/api/Profesores/crear/profesores", t)
	return err
}

func (c *Client) UpdateTeacher(ctx context.Context, sess *session.Session, id int, t Teacher) error {
	t.ID = 0
	_, err := c.send(ctx, sess, http.MethodPut, "PUT /api/Profesores/modificar/{id}", fmt.Sprintf("/api/Profesores/modificar/%d", id), t)
	return err
}

func (c *Client) DeleteTeacher(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.send(ctx, sess, http.MethodDelete, "DELETE /api/Profesores/eliminar/{id}", fmt.Sprintf("/api/Profesores/eliminar/%d", id), nil)
	return err
}

// ────── Aulas ──────

// ListClassrooms 无名称时列出全部，否则走 /buscar/{name}
func (c *Client) ListClassrooms(ctx context.Context, sess *session.Session, name string) ([]Classroom, error) {
	if name == "" {
		return fetchList[Classroom](ctx, c, sess, http.MethodGet, "GET /api/Aulas/obtenerAulas", "/api/Aulas/obtenerAulas", nil)
	}
	return fetchList[Classroom](ctx, c, sess, http.MethodGet, "GET /api/Aulas/buscar/{name}", searchPath("/api/Aulas/buscar", name), nil)
}

func (c *Client) CreateClassroom(ctx context.Context, sess *session.Session, r Classroom) error {
	r.ID = 0
	_, err := c.send(ctx, sess, http.MethodPost, "POST /api/Aulas/crearAula", "/api/Aulas/crearAula", r)
	return err
}

func (c *Client) UpdateClassroom(ctx context.Context, sess *session.Session, id int, r Classroom) error {
	r.ID = 0
	_, err := c.send(ctx, sess, http.MethodPut, "PUT /api/Aulas/modificarAula/{id}", fmt.Sprintf("/api/Aulas/modificarAula/%d", id), r)
	return err
}

func (c *Client) DeleteClassroom(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.send(ctx, sess, http.MethodDelete, "DELETE /api/Aulas/eliminarAula/{id}", fmt.Sprintf("/api/Aulas/eliminarAula/%d", id), nil)
	return err
}

// ClassesByBuilding 某栋楼全部教室的课程安排
func (c *Client) ClassesByBuilding(ctx context.Context, sess *session.Session, building string) ([]ClassRecord, error) {
	return fetchList[ClassRecord](ctx, c, sess, http.MethodGet, "GET /api/Aulas/clases/por-edificio/{building}",
		"/api/Aulas/clases/por-edificio/"+url.PathEscape(building), nil)
}

// ────── Asignaturas ──────

func (c *Client) ListSubjects(ctx context.Context, sess *session.Session, name string) ([]Subject, error) {
	return fetchList[Subject](ctx, c, sess, http.MethodGet, "GET /api/Asignatura/obtenerAsignaturas",
		searchPath("/api/Asignatura/obtenerAsignaturas", name), nil)
}

func (c *Client) CreateSubject(ctx context.Context, sess *session.Session, s Subject) error {
	s.ID = 0
	_, err := c.send(ctx, sess, http.MethodPost, "POST /api/Asignatura/crear/asignatura", "/api/Asignatura/crear/asignatura", s)
	return err
}

func (c *Client) UpdateSubject(ctx context.Context, sess *session.Session, id int, s Subject) error {
	s.ID = 0
	_, err := c.send(ctx, sess, http.MethodPut, "PUT /api/Asignatura/modificarAsignatura/{id}", fmt.Sprintf("/api/Asignatura/modificarAsignatura/%d", id), s)
	return err
}

func (c *Client) DeleteSubject(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.send(ctx, sess, http.MethodDelete, "DELETE /api/Asignatura/eliminarAsignatura/{id}", fmt.Sprintf("/api/Asignatura/eliminarAsignatura/%d", id), nil)
	return err
}

// ────── Nivel académico ──────

func (c *Client) ListAcademicLevels(ctx context.Context, sess *session.Session, filter string) ([]AcademicLevel, error) {
	return fetchList[AcademicLevel](ctx, c, sess, http.MethodGet, "GET /api/NivelAcademico/obtenerNivelAcademico",
		searchPath("/api/NivelAcademico/obtenerNivelAcademico", filter), nil)
}

func (c *Client) CreateAcademicLevel(ctx context.Context, sess *session.Session, l AcademicLevel) error {
	l.ID = 0
	_, err := c.send(ctx, sess, http.MethodPost, "POST /api/NivelAcademico/crear/nivelAcademico", "/api/NivelAcademico/crear/nivelAcademico", l)
	return err
}

func (c *Client) UpdateAcademicLevel(ctx context.Context, sess *session.Session, id int, l AcademicLevel) error {
	l.ID = 0
	_, err := c.send(ctx, sess, http.MethodPut, "PUT /api/NivelAcademico/modificar/{id}", fmt.Sprintf("/api/NivelAcademico/modificar/%d", id), l)
	return err
}

func (c *Client) DeleteAcademicLevel(ctx context.Context, sess *session.Session, id int) error {
	_, err := c.send(ctx, sess, http.MethodDelete, "DELETE /api/NivelAcademico/eliminar/{id}", fmt.Sprintf("/api/NivelAcademico/eliminar/%d", id), nil)
	return err
}

// ────── Días ──────

func (c *Client) ListDays(ctx context.Context, sess *session.Session) ([]Day, error) {
	return fetchList[Day](ctx, c, sess, http.MethodGet, "GET /api/Dias/obtenerDias", "/api/Dias/obtenerDias", nil)
}
