package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/config"
	"github.com/vega2004/modulo-hora-espacio/internal/session"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

var testSess = &session.Session{ID: "s-1", Token: "remote-token", DisplayName: "Ana", ExpiresAt: time.Now().Add(time.Hour)}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.UpstreamConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ── 认证 ──

func TestLogin_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/Usuarios/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		var cred Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cred))
		require.Equal(t, "ana@uni.mx", cred.Email)
		require.Equal(t, "secreto123", cred.Pass)

		writeJSON(w, http.StatusOK, map[string]string{"token": "abc", "nombre": "Ana López"})
	})

	res, err := c.Login(context.Background(), Credentials{Email: "ana@uni.mx", Pass: "secreto123"})
	require.NoError(t, err)
	require.Equal(t, "abc", res.Token)
	require.Equal(t, "Ana López", res.Nombre)
}

func TestLogin_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"nombre": "Ana"})
	})
	_, err := c.Login(context.Background(), Credentials{})
	require.ErrorIs(t, err, pkgerrors.ErrUpstream)
}

func TestRegister_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "El correo ya está registrado"})
	})

	err := c.Register(context.Background(), Registration{Email: "ana@uni.mx"})
	require.ErrorIs(t, err, pkgerrors.ErrConflict)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "El correo ya está registrado", apiErr.Message)
}

// ── 状态码映射 ──

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, pkgerrors.ErrUnauthorized},
		{http.StatusForbidden, pkgerrors.ErrUnauthorized},
		{http.StatusNotFound, pkgerrors.ErrNotFound},
		{http.StatusConflict, pkgerrors.ErrConflict},
		{http.StatusBadRequest, pkgerrors.ErrUpstream},
		{http.StatusInternalServerError, pkgerrors.ErrUpstream},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = io.WriteString(w, "boom")
		})
		_, err := c.ListDays(context.Background(), testSess)
		require.ErrorIs(t, err, tc.want, "status %d", tc.status)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(&config.UpstreamConfig{BaseURL: srv.URL}, zap.NewNop())

	_, err := c.ListDays(context.Background(), testSess)
	require.ErrorIs(t, err, pkgerrors.ErrUpstream)
}

// ── 列表解码与边界校验 ──

func TestListTeachers_BearerAndSearchPath(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer remote-token", r.Header.Get("Authorization"))
		require.Equal(t, "/api/Profesores/obtenerProfesores/Ana María", r.URL.Path)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "nombre": "Ana María", "apPaterno": "López", "apMaterno": "Ruiz"},
			{"id": 2, "nombre": ""},
		})
	})

	got, err := c.ListTeachers(context.Background(), testSess, " Ana María ")
	require.NoError(t, err)
	require.Len(t, got, 1, "无姓名的记录应被丢弃")
	require.Equal(t, "Ana María López Ruiz", got[0].FullName())
}

func TestFilterClasses_WrappedResultAndNormalization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Clases/filtrar", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"aula": "A-101"}, body)

		writeJSON(w, http.StatusOK, map[string]any{"resultado": []map[string]any{
			{
				"id": 9, "idAula": 3, "aula": "A-101", "dia": "Lunes",
				"horaInicio": "08:00:00", "horaFin": "10:00:00",
				"nombreCurso": "Cálculo", "nombreProfesor": "Ana López",
				"capacidad": "40", "grado": 3, "grupo": "B", "carrera": "Administración",
			},
			{"id": 10, "aula": "A-101", "dia": "", "horaInicio": "08:00", "horaFin": "09:00"},
		}})
	})

	got, err := c.FilterClasses(context.Background(), testSess, ClassFilter{Aula: "A-101"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0].Session()
	require.Equal(t, "08:00", s.Start)
	require.Equal(t, "10:00", s.End)
	require.Equal(t, "Cálculo", s.Subject)
	require.Equal(t, "Ana López", s.Teacher)
	require.Equal(t, 40, s.Capacity)
	require.Equal(t, 3, s.RoomID)
	require.Equal(t, "3° B - Administración", s.Level)
}

func TestFilterClasses_BareArrayAndEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		require.JSONEq(t, `{}`, string(raw))
		writeJSON(w, http.StatusOK, []ClassRecord{})
	})

	got, err := c.FilterClasses(context.Background(), testSess, ClassFilter{})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestQueryClasses_UnparsableRecordDropped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id": 1, "aula": "A-101", "dia": "Lunes", "horaInicio": "08:00", "horaFin": "10:00", "capacidad": 40},
			{"id": 2, "aula": "A-102", "dia": "Lunes", "horaInicio": "08:00", "horaFin": "10:00", "capacidad": "N/A"},
			{"id": 3, "aula": "A-103", "dia": "Martes", "horaInicio": "09:00", "horaFin": "11:00", "grado": "x"}
		]`)
	})

	got, err := c.QueryClasses(context.Background(), testSess, ClassFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 1, got[0].ID)
}

func TestClassesByBuilding_EscapesBuilding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Aulas/clases/por-edificio/Edificio A", r.URL.Path)
		writeJSON(w, http.StatusOK, nil)
	})
	got, err := c.ClassesByBuilding(context.Background(), testSess, "Edificio A")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUpdateClass_UsesPatch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/Clases/actualizar/7", r.URL.Path)

		var in ClassInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, 4, in.IDAula)
		require.Equal(t, "09:00", in.HoraInicio)
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateClass(context.Background(), testSess, 7, ClassInput{IDAula: 4, HoraInicio: "09:00", HoraFin: "10:00"})
	require.NoError(t, err)
}

func TestCreateTeacher_OmitsID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		require.False(t, hasID)
		w.WriteHeader(http.StatusCreated)
	})
	require.NoError(t, c.CreateTeacher(context.Background(), testSess, Teacher{ID: 5, Nombre: "Luis"}))
}

// ── FlexInt ──

func TestFlexInt(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
		D FlexInt `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12,"b":"7","c":"","d":null}`), &v))
	require.Equal(t, FlexInt(12), v.A)
	require.Equal(t, FlexInt(7), v.B)
	require.Equal(t, FlexInt(0), v.C)
	require.Equal(t, FlexInt(0), v.D)

	require.Error(t, json.Unmarshal([]byte(`{"a":"doce"}`), &v))
}
