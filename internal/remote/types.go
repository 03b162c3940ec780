package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
)

// normalizer 解码后、校验前的字段规整
type normalizer interface {
	normalize()
}

// FlexInt 兼容远端以数字或数字字符串返回的整数字段
type FlexInt int

// UnmarshalJSON 接受 12、"12"、""、null
func (n *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("非整数值 %q", s)
		}
		*n = FlexInt(v)
		return nil
	}
	var v json.Number
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	i, err := v.Int64()
	if err != nil {
		f, ferr := v.Float64()
		if ferr != nil {
			return err
		}
		i = int64(f)
	}
	*n = FlexInt(i)
	return nil
}

// ── 认证 ──

// Credentials 登录请求体
type Credentials struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

// LoginResult 登录响应
type LoginResult struct {
	Token  string `json:"token"`
	Nombre string `json:"nombre"`
}

// Registration 注册请求体
type Registration struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Pass      string `json:"pass"`
}

// ── 目录实体 ──

// Teacher 教师
type Teacher struct {
	ID        int    `json:"id,omitempty"`
	Nombre    string `json:"nombre" validate:"required"`
	ApPaterno string `json:"apPaterno"`
	ApMaterno string `json:"apMaterno"`
}

// FullName 全名
func (t Teacher) FullName() string {
	return strings.Join(strings.Fields(t.Nombre+" "+t.ApPaterno+" "+t.ApMaterno), " ")
}

// Classroom 教室
type Classroom struct {
	ID        int     `json:"id,omitempty"`
	Nombre    string  `json:"nombre" validate:"required"`
	Tipo      string  `json:"tipo"`
	Edificio  string  `json:"edificio"`
	Capacidad FlexInt `json:"capacidad" validate:"gte=0"`
}

// Subject 课程（asignatura）
type Subject struct {
	ID     int    `json:"id,omitempty"`
	Nombre string `json:"nombre" validate:"required"`
}

// AcademicLevel 学业层级
type AcademicLevel struct {
	ID      int     `json:"id,omitempty"`
	Tipo    string  `json:"tipo" validate:"required"`
	Grado   FlexInt `json:"grado"`
	Grupo   string  `json:"grupo"`
	Carrera string  `json:"carrera"`
}

// Label 形如 "3° B - Ingeniería Industrial"
func (l AcademicLevel) Label() string {
	parts := make([]string, 0, 3)
	if l.Grado > 0 {
		parts = append(parts, fmt.Sprintf("%d°", l.Grado))
	}
	if l.Grupo != "" {
		parts = append(parts, l.Grupo)
	}
	label := strings.Join(parts, " ")
	if l.Carrera != "" {
		if label != "" {
			label += " - "
		}
		label += l.Carrera
	}
	return label
}

// Day 星期
type Day struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre" validate:"required"`
}

// ── 课程安排 ──

// ClassRecord 远端课程安排记录
// 远端在不同端点对课程名与教师名使用了不同字段，normalize 负责合并
type ClassRecord struct {
	ID               int     `json:"id"`
	IDProfesor       int     `json:"idProfesor"`
	IDAsignatura     int     `json:"idAsignatura"`
	IDNivelAcademico int     `json:"idNivelAcademico"`
	IDAula           int     `json:"idAula"`
	IDDia            int     `json:"idDia"`
	Profesor         string  `json:"profesor"`
	NombreProfesor   string  `json:"nombreProfesor,omitempty"`
	Asignatura       string  `json:"asignatura"`
	NombreCurso      string  `json:"nombreCurso,omitempty"`
	Grado            FlexInt `json:"grado"`
	Grupo            string  `json:"grupo"`
	Carrera          string  `json:"carrera"`
	Aula             string  `json:"aula" validate:"required"`
	Dia              string  `json:"dia" validate:"required"`
	HoraInicio       string  `json:"horaInicio" validate:"required"`
	HoraFin          string  `json:"horaFin" validate:"required"`
	Capacidad        FlexInt `json:"capacidad"`
}

func (r *ClassRecord) normalize() {
	if r.Asignatura == "" {
		r.Asignatura = r.NombreCurso
	}
	if r.Profesor == "" {
		r.Profesor = r.NombreProfesor
	}
	r.Aula = strings.TrimSpace(r.Aula)
	r.Dia = strings.TrimSpace(r.Dia)
	r.HoraInicio = trimSeconds(r.HoraInicio)
	r.HoraFin = trimSeconds(r.HoraFin)
}

// Level 学业层级展示文本
func (r ClassRecord) Level() string {
	return AcademicLevel{Grado: r.Grado, Grupo: r.Grupo, Carrera: r.Carrera}.Label()
}

// Session 转换为网格计算使用的课程
func (r ClassRecord) Session() schedule.Session {
	return schedule.Session{
		ID:       r.ID,
		RoomID:   r.IDAula,
		Room:     r.Aula,
		DayID:    r.IDDia,
		Day:      r.Dia,
		Start:    r.HoraInicio,
		End:      r.HoraFin,
		Subject:  r.Asignatura,
		Teacher:  r.Profesor,
		Capacity: int(r.Capacidad),
		Level:    r.Level(),
	}
}

// Sessions 批量转换
func Sessions(records []ClassRecord) []schedule.Session {
	out := make([]schedule.Session, 0, len(records))
	for _, r := range records {
		out = append(out, r.Session())
	}
	return out
}

// trimSeconds 远端时间可能带秒（"08:00:00"），统一为 "08:00"
func trimSeconds(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 8 && s[2] == ':' && s[5] == ':' {
		return s[:5]
	}
	return s
}

// ClassFilter /filtrar 与 /consultar/general 的过滤条件，空字段不发送
type ClassFilter struct {
	NombreCurso    string `json:"nombreCurso,omitempty"`
	NombreProfesor string `json:"nombreProfesor,omitempty"`
	Dia            string `json:"dia,omitempty"`
	Grado          *int   `json:"grado,omitempty"`
	Grupo          string `json:"grupo,omitempty"`
	Carrera        string `json:"carrera,omitempty"`
	Aula           string `json:"aula,omitempty"`
	HoraInicio     string `json:"horaInicio,omitempty"`
	HoraFin        string `json:"horaFin,omitempty"`
	Capacidad      *int   `json:"capacidad,omitempty"`
}

// ClassInput 创建/更新课程安排的请求体
type ClassInput struct {
	IDProfesor       int    `json:"idProfesor"`
	IDAsignatura     int    `json:"idAsignatura"`
	IDNivelAcademico int    `json:"idNivelAcademico"`
	IDAula           int    `json:"idAula"`
	HoraInicio       string `json:"horaInicio"`
	HoraFin          string `json:"horaFin"`
	IDDia            int    `json:"idDia"`
}
