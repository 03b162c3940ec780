package dto

// ── 目录模块 DTO（教师、教室、课程、学业层级、星期） ──

// CatalogListRequest 目录列表查询参数
type CatalogListRequest struct {
	Search string `form:"q" binding:"omitempty,max=100"`
	PaginationRequest
}

// TeacherRequest 创建/更新教师
type TeacherRequest struct {
	Nombre    string `json:"nombre"     binding:"required,max=100"`
	ApPaterno string `json:"ap_paterno" binding:"required,max=100"`
	ApMaterno string `json:"ap_materno" binding:"required,max=100"`
}

// TeacherResponse 教师
type TeacherResponse struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	ApPaterno string `json:"ap_paterno"`
	ApMaterno string `json:"ap_materno"`
	FullName  string `json:"full_name"`
}

// ClassroomRequest 创建/更新教室
type ClassroomRequest struct {
	Nombre    string `json:"nombre"    binding:"required,max=100"`
	Tipo      string `json:"tipo"      binding:"required,max=50"`
	Edificio  string `json:"edificio"  binding:"required,max=50"`
	Capacidad *int   `json:"capacidad" binding:"required,min=0,max=1000"`
}

// ClassroomResponse 教室
type ClassroomResponse struct {
	ID        int    `json:"id"`
	Nombre    string `json:"nombre"`
	Tipo      string `json:"tipo"`
	Edificio  string `json:"edificio"`
	Capacidad int    `json:"capacidad"`
}

// SubjectRequest 创建/更新课程
type SubjectRequest struct {
	Nombre string `json:"nombre" binding:"required,max=150"`
}

// SubjectResponse 课程
type SubjectResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// AcademicLevelRequest 创建/更新学业层级
type AcademicLevelRequest struct {
	Tipo    string `json:"tipo"    binding:"required,max=50"`
	Grado   int    `json:"grado"   binding:"required,min=1,max=20"`
	Grupo   string `json:"grupo"   binding:"required,max=20"`
	Carrera string `json:"carrera" binding:"required,max=150"`
}

// AcademicLevelResponse 学业层级
type AcademicLevelResponse struct {
	ID      int    `json:"id"`
	Tipo    string `json:"tipo"`
	Grado   int    `json:"grado"`
	Grupo   string `json:"grupo"`
	Carrera string `json:"carrera"`
	Label   string `json:"label"`
}

// DayResponse 星期
type DayResponse struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

// CatalogOptions 表单下拉选项的固定取值
type CatalogOptions struct {
	ClassroomTypes []string `json:"classroom_types"`
	Buildings      []string `json:"buildings"`
	LevelTypes     []string `json:"level_types"`
	Careers        []string `json:"careers"`
}
