package dto

// ── 课程安排 DTO ──

// ClassListRequest 课程安排列表参数，q 非空时按多字段搜索
type ClassListRequest struct {
	Search string `form:"q" binding:"omitempty,max=100"`
	PaginationRequest
}

// ClassRequest 创建/更新课程安排
type ClassRequest struct {
	TeacherID       int    `json:"teacher_id"        binding:"required,min=1"`
	SubjectID       int    `json:"subject_id"        binding:"required,min=1"`
	AcademicLevelID int    `json:"academic_level_id" binding:"required,min=1"`
	ClassroomID     int    `json:"classroom_id"      binding:"required,min=1"`
	DayID           int    `json:"day_id"            binding:"required,min=1"`
	StartTime       string `json:"start_time"        binding:"required,len=5"`
	EndTime         string `json:"end_time"          binding:"required,len=5"`
}

// OverlapCheckRequest 提交前冲突预检
type OverlapCheckRequest struct {
	ClassRequest
	ExcludeID int `json:"exclude_id" binding:"omitempty,min=0"`
}

// ClassResponse 课程安排
type ClassResponse struct {
	ID              int    `json:"id"`
	TeacherID       int    `json:"teacher_id,omitempty"`
	SubjectID       int    `json:"subject_id,omitempty"`
	AcademicLevelID int    `json:"academic_level_id,omitempty"`
	ClassroomID     int    `json:"classroom_id,omitempty"`
	DayID           int    `json:"day_id,omitempty"`
	Subject         string `json:"subject"`
	Teacher         string `json:"teacher"`
	Classroom       string `json:"classroom"`
	Day             string `json:"day"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Capacity        int    `json:"capacity"`
	Grade           int    `json:"grade,omitempty"`
	Group           string `json:"group,omitempty"`
	Career          string `json:"career,omitempty"`
	Level           string `json:"level,omitempty"`
}

// OptionItem 下拉选项
type OptionItem struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// ClassOptionsResponse 课程安排表单的全部选项
type ClassOptionsResponse struct {
	Teachers       []OptionItem `json:"teachers"`
	Subjects       []OptionItem `json:"subjects"`
	AcademicLevels []OptionItem `json:"academic_levels"`
	Classrooms     []OptionItem `json:"classrooms"`
	Days           []OptionItem `json:"days"`
	Hours          []string     `json:"hours"`
}

// OverlapCheckResponse 冲突预检结果
type OverlapCheckResponse struct {
	Conflict  bool            `json:"conflict"`
	Conflicts []ClassResponse `json:"conflicts"`
}
