package dto

// ── 空闲查询与报表 DTO ──

// ClassroomSummary 楼内教室
type ClassroomSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WeekCell 教室周视图的一个格子
type WeekCell struct {
	Slot    string `json:"slot"`
	Day     string `json:"day"`
	Free    bool   `json:"free"`
	ClassID int    `json:"class_id,omitempty"`
	Subject string `json:"subject,omitempty"`
	Teacher string `json:"teacher,omitempty"`
}

// WeekRow 周视图的一行（一个时段）
type WeekRow struct {
	Slot  string     `json:"slot"`
	Range string     `json:"range"`
	Cells []WeekCell `json:"cells"`
}

// ClassroomWeekResponse 单个教室 5 天 × 14 时段的占用情况
type ClassroomWeekResponse struct {
	Building    string    `json:"building"`
	ClassroomID int       `json:"classroom_id"`
	Classroom   string    `json:"classroom"`
	Days        []string  `json:"days"`
	Rows        []WeekRow `json:"rows"`
}

// MatrixRoom 矩阵列头
type MatrixRoom struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

// MatrixCell 矩阵单元
type MatrixCell struct {
	Room    string `json:"room"`
	Free    bool   `json:"free"`
	Subject string `json:"subject,omitempty"`
	Teacher string `json:"teacher,omitempty"`
}

// MatrixRow 矩阵的一行
type MatrixRow struct {
	Slot  string       `json:"slot"`
	Cells []MatrixCell `json:"cells"`
}

// BuildingMatrixResponse 整栋楼某一天的占用矩阵
type BuildingMatrixResponse struct {
	Building string       `json:"building"`
	Day      string       `json:"day"`
	Rooms    []MatrixRoom `json:"rooms"`
	Rows     []MatrixRow  `json:"rows"`
}

// ReportRequest 课程报表筛选条件
type ReportRequest struct {
	Course    string `form:"course"     binding:"omitempty,max=100"`
	Teacher   string `form:"teacher"    binding:"omitempty,max=100"`
	Day       string `form:"day"        binding:"omitempty,max=20"`
	Grade     *int   `form:"grade"      binding:"omitempty,min=1"`
	Group     string `form:"group"      binding:"omitempty,max=20"`
	Career    string `form:"career"     binding:"omitempty,max=150"`
	Classroom string `form:"classroom"  binding:"omitempty,max=100"`
	StartTime string `form:"start_time" binding:"omitempty,len=5"`
	EndTime   string `form:"end_time"   binding:"omitempty,len=5"`
	Capacity  *int   `form:"capacity"   binding:"omitempty,min=0"`
	PaginationRequest
}
