package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/schedule"
)

func setupTestAvailabilityService() (AvailabilityService, *mockRemote) {
	api := seedRemote()
	return NewAvailabilityService(testConfig(), api.gateway(), zap.NewNop()), api
}

func TestAvailabilityService_Buildings(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	got, err := svc.Buildings(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Buildings 失败: %v", err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestAvailabilityService_Classrooms(t *testing.T) {
	svc, api := setupTestAvailabilityService()
	// 同一教室的第二门课不应产生重复项
	dup := api.classes[0]
	dup.ID, dup.Dia = 103, "Martes"
	api.classes = append(api.classes, dup)

	got, err := svc.Classrooms(context.Background(), testSession(), "A")
	if err != nil {
		t.Fatalf("Classrooms 失败: %v", err)
	}
	want := []dto.ClassroomSummary{{ID: 10, Name: "A-101"}, {ID: 11, Name: "A-102"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestAvailabilityService_ClassroomsEmptyBuilding(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	got, err := svc.Classrooms(context.Background(), testSession(), "Z")
	if err != nil {
		t.Fatalf("无课程楼栋不应报错: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("期望空列表，实际 %v", got)
	}
	if _, err := svc.Classrooms(context.Background(), testSession(), "  "); !errors.Is(err, ErrBuildingMissing) {
		t.Errorf("期望 ErrBuildingMissing，实际: %v", err)
	}
}

func TestAvailabilityService_ClassroomWeek(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	week, err := svc.ClassroomWeek(context.Background(), testSession(), "A", 10)
	if err != nil {
		t.Fatalf("ClassroomWeek 失败: %v", err)
	}
	if week.Classroom != "A-101" || len(week.Days) != 5 || len(week.Rows) != 14 {
		t.Fatalf("周视图结构错误: classroom=%s days=%d rows=%d", week.Classroom, len(week.Days), len(week.Rows))
	}

	// 行 0 = 07:00，行 1 = 08:00，行 3 = 10:00；列 0 = Lunes
	if !week.Rows[0].Cells[0].Free {
		t.Error("07:00 周一应空闲")
	}
	if c := week.Rows[1].Cells[0]; c.Free || c.ClassID != 100 || c.Subject != "Cálculo" {
		t.Errorf("08:00 周一应被 Cálculo 占用: %+v", c)
	}
	if week.Rows[2].Cells[0].Free {
		t.Error("09:00 周一应被占用")
	}
	if !week.Rows[3].Cells[0].Free {
		t.Error("10:00 周一应空闲（结束时间不占用）")
	}
	if !week.Rows[1].Cells[1].Free {
		t.Error("08:00 周二应空闲")
	}
	if week.Rows[1].Range != "08:00 - 09:00" {
		t.Errorf("Range 错误: %s", week.Rows[1].Range)
	}
}

func TestAvailabilityService_ClassroomWeekUnknownRoom(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	// 教室 20 属于楼栋 B
	if _, err := svc.ClassroomWeek(context.Background(), testSession(), "A", 20); !errors.Is(err, ErrClassroomNotFound) {
		t.Errorf("期望 ErrClassroomNotFound，实际: %v", err)
	}
}

func TestAvailabilityService_BuildingMatrix(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	m, err := svc.BuildingMatrix(context.Background(), testSession(), "A", "miercoles")
	if err != nil {
		t.Fatalf("BuildingMatrix 失败: %v", err)
	}
	if m.Day != "Miércoles" {
		t.Errorf("星期应规范化为 Miércoles，实际 %s", m.Day)
	}
	wantRooms := []dto.MatrixRoom{{Name: "A-101", Capacity: 40}, {Name: "A-102", Capacity: 25}}
	if !reflect.DeepEqual(m.Rooms, wantRooms) {
		t.Errorf("列头错误: %+v", m.Rooms)
	}
	if len(m.Rows) != 14 || m.Rows[0].Slot != "07:00 - 08:00" {
		t.Fatalf("行结构错误: %d %q", len(m.Rows), m.Rows[0].Slot)
	}

	noon := m.Rows[5] // 12:00
	if !noon.Cells[0].Free {
		t.Error("A-101 周三 12:00 应空闲")
	}
	if c := noon.Cells[1]; c.Free || c.Subject != "Física" || c.Teacher != "Pedro Sánchez Luna" {
		t.Errorf("A-102 周三 12:00 应被占用: %+v", c)
	}
}

func TestAvailabilityService_BuildingMatrixDayHandling(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	m, err := svc.BuildingMatrix(context.Background(), testSession(), "A", "")
	if err != nil {
		t.Fatalf("BuildingMatrix 失败: %v", err)
	}
	if m.Day != "Lunes" {
		t.Errorf("默认星期应为 Lunes，实际 %s", m.Day)
	}
	if _, err := svc.BuildingMatrix(context.Background(), testSession(), "A", "Sábado"); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("期望 ErrInvalidDay，实际: %v", err)
	}
}

func TestAvailabilityService_BuildingMatrixEmpty(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	m, err := svc.BuildingMatrix(context.Background(), testSession(), "Z", "Lunes")
	if err != nil {
		t.Fatalf("BuildingMatrix 失败: %v", err)
	}
	if len(m.Rooms) != 0 || len(m.Rows) != 14 {
		t.Errorf("空楼栋应有 0 列 14 行: rooms=%d rows=%d", len(m.Rooms), len(m.Rows))
	}
}

func TestBuildMatrix_LaterSessionWins(t *testing.T) {
	sessions := []schedule.Session{
		{ID: 1, Room: "A-1", Day: "Lunes", Start: "07:00", End: "08:00", Subject: "Primera"},
		{ID: 2, Room: "A-1", Day: "Lunes", Start: "07:00", End: "08:00", Subject: "Segunda"},
	}
	m := buildMatrix("A", "Lunes", sessions)
	if got := m.Rows[0].Cells[0].Subject; got != "Segunda" {
		t.Errorf("同一格应取靠后的课程，实际 %s", got)
	}
}

// ── Report ──

func TestAvailabilityService_Report(t *testing.T) {
	svc, api := setupTestAvailabilityService()
	capacity := 25

	page, err := svc.Report(context.Background(), testSession(), &dto.ReportRequest{Capacity: &capacity})
	if err != nil {
		t.Fatalf("Report 失败: %v", err)
	}
	if page.Total != 1 || page.List[0].ID != 101 {
		t.Errorf("容量筛选错误: %+v", page.List)
	}
	if len(api.queries) != 1 || api.queries[0].Capacidad != nil || api.queries[0].Dia != "" {
		t.Errorf("容量不应发送给远端，空字段应省略: %+v", api.queries)
	}
}

func TestAvailabilityService_ReportFilters(t *testing.T) {
	svc, api := setupTestAvailabilityService()
	grade := 3

	page, err := svc.Report(context.Background(), testSession(), &dto.ReportRequest{
		Course:            " Física ",
		Grade:             &grade,
		PaginationRequest: dto.PaginationRequest{PageSize: 1},
	})
	if err != nil {
		t.Fatalf("Report 失败: %v", err)
	}
	if page.Total != 2 || len(page.List) != 1 {
		t.Errorf("分页错误: total=%d len=%d", page.Total, len(page.List))
	}
	q := api.queries[0]
	if q.NombreCurso != "Física" || q.Grado == nil || *q.Grado != 3 {
		t.Errorf("远端过滤条件错误: %+v", q)
	}
}

func TestAvailabilityService_ReportNoMatch(t *testing.T) {
	svc, _ := setupTestAvailabilityService()

	rows, err := svc.ReportRows(context.Background(), testSession(), &dto.ReportRequest{Teacher: "Nadie"})
	if err != nil {
		t.Fatalf("无结果不应报错: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("期望空结果，实际 %d", len(rows))
	}
}

func TestAvailabilityService_ReportTimeValidation(t *testing.T) {
	svc, api := setupTestAvailabilityService()

	if _, err := svc.Report(context.Background(), testSession(), &dto.ReportRequest{StartTime: "07:30"}); !errors.Is(err, ErrInvalidClassTime) {
		t.Errorf("期望 ErrInvalidClassTime，实际: %v", err)
	}
	if _, err := svc.Report(context.Background(), testSession(), &dto.ReportRequest{StartTime: "10:00", EndTime: "09:00"}); !errors.Is(err, ErrClassTimeOrder) {
		t.Errorf("期望 ErrClassTimeOrder，实际: %v", err)
	}
	if len(api.queries) != 0 {
		t.Error("时间无效时不应调用远端")
	}
}
