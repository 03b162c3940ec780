package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/vega2004/modulo-hora-espacio/internal/dto"
	"github.com/vega2004/modulo-hora-espacio/internal/remote"
	pkgerrors "github.com/vega2004/modulo-hora-espacio/pkg/errors"
)

// ── 教师 ──

func TestTeacherService_ListPaginated(t *testing.T) {
	api := seedRemote()
	for i := 3; i <= 12; i++ {
		api.teachers = append(api.teachers, remote.Teacher{ID: i, Nombre: "Docente", ApPaterno: "X", ApMaterno: "Y"})
	}
	svc := NewTeacherService(testConfig(), api, zap.NewNop())

	page, err := svc.List(context.Background(), testSession(), &dto.CatalogListRequest{
		PaginationRequest: dto.PaginationRequest{Page: 2},
	})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if page.Total != 12 || page.PageSize != 10 || len(page.List) != 2 {
		t.Errorf("分页错误: total=%d size=%d len=%d", page.Total, page.PageSize, len(page.List))
	}
	if page.List[0].ID != 11 {
		t.Errorf("第 2 页首条应为 ID=11，实际=%d", page.List[0].ID)
	}
}

func TestTeacherService_SearchNoMatchIsEmpty(t *testing.T) {
	svc := NewTeacherService(testConfig(), seedRemote(), zap.NewNop())

	page, err := svc.List(context.Background(), testSession(), &dto.CatalogListRequest{Search: "zzz"})
	if err != nil {
		t.Fatalf("搜索无结果不应报错: %v", err)
	}
	if page.Total != 0 || len(page.List) != 0 {
		t.Errorf("期望空列表，实际 %+v", page)
	}
}

func TestTeacherService_SearchAccentInsensitive(t *testing.T) {
	svc := NewTeacherService(testConfig(), seedRemote(), zap.NewNop())

	page, err := svc.List(context.Background(), testSession(), &dto.CatalogListRequest{Search: "gomez"})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(page.List) != 1 || page.List[0].FullName != "Laura Gómez Ruiz" {
		t.Errorf("搜索结果错误: %+v", page.List)
	}
}

func TestTeacherService_UpstreamErrorPropagates(t *testing.T) {
	api := seedRemote()
	api.errs["ListTeachers"] = pkgerrors.ErrUpstream
	svc := NewTeacherService(testConfig(), api, zap.NewNop())

	_, err := svc.List(context.Background(), testSession(), &dto.CatalogListRequest{})
	if !errors.Is(err, pkgerrors.ErrUpstream) {
		t.Errorf("期望 ErrUpstream，实际: %v", err)
	}
}

func TestTeacherService_CRUD(t *testing.T) {
	api := seedRemote()
	svc := NewTeacherService(testConfig(), api, zap.NewNop())
	ctx := context.Background()

	req := &dto.TeacherRequest{Nombre: " Rosa ", ApPaterno: "Díaz", ApMaterno: "Mora"}
	if err := svc.Create(ctx, testSession(), req); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	if got := api.teachers[len(api.teachers)-1].Nombre; got != "Rosa" {
		t.Errorf("姓名应去除首尾空白，实际=%q", got)
	}

	if err := svc.Update(ctx, testSession(), 99, req); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("期望 ErrTeacherNotFound，实际: %v", err)
	}
	if err := svc.Delete(ctx, testSession(), 1); err != nil {
		t.Errorf("Delete 失败: %v", err)
	}
	if err := svc.Delete(ctx, testSession(), 1); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("重复删除期望 ErrTeacherNotFound，实际: %v", err)
	}
}

// ── 教室 ──

func TestClassroomService_Buildings(t *testing.T) {
	api := seedRemote()
	api.classrooms = append(api.classrooms,
		remote.Classroom{ID: 30, Nombre: "C-1", Edificio: "C"},
		remote.Classroom{ID: 31, Nombre: "Sin edificio"},
	)
	svc := NewClassroomService(testConfig(), api, zap.NewNop())

	got, err := svc.Buildings(context.Background(), testSession())
	if err != nil {
		t.Fatalf("Buildings 失败: %v", err)
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Errorf("期望 %v，实际 %v", want, got)
	}
}

func TestClassroomService_CreateCapacity(t *testing.T) {
	api := seedRemote()
	svc := NewClassroomService(testConfig(), api, zap.NewNop())

	capacity := 35
	err := svc.Create(context.Background(), testSession(), &dto.ClassroomRequest{
		Nombre: "D-1", Tipo: "Aula", Edificio: "D", Capacidad: &capacity,
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	last := api.classrooms[len(api.classrooms)-1]
	if last.Capacidad != 35 || last.Edificio != "D" {
		t.Errorf("教室字段错误: %+v", last)
	}
}

// ── 课程 / 学业层级 / 星期 ──

func TestSubjectService_UpdateNotFound(t *testing.T) {
	svc := NewSubjectService(testConfig(), seedRemote(), zap.NewNop())

	err := svc.Update(context.Background(), testSession(), 42, &dto.SubjectRequest{Nombre: "Química"})
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

func TestAcademicLevelService_ListLabel(t *testing.T) {
	svc := NewAcademicLevelService(testConfig(), seedRemote(), zap.NewNop())

	page, err := svc.List(context.Background(), testSession(), &dto.CatalogListRequest{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(page.List) != 1 || page.List[0].Label != "3° B - Ingeniería Industrial" {
		t.Errorf("Label 错误: %+v", page.List)
	}
}

func TestCatalogDefaults_Copies(t *testing.T) {
	a := CatalogDefaults()
	a.Buildings[0] = "Z"
	b := CatalogDefaults()
	if b.Buildings[0] != "A" {
		t.Error("CatalogDefaults 应返回副本")
	}
}

func TestDayService_List(t *testing.T) {
	svc := NewDayService(seedRemote(), zap.NewNop())

	days, err := svc.List(context.Background(), testSession())
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(days) != 5 || days[2].Nombre != "Miércoles" {
		t.Errorf("星期列表错误: %+v", days)
	}
}
