package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 测试辅助 ──

func setupTestAssignmentService() (AssignmentService, *repository.Repository) {
	repo := newTestRepository()
	repo.Teacher.(*mockTeacherRepo).teachers["t-001"] = &model.Teacher{
		TeacherID: "t-001", Name: "张三", Email: "zhangsan@example.edu",
	}
	repo.Course.(*mockCourseRepo).courses["c-101"] = &model.CourseSummary{
		CourseID: "c-101", Code: "CS101", Title: "程序设计基础", CreditHours: 3, Year: 1, Semester: 1,
	}
	repo.Course.(*mockCourseRepo).courses["legacy-01"] = &model.CourseSummary{
		CourseID: "legacy-01", Code: "legacy-01", Title: "旧课程", CreditHours: 2, Legacy: true,
	}
	svc := NewAssignmentService(repo, zap.NewNop())
	return svc, repo
}

func assignReq() *dto.AssignCourseRequest {
	return &dto.AssignCourseRequest{
		TeacherID: "t-001",
		CourseID:  "c-101",
		Year:      1,
		Semester:  1,
		Sections:  []string{"A", "B"},
	}
}

// ── Assign 测试 ──

func TestAssignmentService_Assign_Success(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	result, err := svc.Assign(context.Background(), assignReq(), "admin-001")
	if err != nil {
		t.Fatalf("Assign 应成功: %v", err)
	}
	if result.OutlineStatus != model.OutlinePending {
		t.Errorf("新分配的大纲状态应为 pending，实际=%s", result.OutlineStatus)
	}
	if result.CreditHoursAssigned != 3 {
		t.Errorf("未指定学时应继承课程学时 3，实际=%d", result.CreditHoursAssigned)
	}
	if result.Course == nil || result.Course.Title != "程序设计基础" {
		t.Error("响应应内嵌课程摘要")
	}
}

func TestAssignmentService_Assign_IdempotentUpsert(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	first, err := svc.Assign(context.Background(), assignReq(), "admin-001")
	if err != nil {
		t.Fatalf("首次 Assign 应成功: %v", err)
	}

	// 同键重复分配：更新而非新增
	req := assignReq()
	req.Sections = []string{"C"}
	req.CreditHoursAssigned = 4
	second, err := svc.Assign(context.Background(), req, "admin-002")
	if err != nil {
		t.Fatalf("重复 Assign 应成功: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("同键 upsert 应命中同一记录: %s != %s", first.ID, second.ID)
	}
	list, err := svc.List(context.Background(), &dto.AssignmentFilter{TeacherID: "t-001"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("同键重复分配不应产生重复行，实际 %d 行", len(list))
	}
	if len(list[0].Sections) != 1 || list[0].Sections[0] != "C" {
		t.Errorf("upsert 应更新 sections，实际=%v", list[0].Sections)
	}
	if list[0].CreditHoursAssigned != 4 {
		t.Errorf("upsert 应更新学时，实际=%d", list[0].CreditHoursAssigned)
	}
}

func TestAssignmentService_Assign_DifferentKeyCreatesNewRow(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	if _, err := svc.Assign(context.Background(), assignReq(), "admin-001"); err != nil {
		t.Fatalf("首次 Assign 应成功: %v", err)
	}

	req := assignReq()
	req.Semester = 2 // 键的一部分变了
	if _, err := svc.Assign(context.Background(), req, "admin-001"); err != nil {
		t.Fatalf("不同键 Assign 应成功: %v", err)
	}

	list, _ := svc.List(context.Background(), &dto.AssignmentFilter{TeacherID: "t-001"})
	if len(list) != 2 {
		t.Errorf("不同键应各占一行，实际 %d 行", len(list))
	}
}

func TestAssignmentService_Assign_TeacherNotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	req := assignReq()
	req.TeacherID = "ghost"
	_, err := svc.Assign(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrAssignTeacherNotFound) {
		t.Errorf("期望 ErrAssignTeacherNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Assign_CourseNotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	req := assignReq()
	req.CourseID = "ghost"
	_, err := svc.Assign(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrAssignCourseNotFound) {
		t.Errorf("期望 ErrAssignCourseNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Assign_LegacyCourseAccepted(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	// 仅存在于遗留存储的课程同样可分配
	req := assignReq()
	req.CourseID = "legacy-01"
	result, err := svc.Assign(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("遗留课程分配应成功: %v", err)
	}
	if result.Course == nil || !result.Course.Legacy {
		t.Error("响应应标记课程来自遗留存储")
	}
	if result.CreditHoursAssigned != 2 {
		t.Errorf("应继承遗留课程学时 2，实际=%d", result.CreditHoursAssigned)
	}
}

func TestAssignmentService_Assign_SemesterPhaseGate(t *testing.T) {
	svc, repo := setupTestAssignmentService()
	seedSemester(repo, "sem-001", model.SemesterPlanning)

	req := assignReq()
	req.SemesterID = "sem-001"
	_, err := svc.Assign(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrAssignmentPhaseMismatch) {
		t.Errorf("planning 阶段不可分配，期望 ErrAssignmentPhaseMismatch，实际: %v", err)
	}

	// 推进到 course_assignment 后放行
	repo.Semester.(*mockSemesterRepo).semesters["sem-001"].Status = model.SemesterCourseAssignment
	if _, err := svc.Assign(context.Background(), req, "admin-001"); err != nil {
		t.Errorf("course_assignment 阶段分配应成功: %v", err)
	}
}

// ── Update / Remove 测试 ──

func TestAssignmentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	shared := true
	_, err := svc.Update(context.Background(), "missing", &dto.UpdateAssignmentRequest{IsShared: &shared}, "admin-001")
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Remove_Success(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	created, err := svc.Assign(context.Background(), assignReq(), "admin-001")
	if err != nil {
		t.Fatalf("Assign 应成功: %v", err)
	}

	if err := svc.Remove(context.Background(), created.ID, "admin-001"); err != nil {
		t.Fatalf("Remove 应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("删除后应查不到分配，实际: %v", err)
	}
}
