package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 测试辅助 ──

func newTestRepository() *repository.Repository {
	return &repository.Repository{
		Teacher:    newMockTeacherRepo(),
		Course:     newMockCourseRepo(),
		Semester:   newMockSemesterRepo(),
		Assignment: newMockAssignmentRepo(),
		Outline:    newMockOutlineRepo(),
		Booking:    newMockBookingRepo(),
		Holiday:    newMockHolidayRepo(),
		Makeup:     newMockMakeupRepo(),
		Week:       newMockWeekRepo(),
	}
}

func setupTestSemesterService() (SemesterService, *repository.Repository) {
	repo := newTestRepository()
	svc := NewSemesterService(repo, zap.NewNop())
	return svc, repo
}

func seedSemester(repo *repository.Repository, id, status string) *model.Semester {
	semester := &model.Semester{
		SemesterID:   id,
		AcademicYear: "2025-2026",
		Type:         "fall",
		Status:       status,
		StartDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}
	repo.Semester.(*mockSemesterRepo).semesters[id] = semester
	return semester
}

// ── Create 测试 ──

func TestSemesterService_Create_StartsInPlanning(t *testing.T) {
	svc, _ := setupTestSemesterService()

	req := &dto.CreateSemesterRequest{
		AcademicYear: "2025-2026",
		Type:         "fall",
		StartDate:    "2025-09-01",
		EndDate:      "2026-01-15",
	}

	result, err := svc.Create(context.Background(), req, "admin-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.SemesterPlanning {
		t.Errorf("新学期应处于 planning，实际=%s", result.Status)
	}
}

func TestSemesterService_Create_InvalidDateRange(t *testing.T) {
	svc, _ := setupTestSemesterService()

	// 结束日期早于开始日期
	req := &dto.CreateSemesterRequest{
		AcademicYear: "2025-2026",
		Type:         "fall",
		StartDate:    "2026-01-15",
		EndDate:      "2025-09-01",
	}

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}

func TestSemesterService_Create_BadDateFormat(t *testing.T) {
	svc, _ := setupTestSemesterService()

	req := &dto.CreateSemesterRequest{
		AcademicYear: "2025-2026",
		Type:         "fall",
		StartDate:    "not-a-date",
		EndDate:      "2026-01-15",
	}

	_, err := svc.Create(context.Background(), req, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}

// ── Advance 测试 ──

func TestSemesterService_Advance_FullLifecycle(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterPlanning)

	// 从 planning 一路推进到 completed，每步只前进一格
	expected := model.SemesterStatusOrder[1:]
	for _, want := range expected {
		result, err := svc.Advance(context.Background(), "sem-001", "admin-001")
		if err != nil {
			t.Fatalf("Advance 到 %s 应成功: %v", want, err)
		}
		if result.Status != want {
			t.Fatalf("期望状态 %s，实际=%s", want, result.Status)
		}
	}
}

func TestSemesterService_Advance_CompletedIsTerminal(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterCompleted)

	_, err := svc.Advance(context.Background(), "sem-001", "admin-001")
	if !errors.Is(err, ErrSemesterCompleted) {
		t.Errorf("completed 是终态，期望 ErrSemesterCompleted，实际: %v", err)
	}
}

func TestSemesterService_Advance_UnknownStatusTreatedAsPlanning(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", "legacy-weird-status")

	result, err := svc.Advance(context.Background(), "sem-001", "admin-001")
	if err != nil {
		t.Fatalf("未知状态应按 planning 推进: %v", err)
	}
	if result.Status != model.SemesterCourseAssignment {
		t.Errorf("期望 course_assignment，实际=%s", result.Status)
	}
}

func TestSemesterService_Advance_NotFound(t *testing.T) {
	svc, _ := setupTestSemesterService()

	_, err := svc.Advance(context.Background(), "missing", "admin-001")
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("期望 ErrSemesterNotFound，实际: %v", err)
	}
}

// ── Delete 测试 ──

func TestSemesterService_Delete_OnlyPlanning(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterActive)

	err := svc.Delete(context.Background(), "sem-001", "admin-001")
	if !errors.Is(err, ErrSemesterNotPlanning) {
		t.Errorf("非 planning 学期删除应被拒绝，实际: %v", err)
	}
}

func TestSemesterService_Delete_RejectsWithDependents(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterPlanning)
	repo.Semester.(*mockSemesterRepo).dependents["sem-001"] = true

	err := svc.Delete(context.Background(), "sem-001", "admin-001")
	if !errors.Is(err, ErrSemesterHasDependents) {
		t.Errorf("有关联记录的学期删除应被拒绝，实际: %v", err)
	}
}

func TestSemesterService_Delete_PlanningSucceeds(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterPlanning)

	if err := svc.Delete(context.Background(), "sem-001", "admin-001"); err != nil {
		t.Fatalf("planning 且无关联的学期删除应成功: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "sem-001"); !errors.Is(err, ErrSemesterNotFound) {
		t.Errorf("删除后应查不到学期，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestSemesterService_Update_RejectsInvertedDates(t *testing.T) {
	svc, repo := setupTestSemesterService()
	seedSemester(repo, "sem-001", model.SemesterPlanning)

	badEnd := "2025-08-01" // 早于既有开始日期
	_, err := svc.Update(context.Background(), "sem-001", &dto.UpdateSemesterRequest{EndDate: &badEnd}, "admin-001")
	if !errors.Is(err, ErrSemesterDateInvalid) {
		t.Errorf("期望 ErrSemesterDateInvalid，实际: %v", err)
	}
}
