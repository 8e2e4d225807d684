package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 课程分配模块业务错误 ──

var (
	ErrAssignmentNotFound      = errors.New("课程分配不存在")
	ErrAssignTeacherNotFound   = errors.New("教师不存在")
	ErrAssignCourseNotFound    = errors.New("课程不存在")
	ErrAssignSemesterNotFound  = errors.New("指定的学期不存在")
	ErrAssignmentPhaseMismatch = errors.New("学期尚未进入课程分配阶段")
)

// AssignmentService 课程分配业务接口
//
// Assign 以组合键 (teacher_id, course_id, year, semester, semester_id)
// 幂等写入：同键重复分配更新既有记录，不产生重复行。
// 同一教师可在同一学期持有多门课程，分配本身不做独占约束。
type AssignmentService interface {
	Assign(ctx context.Context, req *dto.AssignCourseRequest, callerID string) (*dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	List(ctx context.Context, filter *dto.AssignmentFilter) ([]dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	Remove(ctx context.Context, id string, callerID string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Assign ──────────────────────

func (s *assignmentService) Assign(ctx context.Context, req *dto.AssignCourseRequest, callerID string) (*dto.AssignmentResponse, error) {
	// 教师必须存在
	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.String("teacher_id", req.TeacherID), zap.Error(err))
		return nil, err
	}

	// 课程查找覆盖新旧两个存储，任一命中即有效
	course, err := s.repo.Course.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	// 给了 semester_id 则校验学期存在且已进入分配阶段
	var semester *model.Semester
	if req.SemesterID != "" {
		semester, err = s.repo.Semester.GetByID(ctx, req.SemesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssignSemesterNotFound
			}
			s.logger.Error("查询学期失败", zap.String("semester_id", req.SemesterID), zap.Error(err))
			return nil, err
		}
		if model.SemesterStatusIndex(semester.Status) < model.SemesterStatusIndex(model.SemesterCourseAssignment) {
			return nil, ErrAssignmentPhaseMismatch
		}
	}

	creditHours := req.CreditHoursAssigned
	if creditHours == 0 {
		creditHours = course.CreditHours
	}

	assignment := &model.CourseAssignment{
		TeacherID:           req.TeacherID,
		CourseID:            req.CourseID,
		SemesterID:          req.SemesterID,
		Year:                req.Year,
		Semester:            req.Semester,
		Sections:            model.StringArray(req.Sections),
		IsShared:            req.IsShared,
		CreditHoursAssigned: creditHours,
		OutlineStatus:       model.OutlinePending,
	}
	if assignment.Sections == nil {
		assignment.Sections = model.StringArray{}
	}
	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Upsert(ctx, assignment); err != nil {
		s.logger.Error("写入课程分配失败", zap.Error(err))
		return nil, err
	}

	// Upsert 命中已有行时取回持久化后的状态（ID、outline_status 等）
	stored, err := s.repo.Assignment.GetByKey(ctx, req.TeacherID, req.CourseID, req.Year, req.Semester, req.SemesterID)
	if err != nil {
		s.logger.Error("回读课程分配失败", zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(stored)
	resp.Teacher = toTeacherSummary(teacher)
	resp.Course = toCourseSummaryResponse(course)
	if semester != nil {
		resp.SemesterInfo = toSemesterSummary(semester)
	}

	return resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询课程分配失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(assignment)
	s.enrich(ctx, resp)

	return resp, nil
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, filter *dto.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	assignments, err := s.repo.Assignment.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出课程分配失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp := toAssignmentResponse(&assignments[i])
		s.enrich(ctx, resp)
		result = append(result, *resp)
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询课程分配失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Sections != nil {
		assignment.Sections = model.StringArray(req.Sections)
	}
	if req.IsShared != nil {
		assignment.IsShared = *req.IsShared
	}
	if req.CreditHoursAssigned != nil {
		assignment.CreditHoursAssigned = *req.CreditHoursAssigned
	}
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新课程分配失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toAssignmentResponse(assignment)
	s.enrich(ctx, resp)

	return resp, nil
}

// ────────────────────── Remove ──────────────────────

func (s *assignmentService) Remove(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Assignment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("查询课程分配失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Assignment.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除课程分配失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// enrich 填充教师/课程/学期摘要；摘要查询失败不影响主记录返回
func (s *assignmentService) enrich(ctx context.Context, resp *dto.AssignmentResponse) {
	if teacher, err := s.repo.Teacher.GetByID(ctx, resp.TeacherID); err == nil {
		resp.Teacher = toTeacherSummary(teacher)
	}
	if course, err := s.repo.Course.FindByID(ctx, resp.CourseID); err == nil {
		resp.Course = toCourseSummaryResponse(course)
	}
	if resp.SemesterID != "" {
		if semester, err := s.repo.Semester.GetByID(ctx, resp.SemesterID); err == nil {
			resp.SemesterInfo = toSemesterSummary(semester)
		}
	}
}

func toAssignmentResponse(a *model.CourseAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:                  a.AssignmentID,
		TeacherID:           a.TeacherID,
		CourseID:            a.CourseID,
		SemesterID:          a.SemesterID,
		Year:                a.Year,
		Semester:            a.Semester,
		Sections:            []string(a.Sections),
		IsShared:            a.IsShared,
		CreditHoursAssigned: a.CreditHoursAssigned,
		OutlineStatus:       a.OutlineStatus,
		CreatedAt:           a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           a.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toTeacherSummary(t *model.Teacher) *dto.TeacherSummary {
	return &dto.TeacherSummary{
		ID:         t.TeacherID,
		Name:       t.Name,
		Email:      t.Email,
		Department: t.Department,
	}
}

func toCourseSummaryResponse(c *model.CourseSummary) *dto.CourseSummaryResponse {
	return &dto.CourseSummaryResponse{
		ID:          c.CourseID,
		Code:        c.Code,
		Title:       c.Title,
		CreditHours: c.CreditHours,
		Legacy:      c.Legacy,
	}
}
