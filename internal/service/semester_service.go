package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound      = errors.New("学期不存在")
	ErrSemesterDateInvalid   = errors.New("学期结束日期必须晚于开始日期")
	ErrSemesterCompleted     = errors.New("学期已结束，不能再推进")
	ErrSemesterNotPlanning   = errors.New("仅 planning 状态的学期允许删除")
	ErrSemesterHasDependents = errors.New("学期存在关联的分配、大纲或预订，禁止删除")
)

// SemesterService 学期生命周期业务接口
//
// 状态机单向推进：planning → course_assignment → outline_submission →
// outline_review → scheduling → active → completed。
// 不允许跳级、回退或重新打开。
type SemesterService interface {
	Create(ctx context.Context, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error)
	List(ctx context.Context) ([]dto.SemesterResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error)
	// Advance 将学期推进到固定顺序中的下一个状态
	Advance(ctx context.Context, id string, callerID string) (*dto.SemesterResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *semesterService) Create(ctx context.Context, req *dto.CreateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrSemesterDateInvalid
	}
	if !endDate.After(startDate) {
		return nil, ErrSemesterDateInvalid
	}

	// 调用方无法指定初始状态，新学期一律从 planning 开始
	semester := &model.Semester{
		AcademicYear: req.AcademicYear,
		Type:         req.Type,
		Status:       model.SemesterPlanning,
		StartDate:    startDate,
		EndDate:      endDate,
		Sections:     model.SectionMap(req.Sections),
		TimeSlots:    model.SlotList(req.TimeSlots),
		WorkingDays:  model.IntArray(req.WorkingDays),
	}
	if semester.Sections == nil {
		semester.Sections = model.SectionMap{}
	}
	if semester.TimeSlots == nil {
		semester.TimeSlots = model.SlotList{}
	}
	if semester.WorkingDays == nil {
		semester.WorkingDays = model.IntArray{}
	}
	if d := parseDatePtr(req.OutlineDeadline); d != nil {
		semester.OutlineDeadline = d
	}
	if d := parseDatePtr(req.SchedulingDeadline); d != nil {
		semester.SchedulingDeadline = d
	}
	semester.CreatedBy = &callerID
	semester.UpdatedBy = &callerID

	if err := s.repo.Semester.Create(ctx, semester); err != nil {
		s.logger.Error("创建学期失败", zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *semesterService) GetByID(ctx context.Context, id string) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context) ([]dto.SemesterResponse, error) {
	semesters, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SemesterResponse, 0, len(semesters))
	for i := range semesters {
		result = append(result, *toSemesterResponse(&semesters[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *semesterService) Update(ctx context.Context, id string, req *dto.UpdateSemesterRequest, callerID string) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.AcademicYear != nil {
		semester.AcademicYear = *req.AcademicYear
	}
	if req.Type != nil {
		semester.Type = *req.Type
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, ErrSemesterDateInvalid
		}
		semester.EndDate = endDate
	}
	if !semester.EndDate.After(semester.StartDate) {
		return nil, ErrSemesterDateInvalid
	}
	if req.Sections != nil {
		semester.Sections = model.SectionMap(req.Sections)
	}
	if req.TimeSlots != nil {
		semester.TimeSlots = model.SlotList(req.TimeSlots)
	}
	if req.WorkingDays != nil {
		semester.WorkingDays = model.IntArray(req.WorkingDays)
	}
	if d := parseDatePtr(req.OutlineDeadline); d != nil {
		semester.OutlineDeadline = d
	}
	if d := parseDatePtr(req.SchedulingDeadline); d != nil {
		semester.SchedulingDeadline = d
	}

	semester.UpdatedBy = &callerID

	if err := s.repo.Semester.Update(ctx, semester); err != nil {
		s.logger.Error("更新学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSemesterResponse(semester), nil
}

// ────────────────────── Advance ──────────────────────

func (s *semesterService) Advance(ctx context.Context, id string, callerID string) (*dto.SemesterResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 未知状态按 planning 兜底（历史数据），completed 为终态
	idx := model.SemesterStatusIndex(semester.Status)
	if idx >= len(model.SemesterStatusOrder)-1 {
		return nil, ErrSemesterCompleted
	}

	from := semester.Status
	semester.Status = model.SemesterStatusOrder[idx+1]
	semester.UpdatedBy = &callerID

	if err := s.repo.Semester.Update(ctx, semester); err != nil {
		s.logger.Error("推进学期状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学期状态已推进",
		zap.String("id", id),
		zap.String("from", from),
		zap.String("to", semester.Status),
	)

	return toSemesterResponse(semester), nil
}

// ────────────────────── Delete ──────────────────────

func (s *semesterService) Delete(ctx context.Context, id string, callerID string) error {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if semester.Status != model.SemesterPlanning {
		return ErrSemesterNotPlanning
	}

	// planning 窗口内建立的下游记录阻止删除（拒绝而非级联）
	hasDeps, err := s.repo.Semester.HasDependents(ctx, id)
	if err != nil {
		s.logger.Error("检查学期关联记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if hasDeps {
		return ErrSemesterHasDependents
	}

	if err := s.repo.Semester.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除学期失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

func toSemesterResponse(semester *model.Semester) *dto.SemesterResponse {
	return &dto.SemesterResponse{
		ID:                 semester.SemesterID,
		AcademicYear:       semester.AcademicYear,
		Type:               semester.Type,
		Status:             semester.Status,
		StartDate:          semester.StartDate.Format("2006-01-02"),
		EndDate:            semester.EndDate.Format("2006-01-02"),
		Sections:           map[string][]string(semester.Sections),
		TimeSlots:          []model.TimeSlotDef(semester.TimeSlots),
		WorkingDays:        []int(semester.WorkingDays),
		OutlineDeadline:    formatDatePtr(semester.OutlineDeadline),
		SchedulingDeadline: formatDatePtr(semester.SchedulingDeadline),
		CreatedAt:          semester.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:          semester.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func toSemesterSummary(semester *model.Semester) *dto.SemesterSummary {
	return &dto.SemesterSummary{
		ID:           semester.SemesterID,
		AcademicYear: semester.AcademicYear,
		Type:         semester.Type,
		Status:       semester.Status,
	}
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
