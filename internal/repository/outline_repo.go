package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// OutlineRepository 教学大纲数据访问接口
// 审核记录只允许 AppendDecision，不提供更新或删除
type OutlineRepository interface {
	Create(ctx context.Context, outline *model.Outline) error
	GetByID(ctx context.Context, id string) (*model.Outline, error)
	GetByAssignment(ctx context.Context, assignmentID string) (*model.Outline, error)
	List(ctx context.Context, filter *dto.OutlineFilter) ([]model.Outline, error)
	Update(ctx context.Context, outline *model.Outline) error
	AppendDecision(ctx context.Context, decision *model.ReviewDecision) error
	ListDecisions(ctx context.Context, outlineID string) ([]model.ReviewDecision, error)
}

type outlineRepo struct {
	db *gorm.DB
}

// NewOutlineRepo 创建 OutlineRepository 实例
func NewOutlineRepo(db *gorm.DB) OutlineRepository {
	return &outlineRepo{db: db}
}

func (r *outlineRepo) Create(ctx context.Context, outline *model.Outline) error {
	return r.db.WithContext(ctx).Create(outline).Error
}

func (r *outlineRepo) GetByID(ctx context.Context, id string) (*model.Outline, error) {
	var outline model.Outline
	err := r.db.WithContext(ctx).
		Where("outline_id = ?", id).
		First(&outline).Error
	if err != nil {
		return nil, err
	}
	return &outline, nil
}

func (r *outlineRepo) GetByAssignment(ctx context.Context, assignmentID string) (*model.Outline, error) {
	var outline model.Outline
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		First(&outline).Error
	if err != nil {
		return nil, err
	}
	return &outline, nil
}

func (r *outlineRepo) List(ctx context.Context, filter *dto.OutlineFilter) ([]model.Outline, error) {
	q := r.db.WithContext(ctx).Model(&model.Outline{})
	if filter != nil {
		if filter.TeacherID != "" {
			q = q.Where("teacher_id = ?", filter.TeacherID)
		}
		if filter.SemesterID != "" {
			q = q.Where("semester_id = ?", filter.SemesterID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.CurrentReviewerRole != "" {
			q = q.Where("current_reviewer_role = ?", filter.CurrentReviewerRole)
		}
	}

	var outlines []model.Outline
	err := q.Order("updated_at DESC").Find(&outlines).Error
	return outlines, err
}

func (r *outlineRepo) Update(ctx context.Context, outline *model.Outline) error {
	return r.db.WithContext(ctx).Save(outline).Error
}

func (r *outlineRepo) AppendDecision(ctx context.Context, decision *model.ReviewDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *outlineRepo) ListDecisions(ctx context.Context, outlineID string) ([]model.ReviewDecision, error) {
	var decisions []model.ReviewDecision
	err := r.db.WithContext(ctx).
		Where("outline_id = ?", outlineID).
		Order("decided_at ASC").
		Find(&decisions).Error
	return decisions, err
}
