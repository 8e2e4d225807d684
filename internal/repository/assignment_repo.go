package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// AssignmentRepository 课程分配数据访问接口
type AssignmentRepository interface {
	// Upsert 以组合唯一键 (teacher_id, course_id, year, semester, semester_id)
	// 原子写入：键冲突时更新字段而非插入重复行，并发重复由唯一索引裁决
	Upsert(ctx context.Context, assignment *model.CourseAssignment) error
	GetByID(ctx context.Context, id string) (*model.CourseAssignment, error)
	GetByKey(ctx context.Context, teacherID, courseID string, year, semester int, semesterID string) (*model.CourseAssignment, error)
	List(ctx context.Context, filter *dto.AssignmentFilter) ([]model.CourseAssignment, error)
	Update(ctx context.Context, assignment *model.CourseAssignment) error
	UpdateOutlineStatus(ctx context.Context, id string, status string, updatedBy string) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Upsert(ctx context.Context, assignment *model.CourseAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "teacher_id"},
				{Name: "course_id"},
				{Name: "year"},
				{Name: "semester"},
				{Name: "semester_id"},
			},
			// uq_assignment_key 是 WHERE deleted_at IS NULL 的部分索引，
			// 冲突目标必须携带同谓词才能被选为裁决索引
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "deleted_at IS NULL"},
			}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sections", "is_shared", "credit_hours_assigned", "updated_at", "updated_by",
			}),
		}).
		Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.CourseAssignment, error) {
	var assignment model.CourseAssignment
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) GetByKey(ctx context.Context, teacherID, courseID string, year, semester int, semesterID string) (*model.CourseAssignment, error) {
	var assignment model.CourseAssignment
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND course_id = ? AND year = ? AND semester = ? AND semester_id = ?",
			teacherID, courseID, year, semester, semesterID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) List(ctx context.Context, filter *dto.AssignmentFilter) ([]model.CourseAssignment, error) {
	q := r.db.WithContext(ctx).Model(&model.CourseAssignment{})
	if filter != nil {
		if filter.TeacherID != "" {
			q = q.Where("teacher_id = ?", filter.TeacherID)
		}
		if filter.SemesterID != "" {
			q = q.Where("semester_id = ?", filter.SemesterID)
		}
		if filter.Year > 0 {
			q = q.Where("year = ?", filter.Year)
		}
		if filter.OutlineStatus != "" {
			q = q.Where("outline_status = ?", filter.OutlineStatus)
		}
	}

	var assignments []model.CourseAssignment
	err := q.Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.CourseAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) UpdateOutlineStatus(ctx context.Context, id string, status string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.CourseAssignment{}).
		Where("assignment_id = ?", id).
		Updates(map[string]interface{}{
			"outline_status": status,
			"updated_by":     updatedBy,
			"updated_at":     gorm.Expr("NOW()"),
		}).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.CourseAssignment{}).
		Where("assignment_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
