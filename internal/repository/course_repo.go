package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// CourseRepository 课程数据访问接口
//
// 课程存在于两个物理存储：规范化的 courses 与历史遗留的 legacy_courses。
// FindByID 先查规范化表，未命中时回退遗留表，对调用方返回统一摘要；
// Registry 与 Allocator 不关心记录实际落在哪张表。
type CourseRepository interface {
	FindByID(ctx context.Context, id string) (*model.CourseSummary, error)
	List(ctx context.Context) ([]model.CourseSummary, error)
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) FindByID(ctx context.Context, id string) (*model.CourseSummary, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err == nil {
		return course.Summary(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 规范化表未命中，回退遗留表
	var legacy model.LegacyCourse
	err = r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&legacy).Error
	if err != nil {
		return nil, err
	}
	return legacy.Summary(), nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.CourseSummary, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&courses).Error; err != nil {
		return nil, err
	}

	result := make([]model.CourseSummary, 0, len(courses))
	seen := make(map[string]bool, len(courses))
	for i := range courses {
		result = append(result, *courses[i].Summary())
		seen[courses[i].CourseID] = true
	}

	// 遗留表中尚未迁移的课程也纳入列表；两表同 ID 时以规范化表为准
	var legacies []model.LegacyCourse
	if err := r.db.WithContext(ctx).Order("course_id ASC").Find(&legacies).Error; err != nil {
		return nil, err
	}
	for i := range legacies {
		if !seen[legacies[i].CourseID] {
			result = append(result, *legacies[i].Summary())
		}
	}

	return result, nil
}
