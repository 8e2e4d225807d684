package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// TeacherRepository 教师目录数据访问接口
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	List(ctx context.Context) ([]model.Teacher, error)
}

type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo 创建 TeacherRepository 实例
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context) ([]model.Teacher, error) {
	var teachers []model.Teacher
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&teachers).Error
	return teachers, err
}
