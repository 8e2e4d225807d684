package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Teacher    TeacherRepository
	Course     CourseRepository
	Semester   SemesterRepository
	Assignment AssignmentRepository
	Outline    OutlineRepository
	Booking    BookingRepository
	Holiday    HolidayRepository
	Makeup     MakeupRepository
	Week       WeekRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Teacher:    NewTeacherRepo(db),
		Course:     NewCourseRepo(db),
		Semester:   NewSemesterRepo(db),
		Assignment: NewAssignmentRepo(db),
		Outline:    NewOutlineRepo(db),
		Booking:    NewBookingRepo(db),
		Holiday:    NewHolidayRepo(db),
		Makeup:     NewMakeupRepo(db),
		Week:       NewWeekRepo(db),
		db:         db,
	}
}

// BeginTx 开启事务；mock 实现（db 为 nil）返回 nil，由调用方判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx 返回绑定到事务的 Repository 视图；tx 为 nil 时返回自身
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
