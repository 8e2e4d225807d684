package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// ErrDuplicateSlot 唯一索引 uq_booking_slot 冲突：同学期同教室同时间已被占用
// 并发竞争的第二个写入者也由此失败，互斥由存储层裁决而非应用层加锁
var ErrDuplicateSlot = errors.New("时段已被占用")

// pg 唯一约束冲突
const pgUniqueViolation = "23505"

// BookingRepository 课表预订数据访问接口
type BookingRepository interface {
	Create(ctx context.Context, booking *model.TimetableBooking) error
	GetByID(ctx context.Context, id string) (*model.TimetableBooking, error)
	List(ctx context.Context, filter *dto.BookingFilter) ([]model.TimetableBooking, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.TimetableBooking, error)
	Update(ctx context.Context, booking *model.TimetableBooking) error
	Delete(ctx context.Context, id string, deletedBy string) error
	// FindConflict 查找占用同一 (学期, 星期, 起止时间, 教室) 的预订；excludeID 用于更新时排除自身
	FindConflict(ctx context.Context, semesterID string, dayOfWeek int, startTime, endTime, room, excludeID string) (*model.TimetableBooking, error)
}

type bookingRepo struct {
	db *gorm.DB
}

// NewBookingRepo 创建 BookingRepository 实例
func NewBookingRepo(db *gorm.DB) BookingRepository {
	return &bookingRepo{db: db}
}

func (r *bookingRepo) Create(ctx context.Context, booking *model.TimetableBooking) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(booking).Error)
}

func (r *bookingRepo) GetByID(ctx context.Context, id string) (*model.TimetableBooking, error) {
	var booking model.TimetableBooking
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepo) List(ctx context.Context, filter *dto.BookingFilter) ([]model.TimetableBooking, error) {
	q := r.db.WithContext(ctx).Model(&model.TimetableBooking{})
	if filter != nil {
		if filter.SemesterID != "" {
			q = q.Where("semester_id = ?", filter.SemesterID)
		}
		if filter.CourseID != "" {
			q = q.Where("course_id = ?", filter.CourseID)
		}
		if filter.TeacherID != "" {
			q = q.Where("teacher_id = ?", filter.TeacherID)
		}
		if filter.Year > 0 {
			q = q.Where("year = ?", filter.Year)
		}
		if filter.Section != "" {
			q = q.Where("section = ?", filter.Section)
		}
	}

	var bookings []model.TimetableBooking
	err := q.Order("day_of_week ASC, start_time ASC").Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.TimetableBooking, error) {
	var bookings []model.TimetableBooking
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("day_of_week ASC, start_time ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepo) Update(ctx context.Context, booking *model.TimetableBooking) error {
	return translateDuplicate(r.db.WithContext(ctx).Save(booking).Error)
}

func (r *bookingRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.TimetableBooking{}).
		Where("booking_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *bookingRepo) FindConflict(ctx context.Context, semesterID string, dayOfWeek int, startTime, endTime, room, excludeID string) (*model.TimetableBooking, error) {
	q := r.db.WithContext(ctx).
		Where("semester_id = ? AND day_of_week = ? AND start_time = ? AND end_time = ? AND room = ?",
			semesterID, dayOfWeek, startTime, endTime, room)
	if excludeID != "" {
		q = q.Where("booking_id <> ?", excludeID)
	}

	var booking model.TimetableBooking
	if err := q.First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// translateDuplicate 将 PostgreSQL 23505 唯一冲突翻译为 ErrDuplicateSlot
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateSlot
	}
	return err
}
