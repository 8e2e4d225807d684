package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// HolidayRepository 节假日数据访问接口
type HolidayRepository interface {
	Create(ctx context.Context, holiday *model.Holiday) error
	GetByID(ctx context.Context, id string) (*model.Holiday, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.Holiday, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type holidayRepo struct {
	db *gorm.DB
}

// NewHolidayRepo 创建 HolidayRepository 实例
func NewHolidayRepo(db *gorm.DB) HolidayRepository {
	return &holidayRepo{db: db}
}

func (r *holidayRepo) Create(ctx context.Context, holiday *model.Holiday) error {
	return r.db.WithContext(ctx).Create(holiday).Error
}

func (r *holidayRepo) GetByID(ctx context.Context, id string) (*model.Holiday, error) {
	var holiday model.Holiday
	err := r.db.WithContext(ctx).
		Where("holiday_id = ?", id).
		First(&holiday).Error
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *holidayRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.Holiday, error) {
	var holidays []model.Holiday
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *holidayRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Holiday{}).
		Where("holiday_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// MakeupRepository 补课数据访问接口
type MakeupRepository interface {
	Create(ctx context.Context, makeup *model.MakeupClass) error
	GetByID(ctx context.Context, id string) (*model.MakeupClass, error)
	ListBySemester(ctx context.Context, semesterID string) ([]model.MakeupClass, error)
	ListByDate(ctx context.Context, semesterID string, date time.Time) ([]model.MakeupClass, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

type makeupRepo struct {
	db *gorm.DB
}

// NewMakeupRepo 创建 MakeupRepository 实例
func NewMakeupRepo(db *gorm.DB) MakeupRepository {
	return &makeupRepo{db: db}
}

func (r *makeupRepo) Create(ctx context.Context, makeup *model.MakeupClass) error {
	return r.db.WithContext(ctx).Create(makeup).Error
}

func (r *makeupRepo) GetByID(ctx context.Context, id string) (*model.MakeupClass, error) {
	var makeup model.MakeupClass
	err := r.db.WithContext(ctx).
		Where("makeup_id = ?", id).
		First(&makeup).Error
	if err != nil {
		return nil, err
	}
	return &makeup, nil
}

func (r *makeupRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.MakeupClass, error) {
	var makeups []model.MakeupClass
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("date ASC, start_time ASC").
		Find(&makeups).Error
	return makeups, err
}

func (r *makeupRepo) ListByDate(ctx context.Context, semesterID string, date time.Time) ([]model.MakeupClass, error) {
	var makeups []model.MakeupClass
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND date = ?", semesterID, date.Format("2006-01-02")).
		Order("start_time ASC").
		Find(&makeups).Error
	return makeups, err
}

func (r *makeupRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.MakeupClass{}).
		Where("makeup_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

// WeekRepository 学期周数据访问接口
type WeekRepository interface {
	// ReplaceBySemester 全量替换某学期的周记录（重建校历周）
	ReplaceBySemester(ctx context.Context, semesterID string, weeks []model.SemesterWeek) error
	ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterWeek, error)
}

type weekRepo struct {
	db *gorm.DB
}

// NewWeekRepo 创建 WeekRepository 实例
func NewWeekRepo(db *gorm.DB) WeekRepository {
	return &weekRepo{db: db}
}

func (r *weekRepo) ReplaceBySemester(ctx context.Context, semesterID string, weeks []model.SemesterWeek) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("semester_id = ?", semesterID).
			Delete(&model.SemesterWeek{}).Error; err != nil {
			return err
		}
		if len(weeks) == 0 {
			return nil
		}
		return tx.Create(&weeks).Error
	})
}

func (r *weekRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.SemesterWeek, error) {
	var weeks []model.SemesterWeek
	err := r.db.WithContext(ctx).
		Where("semester_id = ?", semesterID).
		Order("week_number ASC").
		Find(&weeks).Error
	return weeks, err
}
