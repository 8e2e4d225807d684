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

// ── 课表预订模块业务错误 ──

var (
	ErrBookingNotFound           = errors.New("预订不存在")
	ErrBookingSemesterNotFound   = errors.New("学期不存在")
	ErrBookingAssignmentNotFound = errors.New("课程分配不存在")
	ErrBookingNotSchedulingPhase = errors.New("学期尚未进入排课阶段")
	ErrBookingOutlineNotApproved = errors.New("大纲未通过审核，不能排课")
	ErrBookingSlotConflict       = errors.New("该教室在此时段已被占用")
	ErrBookingSlotUndefined      = errors.New("学期未定义该编号的时间段")
	ErrBookingTimeMissing        = errors.New("必须提供 slot_number 或显式起止时间")
	ErrBookingTimeInvalid        = errors.New("起始时间必须早于结束时间")
)

// BookingService 课表时段预订业务接口
//
// 冲突判定以教室为粒度：同一 (学期, 星期, 起止时间, 教室) 至多一条预订。
// 同一教师在同一时段的多个教室不构成冲突。
// 应用层先查后写，数据库唯一索引兜底并发竞争。
type BookingService interface {
	Book(ctx context.Context, req *dto.CreateBookingRequest, callerID string) (*dto.BookingResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BookingResponse, error)
	List(ctx context.Context, filter *dto.BookingFilter) ([]dto.BookingResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateBookingRequest, callerID string) (*dto.BookingResponse, error)
	Cancel(ctx context.Context, id string, callerID string) error
}

type bookingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBookingService 创建 BookingService 实例
func NewBookingService(repo *repository.Repository, logger *zap.Logger) BookingService {
	return &bookingService{repo: repo, logger: logger}
}

// ────────────────────── Book ──────────────────────

func (s *bookingService) Book(ctx context.Context, req *dto.CreateBookingRequest, callerID string) (*dto.BookingResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, req.SemesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", req.SemesterID), zap.Error(err))
		return nil, err
	}

	// 排课只在 scheduling 阶段开放
	if semester.Status != model.SemesterScheduling {
		return nil, ErrBookingNotSchedulingPhase
	}

	assignment, err := s.repo.Assignment.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingAssignmentNotFound
		}
		s.logger.Error("查询课程分配失败", zap.String("assignment_id", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	// 大纲四级全部通过才允许进入课表
	if assignment.OutlineStatus != model.OutlineApproved {
		return nil, ErrBookingOutlineNotApproved
	}

	startTime, endTime, err := resolveSlotTimes(semester, req.SlotNumber, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// 先查后写；并发穿过此检查的由唯一索引裁决为 ErrBookingSlotConflict
	conflict, err := s.repo.Booking.FindConflict(ctx, req.SemesterID, req.DayOfWeek, startTime, endTime, req.Room, "")
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查时段冲突失败", zap.Error(err))
		return nil, err
	}
	if conflict != nil {
		return nil, ErrBookingSlotConflict
	}

	creditHours := assignment.CreditHoursAssigned
	if creditHours == 0 {
		if course, err := s.repo.Course.FindByID(ctx, req.CourseID); err == nil {
			creditHours = course.CreditHours
		}
	}

	booking := &model.TimetableBooking{
		SemesterID:         req.SemesterID,
		CourseID:           req.CourseID,
		TeacherID:          req.TeacherID,
		AssignmentID:       req.AssignmentID,
		Year:               req.Year,
		Section:            req.Section,
		DayOfWeek:          req.DayOfWeek,
		SlotNumber:         req.SlotNumber,
		StartTime:          startTime,
		EndTime:            endTime,
		Room:               req.Room,
		CreditHoursPerWeek: creditHours,
	}
	booking.CreatedBy = &callerID
	booking.UpdatedBy = &callerID

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrBookingSlotConflict
		}
		s.logger.Error("创建预订失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("预订已创建",
		zap.String("booking_id", booking.BookingID),
		zap.String("semester_id", req.SemesterID),
		zap.Int("day_of_week", req.DayOfWeek),
		zap.String("room", req.Room),
	)

	return toBookingResponse(booking), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *bookingService) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toBookingResponse(booking), nil
}

// ────────────────────── List ──────────────────────

func (s *bookingService) List(ctx context.Context, filter *dto.BookingFilter) ([]dto.BookingResponse, error) {
	bookings, err := s.repo.Booking.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出预订失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		result = append(result, *toBookingResponse(&bookings[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *bookingService) Update(ctx context.Context, id string, req *dto.UpdateBookingRequest, callerID string) (*dto.BookingResponse, error) {
	booking, err := s.repo.Booking.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.DayOfWeek != nil {
		booking.DayOfWeek = *req.DayOfWeek
	}
	if req.Section != nil {
		booking.Section = *req.Section
	}
	if req.Room != nil {
		booking.Room = *req.Room
	}
	if req.SlotNumber != nil {
		semester, err := s.repo.Semester.GetByID(ctx, booking.SemesterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBookingSemesterNotFound
			}
			return nil, err
		}
		startTime, endTime, err := resolveSlotTimes(semester, req.SlotNumber, "", "")
		if err != nil {
			return nil, err
		}
		booking.SlotNumber = req.SlotNumber
		booking.StartTime = startTime
		booking.EndTime = endTime
	} else {
		if req.StartTime != nil {
			booking.StartTime = *req.StartTime
			booking.SlotNumber = nil
		}
		if req.EndTime != nil {
			booking.EndTime = *req.EndTime
			booking.SlotNumber = nil
		}
	}

	// 单独补丁 start_time 或 end_time 可能拼出倒置区间，落库前校验
	if booking.StartTime >= booking.EndTime {
		return nil, ErrBookingTimeInvalid
	}

	// 改时间或教室后按新键重新检查冲突，排除自身
	conflict, err := s.repo.Booking.FindConflict(ctx, booking.SemesterID, booking.DayOfWeek, booking.StartTime, booking.EndTime, booking.Room, booking.BookingID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查时段冲突失败", zap.Error(err))
		return nil, err
	}
	if conflict != nil {
		return nil, ErrBookingSlotConflict
	}

	booking.UpdatedBy = &callerID

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			return nil, ErrBookingSlotConflict
		}
		s.logger.Error("更新预订失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toBookingResponse(booking), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *bookingService) Cancel(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Booking.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("查询预订失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Booking.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除预订失败", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── 内部辅助方法 ──

// resolveSlotTimes 解析预订的起止时间：slot_number 优先，按学期时间段定义展开；
// 否则要求显式起止时间
func resolveSlotTimes(semester *model.Semester, slotNumber *int, startTime, endTime string) (string, string, error) {
	if slotNumber != nil {
		for _, slot := range semester.TimeSlots {
			if slot.SlotNumber == *slotNumber {
				return slot.StartTime, slot.EndTime, nil
			}
		}
		return "", "", ErrBookingSlotUndefined
	}
	if startTime == "" || endTime == "" {
		return "", "", ErrBookingTimeMissing
	}
	// HH:MM 零填充格式下字典序即时间序
	if startTime >= endTime {
		return "", "", ErrBookingTimeInvalid
	}
	return startTime, endTime, nil
}

func toBookingResponse(b *model.TimetableBooking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:                 b.BookingID,
		SemesterID:         b.SemesterID,
		CourseID:           b.CourseID,
		TeacherID:          b.TeacherID,
		AssignmentID:       b.AssignmentID,
		Year:               b.Year,
		Section:            b.Section,
		DayOfWeek:          b.DayOfWeek,
		SlotNumber:         b.SlotNumber,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Room:               b.Room,
		CreditHoursPerWeek: b.CreditHoursPerWeek,
		CreatedAt:          b.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
