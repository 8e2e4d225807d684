package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 校历模块业务错误 ──

var (
	ErrCalendarSemesterNotFound = errors.New("学期不存在")
	ErrHolidayNotFound          = errors.New("节假日记录不存在")
	ErrHolidayDateOutOfRange    = errors.New("日期不在学期范围内")
	ErrMakeupNotFound           = errors.New("补课记录不存在")
)

// CalendarService 校历投影与节假日/补课登记业务接口
//
// Generate 是纯投影：不写库，同一输入多次生成的结果完全一致。
// 周划分从学期起始日开始，每周到周日截止（周一为一周之首）；
// 末尾不足整周照常输出。节假日当天压制全部课程；补课排在循环课之前。
type CalendarService interface {
	Generate(ctx context.Context, semesterID string) (*dto.CalendarResponse, error)
	// RebuildWeeks 重算学期周并整体替换持久化结果
	RebuildWeeks(ctx context.Context, semesterID string) ([]dto.WeekResponse, error)
	ListWeeks(ctx context.Context, semesterID string) ([]dto.WeekResponse, error)

	AddHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error)
	ListHolidays(ctx context.Context, semesterID string) ([]dto.HolidayResponse, error)
	RemoveHoliday(ctx context.Context, id string, callerID string) error

	AddMakeup(ctx context.Context, req *dto.CreateMakeupRequest, callerID string) (*dto.MakeupResponse, error)
	ListMakeups(ctx context.Context, semesterID string) ([]dto.MakeupResponse, error)
	RemoveMakeup(ctx context.Context, id string, callerID string) error
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *calendarService) Generate(ctx context.Context, semesterID string) (*dto.CalendarResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	bookings, err := s.repo.Booking.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询预订失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	holidays, err := s.repo.Holiday.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}
	makeups, err := s.repo.Makeup.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询补课失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	// 星期 → 当日循环课，组内按 (开始时间, 教室) 稳定排序保证输出确定
	byWeekday := make(map[int][]model.TimetableBooking)
	for _, b := range bookings {
		byWeekday[b.DayOfWeek] = append(byWeekday[b.DayOfWeek], b)
	}
	for dow := range byWeekday {
		group := byWeekday[dow]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].StartTime != group[j].StartTime {
				return group[i].StartTime < group[j].StartTime
			}
			return group[i].Room < group[j].Room
		})
	}

	holidayByDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date.Format("2006-01-02")] = h.Reason
	}

	makeupByDate := make(map[string][]model.MakeupClass)
	for _, m := range makeups {
		key := m.Date.Format("2006-01-02")
		makeupByDate[key] = append(makeupByDate[key], m)
	}
	for key := range makeupByDate {
		group := makeupByDate[key]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].StartTime != group[j].StartTime {
				return group[i].StartTime < group[j].StartTime
			}
			return group[i].Room < group[j].Room
		})
	}

	start := dateOnly(semester.StartDate)
	end := dateOnly(semester.EndDate)

	resp := &dto.CalendarResponse{
		SemesterID: semesterID,
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		Weeks:      []dto.CalendarWeek{},
	}

	weekNumber := 1
	var week *dto.CalendarWeek

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		resp.TotalDays++

		if week == nil {
			resp.Weeks = append(resp.Weeks, dto.CalendarWeek{
				WeekNumber: weekNumber,
				WeekStart:  date.Format("2006-01-02"),
				Days:       []dto.CalendarDay{},
			})
			week = &resp.Weeks[len(resp.Weeks)-1]
			weekNumber++
		}

		dateStr := date.Format("2006-01-02")
		day := dto.CalendarDay{
			Date:      dateStr,
			DayOfWeek: int(date.Weekday()),
			Classes:   []dto.CalendarClass{},
		}

		if reason, ok := holidayByDate[dateStr]; ok {
			// 节假日压制所有课程，补课也不例外
			day.IsHoliday = true
			day.HolidayReason = reason
		} else {
			for _, m := range makeupByDate[dateStr] {
				day.Classes = append(day.Classes, dto.CalendarClass{
					Type:      "makeup",
					CourseID:  m.CourseID,
					TeacherID: m.TeacherID,
					StartTime: m.StartTime,
					EndTime:   m.EndTime,
					Room:      m.Room,
					Reason:    m.Reason,
				})
			}
			for _, b := range byWeekday[int(date.Weekday())] {
				day.Classes = append(day.Classes, dto.CalendarClass{
					Type:      "regular",
					CourseID:  b.CourseID,
					TeacherID: b.TeacherID,
					Section:   b.Section,
					StartTime: b.StartTime,
					EndTime:   b.EndTime,
					Room:      b.Room,
				})
			}
		}

		week.Days = append(week.Days, day)
		week.WeekEnd = dateStr

		// 周一为一周之首：周日收周，次日开启新周
		if date.Weekday() == time.Sunday {
			week = nil
		}
	}

	return resp, nil
}

// ────────────────────── RebuildWeeks ──────────────────────

func (s *calendarService) RebuildWeeks(ctx context.Context, semesterID string) ([]dto.WeekResponse, error) {
	calendar, err := s.Generate(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	holidays, err := s.repo.Holiday.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, err
	}
	holidayByDate := make(map[string]string, len(holidays))
	for _, h := range holidays {
		holidayByDate[h.Date.Format("2006-01-02")] = h.Reason
	}

	weeks := make([]model.SemesterWeek, 0, len(calendar.Weeks))
	for _, w := range calendar.Weeks {
		startDate, _ := time.Parse("2006-01-02", w.WeekStart)
		endDate, _ := time.Parse("2006-01-02", w.WeekEnd)
		week := model.SemesterWeek{
			SemesterID: semesterID,
			WeekNumber: w.WeekNumber,
			StartDate:  startDate,
			EndDate:    endDate,
		}
		// 周内任一天是节假日即标记，取最早一天的说明
		for _, d := range w.Days {
			if reason, ok := holidayByDate[d.Date]; ok {
				week.IsHoliday = true
				week.HolidayReason = reason
				break
			}
		}
		weeks = append(weeks, week)
	}

	if err := s.repo.Week.ReplaceBySemester(ctx, semesterID, weeks); err != nil {
		s.logger.Error("持久化学期周失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学期周已重建",
		zap.String("semester_id", semesterID),
		zap.Int("weeks", len(weeks)),
	)

	result := make([]dto.WeekResponse, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, *toWeekResponse(&w))
	}
	return result, nil
}

// ────────────────────── ListWeeks ──────────────────────

func (s *calendarService) ListWeeks(ctx context.Context, semesterID string) ([]dto.WeekResponse, error) {
	weeks, err := s.repo.Week.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询学期周失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeekResponse, 0, len(weeks))
	for i := range weeks {
		result = append(result, *toWeekResponse(&weeks[i]))
	}
	return result, nil
}

// ────────────────────── 节假日 ──────────────────────

func (s *calendarService) AddHoliday(ctx context.Context, req *dto.CreateHolidayRequest, callerID string) (*dto.HolidayResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, req.SemesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarSemesterNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrHolidayDateOutOfRange
	}
	if date.Before(dateOnly(semester.StartDate)) || date.After(dateOnly(semester.EndDate)) {
		return nil, ErrHolidayDateOutOfRange
	}

	holiday := &model.Holiday{
		SemesterID: req.SemesterID,
		Date:       date,
		Reason:     req.Reason,
	}
	holiday.CreatedBy = &callerID
	holiday.UpdatedBy = &callerID

	if err := s.repo.Holiday.Create(ctx, holiday); err != nil {
		s.logger.Error("登记节假日失败", zap.Error(err))
		return nil, err
	}

	return toHolidayResponse(holiday), nil
}

func (s *calendarService) ListHolidays(ctx context.Context, semesterID string) ([]dto.HolidayResponse, error) {
	holidays, err := s.repo.Holiday.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询节假日失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.HolidayResponse, 0, len(holidays))
	for i := range holidays {
		result = append(result, *toHolidayResponse(&holidays[i]))
	}
	return result, nil
}

func (s *calendarService) RemoveHoliday(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Holiday.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHolidayNotFound
		}
		return err
	}
	if err := s.repo.Holiday.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除节假日失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 补课 ──────────────────────

func (s *calendarService) AddMakeup(ctx context.Context, req *dto.CreateMakeupRequest, callerID string) (*dto.MakeupResponse, error) {
	semester, err := s.repo.Semester.GetByID(ctx, req.SemesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCalendarSemesterNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrHolidayDateOutOfRange
	}
	if date.Before(dateOnly(semester.StartDate)) || date.After(dateOnly(semester.EndDate)) {
		return nil, ErrHolidayDateOutOfRange
	}

	makeup := &model.MakeupClass{
		SemesterID:  req.SemesterID,
		CourseID:    req.CourseID,
		TeacherID:   req.TeacherID,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Room:        req.Room,
		CreditHours: req.CreditHours,
		Reason:      req.Reason,
	}
	makeup.CreatedBy = &callerID
	makeup.UpdatedBy = &callerID

	if err := s.repo.Makeup.Create(ctx, makeup); err != nil {
		s.logger.Error("登记补课失败", zap.Error(err))
		return nil, err
	}

	return toMakeupResponse(makeup), nil
}

func (s *calendarService) ListMakeups(ctx context.Context, semesterID string) ([]dto.MakeupResponse, error) {
	makeups, err := s.repo.Makeup.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询补课失败", zap.String("semester_id", semesterID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MakeupResponse, 0, len(makeups))
	for i := range makeups {
		result = append(result, *toMakeupResponse(&makeups[i]))
	}
	return result, nil
}

func (s *calendarService) RemoveMakeup(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Makeup.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMakeupNotFound
		}
		return err
	}
	if err := s.repo.Makeup.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除补课失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// dateOnly 抹去时分秒，统一用 UTC 零点做日期运算
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toWeekResponse(w *model.SemesterWeek) *dto.WeekResponse {
	return &dto.WeekResponse{
		WeekNumber:    w.WeekNumber,
		StartDate:     w.StartDate.Format("2006-01-02"),
		EndDate:       w.EndDate.Format("2006-01-02"),
		IsHoliday:     w.IsHoliday,
		HolidayReason: w.HolidayReason,
	}
}

func toHolidayResponse(h *model.Holiday) *dto.HolidayResponse {
	return &dto.HolidayResponse{
		ID:         h.HolidayID,
		SemesterID: h.SemesterID,
		Date:       h.Date.Format("2006-01-02"),
		Reason:     h.Reason,
	}
}

func toMakeupResponse(m *model.MakeupClass) *dto.MakeupResponse {
	return &dto.MakeupResponse{
		ID:          m.MakeupID,
		SemesterID:  m.SemesterID,
		CourseID:    m.CourseID,
		TeacherID:   m.TeacherID,
		Date:        m.Date.Format("2006-01-02"),
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Room:        m.Room,
		CreditHours: m.CreditHours,
		Reason:      m.Reason,
	}
}
