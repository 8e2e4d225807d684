package service

import (
	"go.uber.org/zap"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/webhook"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Semester   SemesterService
	Assignment AssignmentService
	Outline    OutlineService
	Booking    BookingService
	Calendar   CalendarService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	notifier *webhook.Notifier,
	logger *zap.Logger,
) *Service {
	calendar := NewCalendarService(repo, logger)
	return &Service{
		Semester:   NewSemesterService(repo, logger),
		Assignment: NewAssignmentService(repo, logger),
		Outline:    NewOutlineService(repo, notifier, logger),
		Booking:    NewBookingService(repo, logger),
		Calendar:   calendar,
		Export:     NewExportService(repo, calendar, logger),
	}
}
