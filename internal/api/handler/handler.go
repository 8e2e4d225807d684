package handler

import "github.com/junaidaslam934/acadmic-solution-sub000/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Semester   *SemesterHandler
	Assignment *AssignmentHandler
	Outline    *OutlineHandler
	Booking    *BookingHandler
	Calendar   *CalendarHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Semester:   NewSemesterHandler(svc.Semester),
		Assignment: NewAssignmentHandler(svc.Assignment),
		Outline:    NewOutlineHandler(svc.Outline),
		Booking:    NewBookingHandler(svc.Booking),
		Calendar:   NewCalendarHandler(svc.Calendar),
		Export:     NewExportHandler(svc.Export),
	}
}
