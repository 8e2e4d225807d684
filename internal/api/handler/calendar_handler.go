package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

// CalendarHandler 校历模块 HTTP 处理器
type CalendarHandler struct {
	calendarSvc service.CalendarService
}

// NewCalendarHandler 创建 CalendarHandler
func NewCalendarHandler(calendarSvc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// GenerateCalendar 生成整学期校历投影
// GET /api/v1/semesters/:id/calendar
func (h *CalendarHandler) GenerateCalendar(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "学期ID不能为空")
		return
	}

	calendar, err := h.calendarSvc.Generate(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, calendar)
}

// RebuildWeeks 重算并持久化学期周
// POST /api/v1/semesters/:id/weeks/rebuild
func (h *CalendarHandler) RebuildWeeks(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "学期ID不能为空")
		return
	}

	weeks, err := h.calendarSvc.RebuildWeeks(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": weeks})
}

// ListWeeks 获取学期周列表
// GET /api/v1/semesters/:id/weeks
func (h *CalendarHandler) ListWeeks(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "学期ID不能为空")
		return
	}

	weeks, err := h.calendarSvc.ListWeeks(c.Request.Context(), id)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": weeks})
}

// AddHoliday 登记节假日
// POST /api/v1/holidays
func (h *CalendarHandler) AddHoliday(c *gin.Context) {
	var req dto.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	holiday, err := h.calendarSvc.AddHoliday(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, holiday)
}

// ListHolidays 获取学期节假日列表
// GET /api/v1/holidays?semester_id=...
func (h *CalendarHandler) ListHolidays(c *gin.Context) {
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		response.BadRequest(c, "学期ID不能为空")
		return
	}

	holidays, err := h.calendarSvc.ListHolidays(c.Request.Context(), semesterID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": holidays})
}

// RemoveHoliday 删除节假日
// DELETE /api/v1/holidays/:id
func (h *CalendarHandler) RemoveHoliday(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "节假日ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.RemoveHoliday(c.Request.Context(), id, callerID); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, nil)
}

// AddMakeup 登记补课
// POST /api/v1/makeup-classes
func (h *CalendarHandler) AddMakeup(c *gin.Context) {
	var req dto.CreateMakeupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	makeup, err := h.calendarSvc.AddMakeup(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.Created(c, makeup)
}

// ListMakeups 获取学期补课列表
// GET /api/v1/makeup-classes?semester_id=...
func (h *CalendarHandler) ListMakeups(c *gin.Context) {
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		response.BadRequest(c, "学期ID不能为空")
		return
	}

	makeups, err := h.calendarSvc.ListMakeups(c.Request.Context(), semesterID)
	if err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, gin.H{"list": makeups})
}

// RemoveMakeup 删除补课
// DELETE /api/v1/makeup-classes/:id
func (h *CalendarHandler) RemoveMakeup(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "补课ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.calendarSvc.RemoveMakeup(c.Request.Context(), id, callerID); err != nil {
		h.handleCalendarError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleCalendarError 统一处理校历模块业务错误
func (h *CalendarHandler) handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCalendarSemesterNotFound):
		response.NotFound(c, "学期不存在")
	case errors.Is(err, service.ErrHolidayNotFound):
		response.NotFound(c, "节假日记录不存在")
	case errors.Is(err, service.ErrMakeupNotFound):
		response.NotFound(c, "补课记录不存在")
	case errors.Is(err, service.ErrHolidayDateOutOfRange):
		response.BadRequest(c, "日期不在学期范围内")
	default:
		response.InternalError(c)
	}
}
