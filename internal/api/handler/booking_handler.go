package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

// BookingHandler 课表预订模块 HTTP 处理器
type BookingHandler struct {
	bookingSvc service.BookingService
}

// NewBookingHandler 创建 BookingHandler
func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// CreateBooking 预订课表时段
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Book(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.Created(c, booking)
}

// ListBookings 获取预订列表
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter dto.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	bookings, err := h.bookingSvc.List(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": bookings})
}

// GetBooking 获取预订详情
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "预订ID不能为空")
		return
	}

	booking, err := h.bookingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// UpdateBooking 更新预订（改时间或教室会重新检查冲突）
// PUT /api/v1/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "预订ID不能为空")
		return
	}

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, booking)
}

// CancelBooking 取消预订
// DELETE /api/v1/bookings/:id
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "预订ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.bookingSvc.Cancel(c.Request.Context(), id, callerID); err != nil {
		h.handleBookingError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleBookingError 统一处理课表预订模块业务错误
func (h *BookingHandler) handleBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound):
		response.NotFound(c, "预订不存在")
	case errors.Is(err, service.ErrBookingSemesterNotFound):
		response.NotFound(c, "学期不存在")
	case errors.Is(err, service.ErrBookingAssignmentNotFound):
		response.NotFound(c, "课程分配不存在")
	case errors.Is(err, service.ErrBookingNotSchedulingPhase):
		response.BadRequest(c, "学期尚未进入排课阶段")
	case errors.Is(err, service.ErrBookingOutlineNotApproved):
		response.BadRequest(c, "大纲未通过审核，不能排课")
	case errors.Is(err, service.ErrBookingSlotConflict):
		response.BadRequest(c, "该教室在此时段已被占用")
	case errors.Is(err, service.ErrBookingSlotUndefined):
		response.BadRequest(c, "学期未定义该编号的时间段")
	case errors.Is(err, service.ErrBookingTimeMissing):
		response.BadRequest(c, "必须提供时间段编号或显式起止时间")
	case errors.Is(err, service.ErrBookingTimeInvalid):
		response.BadRequest(c, "起始时间必须早于结束时间")
	default:
		response.InternalError(c)
	}
}
