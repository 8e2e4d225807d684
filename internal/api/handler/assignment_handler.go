package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

// AssignmentHandler 课程分配模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// AssignCourse 分配课程（同键幂等 upsert）
// POST /api/v1/course-assignments
func (h *AssignmentHandler) AssignCourse(c *gin.Context) {
	var req dto.AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentSvc.Assign(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// ListAssignments 获取课程分配列表
// GET /api/v1/course-assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var filter dto.AssignmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// GetAssignment 获取课程分配详情
// GET /api/v1/course-assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "分配ID不能为空")
		return
	}

	assignment, err := h.assignmentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// UpdateAssignment 更新课程分配
// PUT /api/v1/course-assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "分配ID不能为空")
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignment, err := h.assignmentSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// RemoveAssignment 删除课程分配
// DELETE /api/v1/course-assignments/:id
func (h *AssignmentHandler) RemoveAssignment(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "分配ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.assignmentSvc.Remove(c.Request.Context(), id, callerID); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAssignmentError 统一处理课程分配模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, "课程分配不存在")
	case errors.Is(err, service.ErrAssignTeacherNotFound):
		response.NotFound(c, "教师不存在")
	case errors.Is(err, service.ErrAssignCourseNotFound):
		response.NotFound(c, "课程不存在")
	case errors.Is(err, service.ErrAssignSemesterNotFound):
		response.NotFound(c, "学期不存在")
	case errors.Is(err, service.ErrAssignmentPhaseMismatch):
		response.BadRequest(c, "学期尚未进入课程分配阶段")
	default:
		response.InternalError(c)
	}
}
