package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

// OutlineHandler 教学大纲模块 HTTP 处理器
type OutlineHandler struct {
	outlineSvc service.OutlineService
}

// NewOutlineHandler 创建 OutlineHandler
func NewOutlineHandler(outlineSvc service.OutlineService) *OutlineHandler {
	return &OutlineHandler{outlineSvc: outlineSvc}
}

// SubmitOutline 提交（或被拒后重新提交）大纲
// POST /api/v1/outlines
func (h *OutlineHandler) SubmitOutline(c *gin.Context) {
	var req dto.SubmitOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	outline, err := h.outlineSvc.Submit(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleOutlineError(c, err)
		return
	}

	response.Created(c, outline)
}

// ReviewOutline 落审核决定
// POST /api/v1/outlines/:id/review
func (h *OutlineHandler) ReviewOutline(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "大纲ID不能为空")
		return
	}

	var req dto.ReviewOutlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	outline, err := h.outlineSvc.Review(c.Request.Context(), id, &req)
	if err != nil {
		h.handleOutlineError(c, err)
		return
	}

	response.OK(c, outline)
}

// GetOutline 获取大纲详情（含审核历史）
// GET /api/v1/outlines/:id
func (h *OutlineHandler) GetOutline(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "大纲ID不能为空")
		return
	}

	outline, err := h.outlineSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleOutlineError(c, err)
		return
	}

	response.OK(c, outline)
}

// ListOutlines 获取大纲列表
// GET /api/v1/outlines
func (h *OutlineHandler) ListOutlines(c *gin.Context) {
	var filter dto.OutlineFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	outlines, err := h.outlineSvc.List(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": outlines})
}

// ListPendingOutlines 审核工作台：列出等待指定角色审核的大纲
// GET /api/v1/outlines/pending/:role
func (h *OutlineHandler) ListPendingOutlines(c *gin.Context) {
	role := c.Param("role")
	if role == "" {
		response.BadRequest(c, "审核角色不能为空")
		return
	}

	outlines, err := h.outlineSvc.ListPendingForRole(c.Request.Context(), role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": outlines})
}

// handleOutlineError 统一处理教学大纲模块业务错误
func (h *OutlineHandler) handleOutlineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOutlineNotFound):
		response.NotFound(c, "大纲不存在")
	case errors.Is(err, service.ErrOutlineAssignmentGone):
		response.NotFound(c, "关联的课程分配不存在")
	case errors.Is(err, service.ErrOutlineAlreadyInReview):
		response.BadRequest(c, "大纲正在审核中，不能重复提交")
	case errors.Is(err, service.ErrOutlineAlreadyApproved):
		response.BadRequest(c, "大纲已通过审核，不能重新提交")
	case errors.Is(err, service.ErrOutlineNotReviewable):
		response.BadRequest(c, "大纲当前不在可审核状态")
	case errors.Is(err, service.ErrOutlineWrongReviewer):
		response.BadRequest(c, "当前审核阶段不属于该角色")
	default:
		response.InternalError(c)
	}
}
