package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/webhook"
)

// ── 教学大纲模块业务错误 ──

var (
	ErrOutlineNotFound        = errors.New("大纲不存在")
	ErrOutlineAssignmentGone  = errors.New("关联的课程分配不存在")
	ErrOutlineAlreadyInReview = errors.New("大纲正在审核中，不能重复提交")
	ErrOutlineAlreadyApproved = errors.New("大纲已通过审核，不能重新提交")
	ErrOutlineNotReviewable   = errors.New("大纲当前不在可审核状态")
	ErrOutlineWrongReviewer   = errors.New("当前审核阶段不属于该角色")
)

// OutlineService 教学大纲提交与审核业务接口
//
// 审核链固定：advisor → coordinator → co_chairman → chairman。
// 任一环节拒绝即终止，后续环节不再触达；四级全部通过才是 approved。
// 拒绝后教师可重新提交：version 递增，链路从 advisor 重新开始。
type OutlineService interface {
	Submit(ctx context.Context, req *dto.SubmitOutlineRequest, callerID string) (*dto.OutlineResponse, error)
	Review(ctx context.Context, outlineID string, req *dto.ReviewOutlineRequest) (*dto.OutlineResponse, error)
	GetByID(ctx context.Context, id string) (*dto.OutlineResponse, error)
	List(ctx context.Context, filter *dto.OutlineFilter) ([]dto.OutlineResponse, error)
	// ListPendingForRole 列出等待某角色审核的大纲（审核工作台视图）
	ListPendingForRole(ctx context.Context, role string) ([]dto.OutlineResponse, error)
}

type outlineService struct {
	repo     *repository.Repository
	notifier *webhook.Notifier
	logger   *zap.Logger
}

// NewOutlineService 创建 OutlineService 实例
func NewOutlineService(repo *repository.Repository, notifier *webhook.Notifier, logger *zap.Logger) OutlineService {
	return &outlineService{repo: repo, notifier: notifier, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *outlineService) Submit(ctx context.Context, req *dto.SubmitOutlineRequest, callerID string) (*dto.OutlineResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutlineAssignmentGone
		}
		s.logger.Error("查询课程分配失败", zap.String("assignment_id", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	advisor := model.RoleAdvisor

	existing, err := s.repo.Outline.GetByAssignment(ctx, req.AssignmentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询大纲失败", zap.String("assignment_id", req.AssignmentID), zap.Error(err))
		return nil, err
	}

	var outline *model.Outline
	if existing != nil {
		// 每个分配至多一份在案大纲：只有被拒后才允许覆盖重提
		switch existing.Status {
		case model.OutlineApproved:
			return nil, ErrOutlineAlreadyApproved
		case model.OutlineRejected:
			// 重新提交走同一行：版本递增，链路归零
			existing.FileURL = req.FileURL
			existing.FileName = req.FileName
			existing.Version++
			existing.Status = model.OutlineSubmitted
			existing.CurrentReviewerRole = &advisor
			existing.UpdatedBy = &callerID
			outline = existing
		default:
			return nil, ErrOutlineAlreadyInReview
		}
	} else {
		outline = &model.Outline{
			AssignmentID:        req.AssignmentID,
			TeacherID:           req.TeacherID,
			CourseID:            req.CourseID,
			SemesterID:          req.SemesterID,
			FileURL:             req.FileURL,
			FileName:            req.FileName,
			Version:             1,
			Status:              model.OutlineSubmitted,
			CurrentReviewerRole: &advisor,
		}
		outline.CreatedBy = &callerID
		outline.UpdatedBy = &callerID
	}

	// 大纲写入与分配状态镜像同一事务落库
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if existing != nil {
		err = txRepo.Outline.Update(ctx, outline)
	} else {
		err = txRepo.Outline.Create(ctx, outline)
	}
	if err == nil {
		err = txRepo.Assignment.UpdateOutlineStatus(ctx, assignment.AssignmentID, model.OutlineSubmitted, callerID)
	}
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("提交大纲失败", zap.String("assignment_id", req.AssignmentID), zap.Error(err))
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	// 文件地址异步转发给外部生成服务，失败不影响提交结果
	s.notifier.Forward(webhook.ForwardPayload{
		SemesterID:   req.SemesterID,
		AssignmentID: req.AssignmentID,
		CourseID:     req.CourseID,
		FileURL:      req.FileURL,
		FileName:     req.FileName,
	})

	s.logger.Info("大纲已提交",
		zap.String("outline_id", outline.OutlineID),
		zap.String("assignment_id", req.AssignmentID),
		zap.Int("version", outline.Version),
	)

	return s.toOutlineResponse(ctx, outline, false)
}

// ────────────────────── Review ──────────────────────

func (s *outlineService) Review(ctx context.Context, outlineID string, req *dto.ReviewOutlineRequest) (*dto.OutlineResponse, error) {
	outline, err := s.repo.Outline.GetByID(ctx, outlineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutlineNotFound
		}
		s.logger.Error("查询大纲失败", zap.String("id", outlineID), zap.Error(err))
		return nil, err
	}

	// 终态（approved/rejected）或待提交状态都不可审核
	if outline.CurrentReviewerRole == nil {
		return nil, ErrOutlineNotReviewable
	}
	// 链路顺序裁决：只有当前环节的角色有权落决定，跳级与越权一律拒绝
	if *outline.CurrentReviewerRole != req.ReviewerRole {
		return nil, ErrOutlineWrongReviewer
	}

	var nextStatus string
	var nextRole *string
	if req.Decision == "approved" {
		if next := model.NextReviewerRole(req.ReviewerRole); next != "" {
			nextStatus = model.ReviewStageStatus[next]
			nextRole = &next
		} else {
			// chairman 通过即终审通过
			nextStatus = model.OutlineApproved
		}
	} else {
		// 任一环节拒绝即终止整条链
		nextStatus = model.OutlineRejected
	}

	outline.Status = nextStatus
	outline.CurrentReviewerRole = nextRole
	outline.UpdatedBy = &req.ReviewerID

	decision := &model.ReviewDecision{
		OutlineID:    outline.OutlineID,
		ReviewerID:   req.ReviewerID,
		ReviewerRole: req.ReviewerRole,
		Decision:     req.Decision,
		Comments:     req.Comments,
	}

	// 大纲状态、审核记录与分配镜像同一事务提交
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Outline.Update(ctx, outline); err == nil {
		if err = txRepo.Outline.AppendDecision(ctx, decision); err == nil {
			err = txRepo.Assignment.UpdateOutlineStatus(ctx, outline.AssignmentID, nextStatus, req.ReviewerID)
		}
	}
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("落审核决定失败", zap.String("outline_id", outlineID), zap.Error(err))
		return nil, err
	}
	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("审核决定已记录",
		zap.String("outline_id", outlineID),
		zap.String("reviewer_role", req.ReviewerRole),
		zap.String("decision", req.Decision),
		zap.String("outline_status", nextStatus),
	)

	return s.toOutlineResponse(ctx, outline, true)
}

// ────────────────────── GetByID ──────────────────────

func (s *outlineService) GetByID(ctx context.Context, id string) (*dto.OutlineResponse, error) {
	outline, err := s.repo.Outline.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOutlineNotFound
		}
		s.logger.Error("查询大纲失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toOutlineResponse(ctx, outline, true)
}

// ────────────────────── List ──────────────────────

func (s *outlineService) List(ctx context.Context, filter *dto.OutlineFilter) ([]dto.OutlineResponse, error) {
	outlines, err := s.repo.Outline.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出大纲失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.OutlineResponse, 0, len(outlines))
	for i := range outlines {
		resp, err := s.toOutlineResponse(ctx, &outlines[i], false)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}

	return result, nil
}

// ────────────────────── ListPendingForRole ──────────────────────

func (s *outlineService) ListPendingForRole(ctx context.Context, role string) ([]dto.OutlineResponse, error) {
	return s.List(ctx, &dto.OutlineFilter{CurrentReviewerRole: role})
}

// ── 内部辅助方法 ──

func (s *outlineService) toOutlineResponse(ctx context.Context, outline *model.Outline, withHistory bool) (*dto.OutlineResponse, error) {
	resp := &dto.OutlineResponse{
		ID:                  outline.OutlineID,
		AssignmentID:        outline.AssignmentID,
		TeacherID:           outline.TeacherID,
		CourseID:            outline.CourseID,
		SemesterID:          outline.SemesterID,
		FileURL:             outline.FileURL,
		FileName:            outline.FileName,
		Version:             outline.Version,
		Status:              outline.Status,
		CurrentReviewerRole: outline.CurrentReviewerRole,
		CreatedAt:           outline.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:           outline.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if withHistory {
		decisions, err := s.repo.Outline.ListDecisions(ctx, outline.OutlineID)
		if err != nil {
			s.logger.Error("查询审核记录失败", zap.String("outline_id", outline.OutlineID), zap.Error(err))
			return nil, err
		}
		history := make([]dto.ReviewDecisionResponse, 0, len(decisions))
		for _, d := range decisions {
			history = append(history, dto.ReviewDecisionResponse{
				ReviewerID:   d.ReviewerID,
				ReviewerRole: d.ReviewerRole,
				Decision:     d.Decision,
				Comments:     d.Comments,
				DecidedAt:    d.DecidedAt.Format("2006-01-02T15:04:05Z"),
			})
		}
		resp.History = history
	}

	return resp, nil
}
