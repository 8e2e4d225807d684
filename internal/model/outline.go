package model

import "time"

// 审核角色链，固定顺序，不可跳级
const (
	RoleAdvisor     = "advisor"
	RoleCoordinator = "coordinator"
	RoleCoChairman  = "co_chairman"
	RoleChairman    = "chairman"
)

// ReviewerChain 审核角色固定顺序
var ReviewerChain = []string{RoleAdvisor, RoleCoordinator, RoleCoChairman, RoleChairman}

// ReviewStageStatus 角色 → 该角色待审时的大纲状态
var ReviewStageStatus = map[string]string{
	RoleAdvisor:     OutlineSubmitted,
	RoleCoordinator: OutlineCoordReview,
	RoleCoChairman:  OutlineCoChairReview,
	RoleChairman:    OutlineChairmanReview,
}

// NextReviewerRole 返回链中下一个角色；chairman 之后返回空串（链结束）
func NextReviewerRole(role string) string {
	for i, r := range ReviewerChain {
		if r == role && i+1 < len(ReviewerChain) {
			return ReviewerChain[i+1]
		}
	}
	return ""
}

// Outline 教学大纲表 — 对应 outlines
// 每个课程分配至多一份在案大纲；拒绝后重新提交只递增 version，不新建行
type Outline struct {
	OutlineID           string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"outline_id"`
	AssignmentID        string  `gorm:"type:uuid;not null"                             json:"assignment_id"`
	TeacherID           string  `gorm:"type:varchar(64);not null"                      json:"teacher_id"`
	CourseID            string  `gorm:"type:varchar(64);not null"                      json:"course_id"`
	SemesterID          string  `gorm:"type:varchar(64);not null;default:''"           json:"semester_id"`
	FileURL             string  `gorm:"type:text;not null"                             json:"file_url"`
	FileName            string  `gorm:"type:varchar(255);not null"                     json:"file_name"`
	Version             int     `gorm:"not null;default:1"                             json:"version"`
	Status              string  `gorm:"type:varchar(30);not null;default:'submitted'"  json:"status"`
	CurrentReviewerRole *string `gorm:"type:varchar(30)"                               json:"current_reviewer_role"` // 终态时为 NULL
	SoftDeleteModel
}

// TableName 指定表名
func (Outline) TableName() string { return "outlines" }

// ReviewDecision 审核记录表 — 对应 review_decisions
// 只追加：审核历史不允许编辑或删除
type ReviewDecision struct {
	DecisionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"decision_id"`
	OutlineID    string    `gorm:"type:uuid;not null"                             json:"outline_id"`
	ReviewerID   string    `gorm:"type:varchar(64);not null"                      json:"reviewer_id"`
	ReviewerRole string    `gorm:"type:varchar(30);not null"                      json:"reviewer_role"`
	Decision     string    `gorm:"type:varchar(10);not null"                      json:"decision"` // approved | rejected
	Comments     string    `gorm:"type:text;not null;default:''"                  json:"comments"`
	DecidedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"decided_at"`
}

// TableName 指定表名
func (ReviewDecision) TableName() string { return "review_decisions" }
