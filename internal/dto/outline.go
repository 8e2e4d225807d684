package dto

// ── 教学大纲模块 DTO ──

// SubmitOutlineRequest 提交（或重新提交）大纲请求
// 文件本体由外部托管，这里只登记地址与文件名
type SubmitOutlineRequest struct {
	AssignmentID string `json:"assignment_id" binding:"required"`
	TeacherID    string `json:"teacher_id"    binding:"required"`
	CourseID     string `json:"course_id"     binding:"required"`
	SemesterID   string `json:"semester_id"`
	FileURL      string `json:"file_url"      binding:"required,url"`
	FileName     string `json:"file_name"     binding:"required,max=255"`
}

// ReviewOutlineRequest 审核决定请求
type ReviewOutlineRequest struct {
	ReviewerID   string `json:"reviewer_id"   binding:"required"`
	ReviewerRole string `json:"reviewer_role" binding:"required,oneof=advisor coordinator co_chairman chairman"`
	Decision     string `json:"decision"      binding:"required,oneof=approved rejected"`
	Comments     string `json:"comments"      binding:"max=2000"`
}

// OutlineFilter 大纲列表过滤条件
type OutlineFilter struct {
	TeacherID           string `form:"teacher_id"`
	SemesterID          string `form:"semester_id"`
	Status              string `form:"status"`
	CurrentReviewerRole string `form:"current_reviewer_role"`
}

// ReviewDecisionResponse 单条审核记录
type ReviewDecisionResponse struct {
	ReviewerID   string `json:"reviewer_id"`
	ReviewerRole string `json:"reviewer_role"`
	Decision     string `json:"decision"`
	Comments     string `json:"comments,omitempty"`
	DecidedAt    string `json:"decided_at"`
}

// OutlineResponse 大纲响应
type OutlineResponse struct {
	ID                  string                   `json:"id"`
	AssignmentID        string                   `json:"assignment_id"`
	TeacherID           string                   `json:"teacher_id"`
	CourseID            string                   `json:"course_id"`
	SemesterID          string                   `json:"semester_id,omitempty"`
	FileURL             string                   `json:"file_url"`
	FileName            string                   `json:"file_name"`
	Version             int                      `json:"version"`
	Status              string                   `json:"status"`
	CurrentReviewerRole *string                  `json:"current_reviewer_role"`
	History             []ReviewDecisionResponse `json:"history,omitempty"`
	CreatedAt           string                   `json:"created_at"`
	UpdatedAt           string                   `json:"updated_at"`
}
