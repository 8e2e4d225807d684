package dto

// ── 课程分配模块 DTO ──

// AssignCourseRequest 创建/更新课程分配请求（同键 upsert）
type AssignCourseRequest struct {
	TeacherID           string   `json:"teacher_id"            binding:"required"`
	CourseID            string   `json:"course_id"             binding:"required"`
	Year                int      `json:"year"                  binding:"required,min=1,max=4"`
	Semester            int      `json:"semester"              binding:"required,oneof=1 2"`
	SemesterID          string   `json:"semester_id"`
	Sections            []string `json:"sections"`
	IsShared            bool     `json:"is_shared"`
	CreditHoursAssigned int      `json:"credit_hours_assigned" binding:"omitempty,min=0"`
}

// UpdateAssignmentRequest 按 ID 直接更新
type UpdateAssignmentRequest struct {
	Sections            []string `json:"sections"`
	IsShared            *bool    `json:"is_shared"`
	CreditHoursAssigned *int     `json:"credit_hours_assigned" binding:"omitempty,min=0"`
}

// AssignmentFilter 课程分配列表过滤条件
type AssignmentFilter struct {
	TeacherID     string `form:"teacher_id"`
	SemesterID    string `form:"semester_id"`
	Year          int    `form:"year"`
	OutlineStatus string `form:"outline_status"`
}

// TeacherSummary 嵌入响应的教师摘要
type TeacherSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
}

// CourseSummaryResponse 嵌入响应的课程摘要（两个物理存储统一后的视图）
type CourseSummaryResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	CreditHours int    `json:"credit_hours"`
	Legacy      bool   `json:"legacy,omitempty"`
}

// AssignmentResponse 课程分配响应
type AssignmentResponse struct {
	ID                  string                 `json:"id"`
	TeacherID           string                 `json:"teacher_id"`
	CourseID            string                 `json:"course_id"`
	SemesterID          string                 `json:"semester_id,omitempty"`
	Year                int                    `json:"year"`
	Semester            int                    `json:"semester"`
	Sections            []string               `json:"sections"`
	IsShared            bool                   `json:"is_shared"`
	CreditHoursAssigned int                    `json:"credit_hours_assigned"`
	OutlineStatus       string                 `json:"outline_status"`
	Teacher             *TeacherSummary        `json:"teacher,omitempty"`
	Course              *CourseSummaryResponse `json:"course,omitempty"`
	SemesterInfo        *SemesterSummary       `json:"semester_info,omitempty"`
	CreatedAt           string                 `json:"created_at"`
	UpdatedAt           string                 `json:"updated_at"`
}
