package model

// 大纲状态（镜像在课程分配上，随审核链同步）
const (
	OutlinePending        = "pending"
	OutlineSubmitted      = "submitted" // advisor 待审即提交态，链上无独立 advisor_review
	OutlineCoordReview    = "coordinator_review"
	OutlineCoChairReview  = "co_chairman_review"
	OutlineChairmanReview = "chairman_review"
	OutlineApproved       = "approved"
	OutlineRejected       = "rejected"
)

// CourseAssignment 课程分配表 — 对应 course_assignments
// 唯一键 (teacher_id, course_id, year, semester, semester_id)：
// 同键重复写入是 upsert 更新而非新增；semester_id 缺省以空串参与键
type CourseAssignment struct {
	AssignmentID        string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	TeacherID           string      `gorm:"type:varchar(64);not null"                      json:"teacher_id"`
	CourseID            string      `gorm:"type:varchar(64);not null"                      json:"course_id"`
	SemesterID          string      `gorm:"type:varchar(64);not null;default:''"           json:"semester_id"`
	Year                int         `gorm:"not null"                                       json:"year"`     // 1–4
	Semester            int         `gorm:"not null"                                       json:"semester"` // 1 | 2
	Sections            StringArray `gorm:"type:text[];not null;default:'{}'"              json:"sections"`
	IsShared            bool        `gorm:"not null;default:false"                         json:"is_shared"`
	CreditHoursAssigned int         `gorm:"not null;default:0"                             json:"credit_hours_assigned"`
	OutlineStatus       string      `gorm:"type:varchar(30);not null;default:'pending'"    json:"outline_status"`
	SoftDeleteModel
}

// TableName 指定表名
func (CourseAssignment) TableName() string { return "course_assignments" }
