package model

import "time"

// 学期生命周期状态，只允许按固定顺序向前推进
const (
	SemesterPlanning          = "planning"
	SemesterCourseAssignment  = "course_assignment"
	SemesterOutlineSubmission = "outline_submission"
	SemesterOutlineReview     = "outline_review"
	SemesterScheduling        = "scheduling"
	SemesterActive            = "active"
	SemesterCompleted         = "completed"
)

// SemesterStatusOrder 生命周期固定顺序
var SemesterStatusOrder = []string{
	SemesterPlanning,
	SemesterCourseAssignment,
	SemesterOutlineSubmission,
	SemesterOutlineReview,
	SemesterScheduling,
	SemesterActive,
	SemesterCompleted,
}

// SemesterStatusIndex 返回状态在固定顺序中的下标
// 未知状态按 planning 处理（历史数据兜底）
func SemesterStatusIndex(status string) int {
	for i, s := range SemesterStatusOrder {
		if s == status {
			return i
		}
	}
	return 0
}

// Semester 学期表 — 对应 semesters
type Semester struct {
	SemesterID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"semester_id"`
	AcademicYear       string     `gorm:"type:varchar(20);not null"                        json:"academic_year"` // "2025-2026"
	Type               string     `gorm:"type:varchar(10);not null"                        json:"type"`          // fall | spring | summer
	Status             string     `gorm:"type:varchar(30);not null;default:'planning'"     json:"status"`
	StartDate          time.Time  `gorm:"type:date;not null"                               json:"start_date"`
	EndDate            time.Time  `gorm:"type:date;not null"                               json:"end_date"`
	Sections           SectionMap `gorm:"type:jsonb;not null;default:'{}'"                 json:"sections"`
	TimeSlots          SlotList   `gorm:"type:jsonb;not null;default:'[]'"                 json:"time_slots"`
	WorkingDays        IntArray   `gorm:"type:int[];not null;default:'{}'"                 json:"working_days"` // 0=周日 … 6=周六
	OutlineDeadline    *time.Time `gorm:"type:date"                                        json:"outline_deadline,omitempty"`
	SchedulingDeadline *time.Time `gorm:"type:date"                                        json:"scheduling_deadline,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Semester) TableName() string { return "semesters" }

// SemesterWeek 学期周表 — 对应 semester_weeks（由校历重建）
type SemesterWeek struct {
	WeekID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"week_id"`
	SemesterID    string    `gorm:"type:varchar(64);not null"                      json:"semester_id"`
	WeekNumber    int       `gorm:"not null"                                       json:"week_number"`
	StartDate     time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate       time.Time `gorm:"type:date;not null"                             json:"end_date"`
	IsHoliday     bool      `gorm:"not null;default:false"                         json:"is_holiday"`
	HolidayReason string    `gorm:"type:varchar(255);not null;default:''"          json:"holiday_reason"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (SemesterWeek) TableName() string { return "semester_weeks" }
