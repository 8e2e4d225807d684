package model

// Course 规范化课程表 — 对应 courses
type Course struct {
	CourseID    string `gorm:"type:varchar(64);primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code        string `gorm:"type:varchar(32);not null"                             json:"code"`
	Title       string `gorm:"type:varchar(200);not null"                            json:"title"`
	CreditHours int    `gorm:"not null;default:3"                                    json:"credit_hours"`
	Year        int    `gorm:"not null"                                              json:"year"`
	Semester    int    `gorm:"not null"                                              json:"semester"`
	SoftDeleteModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// LegacyCourse 历史遗留的扁平课程表 — 对应 legacy_courses
// 字段命名与新表不同（name/credits），仅作回退查找，不再写入
type LegacyCourse struct {
	CourseID string `gorm:"type:varchar(64);primaryKey" json:"course_id"`
	Name     string `gorm:"type:varchar(200);not null"  json:"name"`
	Credits  int    `gorm:"not null;default:3"          json:"credits"`
	Year     int    `gorm:"not null;default:0"          json:"year"`
	Semester int    `gorm:"not null;default:0"          json:"semester"`
}

// TableName 指定表名
func (LegacyCourse) TableName() string { return "legacy_courses" }

// CourseSummary 两个课程存储统一后的课程摘要
// Registry 与 Allocator 只消费此摘要，不区分记录来自哪张表
type CourseSummary struct {
	CourseID    string `json:"course_id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	CreditHours int    `json:"credit_hours"`
	Year        int    `json:"year"`
	Semester    int    `json:"semester"`
	Legacy      bool   `json:"legacy"`
}

// Summary 由规范化课程生成摘要
func (c *Course) Summary() *CourseSummary {
	return &CourseSummary{
		CourseID:    c.CourseID,
		Code:        c.Code,
		Title:       c.Title,
		CreditHours: c.CreditHours,
		Year:        c.Year,
		Semester:    c.Semester,
	}
}

// Summary 由遗留课程生成摘要
func (c *LegacyCourse) Summary() *CourseSummary {
	return &CourseSummary{
		CourseID:    c.CourseID,
		Code:        c.CourseID,
		Title:       c.Name,
		CreditHours: c.Credits,
		Year:        c.Year,
		Semester:    c.Semester,
		Legacy:      true,
	}
}
