package model

import "time"

// Holiday 节假日表 — 对应 holidays
// 校历生成时该日期的所有课程被压制
type Holiday struct {
	HolidayID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"holiday_id"`
	SemesterID string    `gorm:"type:varchar(64);not null"                      json:"semester_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	Reason     string    `gorm:"type:varchar(255);not null;default:''"          json:"reason"`
	SoftDeleteModel
}

// TableName 指定表名
func (Holiday) TableName() string { return "holidays" }

// MakeupClass 补课表 — 对应 makeup_classes
// 精确到日期的一次性课程，覆盖在循环课表之上
type MakeupClass struct {
	MakeupID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"makeup_id"`
	SemesterID  string    `gorm:"type:varchar(64);not null"                      json:"semester_id"`
	CourseID    string    `gorm:"type:varchar(64);not null"                      json:"course_id"`
	TeacherID   string    `gorm:"type:varchar(64);not null"                      json:"teacher_id"`
	Date        time.Time `gorm:"type:date;not null"                             json:"date"`
	StartTime   string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Room        string    `gorm:"type:varchar(50);not null"                      json:"room"`
	CreditHours int       `gorm:"not null;default:0"                             json:"credit_hours"`
	Reason      string    `gorm:"type:varchar(255);not null;default:''"          json:"reason"`
	SoftDeleteModel
}

// TableName 指定表名
func (MakeupClass) TableName() string { return "makeup_classes" }
