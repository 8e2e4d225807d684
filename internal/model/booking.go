package model

// TimetableBooking 课表预订表 — 对应 bookings
// 旧版 Timetable 与 Booking 两条写入路径已合并为此单一实体，
// 冲突检查只有一条路径：唯一键 (semester_id, day_of_week, start_time, end_time, room)
type TimetableBooking struct {
	BookingID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"booking_id"`
	SemesterID   string `gorm:"type:varchar(64);not null"                      json:"semester_id"`
	CourseID     string `gorm:"type:varchar(64);not null"                      json:"course_id"`
	TeacherID    string `gorm:"type:varchar(64);not null"                      json:"teacher_id"`
	AssignmentID string `gorm:"type:varchar(64);not null"                      json:"assignment_id"`
	Year         int    `gorm:"not null"                                       json:"year"`
	Section      string `gorm:"type:varchar(20);not null"                      json:"section"`
	DayOfWeek    int    `gorm:"not null"                                       json:"day_of_week"` // 0=周日 … 6=周六
	SlotNumber   *int   `gorm:""                                               json:"slot_number,omitempty"`
	StartTime    string `gorm:"type:varchar(5);not null"                       json:"start_time"` // "09:00"
	EndTime      string `gorm:"type:varchar(5);not null"                       json:"end_time"`
	Room         string `gorm:"type:varchar(50);not null"                      json:"room"`
	// 创建时从课程快照的每周学时，非实时引用
	CreditHoursPerWeek int `gorm:"not null;default:0" json:"credit_hours_per_week"`
	SoftDeleteModel
}

// TableName 指定表名
func (TimetableBooking) TableName() string { return "bookings" }
