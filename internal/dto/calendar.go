package dto

// ── 校历模块 DTO ──

// CreateHolidayRequest 登记节假日请求
type CreateHolidayRequest struct {
	SemesterID string `json:"semester_id" binding:"required"`
	Date       string `json:"date"        binding:"required"` // "2025-09-04"
	Reason     string `json:"reason"      binding:"required,max=255"`
}

// CreateMakeupRequest 登记补课请求
type CreateMakeupRequest struct {
	SemesterID  string `json:"semester_id"  binding:"required"`
	CourseID    string `json:"course_id"    binding:"required"`
	TeacherID   string `json:"teacher_id"   binding:"required"`
	Date        string `json:"date"         binding:"required"`
	StartTime   string `json:"start_time"   binding:"required"`
	EndTime     string `json:"end_time"     binding:"required"`
	Room        string `json:"room"         binding:"required,max=50"`
	CreditHours int    `json:"credit_hours" binding:"omitempty,min=0"`
	Reason      string `json:"reason"       binding:"max=255"`
}

// HolidayResponse 节假日响应
type HolidayResponse struct {
	ID         string `json:"id"`
	SemesterID string `json:"semester_id"`
	Date       string `json:"date"`
	Reason     string `json:"reason"`
}

// MakeupResponse 补课响应
type MakeupResponse struct {
	ID          string `json:"id"`
	SemesterID  string `json:"semester_id"`
	CourseID    string `json:"course_id"`
	TeacherID   string `json:"teacher_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Room        string `json:"room"`
	CreditHours int    `json:"credit_hours"`
	Reason      string `json:"reason,omitempty"`
}

// CalendarClass 校历中某一天的一节课
// 补课在前、循环课在后；type 标记来源
type CalendarClass struct {
	Type      string `json:"type"` // makeup | regular
	CourseID  string `json:"course_id"`
	TeacherID string `json:"teacher_id"`
	Section   string `json:"section,omitempty"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Room      string `json:"room"`
	Reason    string `json:"reason,omitempty"` // 仅补课携带
}

// CalendarDay 校历中的一天
type CalendarDay struct {
	Date          string          `json:"date"`
	DayOfWeek     int             `json:"day_of_week"` // 0=周日 … 6=周六
	IsHoliday     bool            `json:"is_holiday"`
	HolidayReason string          `json:"holiday_reason,omitempty"`
	Classes       []CalendarClass `json:"classes"`
}

// CalendarWeek 校历中的一周（末尾不足整周时照常输出）
type CalendarWeek struct {
	WeekNumber int           `json:"week_number"`
	WeekStart  string        `json:"week_start"`
	WeekEnd    string        `json:"week_end"`
	Days       []CalendarDay `json:"days"`
}

// CalendarResponse 完整校历投影
// 同一输入重复生成的结果逐字节一致
type CalendarResponse struct {
	SemesterID string         `json:"semester_id"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date"`
	TotalDays  int            `json:"total_days"`
	Weeks      []CalendarWeek `json:"weeks"`
}

// WeekResponse 学期周响应（RebuildWeeks 的持久化结果）
type WeekResponse struct {
	WeekNumber    int    `json:"week_number"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	IsHoliday     bool   `json:"is_holiday"`
	HolidayReason string `json:"holiday_reason,omitempty"`
}
