package dto

// ── 课表预订模块 DTO ──

// CreateBookingRequest 创建预订请求
// slot_number 与显式 start_time/end_time 二选一：给出 slot_number 时
// 起止时间从学期时间段定义解析
type CreateBookingRequest struct {
	SemesterID   string `json:"semester_id"   binding:"required"`
	CourseID     string `json:"course_id"     binding:"required"`
	TeacherID    string `json:"teacher_id"    binding:"required"`
	AssignmentID string `json:"assignment_id" binding:"required"`
	Year         int    `json:"year"          binding:"required,min=1,max=4"`
	Section      string `json:"section"       binding:"required,max=20"`
	DayOfWeek    int    `json:"day_of_week"   binding:"min=0,max=6"`
	SlotNumber   *int   `json:"slot_number"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Room         string `json:"room"          binding:"required,max=50"`
}

// UpdateBookingRequest 更新预订请求（改时间或教室会重新检查冲突）
type UpdateBookingRequest struct {
	DayOfWeek  *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	SlotNumber *int    `json:"slot_number"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Room       *string `json:"room"        binding:"omitempty,max=50"`
	Section    *string `json:"section"     binding:"omitempty,max=20"`
}

// BookingFilter 预订列表过滤条件
type BookingFilter struct {
	SemesterID string `form:"semester_id"`
	CourseID   string `form:"course_id"`
	TeacherID  string `form:"teacher_id"`
	Year       int    `form:"year"`
	Section    string `form:"section"`
}

// BookingResponse 预订响应
type BookingResponse struct {
	ID                 string `json:"id"`
	SemesterID         string `json:"semester_id"`
	CourseID           string `json:"course_id"`
	TeacherID          string `json:"teacher_id"`
	AssignmentID       string `json:"assignment_id"`
	Year               int    `json:"year"`
	Section            string `json:"section"`
	DayOfWeek          int    `json:"day_of_week"`
	SlotNumber         *int   `json:"slot_number,omitempty"`
	StartTime          string `json:"start_time"`
	EndTime            string `json:"end_time"`
	Room               string `json:"room"`
	CreditHoursPerWeek int    `json:"credit_hours_per_week"`
	CreatedAt          string `json:"created_at"`
}
