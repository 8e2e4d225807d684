package model

// Teacher 教师目录 — 对应 teachers
// 外部身份服务的本地镜像，仅存展示所需的摘要字段
type Teacher struct {
	TeacherID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"teacher_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string `gorm:"type:varchar(255);not null"                     json:"email"`
	Department string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	SoftDeleteModel
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }
