package dto

import "github.com/junaidaslam934/acadmic-solution-sub000/internal/model"

// ── 学期模块 DTO ──

// CreateSemesterRequest 创建学期请求
// 调用方传入的 status 一律忽略，新学期总是从 planning 开始
type CreateSemesterRequest struct {
	AcademicYear       string              `json:"academic_year"       binding:"required,min=4,max=20"`
	Type               string              `json:"type"                binding:"required,oneof=fall spring summer"`
	StartDate          string              `json:"start_date"          binding:"required"` // "2025-09-01"
	EndDate            string              `json:"end_date"            binding:"required"` // "2026-01-15"
	Sections           map[string][]string `json:"sections"`
	TimeSlots          []model.TimeSlotDef `json:"time_slots"`
	WorkingDays        []int               `json:"working_days"        binding:"omitempty,dive,min=0,max=6"`
	OutlineDeadline    *string             `json:"outline_deadline"`
	SchedulingDeadline *string             `json:"scheduling_deadline"`
}

// UpdateSemesterRequest 更新学期请求
type UpdateSemesterRequest struct {
	AcademicYear       *string             `json:"academic_year"       binding:"omitempty,min=4,max=20"`
	Type               *string             `json:"type"                binding:"omitempty,oneof=fall spring summer"`
	StartDate          *string             `json:"start_date"`
	EndDate            *string             `json:"end_date"`
	Sections           map[string][]string `json:"sections"`
	TimeSlots          []model.TimeSlotDef `json:"time_slots"`
	WorkingDays        []int               `json:"working_days"        binding:"omitempty,dive,min=0,max=6"`
	OutlineDeadline    *string             `json:"outline_deadline"`
	SchedulingDeadline *string             `json:"scheduling_deadline"`
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	ID                 string              `json:"id"`
	AcademicYear       string              `json:"academic_year"`
	Type               string              `json:"type"`
	Status             string              `json:"status"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	Sections           map[string][]string `json:"sections"`
	TimeSlots          []model.TimeSlotDef `json:"time_slots"`
	WorkingDays        []int               `json:"working_days"`
	OutlineDeadline    *string             `json:"outline_deadline,omitempty"`
	SchedulingDeadline *string             `json:"scheduling_deadline,omitempty"`
	CreatedAt          string              `json:"created_at"`
	UpdatedAt          string              `json:"updated_at"`
}

// SemesterSummary 其他模块响应中嵌入的学期摘要
type SemesterSummary struct {
	ID           string `json:"id"`
	AcademicYear string `json:"academic_year"`
	Type         string `json:"type"`
	Status       string `json:"status"`
}
