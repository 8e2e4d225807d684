package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTimetable 导出周课表为 Excel
// GET /api/v1/export/timetable?semester_id=xxx
func (h *ExportHandler) ExportTimetable(c *gin.Context) {
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		response.BadRequest(c, "semester_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportTimetableExcel(c.Request.Context(), semesterID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportCalendar 导出校历为 iCalendar
// GET /api/v1/export/calendar?semester_id=xxx
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	semesterID := c.Query("semester_id")
	if semesterID == "" {
		response.BadRequest(c, "semester_id 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendarICS(c.Request.Context(), semesterID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "text/calendar; charset=utf-8")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportSemesterNotFound):
		response.NotFound(c, "学期不存在")
	case errors.Is(err, service.ErrCalendarSemesterNotFound):
		response.NotFound(c, "学期不存在")
	case errors.Is(err, service.ErrExportNoBookings):
		response.BadRequest(c, "该学期暂无课表预订")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
