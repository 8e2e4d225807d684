package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/service"
	"github.com/junaidaslam934/acadmic-solution-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock SemesterService ──

type mockSemesterService struct {
	createResult  *dto.SemesterResponse
	createErr     error
	getResult     *dto.SemesterResponse
	getErr        error
	listResult    []dto.SemesterResponse
	listErr       error
	updateResult  *dto.SemesterResponse
	updateErr     error
	advanceResult *dto.SemesterResponse
	advanceErr    error
	deleteErr     error
}

func (m *mockSemesterService) Create(_ context.Context, _ *dto.CreateSemesterRequest, _ string) (*dto.SemesterResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockSemesterService) GetByID(_ context.Context, _ string) (*dto.SemesterResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockSemesterService) List(_ context.Context) ([]dto.SemesterResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockSemesterService) Update(_ context.Context, _ string, _ *dto.UpdateSemesterRequest, _ string) (*dto.SemesterResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSemesterService) Advance(_ context.Context, _ string, _ string) (*dto.SemesterResponse, error) {
	return m.advanceResult, m.advanceErr
}
func (m *mockSemesterService) Delete(_ context.Context, _ string, _ string) error {
	return m.deleteErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	assignResult *dto.AssignmentResponse
	assignErr    error
	getResult    *dto.AssignmentResponse
	getErr       error
	listResult   []dto.AssignmentResponse
	listErr      error
	updateResult *dto.AssignmentResponse
	updateErr    error
	removeErr    error
}

func (m *mockAssignmentService) Assign(_ context.Context, _ *dto.AssignCourseRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.assignResult, m.assignErr
}
func (m *mockAssignmentService) GetByID(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAssignmentService) List(_ context.Context, _ *dto.AssignmentFilter) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAssignmentService) Update(_ context.Context, _ string, _ *dto.UpdateAssignmentRequest, _ string) (*dto.AssignmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAssignmentService) Remove(_ context.Context, _ string, _ string) error {
	return m.removeErr
}

// ── Mock OutlineService ──

type mockOutlineService struct {
	submitResult  *dto.OutlineResponse
	submitErr     error
	reviewResult  *dto.OutlineResponse
	reviewErr     error
	getResult     *dto.OutlineResponse
	getErr        error
	listResult    []dto.OutlineResponse
	listErr       error
	pendingResult []dto.OutlineResponse
	pendingErr    error
}

func (m *mockOutlineService) Submit(_ context.Context, _ *dto.SubmitOutlineRequest, _ string) (*dto.OutlineResponse, error) {
	return m.submitResult, m.submitErr
}
func (m *mockOutlineService) Review(_ context.Context, _ string, _ *dto.ReviewOutlineRequest) (*dto.OutlineResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockOutlineService) GetByID(_ context.Context, _ string) (*dto.OutlineResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockOutlineService) List(_ context.Context, _ *dto.OutlineFilter) ([]dto.OutlineResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockOutlineService) ListPendingForRole(_ context.Context, _ string) ([]dto.OutlineResponse, error) {
	return m.pendingResult, m.pendingErr
}

// ── Mock BookingService ──

type mockBookingService struct {
	bookResult   *dto.BookingResponse
	bookErr      error
	getResult    *dto.BookingResponse
	getErr       error
	listResult   []dto.BookingResponse
	listErr      error
	updateResult *dto.BookingResponse
	updateErr    error
	cancelErr    error
}

func (m *mockBookingService) Book(_ context.Context, _ *dto.CreateBookingRequest, _ string) (*dto.BookingResponse, error) {
	return m.bookResult, m.bookErr
}
func (m *mockBookingService) GetByID(_ context.Context, _ string) (*dto.BookingResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockBookingService) List(_ context.Context, _ *dto.BookingFilter) ([]dto.BookingResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockBookingService) Update(_ context.Context, _ string, _ *dto.UpdateBookingRequest, _ string) (*dto.BookingResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockBookingService) Cancel(_ context.Context, _ string, _ string) error {
	return m.cancelErr
}

// ── Mock ExportService ──

type mockExportService struct {
	excelBuf      *bytes.Buffer
	excelFilename string
	excelErr      error
	icsBuf        *bytes.Buffer
	icsFilename   string
	icsErr        error
}

func (m *mockExportService) ExportTimetableExcel(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.excelBuf, m.excelFilename, m.excelErr
}
func (m *mockExportService) ExportCalendarICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.icsBuf, m.icsFilename, m.icsErr
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setAuth(c *gin.Context) {
	c.Set("user_id", "test-user-id")
	c.Set("role", "admin")
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// SemesterHandler Tests
// ═══════════════════════════════════════════════════════════

func TestSemesterHandler_Create_Success(t *testing.T) {
	mock := &mockSemesterService{
		createResult: &dto.SemesterResponse{ID: "sem-001", Status: "planning"},
	}
	h := NewSemesterHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/semesters", jsonBody(dto.CreateSemesterRequest{
		AcademicYear: "2025-2026",
		Type:         "fall",
		StartDate:    "2025-09-01",
		EndDate:      "2026-01-15",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/semesters", func(c *gin.Context) {
		setAuth(c)
		h.CreateSemester(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
	resp := parseResponse(w)
	if !resp.Success {
		t.Errorf("expected success=true, got error %q", resp.Error)
	}
}

func TestSemesterHandler_Create_BadJSON(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/semesters", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/semesters", func(c *gin.Context) {
		setAuth(c)
		h.CreateSemester(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSemesterHandler_Create_Unauthenticated(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/semesters", jsonBody(dto.CreateSemesterRequest{
		AcademicYear: "2025-2026",
		Type:         "fall",
		StartDate:    "2025-09-01",
		EndDate:      "2026-01-15",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/semesters", h.CreateSemester)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestSemesterHandler_Get_NotFound(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{getErr: service.ErrSemesterNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/semesters/missing", nil)

	r := gin.New()
	r.GET("/semesters/:id", h.GetSemester)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestSemesterHandler_Advance_Completed(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{advanceErr: service.ErrSemesterCompleted})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/semesters/sem-001/advance", nil)

	r := gin.New()
	r.PUT("/semesters/:id/advance", func(c *gin.Context) {
		setAuth(c)
		h.AdvanceSemester(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSemesterHandler_Delete_HasDependents(t *testing.T) {
	h := NewSemesterHandler(&mockSemesterService{deleteErr: service.ErrSemesterHasDependents})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/semesters/sem-001", nil)

	r := gin.New()
	r.DELETE("/semesters/:id", func(c *gin.Context) {
		setAuth(c)
		h.DeleteSemester(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_Assign_Success(t *testing.T) {
	mock := &mockAssignmentService{
		assignResult: &dto.AssignmentResponse{ID: "asg-001", OutlineStatus: "pending"},
	}
	h := NewAssignmentHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/course-assignments", jsonBody(dto.AssignCourseRequest{
		TeacherID: "t-001",
		CourseID:  "c-101",
		Year:      1,
		Semester:  1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/course-assignments", func(c *gin.Context) {
		setAuth(c)
		h.AssignCourse(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAssignmentHandler_Assign_PhaseMismatch(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{assignErr: service.ErrAssignmentPhaseMismatch})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/course-assignments", jsonBody(dto.AssignCourseRequest{
		TeacherID:  "t-001",
		CourseID:   "c-101",
		Year:       1,
		Semester:   1,
		SemesterID: "sem-001",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/course-assignments", func(c *gin.Context) {
		setAuth(c)
		h.AssignCourse(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAssignmentHandler_Assign_TeacherNotFound(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{assignErr: service.ErrAssignTeacherNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/course-assignments", jsonBody(dto.AssignCourseRequest{
		TeacherID: "missing",
		CourseID:  "c-101",
		Year:      1,
		Semester:  1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/course-assignments", func(c *gin.Context) {
		setAuth(c)
		h.AssignCourse(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// OutlineHandler Tests
// ═══════════════════════════════════════════════════════════

func TestOutlineHandler_Submit_Success(t *testing.T) {
	mock := &mockOutlineService{
		submitResult: &dto.OutlineResponse{ID: "out-001", Status: "submitted"},
	}
	h := NewOutlineHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/outlines", jsonBody(dto.SubmitOutlineRequest{
		AssignmentID: "asg-001",
		TeacherID:    "t-001",
		CourseID:     "c-101",
		FileURL:      "https://files.example.com/outline.pdf",
		FileName:     "outline.pdf",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/outlines", func(c *gin.Context) {
		setAuth(c)
		h.SubmitOutline(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestOutlineHandler_Review_WrongReviewer(t *testing.T) {
	h := NewOutlineHandler(&mockOutlineService{reviewErr: service.ErrOutlineWrongReviewer})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/outlines/out-001/review", jsonBody(dto.ReviewOutlineRequest{
		ReviewerID:   "u-001",
		ReviewerRole: "chairman",
		Decision:     "approved",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/outlines/:id/review", h.ReviewOutline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestOutlineHandler_Review_BadDecision(t *testing.T) {
	h := NewOutlineHandler(&mockOutlineService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/outlines/out-001/review", jsonBody(dto.ReviewOutlineRequest{
		ReviewerID:   "u-001",
		ReviewerRole: "advisor",
		Decision:     "maybe", // oneof 校验失败
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/outlines/:id/review", h.ReviewOutline)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestOutlineHandler_ListPending(t *testing.T) {
	mock := &mockOutlineService{
		pendingResult: []dto.OutlineResponse{{ID: "out-001"}, {ID: "out-002"}},
	}
	h := NewOutlineHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/outlines/pending/coordinator", nil)

	r := gin.New()
	r.GET("/outlines/pending/:role", h.ListPendingOutlines)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if !resp.Success {
		t.Errorf("expected success=true, got error %q", resp.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// BookingHandler Tests
// ═══════════════════════════════════════════════════════════

func TestBookingHandler_Create_SlotConflict(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{bookErr: service.ErrBookingSlotConflict})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SemesterID:   "sem-001",
		CourseID:     "c-101",
		TeacherID:    "t-001",
		AssignmentID: "asg-001",
		Year:         1,
		Section:      "A",
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "10:00",
		Room:         "A-201",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bookings", func(c *gin.Context) {
		setAuth(c)
		h.CreateBooking(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Success {
		t.Error("expected success=false")
	}
}

func TestBookingHandler_Create_NotSchedulingPhase(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{bookErr: service.ErrBookingNotSchedulingPhase})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/bookings", jsonBody(dto.CreateBookingRequest{
		SemesterID:   "sem-001",
		CourseID:     "c-101",
		TeacherID:    "t-001",
		AssignmentID: "asg-001",
		Year:         1,
		Section:      "A",
		DayOfWeek:    1,
		StartTime:    "09:00",
		EndTime:      "10:00",
		Room:         "A-201",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/bookings", func(c *gin.Context) {
		setAuth(c)
		h.CreateBooking(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestBookingHandler_Cancel_Success(t *testing.T) {
	h := NewBookingHandler(&mockBookingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/bookings/bkg-001", nil)

	r := gin.New()
	r.DELETE("/bookings/:id", func(c *gin.Context) {
		setAuth(c)
		h.CancelBooking(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Timetable_Success(t *testing.T) {
	mock := &mockExportService{
		excelBuf:      bytes.NewBufferString("fake-xlsx-bytes"),
		excelFilename: "课表_2025-2026_fall.xlsx",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/timetable?semester_id=sem-001", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	disposition := w.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment;") {
		t.Errorf("expected attachment disposition, got %q", disposition)
	}
	if w.Body.Len() == 0 {
		t.Error("expected non-empty body")
	}
}

func TestExportHandler_Timetable_MissingSemesterID(t *testing.T) {
	h := NewExportHandler(&mockExportService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/timetable", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExportHandler_Calendar_NoBookingsStillExports(t *testing.T) {
	// 校历导出不依赖预订存在，空学期也能产出合法 ICS
	mock := &mockExportService{
		icsBuf:      bytes.NewBufferString("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"),
		icsFilename: "校历_2025-2026_fall.ics",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/calendar?semester_id=sem-001", nil)

	r := gin.New()
	r.GET("/export/calendar", h.ExportCalendar)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Type"), "text/calendar") {
		t.Errorf("expected text/calendar content type, got %q", w.Header().Get("Content-Type"))
	}
}

func TestExportHandler_Timetable_SemesterNotFound(t *testing.T) {
	h := NewExportHandler(&mockExportService{excelErr: service.ErrExportSemesterNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/timetable?semester_id=missing", nil)

	r := gin.New()
	r.GET("/export/timetable", h.ExportTimetable)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
