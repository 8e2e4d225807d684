package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/dto"
	"github.com/junaidaslam934/acadmic-solution-sub000/internal/model"
)

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.CourseSummary
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.CourseSummary)}
}

func (m *mockCourseRepo) FindByID(_ context.Context, id string) (*model.CourseSummary, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.CourseSummary, error) {
	var result []model.CourseSummary
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters  map[string]*model.Semester
	dependents map[string]bool
	seq        int
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{
		semesters:  make(map[string]*model.Semester),
		dependents: make(map[string]bool),
	}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if semester.SemesterID == "" {
		m.seq++
		semester.SemesterID = fmt.Sprintf("sem-%03d", m.seq)
	}
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id string) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) List(_ context.Context) ([]model.Semester, error) {
	var result []model.Semester
	for _, s := range m.semesters {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SemesterID < result[j].SemesterID })
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	m.semesters[semester.SemesterID] = semester
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.semesters, id)
	return nil
}

func (m *mockSemesterRepo) HasDependents(_ context.Context, id string) (bool, error) {
	return m.dependents[id], nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.CourseAssignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.CourseAssignment)}
}

func (m *mockAssignmentRepo) key(a *model.CourseAssignment) string {
	return fmt.Sprintf("%s|%s|%d|%d|%s", a.TeacherID, a.CourseID, a.Year, a.Semester, a.SemesterID)
}

func (m *mockAssignmentRepo) Upsert(_ context.Context, assignment *model.CourseAssignment) error {
	for _, existing := range m.assignments {
		if m.key(existing) == m.key(assignment) {
			existing.Sections = assignment.Sections
			existing.IsShared = assignment.IsShared
			existing.CreditHoursAssigned = assignment.CreditHoursAssigned
			existing.UpdatedBy = assignment.UpdatedBy
			assignment.AssignmentID = existing.AssignmentID
			return nil
		}
	}
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.CourseAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) GetByKey(_ context.Context, teacherID, courseID string, year, semester int, semesterID string) (*model.CourseAssignment, error) {
	want := fmt.Sprintf("%s|%s|%d|%d|%s", teacherID, courseID, year, semester, semesterID)
	for _, a := range m.assignments {
		if m.key(a) == want {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, filter *dto.AssignmentFilter) ([]model.CourseAssignment, error) {
	var result []model.CourseAssignment
	for _, a := range m.assignments {
		if filter != nil {
			if filter.TeacherID != "" && a.TeacherID != filter.TeacherID {
				continue
			}
			if filter.SemesterID != "" && a.SemesterID != filter.SemesterID {
				continue
			}
			if filter.Year != 0 && a.Year != filter.Year {
				continue
			}
			if filter.OutlineStatus != "" && a.OutlineStatus != filter.OutlineStatus {
				continue
			}
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssignmentID < result[j].AssignmentID })
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.CourseAssignment) error {
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) UpdateOutlineStatus(_ context.Context, id string, status string, _ string) error {
	if a, ok := m.assignments[id]; ok {
		a.OutlineStatus = status
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock OutlineRepository ──

type mockOutlineRepo struct {
	outlines  map[string]*model.Outline
	decisions map[string][]model.ReviewDecision
	seq       int
}

func newMockOutlineRepo() *mockOutlineRepo {
	return &mockOutlineRepo{
		outlines:  make(map[string]*model.Outline),
		decisions: make(map[string][]model.ReviewDecision),
	}
}

func (m *mockOutlineRepo) Create(_ context.Context, outline *model.Outline) error {
	if outline.OutlineID == "" {
		m.seq++
		outline.OutlineID = fmt.Sprintf("out-%03d", m.seq)
	}
	m.outlines[outline.OutlineID] = outline
	return nil
}

func (m *mockOutlineRepo) GetByID(_ context.Context, id string) (*model.Outline, error) {
	if o, ok := m.outlines[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOutlineRepo) GetByAssignment(_ context.Context, assignmentID string) (*model.Outline, error) {
	for _, o := range m.outlines {
		if o.AssignmentID == assignmentID {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOutlineRepo) List(_ context.Context, filter *dto.OutlineFilter) ([]model.Outline, error) {
	var result []model.Outline
	for _, o := range m.outlines {
		if filter != nil {
			if filter.TeacherID != "" && o.TeacherID != filter.TeacherID {
				continue
			}
			if filter.SemesterID != "" && o.SemesterID != filter.SemesterID {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			if filter.CurrentReviewerRole != "" {
				if o.CurrentReviewerRole == nil || *o.CurrentReviewerRole != filter.CurrentReviewerRole {
					continue
				}
			}
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OutlineID < result[j].OutlineID })
	return result, nil
}

func (m *mockOutlineRepo) Update(_ context.Context, outline *model.Outline) error {
	m.outlines[outline.OutlineID] = outline
	return nil
}

func (m *mockOutlineRepo) AppendDecision(_ context.Context, decision *model.ReviewDecision) error {
	if decision.DecidedAt.IsZero() {
		decision.DecidedAt = time.Now()
	}
	m.decisions[decision.OutlineID] = append(m.decisions[decision.OutlineID], *decision)
	return nil
}

func (m *mockOutlineRepo) ListDecisions(_ context.Context, outlineID string) ([]model.ReviewDecision, error) {
	return m.decisions[outlineID], nil
}

// ── Mock BookingRepository ──

type mockBookingRepo struct {
	bookings map[string]*model.TimetableBooking
	seq      int
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{bookings: make(map[string]*model.TimetableBooking)}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *model.TimetableBooking) error {
	if booking.BookingID == "" {
		m.seq++
		booking.BookingID = fmt.Sprintf("bkg-%03d", m.seq)
	}
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *mockBookingRepo) GetByID(_ context.Context, id string) (*model.TimetableBooking, error) {
	if b, ok := m.bookings[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) List(_ context.Context, filter *dto.BookingFilter) ([]model.TimetableBooking, error) {
	var result []model.TimetableBooking
	for _, b := range m.bookings {
		if filter != nil {
			if filter.SemesterID != "" && b.SemesterID != filter.SemesterID {
				continue
			}
			if filter.CourseID != "" && b.CourseID != filter.CourseID {
				continue
			}
			if filter.TeacherID != "" && b.TeacherID != filter.TeacherID {
				continue
			}
			if filter.Year != 0 && b.Year != filter.Year {
				continue
			}
			if filter.Section != "" && b.Section != filter.Section {
				continue
			}
		}
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DayOfWeek != result[j].DayOfWeek {
			return result[i].DayOfWeek < result[j].DayOfWeek
		}
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockBookingRepo) ListBySemester(ctx context.Context, semesterID string) ([]model.TimetableBooking, error) {
	return m.List(ctx, &dto.BookingFilter{SemesterID: semesterID})
}

func (m *mockBookingRepo) Update(_ context.Context, booking *model.TimetableBooking) error {
	m.bookings[booking.BookingID] = booking
	return nil
}

func (m *mockBookingRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.bookings, id)
	return nil
}

func (m *mockBookingRepo) FindConflict(_ context.Context, semesterID string, dayOfWeek int, startTime, endTime, room, excludeID string) (*model.TimetableBooking, error) {
	for _, b := range m.bookings {
		if b.BookingID == excludeID {
			continue
		}
		if b.SemesterID == semesterID && b.DayOfWeek == dayOfWeek &&
			b.StartTime == startTime && b.EndTime == endTime && b.Room == room {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock HolidayRepository ──

type mockHolidayRepo struct {
	holidays map[string]*model.Holiday
	seq      int
}

func newMockHolidayRepo() *mockHolidayRepo {
	return &mockHolidayRepo{holidays: make(map[string]*model.Holiday)}
}

func (m *mockHolidayRepo) Create(_ context.Context, holiday *model.Holiday) error {
	if holiday.HolidayID == "" {
		m.seq++
		holiday.HolidayID = fmt.Sprintf("hol-%03d", m.seq)
	}
	m.holidays[holiday.HolidayID] = holiday
	return nil
}

func (m *mockHolidayRepo) GetByID(_ context.Context, id string) (*model.Holiday, error) {
	if h, ok := m.holidays[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockHolidayRepo) ListBySemester(_ context.Context, semesterID string) ([]model.Holiday, error) {
	var result []model.Holiday
	for _, h := range m.holidays {
		if h.SemesterID == semesterID {
			result = append(result, *h)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockHolidayRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.holidays, id)
	return nil
}

// ── Mock MakeupRepository ──

type mockMakeupRepo struct {
	makeups map[string]*model.MakeupClass
	seq     int
}

func newMockMakeupRepo() *mockMakeupRepo {
	return &mockMakeupRepo{makeups: make(map[string]*model.MakeupClass)}
}

func (m *mockMakeupRepo) Create(_ context.Context, makeup *model.MakeupClass) error {
	if makeup.MakeupID == "" {
		m.seq++
		makeup.MakeupID = fmt.Sprintf("mkp-%03d", m.seq)
	}
	m.makeups[makeup.MakeupID] = makeup
	return nil
}

func (m *mockMakeupRepo) GetByID(_ context.Context, id string) (*model.MakeupClass, error) {
	if mk, ok := m.makeups[id]; ok {
		return mk, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMakeupRepo) ListBySemester(_ context.Context, semesterID string) ([]model.MakeupClass, error) {
	var result []model.MakeupClass
	for _, mk := range m.makeups {
		if mk.SemesterID == semesterID {
			result = append(result, *mk)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockMakeupRepo) ListByDate(_ context.Context, semesterID string, date time.Time) ([]model.MakeupClass, error) {
	var result []model.MakeupClass
	for _, mk := range m.makeups {
		if mk.SemesterID == semesterID && mk.Date.Equal(date) {
			result = append(result, *mk)
		}
	}
	return result, nil
}

func (m *mockMakeupRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.makeups, id)
	return nil
}

// ── Mock WeekRepository ──

type mockWeekRepo struct {
	weeks map[string][]model.SemesterWeek
}

func newMockWeekRepo() *mockWeekRepo {
	return &mockWeekRepo{weeks: make(map[string][]model.SemesterWeek)}
}

func (m *mockWeekRepo) ReplaceBySemester(_ context.Context, semesterID string, weeks []model.SemesterWeek) error {
	m.weeks[semesterID] = weeks
	return nil
}

func (m *mockWeekRepo) ListBySemester(_ context.Context, semesterID string) ([]model.SemesterWeek, error) {
	return m.weeks[semesterID], nil
}
