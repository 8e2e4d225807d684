package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidaslam934/acadmic-solution-sub000/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportSemesterNotFound = errors.New("学期不存在")
	ErrExportNoBookings       = errors.New("该学期暂无课表预订")
	ErrExportGenerateFail     = errors.New("生成导出文件失败")
)

// ExportService 课表导出业务接口
//
// 设计说明：
//   - Excel 课表以 (星期, 时间段) 为行、教室为单元格内容的周视图
//   - ICS 导出把循环课表按学期展开为逐日 VEVENT，节假日跳过、补课插入
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportTimetableExcel 导出学期周课表为 Excel
	ExportTimetableExcel(ctx context.Context, semesterID string) (*bytes.Buffer, string, error)
	// ExportCalendarICS 导出整学期校历为 iCalendar (RFC 5545)
	ExportCalendarICS(ctx context.Context, semesterID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	calendar CalendarService
	logger   *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, calendar CalendarService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, calendar: calendar, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTimetableExcel — 导出周课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行：时间段（按 start_time 排序，跨天去重）
//   - 列：周日 ~ 周六（仅输出有课的天）
//   - 单元格：课程 / 教师 / 班级 / 教室，多条预订换行堆叠
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportTimetableExcel(ctx context.Context, semesterID string) (*bytes.Buffer, string, error) {
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}

	bookings, err := s.repo.Booking.ListBySemester(ctx, semesterID)
	if err != nil {
		s.logger.Error("查询预订失败", zap.Error(err))
		return nil, "", err
	}
	if len(bookings) == 0 {
		return nil, "", ErrExportNoBookings
	}

	// 收集唯一时间行 (start,end)，按开始时间排序
	type timeRow struct {
		start string
		end   string
	}
	rowSeen := make(map[string]bool)
	var rows []timeRow
	for _, b := range bookings {
		key := b.StartTime + "-" + b.EndTime
		if !rowSeen[key] {
			rowSeen[key] = true
			rows = append(rows, timeRow{start: b.StartTime, end: b.EndTime})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].start != rows[j].start {
			return rows[i].start < rows[j].start
		}
		return rows[i].end < rows[j].end
	})

	// 单元格索引 "dow:start-end" → 多条预订文本
	cellIndex := make(map[string][]string)
	daysUsed := make(map[int]bool)
	for _, b := range bookings {
		daysUsed[b.DayOfWeek] = true
		key := fmt.Sprintf("%d:%s-%s", b.DayOfWeek, b.StartTime, b.EndTime)
		text := fmt.Sprintf("%s / %s / %s / %s", b.CourseID, b.TeacherID, b.Section, b.Room)
		cellIndex[key] = append(cellIndex[key], text)
	}
	for key := range cellIndex {
		sort.Strings(cellIndex[key])
	}

	dayNames := map[int]string{0: "周日", 1: "周一", 2: "周二", 3: "周三", 4: "周四", 5: "周五", 6: "周六"}
	var dayOrder []int
	for dow := 0; dow <= 6; dow++ {
		if daysUsed[dow] {
			dayOrder = append(dayOrder, dow)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 14)
	for i := range dayOrder {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 30)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%s %s — 周课表", semester.AcademicYear, semester.Type)
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", cell(colName(len(dayOrder)), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "时间")
	for i, dow := range dayOrder {
		f.SetCellValue(sheetName, cell(colName(1+i), row), dayNames[dow])
	}

	// 数据行
	row = 3
	for _, tr := range rows {
		f.SetCellValue(sheetName, cell("A", row), fmt.Sprintf("%s-%s", tr.start, tr.end))
		for i, dow := range dayOrder {
			key := fmt.Sprintf("%d:%s-%s", dow, tr.start, tr.end)
			if texts, ok := cellIndex[key]; ok {
				f.SetCellValue(sheetName, cell(colName(1+i), row), joinLines(texts))
			} else {
				f.SetCellValue(sheetName, cell(colName(1+i), row), "-")
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课表_%s_%s.xlsx", semester.AcademicYear, semester.Type)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportCalendarICS — 导出校历为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 以 Generate 的投影为准：节假日当天无 VEVENT，补课日包含补课事件。
// UID 由 (日期, 开始时间, 课程, 教室) 拼出，重复导出内容一致。

func (s *exportService) ExportCalendarICS(ctx context.Context, semesterID string) (*bytes.Buffer, string, error) {
	semester, err := s.repo.Semester.GetByID(ctx, semesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrExportSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Error(err))
		return nil, "", err
	}

	calendar, err := s.calendar.Generate(ctx, semesterID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//academic-solution//calendar//ZH")

	for _, week := range calendar.Weeks {
		for _, day := range week.Days {
			if day.IsHoliday {
				continue
			}
			for _, class := range day.Classes {
				start, err := parseClassTime(day.Date, class.StartTime)
				if err != nil {
					continue
				}
				end, err := parseClassTime(day.Date, class.EndTime)
				if err != nil {
					continue
				}

				uid := fmt.Sprintf("%s-%s-%s-%s@academic-solution", day.Date, class.StartTime, class.CourseID, class.Room)
				event := cal.AddEvent(uid)
				event.SetStartAt(start)
				event.SetEndAt(end)
				event.SetLocation(class.Room)

				summary := class.CourseID
				if class.Type == "makeup" {
					summary = "[补课] " + summary
					if class.Reason != "" {
						event.SetDescription(class.Reason)
					}
				} else if class.Section != "" {
					summary += " (" + class.Section + ")"
				}
				event.SetSummary(summary)
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())

	filename := fmt.Sprintf("校历_%s_%s.ics", semester.AcademicYear, semester.Type)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func joinLines(texts []string) string {
	out := ""
	for i, t := range texts {
		if i > 0 {
			out += "\n"
		}
		out += t
	}
	return out
}

// parseClassTime 拼接 "2025-09-01" + "09:00" 为 UTC 时间
func parseClassTime(date, clock string) (time.Time, error) {
	return time.Parse("2006-01-02 15:04", date+" "+clock)
}
