package attendance

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary is the per-date dashboard card.
type Summary struct {
	Date           string `json:"date"`
	TotalMembers   int    `json:"totalMembers"`
	PresentMembers int    `json:"presentMembers"`
	AbsentMembers  int    `json:"absentMembers"`
	Unmarked       int    `json:"unmarked"`
	Visitors       int    `json:"visitors"`
	AttendanceRate int    `json:"attendanceRate"` // integer percent, rounded half up
}

// MemberMark is an attendance row joined with its student.
type MemberMark struct {
	Student    models.Student `json:"student"`
	IsPresent  bool           `json:"isPresent"`
	MarkedBy   string         `json:"markedBy,omitempty"`
	MarkedAt   time.Time      `json:"markedAt"`
	RecordID   string         `json:"recordId"`
	RecordDate string         `json:"date"`
}

// DailyStat is one day inside a weekly or monthly series.
type DailyStat struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Rate    int    `json:"rate"`
}

// MonthlyTrend aggregates presence for one month.
type MonthlyTrend struct {
	Month   string `json:"month"` // e.g. "Jan 2026"
	Present int    `json:"present"`
	Rate    int    `json:"rate"`
}

// DateSummary computes the member/visitor tallies for a date.
func (s *Service) DateSummary(ctx context.Context, date string) (*Summary, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	members, err := s.memberCount(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{Date: date})
	if err != nil {
		return nil, err
	}

	sum := &Summary{Date: date, TotalMembers: members}
	for _, row := range rows {
		switch row.Type {
		case models.AttendanceVisitor:
			sum.Visitors++
		case models.AttendanceMember:
			if row.IsPresent {
				sum.PresentMembers++
			} else {
				sum.AbsentMembers++
			}
		}
	}
	marked := sum.PresentMembers + sum.AbsentMembers
	if members > marked {
		sum.Unmarked = members - marked
	}
	sum.AttendanceRate = rate(sum.PresentMembers, members)
	return sum, nil
}

// MembersPresent lists the members marked present on a date.
func (s *Service) MembersPresent(ctx context.Context, date string) ([]MemberMark, error) {
	present := true
	return s.memberMarks(ctx, date, &present)
}

// MembersAbsent lists the members marked absent on a date.
func (s *Service) MembersAbsent(ctx context.Context, date string) ([]MemberMark, error) {
	present := false
	return s.memberMarks(ctx, date, &present)
}

func (s *Service) memberMarks(ctx context.Context, date string, isPresent *bool) ([]MemberMark, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		Date: date, Type: models.AttendanceMember, IsPresent: isPresent,
	})
	if err != nil {
		return nil, err
	}
	byID, err := s.studentIndex(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberMark, 0, len(rows))
	for _, row := range rows {
		st, ok := byID[row.StudentID]
		if !ok {
			continue // student deleted after marking
		}
		out = append(out, MemberMark{
			Student:    st,
			IsPresent:  row.IsPresent,
			MarkedBy:   row.MarkedBy,
			MarkedAt:   row.CreatedAt,
			RecordID:   row.ID.Hex(),
			RecordDate: row.Date,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Student.FullName < out[j].Student.FullName })
	return out, nil
}

// UnmarkedMembers lists the members not marked present for the date,
// optionally narrowed by hall, level or gender. Only present rows count as
// marked here, so absent-marked members still show up; mark-all skips any
// existing row regardless.
func (s *Service) UnmarkedMembers(ctx context.Context, date string, f store.StudentFilter) ([]models.Student, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	present := true
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		Date: date, Type: models.AttendanceMember, IsPresent: &present,
	})
	if err != nil {
		return nil, err
	}
	marked := make(map[primitive.ObjectID]bool, len(rows))
	for _, row := range rows {
		marked[row.StudentID] = true
	}
	students, err := s.students.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]models.Student, 0)
	for _, st := range students {
		if st.Role == models.RoleMember && !marked[st.ID] {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

// Visitors lists the visitor rows for a date.
func (s *Service) Visitors(ctx context.Context, date string) ([]models.Attendance, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.attendance.Find(ctx, store.AttendanceFilter{Date: date, Type: models.AttendanceVisitor})
}

// GroupRate is one hall's or level's presence share across a window.
type GroupRate struct {
	Label   string `json:"label"`
	Present int    `json:"present"`
	Rate    int    `json:"rate"`
}

// WeeklyReport is a week of attendance, Sunday through Saturday, with hall
// and level breakdowns of the week's presence.
type WeeklyReport struct {
	WeekStart    string      `json:"weekStart"`
	Days         []DailyStat `json:"days"`
	TotalPresent int         `json:"totalPresent"`
	TotalAbsent  int         `json:"totalAbsent"`
	ByHall       []GroupRate `json:"byHall"`
	ByLevel      []GroupRate `json:"byLevel"`
}

// WeeklyStats builds the report for the requested week. week is "YYYY-WW";
// empty means the current week.
func (s *Service) WeeklyStats(ctx context.Context, week string) (*WeeklyReport, error) {
	start, err := weekStart(week, time.Now())
	if err != nil {
		return nil, err
	}
	byID, err := s.studentIndex(ctx)
	if err != nil {
		return nil, err
	}
	members := 0
	for _, st := range byID {
		if st.Role == models.RoleMember {
			members++
		}
	}

	from := start.Format(dateLayout)
	to := start.AddDate(0, 0, 6).Format(dateLayout)
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		DateFrom: from, DateTo: to, Type: models.AttendanceMember,
	})
	if err != nil {
		return nil, err
	}

	presentByDate := map[string]int{}
	absentByDate := map[string]int{}
	presentByHall := map[string]int{}
	totalByHall := map[string]int{}
	presentByLevel := map[string]int{}
	totalByLevel := map[string]int{}
	for _, row := range rows {
		if row.IsPresent {
			presentByDate[row.Date]++
		} else {
			absentByDate[row.Date]++
		}
		st, ok := byID[row.StudentID]
		if !ok {
			continue
		}
		totalByHall[st.Hall]++
		totalByLevel[st.Level]++
		if row.IsPresent {
			presentByHall[st.Hall]++
			presentByLevel[st.Level]++
		}
	}

	report := &WeeklyReport{WeekStart: from, Days: make([]DailyStat, 0, 7)}
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(dateLayout)
		report.Days = append(report.Days, DailyStat{
			Date:    key,
			Day:     day.Format("Mon"),
			Present: presentByDate[key],
			Absent:  absentByDate[key],
			Rate:    rate(presentByDate[key], members),
		})
		report.TotalPresent += presentByDate[key]
		report.TotalAbsent += absentByDate[key]
	}
	report.ByHall = groupRates(presentByHall, totalByHall)
	report.ByLevel = groupRates(presentByLevel, totalByLevel)
	return report, nil
}

// groupRates sorts marked-row tallies into labeled slices, each rated as the
// group's presence over the group's own marked rows.
func groupRates(present, total map[string]int) []GroupRate {
	labels := make([]string, 0, len(total))
	for label := range total {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	out := make([]GroupRate, 0, len(labels))
	for _, label := range labels {
		out = append(out, GroupRate{
			Label:   label,
			Present: present[label],
			Rate:    rate(present[label], total[label]),
		})
	}
	return out
}

// MonthlyTrends aggregates member presence per month over the trailing
// window, oldest month first. Rate measures the month's presence against
// the member roll.
func (s *Service) MonthlyTrends(ctx context.Context, months int) ([]MonthlyTrend, error) {
	if months <= 0 || months > 24 {
		months = 6
	}
	members, err := s.memberCount(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		DateFrom: from.Format(dateLayout),
		DateTo:   now.Format(dateLayout),
		Type:     models.AttendanceMember,
	})
	if err != nil {
		return nil, err
	}

	presentByMonth := map[string]int{}
	for _, row := range rows {
		t, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			continue
		}
		if row.IsPresent {
			presentByMonth[t.Format("Jan 2006")]++
		}
	}

	out := make([]MonthlyTrend, 0, months)
	for i := 0; i < months; i++ {
		m := from.AddDate(0, i, 0)
		key := m.Format("Jan 2006")
		out = append(out, MonthlyTrend{
			Month:   key,
			Present: presentByMonth[key],
			Rate:    rate(presentByMonth[key], members),
		})
	}
	return out, nil
}

func (s *Service) memberCount(ctx context.Context) (int, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return 0, err
	}
	n := 0
	for _, st := range students {
		if st.Role == models.RoleMember {
			n++
		}
	}
	return n, nil
}

func (s *Service) studentIndex(ctx context.Context) (map[primitive.ObjectID]models.Student, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Student, len(students))
	for _, st := range students {
		byID[st.ID] = st
	}
	return byID, nil
}

// weekStart resolves "YYYY-WW" (week 1 holding January 1, weeks starting
// Sunday) to that week's Sunday. An empty week means the week containing now.
func weekStart(week string, now time.Time) (time.Time, error) {
	if week == "" {
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return day.AddDate(0, 0, -int(day.Weekday())), nil
	}
	parts := strings.SplitN(week, "-", 2)
	if len(parts) != 2 {
		return time.Time{}, models.Validationf("invalid week %q, want YYYY-WW", week)
	}
	year, err1 := strconv.Atoi(parts[0])
	num, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || num < 1 || num > 53 {
		return time.Time{}, models.Validationf("invalid week %q, want YYYY-WW", week)
	}
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	firstSunday := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	return firstSunday.AddDate(0, 0, (num-1)*7), nil
}
