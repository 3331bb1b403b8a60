// Package reports builds date-range attendance reports and student roster
// exports. Hot reports are cached in Redis with a short TTL.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

type Service struct {
	students   store.StudentStore
	attendance store.AttendanceStore
	cache      *redis.Client // nil when Redis is not configured
}

func NewService(st *store.Store, cache *redis.Client) *Service {
	return &Service{students: st.Students, attendance: st.Attendance, cache: cache}
}

// DayReport is one date inside a range report.
type DayReport struct {
	Date     string `json:"date"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
	Visitors int    `json:"visitors"`
	Rate     int    `json:"rate"`
}

// RangeReport summarizes attendance between two dates inclusive.
type RangeReport struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	TotalMembers int         `json:"totalMembers"`
	Days         []DayReport `json:"days"`
	AverageRate  int         `json:"averageRate"`
}

// AttendanceRange builds the per-day breakdown for [from, to]. Results are
// cached; a cache miss or unavailable Redis falls through to the store.
func (s *Service) AttendanceRange(ctx context.Context, from, to string) (*RangeReport, error) {
	for _, d := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return nil, models.Validationf("invalid date %q, want YYYY-MM-DD", d)
		}
	}
	if from > to {
		return nil, models.Validationf("from must not be after to")
	}

	cacheKey := fmt.Sprintf("report:range:%s:%s", from, to)
	if cached := s.cacheGet(ctx, cacheKey); cached != nil {
		var report RangeReport
		if err := json.Unmarshal(cached, &report); err == nil {
			return &report, nil
		}
	}

	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	members := 0
	for _, st := range students {
		if st.Role == models.RoleMember {
			members++
		}
	}

	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}

	byDate := map[string]*DayReport{}
	var order []string
	for _, row := range rows {
		day, ok := byDate[row.Date]
		if !ok {
			day = &DayReport{Date: row.Date}
			byDate[row.Date] = day
			order = append(order, row.Date)
		}
		switch {
		case row.Type == models.AttendanceVisitor:
			day.Visitors++
		case row.IsPresent:
			day.Present++
		default:
			day.Absent++
		}
	}

	report := &RangeReport{From: from, To: to, TotalMembers: members, Days: []DayReport{}}
	rateSum := 0
	for _, date := range order {
		day := byDate[date]
		day.Rate = pct(day.Present, members)
		rateSum += day.Rate
		report.Days = append(report.Days, *day)
	}
	if len(report.Days) > 0 {
		report.AverageRate = int(math.Round(float64(rateSum) / float64(len(report.Days))))
	}

	s.cacheSet(ctx, cacheKey, report)
	return report, nil
}

// GroupedRoster is a roster report grouped by one student attribute.
type GroupedRoster struct {
	GroupBy string                      `json:"groupBy"`
	Groups  map[string][]models.Student `json:"groups"`
}

// Roster groups the full student list by level, hall or gender.
func (s *Service) Roster(ctx context.Context, groupBy string) (*GroupedRoster, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	key := func(st *models.Student) string {
		switch groupBy {
		case "level":
			return st.Level
		case "hall":
			return st.Hall
		case "gender":
			return st.Gender
		}
		return ""
	}
	if key(&models.Student{Level: "x", Hall: "x", Gender: "x"}) == "" {
		return nil, models.Validationf("groupBy must be level, hall or gender")
	}

	out := &GroupedRoster{GroupBy: groupBy, Groups: map[string][]models.Student{}}
	for _, st := range students {
		k := key(&st)
		out.Groups[k] = append(out.Groups[k], st)
	}
	return out, nil
}

func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("⚠️  Report cache read failed:", err)
		}
		return nil
	}
	return raw
}

func (s *Service) cacheSet(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		log.Println("⚠️  Report cache write failed:", err)
	}
}

func pct(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
