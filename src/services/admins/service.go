// Package admins covers account administration and the dashboard
// distribution/insight queries.
package admins

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/email"
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/store"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// chartPalette is cycled through distribution slices in order.
var chartPalette = []string{"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#06B6D4"}

type Service struct {
	users      store.UserStore
	students   store.StudentStore
	attendance store.AttendanceStore
	registry   *students.Service
	notifier   email.Notifier
	validate   *validator.Validate
}

func NewService(st *store.Store, registry *students.Service, notifier email.Notifier) *Service {
	return &Service{
		users:      st.Users,
		students:   st.Students,
		attendance: st.Attendance,
		registry:   registry,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

// ListUsers returns every admin account, newest first. Secretaries without an
// avatar pick one up from their student record when it has one.
func (s *Service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		u := &users[i]
		if u.Role == models.RoleSecretary && u.ProfileImageURL == "" {
			if st, err := s.students.FindByEmail(ctx, u.Email); err == nil && st.ProfileImageURL != "" {
				u.ProfileImageURL = st.ProfileImageURL
				if err := s.users.UpdateProfileImage(ctx, u.ID, st.ProfileImageURL); err != nil {
					log.Println("⚠️ Could not sync profile image for", u.Email, ":", err)
				}
			}
		}
		out = append(out, u.Summary())
	}
	return out, nil
}

// CreateSecretaryRequest carries a new secretary account's details. Secretaries
// are members too, so the student fields ride along.
type CreateSecretaryRequest struct {
	FullName             string `json:"fullName" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone"`
	Gender               string `json:"gender" validate:"required"`
	Hall                 string `json:"hall"`
	Level                string `json:"level"`
	ProgramDurationYears int    `json:"programDurationYears" validate:"omitempty,min=1,max=6"`
	DateOfAdmission      string `json:"dateOfAdmission"`
}

// CreateSecretary provisions a SECRETARY account alongside its student record,
// generates a temporary password and emails it to the new secretary.
func (s *Service) CreateSecretary(ctx context.Context, req CreateSecretaryRequest) (*models.UserSummary, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, models.Validationf("invalid secretary data: %v", err)
	}
	req.Email = strings.ToLower(req.Email)
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, models.Validationf("a user with email %s already exists", req.Email)
	}
	if req.Level == "" {
		req.Level = "L100"
	}
	if !models.IsCanonicalLevel(req.Level) && req.Level != models.LevelAlumni {
		return nil, models.Validationf("invalid level: %s", req.Level)
	}
	if req.Hall == "" {
		req.Hall = "Unknown"
	}
	if req.ProgramDurationYears == 0 {
		req.ProgramDurationYears = 4
	}
	if req.DateOfAdmission == "" {
		req.DateOfAdmission = time.Now().Format("2006-01-02")
	}

	tempPassword := uuid.NewString()[:8]
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:             req.FullName,
		Email:                req.Email,
		Phone:                req.Phone,
		Level:                req.Level,
		ProgramDurationYears: req.ProgramDurationYears,
		Hall:                 req.Hall,
		Role:                 models.RoleSecretary,
		DateOfAdmission:      req.DateOfAdmission,
		PasswordHash:         string(hash),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.students.FindByEmail(ctx, req.Email); err != nil {
		code, err := s.registry.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		completion := 0
		if admitted, err := time.Parse("2006-01-02", req.DateOfAdmission); err == nil {
			completion = admitted.Year() + req.ProgramDurationYears
		}
		st := &models.Student{
			Code:                   code,
			FullName:               req.FullName,
			Gender:                 req.Gender,
			Level:                  req.Level,
			ProgramDurationYears:   req.ProgramDurationYears,
			ExpectedCompletionYear: completion,
			Hall:                   req.Hall,
			Role:                   models.RoleMember,
			DateOfAdmission:        req.DateOfAdmission,
			Phone:                  req.Phone,
			Email:                  req.Email,
		}
		if err := s.students.Insert(ctx, st); err != nil {
			return nil, err
		}
	}

	subject, html := email.SecretaryAccount(user.FullName, user.Email, tempPassword)
	s.notifier.Send(user.Email, user.FullName, subject, html)
	log.Println("✅ Secretary account created:", user.Email)

	summary := user.Summary()
	return &summary, nil
}

// UpdateProfileImage stores a new avatar URL for a user.
func (s *Service) UpdateProfileImage(ctx context.Context, userID, url string) error {
	if url == "" {
		return models.Validationf("image url is required")
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Validationf("invalid user id")
	}
	return s.users.UpdateProfileImage(ctx, oid, url)
}

// Slice is one segment of a distribution chart.
type Slice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	Color string `json:"color"`
}

// LevelDistribution counts students per level, canonical levels in order and
// ALUMNI last.
func (s *Service) LevelDistribution(ctx context.Context) ([]Slice, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, st := range students {
		counts[st.Level]++
	}

	labels := make([]string, 0, len(counts))
	for _, lvl := range models.CanonicalLevels {
		if counts[lvl] > 0 {
			labels = append(labels, lvl)
		}
	}
	if counts[models.LevelAlumni] > 0 {
		labels = append(labels, models.LevelAlumni)
	}
	return colorize(labels, counts), nil
}

// HallStat is one hall's headcount with today's presence.
type HallStat struct {
	Hall         string `json:"hall"`
	Total        int    `json:"total"`
	PresentToday int    `json:"presentToday"`
	Rate         int    `json:"rate"`
	Color        string `json:"color"`
}

// HallDistribution counts students per hall, alphabetically, each with the
// hall's presence for today.
func (s *Service) HallDistribution(ctx context.Context) ([]HallStat, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	totals := map[string]int{}
	hallOf := map[primitive.ObjectID]string{}
	for _, st := range students {
		totals[st.Hall]++
		hallOf[st.ID] = st.Hall
	}

	present := true
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		Date:      time.Now().Format("2006-01-02"),
		Type:      models.AttendanceMember,
		IsPresent: &present,
	})
	if err != nil {
		return nil, err
	}
	presentToday := map[string]int{}
	for _, row := range rows {
		if hall, ok := hallOf[row.StudentID]; ok {
			presentToday[hall]++
		}
	}

	labels := make([]string, 0, len(totals))
	for hall := range totals {
		labels = append(labels, hall)
	}
	sort.Strings(labels)

	out := make([]HallStat, 0, len(labels))
	for i, hall := range labels {
		rate := 0
		if totals[hall] > 0 {
			rate = int(math.Round(float64(presentToday[hall]) / float64(totals[hall]) * 100))
		}
		out = append(out, HallStat{
			Hall:         hall,
			Total:        totals[hall],
			PresentToday: presentToday[hall],
			Rate:         rate,
			Color:        chartPalette[i%len(chartPalette)],
		})
	}
	return out, nil
}

// GenderDistribution counts students per gender.
func (s *Service) GenderDistribution(ctx context.Context) ([]Slice, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, st := range students {
		counts[st.Gender]++
	}
	labels := make([]string, 0, len(counts))
	for g := range counts {
		labels = append(labels, g)
	}
	sort.Strings(labels)
	return colorize(labels, counts), nil
}

func colorize(labels []string, counts map[string]int) []Slice {
	out := make([]Slice, 0, len(labels))
	for i, label := range labels {
		out = append(out, Slice{
			Label: label,
			Count: counts[label],
			Color: chartPalette[i%len(chartPalette)],
		})
	}
	return out
}

// Insights is the dashboard overview block.
type Insights struct {
	TotalStudents   int            `json:"totalStudents"`
	TotalMembers    int            `json:"totalMembers"`
	TotalVisitors   int            `json:"totalVisitors"`
	MonthlyPresence []MonthlyPoint `json:"monthlyPresence"`
}

// MonthlyPoint is one month of presence, labeled by short month name.
type MonthlyPoint struct {
	Month   string `json:"month"` // "Jan", "Feb", ...
	Present int    `json:"present"`
}

// GetInsights summarizes membership and the current year's month-by-month
// presence counts.
func (s *Service) GetInsights(ctx context.Context) (*Insights, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	ins := &Insights{TotalStudents: len(students)}
	for _, st := range students {
		if st.Role == models.RoleVisitor {
			ins.TotalVisitors++
		} else {
			ins.TotalMembers++
		}
	}

	year := time.Now().Year()
	present := true
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{
		DateFrom:  time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		DateTo:    time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		Type:      models.AttendanceMember,
		IsPresent: &present,
	})
	if err != nil {
		return nil, err
	}
	byMonth := map[time.Month]int{}
	for _, row := range rows {
		if t, err := time.Parse("2006-01-02", row.Date); err == nil {
			byMonth[t.Month()]++
		}
	}
	for m := time.January; m <= time.December; m++ {
		ins.MonthlyPresence = append(ins.MonthlyPresence, MonthlyPoint{
			Month:   m.String()[:3],
			Present: byMonth[m],
		})
	}
	return ins, nil
}
