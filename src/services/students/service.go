// Package students handles student registration and profile CRUD, including
// per-year code generation.
package students

import (
	"context"
	"fmt"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/email"
	"Backend-GnaasCMS/src/store"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	students store.StudentStore
	notifier email.Notifier
	validate *validator.Validate
}

func NewService(st *store.Store, notifier email.Notifier) *Service {
	return &Service{students: st.Students, notifier: notifier, validate: validator.New()}
}

// CreateRequest carries a new student's details. Code is optional; one is
// generated for the current year when it is empty.
type CreateRequest struct {
	Code                   string `json:"code"`
	FullName               string `json:"fullName" validate:"required"`
	Gender                 string `json:"gender" validate:"required"`
	Level                  string `json:"level" validate:"required"`
	ProgramOfStudy         string `json:"programOfStudy"`
	ProgramDurationYears   int    `json:"programDurationYears" validate:"required,min=1,max=6"`
	ExpectedCompletionYear int    `json:"expectedCompletionYear"`
	Hall                   string `json:"hall" validate:"required"`
	DateOfAdmission        string `json:"dateOfAdmission" validate:"required"`
	DateOfBirth            string `json:"dateOfBirth"`
	Residence              string `json:"residence"`
	GuardianName           string `json:"guardianName"`
	GuardianContact        string `json:"guardianContact"`
	LocalChurchName        string `json:"localChurchName"`
	LocalChurchLocation    string `json:"localChurchLocation"`
	District               string `json:"district"`
	Phone                  string `json:"phone"`
	Email                  string `json:"email" validate:"omitempty,email"`
	ProfileImageURL        string `json:"profileImageUrl"`
}

// Create registers a student, keeps a supplied code or assigns the next one
// for the current year, and sends a welcome email when an address is on file.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, models.Validationf("invalid student data: %v", err)
	}
	if !models.IsCanonicalLevel(req.Level) && req.Level != models.LevelAlumni {
		return nil, models.Validationf("invalid level: %s", req.Level)
	}
	if models.LevelNumber(req.Level) > req.ProgramDurationYears*100 {
		return nil, models.Validationf("level %s exceeds a %d-year program", req.Level, req.ProgramDurationYears)
	}
	if req.Email != "" {
		if _, err := s.students.FindByEmail(ctx, req.Email); err == nil {
			return nil, models.Validationf("a student with email %s already exists", req.Email)
		}
	}

	code := req.Code
	if code == "" {
		generated, err := s.NextCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	} else if _, err := s.students.FindByCode(ctx, code); err == nil {
		return nil, models.Validationf("a student with code %s already exists", code)
	}

	completion := req.ExpectedCompletionYear
	if completion == 0 {
		if admitted, err := time.Parse("2006-01-02", req.DateOfAdmission); err == nil {
			completion = admitted.Year() + req.ProgramDurationYears
		}
	}

	st := &models.Student{
		Code:                   code,
		FullName:               req.FullName,
		Gender:                 req.Gender,
		Level:                  req.Level,
		ProgramOfStudy:         req.ProgramOfStudy,
		ProgramDurationYears:   req.ProgramDurationYears,
		ExpectedCompletionYear: completion,
		Hall:                   req.Hall,
		Role:                   models.RoleMember,
		DateOfAdmission:        req.DateOfAdmission,
		DateOfBirth:            req.DateOfBirth,
		Residence:              req.Residence,
		GuardianName:           req.GuardianName,
		GuardianContact:        req.GuardianContact,
		LocalChurchName:        req.LocalChurchName,
		LocalChurchLocation:    req.LocalChurchLocation,
		District:               req.District,
		Phone:                  req.Phone,
		Email:                  req.Email,
		ProfileImageURL:        req.ProfileImageURL,
	}
	if err := s.students.Insert(ctx, st); err != nil {
		return nil, err
	}

	if st.Email != "" {
		subject, html := email.StudentWelcome(st.FullName, st.Code)
		s.notifier.Send(st.Email, st.FullName, subject, html)
	}
	return st, nil
}

// NextCode generates STU-<year>-<seq>, sequence scoped to the calendar year
// and zero-padded to three digits.
func (s *Service) NextCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("STU-%d-", time.Now().Year())
	n, err := s.students.CountCodePrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return prefix + fmt.Sprintf("%03d", n+1), nil
}

// Get fetches one student by hex id.
func (s *Service) Get(ctx context.Context, id string) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.Validationf("invalid student id")
	}
	return s.students.FindByID(ctx, oid)
}

// List returns students matching the filter, newest first.
func (s *Service) List(ctx context.Context, hall, level, gender string) ([]models.Student, error) {
	return s.students.List(ctx, store.StudentFilter{Hall: hall, Level: level, Gender: gender})
}

// Update replaces a student's editable fields. Level changes still pass
// through here for one-off corrections; batch moves use the promotion engine.
func (s *Service) Update(ctx context.Context, id string, req CreateRequest) (*models.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.Validationf("invalid student id")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, models.Validationf("invalid student data: %v", err)
	}
	current, err := s.students.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	u := store.StudentUpdate{
		FullName:               req.FullName,
		Gender:                 req.Gender,
		Level:                  req.Level,
		ProgramOfStudy:         req.ProgramOfStudy,
		ProgramDurationYears:   req.ProgramDurationYears,
		ExpectedCompletionYear: req.ExpectedCompletionYear,
		Hall:                   req.Hall,
		Role:                   current.Role,
		DateOfAdmission:        req.DateOfAdmission,
		DateOfBirth:            req.DateOfBirth,
		Residence:              req.Residence,
		GuardianName:           req.GuardianName,
		GuardianContact:        req.GuardianContact,
		LocalChurchName:        req.LocalChurchName,
		LocalChurchLocation:    req.LocalChurchLocation,
		District:               req.District,
		Phone:                  req.Phone,
		Email:                  req.Email,
		ProfileImageURL:        req.ProfileImageURL,
	}
	if err := s.students.Update(ctx, oid, u); err != nil {
		return nil, err
	}
	return s.students.FindByID(ctx, oid)
}

// Delete hard-deletes a student.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Validationf("invalid student id")
	}
	return s.students.Delete(ctx, oid)
}

// Count returns the total number of students on file.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.students.Count(ctx)
}
