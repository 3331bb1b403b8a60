package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"Backend-GnaasCMS/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory builds a fully in-memory store set. Tests run the services
// against this instead of a live Mongo, with the same error semantics
// (duplicate member marks, conditional undo claims).
func NewMemory() *Store {
	return &Store{
		Students:   &memStudentStore{byID: map[primitive.ObjectID]*models.Student{}},
		Attendance: &memAttendanceStore{byID: map[primitive.ObjectID]*models.Attendance{}},
		Actions:    &memActionLogStore{byID: map[primitive.ObjectID]*models.ActionLog{}},
		Users:      &memUserStore{byID: map[primitive.ObjectID]*models.User{}},
	}
}

type memStudentStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Student
}

func (s *memStudentStore) Insert(_ context.Context, st *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID.IsZero() {
		st.ID = primitive.NewObjectID()
	}
	now := time.Now()
	st.CreatedAt = now
	st.UpdatedAt = now
	cp := *st
	s.byID[st.ID] = &cp
	return nil
}

func (s *memStudentStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *memStudentStore) FindByEmail(_ context.Context, email string) (*models.Student, error) {
	return s.findFirst(func(st *models.Student) bool { return st.Email == email })
}

func (s *memStudentStore) FindByCode(_ context.Context, code string) (*models.Student, error) {
	return s.findFirst(func(st *models.Student) bool { return st.Code == code })
}

func (s *memStudentStore) FindByEmailOrCode(_ context.Context, email, code string) (*models.Student, error) {
	if email == "" && code == "" {
		return nil, models.ErrNotFound
	}
	return s.findFirst(func(st *models.Student) bool {
		return (email != "" && st.Email == email) || (code != "" && st.Code == code)
	})
}

func (s *memStudentStore) findFirst(match func(*models.Student) bool) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.byID {
		if match(st) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memStudentStore) List(_ context.Context, f StudentFilter) ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Student
	for _, st := range s.byID {
		if f.Hall != "" && st.Hall != f.Hall {
			continue
		}
		if f.Level != "" && st.Level != f.Level {
			continue
		}
		if f.Gender != "" && st.Gender != f.Gender {
			continue
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStudentStore) ListByLevel(ctx context.Context, level string) ([]models.Student, error) {
	return s.List(ctx, StudentFilter{Level: level})
}

func (s *memStudentStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.byID)), nil
}

func (s *memStudentStore) CountCodePrefix(_ context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, st := range s.byID {
		if strings.HasPrefix(st.Code, prefix) {
			n++
		}
	}
	return n, nil
}

func (s *memStudentStore) Update(_ context.Context, id primitive.ObjectID, u StudentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	st.FullName = u.FullName
	st.Gender = u.Gender
	st.Level = u.Level
	st.ProgramOfStudy = u.ProgramOfStudy
	st.ProgramDurationYears = u.ProgramDurationYears
	st.ExpectedCompletionYear = u.ExpectedCompletionYear
	st.Hall = u.Hall
	st.Role = u.Role
	st.DateOfAdmission = u.DateOfAdmission
	st.DateOfBirth = u.DateOfBirth
	st.Residence = u.Residence
	st.GuardianName = u.GuardianName
	st.GuardianContact = u.GuardianContact
	st.LocalChurchName = u.LocalChurchName
	st.LocalChurchLocation = u.LocalChurchLocation
	st.District = u.District
	st.Phone = u.Phone
	st.Email = u.Email
	st.ProfileImageURL = u.ProfileImageURL
	st.UpdatedAt = time.Now()
	return nil
}

func (s *memStudentStore) UpdateLevel(_ context.Context, id primitive.ObjectID, level string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	st.Level = level
	st.UpdatedAt = time.Now()
	return nil
}

func (s *memStudentStore) BulkUpdateLevel(_ context.Context, ids []primitive.ObjectID, level string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if st, ok := s.byID[id]; ok {
			st.Level = level
			st.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (s *memStudentStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memStudentStore) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

type memAttendanceStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Attendance
}

func (s *memAttendanceStore) Insert(_ context.Context, a *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(a)
}

func (s *memAttendanceStore) insertLocked(a *models.Attendance) error {
	if a.Type == models.AttendanceMember && !a.StudentID.IsZero() {
		for _, row := range s.byID {
			if row.Type == models.AttendanceMember && row.Date == a.Date && row.StudentID == a.StudentID {
				return models.ErrDuplicateMark
			}
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *memAttendanceStore) InsertMany(_ context.Context, rows []models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range rows {
		if err := s.insertLocked(&rows[i]); err != nil {
			return err
		}
	}
	return nil
}

func matchAttendance(row *models.Attendance, f AttendanceFilter) bool {
	if f.Date != "" && row.Date != f.Date {
		return false
	}
	if f.DateFrom != "" && row.Date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && row.Date > f.DateTo {
		return false
	}
	if f.Type != "" && row.Type != f.Type {
		return false
	}
	if f.IsPresent != nil && row.IsPresent != *f.IsPresent {
		return false
	}
	if !f.StudentID.IsZero() && row.StudentID != f.StudentID {
		return false
	}
	return true
}

func (s *memAttendanceStore) Find(_ context.Context, f AttendanceFilter) ([]models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Attendance
	for _, row := range s.byID {
		if matchAttendance(row, f) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *memAttendanceStore) FindOne(_ context.Context, f AttendanceFilter) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.byID {
		if matchAttendance(row, f) {
			cp := *row
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memAttendanceStore) CloseSlot(_ context.Context, date string, typ models.AttendanceType) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.byID {
		if row.Date == date && row.Type == typ && row.Status != models.AttendanceClosed {
			row.Status = models.AttendanceClosed
			row.UpdatedAt = time.Now()
			n++
		}
	}
	return n, nil
}

func (s *memAttendanceStore) DeleteMemberMarks(_ context.Context, date string, studentIDs []primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[primitive.ObjectID]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var n int64
	for id, row := range s.byID {
		if row.Date == date && row.Type == models.AttendanceMember && wanted[row.StudentID] {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}

type memActionLogStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.ActionLog
}

func (s *memActionLogStore) Insert(_ context.Context, a *models.ActionLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.CreatedAt = time.Now()
	cp := *a
	s.byID[a.ID] = &cp
	return nil
}

func (s *memActionLogStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, models.ErrActionNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *memActionLogStore) FindRecent(_ context.Context, limit int64) ([]models.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ActionLog
	for _, a := range s.byID {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memActionLogStore) ClaimUndo(_ context.Context, id primitive.ObjectID, typ models.ActionType) (*models.ActionLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.byID[id]
	if !ok || a.ActionType != typ || a.Undone {
		return nil, models.ErrNotFound
	}
	a.Undone = true
	cp := *a
	return &cp, nil
}

type memUserStore struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.User
}

func (s *memUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memUserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.User
	for _, u := range s.byID {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memUserStore) UpdateProfileImage(_ context.Context, id primitive.ObjectID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	u.ProfileImageURL = url
	u.UpdatedAt = time.Now()
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}
