// Package store is the persistence boundary of the backend. Services depend
// on these interfaces only; the Mongo implementation lives in mongo.go and an
// in-memory implementation used by tests lives in memory.go.
package store

import (
	"context"

	"Backend-GnaasCMS/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentFilter narrows student queries. Zero values mean "no constraint".
type StudentFilter struct {
	Hall   string
	Level  string
	Gender string
}

// StudentUpdate is a profile edit. Level changes go through the promotion
// engine instead.
type StudentUpdate struct {
	FullName               string
	Gender                 string
	Level                  string
	ProgramOfStudy         string
	ProgramDurationYears   int
	ExpectedCompletionYear int
	Hall                   string
	Role                   models.StudentRole
	DateOfAdmission        string
	DateOfBirth            string
	Residence              string
	GuardianName           string
	GuardianContact        string
	LocalChurchName        string
	LocalChurchLocation    string
	District               string
	Phone                  string
	Email                  string
	ProfileImageURL        string
}

type StudentStore interface {
	Insert(ctx context.Context, s *models.Student) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByCode(ctx context.Context, code string) (*models.Student, error)
	// FindByEmailOrCode is the bulk-upload duplicate probe; empty arguments
	// are skipped, nil result means no match.
	FindByEmailOrCode(ctx context.Context, email, code string) (*models.Student, error)
	List(ctx context.Context, f StudentFilter) ([]models.Student, error)
	ListByLevel(ctx context.Context, level string) ([]models.Student, error)
	Count(ctx context.Context) (int64, error)
	// CountCodePrefix counts codes matching prefix, for per-year sequence
	// generation (STU-<year>-...).
	CountCodePrefix(ctx context.Context, prefix string) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, u StudentUpdate) error
	UpdateLevel(ctx context.Context, id primitive.ObjectID, level string) error
	// BulkUpdateLevel moves exactly the given students, not everyone at a level.
	BulkUpdateLevel(ctx context.Context, ids []primitive.ObjectID, level string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// AttendanceFilter narrows attendance queries. Dates are YYYY-MM-DD strings;
// DateFrom/DateTo are inclusive.
type AttendanceFilter struct {
	Date      string
	DateFrom  string
	DateTo    string
	Type      models.AttendanceType
	IsPresent *bool
	StudentID primitive.ObjectID
}

type AttendanceStore interface {
	// Insert adds one row. A member row colliding with an existing
	// (date, studentId) pair fails with models.ErrDuplicateMark; the Mongo
	// implementation backs this with a unique partial index so concurrent
	// requests cannot both win.
	Insert(ctx context.Context, a *models.Attendance) error
	InsertMany(ctx context.Context, rows []models.Attendance) error
	Find(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error)
	FindOne(ctx context.Context, f AttendanceFilter) (*models.Attendance, error)
	// CloseSlot stamps status=closed on every row matching date+type.
	CloseSlot(ctx context.Context, date string, typ models.AttendanceType) (int64, error)
	// DeleteMemberMarks removes the member rows for the given students on a
	// date and returns how many went away.
	DeleteMemberMarks(ctx context.Context, date string, studentIDs []primitive.ObjectID) (int64, error)
}

type ActionLogStore interface {
	Insert(ctx context.Context, a *models.ActionLog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ActionLog, error)
	// FindRecent returns the newest entries first.
	FindRecent(ctx context.Context, limit int64) ([]models.ActionLog, error)
	// ClaimUndo atomically flips undone false->true for the action with this
	// id and type. Returns the claimed action, or models.ErrNotFound when no
	// document matched (missing, wrong type, or already undone -- the caller
	// disambiguates with FindByID).
	ClaimUndo(ctx context.Context, id primitive.ObjectID, typ models.ActionType) (*models.ActionLog, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfileImage(ctx context.Context, id primitive.ObjectID, url string) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// Store bundles the four entity stores; main wires one of these into every
// service constructor.
type Store struct {
	Students   StudentStore
	Attendance AttendanceStore
	Actions    ActionLogStore
	Users      UserStore
}
