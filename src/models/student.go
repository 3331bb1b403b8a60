package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentRole distinguishes regular members from walk-in visitors kept on file.
type StudentRole string

const (
	RoleMember  StudentRole = "Member"
	RoleVisitor StudentRole = "Visitor"
)

// Student is a registered fellowship member.
type Student struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code                   string             `bson:"code,omitempty" json:"code"` // STU-YYYY-NNN, sequence scoped per calendar year
	FullName               string             `bson:"fullName" json:"fullName"`
	Gender                 string             `bson:"gender" json:"gender"`
	Level                  string             `bson:"level" json:"level"` // L100..L600 or ALUMNI
	ProgramOfStudy         string             `bson:"programOfStudy,omitempty" json:"programOfStudy,omitempty"`
	ProgramDurationYears   int                `bson:"programDurationYears" json:"programDurationYears"` // 1-6
	ExpectedCompletionYear int                `bson:"expectedCompletionYear,omitempty" json:"expectedCompletionYear,omitempty"`
	Hall                   string             `bson:"hall" json:"hall"`
	Role                   StudentRole        `bson:"role" json:"role"`
	DateOfAdmission        string             `bson:"dateOfAdmission" json:"dateOfAdmission"` // YYYY-MM-DD
	DateOfBirth            string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Residence              string             `bson:"residence,omitempty" json:"residence,omitempty"`
	GuardianName           string             `bson:"guardianName,omitempty" json:"guardianName,omitempty"`
	GuardianContact        string             `bson:"guardianContact,omitempty" json:"guardianContact,omitempty"`
	LocalChurchName        string             `bson:"localChurchName,omitempty" json:"localChurchName,omitempty"`
	LocalChurchLocation    string             `bson:"localChurchLocation,omitempty" json:"localChurchLocation,omitempty"`
	District               string             `bson:"district,omitempty" json:"district,omitempty"`
	Phone                  string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email                  string             `bson:"email,omitempty" json:"email,omitempty"`
	ProfileImageURL        string             `bson:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MaxLevelNumber is the highest level this student's program reaches,
// e.g. a 4-year program tops out at 400.
func (s *Student) MaxLevelNumber() int {
	return s.ProgramDurationYears * 100
}

// CanonicalLevels are the six academic level codes, in order.
var CanonicalLevels = []string{"L100", "L200", "L300", "L400", "L500", "L600"}

// LevelAlumni marks a student who has completed their program.
const LevelAlumni = "ALUMNI"

// LevelNumber converts "L400" to 400. Returns 0 for ALUMNI or anything malformed.
func LevelNumber(level string) int {
	if len(level) < 2 || level[0] != 'L' {
		return 0
	}
	n := 0
	for _, c := range level[1:] {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// IsCanonicalLevel reports whether level is one of L100..L600.
func IsCanonicalLevel(level string) bool {
	for _, l := range CanonicalLevels {
		if l == level {
			return true
		}
	}
	return false
}
