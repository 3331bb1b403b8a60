package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleSecretary  UserRole = "SECRETARY"
)

// User is an account that can sign in and mutate records.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName             string             `bson:"fullName" json:"fullName"`
	Email                string             `bson:"email" json:"email"`
	Level                string             `bson:"level,omitempty" json:"level,omitempty"`
	ProgramDurationYears int                `bson:"programDurationYears,omitempty" json:"programDurationYears,omitempty"`
	Hall                 string             `bson:"hall,omitempty" json:"hall,omitempty"`
	Role                 UserRole           `bson:"role" json:"role"`
	DateOfAdmission      string             `bson:"dateOfAdmission,omitempty" json:"dateOfAdmission,omitempty"`
	Phone                string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImageURL      string             `bson:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is what auth and admin endpoints return about a user.
type UserSummary struct {
	ID              string   `json:"id"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Role            UserRole `json:"role"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
}

// Summary strips a user down to its public fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID.Hex(),
		FullName:        u.FullName,
		Email:           u.Email,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
	}
}
