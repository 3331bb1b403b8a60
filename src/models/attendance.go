package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceType string

const (
	AttendanceMember  AttendanceType = "member"
	AttendanceVisitor AttendanceType = "visitor"
)

type AttendanceStatus string

const (
	AttendanceOpen   AttendanceStatus = "open"
	AttendanceClosed AttendanceStatus = "closed"
)

// Attendance is one presence record. Member rows point at a Student; visitor
// rows carry the visitor's details inline, there is no visitor entity.
// Status rides on the rows themselves: closing a date+type slot stamps every
// matching row CLOSED.
type Attendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Type      AttendanceType     `bson:"type" json:"type"`
	Status    AttendanceStatus   `bson:"status" json:"status"`
	StudentID primitive.ObjectID `bson:"studentId,omitempty" json:"studentId,omitempty"`

	VisitorName    string `bson:"visitorName,omitempty" json:"visitorName,omitempty"`
	VisitorHall    string `bson:"visitorHall,omitempty" json:"visitorHall,omitempty"`
	VisitorLevel   string `bson:"visitorLevel,omitempty" json:"visitorLevel,omitempty"`
	VisitorPurpose string `bson:"visitorPurpose,omitempty" json:"visitorPurpose,omitempty"`
	VisitorPhone   string `bson:"visitorPhone,omitempty" json:"visitorPhone,omitempty"`
	VisitorEmail   string `bson:"visitorEmail,omitempty" json:"visitorEmail,omitempty"`

	IsPresent bool      `bson:"isPresent" json:"isPresent"`
	MarkedBy  string    `bson:"markedBy,omitempty" json:"markedBy,omitempty"` // user id of the secretary/admin
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// VisitorData is the inline visitor payload accepted when marking a visitor.
type VisitorData struct {
	FullName string `json:"fullName" validate:"required"`
	Hall     string `json:"hall"`
	Level    string `json:"level"`
	Purpose  string `json:"purpose"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
}
