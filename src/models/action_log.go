package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionType tags a logged mutating operation. Each type has its own undo
// payload shape; the undo coordinator dispatches on this value.
type ActionType string

const (
	ActionBulkUploadStudents   ActionType = "BULK_UPLOAD_STUDENTS"
	ActionPromoteStudents      ActionType = "PROMOTE_STUDENTS"
	ActionMarkAllAttendance    ActionType = "MARK_ALL_ATTENDANCE"
	ActionMarkIndividualAttend ActionType = "MARK_INDIVIDUAL_ATTENDANCE"
)

// ActionLog is one entry in the append-only action ledger. Undone flips
// false -> true exactly once, never back.
type ActionLog struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActionType      ActionType         `bson:"actionType" json:"actionType"`
	PerformerUserID string             `bson:"performerUserId" json:"performerUserId"`
	Metadata        interface{}        `bson:"metadata" json:"metadata"`
	UndoData        interface{}        `bson:"undoData,omitempty" json:"undoData,omitempty"`
	Undone          bool               `bson:"undone" json:"undone"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// DecodeUndoData unpacks the stored undo payload into the typed struct for
// this action's type. Works whether the payload is still the original struct
// (in-memory store) or a decoded BSON document (Mongo).
func (a *ActionLog) DecodeUndoData(out interface{}) error {
	return roundTrip(a.UndoData, out)
}

// DecodeMetadata unpacks the stored metadata the same way.
func (a *ActionLog) DecodeMetadata(out interface{}) error {
	return roundTrip(a.Metadata, out)
}

func roundTrip(in, out interface{}) error {
	if in == nil {
		return nil
	}
	raw, err := bson.Marshal(in)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// PriorLevel remembers where one student was before a promotion.
type PriorLevel struct {
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
	From      string             `bson:"from" json:"from"`
}

// PromotionUndo reverses a PROMOTE_STUDENTS action. Prior levels are restored
// per student because students at the same nominal level can have different
// program durations.
type PromotionUndo struct {
	PriorLevels []PriorLevel `bson:"priorLevels" json:"priorLevels"`
}

// PromotionMeta describes what a promotion did.
type PromotionMeta struct {
	FromLevel          string               `bson:"fromLevel" json:"fromLevel"`
	ToLevel            string               `bson:"toLevel" json:"toLevel"`
	AffectedStudentIDs []primitive.ObjectID `bson:"affectedStudentIds" json:"affectedStudentIds"`
}

// MarkAllUndo lists exactly the students a mark-all inserted, so undo deletes
// only those rows and leaves manual marks alone.
type MarkAllUndo struct {
	Date       string               `bson:"date" json:"date"`
	StudentIDs []primitive.ObjectID `bson:"studentIds" json:"studentIds"`
}

// MarkAllMeta describes a mark-all action.
type MarkAllMeta struct {
	Date  string `bson:"date" json:"date"`
	Count int    `bson:"count" json:"count"`
}

// IndividualMarkUndo reverses a single member mark.
type IndividualMarkUndo struct {
	Date      string             `bson:"date" json:"date"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"`
}

// BulkUploadMeta records the outcome of a bulk upload. The created ids double
// as the undo payload: reversal deletes them in chunks.
type BulkUploadMeta struct {
	CreatedStudentIDs []primitive.ObjectID `bson:"createdStudentIds" json:"createdStudentIds"`
	Successes         int                  `bson:"successes" json:"successes"`
	Failures          int                  `bson:"failures" json:"failures"`
	Source            string               `bson:"source" json:"source"`
}
