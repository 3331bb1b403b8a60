// Package actions records undoable operations and arbitrates undo claims.
// The claim is the concurrency gate: reversal side effects run only in the
// request that wins the conditional flip of the undone flag.
package actions

import (
	"context"
	"log"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	logs store.ActionLogStore
}

func NewService(logs store.ActionLogStore) *Service {
	return &Service{logs: logs}
}

// Record appends one ledger entry and returns it. Callers log the entry AFTER
// the operation it describes has succeeded.
func (s *Service) Record(ctx context.Context, typ models.ActionType, performerUserID string, metadata, undoData interface{}) (*models.ActionLog, error) {
	entry := &models.ActionLog{
		ActionType:      typ,
		PerformerUserID: performerUserID,
		Metadata:        metadata,
		UndoData:        undoData,
	}
	if err := s.logs.Insert(ctx, entry); err != nil {
		return nil, err
	}
	log.Println("📝 Action logged:", typ, entry.ID.Hex())
	return entry, nil
}

// Claim atomically marks the action undone and returns its payload. When the
// claim finds nothing, a follow-up read tells the caller which precondition
// failed: the action does not exist, is of another type, or was already
// undone by a concurrent request.
func (s *Service) Claim(ctx context.Context, id string, expected models.ActionType) (*models.ActionLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrActionNotFound
	}

	entry, err := s.logs.ClaimUndo(ctx, oid, expected)
	if err == nil {
		return entry, nil
	}
	if err != models.ErrNotFound {
		return nil, err
	}

	existing, ferr := s.logs.FindByID(ctx, oid)
	if ferr != nil {
		return nil, models.ErrActionNotFound
	}
	if existing.ActionType != expected {
		return nil, models.ErrWrongActionType
	}
	return nil, models.ErrAlreadyUndone
}

// Recent lists the latest ledger entries for the undo history view.
func (s *Service) Recent(ctx context.Context, limit int64) ([]models.ActionLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.logs.FindRecent(ctx, limit)
}
