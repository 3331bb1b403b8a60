package actions

import (
	"context"
	"testing"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestClaimFlipsUndoneOnce(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st.Actions)
	ctx := context.Background()

	entry, err := svc.Record(ctx, models.ActionPromoteStudents, "admin1",
		models.PromotionMeta{FromLevel: "L100", ToLevel: "L200"},
		models.PromotionUndo{})
	require.NoError(t, err)
	assert.False(t, entry.Undone)

	claimed, err := svc.Claim(ctx, entry.ID.Hex(), models.ActionPromoteStudents)
	require.NoError(t, err)
	assert.True(t, claimed.Undone)

	_, err = svc.Claim(ctx, entry.ID.Hex(), models.ActionPromoteStudents)
	assert.ErrorIs(t, err, models.ErrAlreadyUndone)
}

func TestClaimDisambiguatesFailures(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st.Actions)
	ctx := context.Background()

	entry, err := svc.Record(ctx, models.ActionMarkAllAttendance, "admin1", nil, nil)
	require.NoError(t, err)

	_, err = svc.Claim(ctx, entry.ID.Hex(), models.ActionPromoteStudents)
	assert.ErrorIs(t, err, models.ErrWrongActionType)

	_, err = svc.Claim(ctx, primitive.NewObjectID().Hex(), models.ActionPromoteStudents)
	assert.ErrorIs(t, err, models.ErrActionNotFound)

	_, err = svc.Claim(ctx, "garbage", models.ActionPromoteStudents)
	assert.ErrorIs(t, err, models.ErrActionNotFound)
}

func TestClaimPayloadSurvivesRoundTrip(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st.Actions)
	ctx := context.Background()

	sid := primitive.NewObjectID()
	entry, err := svc.Record(ctx, models.ActionPromoteStudents, "admin1", nil,
		models.PromotionUndo{PriorLevels: []models.PriorLevel{{StudentID: sid, From: "L300"}}})
	require.NoError(t, err)

	claimed, err := svc.Claim(ctx, entry.ID.Hex(), models.ActionPromoteStudents)
	require.NoError(t, err)

	var undo models.PromotionUndo
	require.NoError(t, claimed.DecodeUndoData(&undo))
	require.Len(t, undo.PriorLevels, 1)
	assert.Equal(t, sid, undo.PriorLevels[0].StudentID)
	assert.Equal(t, "L300", undo.PriorLevels[0].From)
}

func TestRecentNewestFirst(t *testing.T) {
	st := store.NewMemory()
	svc := NewService(st.Actions)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, models.ActionMarkAllAttendance, "admin1", nil, nil)
		require.NoError(t, err)
	}
	entries, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
