package promotion

import (
	"context"
	"testing"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService() (*Service, *store.Store) {
	st := store.NewMemory()
	return NewService(st, actions.NewService(st.Actions)), st
}

func seedStudent(t *testing.T, st *store.Store, name, level string, duration int) *models.Student {
	t.Helper()
	s := &models.Student{
		FullName:             name,
		Gender:               "Female",
		Level:                level,
		ProgramDurationYears: duration,
		Hall:                 "Volta Hall",
		Role:                 models.RoleMember,
	}
	require.NoError(t, st.Students.Insert(context.Background(), s))
	return s
}

func level(t *testing.T, st *store.Store, id primitive.ObjectID) string {
	t.Helper()
	s, err := st.Students.FindByID(context.Background(), id)
	require.NoError(t, err)
	return s.Level
}

func TestPromoteSkipsShortPrograms(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	fourYear := seedStudent(t, st, "Four Year", "L100", 4)
	sixYear := seedStudent(t, st, "Six Year", "L100", 6)
	oneYear := seedStudent(t, st, "One Year", "L100", 1)

	res, err := svc.Promote(ctx, "L100", "L200", "admin1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Promoted)
	assert.Equal(t, 1, res.Skipped)

	assert.Equal(t, "L200", level(t, st, fourYear.ID))
	assert.Equal(t, "L200", level(t, st, sixYear.ID))
	assert.Equal(t, "L100", level(t, st, oneYear.ID))
}

func TestPromoteToAlumniRequiresFinalLevel(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	done := seedStudent(t, st, "Finalist", "L400", 4)
	notDone := seedStudent(t, st, "Midway", "L400", 6)

	res, err := svc.Promote(ctx, "L400", models.LevelAlumni, "admin1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Promoted)

	assert.Equal(t, models.LevelAlumni, level(t, st, done.ID))
	assert.Equal(t, "L400", level(t, st, notDone.ID))
}

func TestPromoteNoEligibleFails(t *testing.T) {
	svc, st := newTestService()
	seedStudent(t, st, "One Year", "L100", 1)

	_, err := svc.Promote(context.Background(), "L100", "L200", "admin1")
	assert.ErrorIs(t, err, models.ErrNoEligibleStudents)
}

func TestPromoteSkippingLevelsRejectedPerStudent(t *testing.T) {
	svc, st := newTestService()
	seedStudent(t, st, "Jumper", "L100", 4)

	_, err := svc.Promote(context.Background(), "L100", "L300", "admin1")
	assert.ErrorIs(t, err, models.ErrNoEligibleStudents)
}

func TestPromoteValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Promote(ctx, "", "L200", "admin1")
	assert.True(t, models.IsValidation(err))
	_, err = svc.Promote(ctx, "L100", "L100", "admin1")
	assert.True(t, models.IsValidation(err))
	_, err = svc.Promote(ctx, "L700", "L200", "admin1")
	assert.True(t, models.IsValidation(err))
	_, err = svc.Promote(ctx, "L100", "graduated", "admin1")
	assert.True(t, models.IsValidation(err))
}

func TestUndoRestoresPriorLevels(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	student := seedStudent(t, st, "Finalist", "L400", 4)
	res, err := svc.Promote(ctx, "L400", models.LevelAlumni, "admin1")
	require.NoError(t, err)
	assert.Equal(t, models.LevelAlumni, level(t, st, student.ID))

	restored, err := svc.Undo(ctx, res.ActionID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored)
	assert.Equal(t, "L400", level(t, st, student.ID))
}

func TestUndoErrorTriplet(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	seedStudent(t, st, "Finalist", "L400", 4)

	res, err := svc.Promote(ctx, "L400", models.LevelAlumni, "admin1")
	require.NoError(t, err)

	_, err = svc.Undo(ctx, res.ActionID)
	require.NoError(t, err)
	_, err = svc.Undo(ctx, res.ActionID)
	assert.ErrorIs(t, err, models.ErrAlreadyUndone)
	_, err = svc.Undo(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrActionNotFound)
	_, err = svc.Undo(ctx, "not-a-hex-id")
	assert.ErrorIs(t, err, models.ErrActionNotFound)
}

func TestUndoWrongTypeRejected(t *testing.T) {
	st := store.NewMemory()
	act := actions.NewService(st.Actions)
	svc := NewService(st, act)
	ctx := context.Background()

	entry, err := act.Record(ctx, models.ActionMarkAllAttendance, "admin1", nil, nil)
	require.NoError(t, err)

	_, err = svc.Undo(ctx, entry.ID.Hex())
	assert.ErrorIs(t, err, models.ErrWrongActionType)
}

func TestValidTargets(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	// At L300: a 3-year program graduates, longer programs step to L400.
	seedStudent(t, st, "Three Year", "L300", 3)
	seedStudent(t, st, "Four Year", "L300", 4)

	targets, err := svc.ValidTargets(ctx, "L300")
	require.NoError(t, err)
	assert.Equal(t, []string{"L400", models.LevelAlumni}, targets)
}

func TestValidTargetsEmptyLevel(t *testing.T) {
	svc, _ := newTestService()
	targets, err := svc.ValidTargets(context.Background(), "L500")
	require.NoError(t, err)
	assert.Empty(t, targets)
}

func TestAvailableLevelsOrdered(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	seedStudent(t, st, "A", "L300", 4)
	seedStudent(t, st, "B", "L100", 4)
	seedStudent(t, st, "C", models.LevelAlumni, 4)

	levels, err := svc.AvailableLevels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"L100", "L300", models.LevelAlumni}, levels)
}
