package students

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	sent []string
}

func (r *recordingNotifier) Send(toEmail, _, _, _ string) {
	r.sent = append(r.sent, toEmail)
}

func newTestService() (*Service, *store.Store, *recordingNotifier) {
	st := store.NewMemory()
	notifier := &recordingNotifier{}
	return NewService(st, notifier), st, notifier
}

func validRequest() CreateRequest {
	return CreateRequest{
		FullName:             "Ama Mensah",
		Gender:               "Female",
		Level:                "L100",
		ProgramDurationYears: 4,
		Hall:                 "Volta Hall",
		DateOfAdmission:      "2026-01-15",
	}
}

func TestCreateAssignsSequentialCodes(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()
	year := time.Now().Year()

	// Pre-seed three students with this year's codes.
	for i := 1; i <= 3; i++ {
		require.NoError(t, st.Students.Insert(ctx, &models.Student{
			Code:     fmt.Sprintf("STU-%d-%03d", year, i),
			FullName: fmt.Sprintf("Seeded %d", i),
			Role:     models.RoleMember,
		}))
	}

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("STU-%d-004", year), created.Code)
}

func TestCreateIgnoresOtherYearsCodes(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, st.Students.Insert(ctx, &models.Student{
		Code: "STU-2019-017", FullName: "Old Timer", Role: models.RoleMember,
	}))

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("STU-%d-001", time.Now().Year()), created.Code)
}

func TestCreateComputesCompletionYear(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 2030, created.ExpectedCompletionYear)
}

func TestCreateSendsWelcomeEmail(t *testing.T) {
	svc, _, notifier := newTestService()
	req := validRequest()
	req.Email = "ama@example.com"

	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ama@example.com", notifier.sent[0])
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := validRequest()
	req.FullName = ""
	_, err := svc.Create(ctx, req)
	assert.True(t, models.IsValidation(err))

	req = validRequest()
	req.Level = "L900"
	_, err = svc.Create(ctx, req)
	assert.True(t, models.IsValidation(err))

	req = validRequest()
	req.Level = "L300"
	req.ProgramDurationYears = 2
	_, err = svc.Create(ctx, req)
	assert.True(t, models.IsValidation(err))
}

func TestCreateDuplicateEmailRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := validRequest()
	req.Email = "ama@example.com"
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	second := validRequest()
	second.FullName = "Another Person"
	second.Email = "ama@example.com"
	_, err = svc.Create(ctx, second)
	assert.True(t, models.IsValidation(err))
}

func TestUpdatePreservesRole(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.FullName = "Ama Mensah-Updated"
	updated, err := svc.Update(ctx, created.ID.Hex(), req)
	require.NoError(t, err)
	assert.Equal(t, "Ama Mensah-Updated", updated.FullName)
	assert.Equal(t, models.RoleMember, updated.Role)

	stored, err := st.Students.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, stored.Code)
}

func TestDeleteMissingStudent(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Delete(context.Background(), "aaaaaaaaaaaaaaaaaaaaaaaa")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
