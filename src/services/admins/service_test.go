package admins

import (
	"context"
	"testing"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
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
	registry := students.NewService(st, notifier)
	return NewService(st, registry, notifier), st, notifier
}

func seed(t *testing.T, st *store.Store, level, hall, gender string) {
	t.Helper()
	require.NoError(t, st.Students.Insert(context.Background(), &models.Student{
		FullName: "S", Gender: gender, Level: level, Hall: hall,
		ProgramDurationYears: 4, Role: models.RoleMember,
	}))
}

func TestCreateSecretarySendsTempPassword(t *testing.T) {
	svc, st, notifier := newTestService()
	ctx := context.Background()

	user, err := svc.CreateSecretary(ctx, CreateSecretaryRequest{
		FullName: "Efua Darko",
		Email:    "Efua@Example.com",
		Gender:   "Female",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSecretary, user.Role)
	assert.Equal(t, "efua@example.com", user.Email)
	require.Len(t, notifier.sent, 1)

	stored, err := st.Users.FindByEmail(ctx, "efua@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	// The stored hash is bcrypt, not the plaintext temp password.
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("wrong")))
}

func TestCreateSecretaryCreatesStudentRecord(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateSecretary(ctx, CreateSecretaryRequest{
		FullName: "Efua Darko",
		Email:    "efua@example.com",
		Gender:   "Female",
		Level:    "L200",
		Hall:     "Volta Hall",
	})
	require.NoError(t, err)

	paired, err := st.Students.FindByEmail(ctx, "efua@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, paired.Role)
	assert.Equal(t, "L200", paired.Level)
	assert.Contains(t, paired.Code, "STU-")
}

func TestCreateSecretaryDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := CreateSecretaryRequest{FullName: "Efua Darko", Email: "efua@example.com", Gender: "Female"}
	_, err := svc.CreateSecretary(ctx, req)
	require.NoError(t, err)
	_, err = svc.CreateSecretary(ctx, req)
	assert.True(t, models.IsValidation(err))
}

func TestLevelDistributionOrdered(t *testing.T) {
	svc, st, _ := newTestService()
	seed(t, st, "L300", "Volta Hall", "Female")
	seed(t, st, "L100", "Volta Hall", "Female")
	seed(t, st, "L100", "Legon Hall", "Male")
	seed(t, st, models.LevelAlumni, "Legon Hall", "Male")

	slices, err := svc.LevelDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, slices, 3)
	assert.Equal(t, "L100", slices[0].Label)
	assert.Equal(t, 2, slices[0].Count)
	assert.Equal(t, "L300", slices[1].Label)
	assert.Equal(t, models.LevelAlumni, slices[2].Label)
}

func TestHallDistributionTracksTodaysPresence(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()

	a := &models.Student{FullName: "A", Gender: "Female", Level: "L100", Hall: "Volta Hall", Role: models.RoleMember}
	b := &models.Student{FullName: "B", Gender: "Male", Level: "L100", Hall: "Volta Hall", Role: models.RoleMember}
	c := &models.Student{FullName: "C", Gender: "Male", Level: "L200", Hall: "Legon Hall", Role: models.RoleMember}
	for _, s := range []*models.Student{a, b, c} {
		require.NoError(t, st.Students.Insert(ctx, s))
	}
	today := time.Now().Format("2006-01-02")
	require.NoError(t, st.Attendance.Insert(ctx, &models.Attendance{
		Date: today, Type: models.AttendanceMember, StudentID: a.ID, IsPresent: true,
	}))

	stats, err := svc.HallDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Legon Hall", stats[0].Hall)
	assert.Equal(t, 0, stats[0].PresentToday)
	assert.Equal(t, "Volta Hall", stats[1].Hall)
	assert.Equal(t, 2, stats[1].Total)
	assert.Equal(t, 1, stats[1].PresentToday)
	assert.Equal(t, 50, stats[1].Rate)
}

func TestGenderDistributionColorsCycle(t *testing.T) {
	svc, st, _ := newTestService()
	seed(t, st, "L100", "Volta Hall", "Female")
	seed(t, st, "L100", "Legon Hall", "Male")

	slices, err := svc.GenderDistribution(context.Background())
	require.NoError(t, err)
	require.Len(t, slices, 2)
	assert.Equal(t, chartPalette[0], slices[0].Color)
	assert.Equal(t, chartPalette[1], slices[1].Color)
}

func TestInsightsCounts(t *testing.T) {
	svc, st, _ := newTestService()
	ctx := context.Background()
	seed(t, st, "L100", "Volta Hall", "Female")
	require.NoError(t, st.Students.Insert(ctx, &models.Student{
		FullName: "Walk In", Role: models.RoleVisitor,
	}))

	ins, err := svc.GetInsights(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ins.TotalStudents)
	assert.Equal(t, 1, ins.TotalMembers)
	assert.Equal(t, 1, ins.TotalVisitors)
	assert.Len(t, ins.MonthlyPresence, 12)
	assert.Equal(t, "Jan", ins.MonthlyPresence[0].Month)
}
