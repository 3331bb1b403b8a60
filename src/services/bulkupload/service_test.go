package bulkupload

import (
	"context"
	"testing"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopNotifier struct{}

func (nopNotifier) Send(_, _, _, _ string) {}

func newTestService() (*Service, *store.Store) {
	st := store.NewMemory()
	studentSvc := students.NewService(st, nopNotifier{})
	return NewService(st, studentSvc, actions.NewService(st.Actions)), st
}

const sampleCSV = "Full Name,Gender,Level,Duration,Hall,Email\n" +
	"Ama Mensah,Female,L200,4,Volta Hall,ama@example.com\n" +
	",Male,L100,4,Legon Hall,noname@example.com\n" +
	"Kofi Boateng,M,level 300,4,Commonwealth,kofi@example.com\n"

func TestUploadPartialSuccess(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	res, err := svc.Upload(ctx, "students.csv", []byte(sampleCSV), "admin1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Successes)
	assert.Equal(t, 1, res.Failures)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row) // header is row 1, failing row is the second data row
	assert.NotEmpty(t, res.ActionID)

	n, err := st.Students.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestUploadSkipsDuplicateEmails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Upload(ctx, "students.csv", []byte(sampleCSV), "admin1")
	require.NoError(t, err)

	res, err := svc.Upload(ctx, "students.csv", []byte(sampleCSV), "admin1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Successes)
	assert.Equal(t, 3, res.Failures)
	assert.Empty(t, res.ActionID) // nothing created, nothing to undo
}

func TestUploadStudentIDColumn(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	require.NoError(t, st.Students.Insert(ctx, &models.Student{
		FullName: "Old Member", Code: "STU-2024-001", Role: models.RoleMember,
	}))

	content := "Student ID,Full Name,Gender,Level\n" +
		"STU-2024-001,Ama Mensah,Female,L200\n" +
		"stu-2024-002,Kofi Boateng,Male,L100\n" +
		",Efua Darko,Female,L100\n"
	res, err := svc.Upload(ctx, "students.csv", []byte(content), "admin1")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Successes)
	assert.Equal(t, 1, res.Failures)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Message, "STU-2024-001")

	// A supplied code is kept (uppercased); a missing one is generated.
	kept, err := st.Students.FindByCode(ctx, "STU-2024-002")
	require.NoError(t, err)
	assert.Equal(t, "Kofi Boateng", kept.FullName)

	all, err := st.Students.List(ctx, store.StudentFilter{})
	require.NoError(t, err)
	for _, s := range all {
		if s.FullName == "Efua Darko" {
			assert.Regexp(t, `^STU-\d{4}-\d{3}$`, s.Code)
		}
	}
}

func TestUndoDeletesOnlyUploadedStudents(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()

	// A student that existed before the upload must survive the undo.
	preexisting := &models.Student{FullName: "Old Member", Role: models.RoleMember}
	require.NoError(t, st.Students.Insert(ctx, preexisting))

	res, err := svc.Upload(ctx, "students.csv", []byte(sampleCSV), "admin1")
	require.NoError(t, err)

	deleted, err := svc.Undo(ctx, res.ActionID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	n, err := st.Students.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	_, err = st.Students.FindByID(ctx, preexisting.ID)
	assert.NoError(t, err)
}

func TestUndoTwiceFails(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	res, err := svc.Upload(ctx, "students.csv", []byte(sampleCSV), "admin1")
	require.NoError(t, err)

	_, err = svc.Undo(ctx, res.ActionID)
	require.NoError(t, err)
	_, err = svc.Undo(ctx, res.ActionID)
	assert.ErrorIs(t, err, models.ErrAlreadyUndone)
}

func TestUploadEmptyFile(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Upload(context.Background(), "students.csv", []byte("Full Name,Gender\n"), "admin1")
	assert.True(t, models.IsValidation(err))
}
