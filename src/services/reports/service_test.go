package reports

import (
	"context"
	"fmt"
	"testing"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *store.Store) {
	st := store.NewMemory()
	return NewService(st, nil), st
}

func seedMembers(t *testing.T, st *store.Store, n int) []*models.Student {
	t.Helper()
	out := make([]*models.Student, 0, n)
	for i := 0; i < n; i++ {
		s := &models.Student{
			FullName:             fmt.Sprintf("Member %d", i),
			Gender:               "Male",
			Level:                "L200",
			ProgramDurationYears: 4,
			Hall:                 "Legon Hall",
			Role:                 models.RoleMember,
		}
		require.NoError(t, st.Students.Insert(context.Background(), s))
		out = append(out, s)
	}
	return out
}

func mark(t *testing.T, st *store.Store, date string, s *models.Student, present bool) {
	t.Helper()
	require.NoError(t, st.Attendance.Insert(context.Background(), &models.Attendance{
		Date: date, Type: models.AttendanceMember, Status: models.AttendanceOpen,
		StudentID: s.ID, IsPresent: present,
	}))
}

func TestAttendanceRangeRates(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	members := seedMembers(t, st, 3)

	// Day 1: 1 of 3 present (33). Day 2: 2 of 3 present (67).
	mark(t, st, "2026-03-01", members[0], true)
	mark(t, st, "2026-03-01", members[1], false)
	mark(t, st, "2026-03-02", members[0], true)
	mark(t, st, "2026-03-02", members[1], true)

	report, err := svc.AttendanceRange(ctx, "2026-03-01", "2026-03-07")
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalMembers)
	require.Len(t, report.Days, 2)
	assert.Equal(t, 33, report.Days[0].Rate)
	assert.Equal(t, 67, report.Days[1].Rate)
	assert.Equal(t, 50, report.AverageRate)
}

func TestAttendanceRangeCountsVisitors(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	seedMembers(t, st, 1)

	require.NoError(t, st.Attendance.Insert(ctx, &models.Attendance{
		Date: "2026-03-01", Type: models.AttendanceVisitor,
		Status: models.AttendanceOpen, VisitorName: "Guest", IsPresent: true,
	}))

	report, err := svc.AttendanceRange(ctx, "2026-03-01", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, report.Days, 1)
	assert.Equal(t, 1, report.Days[0].Visitors)
	assert.Equal(t, 0, report.Days[0].Present)
}

func TestAttendanceRangeValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.AttendanceRange(ctx, "bad", "2026-03-01")
	assert.True(t, models.IsValidation(err))
	_, err = svc.AttendanceRange(ctx, "2026-03-02", "2026-03-01")
	assert.True(t, models.IsValidation(err))
}

func TestRosterGrouping(t *testing.T) {
	svc, st := newTestService()
	ctx := context.Background()
	seedMembers(t, st, 2)

	roster, err := svc.Roster(ctx, "hall")
	require.NoError(t, err)
	assert.Len(t, roster.Groups["Legon Hall"], 2)

	_, err = svc.Roster(ctx, "shoe-size")
	assert.True(t, models.IsValidation(err))
}

func TestExportCSVHasHeaderAndRows(t *testing.T) {
	svc, st := newTestService()
	seedMembers(t, st, 2)

	data, err := svc.ExportStudentsCSV(context.Background(), store.StudentFilter{})
	require.NoError(t, err)
	assert.Contains(t, string(data), "Code,Full Name,Gender,Level")
	assert.Contains(t, string(data), "Member 0")
	assert.Contains(t, string(data), "Member 1")
}

func TestExportExcelRoundTrip(t *testing.T) {
	svc, st := newTestService()
	seedMembers(t, st, 1)

	data, err := svc.ExportStudentsExcel(context.Background(), store.StudentFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx files are zip archives.
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}
