// Package attendance implements daily presence tracking for members and
// visitors: marking, the per-slot OPEN/CLOSED state, mark-all with undo, and
// the read-side summaries the dashboard consumes.
package attendance

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/services/email"
	"Backend-GnaasCMS/src/store"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

type Service struct {
	attendance store.AttendanceStore
	students   store.StudentStore
	actions    *actions.Service
	notifier   email.Notifier
	validate   *validator.Validate
}

func NewService(st *store.Store, act *actions.Service, notifier email.Notifier) *Service {
	return &Service{
		attendance: st.Attendance,
		students:   st.Students,
		actions:    act,
		notifier:   notifier,
		validate:   validator.New(),
	}
}

// StatusReport is the OPEN/CLOSED view of one date.
type StatusReport struct {
	Date          string                  `json:"date"`
	Status        models.AttendanceStatus `json:"status"`
	MemberStatus  models.AttendanceStatus `json:"memberStatus"`
	VisitorStatus models.AttendanceStatus `json:"visitorStatus"`
}

// Status reports a date's slot states. A date with no rows is implicitly
// open; the overall status is closed as soon as any row on the date is.
func (s *Service) Status(ctx context.Context, date string) (*StatusReport, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	member, err := s.slotStatus(ctx, date, models.AttendanceMember)
	if err != nil {
		return nil, err
	}
	visitor, err := s.slotStatus(ctx, date, models.AttendanceVisitor)
	if err != nil {
		return nil, err
	}
	overall := models.AttendanceOpen
	if member == models.AttendanceClosed || visitor == models.AttendanceClosed {
		overall = models.AttendanceClosed
	}
	return &StatusReport{Date: date, Status: overall, MemberStatus: member, VisitorStatus: visitor}, nil
}

func (s *Service) slotStatus(ctx context.Context, date string, typ models.AttendanceType) (models.AttendanceStatus, error) {
	rows, err := s.attendance.Find(ctx, store.AttendanceFilter{Date: date, Type: typ})
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if row.Status == models.AttendanceClosed {
			return models.AttendanceClosed, nil
		}
	}
	return models.AttendanceOpen, nil
}

// MarkMember records one member's presence for a date. A second mark for the
// same (date, student) pair fails with ErrDuplicateMark; a closed slot fails
// with ErrAttendanceClosed. The mark is logged so it can be undone.
func (s *Service) MarkMember(ctx context.Context, date, studentID string, isPresent bool, markedBy string) (*models.Attendance, *models.ActionLog, error) {
	if err := validDate(date); err != nil {
		return nil, nil, err
	}
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return nil, nil, models.Validationf("invalid student id")
	}
	student, err := s.students.FindByID(ctx, oid)
	if err != nil {
		return nil, nil, err
	}

	// An existing mark wins over slot state: re-marking on a closed slot
	// still reports the duplicate.
	if _, err := s.attendance.FindOne(ctx, store.AttendanceFilter{
		Date: date, Type: models.AttendanceMember, StudentID: oid,
	}); err == nil {
		return nil, nil, models.ErrDuplicateMark
	}

	status, err := s.slotStatus(ctx, date, models.AttendanceMember)
	if err != nil {
		return nil, nil, err
	}
	if status == models.AttendanceClosed {
		return nil, nil, models.ErrAttendanceClosed
	}

	row := &models.Attendance{
		Date:      date,
		Type:      models.AttendanceMember,
		Status:    models.AttendanceOpen,
		StudentID: oid,
		IsPresent: isPresent,
		MarkedBy:  markedBy,
	}
	if err := s.attendance.Insert(ctx, row); err != nil {
		return nil, nil, err
	}

	entry, err := s.actions.Record(ctx, models.ActionMarkIndividualAttend, markedBy,
		bson.M{"date": date, "studentId": oid, "isPresent": isPresent},
		models.IndividualMarkUndo{Date: date, StudentID: oid})
	if err != nil {
		// The mark itself stood; losing the ledger entry only costs undo.
		log.Println("⚠️  Attendance marked but action log failed:", err)
	}

	if isPresent && student.Email != "" {
		subject, html := email.AttendanceRecorded(student.FullName, date)
		s.notifier.Send(student.Email, student.FullName, subject, html)
	}
	return row, entry, nil
}

// UnmarkMember deletes a member's mark for a date. Not logged: the caller can
// re-mark directly, so there is nothing to undo.
func (s *Service) UnmarkMember(ctx context.Context, date, studentID string) error {
	if err := validDate(date); err != nil {
		return err
	}
	oid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return models.Validationf("invalid student id")
	}
	n, err := s.attendance.DeleteMemberMarks(ctx, date, []primitive.ObjectID{oid})
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkVisitor records a walk-in visitor with inline details. Visitor marks
// are not logged to the action ledger.
func (s *Service) MarkVisitor(ctx context.Context, date string, data models.VisitorData, isPresent bool, markedBy string) (*models.Attendance, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(data); err != nil {
		return nil, models.Validationf("invalid visitor data: %v", err)
	}

	status, err := s.slotStatus(ctx, date, models.AttendanceVisitor)
	if err != nil {
		return nil, err
	}
	if status == models.AttendanceClosed {
		return nil, models.ErrAttendanceClosed
	}

	row := &models.Attendance{
		Date:           date,
		Type:           models.AttendanceVisitor,
		Status:         models.AttendanceOpen,
		VisitorName:    data.FullName,
		VisitorHall:    data.Hall,
		VisitorLevel:   data.Level,
		VisitorPurpose: data.Purpose,
		VisitorPhone:   data.Phone,
		VisitorEmail:   data.Email,
		IsPresent:      isPresent,
		MarkedBy:       markedBy,
	}
	if err := s.attendance.Insert(ctx, row); err != nil {
		return nil, err
	}

	if isPresent && data.Email != "" {
		subject, html := email.AttendanceRecorded(data.FullName, date)
		s.notifier.Send(data.Email, data.FullName, subject, html)
	}
	return row, nil
}

// MarkAllPresent marks every currently-unmarked member present for the date
// and logs exactly the inserted ids, so undo never touches manual marks.
func (s *Service) MarkAllPresent(ctx context.Context, date, markedBy string) (int, *models.ActionLog, error) {
	if err := validDate(date); err != nil {
		return 0, nil, err
	}
	status, err := s.slotStatus(ctx, date, models.AttendanceMember)
	if err != nil {
		return 0, nil, err
	}
	if status == models.AttendanceClosed {
		return 0, nil, models.ErrAttendanceClosed
	}

	members, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return 0, nil, err
	}
	existing, err := s.attendance.Find(ctx, store.AttendanceFilter{Date: date, Type: models.AttendanceMember})
	if err != nil {
		return 0, nil, err
	}
	marked := make(map[primitive.ObjectID]bool, len(existing))
	for _, row := range existing {
		marked[row.StudentID] = true
	}

	var rows []models.Attendance
	var inserted []primitive.ObjectID
	for _, st := range members {
		if st.Role != models.RoleMember || marked[st.ID] {
			continue
		}
		rows = append(rows, models.Attendance{
			Date:      date,
			Type:      models.AttendanceMember,
			Status:    models.AttendanceOpen,
			StudentID: st.ID,
			IsPresent: true,
			MarkedBy:  markedBy,
		})
		inserted = append(inserted, st.ID)
	}
	if len(rows) == 0 {
		return 0, nil, nil
	}
	if err := s.attendance.InsertMany(ctx, rows); err != nil {
		return 0, nil, err
	}

	entry, err := s.actions.Record(ctx, models.ActionMarkAllAttendance, markedBy,
		models.MarkAllMeta{Date: date, Count: len(inserted)},
		models.MarkAllUndo{Date: date, StudentIDs: inserted})
	if err != nil {
		log.Println("⚠️  Mark-all succeeded but action log failed:", err)
	}
	log.Printf("✅ Marked %d members present for %s", len(inserted), date)
	return len(inserted), entry, nil
}

// UndoMarkAll deletes exactly the rows a MARK_ALL_ATTENDANCE action inserted.
func (s *Service) UndoMarkAll(ctx context.Context, actionID string) (int64, error) {
	entry, err := s.actions.Claim(ctx, actionID, models.ActionMarkAllAttendance)
	if err != nil {
		return 0, err
	}
	var undo models.MarkAllUndo
	if err := entry.DecodeUndoData(&undo); err != nil {
		return 0, fmt.Errorf("decode mark-all undo data: %w", err)
	}
	n, err := s.attendance.DeleteMemberMarks(ctx, undo.Date, undo.StudentIDs)
	if err != nil {
		return 0, err
	}
	log.Printf("↩️  Undid mark-all for %s, removed %d rows", undo.Date, n)
	return n, nil
}

// UndoIndividual reverses one MARK_INDIVIDUAL_ATTENDANCE action.
func (s *Service) UndoIndividual(ctx context.Context, actionID string) error {
	entry, err := s.actions.Claim(ctx, actionID, models.ActionMarkIndividualAttend)
	if err != nil {
		return err
	}
	var undo models.IndividualMarkUndo
	if err := entry.DecodeUndoData(&undo); err != nil {
		return fmt.Errorf("decode individual mark undo data: %w", err)
	}
	_, err = s.attendance.DeleteMemberMarks(ctx, undo.Date, []primitive.ObjectID{undo.StudentID})
	return err
}

// Close stamps CLOSED on every row for the date+type slot. There is no
// reopen: closing is terminal. A slot with no rows cannot be closed because
// status rides on the rows.
func (s *Service) Close(ctx context.Context, date string, typ models.AttendanceType) (int64, error) {
	if err := validDate(date); err != nil {
		return 0, err
	}
	if typ != models.AttendanceMember && typ != models.AttendanceVisitor {
		return 0, models.Validationf("invalid attendance type: %s", typ)
	}
	n, err := s.attendance.CloseSlot(ctx, date, typ)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, models.Validationf("no attendance records to close for %s", date)
	}
	log.Printf("🔒 Closed %s attendance for %s (%d rows)", typ, date, n)
	return n, nil
}

func validDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return models.Validationf("invalid date %q, want YYYY-MM-DD", date)
	}
	return nil
}

// rate computes the integer attendance percentage, rounding half up.
func rate(present, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
