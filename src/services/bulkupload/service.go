package bulkupload

import (
	"context"
	"fmt"
	"log"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// deleteChunkSize bounds each delete batch when a bulk upload is undone.
const deleteChunkSize = 100

type Service struct {
	studentStore store.StudentStore
	students     *students.Service
	actions      *actions.Service
}

func NewService(st *store.Store, studentSvc *students.Service, act *actions.Service) *Service {
	return &Service{studentStore: st.Students, students: studentSvc, actions: act}
}

// RowError reports one rejected spreadsheet row. Row numbers are 1-based and
// include the header, so the first data row is row 2.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Result summarizes one upload run.
type Result struct {
	Successes int        `json:"successes"`
	Failures  int        `json:"failures"`
	Errors    []RowError `json:"errors"`
	ActionID  string     `json:"actionId,omitempty"`
}

// Upload imports every row it can and reports the ones it could not. A row
// failure never aborts the batch; the ledger entry covers only the rows that
// made it in, so undo removes exactly those students.
func (s *Service) Upload(ctx context.Context, filename string, content []byte, performerUserID string) (*Result, error) {
	rows, err := ParseFile(filename, content)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, models.Validationf("file has no data rows")
	}

	res := &Result{Errors: []RowError{}}
	var created []primitive.ObjectID
	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		req, err := MapRow(row)
		if err != nil {
			res.Failures++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		if req.Email != "" || req.Code != "" {
			if dup, err := s.studentStore.FindByEmailOrCode(ctx, req.Email, req.Code); err == nil {
				res.Failures++
				msg := fmt.Sprintf("student with code %s already exists", req.Code)
				if req.Email != "" && dup.Email == req.Email {
					msg = fmt.Sprintf("student with email %s already exists", req.Email)
				}
				res.Errors = append(res.Errors, RowError{Row: rowNum, Message: msg})
				continue
			}
		}

		st, err := s.students.Create(ctx, req)
		if err != nil {
			res.Failures++
			res.Errors = append(res.Errors, RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		created = append(created, st.ID)
		res.Successes++
	}

	if len(created) > 0 {
		entry, err := s.actions.Record(ctx, models.ActionBulkUploadStudents, performerUserID,
			models.BulkUploadMeta{
				CreatedStudentIDs: created,
				Successes:         res.Successes,
				Failures:          res.Failures,
				Source:            filename,
			}, nil)
		if err != nil {
			log.Println("⚠️  Bulk upload succeeded but action log failed:", err)
		} else {
			res.ActionID = entry.ID.Hex()
		}
	}
	log.Printf("✅ Bulk upload %s: %d created, %d rejected", filename, res.Successes, res.Failures)
	return res, nil
}

// Undo deletes every student a BULK_UPLOAD_STUDENTS action created, in
// chunks. The created ids live in the action's metadata, not undoData.
func (s *Service) Undo(ctx context.Context, actionID string) (int64, error) {
	entry, err := s.actions.Claim(ctx, actionID, models.ActionBulkUploadStudents)
	if err != nil {
		return 0, err
	}
	var meta models.BulkUploadMeta
	if err := entry.DecodeMetadata(&meta); err != nil {
		return 0, fmt.Errorf("decode bulk upload metadata: %w", err)
	}

	var deleted int64
	ids := meta.CreatedStudentIDs
	for start := 0; start < len(ids); start += deleteChunkSize {
		end := start + deleteChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		n, err := s.studentStore.DeleteByIDs(ctx, ids[start:end])
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	log.Printf("↩️  Undid bulk upload %s, deleted %d students", actionID, deleted)
	return deleted, nil
}
