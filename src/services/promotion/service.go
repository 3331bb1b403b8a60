// Package promotion moves students between academic levels in bulk, gated by
// program-duration eligibility, with full undo through the action ledger.
package promotion

import (
	"context"
	"fmt"
	"log"
	"sort"

	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Service struct {
	students store.StudentStore
	actions  *actions.Service
}

func NewService(st *store.Store, act *actions.Service) *Service {
	return &Service{students: st.Students, actions: act}
}

// Result describes what a promotion run did.
type Result struct {
	FromLevel  string               `json:"fromLevel"`
	ToLevel    string               `json:"toLevel"`
	Promoted   int                  `json:"promoted"`
	Skipped    int                  `json:"skipped"`
	ActionID   string               `json:"actionId"`
	StudentIDs []primitive.ObjectID `json:"studentIds"`
}

// eligible applies the promotion rule for one student. Moving up requires the
// target to be exactly one step above the current level and within the
// student's program; graduating to ALUMNI requires the student to have
// reached their program's final level.
func eligible(st *models.Student, toLevel string) bool {
	cur := models.LevelNumber(st.Level)
	if toLevel == models.LevelAlumni {
		return cur >= st.MaxLevelNumber()
	}
	to := models.LevelNumber(toLevel)
	return to == cur+100 && to <= st.MaxLevelNumber()
}

// Promote moves every eligible student at fromLevel to toLevel. Ineligible
// students at the same nominal level are skipped silently; zero eligible
// students fails the whole operation with ErrNoEligibleStudents.
func (s *Service) Promote(ctx context.Context, fromLevel, toLevel, performerUserID string) (*Result, error) {
	if fromLevel == "" || toLevel == "" {
		return nil, models.Validationf("fromLevel and toLevel are required")
	}
	if fromLevel == toLevel {
		return nil, models.Validationf("fromLevel and toLevel must differ")
	}
	if !models.IsCanonicalLevel(fromLevel) {
		return nil, models.Validationf("invalid fromLevel: %s", fromLevel)
	}
	if toLevel != models.LevelAlumni && !models.IsCanonicalLevel(toLevel) {
		return nil, models.Validationf("invalid toLevel: %s", toLevel)
	}

	candidates, err := s.students.ListByLevel(ctx, fromLevel)
	if err != nil {
		return nil, err
	}

	var promoted []primitive.ObjectID
	var priors []models.PriorLevel
	skipped := 0
	for i := range candidates {
		st := &candidates[i]
		if !eligible(st, toLevel) {
			skipped++
			continue
		}
		promoted = append(promoted, st.ID)
		priors = append(priors, models.PriorLevel{StudentID: st.ID, From: st.Level})
	}
	if len(promoted) == 0 {
		return nil, models.ErrNoEligibleStudents
	}

	if _, err := s.students.BulkUpdateLevel(ctx, promoted, toLevel); err != nil {
		return nil, err
	}

	entry, err := s.actions.Record(ctx, models.ActionPromoteStudents, performerUserID,
		models.PromotionMeta{FromLevel: fromLevel, ToLevel: toLevel, AffectedStudentIDs: promoted},
		models.PromotionUndo{PriorLevels: priors})
	if err != nil {
		log.Println("⚠️  Promotion applied but action log failed:", err)
	}

	res := &Result{
		FromLevel:  fromLevel,
		ToLevel:    toLevel,
		Promoted:   len(promoted),
		Skipped:    skipped,
		StudentIDs: promoted,
	}
	if entry != nil {
		res.ActionID = entry.ID.Hex()
	}
	log.Printf("✅ Promoted %d students %s -> %s (%d skipped)", res.Promoted, fromLevel, toLevel, skipped)
	return res, nil
}

// Undo restores each promoted student's prior level. Restoration is per
// student because one promotion can have captured heterogeneous prior levels.
func (s *Service) Undo(ctx context.Context, actionID string) (int, error) {
	entry, err := s.actions.Claim(ctx, actionID, models.ActionPromoteStudents)
	if err != nil {
		return 0, err
	}
	var undo models.PromotionUndo
	if err := entry.DecodeUndoData(&undo); err != nil {
		return 0, fmt.Errorf("decode promotion undo data: %w", err)
	}

	restored := 0
	for _, prior := range undo.PriorLevels {
		if err := s.students.UpdateLevel(ctx, prior.StudentID, prior.From); err != nil {
			if err == models.ErrNotFound {
				continue // student deleted since the promotion
			}
			return restored, err
		}
		restored++
	}
	log.Printf("↩️  Undid promotion %s, restored %d students", actionID, restored)
	return restored, nil
}

// ValidTargets derives the legal target levels for promoting out of
// fromLevel, from the program durations actually present there. Sorted
// numerically, ALUMNI last.
func (s *Service) ValidTargets(ctx context.Context, fromLevel string) ([]string, error) {
	if !models.IsCanonicalLevel(fromLevel) {
		return nil, models.Validationf("invalid fromLevel: %s", fromLevel)
	}
	students, err := s.students.ListByLevel(ctx, fromLevel)
	if err != nil {
		return nil, err
	}

	cur := models.LevelNumber(fromLevel)
	set := map[string]bool{}
	for _, st := range students {
		if cur >= st.MaxLevelNumber() {
			set[models.LevelAlumni] = true
		} else {
			set[fmt.Sprintf("L%d", cur+100)] = true
		}
	}

	targets := make([]string, 0, len(set))
	for lvl := range set {
		targets = append(targets, lvl)
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i] == models.LevelAlumni {
			return false
		}
		if targets[j] == models.LevelAlumni {
			return true
		}
		return models.LevelNumber(targets[i]) < models.LevelNumber(targets[j])
	})
	return targets, nil
}

// AlumniEligible lists the students who have reached their program's final
// level and can graduate.
func (s *Service) AlumniEligible(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]models.Student, 0)
	for _, st := range students {
		if st.Level == models.LevelAlumni {
			continue
		}
		if models.LevelNumber(st.Level) >= st.MaxLevelNumber() && st.MaxLevelNumber() > 0 {
			out = append(out, st)
		}
	}
	return out, nil
}

// AvailableLevels lists the canonical levels that currently have students,
// in ascending order, with ALUMNI appended when populated.
func (s *Service) AvailableLevels(ctx context.Context) ([]string, error) {
	students, err := s.students.List(ctx, store.StudentFilter{})
	if err != nil {
		return nil, err
	}
	present := map[string]bool{}
	for _, st := range students {
		present[st.Level] = true
	}
	out := make([]string, 0, len(present))
	for _, lvl := range models.CanonicalLevels {
		if present[lvl] {
			out = append(out, lvl)
		}
	}
	if present[models.LevelAlumni] {
		out = append(out, models.LevelAlumni)
	}
	return out, nil
}
