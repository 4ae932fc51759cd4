package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/google/uuid"
)

// Run executes growth cycles until the count is reached or the context
// is canceled. A cycles value of zero or less runs until cancellation.
// A failed subject aborts only its own cycle.
func (e *Engine) Run(ctx context.Context, cycles int) error {
	for i := 0; cycles <= 0 || i < cycles; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.ProcessCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("[Run] Cycle failed", "cycle", i+1, "err", err)
		}
	}
	return nil
}

// ProcessCycle selects the next subject and processes it end to end.
func (e *Engine) ProcessCycle(ctx context.Context) error {
	cycleID, err := gonanoid.New(8)
	if err != nil {
		cycleID = "unknown"
	}

	subjectID, err := e.NextSubject(ctx)
	if err != nil {
		return fmt.Errorf("selecting subject: %w", err)
	}

	logger.Info("[Cycle] Processing subject", "cycle", cycleID, "subject", subjectID)
	if err := e.ProcessSubject(ctx, subjectID); err != nil {
		return fmt.Errorf("cycle %s subject %s: %w", cycleID, subjectID, err)
	}

	if e.oracle != nil {
		metrics := e.oracle.GetMetrics()
		logger.Info("[Cycle] Completed", "cycle", cycleID,
			"requests", metrics.Requests, "tokens", metrics.TotalTokens,
			"duration_ms", metrics.DurationMs)
		e.oracle.ResetMetrics()
	}
	return nil
}

// ProcessSubject runs the full pipeline for one person: narrative
// generation, fact extraction, validation and correction, persisting the
// completed record, and resolving every mentioned relative.
func (e *Engine) ProcessSubject(ctx context.Context, subjectID uuid.UUID) error {
	subject, err := e.store.GetPerson(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("loading subject: %w", err)
	}

	relatives, err := e.GatherRelatives(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("gathering relatives: %w", err)
	}

	var birthYear *int
	if y, ok := subject.BirthYear(); ok {
		birthYear = &y
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	biography, err := ai.CallBiographyAI(ctx, e.oracle, ai.BiographyRequest{
		GivenName:  subject.GivenName,
		Surname:    subject.Surname,
		Gender:     subject.Gender,
		BirthYear:  birthYear,
		BirthPlace: subject.BirthPlace,
		Generation: subject.Generation,
		WordCount:  e.cfg.BiographyWordCount,
		Relatives:  relatives,
	}, e.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("generating biography: %w", err)
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	facts, err := ai.CallExtractionAI(ctx, e.oracle, biography, subject.FullName(), birthYear, e.cfg.MaxRetries)
	if err != nil {
		return fmt.Errorf("extracting facts: %w", err)
	}

	facts, _, err = e.ValidateAndCorrect(ctx, biography, facts)
	if err != nil {
		return fmt.Errorf("validating facts: %w", err)
	}

	applyFacts(subject, facts, biography)
	if err := e.store.UpdatePerson(ctx, subject); err != nil {
		return fmt.Errorf("saving subject: %w", err)
	}

	e.embedBiography(ctx, subject.ID, biography)

	for i := range facts.Events {
		ev := facts.Events[i]
		event := common.Event{
			Type:            ev.Type,
			Date:            ev.Date,
			Year:            ev.Year,
			Location:        ev.Location,
			Description:     ev.Description,
			PrimaryPersonID: subject.ID,
		}
		if err := e.store.AddEvent(ctx, &event); err != nil {
			logger.Warn("[Cycle] Could not save event", "err", err)
		}
	}
	for _, content := range facts.Notes {
		note := common.Note{
			PersonID: subject.ID,
			Category: common.NoteBiography,
			Content:  content,
		}
		if err := e.store.AddNote(ctx, &note); err != nil {
			logger.Warn("[Cycle] Could not save note", "err", err)
		}
	}

	return e.resolveReferences(ctx, subject, facts)
}

// applyFacts fills the subject's record from extracted facts. Existing
// name fields win over extracted ones; everything else fills gaps.
func applyFacts(subject *common.Person, facts *common.ExtractedFacts, biography string) {
	if subject.MaidenName == "" {
		subject.MaidenName = facts.MaidenName
	}
	if subject.Gender == common.GenderUnknown || subject.Gender == "" {
		if facts.Gender != "" {
			subject.Gender = facts.Gender
		}
	}
	if facts.BirthDate != nil {
		subject.BirthDate = facts.BirthDate
	} else if subject.BirthDate == nil && facts.BirthYear != nil {
		born := common.YearDate(*facts.BirthYear)
		subject.BirthDate = &born
	}
	if subject.BirthPlace == "" {
		subject.BirthPlace = facts.BirthPlace
	}
	if facts.DeathDate != nil {
		subject.DeathDate = facts.DeathDate
	} else if subject.DeathDate == nil && facts.DeathYear != nil {
		died := common.YearDate(*facts.DeathYear)
		subject.DeathDate = &died
	}
	if subject.DeathPlace == "" {
		subject.DeathPlace = facts.DeathPlace
	}
	subject.Biography = sanitizeNarrative(biography)
	subject.Status = common.StatusComplete
}

// sanitizeNarrative strips NUL bytes and invalid UTF-8 from model output
// before it is stored; Postgres text columns reject both.
func sanitizeNarrative(s string) string {
	if s == "" {
		return s
	}
	return strings.ReplaceAll(strings.ToValidUTF8(s, ""), "\x00", "")
}

func (e *Engine) embedBiography(ctx context.Context, personID uuid.UUID, biography string) {
	if e.oracle == nil {
		return
	}
	embedding, err := e.oracle.GenerateEmbedding(ctx, []byte(biography))
	if err != nil {
		logger.Debug("[Cycle] Biography embedding skipped", "err", err)
		return
	}
	if err := e.store.SetBiographyEmbedding(ctx, personID, embedding); err != nil {
		logger.Debug("[Cycle] Could not store embedding", "err", err)
	}
}

// resolveReferences resolves every mentioned relative and wires the
// corresponding edges. Parent edges go through ReconcileParent on the
// subject, child edges through ReconcileParent on the resolved child, and
// siblings are attached to the subject's parents.
func (e *Engine) resolveReferences(ctx context.Context, subject *common.Person, facts *common.ExtractedFacts) error {
	for _, ref := range facts.Parents {
		parent, _, err := e.Resolve(ctx, ref, subject.Generation-1, subject)
		if err != nil {
			return fmt.Errorf("resolving parent %q: %w", ref.Name, err)
		}
		if parent == nil {
			continue
		}
		parentID, err := e.ReconcileParent(ctx, subject.ID, parent.ID)
		if err != nil {
			return err
		}
		if err := e.store.AddChildLink(ctx, parentID, subject.ID); err != nil {
			return err
		}
		e.enqueueIfPending(ctx, parentID)
	}

	for _, ref := range facts.Children {
		child, _, err := e.Resolve(ctx, ref, subject.Generation+1, subject)
		if err != nil {
			return fmt.Errorf("resolving child %q: %w", ref.Name, err)
		}
		if child == nil {
			continue
		}
		parentID, err := e.ReconcileParent(ctx, child.ID, subject.ID)
		if err != nil {
			return err
		}
		if err := e.store.AddChildLink(ctx, parentID, child.ID); err != nil {
			return err
		}
		if parentID != subject.ID {
			// The subject itself was judged a duplicate of the child's
			// existing parent and merged away. Continue under the record
			// that survived.
			merged, err := e.store.GetPerson(ctx, parentID)
			if err != nil {
				return err
			}
			subject = merged
		}
		e.enqueueIfPending(ctx, child.ID)
	}

	for _, ref := range facts.Spouses {
		spouse, _, err := e.Resolve(ctx, ref, subject.Generation, subject)
		if err != nil {
			return fmt.Errorf("resolving spouse %q: %w", ref.Name, err)
		}
		if spouse == nil {
			continue
		}
		if err := e.store.AddSpouseLink(ctx, subject.ID, spouse.ID); err != nil {
			return err
		}
		e.enqueueIfPending(ctx, spouse.ID)
	}

	for _, ref := range facts.Siblings {
		sibling, _, err := e.Resolve(ctx, ref, subject.Generation, subject)
		if err != nil {
			return fmt.Errorf("resolving sibling %q: %w", ref.Name, err)
		}
		if sibling == nil {
			continue
		}
		// Reconciling an earlier sibling can merge one of the subject's
		// parents away, so the parent set is re-read for each sibling.
		parents, err := e.store.GetParents(ctx, subject.ID)
		if err != nil {
			return err
		}
		for _, parent := range parents {
			parentID, err := e.ReconcileParent(ctx, sibling.ID, parent.ID)
			if err != nil {
				return err
			}
			if err := e.store.AddChildLink(ctx, parentID, sibling.ID); err != nil {
				return err
			}
		}
		e.enqueueIfPending(ctx, sibling.ID)
	}

	for _, ref := range facts.OtherRelatives {
		relative, _, err := e.Resolve(ctx, ref, subject.Generation, subject)
		if err != nil {
			return fmt.Errorf("resolving relative %q: %w", ref.Name, err)
		}
		if relative == nil {
			continue
		}
		e.enqueueIfPending(ctx, relative.ID)
	}

	return nil
}

// enqueueIfPending queues a newly discovered pending person at priority 1.
func (e *Engine) enqueueIfPending(ctx context.Context, personID uuid.UUID) {
	p, err := e.store.GetPerson(ctx, personID)
	if err != nil || p.Status != common.StatusPending {
		return
	}
	if err := e.store.Enqueue(ctx, personID, 1); err != nil {
		logger.Warn("[Cycle] Could not enqueue person", "id", personID, "err", err)
		return
	}
	p.Status = common.StatusQueued
	if err := e.store.UpdatePerson(ctx, p); err != nil {
		logger.Warn("[Cycle] Could not mark person queued", "id", personID, "err", err)
	}
}
