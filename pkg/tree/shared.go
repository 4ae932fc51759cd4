package tree

import (
	"context"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"

	"github.com/google/uuid"
)

// shareContext runs the cross-biography analysis after a confirmed
// duplicate match: events the new subject's narrative reveals about the
// existing person are persisted on both records, as are discovered
// context notes. Failures are logged and swallowed since this step is
// enrichment, not part of resolution.
func (e *Engine) shareContext(
	ctx context.Context,
	existing common.Person,
	subject *common.Person,
	relationship common.RelationshipType,
) {
	if existing.Biography == "" || subject.Biography == "" {
		return
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return
	}
	analysis, err := ai.CallSharedEventsAI(
		ctx, e.oracle,
		existing.FullName(), existing.Biography,
		subject.FullName(), subject.Biography,
		relationship, e.cfg.MaxRetries,
	)
	if err != nil {
		logger.Warn("[SharedEvents] Analysis failed",
			"existing", existing.FullName(), "err", err)
		return
	}
	if !analysis.ShouldUpdate {
		return
	}

	known, err := e.store.GetEvents(ctx, existing.ID)
	if err != nil {
		logger.Warn("[SharedEvents] Could not load existing events", "err", err)
		return
	}

	added := 0
	for _, se := range analysis.SharedEvents {
		event := common.Event{
			Type:            common.EventType(se.EventType),
			Location:        se.Location,
			Description:     se.Description,
			PrimaryPersonID: existing.ID,
			OtherPersonIDs:  []uuid.UUID{subject.ID},
		}
		if se.EventYear > 0 {
			year := se.EventYear
			event.Year = &year
		}
		if isKnownEvent(known, event) {
			continue
		}
		if err := e.store.AddEvent(ctx, &event); err != nil {
			logger.Warn("[SharedEvents] Could not save event", "err", err)
			continue
		}
		added++
	}

	for _, dc := range analysis.DiscoveredContext {
		note := common.Note{
			PersonID:            existing.ID,
			Category:            common.NoteCrossBiography,
			Content:             dc.Content,
			Source:              subject.FullName(),
			ReferencedPersonIDs: []uuid.UUID{subject.ID},
		}
		if err := e.store.AddNote(ctx, &note); err != nil {
			logger.Warn("[SharedEvents] Could not save note", "err", err)
		}
	}

	logger.Info("[SharedEvents] Updated existing person",
		"existing", existing.FullName(), "events", added,
		"notes", len(analysis.DiscoveredContext))
}

// isKnownEvent deduplicates shared events by type and year against the
// person's already recorded events.
func isKnownEvent(known []common.Event, candidate common.Event) bool {
	cy, cok := candidate.YearOf()
	for i := range known {
		k := &known[i]
		if k.Type != candidate.Type {
			continue
		}
		ky, kok := k.YearOf()
		if cok != kok {
			continue
		}
		if !cok || ky == cy {
			return true
		}
	}
	return false
}
