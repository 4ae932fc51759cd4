package tree

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/names"

	"github.com/google/uuid"
)

const (
	// matchThreshold is the heuristic score a candidate needs to reach
	// the dedupe oracle.
	matchThreshold = 0.5
	// marriedNameScore is the floor applied when a candidate's recorded
	// spouse carries the reference's surname.
	marriedNameScore = 0.6

	narrowYearWindow = 5
	wideYearWindow   = 10
)

type scoredCandidate struct {
	person common.Person
	score  float64
}

// Resolve finds or creates the canonical person for a mentioned-person
// reference. It returns the resolved person and whether it was newly
// created. References with unusable names or implausible birth years are
// dropped: both return values are nil/false and no error is raised.
func (e *Engine) Resolve(
	ctx context.Context,
	ref common.PersonReference,
	generation int,
	subject *common.Person,
) (*common.Person, bool, error) {
	if strings.TrimSpace(ref.Name) == "" {
		logger.Warn("[Resolve] Dropping reference with empty name",
			"subject", subject.FullName())
		return nil, false, nil
	}
	if ref.BirthYear != nil {
		year := *ref.BirthYear
		if year > time.Now().Year() || year < e.cfg.ReferenceYearFloor {
			logger.Warn("[Resolve] Dropping reference with implausible birth year",
				"name", ref.Name, "year", year)
			return nil, false, nil
		}
	}

	parsed := names.Parse(ref.Name)

	candidates, err := e.findCandidates(ctx, parsed, ref.BirthYear)
	if err != nil {
		return nil, false, err
	}

	scored, err := e.scoreCandidates(ctx, ref, parsed, candidates)
	if err != nil {
		return nil, false, err
	}

	if len(scored) > 0 {
		matched, err := e.confirmDuplicate(ctx, ref, subject, scored)
		if err != nil {
			return nil, false, err
		}
		if matched != nil {
			return matched, false, nil
		}
	}

	created, err := e.createFromReference(ctx, ref, parsed, generation)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

func (e *Engine) findCandidates(
	ctx context.Context,
	parsed names.ParsedName,
	birthYear *int,
) ([]common.Person, error) {
	surnames := []string{parsed.Surname}
	if parsed.MaidenName != "" {
		surnames = append(surnames, parsed.MaidenName)
	}

	narrow, err := e.store.SearchSimilar(ctx, parsed.GivenName, surnames, birthYear, narrowYearWindow)
	if err != nil {
		return nil, err
	}
	// The broader pass catches someone recorded under a spouse's surname.
	wide, err := e.store.SearchByGivenName(ctx, parsed.GivenName, birthYear, wideYearWindow)
	if err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]bool{}
	var out []common.Person
	for _, p := range append(narrow, wide...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func candidateFullName(p common.Person) string {
	if p.MaidenName != "" {
		return fmt.Sprintf("%s %s (née %s)", p.GivenName, p.Surname, p.MaidenName)
	}
	return p.FullName()
}

func (e *Engine) scoreCandidates(
	ctx context.Context,
	ref common.PersonReference,
	parsed names.ParsedName,
	candidates []common.Person,
) ([]scoredCandidate, error) {
	var scored []scoredCandidate
	for _, cand := range candidates {
		var candYear *int
		if y, ok := cand.BirthYear(); ok {
			candYear = &y
		}
		score := names.MatchScore(ref.Name, ref.BirthYear, candidateFullName(cand), candYear)

		if score < matchThreshold && strings.EqualFold(cand.GivenName, parsed.GivenName) {
			bumped, err := e.marriedNameCheck(ctx, cand, parsed.Surname)
			if err != nil {
				return nil, err
			}
			if bumped && score < marriedNameScore {
				score = marriedNameScore
			}
		}

		if score >= matchThreshold {
			scored = append(scored, scoredCandidate{person: cand, score: score})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	return scored, nil
}

// marriedNameCheck reports whether any recorded spouse of the candidate
// carries the reference's surname.
func (e *Engine) marriedNameCheck(ctx context.Context, cand common.Person, surname string) (bool, error) {
	if surname == "" || surname == names.Unknown {
		return false, nil
	}
	spouses, err := e.store.GetSpouses(ctx, cand.ID)
	if err != nil {
		return false, err
	}
	for _, sp := range spouses {
		if strings.EqualFold(sp.Surname, surname) {
			return true, nil
		}
	}
	return false, nil
}

// confirmDuplicate presents the scored candidates to the dedupe oracle.
// A malformed or unknown matched id is treated as "no match".
func (e *Engine) confirmDuplicate(
	ctx context.Context,
	ref common.PersonReference,
	subject *common.Person,
	scored []scoredCandidate,
) (*common.Person, error) {
	if len(scored) > ai.MaxDedupeCandidates {
		scored = scored[:ai.MaxDedupeCandidates]
	}

	summaries := make([]common.PersonSummary, 0, len(scored))
	for _, sc := range scored {
		summary, err := e.buildCandidateSummary(ctx, sc.person)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	newSummary := common.PersonSummary{
		FullName:     ref.Name,
		Gender:       ref.Gender,
		BirthYear:    ref.BirthYear,
		Relationship: ref.Relationship,
	}
	if ref.Context != "" {
		newSummary.KeyFacts = []string{ref.Context}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	decision, err := ai.CallDedupeAI(ctx, e.oracle, newSummary, summaries, e.cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	if !decision.IsDuplicate {
		return nil, nil
	}

	matchedID, err := uuid.Parse(decision.MatchedPersonID)
	if err != nil {
		logger.Warn("[Resolve] Oracle returned malformed match id, treating as no match",
			"id", decision.MatchedPersonID)
		return nil, nil
	}

	for _, sc := range scored {
		if sc.person.ID != matchedID {
			continue
		}
		logger.Info("[Resolve] Reference matched existing person",
			"name", ref.Name, "matched", sc.person.FullName(),
			"confidence", decision.Confidence)
		e.shareContext(ctx, sc.person, subject, ref.Relationship.Inverse())
		return &sc.person, nil
	}

	logger.Warn("[Resolve] Oracle match id is not among candidates, treating as no match",
		"id", decision.MatchedPersonID)
	return nil, nil
}

func (e *Engine) createFromReference(
	ctx context.Context,
	ref common.PersonReference,
	parsed names.ParsedName,
	generation int,
) (*common.Person, error) {
	p := &common.Person{
		Status:     common.StatusPending,
		GivenName:  parsed.GivenName,
		Surname:    parsed.Surname,
		MaidenName: parsed.MaidenName,
		Gender:     ref.Gender,
		Generation: generation,
	}
	if p.Gender == "" {
		p.Gender = common.GenderUnknown
	}
	if ref.BirthYear != nil {
		born := common.YearDate(*ref.BirthYear)
		p.BirthDate = &born
	}
	if err := e.store.CreatePerson(ctx, p); err != nil {
		return nil, err
	}
	logger.Debug("[Resolve] Created pending person",
		"name", p.FullName(), "generation", generation)
	return p, nil
}
