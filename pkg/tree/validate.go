package tree

import (
	"context"
	"fmt"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"
)

// spouseAgeGapWarning is the birth-year gap between spouses above which a
// warning is raised.
const spouseAgeGapWarning = 30

// Validate checks the chronological and biological plausibility of
// extracted facts. Errors block persistence and drive the correction
// loop; warnings are informational only.
func (e *Engine) Validate(facts *common.ExtractedFacts) *common.ValidationResult {
	result := &common.ValidationResult{}

	birthYear, hasBirth := facts.SubjectBirthYear()
	deathYear, hasDeath := facts.SubjectDeathYear()

	if hasBirth && hasDeath {
		if deathYear < birthYear {
			result.AddError(fmt.Sprintf(
				"death year %d is before birth year %d", deathYear, birthYear))
		} else {
			lifespan := deathYear - birthYear
			if lifespan > e.cfg.MaxLifespan {
				result.AddWarning(fmt.Sprintf(
					"implausible lifespan of %d years", lifespan))
			}
			if lifespan < 1 {
				result.AddWarning(fmt.Sprintf(
					"lifespan of less than a year (born %d, died %d)", birthYear, deathYear))
			}
		}
	}

	for _, parent := range facts.Parents {
		if parent.BirthYear == nil || !hasBirth {
			continue
		}
		age := birthYear - *parent.BirthYear
		if age < e.cfg.MinParentAge {
			result.AddError(fmt.Sprintf(
				"parent %s was too young at subject's birth (age %d)", parent.Name, age))
		} else if age > e.cfg.MaxParentAge+20 {
			result.AddWarning(fmt.Sprintf(
				"parent %s was unusually old at subject's birth (age %d)", parent.Name, age))
		}
	}

	for _, child := range facts.Children {
		if child.BirthYear == nil {
			continue
		}
		if hasBirth {
			age := *child.BirthYear - birthYear
			if age < e.cfg.MinParentAge {
				result.AddError(fmt.Sprintf(
					"subject was too young at birth of child %s (age %d)", child.Name, age))
			} else if age > e.cfg.MaxParentAge+20 {
				result.AddWarning(fmt.Sprintf(
					"subject was unusually old at birth of child %s (age %d)", child.Name, age))
			}
		}
		// One year of slack allows posthumous birth.
		if hasDeath && *child.BirthYear > deathYear+1 {
			result.AddError(fmt.Sprintf(
				"child %s born in %d after subject's death in %d",
				child.Name, *child.BirthYear, deathYear))
		}
	}

	for _, spouse := range facts.Spouses {
		if spouse.BirthYear == nil || !hasBirth {
			continue
		}
		gap := birthYear - *spouse.BirthYear
		if gap < 0 {
			gap = -gap
		}
		if gap > spouseAgeGapWarning {
			result.AddWarning(fmt.Sprintf(
				"spouse %s has a %d year age gap with subject", spouse.Name, gap))
		}
	}

	for _, event := range facts.Events {
		year, ok := event.YearOf()
		if !ok {
			continue
		}
		if hasBirth && year < birthYear {
			result.AddError(fmt.Sprintf(
				"event %q in %d predates subject's birth in %d",
				event.Description, year, birthYear))
		}
		if hasDeath && year > deathYear {
			result.AddError(fmt.Sprintf(
				"event %q in %d is after subject's death in %d",
				event.Description, year, deathYear))
		}
	}

	return result
}

// ValidateAndCorrect validates the facts and, while errors remain, asks
// the correction oracle to fix them, up to the configured attempt count.
// When attempts are exhausted the last corrected facts are returned with
// the final invalid result; the caller proceeds best-effort.
func (e *Engine) ValidateAndCorrect(
	ctx context.Context,
	biography string,
	facts *common.ExtractedFacts,
) (*common.ExtractedFacts, *common.ValidationResult, error) {
	result := e.Validate(facts)
	if result.IsValid() {
		return facts, result, nil
	}

	for attempt := 1; attempt <= e.cfg.MaxCorrectionAttempts; attempt++ {
		logger.Info("[Validate] Requesting correction",
			"attempt", attempt, "errors", len(result.Errors))

		if err := e.limiter.Wait(ctx); err != nil {
			return facts, result, err
		}
		corrected, err := ai.CallCorrectionAI(ctx, e.oracle, biography, facts, result.Errors, e.cfg.MaxRetries)
		if err != nil {
			return facts, result, err
		}

		facts = corrected
		result = e.Validate(facts)
		if result.IsValid() {
			break
		}
	}

	for _, msg := range result.Errors {
		logger.Warn("[Validate] Unresolved error", "error", msg)
	}
	for _, msg := range result.Warnings {
		logger.Warn("[Validate] Warning", "warning", msg)
	}
	return facts, result, nil
}
