package ai

import (
	"context"
	"fmt"
	"strings"

	gUtil "github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/common"
)

// CallCorrectionAI asks the oracle to fix validation errors in extracted
// facts, using the original biography as the source of truth.
func CallCorrectionAI(
	ctx context.Context,
	client OracleClient,
	biography string,
	facts *common.ExtractedFacts,
	validationErrors []string,
	maxRetries int,
) (*common.ExtractedFacts, error) {
	if client == nil {
		return nil, fmt.Errorf("oracle client is nil")
	}
	if facts == nil {
		return nil, fmt.Errorf("facts are nil")
	}
	if len(validationErrors) == 0 {
		return facts, nil
	}

	var b strings.Builder
	b.WriteString("Fix the validation errors in this extracted genealogical data.\n\n")
	fmt.Fprintf(&b, "ORIGINAL BIOGRAPHY:\n---\n%s\n---\n\n", biography)
	fmt.Fprintf(&b, "CURRENT EXTRACTED DATA:\n%s\n\n", formatFacts(facts))
	b.WriteString("VALIDATION ERRORS TO FIX:\n")
	for _, e := range validationErrors {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	b.WriteString("\nAnalyze the biography carefully and return corrected data that resolves all validation errors.\n")
	b.WriteString("The corrected data must be internally consistent (all events within the birth-death range, etc.).")

	var payload factsPayload
	err := gUtil.RetryTransientErrWithContext(ctx, maxRetries, gUtil.DefaultBackoff, func(ctx context.Context) error {
		return client.GenerateCompletionWithFormat(
			ctx, "correct_facts", "Correct validation errors in extracted genealogical facts.",
			b.String(), &payload,
			WithSystemPrompts(CorrectionSystemPrompt),
		)
	})
	if err != nil {
		return nil, err
	}
	return payload.toFacts(), nil
}

func formatFacts(facts *common.ExtractedFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s %s\n", facts.GivenName, facts.Surname)
	fmt.Fprintf(&b, "Gender: %s\n", facts.Gender)

	if facts.BirthDate != nil {
		fmt.Fprintf(&b, "Birth: %s in %s\n", facts.BirthDate.Format("2006-01-02"), orUnknown(facts.BirthPlace))
	} else if facts.BirthYear != nil {
		fmt.Fprintf(&b, "Birth: %d in %s\n", *facts.BirthYear, orUnknown(facts.BirthPlace))
	}
	if facts.DeathDate != nil {
		fmt.Fprintf(&b, "Death: %s in %s\n", facts.DeathDate.Format("2006-01-02"), orUnknown(facts.DeathPlace))
	} else if facts.DeathYear != nil {
		fmt.Fprintf(&b, "Death: %d in %s\n", *facts.DeathYear, orUnknown(facts.DeathPlace))
	}

	if len(facts.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range facts.Events {
			when := "unknown date"
			if year, ok := event.YearOf(); ok {
				when = fmt.Sprintf("%d", year)
			}
			fmt.Fprintf(&b, "  - %s: %s - %s\n", event.Type, when, event.Description)
		}
	}

	writeReferenceList(&b, "Parents", facts.Parents)
	writeReferenceList(&b, "Children", facts.Children)
	writeReferenceList(&b, "Spouses", facts.Spouses)
	writeReferenceList(&b, "Siblings", facts.Siblings)

	return b.String()
}

func writeReferenceList(b *strings.Builder, label string, refs []common.PersonReference) {
	if len(refs) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", label)
	for _, ref := range refs {
		born := "unknown"
		if ref.BirthYear != nil {
			born = fmt.Sprintf("%d", *ref.BirthYear)
		}
		fmt.Fprintf(b, "  - %s (b. %s)\n", ref.Name, born)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown location"
	}
	return s
}
