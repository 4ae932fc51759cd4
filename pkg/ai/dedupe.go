package ai

import (
	"context"
	"fmt"
	"strings"

	gUtil "github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/common"
)

// MaxDedupeCandidates bounds the candidate list presented per decision.
const MaxDedupeCandidates = 5

// snippetTokenBudget caps each biography excerpt in the prompt.
const snippetTokenBudget = 120

// DedupeDecision is the oracle's verdict on whether a newly mentioned
// person matches an existing record.
type DedupeDecision struct {
	IsDuplicate     bool    `json:"is_duplicate" jsonschema_description:"Whether the new person is a duplicate of an existing candidate."`
	MatchedPersonID string  `json:"matched_person_id" jsonschema_description:"ID of the matched candidate if a duplicate was found, empty otherwise."`
	Confidence      float64 `json:"confidence" jsonschema_description:"Confidence in the decision between 0 and 1."`
	Reasoning       string  `json:"reasoning" jsonschema_description:"Explanation of the deduplication decision."`
}

// CallDedupeAI asks the oracle whether the new person matches any of the
// scored candidates. Candidates should arrive enriched with relations and
// biography snippets; the heuristic scorer keeps the list short.
func CallDedupeAI(
	ctx context.Context,
	client OracleClient,
	newPerson common.PersonSummary,
	candidates []common.PersonSummary,
	maxRetries int,
) (*DedupeDecision, error) {
	if client == nil {
		return nil, fmt.Errorf("oracle client is nil")
	}
	if len(candidates) == 0 {
		return &DedupeDecision{
			IsDuplicate: false,
			Confidence:  1.0,
			Reasoning:   "No candidates to compare against",
		}, nil
	}
	if len(candidates) > MaxDedupeCandidates {
		candidates = candidates[:MaxDedupeCandidates]
	}

	prompt := buildDedupePrompt(newPerson, candidates)

	var decision DedupeDecision
	err := gUtil.RetryTransientErrWithContext(ctx, maxRetries, gUtil.DefaultBackoff, func(ctx context.Context) error {
		return client.GenerateCompletionWithFormat(
			ctx, "confirm_duplicate", "Decide whether a mentioned person matches an existing record.",
			prompt, &decision,
			WithSystemPrompts(DedupeSystemPrompt),
		)
	})
	if err != nil {
		return nil, err
	}
	return &decision, nil
}

func buildDedupePrompt(newPerson common.PersonSummary, candidates []common.PersonSummary) string {
	var b strings.Builder
	b.WriteString("Determine if this newly mentioned person matches any existing records.\n\n")
	b.WriteString("NEW PERSON:\n")
	fmt.Fprintf(&b, "  Name: %s\n", newPerson.FullName)
	fmt.Fprintf(&b, "  Gender: %s\n", newPerson.Gender)
	if newPerson.BirthYear != nil {
		fmt.Fprintf(&b, "  Birth year: ~%d\n", *newPerson.BirthYear)
	}
	if newPerson.DeathYear != nil {
		fmt.Fprintf(&b, "  Death year: ~%d\n", *newPerson.DeathYear)
	}
	if newPerson.BirthPlace != "" {
		fmt.Fprintf(&b, "  Birth place: %s\n", newPerson.BirthPlace)
	}
	fmt.Fprintf(&b, "  Generation: %d\n", newPerson.Generation)
	if newPerson.Relationship != "" {
		fmt.Fprintf(&b, "  Relationship context: %s\n", newPerson.Relationship)
	}
	writeRelations(&b, newPerson, "  ")
	writeKeyFacts(&b, newPerson.KeyFacts, "  ")

	b.WriteString("\nEXISTING CANDIDATES:\n")
	for i, candidate := range candidates {
		fmt.Fprintf(&b, "\n  Candidate %d (ID: %s):\n", i+1, candidate.ID)
		fmt.Fprintf(&b, "    Name: %s\n", candidate.FullName)
		fmt.Fprintf(&b, "    Gender: %s\n", candidate.Gender)
		if candidate.BirthYear != nil {
			fmt.Fprintf(&b, "    Birth year: %d\n", *candidate.BirthYear)
		}
		if candidate.DeathYear != nil {
			fmt.Fprintf(&b, "    Death year: %d\n", *candidate.DeathYear)
		}
		if candidate.BirthPlace != "" {
			fmt.Fprintf(&b, "    Birth place: %s\n", candidate.BirthPlace)
		}
		fmt.Fprintf(&b, "    Generation: %d\n", candidate.Generation)
		writeRelations(&b, candidate, "    ")
		writeKeyFacts(&b, candidate.KeyFacts, "    ")

		if len(candidate.BiographySnippets) > 0 {
			b.WriteString("    Biography mentions of this name from relatives:\n")
			for _, snippet := range candidate.BiographySnippets {
				fmt.Fprintf(&b, "      %q\n", TruncateTokens(snippet, snippetTokenBudget))
			}
		}
	}

	b.WriteString("\nIs the new person a duplicate of any candidate? If so, which one?")
	return b.String()
}

func writeRelations(b *strings.Builder, person common.PersonSummary, indent string) {
	writeNameList(b, indent, "Parents", person.Parents)
	writeNameList(b, indent, "Children", person.Children)
	writeNameList(b, indent, "Spouses", person.Spouses)
	writeNameList(b, indent, "Siblings", person.Siblings)
	writeNameList(b, indent, "Grandparents", person.Grandparents)
	writeNameList(b, indent, "Grandchildren", person.Grandchildren)
}

func writeNameList(b *strings.Builder, indent, label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "%s%s: %s\n", indent, label, strings.Join(names, ", "))
}

func writeKeyFacts(b *strings.Builder, facts []string, indent string) {
	if len(facts) == 0 {
		return
	}
	fmt.Fprintf(b, "%sKey facts:\n", indent)
	for _, fact := range facts {
		fmt.Fprintf(b, "%s  - %s\n", indent, fact)
	}
}
