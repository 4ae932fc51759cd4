package ai

import (
	"context"
	"fmt"
	"strings"

	gUtil "github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/common"
)

// CallExtractionAI parses a biography into structured genealogical facts.
// The optional expected name and birth year of the subject are passed as
// hints so the extractor does not confuse the subject with a relative.
func CallExtractionAI(
	ctx context.Context,
	client OracleClient,
	biography string,
	expectedName string,
	expectedBirthYear *int,
	maxRetries int,
) (*common.ExtractedFacts, error) {
	if client == nil {
		return nil, fmt.Errorf("oracle client is nil")
	}
	if strings.TrimSpace(biography) == "" {
		return nil, fmt.Errorf("biography is empty")
	}

	var prompt strings.Builder
	prompt.WriteString("Extract all genealogical data from this biography:\n")
	if expectedName != "" || expectedBirthYear != nil {
		prompt.WriteString("\nExpected subject details (for validation):\n")
		if expectedName != "" {
			fmt.Fprintf(&prompt, "- Name: %s\n", expectedName)
		}
		if expectedBirthYear != nil {
			fmt.Fprintf(&prompt, "- Approximate birth year: %d\n", *expectedBirthYear)
		}
	}
	fmt.Fprintf(&prompt, "\n---\n%s\n---\n", biography)
	prompt.WriteString("\nReturn the extracted data as structured JSON following the schema.")

	var payload factsPayload
	err := gUtil.RetryTransientErrWithContext(ctx, maxRetries, gUtil.DefaultBackoff, func(ctx context.Context) error {
		return client.GenerateCompletionWithFormat(
			ctx, "extract_facts", "Extract structured genealogical facts from a biography.",
			prompt.String(), &payload,
			WithSystemPrompts(ExtractionSystemPrompt),
		)
	})
	if err != nil {
		return nil, err
	}
	return payload.toFacts(), nil
}
