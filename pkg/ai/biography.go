package ai

import (
	"context"
	"fmt"
	"strings"

	gUtil "github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/common"
)

// BiographyRequest describes the subject a biography should be written for.
type BiographyRequest struct {
	GivenName  string
	Surname    string
	Gender     common.Gender
	BirthYear  *int
	BirthPlace string
	Generation int
	EraContext string
	WordCount  int

	// Relatives the narrative must stay consistent with.
	Relatives []common.PersonSummary
}

// CallBiographyAI generates a narrative life story for the requested
// subject, constrained by the known facts of their relatives.
func CallBiographyAI(
	ctx context.Context,
	client OracleClient,
	req BiographyRequest,
	maxRetries int,
) (string, error) {
	if client == nil {
		return "", fmt.Errorf("oracle client is nil")
	}

	wordCount := req.WordCount
	if wordCount <= 0 {
		wordCount = 1000
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Write a detailed biography (~%d words) for:\n", wordCount)
	fmt.Fprintf(&prompt, "Name: %s %s\n", req.GivenName, req.Surname)
	if req.Gender != "" && req.Gender != common.GenderUnknown {
		fmt.Fprintf(&prompt, "Gender: %s\n", req.Gender)
	}
	if req.BirthYear != nil {
		fmt.Fprintf(&prompt, "Approximate birth year: %d\n", *req.BirthYear)
	}
	if req.BirthPlace != "" {
		fmt.Fprintf(&prompt, "Birth place: %s\n", req.BirthPlace)
	}
	if req.EraContext != "" {
		fmt.Fprintf(&prompt, "Historical era: %s\n", req.EraContext)
	}
	if req.Generation != 0 {
		direction := "descendant"
		if req.Generation < 0 {
			direction = "ancestor"
		}
		fmt.Fprintf(&prompt, "This person is a %s (generation %d)\n", direction, req.Generation)
	}

	if len(req.Relatives) > 0 {
		prompt.WriteString("\nKnown family members (ensure consistency with these facts):\n")
		for _, relative := range req.Relatives {
			line := "- " + relative.FullName
			if relative.Relationship != "" {
				line += fmt.Sprintf(" (%s)", relative.Relationship)
			}
			if relative.BirthYear != nil {
				line += fmt.Sprintf(", born ~%d", *relative.BirthYear)
			}
			if relative.DeathYear != nil {
				line += fmt.Sprintf(", died ~%d", *relative.DeathYear)
			}
			if relative.BirthPlace != "" {
				line += ", from " + relative.BirthPlace
			}
			prompt.WriteString(line + "\n")
			for i, fact := range relative.KeyFacts {
				if i >= 3 {
					break
				}
				fmt.Fprintf(&prompt, "  - %s\n", fact)
			}
		}
	}

	prompt.WriteString("\nWrite a complete, engaging biography following the guidelines.")

	return gUtil.RetryTransientWithContext(ctx, maxRetries, gUtil.DefaultBackoff, func(ctx context.Context) (string, error) {
		return client.GenerateCompletion(ctx, prompt.String(), WithSystemPrompts(BiographySystemPrompt))
	})
}
