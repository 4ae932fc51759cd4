package ai

import (
	"context"
	"fmt"

	gUtil "github.com/aerugo/ancestral-vision/internal/util"
	"github.com/aerugo/ancestral-vision/pkg/common"
)

// SharedEvent is an event from a new biography that also involved an
// existing person, phrased from the existing person's perspective.
type SharedEvent struct {
	EventType   string `json:"event_type" jsonschema_description:"Type of the shared event."`
	Description string `json:"description" jsonschema_description:"Description of the event from the existing person's perspective."`
	EventYear   int    `json:"event_year" jsonschema_description:"Year of the event if known, 0 otherwise."`
	Location    string `json:"location" jsonschema_description:"Location of the event if known, empty otherwise."`
}

// DiscoveredContext is new information about an existing person found in
// another person's biography.
type DiscoveredContext struct {
	Content      string `json:"content" jsonschema_description:"The new information discovered about the existing person."`
	Significance string `json:"significance" jsonschema_description:"Why this information is significant."`
}

// SharedAnalysis is the result of comparing two related biographies.
type SharedAnalysis struct {
	ShouldUpdate      bool                `json:"should_update" jsonschema_description:"Whether the existing person's record should be updated with new information."`
	SharedEvents      []SharedEvent       `json:"shared_events" jsonschema_description:"Events shared between both people that should be added to the existing person's record."`
	DiscoveredContext []DiscoveredContext `json:"discovered_context" jsonschema_description:"New context about the existing person discovered from the new biography."`
	Reasoning         string              `json:"reasoning" jsonschema_description:"Explanation of the analysis."`
}

// CallSharedEventsAI compares the biography of a newly completed person
// against the biography of a related existing person and reports events
// and context worth copying onto the existing record.
func CallSharedEventsAI(
	ctx context.Context,
	client OracleClient,
	existingName, existingBiography string,
	newName, newBiography string,
	relationship common.RelationshipType,
	maxRetries int,
) (*SharedAnalysis, error) {
	if client == nil {
		return nil, fmt.Errorf("oracle client is nil")
	}
	if existingBiography == "" || newBiography == "" {
		return &SharedAnalysis{Reasoning: "missing biography text"}, nil
	}

	relationDesc := string(relationship)
	if relationship == common.RelOther || relationship == "" {
		relationDesc = "relative"
	}

	prompt := fmt.Sprintf(`Analyze these two biographies to identify shared events and new context.

EXISTING PERSON: %s
This person's biography is already in our records. We want to find new information to add.

%s

---

NEW PERSON: %s
Relationship to %s: %s is the %s of %s

%s

---

TASK:
1. Identify any events mentioned in %s's biography that %s also participated in
2. Find any new information about %s that is not in their existing biography
3. Determine if %s's record should be updated

Remember:
- Rephrase shared events from %s's perspective
- Only include significant, factual information
- Do not duplicate what is already in %s's biography`,
		existingName, existingBiography,
		newName, existingName, newName, relationDesc, existingName,
		newBiography,
		newName, existingName,
		existingName,
		existingName,
		existingName,
		existingName,
	)

	var analysis SharedAnalysis
	err := gUtil.RetryTransientErrWithContext(ctx, maxRetries, gUtil.DefaultBackoff, func(ctx context.Context) error {
		return client.GenerateCompletionWithFormat(
			ctx, "shared_events", "Identify shared events and context between two related biographies.",
			prompt, &analysis,
			WithSystemPrompts(SharedEventsSystemPrompt),
		)
	})
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
