// Package names provides name parsing and heuristic person matching for
// noisy, free-text name mentions. Parsing never fails; malformed input
// degrades to the "Unknown" sentinel.
package names

import (
	"regexp"
	"strings"
)

// Unknown is the sentinel used for missing name components.
const Unknown = "Unknown"

// ParsedName is a raw name string broken into components.
type ParsedName struct {
	GivenName   string
	MiddleNames []string
	Surname     string
	MaidenName  string
	Suffixes    []string
}

// AllSurnames returns the lowercased set of possible surnames, including
// the maiden name when present.
func (n ParsedName) AllSurnames() map[string]bool {
	surnames := map[string]bool{strings.ToLower(n.Surname): true}
	if n.MaidenName != "" {
		surnames[strings.ToLower(n.MaidenName)] = true
	}
	return surnames
}

// allTokens returns the lowercased set of every name token except the
// maiden name.
func (n ParsedName) allTokens() map[string]bool {
	tokens := map[string]bool{
		strings.ToLower(n.GivenName): true,
		strings.ToLower(n.Surname):   true,
	}
	for _, m := range n.MiddleNames {
		tokens[strings.ToLower(m)] = true
	}
	return tokens
}

var maidenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(née\s+([^)]+)\)`),
	regexp.MustCompile(`(?i)\(born\s+([^)]+)\)`),
	regexp.MustCompile(`(?i)\(maiden\s+name:?\s*([^)]+)\)`),
	regexp.MustCompile(`(?i)née\s+(\w+)`),
}

var (
	suffixPattern     = regexp.MustCompile(`(?i)\b(Jr|Sr|III|IV|II|2nd|3rd)\b\.?`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Parse breaks a raw full-name string into components. It extracts a
// maiden-name marker ("née ...", "(born ...)"), strips generational
// suffixes, and splits the remaining tokens into given, middle, and
// surname parts.
func Parse(fullName string) ParsedName {
	name := strings.TrimSpace(fullName)
	maidenName := ""
	var suffixes []string

	for _, pattern := range maidenPatterns {
		if match := pattern.FindStringSubmatch(name); match != nil {
			maidenName = strings.TrimSpace(match[1])
			name = strings.TrimSpace(pattern.ReplaceAllString(name, ""))
			break
		}
	}

	for _, match := range suffixPattern.FindAllStringSubmatch(name, -1) {
		suffixes = append(suffixes, match[1])
	}
	if suffixes != nil {
		name = strings.TrimSpace(suffixPattern.ReplaceAllString(name, ""))
	}

	name = strings.TrimSpace(whitespacePattern.ReplaceAllString(name, " "))
	parts := strings.Fields(name)

	parsed := ParsedName{
		MaidenName: maidenName,
		Suffixes:   suffixes,
	}
	switch len(parts) {
	case 0:
		parsed.GivenName = Unknown
		parsed.Surname = Unknown
	case 1:
		parsed.GivenName = parts[0]
		parsed.Surname = Unknown
	case 2:
		parsed.GivenName = parts[0]
		parsed.Surname = parts[1]
	default:
		parsed.GivenName = parts[0]
		parsed.MiddleNames = parts[1 : len(parts)-1]
		parsed.Surname = parts[len(parts)-1]
	}
	return parsed
}

// MatchScore computes a heuristic similarity score in [0, 1] between two
// (name, approximate birth year) pairs. It is a cheap pre-filter used to
// keep the expensive duplicate-confirmation call to a short candidate
// list, not a final decision.
func MatchScore(newName string, newBirthYear *int, candidateName string, candidateBirthYear *int) float64 {
	nameScore := 0.0
	yearScore := 0.0

	newParsed := Parse(newName)
	candidateParsed := Parse(candidateName)

	// Differing suffix sets mean different people, full stop.
	if len(newParsed.Suffixes) > 0 && len(candidateParsed.Suffixes) > 0 {
		if !sameSet(newParsed.Suffixes, candidateParsed.Suffixes) {
			return 0.0
		}
	}

	if strings.EqualFold(newParsed.GivenName, candidateParsed.GivenName) {
		nameScore += 0.25

		newSurnames := newParsed.AllSurnames()
		candidateSurnames := candidateParsed.AllSurnames()
		if intersects(newSurnames, candidateSurnames) {
			nameScore += 0.25
		} else if candidateParsed.allTokens()[strings.ToLower(newParsed.Surname)] {
			// Catches "Mary Jones" against "Mary Jones Smith".
			nameScore += 0.2
		} else if newParsed.allTokens()[strings.ToLower(candidateParsed.Surname)] {
			nameScore += 0.2
		}

		if len(newParsed.MiddleNames) > 0 && len(candidateParsed.MiddleNames) > 0 {
			newMiddles := lowerSet(newParsed.MiddleNames)
			candidateMiddles := lowerSet(candidateParsed.MiddleNames)
			if intersects(newMiddles, candidateMiddles) {
				nameScore += 0.1
			}
		}
	}

	if newBirthYear != nil && candidateBirthYear != nil {
		diff := *newBirthYear - *candidateBirthYear
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff == 0:
			yearScore = 0.5
		case diff <= 2:
			yearScore = 0.45
		case diff <= 5:
			yearScore = 0.3
		}
	}

	score := nameScore + yearScore
	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// ExtractMentions returns snippets of up to padding characters on either
// side of every whole-word occurrence of firstName in the biography.
func ExtractMentions(firstName, biography string, padding int) []string {
	if firstName == "" || biography == "" {
		return nil
	}

	pattern := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(firstName) + `\b`)

	var snippets []string
	for _, loc := range pattern.FindAllStringIndex(biography, -1) {
		start := loc[0] - padding
		if start < 0 {
			start = 0
		}
		end := loc[1] + padding
		if end > len(biography) {
			end = len(biography)
		}
		snippets = append(snippets, biography[start:end])
	}
	return snippets
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

func intersects(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

func sameSet(a, b []string) bool {
	as, bs := lowerSet(a), lowerSet(b)
	if len(as) != len(bs) {
		return false
	}
	for k := range as {
		if !bs[k] {
			return false
		}
	}
	return true
}
