package tree

import (
	"context"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/names"

	"github.com/google/uuid"
)

const (
	snippetPadding       = 300
	maxBiographySnippets = 3
	maxKeyFacts          = 3
)

// GatherRelatives walks the graph around the subject and returns one
// summary per relative, labeled with the relationship as seen from the
// subject. The walk is an explicit breadth-first traversal over the
// parent, child, and spouse adjacencies with a shared visited set, and
// covers parents, children, spouses, siblings, grandparents,
// grandchildren, aunts, uncles, cousins, nieces, and nephews.
func (e *Engine) GatherRelatives(ctx context.Context, subjectID uuid.UUID) ([]common.PersonSummary, error) {
	visited := map[uuid.UUID]bool{subjectID: true}
	var out []common.PersonSummary

	collect := func(people []common.Person, rel func(p common.Person) common.RelationshipType) {
		for _, p := range people {
			if visited[p.ID] {
				continue
			}
			visited[p.ID] = true
			out = append(out, e.summarize(ctx, p, rel(p)))
		}
	}
	fixed := func(rel common.RelationshipType) func(common.Person) common.RelationshipType {
		return func(common.Person) common.RelationshipType { return rel }
	}

	parents, err := e.store.GetParents(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	children, err := e.store.GetChildren(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	spouses, err := e.store.GetSpouses(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	// The raw adjacency lists overlap (a parent's children include the
	// subject, a grandparent's children include the parents); the visited
	// set resolves each person to the closest relationship because closer
	// degrees are collected first.
	var siblings, grandparents, auntsUncles []common.Person
	for _, parent := range parents {
		ps, err := e.store.GetChildren(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		siblings = append(siblings, ps...)

		gps, err := e.store.GetParents(ctx, parent.ID)
		if err != nil {
			return nil, err
		}
		grandparents = append(grandparents, gps...)
	}
	for _, gp := range grandparents {
		aus, err := e.store.GetChildren(ctx, gp.ID)
		if err != nil {
			return nil, err
		}
		auntsUncles = append(auntsUncles, aus...)
	}

	var grandchildren []common.Person
	for _, child := range children {
		gcs, err := e.store.GetChildren(ctx, child.ID)
		if err != nil {
			return nil, err
		}
		grandchildren = append(grandchildren, gcs...)
	}

	collect(parents, fixed(common.RelParent))
	collect(children, fixed(common.RelChild))
	collect(spouses, fixed(common.RelSpouse))
	collect(siblings, fixed(common.RelSibling))
	collect(grandparents, fixed(common.RelGrandparent))
	collect(grandchildren, fixed(common.RelGrandchild))
	collect(auntsUncles, func(p common.Person) common.RelationshipType {
		if p.Gender == common.GenderFemale {
			return common.RelAunt
		}
		return common.RelUncle
	})

	// Second degree through already collected relatives.
	var cousins []common.Person
	for _, au := range auntsUncles {
		cs, err := e.store.GetChildren(ctx, au.ID)
		if err != nil {
			return nil, err
		}
		cousins = append(cousins, cs...)
	}
	var niecesNephews []common.Person
	for _, sib := range siblings {
		if sib.ID == subjectID {
			continue
		}
		ns, err := e.store.GetChildren(ctx, sib.ID)
		if err != nil {
			return nil, err
		}
		niecesNephews = append(niecesNephews, ns...)
	}

	collect(cousins, fixed(common.RelCousin))
	collect(niecesNephews, func(p common.Person) common.RelationshipType {
		if p.Gender == common.GenderFemale {
			return common.RelNiece
		}
		return common.RelNephew
	})

	return out, nil
}

func (e *Engine) summarize(ctx context.Context, p common.Person, rel common.RelationshipType) common.PersonSummary {
	s := common.PersonSummary{
		ID:           p.ID,
		FullName:     p.FullName(),
		Gender:       p.Gender,
		BirthPlace:   p.BirthPlace,
		Generation:   p.Generation,
		Relationship: rel,
	}
	if y, ok := p.BirthYear(); ok {
		s.BirthYear = &y
	}
	if y, ok := p.DeathYear(); ok {
		s.DeathYear = &y
	}
	notes, err := e.store.GetNotes(ctx, p.ID)
	if err == nil {
		for i, n := range notes {
			if i >= maxKeyFacts {
				break
			}
			s.KeyFacts = append(s.KeyFacts, n.Content)
		}
	}
	return s
}

// buildCandidateSummary enriches a dedupe candidate with its first and
// second degree relatives by name and with excerpts from relatives'
// biographies that mention the candidate's given name.
func (e *Engine) buildCandidateSummary(ctx context.Context, p common.Person) (common.PersonSummary, error) {
	s := e.summarize(ctx, p, "")

	parents, err := e.store.GetParents(ctx, p.ID)
	if err != nil {
		return s, err
	}
	children, err := e.store.GetChildren(ctx, p.ID)
	if err != nil {
		return s, err
	}
	spouses, err := e.store.GetSpouses(ctx, p.ID)
	if err != nil {
		return s, err
	}

	seen := map[uuid.UUID]bool{p.ID: true}
	appendNames := func(dst *[]string, people []common.Person) []common.Person {
		var fresh []common.Person
		for _, r := range people {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			*dst = append(*dst, r.FullName())
			fresh = append(fresh, r)
		}
		return fresh
	}

	appendNames(&s.Parents, parents)
	appendNames(&s.Children, children)
	appendNames(&s.Spouses, spouses)

	var siblings, grandparents []common.Person
	for _, parent := range parents {
		sibs, err := e.store.GetChildren(ctx, parent.ID)
		if err != nil {
			return s, err
		}
		siblings = append(siblings, sibs...)

		gps, err := e.store.GetParents(ctx, parent.ID)
		if err != nil {
			return s, err
		}
		grandparents = append(grandparents, gps...)
	}
	var grandchildren []common.Person
	for _, child := range children {
		gcs, err := e.store.GetChildren(ctx, child.ID)
		if err != nil {
			return s, err
		}
		grandchildren = append(grandchildren, gcs...)
	}

	appendNames(&s.Siblings, siblings)
	appendNames(&s.Grandparents, grandparents)
	appendNames(&s.Grandchildren, grandchildren)

	relatives := make([]common.Person, 0, len(parents)+len(children)+len(spouses)+len(siblings))
	relatives = append(relatives, parents...)
	relatives = append(relatives, children...)
	relatives = append(relatives, spouses...)
	relatives = append(relatives, siblings...)

	snippetSeen := map[uuid.UUID]bool{}
	for _, r := range relatives {
		if len(s.BiographySnippets) >= maxBiographySnippets {
			break
		}
		if snippetSeen[r.ID] || r.Biography == "" {
			continue
		}
		snippetSeen[r.ID] = true
		mentions := names.ExtractMentions(p.GivenName, r.Biography, snippetPadding)
		if len(mentions) > 0 {
			s.BiographySnippets = append(s.BiographySnippets, mentions[0])
		}
	}

	return s, nil
}
