package tree

import (
	"context"
	"strings"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
)

// duplicateParentYearGap is the largest birth-year difference two records
// may have and still be considered the same parent.
const duplicateParentYearGap = 5

// ReconcileParent enforces the two-parents-per-child invariant. Given a
// child and a candidate new parent, it returns the parent id to actually
// link: the candidate itself while the child has fewer than two parents,
// or the surviving record of a merge when the candidate duplicates an
// existing parent. When the child already has two parents and no merge
// condition holds, the candidate is returned unchanged and a consistency
// warning is logged; the caller creates the third link for manual cleanup.
func (e *Engine) ReconcileParent(ctx context.Context, childID, candidateID uuid.UUID) (uuid.UUID, error) {
	parents, err := e.store.GetParents(ctx, childID)
	if err != nil {
		return uuid.Nil, err
	}
	if len(parents) < 2 {
		return candidateID, nil
	}

	candidate, err := e.store.GetPerson(ctx, candidateID)
	if err != nil {
		return uuid.Nil, err
	}

	for _, existing := range parents {
		if existing.ID == candidateID {
			return candidateID, nil
		}
		dup, err := e.isProbableDuplicate(ctx, existing, *candidate)
		if err != nil {
			return uuid.Nil, err
		}
		if !dup {
			continue
		}

		keep, drop := chooseKeep(existing, *candidate)
		logger.Info("[Merge] Duplicate parent detected",
			"child", childID, "keep", keep.FullName(), "drop", drop.FullName())
		if err := e.Merge(ctx, keep.ID, drop.ID); err != nil {
			return uuid.Nil, err
		}
		return keep.ID, nil
	}

	logger.Warn("[Merge] Child already has two parents and no duplicate found, linking a third",
		"child", childID, "candidate", candidate.FullName())
	return candidateID, nil
}

// chooseKeep prefers the record that already has a narrative; when
// neither or both do, the existing record wins.
func chooseKeep(existing, candidate common.Person) (keep, drop common.Person) {
	if existing.Biography == "" && candidate.Biography != "" {
		return candidate, existing
	}
	return existing, candidate
}

// isProbableDuplicate tests whether two parent records plausibly describe
// the same person: matching gender and given name, and a surname match
// reached directly, via either party's maiden name, or via either party's
// recorded spouse's surname. A surname match additionally requires known
// birth years to differ by at most five.
func (e *Engine) isProbableDuplicate(ctx context.Context, a, b common.Person) (bool, error) {
	if a.Gender != b.Gender {
		return false, nil
	}
	if !strings.EqualFold(a.GivenName, b.GivenName) {
		return false, nil
	}

	matched, err := e.surnamesMatch(ctx, a, b)
	if err != nil || !matched {
		return false, err
	}

	ay, aok := a.BirthYear()
	by, bok := b.BirthYear()
	if aok && bok {
		diff := ay - by
		if diff < 0 {
			diff = -diff
		}
		if diff > duplicateParentYearGap {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) surnamesMatch(ctx context.Context, a, b common.Person) (bool, error) {
	if strings.EqualFold(a.Surname, b.Surname) {
		return true, nil
	}
	if a.MaidenName != "" && strings.EqualFold(a.MaidenName, b.Surname) {
		return true, nil
	}
	if b.MaidenName != "" && strings.EqualFold(b.MaidenName, a.Surname) {
		return true, nil
	}

	// A parent recorded once under a maiden name and once under a married
	// name is caught through either party's recorded spouse.
	for _, pair := range [][2]common.Person{{a, b}, {b, a}} {
		spouses, err := e.store.GetSpouses(ctx, pair[0].ID)
		if err != nil {
			return false, err
		}
		for _, sp := range spouses {
			if strings.EqualFold(sp.Surname, pair[1].Surname) {
				return true, nil
			}
		}
	}
	return false, nil
}

// Merge folds the drop record into keep inside a single transaction:
// child links on both sides and spouse links are reassigned, fields
// missing on keep are copied from drop, and drop is deleted. Self-links
// and already existing links are skipped rather than duplicated.
func (e *Engine) Merge(ctx context.Context, keepID, dropID uuid.UUID) error {
	return e.store.WithTx(ctx, func(tx store.FamilyStore) error {
		keep, err := tx.GetPerson(ctx, keepID)
		if err != nil {
			return err
		}
		drop, err := tx.GetPerson(ctx, dropID)
		if err != nil {
			return err
		}

		children, err := tx.GetChildren(ctx, dropID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := tx.DeleteChildLink(ctx, dropID, child.ID); err != nil {
				return err
			}
			if child.ID == keepID {
				continue
			}
			if err := tx.AddChildLink(ctx, keepID, child.ID); err != nil {
				return err
			}
		}

		parents, err := tx.GetParents(ctx, dropID)
		if err != nil {
			return err
		}
		for _, parent := range parents {
			if err := tx.DeleteChildLink(ctx, parent.ID, dropID); err != nil {
				return err
			}
			if parent.ID == keepID {
				continue
			}
			if err := tx.AddChildLink(ctx, parent.ID, keepID); err != nil {
				return err
			}
		}

		spouses, err := tx.GetSpouses(ctx, dropID)
		if err != nil {
			return err
		}
		for _, sp := range spouses {
			if err := tx.DeleteSpouseLink(ctx, dropID, sp.ID); err != nil {
				return err
			}
			if sp.ID == keepID {
				continue
			}
			if err := tx.AddSpouseLink(ctx, keepID, sp.ID); err != nil {
				return err
			}
		}

		copyMissingFields(keep, drop)

		if err := tx.UpdatePerson(ctx, keep); err != nil {
			return err
		}
		return tx.DeletePerson(ctx, dropID)
	})
}

func copyMissingFields(keep, drop *common.Person) {
	if keep.MaidenName == "" {
		keep.MaidenName = drop.MaidenName
	}
	if keep.Nickname == "" {
		keep.Nickname = drop.Nickname
	}
	if keep.Gender == common.GenderUnknown || keep.Gender == "" {
		keep.Gender = drop.Gender
	}
	if keep.BirthDate == nil {
		keep.BirthDate = drop.BirthDate
	}
	if keep.BirthPlace == "" {
		keep.BirthPlace = drop.BirthPlace
	}
	if keep.DeathDate == nil {
		keep.DeathDate = drop.DeathDate
	}
	if keep.DeathPlace == "" {
		keep.DeathPlace = drop.DeathPlace
	}
	if keep.Biography == "" && drop.Biography != "" {
		keep.Biography = drop.Biography
		keep.Status = drop.Status
	}
}
