package tree

import (
	"context"

	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/logger"
	"github.com/aerugo/ancestral-vision/pkg/store"

	"github.com/google/uuid"
)

// NextSubject picks the person to process next. Priority order: the
// highest-priority queue entry, then a weighted random pick over Pending
// persons, then a freshly synthesized seed person. The returned person is
// already marked Processing.
func (e *Engine) NextSubject(ctx context.Context) (uuid.UUID, error) {
	var subjectID uuid.UUID
	err := e.store.WithTx(ctx, func(tx store.FamilyStore) error {
		entry, err := tx.Dequeue(ctx)
		if err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		subjectID = entry.PersonID
		return markProcessing(ctx, tx, entry.PersonID)
	})
	if err != nil {
		return uuid.Nil, err
	}
	if subjectID != uuid.Nil {
		logger.Debug("[Schedule] Dequeued subject", "id", subjectID)
		return subjectID, nil
	}

	pending := common.StatusPending
	candidates, err := e.store.ListPersons(ctx, store.PersonFilter{Status: &pending})
	if err != nil {
		return uuid.Nil, err
	}
	if len(candidates) > 0 {
		picked := e.sampleForestFire(candidates)
		if err := e.store.WithTx(ctx, func(tx store.FamilyStore) error {
			return markProcessing(ctx, tx, picked)
		}); err != nil {
			return uuid.Nil, err
		}
		logger.Debug("[Schedule] Sampled pending subject", "id", picked)
		return picked, nil
	}

	seed, err := e.synthesizeSeed(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	logger.Info("[Schedule] Spawned seed person",
		"name", seed.FullName(), "born", seed.BirthDate.Year())
	return seed.ID, nil
}

func markProcessing(ctx context.Context, tx store.FamilyStore, id uuid.UUID) error {
	p, err := tx.GetPerson(ctx, id)
	if err != nil {
		return err
	}
	p.Status = common.StatusProcessing
	return tx.UpdatePerson(ctx, p)
}

// sampleForestFire draws one candidate with weight 1/(|generation|+1),
// favoring people near generation zero. With the configured probability a
// candidate's weight is perturbed by a uniform multiplier in [0.5, 2.0]
// so the same candidate is not picked every cycle.
func (e *Engine) sampleForestFire(candidates []common.Person) uuid.UUID {
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		gen := c.Generation
		if gen < 0 {
			gen = -gen
		}
		w := 1.0 / float64(gen+1)
		if e.rand.Float64() < e.cfg.FireProbability {
			w *= 0.5 + e.rand.Float64()*1.5
		}
		weights[i] = w
		total += w
	}

	target := e.rand.Float64() * total
	for i, w := range weights {
		target -= w
		if target <= 0 {
			return candidates[i].ID
		}
	}
	return candidates[len(candidates)-1].ID
}

// synthesizeSeed creates a brand-new generation-zero person with a random
// plausible name and birth year. The seed is created Processing since it
// immediately becomes the cycle's subject.
func (e *Engine) synthesizeSeed(ctx context.Context) (*common.Person, error) {
	gender := common.GenderMale
	givenPool := maleGivenNames
	if e.rand.Intn(2) == 0 {
		gender = common.GenderFemale
		givenPool = femaleGivenNames
	}

	span := e.cfg.SeedYearMax - e.cfg.SeedYearMin
	if span <= 0 {
		span = 1
	}
	born := common.YearDate(e.cfg.SeedYearMin + e.rand.Intn(span))

	p := &common.Person{
		Status:     common.StatusProcessing,
		GivenName:  givenPool[e.rand.Intn(len(givenPool))],
		Surname:    seedSurnames[e.rand.Intn(len(seedSurnames))],
		Gender:     gender,
		BirthDate:  &born,
		Generation: 0,
	}
	if err := e.store.CreatePerson(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
