package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aerugo/ancestral-vision/pkg/ai"
	"github.com/aerugo/ancestral-vision/pkg/common"
	"github.com/aerugo/ancestral-vision/pkg/store/memory"
)

// stubOracle serves canned responses keyed by format name and counts
// calls, so engine behavior can be tested without a model.
type stubOracle struct {
	completion  string
	formats     map[string]string
	formatFn    map[string]func(call int) string
	formatCalls map[string]int
}

func newStubOracle() *stubOracle {
	return &stubOracle{
		completion:  "A quiet life, plainly told.",
		formats:     map[string]string{},
		formatFn:    map[string]func(call int) string{},
		formatCalls: map[string]int{},
	}
}

func (s *stubOracle) GenerateCompletion(_ context.Context, _ string, _ ...ai.GenerateOption) (string, error) {
	return s.completion, nil
}

func (s *stubOracle) GenerateCompletionWithFormat(_ context.Context, name, _, _ string, out any, _ ...ai.GenerateOption) error {
	s.formatCalls[name]++
	if fn, ok := s.formatFn[name]; ok {
		return json.Unmarshal([]byte(fn(s.formatCalls[name])), out)
	}
	raw, ok := s.formats[name]
	if !ok {
		return fmt.Errorf("no canned response for format %q", name)
	}
	return json.Unmarshal([]byte(raw), out)
}

func (s *stubOracle) GenerateEmbedding(_ context.Context, _ []byte) ([]float32, error) {
	return nil, fmt.Errorf("embeddings not stubbed")
}

func (s *stubOracle) ResetMetrics()               {}
func (s *stubOracle) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }

func newTestEngine(oracle ai.OracleClient) (*Engine, *memory.FamilyMemStore) {
	st := memory.NewFamilyMemStore()
	e := NewEngine(NewEngineParams{
		Store:  st,
		Oracle: oracle,
		Config: DefaultConfig(),
		Rand:   rand.New(rand.NewSource(1)),
	})
	return e, st
}

func mustCreate(t *testing.T, st *memory.FamilyMemStore, p *common.Person) *common.Person {
	t.Helper()
	if p.Status == "" {
		p.Status = common.StatusComplete
	}
	if p.Gender == "" {
		p.Gender = common.GenderUnknown
	}
	if err := st.CreatePerson(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	return p
}

func yearPtr(y int) *int { return &y }

func bornIn(y int) *common.Person {
	d := common.YearDate(y)
	return &common.Person{BirthDate: &d}
}
