package questionbank

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func pool(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{ID: fmt.Sprintf("q%d", i), TopicTag: fmt.Sprintf("T%d", i%3)}
	}
	return out
}

func TestSampleSize(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	tests := []struct {
		pool, n, want int
	}{
		{40, 15, 15},
		{15, 15, 15},
		{8, 15, 8},
		{0, 15, 0},
		{10, 1, 1},
		{10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("pool=%d/n=%d", tt.pool, tt.n), func(t *testing.T) {
			got := Sample(pool(tt.pool), tt.n, rng)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestSampleNoDuplicatesAndSubset(t *testing.T) {
	src := pool(40)
	ids := make(map[string]bool)
	for _, q := range src {
		ids[q.ID] = true
	}

	for seed := range uint64(50) {
		got := Sample(src, 15, rand.New(rand.NewPCG(seed, seed+1)))
		seen := make(map[string]bool)
		for _, q := range got {
			if !ids[q.ID] {
				t.Fatalf("seed %d: %s not in pool", seed, q.ID)
			}
			if seen[q.ID] {
				t.Fatalf("seed %d: duplicate %s", seed, q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	src := pool(20)
	Sample(src, 5, nil)
	for i, q := range src {
		if q.ID != fmt.Sprintf("q%d", i) {
			t.Fatalf("input reordered at %d: %s", i, q.ID)
		}
	}
}

func TestSampleCoversPool(t *testing.T) {
	src := pool(10)
	rng := rand.New(rand.NewPCG(7, 7))
	hits := make(map[string]int)
	for range 500 {
		for _, q := range Sample(src, 3, rng) {
			hits[q.ID]++
		}
	}
	if len(hits) != len(src) {
		t.Errorf("only %d of %d questions ever sampled", len(hits), len(src))
	}
}

func TestFilterByUnit(t *testing.T) {
	qs := []Question{
		{ID: "1", TopicTag: "Polity"},
		{ID: "2", TopicTag: "polity"},
		{ID: "3", TopicTag: "Economy"},
	}
	if got := FilterByUnit(qs, "POLITY"); len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
	if got := FilterByUnit(qs, "History"); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestUniqueUnits(t *testing.T) {
	got := UniqueUnits([]Question{{TopicTag: "b"}, {TopicTag: "a"}, {TopicTag: "b"}, {TopicTag: ""}})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("units = %v, want [a b]", got)
	}
}

func TestScopeLabelAndValidate(t *testing.T) {
	tests := []struct {
		scope   Scope
		label   string
		wantErr bool
	}{
		{SubjectScope("polity"), "Polity", false},
		{UnitScope("modern_history", "Revolt of 1857"), "Modern History / Revolt of 1857", false},
		{PaperScope("GS III"), "GS III", false},
		{PaperScope("GS V"), "GS V", true},
		{Scope{Mode: ModeUnit, Subject: "polity"}, "Polity / ", true},
		{Scope{}, "", true},
	}
	for _, tt := range tests {
		if got := tt.scope.Label(); got != tt.label {
			t.Errorf("Label(%+v) = %q, want %q", tt.scope, got, tt.label)
		}
		if err := tt.scope.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) err = %v, wantErr %v", tt.scope, err, tt.wantErr)
		}
	}
}
