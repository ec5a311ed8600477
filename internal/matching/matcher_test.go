package matching

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ezgiver/JobFinder/internal/jobs"
	"github.com/ezgiver/JobFinder/internal/sponsors"
)

func testRegister(t *testing.T, names ...string) *sponsors.Register {
	t.Helper()

	var b strings.Builder
	b.WriteString("Organisation Name\n")
	for _, name := range names {
		b.WriteString(name + "\n")
	}

	reg, err := sponsors.Load(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("building test register: %v", err)
	}
	return reg
}

func TestMatchExactName(t *testing.T) {
	reg := testRegister(t, "Deloitte LLP")

	result := New().Match("Deloitte LLP", reg)

	if !result.Matched {
		t.Fatalf("expected exact name to match")
	}
	if result.Confidence != 100 {
		t.Fatalf("expected confidence 100, got %d", result.Confidence)
	}
	if result.Canonical != "deloitte llp" {
		t.Fatalf("unexpected canonical name: %q", result.Canonical)
	}
}

func TestMatchCaseAndWhitespaceInsensitive(t *testing.T) {
	reg := testRegister(t, "google uk limited")

	result := New().Match("  GOOGLE UK LIMITED  ", reg)

	if !result.Matched || result.Confidence != 100 {
		t.Fatalf("expected full confidence match, got %+v", result)
	}
}

func TestMatchUnrelatedNameRejected(t *testing.T) {
	reg := testRegister(t, "barclays bank uk plc")

	result := New().Match("Tesco PLC", reg)

	if result.Matched {
		t.Fatalf("unrelated company must not match, got %+v", result)
	}
}

func TestMatchThresholdBoundary(t *testing.T) {
	reg := testRegister(t, "sponsor")

	cases := []struct {
		name    string
		score   int
		matched bool
	}{
		{name: "at threshold", score: 85, matched: true},
		{name: "just below threshold", score: 84, matched: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := New()
			m.similarity = func(_, _ string) int { return tc.score }

			result := m.Match("anything", reg)

			if result.Matched != tc.matched {
				t.Fatalf("similarity %d: expected matched=%v, got %+v", tc.score, tc.matched, result)
			}
			if result.Confidence != tc.score {
				t.Fatalf("confidence must be reported below threshold too, got %d", result.Confidence)
			}
		})
	}
}

func TestMatchEmptyName(t *testing.T) {
	reg := testRegister(t, "deloitte llp")

	for _, name := range []string{"", "   ", "\t\n"} {
		result := New().Match(name, reg)
		if result.Matched || result.Confidence != 0 {
			t.Fatalf("empty name %q must report matched=false confidence=0, got %+v", name, result)
		}
	}
}

func TestMatchBelowThresholdHasNoCanonicalName(t *testing.T) {
	reg := testRegister(t, "barclays bank uk plc")

	result := New().Match("Tesco PLC", reg)

	if result.Canonical != "" {
		t.Fatalf("canonical name must be absent below threshold, got %q", result.Canonical)
	}
}

func TestVerifierDedupsByNormalizedName(t *testing.T) {
	reg := testRegister(t, "deloitte llp", "unknown holdings")

	m := New()
	calls := 0
	m.similarity = func(a, b string) int {
		calls++
		if a == b {
			return 100
		}
		return 10
	}

	v := NewVerifier(m, reg, zap.NewNop())

	table := &jobs.Jobs{}
	for i := 0; i < 50; i++ {
		table.Items = append(table.Items, &jobs.Job{Company: "Deloitte LLP", Title: "Engineer"})
	}
	// Same company, different raw spelling: shares the cache entry.
	table.Items = append(table.Items, &jobs.Job{Company: "  deloitte llp ", Title: "Engineer"})
	table.Items = append(table.Items, &jobs.Job{Company: "Unknown Corp", Title: "Engineer"})

	results := v.VerifyAll(table)

	if len(results) != table.Len() {
		t.Fatalf("expected %d results, got %d", table.Len(), len(results))
	}

	// Two distinct normalized names, two entries in the register each.
	if calls != 2*reg.Len() {
		t.Fatalf("expected %d similarity evaluations, got %d", 2*reg.Len(), calls)
	}

	if v.Lookups() != 2 {
		t.Fatalf("expected 2 distinct lookups, got %d", v.Lookups())
	}

	for i := 0; i < 51; i++ {
		if results[i] != results[0] {
			t.Fatalf("rows sharing a company must receive identical results, row %d differs: %+v", i, results[i])
		}
	}

	if results[51].Matched {
		t.Fatalf("unknown company must not match")
	}
}

func TestVerifyEmptyNameNotCached(t *testing.T) {
	reg := testRegister(t, "deloitte llp")
	v := NewVerifier(New(), reg, zap.NewNop())

	result := v.Verify("   ")

	if result.Matched || result.Confidence != 0 {
		t.Fatalf("expected no match for empty name, got %+v", result)
	}
	if v.Lookups() != 0 {
		t.Fatalf("empty names must not occupy cache slots")
	}
}

func TestVerifierOrderIndependent(t *testing.T) {
	reg := testRegister(t, "deloitte llp", "google uk limited")

	first := NewVerifier(New(), reg, zap.NewNop())
	a1 := first.Verify("Deloitte")
	b1 := first.Verify("Google UK Limited")

	second := NewVerifier(New(), reg, zap.NewNop())
	b2 := second.Verify("Google UK Limited")
	a2 := second.Verify("Deloitte")

	if a1 != a2 || b1 != b2 {
		t.Fatalf("results must not depend on lookup order: %+v vs %+v, %+v vs %+v", a1, a2, b1, b2)
	}
}
