package analysis_test

import (
	"errors"
	"math"
	"testing"

	"github.com/example/examprep/internal/analysis"
)

func TestNet(t *testing.T) {
	// 10 correct, 5 wrong, 5 blank
	if got := analysis.Net(10, 5, 20); !almostEqual(got, 8.75) {
		t.Errorf("expected net 8.75, got %v", got)
	}
	if got := analysis.Net(0, 8, 8); !almostEqual(got, -2) {
		t.Errorf("expected net -2, got %v", got)
	}
	cfg := analysis.DefaultConfig()
	if got := cfg.Net(10, 5, 20); !almostEqual(got, 8.75) {
		t.Errorf("expected configured net 8.75, got %v", got)
	}
}

func TestGeneral_Example(t *testing.T) {
	cfg := analysis.DefaultConfig()
	batch := attempts("Algebra", "Math", 10, 5, 5)
	agg, err := analysis.Aggregate(batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g := cfg.General(agg.General)
	if !almostEqual(g.Net, 8.75) {
		t.Errorf("expected net 8.75, got %v", g.Net)
	}
	if !almostEqual(g.AccuracyRate, 0.5) {
		t.Errorf("expected accuracy 0.5, got %v", g.AccuracyRate)
	}
	if !almostEqual(g.WrongRate, 0.25) || !almostEqual(g.BlankRate, 0.25) {
		t.Errorf("expected wrong and blank rates 0.25, got %v and %v", g.WrongRate, g.BlankRate)
	}
	if g.Total != 20 || g.Correct != 10 || g.Wrong != 5 || g.Blank != 5 {
		t.Errorf("unexpected counts: %+v", g.Counts)
	}
}

func TestConfigNet_UsesConfiguredDivisor(t *testing.T) {
	cfg := analysis.DefaultConfig()
	cfg.WrongPenaltyDivisor = 3
	if got := cfg.Net(10, 6, 20); !almostEqual(got, 8) {
		t.Errorf("expected net 8, got %v", got)
	}

	// an unvalidated zero divisor is not replaced by the default
	cfg.WrongPenaltyDivisor = 0
	if got := cfg.Net(10, 6, 20); !math.IsInf(got, -1) {
		t.Errorf("expected -Inf for a zero divisor, got %v", got)
	}
}

func TestWeaknessScore_Example(t *testing.T) {
	cfg := analysis.DefaultConfig()
	got := cfg.WeaknessScore(analysis.Rates{AccuracyRate: 0.2, BlankRate: 0.3, WrongRate: 0.5})
	if !almostEqual(got, 0.64) {
		t.Errorf("expected weakness 0.64, got %v", got)
	}

	// Same numbers from real attempts: 2 correct, 5 wrong, 3 blank
	agg, err := analysis.Aggregate(attempts("Optics", "Physics", 2, 5, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	perf := cfg.ScoreTopics(agg.Topics)
	if !almostEqual(perf[0].WeaknessScore, 0.64) {
		t.Errorf("expected topic weakness 0.64, got %v", perf[0].WeaknessScore)
	}
}

func TestRates_SumToOneOrAllZero(t *testing.T) {
	for correct := 0; correct < 5; correct++ {
		for wrong := 0; wrong < 5; wrong++ {
			for blank := 0; blank < 5; blank++ {
				c := analysis.Counts{Total: correct + wrong + blank, Correct: correct, Wrong: wrong, Blank: blank}
				r := analysis.RatesOf(c)
				if c.Total == 0 {
					if r != (analysis.Rates{}) {
						t.Errorf("expected all-zero rates for an empty tally, got %+v", r)
					}
					continue
				}
				if sum := r.AccuracyRate + r.WrongRate + r.BlankRate; !almostEqual(sum, 1) {
					t.Errorf("rates for %+v sum to %v", c, sum)
				}
			}
		}
	}
}

func TestWeaknessScore_Bounded(t *testing.T) {
	cfg := analysis.DefaultConfig()
	for correct := 0; correct < 6; correct++ {
		for wrong := 0; wrong < 6; wrong++ {
			for blank := 0; blank < 6; blank++ {
				c := analysis.Counts{Total: correct + wrong + blank, Correct: correct, Wrong: wrong, Blank: blank}
				w := cfg.WeaknessScore(analysis.RatesOf(c))
				if w < 0 || w > 1 {
					t.Errorf("weakness %v out of [0,1] for %+v", w, c)
				}
			}
		}
	}
}

func TestScoreTopics_ZeroTotal(t *testing.T) {
	cfg := analysis.DefaultConfig()
	perf := cfg.ScoreTopics([]analysis.TopicStat{{Topic: "Empty", Subject: "Math"}})
	p := perf[0]
	if p.AccuracyRate != 0 || p.WrongRate != 0 || p.BlankRate != 0 {
		t.Errorf("expected zero rates, got %+v", p)
	}
}

func TestSafeRatio(t *testing.T) {
	if got := analysis.SafeRatio(3, 0); got != 0 {
		t.Errorf("expected 0 for zero denominator, got %v", got)
	}
	if got := analysis.SafeRatio(3, 4); !almostEqual(got, 0.75) {
		t.Errorf("expected 0.75, got %v", got)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := analysis.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	testCases := []struct {
		name   string
		mutate func(*analysis.Config)
	}{
		{"weights do not sum to one", func(c *analysis.Config) { c.AccuracyWeight = 0.7 }},
		{"negative weight", func(c *analysis.Config) { c.AccuracyWeight = 1.2; c.ErrorWeight = -0.2 }},
		{"zero topics per week", func(c *analysis.Config) { c.TopicsPerWeek = 0 }},
		{"zero top n", func(c *analysis.Config) { c.TopN = 0 }},
		{"zero penalty divisor", func(c *analysis.Config) { c.WrongPenaltyDivisor = 0 }},
		{"no recommendation bands", func(c *analysis.Config) { c.RecommendationBands = nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := analysis.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, analysis.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
