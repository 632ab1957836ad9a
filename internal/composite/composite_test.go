package composite_test

import (
	"errors"
	"math"
	"testing"

	"github.com/example/examprep/internal/composite"
)

func TestScore(t *testing.T) {
	engine := composite.NewEngine(composite.DefaultConfig())

	testCases := []struct {
		name        string
		in          composite.Inputs
		wantOverall float64
		wantTier    composite.Tier
	}{
		{"mid range", composite.Inputs{AverageNet: 30, TaskCompletionRate: 70, DailyStudyHours: 1.5}, 54, composite.TierFair},
		{"capped components", composite.Inputs{AverageNet: 60, TaskCompletionRate: 100, DailyStudyHours: 12}, 100, composite.TierExcellent},
		{"nothing yet", composite.Inputs{}, 0, composite.TierNeedsImprovement},
		{"negative net floors at zero", composite.Inputs{AverageNet: -5, TaskCompletionRate: 50, DailyStudyHours: 2}, 19, composite.TierNeedsImprovement},
		{"rounded to one decimal", composite.Inputs{AverageNet: 10.37, TaskCompletionRate: 33.3, DailyStudyHours: 0.25}, 20.9, composite.TierNeedsImprovement},
		{"good", composite.Inputs{AverageNet: 40, TaskCompletionRate: 80, DailyStudyHours: 3}, 70, composite.TierGood},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := engine.Score(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got.OverallScore-tc.wantOverall) > 1e-9 {
				t.Errorf("expected overall %v, got %v", tc.wantOverall, got.OverallScore)
			}
			if got.ProgressTier != tc.wantTier {
				t.Errorf("expected tier %s, got %s", tc.wantTier, got.ProgressTier)
			}
			if got.OverallScore < 0 || got.OverallScore > 100 {
				t.Errorf("overall %v out of [0,100]", got.OverallScore)
			}
		})
	}
}

func TestScore_RejectsOutOfRangeTaskRate(t *testing.T) {
	engine := composite.NewEngine(composite.DefaultConfig())
	for _, rate := range []float64{-1, 100.5, math.NaN()} {
		if _, err := engine.Score(composite.Inputs{TaskCompletionRate: rate}); !errors.Is(err, composite.ErrInvalidInput) {
			t.Errorf("rate %v: expected ErrInvalidInput, got %v", rate, err)
		}
	}
}

func TestTier_Boundaries(t *testing.T) {
	engine := composite.NewEngine(composite.DefaultConfig())
	testCases := []struct {
		score float64
		want  composite.Tier
	}{
		{100, composite.TierExcellent},
		{80, composite.TierExcellent},
		{79.9, composite.TierGood},
		{60, composite.TierGood},
		{59.9, composite.TierFair},
		{40, composite.TierFair},
		{39.9, composite.TierNeedsImprovement},
		{0, composite.TierNeedsImprovement},
	}
	for _, tc := range testCases {
		if got := engine.Tier(tc.score); got != tc.want {
			t.Errorf("score %v: expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestMilestoneFor(t *testing.T) {
	testCases := []struct {
		tier   composite.Tier
		target float64
	}{
		{composite.TierNeedsImprovement, 40},
		{composite.TierFair, 60},
		{composite.TierGood, 80},
		{composite.TierExcellent, 90},
		{composite.Tier("unknown"), 40},
	}
	for _, tc := range testCases {
		m := composite.MilestoneFor(tc.tier)
		if m.Target != tc.target {
			t.Errorf("tier %s: expected target %v, got %v", tc.tier, tc.target, m.Target)
		}
		if len(m.Actions) != 2 {
			t.Errorf("tier %s: expected 2 actions, got %d", tc.tier, len(m.Actions))
		}
	}
}

func TestMilestoneFor_ReturnsCopy(t *testing.T) {
	m := composite.MilestoneFor(composite.TierGood)
	m.Actions[0] = "changed"

	if composite.MilestoneFor(composite.TierGood).Actions[0] == "changed" {
		t.Error("milestone actions should not be shared")
	}
}
