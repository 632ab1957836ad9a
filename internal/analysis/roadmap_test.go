package analysis_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/example/examprep/internal/analysis"
)

func TestGenerateRoadmap_SevenTopicsThreePerWeek(t *testing.T) {
	cfg := analysis.DefaultConfig()
	weak := analysis.Rank(entries(0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3), 0)

	roadmap, err := cfg.GenerateRoadmap(weak, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if roadmap.TotalWeeks != 3 {
		t.Errorf("expected 3 weeks, got %d", roadmap.TotalWeeks)
	}
	if roadmap.TopicsPerWeek != 3 {
		t.Errorf("expected 3 topics per week, got %d", roadmap.TopicsPerWeek)
	}

	wantSizes := []int{3, 3, 1}
	for i, plan := range roadmap.WeeklyPlans {
		if plan.WeekNumber != i+1 {
			t.Errorf("expected week number %d, got %d", i+1, plan.WeekNumber)
		}
		if len(plan.Topics) != wantSizes[i] {
			t.Errorf("week %d: expected %d topics, got %d", i+1, wantSizes[i], len(plan.Topics))
		}
		if plan.EstimatedStudyHours != float64(wantSizes[i])*5 {
			t.Errorf("week %d: expected %v hours, got %v", i+1, float64(wantSizes[i])*5, plan.EstimatedStudyHours)
		}
		if len(plan.Recommendations) != len(plan.Topics) {
			t.Errorf("week %d: recommendations not aligned with topics", i+1)
		}
	}
}

func TestGenerateRoadmap_Completeness(t *testing.T) {
	cfg := analysis.DefaultConfig()
	for n := 0; n <= 10; n++ {
		scores := make([]float64, n)
		for i := range scores {
			scores[i] = 1 - float64(i)/20
		}
		weak := analysis.Rank(entries(scores...), 0)

		for perWeek := 1; perWeek <= 4; perWeek++ {
			roadmap, err := cfg.GenerateRoadmap(weak, perWeek)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantWeeks := (n + perWeek - 1) / perWeek
			if roadmap.TotalWeeks != wantWeeks || len(roadmap.WeeklyPlans) != wantWeeks {
				t.Errorf("n=%d perWeek=%d: expected %d weeks, got %d", n, perWeek, wantWeeks, roadmap.TotalWeeks)
			}

			var flattened []analysis.WeakTopicEntry
			for _, plan := range roadmap.WeeklyPlans {
				flattened = append(flattened, plan.Topics...)
			}
			if len(flattened) != len(weak) {
				t.Fatalf("n=%d perWeek=%d: expected %d topics across weeks, got %d", n, perWeek, len(weak), len(flattened))
			}
			if n > 0 && !reflect.DeepEqual(flattened, weak) {
				t.Errorf("n=%d perWeek=%d: topics lost, duplicated or reordered", n, perWeek)
			}
		}
	}
}

func TestGenerateRoadmap_Empty(t *testing.T) {
	roadmap, err := analysis.DefaultConfig().GenerateRoadmap(nil, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roadmap.TotalWeeks != 0 || len(roadmap.WeeklyPlans) != 0 {
		t.Errorf("expected zero-week roadmap, got %+v", roadmap)
	}
}

func TestGenerateRoadmap_HugeTopicsPerWeek(t *testing.T) {
	cfg := analysis.DefaultConfig()
	weak := analysis.Rank(entries(0.9, 0.8), 0)

	roadmap, err := cfg.GenerateRoadmap(weak, math.MaxInt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if roadmap.TotalWeeks != 1 || len(roadmap.WeeklyPlans) != 1 {
		t.Fatalf("expected a single week, got %d (%d plans)", roadmap.TotalWeeks, len(roadmap.WeeklyPlans))
	}
	if len(roadmap.WeeklyPlans[0].Topics) != 2 {
		t.Errorf("expected both topics in week 1, got %d", len(roadmap.WeeklyPlans[0].Topics))
	}
}

func TestGenerateRoadmap_RejectsNonPositiveTopicsPerWeek(t *testing.T) {
	for _, perWeek := range []int{0, -1} {
		_, err := analysis.DefaultConfig().GenerateRoadmap(entries(0.5), perWeek)
		if !errors.Is(err, analysis.ErrConfiguration) {
			t.Errorf("perWeek=%d: expected ErrConfiguration, got %v", perWeek, err)
		}
	}
}

func TestRecommendation_AccuracyBands(t *testing.T) {
	cfg := analysis.DefaultConfig()
	testCases := []struct {
		accuracy float64
		want     string
	}{
		{0, "review fundamentals, ≥20 practice questions"},
		{0.29, "review fundamentals, ≥20 practice questions"},
		{0.3, "review topic, ≥15 practice questions"},
		{0.59, "review topic, ≥15 practice questions"},
		{0.6, "fill gaps, ≥10 practice questions"},
		{1, "fill gaps, ≥10 practice questions"},
	}

	for _, tc := range testCases {
		got := cfg.Recommendation(analysis.WeakTopicEntry{TopicName: "Limits", AccuracyRate: tc.accuracy})
		if got != "Limits: "+tc.want {
			t.Errorf("accuracy %v: expected %q, got %q", tc.accuracy, "Limits: "+tc.want, got)
		}
	}
}

func TestGenerateRoadmap_FocusAreasDistinct(t *testing.T) {
	weak := []analysis.WeakTopicEntry{
		{Rank: 1, TopicName: "Limits", Subject: "Math"},
		{Rank: 2, TopicName: "Optics", Subject: "Physics"},
		{Rank: 3, TopicName: "Series", Subject: "Math"},
	}
	roadmap, err := analysis.DefaultConfig().GenerateRoadmap(weak, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := roadmap.WeeklyPlans[0].FocusAreas
	if !reflect.DeepEqual(got, []string{"Math", "Physics"}) {
		t.Errorf("expected focus areas [Math Physics], got %v", got)
	}
	if !strings.HasPrefix(roadmap.WeeklyPlans[0].Recommendations[2], "Series: ") {
		t.Errorf("expected recommendation for Series, got %q", roadmap.WeeklyPlans[0].Recommendations[2])
	}
}
