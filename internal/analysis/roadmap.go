package analysis

import "fmt"

// WeeklyPlan is one week of the study roadmap
type WeeklyPlan struct {
	WeekNumber          int              `json:"week_number"`
	Topics              []WeakTopicEntry `json:"topics"`
	FocusAreas          []string         `json:"focus_areas"`
	EstimatedStudyHours float64          `json:"estimated_study_hours"`
	Recommendations     []string         `json:"recommendations"` // aligned with Topics
}

// Roadmap splits the ranked weak topics into consecutive study weeks
type Roadmap struct {
	TotalWeeks    int          `json:"total_weeks"`
	TopicsPerWeek int          `json:"topics_per_week"`
	WeeklyPlans   []WeeklyPlan `json:"weekly_plans"`
}

// GenerateRoadmap partitions weak topics into weeks of at most perWeek topics,
// keeping rank order. The last week may be shorter.
func (c Config) GenerateRoadmap(weak []WeakTopicEntry, perWeek int) (*Roadmap, error) {
	if perWeek < 1 {
		return nil, fmt.Errorf("%w: topics per week must be at least 1, got %d", ErrConfiguration, perWeek)
	}

	totalWeeks := len(weak) / perWeek
	if len(weak)%perWeek != 0 {
		totalWeeks++
	}
	roadmap := &Roadmap{
		TotalWeeks:    totalWeeks,
		TopicsPerWeek: perWeek,
		WeeklyPlans:   make([]WeeklyPlan, 0, totalWeeks),
	}

	for week := 0; week < totalWeeks; week++ {
		start := week * perWeek
		end := len(weak)
		if end-start > perWeek {
			end = start + perWeek
		}

		topics := make([]WeakTopicEntry, end-start)
		copy(topics, weak[start:end])

		recommendations := make([]string, 0, len(topics))
		for _, t := range topics {
			recommendations = append(recommendations, c.Recommendation(t))
		}

		roadmap.WeeklyPlans = append(roadmap.WeeklyPlans, WeeklyPlan{
			WeekNumber:          week + 1,
			Topics:              topics,
			FocusAreas:          focusAreas(topics),
			EstimatedStudyHours: float64(len(topics)) * c.StudyHoursPerTopic,
			Recommendations:     recommendations,
		})
	}

	return roadmap, nil
}

// Recommendation picks the study advice for a topic from its accuracy band
func (c Config) Recommendation(t WeakTopicEntry) string {
	bands := c.RecommendationBands
	if len(bands) == 0 {
		bands = DefaultConfig().RecommendationBands
	}
	text := bands[len(bands)-1].Text
	for _, b := range bands {
		if t.AccuracyRate < b.Below {
			text = b.Text
			break
		}
	}
	return fmt.Sprintf("%s: %s", t.TopicName, text)
}

func focusAreas(topics []WeakTopicEntry) []string {
	seen := make(map[string]bool, len(topics))
	areas := make([]string, 0, len(topics))
	for _, t := range topics {
		if seen[t.Subject] {
			continue
		}
		seen[t.Subject] = true
		areas = append(areas, t.Subject)
	}
	return areas
}
