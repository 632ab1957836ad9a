package analysis

import "sort"

// WeakTopicEntry is one row of the weak-topic ranking
type WeakTopicEntry struct {
	Rank           int     `json:"rank"`
	TopicName      string  `json:"topic_name"`
	Subject        string  `json:"subject"`
	WeaknessScore  float64 `json:"weakness_score"`
	AccuracyRate   float64 `json:"accuracy_rate"`
	TotalQuestions int     `json:"total_questions"`
	Net            float64 `json:"net"`
}

// Entries converts scored topics into unranked ranking entries
func Entries(perf []TopicPerformance) []WeakTopicEntry {
	entries := make([]WeakTopicEntry, 0, len(perf))
	for _, p := range perf {
		entries = append(entries, WeakTopicEntry{
			TopicName:      p.Topic,
			Subject:        p.Subject,
			WeaknessScore:  p.WeaknessScore,
			AccuracyRate:   p.AccuracyRate,
			TotalQuestions: p.TotalQuestions,
			Net:            p.Net,
		})
	}
	return entries
}

// Rank orders entries by weakness score, highest first, and keeps the top n.
// Ties keep their input order, which for a fresh analysis is the order topics
// first appeared in the exam. n <= 0 keeps every entry.
// The input slice is not modified.
func Rank(entries []WeakTopicEntry, n int) []WeakTopicEntry {
	ranked := make([]WeakTopicEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].WeaknessScore > ranked[j].WeaknessScore
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
