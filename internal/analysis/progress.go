package analysis

// Trend classifies a change between two snapshots
type Trend string

const (
	TrendImproved Trend = "improved"
	TrendDeclined Trend = "declined"
	TrendStable   Trend = "stable"
)

// TrendOf classifies a delta. Exactly zero is stable.
func TrendOf(delta float64) Trend {
	switch {
	case delta > 0:
		return TrendImproved
	case delta < 0:
		return TrendDeclined
	default:
		return TrendStable
	}
}

// TopicProgress compares one topic across two snapshots
type TopicProgress struct {
	Topic                 string  `json:"topic"`
	NetImprovement        float64 `json:"net_improvement"`
	ImprovementPercentage float64 `json:"improvement_percentage"`
	Status                Trend   `json:"status"`
}

// ProgressReport is the diff of two analyses
type ProgressReport struct {
	NetChange       float64         `json:"net_change"`
	OverallProgress Trend           `json:"overall_progress"`
	ProgressByTopic []TopicProgress `json:"progress_by_topic"`
	Current         *Analysis       `json:"current_analysis"`
	Previous        *Analysis       `json:"previous_analysis"`
}

// Compare diffs two analyses. Only topics present in both are compared,
// in the order they appear in the current analysis.
func Compare(previous, current *Analysis) *ProgressReport {
	report := &ProgressReport{
		NetChange:       current.General.Net - previous.General.Net,
		ProgressByTopic: make([]TopicProgress, 0),
		Current:         current,
		Previous:        previous,
	}
	report.OverallProgress = TrendOf(report.NetChange)

	prevByTopic := make(map[string]TopicPerformance, len(previous.TopicPerformance))
	for _, p := range previous.TopicPerformance {
		prevByTopic[p.Topic] = p
	}

	for _, curr := range current.TopicPerformance {
		prev, ok := prevByTopic[curr.Topic]
		if !ok {
			continue
		}
		delta := curr.Net - prev.Net
		report.ProgressByTopic = append(report.ProgressByTopic, TopicProgress{
			Topic:                 curr.Topic,
			NetImprovement:        delta,
			ImprovementPercentage: improvementPercentage(delta, prev.Net),
			Status:                TrendOf(delta),
		})
	}

	return report
}

// improvementPercentage is 0 whenever the previous net is not positive,
// including a climb out of a negative net.
func improvementPercentage(delta, previousNet float64) float64 {
	if previousNet <= 0 {
		return 0
	}
	return SafeRatio(delta, previousNet) * 100
}
