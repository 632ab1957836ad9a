package analysis

const defaultWrongPenaltyDivisor = 4

// Rates are accuracy, error and omission rates of a tally. All are 0 for an empty tally.
type Rates struct {
	AccuracyRate float64 `json:"accuracy_rate"`
	WrongRate    float64 `json:"wrong_rate"`
	BlankRate    float64 `json:"blank_rate"`
}

// GeneralStats summarizes a whole exam
type GeneralStats struct {
	Counts
	Rates
	Net float64 `json:"net"`
}

// TopicPerformance is the scored view of a single topic
type TopicPerformance struct {
	Topic          string  `json:"topic"`
	Subject        string  `json:"subject"`
	TotalQuestions int     `json:"total_questions"`
	CorrectCount   int     `json:"correct_count"`
	WrongCount     int     `json:"wrong_count"`
	BlankCount     int     `json:"blank_count"`
	AccuracyRate   float64 `json:"accuracy_rate"`
	WrongRate      float64 `json:"wrong_rate"`
	BlankRate      float64 `json:"blank_rate"`
	WeaknessScore  float64 `json:"weakness_score"`
	Net            float64 `json:"net"`
}

// Net computes correct - wrong/4. total is accepted for symmetry with the rate helpers.
func Net(correct, wrong, total int) float64 {
	return float64(correct) - float64(wrong)/defaultWrongPenaltyDivisor
}

// Net computes the net score using the configured penalty divisor.
// The divisor is not checked here; Validate rejects non-positive values.
func (c Config) Net(correct, wrong, total int) float64 {
	return float64(correct) - float64(wrong)/c.WrongPenaltyDivisor
}

// RatesOf returns the accuracy, wrong and blank rates of c
func RatesOf(c Counts) Rates {
	total := float64(c.Total)
	return Rates{
		AccuracyRate: SafeRatio(float64(c.Correct), total),
		WrongRate:    SafeRatio(float64(c.Wrong), total),
		BlankRate:    SafeRatio(float64(c.Blank), total),
	}
}

// WeaknessScore weighs inaccuracy, omissions and errors. Higher means weaker.
func (c Config) WeaknessScore(r Rates) float64 {
	return c.AccuracyWeight*(1-r.AccuracyRate) +
		c.OmissionWeight*r.BlankRate +
		c.ErrorWeight*r.WrongRate
}

// General scores the overall tally
func (c Config) General(counts Counts) GeneralStats {
	return GeneralStats{
		Counts: counts,
		Rates:  RatesOf(counts),
		Net:    c.Net(counts.Correct, counts.Wrong, counts.Total),
	}
}

// ScoreTopics scores every topic, keeping the aggregation order
func (c Config) ScoreTopics(topics []TopicStat) []TopicPerformance {
	out := make([]TopicPerformance, 0, len(topics))
	for _, t := range topics {
		r := RatesOf(t.Counts)
		out = append(out, TopicPerformance{
			Topic:          t.Topic,
			Subject:        t.Subject,
			TotalQuestions: t.Total,
			CorrectCount:   t.Correct,
			WrongCount:     t.Wrong,
			BlankCount:     t.Blank,
			AccuracyRate:   r.AccuracyRate,
			WrongRate:      r.WrongRate,
			BlankRate:      r.BlankRate,
			WeaknessScore:  c.WeaknessScore(r),
			Net:            c.Net(t.Correct, t.Wrong, t.Total),
		})
	}
	return out
}
