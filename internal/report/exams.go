package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/example/examprep/pkg/models"
)

// UnknownSubject labels exams recorded without a subject
const UnknownSubject = "Unknown"

// RecentExams is how many exams RecentPerformance keeps
const RecentExams = 5

// ExamRef identifies one exam in a summary
type ExamRef struct {
	ExamName string    `json:"exam_name"`
	TotalNet float64   `json:"total_net"`
	ExamDate time.Time `json:"exam_date"`
}

// SubjectStats aggregates the exams of one subject
type SubjectStats struct {
	Subject    string  `json:"subject"`
	TotalExams int     `json:"total_exams"`
	TotalNet   float64 `json:"total_net"`
	AverageNet float64 `json:"average_net"`
	BestNet    float64 `json:"best_net"`
	WorstNet   float64 `json:"worst_net"`
}

// ExamSummary is the exam side of a user report
type ExamSummary struct {
	TotalExams         int            `json:"total_exams"`
	AverageNet         float64        `json:"average_net"`
	BestExam           *ExamRef       `json:"best_exam"`
	WorstExam          *ExamRef       `json:"worst_exam"`
	BestSubject        string         `json:"best_subject,omitempty"`
	WorstSubject       string         `json:"worst_subject,omitempty"`
	RecentPerformance  []ExamRef      `json:"recent_performance"`
	SubjectPerformance []SubjectStats `json:"subject_performance"`
}

// SummarizeExams aggregates exam records. Subjects keep first-seen order.
// The best subject must have a positive average net.
func SummarizeExams(records []models.ExamRecord) ExamSummary {
	summary := ExamSummary{
		RecentPerformance:  []ExamRef{},
		SubjectPerformance: []SubjectStats{},
	}
	if len(records) == 0 {
		return summary
	}

	var total float64
	index := make(map[string]int)
	for _, r := range records {
		total += r.TotalNet

		subject := strings.TrimSpace(r.SubjectName)
		if subject == "" {
			subject = UnknownSubject
		}
		i, ok := index[subject]
		if !ok {
			i = len(summary.SubjectPerformance)
			index[subject] = i
			summary.SubjectPerformance = append(summary.SubjectPerformance, SubjectStats{
				Subject:  subject,
				BestNet:  r.TotalNet,
				WorstNet: r.TotalNet,
			})
		}
		s := &summary.SubjectPerformance[i]
		s.TotalExams++
		s.TotalNet += r.TotalNet
		s.BestNet = math.Max(s.BestNet, r.TotalNet)
		s.WorstNet = math.Min(s.WorstNet, r.TotalNet)
	}

	summary.TotalExams = len(records)
	summary.AverageNet = round(total/float64(len(records)), 2)

	bestAvg, worstAvg := 0.0, math.Inf(1)
	for i := range summary.SubjectPerformance {
		s := &summary.SubjectPerformance[i]
		s.AverageNet = round(s.TotalNet/float64(s.TotalExams), 2)
		if s.AverageNet > bestAvg {
			bestAvg = s.AverageNet
			summary.BestSubject = s.Subject
		}
		if s.AverageNet < worstAvg {
			worstAvg = s.AverageNet
			summary.WorstSubject = s.Subject
		}
	}

	byNet := refs(records)
	sort.SliceStable(byNet, func(i, j int) bool { return byNet[i].TotalNet > byNet[j].TotalNet })
	best, worst := byNet[0], byNet[len(byNet)-1]
	summary.BestExam, summary.WorstExam = &best, &worst

	byDate := refs(records)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].ExamDate.After(byDate[j].ExamDate) })
	if len(byDate) > RecentExams {
		byDate = byDate[:RecentExams]
	}
	summary.RecentPerformance = byDate

	return summary
}

func refs(records []models.ExamRecord) []ExamRef {
	out := make([]ExamRef, len(records))
	for i, r := range records {
		out[i] = ExamRef{ExamName: r.ExamName, TotalNet: r.TotalNet, ExamDate: r.ExamDate}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
