package report

import (
	"sort"
	"time"

	"github.com/example/examprep/internal/analysis"
	"github.com/example/examprep/pkg/models"
)

// Reporting windows
const (
	WeeklyWindow = 7 * 24 * time.Hour
	StudyWindow  = 30 * 24 * time.Hour
	studyDays    = 30
)

// TypeStats counts tasks of one type
type TypeStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// TaskSummary is the task side of a user report
type TaskSummary struct {
	TotalTasks           int                  `json:"total_tasks"`
	CompletedTasks       int                  `json:"completed_tasks"`
	CompletionRate       float64              `json:"completion_rate"`        // 0-100
	WeeklyCompletionRate float64              `json:"weekly_completion_rate"` // 0-100, tasks created in the last 7 days
	TaskTypes            map[string]TypeStats `json:"task_types"`
}

// SummarizeTasks computes completion rates overall and for the last week
func SummarizeTasks(tasks []models.StudyTask, now time.Time) TaskSummary {
	summary := TaskSummary{TaskTypes: make(map[string]TypeStats)}

	weekStart := now.Add(-WeeklyWindow)
	var weekly, weeklyDone int
	for _, t := range tasks {
		taskType := t.TaskType
		if taskType == "" {
			taskType = "unknown"
		}
		stats := summary.TaskTypes[taskType]
		stats.Total++
		if t.IsCompleted {
			stats.Completed++
			summary.CompletedTasks++
		}
		summary.TaskTypes[taskType] = stats

		if !t.CreatedAt.Before(weekStart) {
			weekly++
			if t.IsCompleted {
				weeklyDone++
			}
		}
	}

	summary.TotalTasks = len(tasks)
	summary.CompletionRate = round(analysis.SafeRatio(float64(summary.CompletedTasks), float64(summary.TotalTasks))*100, 1)
	summary.WeeklyCompletionRate = round(analysis.SafeRatio(float64(weeklyDone), float64(weekly))*100, 1)
	return summary
}

// StudySummary is the study-time side of a user report, over the last 30 days
type StudySummary struct {
	TotalStudyHours float64 `json:"total_study_hours"`
	DailyAverage    float64 `json:"daily_average"`
	StudyDays       int     `json:"study_days"`
	StudyStreak     int     `json:"study_streak"`
	AchievementRate float64 `json:"achievement_rate"` // study hours against planned task hours, 0-100+
	TargetHours     float64 `json:"target_hours"`
}

// SummarizeStudy computes study time statistics for the 30 days before now.
// The daily average spreads the total over the whole window.
func SummarizeStudy(sessions []models.StudySession, tasks []models.StudyTask, now time.Time) StudySummary {
	monthStart := now.Add(-StudyWindow)

	var minutes int
	days := make(map[string]struct{})
	for _, s := range sessions {
		if s.StartTime.Before(monthStart) {
			continue
		}
		minutes += s.DurationMinutes
		days[s.StartTime.UTC().Format(time.DateOnly)] = struct{}{}
	}

	var targetMinutes int
	for _, t := range tasks {
		if !t.CreatedAt.Before(monthStart) {
			targetMinutes += t.EstimatedMinutes
		}
	}

	hours := float64(minutes) / 60
	target := float64(targetMinutes) / 60
	return StudySummary{
		TotalStudyHours: round(hours, 1),
		DailyAverage:    round(hours/studyDays, 1),
		StudyDays:       len(days),
		StudyStreak:     Streak(tasks, now),
		AchievementRate: round(analysis.SafeRatio(hours, target)*100, 1),
		TargetHours:     round(target, 1),
	}
}

// Streak counts consecutive days, ending today, with at least one completed task
func Streak(tasks []models.StudyTask, now time.Time) int {
	done := make(map[string]struct{})
	for _, t := range tasks {
		if t.IsCompleted && t.CompletedAt != nil {
			done[t.CompletedAt.UTC().Format(time.DateOnly)] = struct{}{}
		}
	}

	dates := make([]string, 0, len(done))
	for d := range done {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	today := now.UTC()
	for _, d := range dates {
		if d > today.Format(time.DateOnly) {
			continue
		}
		if d != today.AddDate(0, 0, -streak).Format(time.DateOnly) {
			break
		}
		streak++
	}
	return streak
}
