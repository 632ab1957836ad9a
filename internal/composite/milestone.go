package composite

// Milestone is the next target for a user at a given tier
type Milestone struct {
	Target      float64  `json:"target"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

var milestones = map[Tier]Milestone{
	TierNeedsImprovement: {
		Target:      40,
		Description: "Reach the basic level",
		Actions:     []string{"Build a daily study routine", "Record your first practice exam"},
	},
	TierFair: {
		Target:      60,
		Description: "Reach the intermediate level",
		Actions:     []string{"Solve a practice exam every week", "Raise your task completion rate"},
	},
	TierGood: {
		Target:      80,
		Description: "Reach the good level",
		Actions:     []string{"Strengthen your weak topics", "Review regularly"},
	},
	TierExcellent: {
		Target:      90,
		Description: "Reach the excellent level",
		Actions:     []string{"Run a detailed analysis", "Revisit your goals"},
	},
}

// MilestoneFor returns the fixed next milestone for a tier.
// An unknown tier is treated as needs_improvement.
func MilestoneFor(tier Tier) Milestone {
	m, ok := milestones[tier]
	if !ok {
		m = milestones[TierNeedsImprovement]
	}
	actions := make([]string, len(m.Actions))
	copy(actions, m.Actions)
	m.Actions = actions
	return m
}
