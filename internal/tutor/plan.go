package tutor

// PlanTopic is one candidate topic/day pairing offered before committing to a
// week's curriculum. DayNumber is unique within a plan.
type PlanTopic struct {
	DayNumber   int    `json:"day_number"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// TotalPlan is the candidate topic list generated from a profile. A new plan
// supersedes (never merges with) the previous one whenever the profile
// changes.
type TotalPlan struct {
	Topics []PlanTopic `json:"topics"`
}

// TopicByDay returns the topic with the given day number, or false when the
// plan has no such day.
func (p *TotalPlan) TopicByDay(day int) (PlanTopic, bool) {
	for _, t := range p.Topics {
		if t.DayNumber == day {
			return t, true
		}
	}
	return PlanTopic{}, false
}

// KnowledgePoint is a grammar or vocabulary point taught in a lesson.
type KnowledgePoint struct {
	Name      string   `json:"name"`
	Level     int      `json:"level"`
	Examples  []string `json:"examples"`
	Exercises []string `json:"exercises"`
	Scenario  string   `json:"scenario,omitempty"`
}

// Material is a supporting text for a lesson day.
type Material struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Segment string `json:"segment"`
	Content string `json:"content"`
}

// ReviewActivity checks a previously taught point in a new context.
type ReviewActivity struct {
	Point      string `json:"point"`
	Context    string `json:"context"`
	Difficulty int    `json:"difficulty"`
}

// WeeklyPlanDay is one day of the concrete curriculum generated from a
// profile plus a selected topic.
type WeeklyPlanDay struct {
	DayNumber        int              `json:"day_number"`
	Topic            string           `json:"topic"`
	Materials        []Material       `json:"materials"`
	KnowledgePoints  []KnowledgePoint `json:"knowledge_points"`
	ReviewActivities []ReviewActivity `json:"review_activities"`
	EstimatedTime    int              `json:"estimated_time"`
}
