package assessment

import (
	"github.com/slggamerTrue/languageLearning/internal/tutor"
)

// chatReplyMsg is sent when the tutor's next chat turn arrives.
type chatReplyMsg struct {
	Msg tutor.Message
	Err error
}

// profileReadyMsg is sent when profile analysis completes.
type profileReadyMsg struct {
	Profile tutor.UserProfile
	Err     error
}

// totalPlanMsg is sent when topic generation completes. Advance is true for
// the explicit "Generate Learning Plan" action, false for the in-place
// refresh after a profile edit.
type totalPlanMsg struct {
	Plan    tutor.TotalPlan
	Advance bool
	Err     error
}

// weeklyPlanMsg is sent when the seven-day plan arrives.
type weeklyPlanMsg struct {
	Days []tutor.WeeklyPlanDay
	Err  error
}
