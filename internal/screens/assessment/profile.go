package assessment

import (
	"fmt"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/slggamerTrue/languageLearning/internal/screen"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/components"
)

// rowKind identifies what a profile-review row does.
type rowKind int

const (
	rowLevel rowKind = iota
	rowStudyTime
	rowTotalDays
	rowInterest
	rowAddInterest
	rowGoal
	rowAddGoal
	rowGenerate
	rowBackToChat
)

// profileRow is one selectable line on the profile review view.
type profileRow struct {
	kind  rowKind
	index int // position within interests/goals for removable rows
	label string
}

// profileRows builds the selectable rows for the current profile.
func (s *WizardScreen) profileRows() []profileRow {
	p := s.state.Profile
	if p == nil {
		return nil
	}

	rows := []profileRow{
		{kind: rowLevel, label: fmt.Sprintf("English level: %s", p.EnglishLevel)},
		{kind: rowStudyTime, label: fmt.Sprintf("Daily study time: %d minutes", p.StudyTimePerDay)},
		{kind: rowTotalDays, label: fmt.Sprintf("Total study days: %d", p.TotalStudyDay)},
	}
	for i, interest := range p.Interests {
		rows = append(rows, profileRow{kind: rowInterest, index: i, label: "Interest: " + interest})
	}
	rows = append(rows, profileRow{kind: rowAddInterest, label: "+ Add interest"})
	for i, goal := range p.LearningGoals {
		rows = append(rows, profileRow{kind: rowGoal, index: i, label: "Goal: " + goal})
	}
	rows = append(rows,
		profileRow{kind: rowAddGoal, label: "+ Add goal"},
		profileRow{kind: rowGenerate, label: "Generate Learning Plan"},
		profileRow{kind: rowBackToChat, label: "Back to Chat"},
	)
	return rows
}

func (s *WizardScreen) handleProfileKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.editing != editNone {
		return s.handleEditKey(msg)
	}

	rows := s.profileRows()
	if len(rows) == 0 {
		return s, nil
	}
	if s.profileCursor >= len(rows) {
		s.profileCursor = len(rows) - 1
	}
	row := rows[s.profileCursor]

	switch msg.String() {
	case "up", "k":
		if s.profileCursor > 0 {
			s.profileCursor--
		}
	case "down", "j":
		if s.profileCursor < len(rows)-1 {
			s.profileCursor++
		}
	case "d", "x":
		switch row.kind {
		case rowInterest:
			if s.state.Profile.RemoveInterest(row.index) {
				return s, s.regenerate()
			}
		case rowGoal:
			if s.state.Profile.RemoveGoal(row.index) {
				return s, s.regenerate()
			}
		}
	case "enter":
		return s.activateProfileRow(row)
	}
	return s, nil
}

func (s *WizardScreen) activateProfileRow(row profileRow) (screen.Screen, tea.Cmd) {
	switch row.kind {
	case rowLevel:
		s.state.Profile.EnglishLevel = nextLevel(s.state.Profile.EnglishLevel)
		return s, s.regenerate()

	case rowStudyTime:
		s.startEdit(editStudyTime, strconv.Itoa(s.state.Profile.StudyTimePerDay), true)
	case rowTotalDays:
		s.startEdit(editTotalDays, strconv.Itoa(s.state.Profile.TotalStudyDay), true)
	case rowAddInterest:
		s.startEdit(editAddInterest, "", false)
	case rowAddGoal:
		s.startEdit(editAddGoal, "", false)

	case rowGenerate:
		s.setLoading("Generating your learning plan...")
		return s, tea.Batch(s.callTotalPlan(*s.state.Profile, true), s.spin.Tick())

	case rowBackToChat:
		s.state.Step = StepChatting
		s.state.Error = ""
	}
	return s, nil
}

func (s *WizardScreen) startEdit(kind editKind, initial string, numeric bool) {
	s.editing = kind
	s.editInput = components.NewTextInput("", numeric, 200)
	s.editInput.Model.SetValue(initial)
}

// handleEditKey applies or discards the inline edit. Every applied change
// commits through the clamping setters and triggers one plan regeneration.
func (s *WizardScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = editNone
		return s, nil

	case "enter":
		kind := s.editing
		value := s.editInput.Value()
		s.editing = editNone

		p := s.state.Profile
		switch kind {
		case editStudyTime:
			p.SetStudyTime(value)
			return s, s.regenerate()
		case editTotalDays:
			p.SetTotalDays(value)
			return s, s.regenerate()
		case editAddInterest:
			if p.AddInterest(value) {
				return s, s.regenerate()
			}
		case editAddGoal:
			if p.AddGoal(value) {
				return s, s.regenerate()
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.editInput, cmd = s.editInput.Update(msg)
	return s, cmd
}

// nextLevel cycles through the proficiency bands in order.
func nextLevel(lv tutor.EnglishLevel) tutor.EnglishLevel {
	levels := tutor.Levels()
	for i, l := range levels {
		if l == lv {
			return levels[(i+1)%len(levels)]
		}
	}
	return levels[0]
}
