package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	assess "github.com/slggamerTrue/languageLearning/internal/assessment"
	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/theme"
)

func (s *WizardScreen) View(width, height int) string {
	switch s.state.Step {
	case StepProfileReview:
		return s.viewProfile(width)
	case StepPlanSelection:
		return s.viewPlanSelection(width)
	case StepWeeklyPlanGenerating:
		return s.viewGenerating(width)
	default:
		return s.viewChat(width, height)
	}
}

// viewChat renders the conversation, newest at the bottom, with the reply
// input or the spinner underneath.
func (s *WizardScreen) viewChat(width, height int) string {
	var b strings.Builder

	wrap := lipgloss.NewStyle().Width(width - 6)
	for _, m := range s.state.Log.Visible() {
		label := theme.TutorLabel.Render("Tutor")
		if m.Role == tutor.RoleUser {
			label = theme.StudentLabel.Render("You")
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + wrap.Render(theme.ChatText.Render(displayContent(m))) + "\n\n")
	}

	if s.state.Error != "" {
		b.WriteString("  " + theme.ErrorPanel.Render(s.state.Error) + "\n\n")
	}

	if s.state.Loading {
		b.WriteString("  " + s.spin.View() + "\n")
	} else {
		b.WriteString("  " + s.input.View() + "\n")
	}

	return trimToHeight(b.String(), height)
}

func (s *WizardScreen) viewProfile(width int) string {
	var b strings.Builder
	b.WriteString("\n  " + theme.Subtitle.Render("Review your profile. Any change refreshes the plan.") + "\n\n")

	rows := s.profileRows()
	for i, row := range rows {
		cursor := "  "
		style := theme.Unselected
		if i == s.profileCursor {
			cursor = "> "
			style = theme.Selected
		}
		b.WriteString("  " + cursor + style.Render(row.label) + "\n")

		if i == s.profileCursor && s.editing != editNone && editTargets(row.kind, s.editing) {
			b.WriteString("      " + s.editInput.View() + "\n")
		}
	}

	if s.state.Error != "" {
		b.WriteString("\n  " + theme.ErrorPanel.Render(s.state.Error) + "\n")
	}
	if s.state.Loading {
		b.WriteString("\n  " + s.spin.View() + "\n")
	}
	return b.String()
}

func (s *WizardScreen) viewPlanSelection(width int) string {
	var b strings.Builder
	b.WriteString("\n  " + theme.Subtitle.Render("Pick a topic to start with.") + "\n\n")

	plan := s.state.TotalPlan
	if plan == nil || len(plan.Topics) == 0 {
		b.WriteString("  " + theme.Hint.Render("No topics available.") + "\n")
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(width - 10)
	for i, topic := range plan.Topics {
		cursor := "  "
		style := theme.Unselected
		if i == s.planCursor {
			cursor = "> "
			style = theme.Selected
		}
		b.WriteString("  " + cursor + style.Render(fmt.Sprintf("Day %d: %s", topic.DayNumber, topic.Topic)) + "\n")
		if i == s.planCursor && topic.Description != "" {
			b.WriteString("      " + wrap.Render(theme.Hint.Render(topic.Description)) + "\n")
		}
	}

	if s.state.Error != "" {
		b.WriteString("\n  " + theme.ErrorPanel.Render(s.state.Error) + "\n")
	}
	if s.state.Loading {
		b.WriteString("\n  " + s.spin.View() + "\n")
	}
	return b.String()
}

func (s *WizardScreen) viewGenerating(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	if s.state.Error != "" {
		b.WriteString("  " + theme.ErrorPanel.Render(s.state.Error) + "\n\n")
		b.WriteString("  " + theme.Hint.Render("Press Enter to go back and pick another topic.") + "\n")
		return b.String()
	}

	b.WriteString("  " + s.spin.View() + "\n\n")
	b.WriteString("  " + theme.Hint.Render("This can take a moment.") + "\n")
	return b.String()
}

// displayContent is the rendered text for a chat turn: displayText when the
// assistant provided formatted output, otherwise the content with the
// completion marker removed.
func displayContent(m tutor.Message) string {
	text := m.Content
	if m.DisplayText != "" {
		text = m.DisplayText
	}
	text = strings.ReplaceAll(text, assess.CompletionMarker, "")
	return strings.TrimSpace(text)
}

// editTargets reports whether the active edit belongs to the given row.
func editTargets(kind rowKind, edit editKind) bool {
	switch edit {
	case editStudyTime:
		return kind == rowStudyTime
	case editTotalDays:
		return kind == rowTotalDays
	case editAddInterest:
		return kind == rowAddInterest
	case editAddGoal:
		return kind == rowAddGoal
	}
	return false
}

// trimToHeight keeps the last lines of the chat transcript when it would
// overflow the content area.
func trimToHeight(view string, height int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	if len(lines) <= height {
		return view
	}
	return strings.Join(lines[len(lines)-height:], "\n")
}
