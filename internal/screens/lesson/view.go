package lesson

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/slggamerTrue/languageLearning/internal/tutor"
	"github.com/slggamerTrue/languageLearning/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	var b strings.Builder

	if s.lesson == nil {
		if s.errMsg != "" {
			b.WriteString("\n  " + theme.ErrorPanel.Render(s.errMsg) + "\n")
			return b.String()
		}
		b.WriteString("\n  " + s.spin.View() + "\n")
		return b.String()
	}

	wrap := lipgloss.NewStyle().Width(width - 6)
	for _, m := range s.history {
		if m.Role == tutor.RoleSystem {
			continue
		}
		label := theme.TutorLabel.Render("Tutor")
		if m.Role == tutor.RoleUser {
			label = theme.StudentLabel.Render("You")
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + wrap.Render(s.renderTurn(m)) + "\n\n")
	}

	if s.errMsg != "" {
		b.WriteString("  " + theme.ErrorPanel.Render(s.errMsg) + "\n\n")
	}

	if s.loading {
		b.WriteString("  " + s.spin.View() + "\n")
	} else {
		b.WriteString("  " + s.input.View() + "\n")
	}

	return trimToHeight(b.String(), height)
}

// renderTurn picks the richest rendering for a turn: displayText as markdown
// when the assistant provided it, plain content otherwise.
func (s *Screen) renderTurn(m tutor.Message) string {
	if m.Role == tutor.RoleAssistant && m.DisplayText != "" {
		return s.markdown.Render(m.DisplayText)
	}
	return theme.ChatText.Render(strings.TrimSpace(m.Content))
}

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
