package tutor

import (
	"strconv"
	"strings"
)

// EnglishLevel is the learner's assessed proficiency band.
type EnglishLevel string

const (
	LevelNone         EnglishLevel = "none"
	LevelBeginner     EnglishLevel = "beginner"
	LevelIntermediate EnglishLevel = "intermediate"
	LevelAdvanced     EnglishLevel = "advanced"
)

// Levels lists all proficiency bands in ascending order.
func Levels() []EnglishLevel {
	return []EnglishLevel{LevelNone, LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Valid reports whether the level is one of the four known bands.
func (lv EnglishLevel) Valid() bool {
	switch lv {
	case LevelNone, LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Capitalized returns the level with its first letter upper-cased, as used in
// synthesized lesson topics ("English Learning for Beginner Level").
func (lv EnglishLevel) Capitalized() string {
	s := string(lv)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Bounds for the numeric profile fields. Out-of-range or unparseable edits
// are clamped, never surfaced as errors.
const (
	MinStudyMinutes     = 5
	MaxStudyMinutes     = 240
	DefaultStudyMinutes = 30

	MinStudyDays     = 7
	MaxStudyDays     = 365
	DefaultStudyDays = 30
)

// UserProfile is the structured summary derived from the assessment chat.
// Interests and LearningGoals keep their insertion order; duplicates are
// allowed.
type UserProfile struct {
	EnglishLevel    EnglishLevel `json:"english_level"`
	Interests       []string     `json:"interests"`
	LearningGoals   []string     `json:"learning_goals"`
	StudyTimePerDay int          `json:"study_time_per_day"`
	TotalStudyDay   int          `json:"total_study_day"`
}

// Clamp forces the numeric fields into their declared ranges, substituting
// the defaults for non-positive values.
func (p *UserProfile) Clamp() {
	p.StudyTimePerDay = clampInt(p.StudyTimePerDay, MinStudyMinutes, MaxStudyMinutes, DefaultStudyMinutes)
	p.TotalStudyDay = clampInt(p.TotalStudyDay, MinStudyDays, MaxStudyDays, DefaultStudyDays)
}

// SetStudyTime parses raw as the daily study minutes and stores the clamped
// result. Unparseable input falls back to the default before clamping.
func (p *UserProfile) SetStudyTime(raw string) {
	p.StudyTimePerDay = parseClamped(raw, MinStudyMinutes, MaxStudyMinutes, DefaultStudyMinutes)
}

// SetTotalDays parses raw as the total study days and stores the clamped
// result.
func (p *UserProfile) SetTotalDays(raw string) {
	p.TotalStudyDay = parseClamped(raw, MinStudyDays, MaxStudyDays, DefaultStudyDays)
}

// AddInterest appends a trimmed interest. Empty strings are rejected; the
// return reports whether the entry was added.
func (p *UserProfile) AddInterest(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	p.Interests = append(p.Interests, s)
	return true
}

// RemoveInterest deletes the entry at index i without reordering the rest.
func (p *UserProfile) RemoveInterest(i int) bool {
	if i < 0 || i >= len(p.Interests) {
		return false
	}
	p.Interests = append(p.Interests[:i], p.Interests[i+1:]...)
	return true
}

// AddGoal appends a trimmed learning goal. Empty strings are rejected.
func (p *UserProfile) AddGoal(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	p.LearningGoals = append(p.LearningGoals, s)
	return true
}

// RemoveGoal deletes the entry at index i without reordering the rest.
func (p *UserProfile) RemoveGoal(i int) bool {
	if i < 0 || i >= len(p.LearningGoals) {
		return false
	}
	p.LearningGoals = append(p.LearningGoals[:i], p.LearningGoals[i+1:]...)
	return true
}

func parseClamped(raw string, min, max, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		n = def
	}
	return clampInt(n, min, max, def)
}

func clampInt(n, min, max, def int) int {
	if n <= 0 {
		n = def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
