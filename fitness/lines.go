package fitness

import "strings"

// SectionKind tags which plan section a line came from; exercise and
// meal classification only apply inside their home section.
type SectionKind string

const (
	SectionWorkout    SectionKind = "workout"
	SectionDiet       SectionKind = "diet"
	SectionMotivation SectionKind = "motivation"
)

// LineInfo is the render-time classification of a single plan line.
type LineInfo struct {
	Suppressed bool   `json:"suppressed,omitempty"`
	Header     bool   `json:"header,omitempty"`
	Bullet     bool   `json:"bullet,omitempty"`
	Exercise   bool   `json:"exercise,omitempty"`
	Meal       bool   `json:"meal,omitempty"`
	CleanText  string `json:"text"`
}

var exerciseKeywords = []string{
	"sets", "reps", "push-up", "squat", "plank", "lunge", "crunch",
	"press", "curl", "row", "pull", "lift", "walk", "run", "jog",
	"stretch", "cardio", "yoga",
}

var mealKeywords = []string{
	"calories", "protein", "carbs", "fat", "breakfast", "lunch",
	"dinner", "snack", "meal", "g protein", "kcal",
}

var bulletGlyphs = []string{"•", "-", "*"}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsExerciseLine reports whether a line mentions sets/reps or a common
// exercise keyword.
func IsExerciseLine(text string) bool {
	return containsAny(strings.ToLower(text), exerciseKeywords)
}

// IsMealLine reports whether a line mentions macros or a meal keyword.
func IsMealLine(text string) bool {
	return containsAny(strings.ToLower(text), mealKeywords)
}

func isHeaderLine(line string) bool {
	return strings.Contains(line, "═══") ||
		strings.HasPrefix(line, "##") ||
		strings.HasPrefix(line, "📅") ||
		strings.HasPrefix(line, "🥗") ||
		strings.HasPrefix(line, "💡") ||
		strings.HasPrefix(line, "**Day") ||
		strings.Contains(line, "WORKOUT PLAN") ||
		strings.Contains(line, "DIET PLAN")
}

func isBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			return true
		}
	}
	return false
}

// StripBullet removes a leading bullet glyph and markdown emphasis
// markers, yielding the text shown to the user (and sent to the
// illustration gateway for exercise/meal lines).
func StripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, glyph := range bulletGlyphs {
		if strings.HasPrefix(trimmed, glyph) {
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, glyph))
			break
		}
	}
	return strings.ReplaceAll(trimmed, "**", "")
}

// ClassifyLine decides how a single line renders: suppressed entirely
// (blank or banner-only), as a header, as a bullet, or as plain text.
// Exercise classification applies only to bullets in the workout
// section, meal classification only to bullets in the diet section.
func ClassifyLine(line string, section SectionKind) LineInfo {
	if strings.TrimSpace(line) == "" || strings.Contains(line, "═══") {
		return LineInfo{Suppressed: true}
	}

	info := LineInfo{
		Header: isHeaderLine(line),
		Bullet: isBulletLine(line),
	}
	info.Exercise = section == SectionWorkout && info.Bullet && IsExerciseLine(line)
	info.Meal = section == SectionDiet && info.Bullet && IsMealLine(line)

	if info.Header {
		info.CleanText = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(line, "##", ""), "**", ""))
	} else {
		info.CleanText = StripBullet(line)
	}

	return info
}
