package fitness

import "strings"

// PlanSections is the derived workout/diet/motivation triple. It is
// recomputed from the raw plan text on demand and never stored.
type PlanSections struct {
	Workout    string `json:"workout"`
	Diet       string `json:"diet"`
	Motivation string `json:"motivation"`
}

// MotivationFallback is used when a plan carries no recognizable tips
// or motivation marker at all.
const MotivationFallback = `💪 Stay Committed to Your Goals!

• Consistency is key - small daily efforts lead to big results
• Track your progress and celebrate small wins
• Stay hydrated - drink at least 8 glasses of water daily
• Get 7-8 hours of quality sleep each night
• Listen to your body and rest when needed
• Focus on progress, not perfection
• Remember why you started
• Believe in yourself - you've got this! 🌟`

// between returns the text after the first occurrence of start, cut at
// the first following occurrence of end. The empty string means the
// chain should fall through to the next heuristic.
func between(raw, start, end string) string {
	parts := strings.SplitN(raw, start, 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.SplitN(parts[1], end, 2)[0]
}

// after returns the text following the first occurrence of marker.
func after(raw, marker string) string {
	parts := strings.SplitN(raw, marker, 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// ExtractSections splits a raw plan into its three sections using a
// layered marker heuristic. The generator is asked to emit banner
// separators and literal section headings; each section tries the most
// specific anchors first and degrades to looser ones. A plan with no
// recognizable markers yields empty workout/diet sections and the
// fixed motivation fallback. Pure function of its input.
func ExtractSections(raw string) PlanSections {
	var workout string
	if parts := strings.Split(raw, SectionBanner); len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		workout = parts[2]
	}
	workout = firstNonEmpty(
		workout,
		between(raw, "7-DAY WORKOUT PLAN", "COMPREHENSIVE DIET PLAN"),
		between(raw, "WORKOUT PLAN", "DIET PLAN"),
	)

	diet := firstNonEmpty(
		between(raw, "COMPREHENSIVE DIET PLAN", "EXPERT TIPS"),
		between(raw, "DIET PLAN", "TIPS"),
		between(raw, "DIET PLAN", "MOTIVATION"),
	)

	motivation := firstNonEmpty(
		after(raw, "EXPERT TIPS"),
		after(raw, "TIPS"),
		after(raw, "MOTIVATION"),
		MotivationFallback,
	)

	return PlanSections{Workout: workout, Diet: diet, Motivation: motivation}
}
