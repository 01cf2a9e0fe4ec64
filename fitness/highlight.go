package fitness

import (
	"regexp"
	"sort"
)

// SpanCategory names one of the six recognized highlight categories.
type SpanCategory string

const (
	CategoryExercise   SpanCategory = "exercise"
	CategoryNutrition  SpanCategory = "nutrition"
	CategoryMealTime   SpanCategory = "meal"
	CategoryDay        SpanCategory = "day"
	CategoryImportance SpanCategory = "important"
	CategoryDuration   SpanCategory = "time"
)

// HighlightSpan marks an annotated substring of a single line.
// Start/End are byte offsets into the line.
type HighlightSpan struct {
	Text     string       `json:"text"`
	Category SpanCategory `json:"category"`
	Start    int          `json:"start"`
	End      int          `json:"end"`
}

var highlightPatterns = []struct {
	re       *regexp.Regexp
	category SpanCategory
}{
	{regexp.MustCompile(`(?i)\d+\s*sets?|\d+\s*reps?|\d+\s*x\s*\d+`), CategoryExercise},
	{regexp.MustCompile(`(?i)\d+\s*calories?|\d+g\s*protein|\d+g\s*carbs?|\d+g\s*fat`), CategoryNutrition},
	{regexp.MustCompile(`(?i)breakfast|lunch|dinner|snack|pre-workout|post-workout`), CategoryMealTime},
	{regexp.MustCompile(`(?i)monday|tuesday|wednesday|thursday|friday|saturday|sunday|day\s*\d+`), CategoryDay},
	{regexp.MustCompile(`(?i)rest|recovery|important|note|tip|warning`), CategoryImportance},
	{regexp.MustCompile(`(?i)\d+\s*minutes?|\d+\s*hours?|\d+\s*seconds?`), CategoryDuration},
}

// HighlightSpans scans a line for all six pattern categories and
// returns non-overlapping spans in left-to-right order. When two
// categories match overlapping text, the span that starts first wins
// (the longer span on equal starts); the overlapped later match is
// dropped, so the result always tiles cleanly.
func HighlightSpans(line string) []HighlightSpan {
	var all []HighlightSpan
	for _, p := range highlightPatterns {
		for _, loc := range p.re.FindAllStringIndex(line, -1) {
			all = append(all, HighlightSpan{
				Text:     line[loc[0]:loc[1]],
				Category: p.category,
				Start:    loc[0],
				End:      loc[1],
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})

	spans := make([]HighlightSpan, 0, len(all))
	lastEnd := 0
	for _, s := range all {
		if s.Start < lastEnd {
			continue
		}
		spans = append(spans, s)
		lastEnd = s.End
	}

	return spans
}
