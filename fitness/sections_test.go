package fitness

import (
	"strings"
	"testing"
)

const markerOnlyPlan = `Intro text
WORKOUT PLAN
Day 1: push day
• Push-ups - 3 sets x 12 reps
DIET PLAN
• Oatmeal - 350 calories
TIPS
Stay consistent and sleep well.`

func TestExtractSectionsBannerDelimited(t *testing.T) {
	raw := SectionBanner + "\n📅 7-DAY WORKOUT PLAN\n" + SectionBanner +
		"\nDay 1: Upper Body\n• Bench Press - 3 sets x 10 reps\n" + SectionBanner +
		"\n🥗 COMPREHENSIVE DIET PLAN\n" + SectionBanner +
		"\n• Oatmeal - 350 calories\n" + SectionBanner +
		"\n💡 EXPERT TIPS & MOTIVATION\n" + SectionBanner +
		"\n• Sleep 8 hours\n"

	sections := ExtractSections(raw)

	if !strings.Contains(sections.Workout, "Bench Press") {
		t.Errorf("workout section missing content, got %q", sections.Workout)
	}
	if strings.Contains(sections.Workout, "Oatmeal") {
		t.Errorf("workout section leaked diet content, got %q", sections.Workout)
	}
	if !strings.Contains(sections.Diet, "Oatmeal") {
		t.Errorf("diet section missing content, got %q", sections.Diet)
	}
	if !strings.Contains(sections.Motivation, "Sleep 8 hours") {
		t.Errorf("motivation section missing content, got %q", sections.Motivation)
	}
}

func TestExtractSectionsMarkerFallback(t *testing.T) {
	sections := ExtractSections(markerOnlyPlan)

	if !strings.Contains(sections.Workout, "push day") {
		t.Errorf("workout fallback failed, got %q", sections.Workout)
	}
	if !strings.Contains(sections.Diet, "Oatmeal") {
		t.Errorf("diet fallback failed, got %q", sections.Diet)
	}
	if !strings.Contains(sections.Motivation, "Stay consistent") {
		t.Errorf("motivation fallback failed, got %q", sections.Motivation)
	}
}

func TestExtractSectionsNoMarkersUsesMotivationFallback(t *testing.T) {
	sections := ExtractSections("the generator returned free prose with no headings at all")

	if sections.Workout != "" {
		t.Errorf("expected empty workout section, got %q", sections.Workout)
	}
	if sections.Diet != "" {
		t.Errorf("expected empty diet section, got %q", sections.Diet)
	}
	if sections.Motivation != MotivationFallback {
		t.Errorf("expected verbatim motivation fallback, got %q", sections.Motivation)
	}
}

func TestExtractSectionsIdempotent(t *testing.T) {
	first := ExtractSections(markerOnlyPlan)
	second := ExtractSections(markerOnlyPlan)

	if first != second {
		t.Error("extracting the same raw text twice gave different sections")
	}
}

func TestExtractSectionsDietPrefersExpertTipsAnchor(t *testing.T) {
	raw := "7-DAY WORKOUT PLAN\nlift things\nCOMPREHENSIVE DIET PLAN\neat things\nEXPERT TIPS\nbelieve in yourself"

	sections := ExtractSections(raw)

	if !strings.Contains(sections.Diet, "eat things") {
		t.Errorf("diet section missing content, got %q", sections.Diet)
	}
	if strings.Contains(sections.Diet, "believe") {
		t.Errorf("diet section leaked tips content, got %q", sections.Diet)
	}
	if !strings.Contains(sections.Motivation, "believe in yourself") {
		t.Errorf("motivation section missing content, got %q", sections.Motivation)
	}
}
