package fitness

import (
	"strings"
	"testing"
)

func fullProfile() UserProfile {
	return UserProfile{
		Name:     "Arjun Mehta",
		Age:      34,
		Gender:   "Male",
		Height:   178.5,
		Weight:   82,
		Goal:     "Muscle Gain",
		Level:    "Intermediate",
		Location: "Gym",
		Diet:     "Non-Vegetarian",
	}
}

func TestBuildPlanPromptContainsEveryRequiredField(t *testing.T) {
	profile := fullProfile()
	prompt := BuildPlanPrompt(profile)

	wantOnce := []string{
		"Arjun Mehta",
		"34 years",
		"178.5 cm",
		"82 kg",
		"Muscle Gain",
		"Intermediate",
		"Non-Vegetarian",
	}
	for _, want := range wantOnce {
		if got := strings.Count(prompt, want); got != 1 {
			t.Errorf("expected %q exactly once in prompt, got %d occurrences", want, got)
		}
	}

	if got := strings.Count(prompt, "Preferred Workout Location: Gym"); got != 1 {
		t.Errorf("expected location line exactly once, got %d", got)
	}
}

func TestBuildPlanPromptOmitsOptionalFieldsWhenEmpty(t *testing.T) {
	prompt := BuildPlanPrompt(fullProfile())

	if strings.Contains(prompt, "Medical History") {
		t.Error("prompt should not mention medical history when none is given")
	}
	if strings.Contains(prompt, "Stress Level") {
		t.Error("prompt should not mention stress level when none is given")
	}
}

func TestBuildPlanPromptIncludesOptionalFieldsWhenSet(t *testing.T) {
	profile := fullProfile()
	profile.Medical = "recovering from knee surgery"
	profile.Stress = "High"

	prompt := BuildPlanPrompt(profile)

	if !strings.Contains(prompt, "Medical History: recovering from knee surgery") {
		t.Error("prompt missing medical history line")
	}
	if !strings.Contains(prompt, "Stress Level: High") {
		t.Error("prompt missing stress level line")
	}
}

func TestBuildPlanPromptIsDeterministic(t *testing.T) {
	profile := fullProfile()
	if BuildPlanPrompt(profile) != BuildPlanPrompt(profile) {
		t.Error("prompt output differs between calls for identical input")
	}
}

func TestBuildPlanPromptRequestsAllThreeSections(t *testing.T) {
	prompt := BuildPlanPrompt(fullProfile())

	for _, heading := range []string{"7-DAY WORKOUT PLAN", "COMPREHENSIVE DIET PLAN", "EXPERT TIPS & MOTIVATION"} {
		if !strings.Contains(prompt, heading) {
			t.Errorf("prompt missing %q section heading", heading)
		}
	}
	if !strings.Contains(prompt, SectionBanner) {
		t.Error("prompt missing section banner separators")
	}
}

func TestBuildFreeformPromptEmbedsDescription(t *testing.T) {
	prompt := BuildFreeformPrompt("I'm 28, train at home, vegetarian, want to lose weight")

	if !strings.Contains(prompt, "I'm 28, train at home, vegetarian, want to lose weight") {
		t.Error("freeform prompt missing the user description")
	}
	for _, heading := range []string{"7-DAY WORKOUT PLAN", "COMPREHENSIVE DIET PLAN", "EXPERT TIPS & MOTIVATION"} {
		if !strings.Contains(prompt, heading) {
			t.Errorf("freeform prompt missing %q section heading", heading)
		}
	}
}
