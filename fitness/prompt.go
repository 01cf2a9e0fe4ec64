package fitness

import (
	"fmt"
	"strings"
)

// SectionBanner is the decorative separator the generator is asked to
// emit around each top-level section. The extractor keys off it too.
const SectionBanner = "═══════════════════════════════════════════════════════"

const profileDivider = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// planStructure is the section scaffold every plan request asks for,
// shared by the form-driven and free-text prompts.
const planStructure = `Generate a comprehensive plan with the following structure:

` + SectionBanner + `
📅 7-DAY WORKOUT PLAN
` + SectionBanner + `

For EACH day (Day 1 through Day 7), provide:
• Day name and primary focus area (e.g., Upper Body, Cardio, Legs)
• 5-6 specific exercises with:
  - Exercise name (e.g., "Barbell Bench Press", "Jump Squats")
  - Sets x Reps (e.g., "3 sets x 12 reps")
  - Rest time between sets (e.g., "60 seconds rest")
  - Brief form tip
• Total workout duration
• Intensity level (Moderate/High/Low)

Format each exercise as a bullet point with clear structure.

` + SectionBanner + `
🥗 COMPREHENSIVE DIET PLAN
` + SectionBanner + `

Provide meal options for each category:

**BREAKFAST OPTIONS** (Provide 3-4 options)
For each meal:
• Meal name (e.g., "Oatmeal with Berries and Almonds")
• Ingredients list
• Macros: Calories, Protein, Carbs, Fats
• Preparation time

**LUNCH OPTIONS** (Provide 3-4 options)
Same format as breakfast

**DINNER OPTIONS** (Provide 3-4 options)
Same format as breakfast

**SNACKS** (Provide 3-4 options)
Same format as breakfast

**HYDRATION & SUPPLEMENTS**
• Daily water intake recommendation
• Suggested supplements (if any)

` + SectionBanner + `
💡 EXPERT TIPS & MOTIVATION
` + SectionBanner + `

**LIFESTYLE TIPS**
• 3 practical tips for better results

**FORM & POSTURE TIPS**
• 2 critical form tips to prevent injury

**DAILY MOTIVATION**
• 1 powerful motivational quote

Format everything with clear headers, bullet points, and emojis for visual appeal.`

// BuildPlanPrompt renders the generation request for a complete
// profile. Optional fields only appear when they are set. The output
// is deterministic for identical input.
func BuildPlanPrompt(profile UserProfile) string {
	var b strings.Builder

	b.WriteString("You are an expert fitness coach and nutritionist. Create a highly detailed, personalized fitness and nutrition plan.\n\n")
	b.WriteString("USER PROFILE:\n")
	b.WriteString(profileDivider + "\n")
	fmt.Fprintf(&b, "• Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "• Age: %d years | Gender: %s\n", profile.Age, profile.Gender)
	fmt.Fprintf(&b, "• Height: %g cm | Weight: %g kg\n", profile.Height, profile.Weight)
	fmt.Fprintf(&b, "• Fitness Goal: %s\n", profile.Goal)
	fmt.Fprintf(&b, "• Current Fitness Level: %s\n", profile.Level)
	fmt.Fprintf(&b, "• Preferred Workout Location: %s\n", profile.Location)
	fmt.Fprintf(&b, "• Dietary Preference: %s\n", profile.Diet)
	if profile.Medical != "" {
		fmt.Fprintf(&b, "• Medical History: %s\n", profile.Medical)
	}
	if profile.Stress != "" {
		fmt.Fprintf(&b, "• Stress Level: %s\n", profile.Stress)
	}
	b.WriteString("\n")
	b.WriteString(planStructure)

	return b.String()
}

// BuildFreeformPrompt renders a generation request from a free-text
// self-description, for surfaces without a structured form.
func BuildFreeformPrompt(description string) string {
	var b strings.Builder

	b.WriteString("You are an expert fitness coach and nutritionist. Create a highly detailed, personalized fitness and nutrition plan.\n\n")
	b.WriteString("The user describes themselves as follows:\n")
	b.WriteString(profileDivider + "\n")
	b.WriteString(strings.TrimSpace(description) + "\n\n")
	b.WriteString(planStructure)

	return b.String()
}
