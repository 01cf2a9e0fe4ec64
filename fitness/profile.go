package fitness

import "strings"

// Allowed values for the enumerated profile fields. These are the
// display strings the web form submits, so they are matched verbatim.
var (
	Genders      = []string{"Male", "Female", "Other"}
	Goals        = []string{"Weight Loss", "Muscle Gain", "Maintenance", "Athletic Performance", "General Fitness"}
	Levels       = []string{"Beginner", "Intermediate", "Advanced"}
	Locations    = []string{"Home", "Gym", "Outdoor", "Hybrid"}
	Diets        = []string{"Vegetarian", "Non-Vegetarian", "Vegan", "Keto", "Paleo", "Mediterranean"}
	StressLevels = []string{"Low", "Moderate", "High"}
)

const (
	MinAge = 10
	MaxAge = 100
)

// UserProfile is the fitness profile collected by the form. Medical
// and Stress are optional free-text / enumerated extras.
type UserProfile struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
	Goal     string  `json:"goal"`
	Level    string  `json:"level"`
	Location string  `json:"location"`
	Diet     string  `json:"diet"`
	Medical  string  `json:"medical,omitempty"`
	Stress   string  `json:"stress,omitempty"`
}

// SavedPlan is the persisted {plan, userData, timestamp} triple.
type SavedPlan struct {
	Plan      string      `json:"plan"`
	UserData  UserProfile `json:"userData"`
	Timestamp string      `json:"timestamp"`
}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

// Validate reports per-field problems. An empty map means the profile
// is complete enough to issue a generation request.
func (p UserProfile) Validate() map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Name is required"
	}
	if p.Age < MinAge || p.Age > MaxAge {
		errs["age"] = "Age must be between 10 and 100"
	}
	if p.Height <= 0 {
		errs["height"] = "Height is required"
	}
	if p.Weight <= 0 {
		errs["weight"] = "Weight is required"
	}
	if !isOneOf(p.Gender, Genders) {
		errs["gender"] = "Unknown gender"
	}
	if !isOneOf(p.Goal, Goals) {
		errs["goal"] = "Unknown fitness goal"
	}
	if !isOneOf(p.Level, Levels) {
		errs["level"] = "Unknown fitness level"
	}
	if !isOneOf(p.Location, Locations) {
		errs["location"] = "Unknown workout location"
	}
	if !isOneOf(p.Diet, Diets) {
		errs["diet"] = "Unknown dietary preference"
	}
	if p.Stress != "" && !isOneOf(p.Stress, StressLevels) {
		errs["stress"] = "Unknown stress level"
	}

	return errs
}
