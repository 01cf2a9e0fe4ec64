package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"fitcoachdev/fitness"
	"fitcoachdev/logger"
)

// Requires a reachable Postgres instance; skipped otherwise.
func TestSavedPlanRoundTrip(t *testing.T) {
	if os.Getenv("POSTGRES_DB_HOST") == "" {
		t.Skip("POSTGRES_DB_HOST environment variable not set, skipping test")
	}

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := Connect(ctx, DatabaseConnectProps{Logger: logMiddleware})

	clientID := "test:" + time.Now().UTC().Format("20060102150405.000000000")
	profile := fitness.UserProfile{
		Name:     "Test Client",
		Age:      40,
		Gender:   "Other",
		Height:   170,
		Weight:   70,
		Goal:     "General Fitness",
		Level:    "Beginner",
		Location: "Home",
		Diet:     "Vegan",
	}

	err := db.SavePlan(ctx, SavePlanProps{
		ClientID: clientID,
		Plan:     "📅 7-DAY WORKOUT PLAN\nDay 1: rest",
		UserData: profile,
		Saved:    time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	defer db.DeletePlan(ctx, clientID)

	saved, err := db.GetPlan(ctx, clientID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if saved == nil {
		t.Fatal("expected a saved plan, got nil")
	}
	if saved.UserData != profile {
		t.Errorf("stored profile changed: got %+v, want %+v", saved.UserData, profile)
	}
	if saved.Timestamp == "" {
		t.Error("expected a stored timestamp")
	}

	if err := db.DeletePlan(ctx, clientID); err != nil {
		t.Fatalf("DeletePlan failed: %v", err)
	}
	saved, err = db.GetPlan(ctx, clientID)
	if err != nil {
		t.Fatalf("GetPlan after delete failed: %v", err)
	}
	if saved != nil {
		t.Errorf("expected nil after delete, got %+v", saved)
	}
}

func TestThemePreferenceRoundTrip(t *testing.T) {
	if os.Getenv("POSTGRES_DB_HOST") == "" {
		t.Skip("POSTGRES_DB_HOST environment variable not set, skipping test")
	}

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := Connect(ctx, DatabaseConnectProps{Logger: logMiddleware})

	clientID := "test:" + time.Now().UTC().Format("20060102150405.000000000")

	theme, err := db.GetTheme(ctx, clientID)
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme != "" {
		t.Errorf("expected empty theme for a new client, got %q", theme)
	}

	if err := db.SetTheme(ctx, clientID, "dark"); err != nil {
		t.Fatalf("SetTheme failed: %v", err)
	}

	theme, err = db.GetTheme(ctx, clientID)
	if err != nil {
		t.Fatalf("GetTheme failed: %v", err)
	}
	if theme != "dark" {
		t.Errorf("expected dark theme, got %q", theme)
	}
}
