package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fitcoachdev/fitness"
	"time"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) EnsureSchema(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS saved_plans (
			client_id  TEXT PRIMARY KEY,
			plan       TEXT NOT NULL,
			user_data  TEXT NOT NULL,
			saved_at   TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS theme_preferences (
			client_id  TEXT PRIMARY KEY,
			theme      TEXT NOT NULL
		)`)
	return err
}

type UpsertPlanParams struct {
	ClientID string
	Plan     string
	UserData fitness.UserProfile
	Saved    time.Time
}

func (q *Queries) UpsertPlan(ctx context.Context, args UpsertPlanParams) error {
	userData, err := json.Marshal(args.UserData)
	if err != nil {
		return err
	}

	_, err = q.db.ExecContext(ctx, `
		INSERT INTO saved_plans (client_id, plan, user_data, saved_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id)
		DO UPDATE SET plan = $2, user_data = $3, saved_at = $4`,
		args.ClientID, args.Plan, string(userData), args.Saved)
	return err
}

// SelectPlan returns nil (not an error) when no plan is stored or the
// stored profile fails to parse.
func (q *Queries) SelectPlan(ctx context.Context, clientID string) (*fitness.SavedPlan, error) {
	var plan, userData string
	var savedAt time.Time

	row := q.db.QueryRowContext(ctx, `
		SELECT plan, user_data, saved_at FROM saved_plans WHERE client_id = $1`,
		clientID)
	if err := row.Scan(&plan, &userData, &savedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var profile fitness.UserProfile
	if err := json.Unmarshal([]byte(userData), &profile); err != nil {
		return nil, nil
	}

	return &fitness.SavedPlan{
		Plan:      plan,
		UserData:  profile,
		Timestamp: savedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (q *Queries) DeletePlanRow(ctx context.Context, clientID string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM saved_plans WHERE client_id = $1`, clientID)
	return err
}

func (q *Queries) UpsertTheme(ctx context.Context, clientID string, theme string) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO theme_preferences (client_id, theme)
		VALUES ($1, $2)
		ON CONFLICT (client_id) DO UPDATE SET theme = $2`,
		clientID, theme)
	return err
}

// SelectTheme returns the empty string when no preference is stored.
func (q *Queries) SelectTheme(ctx context.Context, clientID string) (string, error) {
	var theme string
	row := q.db.QueryRowContext(ctx, `
		SELECT theme FROM theme_preferences WHERE client_id = $1`, clientID)
	if err := row.Scan(&theme); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return theme, nil
}
