package postgres

import (
	"context"
	"database/sql"
	"fitcoachdev/fitness"
	"fitcoachdev/logger"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type DatabaseConnectProps struct {
	Logger *logger.LogMiddleware
}

type Database struct {
	Queries
	logger *logger.LogMiddleware
}

func Connect(ctx context.Context, args DatabaseConnectProps) *Database {
	tracer := otel.Tracer("postgres/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	connectRetries := 5
	var conn *sql.DB
	var err error
	var connStr string

	logger := args.Logger.Logger(ctx)

	for connectRetries > 0 {
		conn, err, connStr = getConnection(ctx)
		if err == nil {
			logger.Info("[Postgres] Database client started")
			break
		}
		connectRetries -= 1
		sleepTime := 5
		logger.Error(
			"[Postgres] Could not connect to Postgres. Retrying after sleeping.",
			zap.Error(err),
			zap.Int("Retries Left", connectRetries),
			zap.Int("Sleep Time", sleepTime),
			zap.String("Connection String", connStr))
		time.Sleep(time.Second * time.Duration(sleepTime))
	}

	if connectRetries <= 0 {
		logger.Error("[Postgres] Failed to Connect to Postgres")
		span.RecordError(fmt.Errorf("failed to connect to Postgres"))
		os.Exit(1)
	}

	queries := New(conn)
	db := &Database{Queries: *queries, logger: args.Logger}

	if err := db.Queries.EnsureSchema(ctx); err != nil {
		logger.Error("[Postgres] Could not ensure schema", zap.Error(err))
		span.RecordError(err)
		os.Exit(1)
	}

	return db
}

func getConnection(ctx context.Context) (*sql.DB, error, string) {
	tracer := otel.Tracer("postgres/getConnection")
	_, span := tracer.Start(ctx, "getConnection")
	defer span.End()

	host := os.Getenv("POSTGRES_DB_HOST")
	port := os.Getenv("POSTGRES_DB_PORT")
	user := os.Getenv("POSTGRES_DB_USER")
	password := os.Getenv("POSTGRES_DB_PASS")
	dbname := os.Getenv("POSTGRES_DB_NAME")

	sslMode := "disable"

	postgresqlDbInfo := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslMode,
	)

	db, err := sql.Open("postgres", postgresqlDbInfo)
	if err != nil {
		span.RecordError(err)
		return nil, err, postgresqlDbInfo
	}
	err = db.Ping()
	if err != nil {
		span.RecordError(err)
		return nil, err, postgresqlDbInfo
	}

	return db, nil, ""
}

type SavePlanProps struct {
	ClientID string
	Plan     string
	UserData fitness.UserProfile
	Saved    time.Time
}

// SavePlan upserts the client's saved plan; each client keeps exactly
// one stored plan, replaced on every save.
func (d *Database) SavePlan(ctx context.Context, args SavePlanProps) error {
	tracer := otel.Tracer("postgres/SavePlan")
	ctx, span := tracer.Start(ctx, "SavePlan")
	defer span.End()

	err := d.Queries.UpsertPlan(ctx, UpsertPlanParams{
		ClientID: args.ClientID,
		Plan:     args.Plan,
		UserData: args.UserData,
		Saved:    args.Saved,
	})
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not save plan",
			zap.Error(err),
			zap.String("client_id", args.ClientID),
		)
		span.RecordError(err)
		return fmt.Errorf("could not save plan")
	}

	return nil
}

// GetPlan loads the client's saved plan. A missing row, or a stored
// row whose profile no longer parses, both come back as nil (fail
// open, never fatal).
func (d *Database) GetPlan(ctx context.Context, clientID string) (*fitness.SavedPlan, error) {
	tracer := otel.Tracer("postgres/GetPlan")
	ctx, span := tracer.Start(ctx, "GetPlan")
	defer span.End()

	saved, err := d.Queries.SelectPlan(ctx, clientID)
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not load saved plan",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		span.RecordError(err)
		return nil, fmt.Errorf("could not load saved plan")
	}

	return saved, nil
}

func (d *Database) DeletePlan(ctx context.Context, clientID string) error {
	tracer := otel.Tracer("postgres/DeletePlan")
	ctx, span := tracer.Start(ctx, "DeletePlan")
	defer span.End()

	if err := d.Queries.DeletePlanRow(ctx, clientID); err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not delete saved plan",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		span.RecordError(err)
		return fmt.Errorf("could not delete saved plan")
	}

	return nil
}

func (d *Database) SetTheme(ctx context.Context, clientID string, theme string) error {
	tracer := otel.Tracer("postgres/SetTheme")
	ctx, span := tracer.Start(ctx, "SetTheme")
	defer span.End()

	if err := d.Queries.UpsertTheme(ctx, clientID, theme); err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not save theme preference",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		span.RecordError(err)
		return fmt.Errorf("could not save theme preference")
	}

	return nil
}

func (d *Database) GetTheme(ctx context.Context, clientID string) (string, error) {
	tracer := otel.Tracer("postgres/GetTheme")
	ctx, span := tracer.Start(ctx, "GetTheme")
	defer span.End()

	theme, err := d.Queries.SelectTheme(ctx, clientID)
	if err != nil {
		d.logger.Logger(ctx).Error(
			"[Postgres] Could not load theme preference",
			zap.Error(err),
			zap.String("client_id", clientID),
		)
		span.RecordError(err)
		return "", fmt.Errorf("could not load theme preference")
	}

	return theme, nil
}
