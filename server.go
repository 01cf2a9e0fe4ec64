package main

import (
	"context"
	"fitcoachdev/database/postgres"
	"fitcoachdev/logger"
	"fitcoachdev/modelapi/geminiapi"
	"fitcoachdev/modelapi/openaiapi"
	"fitcoachdev/modelapi/pollinationsapi"
	"fitcoachdev/telegram"
	"fitcoachdev/web"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperdxio/opentelemetry-logs-go/exporters/otlp/otlplogs"
	sdk "github.com/hyperdxio/opentelemetry-logs-go/sdk/logs"
	"github.com/hyperdxio/otel-config-go/otelconfig"
)

const defaultPort = "80"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	godotenv.Load()
	production := os.Getenv("PRODUCTION") != ""

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		log.Fatalf("Error setting up OTel SDK - %e", err)
	}
	defer otelShutdown()
	ctx := context.Background()

	logExporter, _ := otlplogs.NewExporter(ctx)
	loggerProvider := sdk.NewLoggerProvider(sdk.WithBatcher(logExporter))
	defer loggerProvider.Shutdown(ctx)

	LogMiddleware := logger.Connect(logger.LoggerConnectProps{Production: production, LoggerProvider: loggerProvider})

	db := postgres.Connect(ctx, postgres.DatabaseConnectProps{Logger: LogMiddleware})
	geminiClient := geminiapi.Connect(ctx, geminiapi.GeminiConnectProps{Logger: LogMiddleware})
	openaiClient := openaiapi.Connect(ctx, openaiapi.OpenAIConnectProps{Logger: LogMiddleware})
	pollinationsClient := pollinationsapi.Connect(ctx, pollinationsapi.PollinationsConnectProps{Logger: LogMiddleware})

	apiServer := web.Connect(ctx, web.ServerConnectProps{
		Logger:    LogMiddleware,
		Generator: geminiClient,
		Speech:    openaiClient,
		Images:    pollinationsClient,
		Store:     db,
	})

	Logger := LogMiddleware.Logger(ctx)

	// Telegram delivery is optional; the web API runs either way.
	if os.Getenv("TELEGRAM_BOT_TOKEN") != "" {
		bot := telegram.Connect(ctx, telegram.TelegramConnectProps{Logger: LogMiddleware, Gemini: geminiClient, DB: db})
		go bot.Listen(ctx)
	}

	if production {
		Logger.Info("[Web] API server starting in production mode", zap.String("port", port))
	} else {
		Logger.Info("[Web] API server starting in development mode", zap.String("port", port))
	}

	if err := http.ListenAndServe(":"+port, apiServer.Router()); err != nil {
		Logger.Fatal("[Web] API server stopped", zap.Error(err))
	}
}
