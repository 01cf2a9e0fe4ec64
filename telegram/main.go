package telegram

import (
	"context"
	"fitcoachdev/database/postgres"
	"fitcoachdev/fitness"
	"fitcoachdev/logger"
	"fitcoachdev/modelapi/geminiapi"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Telegram caps messages at 4096 chars; leave headroom for headers.
const messageChunkLimit = 4000

const welcomeText = `👋 Welcome to FitCoach!

Describe yourself in one message (age, fitness level, goal, where you train, how you eat) and I'll build you a full 7-day workout and diet plan.

Commands:
/plan - resend your last generated plan
/reset - forget your saved plan`

type TelegramConnectProps struct {
	Logger *logger.LogMiddleware
	Gemini *geminiapi.Gemini
	DB     *postgres.Database
}

type Telegram struct {
	logger *logger.LogMiddleware
	bot    *tgbotapi.BotAPI
	gemini *geminiapi.Gemini
	db     *postgres.Database
}

func Connect(ctx context.Context, args TelegramConnectProps) *Telegram {
	tracer := otel.Tracer("telegram/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		args.Logger.Logger(ctx).Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		args.Logger.Logger(ctx).Fatal("Failed to create Telegram bot", zap.Error(err))
	}

	debug := os.Getenv("TELEGRAM_DEBUG") == "true"
	bot.Debug = debug

	span.SetAttributes(
		attribute.String("bot.username", bot.Self.UserName),
		attribute.Bool("bot.debug", debug),
	)

	args.Logger.Logger(ctx).Info("Telegram bot connected successfully",
		zap.String("username", bot.Self.UserName),
		zap.Bool("debug", debug),
	)

	return &Telegram{
		logger: args.Logger,
		bot:    bot,
		gemini: args.Gemini,
		db:     args.DB,
	}
}

func (t *Telegram) Listen(ctx context.Context) {
	tracer := otel.Tracer("telegram/Listen")
	ctx, span := tracer.Start(ctx, "Listen")
	defer span.End()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	t.logger.Logger(ctx).Info("Starting Telegram bot message listener")

	for {
		select {
		case <-ctx.Done():
			t.logger.Logger(ctx).Info("Shutting down Telegram bot listener")
			return
		case update := <-updates:
			if update.Message != nil {
				t.handleMessage(ctx, update.Message)
			}
		}
	}
}

// storeKey namespaces Telegram users apart from web client IDs.
func storeKey(userID int64) string {
	return fmt.Sprintf("tg:%d", userID)
}

func (t *Telegram) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	tracer := otel.Tracer("telegram/handleMessage")
	ctx, span := tracer.Start(ctx, "handleMessage")
	defer span.End()

	if message.From == nil || message.Text == "" {
		return
	}

	user := message.From
	span.SetAttributes(
		attribute.Int64("user.id", user.ID),
		attribute.String("user.username", user.UserName),
	)

	t.logger.Logger(ctx).Info("Received message",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.UserName),
	)

	switch message.Command() {
	case "start", "help":
		t.send(ctx, message.Chat.ID, welcomeText)
	case "plan":
		t.resendSavedPlan(ctx, message.Chat.ID, user.ID)
	case "reset":
		t.resetSavedPlan(ctx, message.Chat.ID, user.ID)
	default:
		t.generatePlan(ctx, message.Chat.ID, user.ID, message.Text)
	}
}

func (t *Telegram) generatePlan(ctx context.Context, chatID int64, userID int64, description string) {
	tracer := otel.Tracer("telegram/generatePlan")
	ctx, span := tracer.Start(ctx, "generatePlan")
	defer span.End()

	t.send(ctx, chatID, "🏗️ Building your personalized plan, give me a moment...")

	prompt := fitness.BuildFreeformPrompt(description)
	plan, err := t.gemini.GeneratePlan(ctx, prompt)
	if err != nil {
		t.logger.Logger(ctx).Error("Failed to generate plan", zap.Error(err))
		span.RecordError(err)
		t.send(ctx, chatID, "😔 I could not generate a plan right now. Please try again.")
		return
	}

	if err := t.db.SavePlan(ctx, postgres.SavePlanProps{
		ClientID: storeKey(userID),
		Plan:     plan,
		UserData: fitness.UserProfile{Name: description},
		Saved:    time.Now().UTC(),
	}); err != nil {
		t.logger.Logger(ctx).Error("Failed to persist telegram plan", zap.Error(err))
	}

	t.sendPlan(ctx, chatID, plan)
}

func (t *Telegram) resendSavedPlan(ctx context.Context, chatID int64, userID int64) {
	tracer := otel.Tracer("telegram/resendSavedPlan")
	ctx, span := tracer.Start(ctx, "resendSavedPlan")
	defer span.End()

	saved, err := t.db.GetPlan(ctx, storeKey(userID))
	if err != nil {
		span.RecordError(err)
		t.send(ctx, chatID, "😔 I could not load your saved plan. Please try again.")
		return
	}
	if saved == nil {
		t.send(ctx, chatID, "You have no saved plan yet. Describe yourself and I'll build one!")
		return
	}

	t.sendPlan(ctx, chatID, saved.Plan)
}

func (t *Telegram) resetSavedPlan(ctx context.Context, chatID int64, userID int64) {
	tracer := otel.Tracer("telegram/resetSavedPlan")
	ctx, span := tracer.Start(ctx, "resetSavedPlan")
	defer span.End()

	if err := t.db.DeletePlan(ctx, storeKey(userID)); err != nil {
		span.RecordError(err)
		t.send(ctx, chatID, "😔 I could not reset your plan. Please try again.")
		return
	}
	t.send(ctx, chatID, "🗑️ Saved plan cleared. Send a new description whenever you're ready.")
}

// sendPlan delivers a generated plan as three messages, one per
// section, chunked under the Telegram message limit.
func (t *Telegram) sendPlan(ctx context.Context, chatID int64, plan string) {
	sections := fitness.ExtractSections(plan)

	t.sendChunked(ctx, chatID, "🏋️ WORKOUT PLAN\n"+strings.TrimSpace(sections.Workout))
	t.sendChunked(ctx, chatID, "🥗 DIET PLAN\n"+strings.TrimSpace(sections.Diet))
	t.sendChunked(ctx, chatID, "💪 TIPS & MOTIVATION\n"+strings.TrimSpace(sections.Motivation))
}

func (t *Telegram) sendChunked(ctx context.Context, chatID int64, text string) {
	for _, chunk := range chunkMessage(text, messageChunkLimit) {
		t.send(ctx, chatID, chunk)
	}
}

// chunkMessage splits text into pieces of at most limit bytes,
// preferring newline breaks. A forced cut backs off to a rune boundary
// so no chunk ever carries a split multi-byte character.
func chunkMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if strings.TrimSpace(text) != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func (t *Telegram) send(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Logger(ctx).Error("Failed to send message", zap.Error(err))
	}
}
