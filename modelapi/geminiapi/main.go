package geminiapi

import (
	"context"
	"fitcoachdev/logger"
	"fitcoachdev/modelapi"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"google.golang.org/genai"
)

const (
	GEMINI_MODEL_NAME = "gemini-2.0-flash"
)

type GeminiConnectProps struct {
	Logger *logger.LogMiddleware
}

type Gemini struct {
	logger    *logger.LogMiddleware
	semaphore *semaphore.Weighted
	client    *genai.Client
}

func Connect(ctx context.Context, args GeminiConnectProps) *Gemini {
	tracer := otel.Tracer("geminiapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()
	args.Logger.Logger(ctx).Info("[GeminiAPI] Connecting Gemini API client")

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))

	span.SetAttributes(attribute.Int("maxWorkers", maxWorkers))

	GEMINI_KEY := os.Getenv("GEMINI_SECRET_KEY")

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  GEMINI_KEY,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		args.Logger.Logger(ctx).Error("[GeminiAPI] Could not create Gemini client")
		os.Exit(21)
	}

	return &Gemini{logger: args.Logger, semaphore: sem, client: client}
}

// GeneratePlan submits a plan request prompt and returns the raw plan
// text. Exactly one outbound call is made per invocation; any failure
// or empty response comes back as an error, never a panic.
func (g *Gemini) GeneratePlan(ctx context.Context, userPrompt string) (string, error) {
	tracer := otel.Tracer("geminiapi/GeneratePlan")
	ctx, span := tracer.Start(ctx, "GeneratePlan")
	defer span.End()
	g.logger.Logger(ctx).Info("[GeminiAPI] GeneratePlan called", zap.Int("prompt.length", len(userPrompt)))

	if err := g.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer g.semaphore.Release(1)

	thinkingBudget := int32(0)

	safetySettings := []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdBlockNone,
		},
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdBlockNone,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdBlockNone,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdBlockNone,
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, GEMINI_MODEL_NAME, genai.Text(userPrompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: modelapi.SYSTEM_PROMPT_COACH}}},
		SafetySettings:    safetySettings,
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  &thinkingBudget,
		},
	})
	if err != nil {
		span.RecordError(err)
		g.logger.Logger(ctx).Error("[GeminiAPI] Error generating plan", zap.Error(err))
		return "", fmt.Errorf("plan generation failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		span.AddEvent("EmptyResponse")
		g.logger.Logger(ctx).Warn("[GeminiAPI] Received empty or invalid response")
		return "", fmt.Errorf("plan generation returned an empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}

	plan := b.String()
	if strings.TrimSpace(plan) == "" {
		span.AddEvent("EmptyResponse")
		return "", fmt.Errorf("plan generation returned an empty response")
	}

	span.SetAttributes(attribute.Int("plan.length", len(plan)))
	g.logger.Logger(ctx).Info("[GeminiAPI] Plan generated", zap.Int("plan.length", len(plan)))
	return plan, nil
}
