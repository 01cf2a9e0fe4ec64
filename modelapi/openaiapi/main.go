package openaiapi

import (
	"context"
	"errors"
	"fitcoachdev/httpmiddleware"
	"fitcoachdev/logger"
	"fitcoachdev/modelapi"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/packages/param"
)

// ErrEmptyText is returned before any network call when the narration
// input is empty or whitespace-only.
var ErrEmptyText = errors.New("no text provided")

type OpenAI struct {
	logger    *logger.LogMiddleware
	semaphore *semaphore.Weighted
	client    *openai.Client
}

type OpenAIConnectProps struct {
	Logger *logger.LogMiddleware
}

func Connect(ctx context.Context, args OpenAIConnectProps) *OpenAI {
	tracer := otel.Tracer("openaiapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))

	OPENAI_SECRET_KEY := os.Getenv("OPENAI_SECRET_KEY")

	span.SetAttributes(attribute.Int("maxWorkers", maxWorkers))
	client := openai.NewClient(
		option.WithAPIKey(OPENAI_SECRET_KEY),
	)

	return &OpenAI{logger: args.Logger, semaphore: sem, client: &client}
}

// GenerateSpeech narrates a plan section and returns mp3 bytes.
// Empty input fails with ErrEmptyText without touching the network.
func (d *OpenAI) GenerateSpeech(ctx context.Context, inputText string) ([]byte, error) {
	tracer := otel.Tracer("openaiapi/GenerateSpeech")
	ctx, span := tracer.Start(ctx, "GenerateSpeech")
	defer span.End()

	if strings.TrimSpace(inputText) == "" {
		span.AddEvent("EmptyInput")
		return nil, ErrEmptyText
	}

	if err := d.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer d.semaphore.Release(1)

	d.logger.Logger(ctx).Info("[OpenAIAPI] Generating speech", zap.Int("inputText.length", len(inputText)))

	res, err := d.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		Model:          openai.SpeechModelGPT4oMiniTTS,
		Input:          inputText,
		Voice:          openai.AudioSpeechNewParamsVoiceAlloy,
		Instructions:   param.Opt[string]{Value: modelapi.NARRATION_STYLE},
	})
	if err != nil {
		span.RecordError(err)
		d.logger.Logger(ctx).Error("[OpenAIAPI] Speech generation failed", zap.Error(err))
		// Surface the upstream status so callers can mirror it.
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("speech generation failed: %w", &httpmiddleware.HttpError{
				StatusCode: apiErr.StatusCode,
				Body:       apiErr.Message,
			})
		}
		return nil, fmt.Errorf("speech generation failed: %w", err)
	}
	defer res.Body.Close()

	audioBytes, err := io.ReadAll(res.Body)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("could not read audio response: %w", err)
	}

	span.SetAttributes(attribute.Int("audio.size", len(audioBytes)))
	d.logger.Logger(ctx).Info("[OpenAIAPI] Successfully generated speech", zap.Int("audioSize", len(audioBytes)))
	return audioBytes, nil
}
