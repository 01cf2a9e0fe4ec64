package pollinationsapi

import (
	"context"
	"fitcoachdev/httpmiddleware"
	"fitcoachdev/logger"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const imageEndpoint = "https://image.pollinations.ai/prompt/"

// Kinds of illustration requests. Anything else passes through
// without prompt augmentation.
const (
	KindExercise = "exercise"
	KindFood     = "food"
)

type PollinationsConnectProps struct {
	Logger *logger.LogMiddleware
}

type Pollinations struct {
	logger    *logger.LogMiddleware
	semaphore *semaphore.Weighted
}

func Connect(ctx context.Context, args PollinationsConnectProps) *Pollinations {
	tracer := otel.Tracer("pollinationsapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	maxWorkers := 10
	sem := semaphore.NewWeighted(int64(maxWorkers))

	span.SetAttributes(attribute.Int("maxWorkers", maxWorkers))

	return &Pollinations{logger: args.Logger, semaphore: sem}
}

// BuildImageURL encodes an illustration prompt into a directly
// loadable image URL. Exercise and food prompts get fixed photography
// qualifiers so results look like coaching material instead of clip
// art. No network call is made; the endpoint renders on fetch.
func (p *Pollinations) BuildImageURL(ctx context.Context, prompt string, kind string) (string, error) {
	tracer := otel.Tracer("pollinationsapi/BuildImageURL")
	ctx, span := tracer.Start(ctx, "BuildImageURL")
	defer span.End()

	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("no prompt provided")
	}

	enhancedPrompt := prompt
	switch kind {
	case KindExercise:
		enhancedPrompt = fmt.Sprintf("fitness photography %s gym professional", prompt)
	case KindFood:
		enhancedPrompt = fmt.Sprintf("food photography %s appetizing professional", prompt)
	}

	span.SetAttributes(
		attribute.String("image.kind", kind),
		attribute.Int("prompt.length", len(enhancedPrompt)),
	)

	imageURL := imageEndpoint + url.PathEscape(enhancedPrompt) + "?width=1024&height=1024&nologo=true"

	p.logger.Logger(ctx).Info("[PollinationsAPI] Built image URL",
		zap.String("kind", kind),
		zap.Int("url.length", len(imageURL)))

	return imageURL, nil
}

// FetchImage downloads the rendered illustration so callers can relay
// the bytes directly (chat attachments, same-origin proxying).
func (p *Pollinations) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	tracer := otel.Tracer("pollinationsapi/FetchImage")
	ctx, span := tracer.Start(ctx, "FetchImage")
	defer span.End()

	if err := p.semaphore.Acquire(ctx, 1); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to acquire semaphore: %w", err)
	}
	defer p.semaphore.Release(1)

	respBody, err := httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Method: "GET",
		Url:    imageURL,
	})
	if err != nil {
		span.RecordError(err)
		p.logger.Logger(ctx).Error("[PollinationsAPI] Could not fetch image", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}

	span.SetAttributes(attribute.Int("image.size", len(respBody)))
	return respBody, nil
}
