package openaiapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"fitcoachdev/httpmiddleware"
	"fitcoachdev/logger"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"golang.org/x/sync/semaphore"
)

func TestGenerateSpeechRejectsEmptyInput(t *testing.T) {
	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx := context.Background()
	client := Connect(ctx, OpenAIConnectProps{Logger: logMiddleware})

	// No API key is needed: empty input must fail before any request
	// is issued.
	for _, input := range []string{"", "   ", "\n\t"} {
		audio, err := client.GenerateSpeech(ctx, input)
		if !errors.Is(err, ErrEmptyText) {
			t.Errorf("input %q: expected ErrEmptyText, got %v", input, err)
		}
		if audio != nil {
			t.Errorf("input %q: expected no audio bytes", input)
		}
	}
}

func TestGenerateSpeechMirrorsUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exhausted","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})
	sdkClient := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	client := &OpenAI{logger: logMiddleware, semaphore: semaphore.NewWeighted(1), client: &sdkClient}

	_, err := client.GenerateSpeech(context.Background(), "Day 1: Upper Body")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}

	var httpErr *httpmiddleware.HttpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *httpmiddleware.HttpError in chain, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", httpErr.StatusCode)
	}
}

func TestGenerateSpeech(t *testing.T) {
	apiKey := os.Getenv("OPENAI_SECRET_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_SECRET_KEY environment variable not set, skipping test")
	}

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := Connect(ctx, OpenAIConnectProps{Logger: logMiddleware})

	audio, err := client.GenerateSpeech(ctx, "Welcome to your personalized workout plan.")
	if err != nil {
		t.Fatalf("GenerateSpeech failed: %v", err)
	}
	if len(audio) == 0 {
		t.Error("Expected non-empty audio bytes, got none")
	}

	t.Logf("Received %d bytes of audio", len(audio))
}
