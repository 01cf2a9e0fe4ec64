package web

import (
	"context"
	"encoding/json"
	"errors"
	"fitcoachdev/database/postgres"
	"fitcoachdev/fitness"
	"fitcoachdev/httpmiddleware"
	"fitcoachdev/logger"
	"fitcoachdev/modelapi/openaiapi"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PlanGenerator produces raw plan text from a prompt.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, prompt string) (string, error)
}

// SpeechSynthesizer narrates a text block into audio bytes.
type SpeechSynthesizer interface {
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
}

// IllustrationSource builds and fetches illustration image URLs.
type IllustrationSource interface {
	BuildImageURL(ctx context.Context, prompt string, kind string) (string, error)
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)
}

// PlanStore persists the saved plan and theme preference per client.
// *postgres.Database is the production implementation.
type PlanStore interface {
	SavePlan(ctx context.Context, args postgres.SavePlanProps) error
	GetPlan(ctx context.Context, clientID string) (*fitness.SavedPlan, error)
	DeletePlan(ctx context.Context, clientID string) error
	SetTheme(ctx context.Context, clientID string, theme string) error
	GetTheme(ctx context.Context, clientID string) (string, error)
}

type ServerConnectProps struct {
	Logger    *logger.LogMiddleware
	Generator PlanGenerator
	Speech    SpeechSynthesizer
	Images    IllustrationSource
	Store     PlanStore
}

type Server struct {
	logger    *logger.LogMiddleware
	generator PlanGenerator
	speech    SpeechSynthesizer
	images    IllustrationSource
	store     PlanStore
}

func Connect(ctx context.Context, args ServerConnectProps) *Server {
	tracer := otel.Tracer("web/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	args.Logger.Logger(ctx).Info("[Web] API server connected")

	return &Server{
		logger:    args.Logger,
		generator: args.Generator,
		speech:    args.Speech,
		images:    args.Images,
		store:     args.Store,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLoggerMiddleware)

	r.Post("/api/generate-plan", s.handleGeneratePlan)
	r.Post("/api/generate-image", s.handleGenerateImage)
	r.Post("/api/text-to-speech", s.handleTextToSpeech)
	r.Get("/api/illustration", s.handleIllustration)
	r.Get("/api/saved-plan", s.handleGetSavedPlan)
	r.Delete("/api/saved-plan", s.handleDeleteSavedPlan)
	r.Get("/api/plan-sections", s.handlePlanSections)
	r.Get("/api/theme", s.handleGetTheme)
	r.Put("/api/theme", s.handlePutTheme)

	return r
}

func (s *Server) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.logger.Logger(ctx).Info("Request Received", zap.String("url", r.URL.Path), zap.String("method", r.Method))
		next.ServeHTTP(w, r)
		s.logger.Logger(ctx).Info("Request Completed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// clientID identifies the caller for persistence. Header first, query
// fallback; the empty string means the caller opted out of saving.
func clientID(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("clientId")
}

type generatePlanResponse struct {
	Success   bool                `json:"success"`
	Plan      string              `json:"plan"`
	UserData  fitness.UserProfile `json:"userData"`
	Timestamp string              `json:"timestamp"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleGeneratePlan")
	ctx, span := tracer.Start(r.Context(), "handleGeneratePlan")
	defer span.End()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	var profile fitness.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "plan": "", "userData": struct{}{}, "timestamp": timestamp, "error": "invalid request body",
		})
		return
	}

	if errs := profile.Validate(); len(errs) > 0 {
		s.logger.Logger(ctx).Warn("[Web] Rejected invalid profile", zap.Int("field_errors", len(errs)))
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"errors":  errs,
		})
		return
	}

	span.SetAttributes(
		attribute.String("profile.goal", profile.Goal),
		attribute.String("profile.level", profile.Level),
	)

	prompt := fitness.BuildPlanPrompt(profile)
	plan, err := s.generator.GeneratePlan(ctx, prompt)
	if err != nil {
		s.logger.Logger(ctx).Error("[Web] Plan generation failed", zap.Error(err))
		span.RecordError(err)
		// Failure responses carry an empty userData object, not the
		// zero-valued profile.
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "plan": "", "userData": struct{}{}, "timestamp": timestamp, "error": err.Error(),
		})
		return
	}

	if id := clientID(r); id != "" && s.store != nil {
		if err := s.store.SavePlan(ctx, postgres.SavePlanProps{
			ClientID: id,
			Plan:     plan,
			UserData: profile,
			Saved:    time.Now().UTC(),
		}); err != nil {
			// Persistence is a convenience; the generated plan still goes out.
			s.logger.Logger(ctx).Error("[Web] Could not persist generated plan", zap.Error(err), zap.String("client_id", id))
		}
	}

	writeJSON(w, http.StatusOK, generatePlanResponse{
		Success: true, Plan: plan, UserData: profile, Timestamp: timestamp,
	})
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleGenerateImage")
	ctx, span := tracer.Start(r.Context(), "handleGenerateImage")
	defer span.End()

	var req generateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "invalid request body"})
		return
	}

	imageURL, err := s.images.BuildImageURL(ctx, req.Prompt, req.Type)
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "imageUrl": imageURL})
}

type textToSpeechRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleTextToSpeech")
	ctx, span := tracer.Start(r.Context(), "handleTextToSpeech")
	defer span.End()

	var req textToSpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
		return
	}

	audio, err := s.speech.GenerateSpeech(ctx, req.Text)
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[Web] Text-to-speech failed", zap.Error(err))

		if errors.Is(err, openaiapi.ErrEmptyText) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No text provided"})
			return
		}
		var httpErr *httpmiddleware.HttpError
		if errors.As(err, &httpErr) {
			writeJSON(w, httpErr.StatusCode, map[string]string{"error": fmt.Sprintf("upstream error: %s", httpErr.Body)})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error in text-to-speech"})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

func (s *Server) handleIllustration(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleIllustration")
	ctx, span := tracer.Start(r.Context(), "handleIllustration")
	defer span.End()

	prompt := r.URL.Query().Get("prompt")
	kind := r.URL.Query().Get("type")

	imageURL, err := s.images.BuildImageURL(ctx, prompt, kind)
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	imageBytes, err := s.images.FetchImage(ctx, imageURL)
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[Web] Illustration fetch failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(imageBytes)
}

func (s *Server) handleGetSavedPlan(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleGetSavedPlan")
	ctx, span := tracer.Start(r.Context(), "handleGetSavedPlan")
	defer span.End()

	id := clientID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "client id required"})
		return
	}

	saved, err := s.store.GetPlan(ctx, id)
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if saved == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "no saved plan"})
		return
	}

	writeJSON(w, http.StatusOK, generatePlanResponse{
		Success: true, Plan: saved.Plan, UserData: saved.UserData, Timestamp: saved.Timestamp,
	})
}

func (s *Server) handleDeleteSavedPlan(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleDeleteSavedPlan")
	ctx, span := tracer.Start(r.Context(), "handleDeleteSavedPlan")
	defer span.End()

	id := clientID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "client id required"})
		return
	}

	if err := s.store.DeletePlan(ctx, id); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type lineView struct {
	fitness.LineInfo
	Highlights []fitness.HighlightSpan `json:"highlights,omitempty"`
}

type sectionView struct {
	Text  string     `json:"text"`
	Lines []lineView `json:"lines"`
}

func renderSection(text string, kind fitness.SectionKind) sectionView {
	view := sectionView{Text: text}
	for _, line := range strings.Split(text, "\n") {
		info := fitness.ClassifyLine(line, kind)
		if info.Suppressed {
			continue
		}
		view.Lines = append(view.Lines, lineView{
			LineInfo:   info,
			Highlights: fitness.HighlightSpans(info.CleanText),
		})
	}
	return view
}

// handlePlanSections exposes the extraction heuristic behind a narrow
// endpoint: the saved plan split into its three sections, each line
// pre-classified and annotated for rendering.
func (s *Server) handlePlanSections(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handlePlanSections")
	ctx, span := tracer.Start(r.Context(), "handlePlanSections")
	defer span.End()

	id := clientID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "client id required"})
		return
	}

	saved, err := s.store.GetPlan(ctx, id)
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if saved == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "no saved plan"})
		return
	}

	sections := fitness.ExtractSections(saved.Plan)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"workout":    renderSection(sections.Workout, fitness.SectionWorkout),
		"diet":       renderSection(sections.Diet, fitness.SectionDiet),
		"motivation": renderSection(sections.Motivation, fitness.SectionMotivation),
	})
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handleGetTheme")
	ctx, span := tracer.Start(r.Context(), "handleGetTheme")
	defer span.End()

	id := clientID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "client id required"})
		return
	}

	theme, err := s.store.GetTheme(ctx, id)
	if err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}
	if theme == "" {
		theme = "light"
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "theme": theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("web/handlePutTheme")
	ctx, span := tracer.Start(r.Context(), "handlePutTheme")
	defer span.End()

	id := clientID(r)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "client id required"})
		return
	}

	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || (req.Theme != "light" && req.Theme != "dark") {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "theme must be light or dark"})
		return
	}

	if err := s.store.SetTheme(ctx, id, req.Theme); err != nil {
		span.RecordError(err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "theme": req.Theme})
}
