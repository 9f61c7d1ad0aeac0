package services

import (
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"fakenews-detector/ml"
	"fakenews-detector/models"
)

// AnalyzerService scores documents against the artifact pair loaded at
// startup. The artifacts are never mutated, so one service is shared by all
// requests.
type AnalyzerService struct {
	artifacts *ml.Artifacts
	IsPaused  atomic.Bool

	total    atomic.Int64
	fake     atomic.Int64
	real     atomic.Int64
	bots     atomic.Int64
	warnings atomic.Int64
}

func NewAnalyzerService(artifacts *ml.Artifacts) (*AnalyzerService, error) {
	if err := artifacts.Validate(); err != nil {
		return nil, err
	}
	return &AnalyzerService{artifacts: artifacts}, nil
}

// LoadAnalyzerService reads and validates both artifact files.
func LoadAnalyzerService(modelPath, vectorizerPath string) (*AnalyzerService, error) {
	artifacts, err := ml.LoadArtifacts(modelPath, vectorizerPath)
	if err != nil {
		return nil, err
	}
	return NewAnalyzerService(artifacts)
}

func (s *AnalyzerService) NumFeatures() int { return s.artifacts.Vectorizer.NumFeatures() }

// Analyze runs one full, stateless pass: clean, vectorize, classify, then the
// bot heuristic on the raw text.
func (s *AnalyzerService) Analyze(text string) (*models.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		s.warnings.Add(1)
		return nil, ErrEmptyInput
	}

	start := time.Now()
	requestID := uuid.NewString()
	report := func(format string, args ...any) {
		log.Printf("[ANALYZER] %s "+format, append([]any{requestID[:8]}, args...)...)
	}
	report("📝 received text (%d chars)", len(text))

	clean := CleanText(text)
	rows, err := s.artifacts.Vectorizer.Transform([]string{clean})
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	labels, err := s.artifacts.Model.Predict(rows)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	proba, err := s.artifacts.Model.PredictProba(rows)
	if err != nil {
		return nil, fmt.Errorf("predict proba: %w", err)
	}

	confidence := math.Max(proba[0][0], proba[0][1]) * 100
	result := &models.AnalysisResult{
		RequestID:  requestID,
		Label:      labels[0],
		Confidence: confidence,
		Progress:   Progress(confidence),
		Bot:        DetectBot(text),
		WordCount:  len(strings.Fields(text)),
	}

	s.total.Add(1)
	if result.Label.IsFake() {
		s.fake.Add(1)
	} else {
		s.real.Add(1)
	}
	if result.Bot.LikelyBot {
		s.bots.Add(1)
	}

	report("✓ %s (%.2f%%) bot=%t, %d known terms, %v",
		result.Label, result.Confidence, result.Bot.LikelyBot, rows[0].Len(), time.Since(start))
	return result, nil
}

// Progress floors a confidence percentage into the [0, 100] bar range.
func Progress(confidence float64) int {
	if math.IsNaN(confidence) {
		return 0
	}
	p := int(math.Floor(confidence))
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

type AnalyzerStats struct {
	TotalRequests int64 `json:"total_requests"`
	FakeCount     int64 `json:"fake_count"`
	RealCount     int64 `json:"real_count"`
	BotCount      int64 `json:"bot_count"`
	EmptyInputs   int64 `json:"empty_inputs"`
	Features      int   `json:"features"`
	IsPaused      bool  `json:"is_paused"`
}

func (s *AnalyzerService) Stats() AnalyzerStats {
	return AnalyzerStats{
		TotalRequests: s.total.Load(),
		FakeCount:     s.fake.Load(),
		RealCount:     s.real.Load(),
		BotCount:      s.bots.Load(),
		EmptyInputs:   s.warnings.Load(),
		Features:      s.NumFeatures(),
		IsPaused:      s.IsPaused.Load(),
	}
}

// RecordEmptyInput counts a warning raised before Analyze was reached.
func (s *AnalyzerService) RecordEmptyInput() { s.warnings.Add(1) }
