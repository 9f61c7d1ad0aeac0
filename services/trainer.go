package services

import (
	"context"
	"fmt"
	"log"

	"fakenews-detector/config"
	"fakenews-detector/corpus"
	"fakenews-detector/ml"
	"fakenews-detector/models"
)

// TrainerService runs the one-shot training pipeline: load corpora, shuffle,
// split, fit, score and save the artifact pair.
type TrainerService struct {
	cfg   config.TrainConfig
	extra []corpus.Source
}

func NewTrainerService(cfg config.TrainConfig, extra ...corpus.Source) *TrainerService {
	return &TrainerService{cfg: cfg, extra: extra}
}

func (s *TrainerService) sources() []corpus.Source {
	sources := []corpus.Source{
		corpus.NewCSVSource(s.cfg.FakePath, models.LabelFake),
		corpus.NewCSVSource(s.cfg.TruePath, models.LabelReal),
	}
	return append(sources, s.extra...)
}

// LoadCorpus reads every source and returns the shuffled union. Any source
// error aborts the run.
func (s *TrainerService) LoadCorpus(ctx context.Context) ([]corpus.Document, error) {
	var parts [][]corpus.Document
	for _, src := range s.sources() {
		docs, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		parts = append(parts, docs)
	}
	docs := corpus.Combine(s.cfg.ShuffleSeed, parts...)
	log.Printf("[TRAIN] corpus: %d documents", len(docs))
	return docs, nil
}

// Run trains and saves. Artifacts are written only after training succeeds.
func (s *TrainerService) Run(ctx context.Context) (ml.TrainReport, error) {
	docs, err := s.LoadCorpus(ctx)
	if err != nil {
		return ml.TrainReport{}, err
	}

	texts, labels := corpus.Split(docs)
	artifacts, report, err := ml.Train(texts, labels, ml.TrainOptions{
		TestSize:  s.cfg.TestSize,
		SplitSeed: s.cfg.SplitSeed,
		MaxDF:     s.cfg.MaxDF,
		MaxIter:   s.cfg.MaxIter,
		C:         s.cfg.C,
	})
	if err != nil {
		return report, err
	}

	if err := ml.SaveArtifacts(artifacts, s.cfg.ModelPath, s.cfg.VectorizerPath); err != nil {
		return report, fmt.Errorf("save artifacts: %w", err)
	}
	log.Printf("[TRAIN] ✓ saved %s and %s", s.cfg.ModelPath, s.cfg.VectorizerPath)
	return report, nil
}
