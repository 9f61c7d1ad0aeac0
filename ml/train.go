package ml

import (
	"fmt"
	"log"

	"fakenews-detector/models"
)

type TrainOptions struct {
	TestSize  float64
	SplitSeed uint64
	MaxDF     float64
	MaxIter   int
	C         float64
}

type TrainReport struct {
	TrainRows  int
	TestRows   int
	Features   int
	Iterations int
	Converged  bool
	Accuracy   float64
}

type example struct {
	text  string
	label models.Label
}

// Train splits the labeled texts, fits the vectorizer and the model on the
// train partition only and scores the model on the held-out partition.
func Train(texts []string, labels []models.Label, opts TrainOptions) (*Artifacts, TrainReport, error) {
	var report TrainReport
	if len(texts) != len(labels) {
		return nil, report, fmt.Errorf("train: %d texts but %d labels", len(texts), len(labels))
	}

	examples := make([]example, len(texts))
	for i := range texts {
		examples[i] = example{text: texts[i], label: labels[i]}
	}
	train, test, err := TrainTestSplit(examples, opts.TestSize, opts.SplitSeed)
	if err != nil {
		return nil, report, err
	}
	trainX, trainY := unzip(train)
	testX, testY := unzip(test)
	log.Printf("[TRAIN] split: %d train / %d test", len(train), len(test))

	vectorizer := NewTfidfVectorizer(opts.MaxDF)
	trainVec, err := vectorizer.FitTransform(trainX)
	if err != nil {
		return nil, report, fmt.Errorf("train vectorizer: %w", err)
	}
	testVec, err := vectorizer.Transform(testX)
	if err != nil {
		return nil, report, err
	}
	log.Printf("[TRAIN] vocabulary: %d terms", vectorizer.NumFeatures())

	model := NewLogisticRegression(opts.C, opts.MaxIter)
	if err := model.Fit(trainVec, trainY, vectorizer.NumFeatures()); err != nil {
		return nil, report, err
	}
	model.Fingerprint = vectorizer.Fingerprint

	accuracy, err := model.Score(testVec, testY)
	if err != nil {
		return nil, report, err
	}

	report = TrainReport{
		TrainRows:  len(train),
		TestRows:   len(test),
		Features:   vectorizer.NumFeatures(),
		Iterations: model.Iterations,
		Converged:  model.Converged,
		Accuracy:   accuracy,
	}
	return &Artifacts{Model: model, Vectorizer: vectorizer}, report, nil
}

func unzip(examples []example) ([]string, []models.Label) {
	texts := make([]string, len(examples))
	labels := make([]models.Label, len(examples))
	for i, ex := range examples {
		texts[i] = ex.text
		labels[i] = ex.label
	}
	return texts, labels
}
