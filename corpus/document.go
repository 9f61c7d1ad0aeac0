package corpus

import (
	"context"

	"fakenews-detector/ml"
	"fakenews-detector/models"
)

// Document is one labeled news item: title and body joined by a single space.
type Document struct {
	Content string
	Label   models.Label
}

func NewDocument(title, text string, label models.Label) Document {
	return Document{Content: title + " " + text, Label: label}
}

// Source yields labeled documents for training.
type Source interface {
	Load(ctx context.Context) ([]Document, error)
}

// Combine concatenates the parts in order and shuffles the union with seed, so
// neither partition of a later split is label-ordered.
func Combine(seed uint64, parts ...[]Document) []Document {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	docs := make([]Document, 0, total)
	for _, p := range parts {
		docs = append(docs, p...)
	}
	ml.Shuffle(docs, seed)
	return docs
}

// Split separates contents from labels for the vectorizer and the model.
func Split(docs []Document) ([]string, []models.Label) {
	texts := make([]string, len(docs))
	labels := make([]models.Label, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
		labels[i] = d.Label
	}
	return texts, labels
}
