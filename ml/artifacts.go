package ml

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrArtifactMismatch = errors.New("ml: model and vectorizer do not belong together")

// Artifacts is the classifier and the vectorizer it was trained on. They are
// only ever saved and loaded as a pair.
type Artifacts struct {
	Model      *LogisticRegression
	Vectorizer *TfidfVectorizer
}

// Validate checks that the model was trained on this vectorizer's vocabulary.
func (a *Artifacts) Validate() error {
	if a.Model == nil || a.Vectorizer == nil {
		return fmt.Errorf("%w: missing artifact", ErrArtifactMismatch)
	}
	if !a.Model.Fitted() || !a.Vectorizer.Fitted() {
		return ErrNotFitted
	}
	if a.Model.NumFeatures != a.Vectorizer.NumFeatures() {
		return fmt.Errorf("%w: model expects %d features, vectorizer has %d",
			ErrArtifactMismatch, a.Model.NumFeatures, a.Vectorizer.NumFeatures())
	}
	if a.Model.Fingerprint != a.Vectorizer.Fingerprint {
		return fmt.Errorf("%w: vocabulary fingerprint %x != %x",
			ErrArtifactMismatch, a.Model.Fingerprint, a.Vectorizer.Fingerprint)
	}
	return nil
}

// SaveArtifacts writes both files through temporary siblings and renames them
// only after both encodes succeed.
func SaveArtifacts(a *Artifacts, modelPath, vectorizerPath string) error {
	if err := a.Validate(); err != nil {
		return err
	}

	modelTmp, err := writeGobTemp(modelPath, a.Model)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	vecTmp, err := writeGobTemp(vectorizerPath, a.Vectorizer)
	if err != nil {
		os.Remove(modelTmp)
		return fmt.Errorf("save vectorizer: %w", err)
	}

	if err := os.Rename(modelTmp, modelPath); err != nil {
		os.Remove(modelTmp)
		os.Remove(vecTmp)
		return fmt.Errorf("save model: %w", err)
	}
	if err := os.Rename(vecTmp, vectorizerPath); err != nil {
		os.Remove(vecTmp)
		return fmt.Errorf("save vectorizer: %w", err)
	}
	return nil
}

func LoadArtifacts(modelPath, vectorizerPath string) (*Artifacts, error) {
	a := &Artifacts{
		Model:      &LogisticRegression{},
		Vectorizer: &TfidfVectorizer{},
	}
	if err := readGob(modelPath, a.Model); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if err := readGob(vectorizerPath, a.Vectorizer); err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func writeGobTemp(path string, v any) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
