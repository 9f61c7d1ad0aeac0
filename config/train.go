package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TrainConfig holds the trainer inputs, outputs and hyper-parameters.
type TrainConfig struct {
	FakePath       string  `yaml:"fake_path"`
	TruePath       string  `yaml:"true_path"`
	ModelPath      string  `yaml:"model_path"`
	VectorizerPath string  `yaml:"vectorizer_path"`
	CorpusTable    string  `yaml:"corpus_table"`
	TestSize       float64 `yaml:"test_size"`
	SplitSeed      uint64  `yaml:"split_seed"`
	ShuffleSeed    uint64  `yaml:"shuffle_seed"`
	MaxDF          float64 `yaml:"max_df"`
	MaxIter        int     `yaml:"max_iter"`
	C              float64 `yaml:"c"`
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		FakePath:       "data/Fake.csv",
		TruePath:       "data/True.csv",
		ModelPath:      "model.gob",
		VectorizerPath: "vectorizer.gob",
		CorpusTable:    "labeled_news",
		TestSize:       0.2,
		SplitSeed:      42,
		ShuffleSeed:    42,
		MaxDF:          0.7,
		MaxIter:        1000,
		C:              1.0,
	}
}

// LoadTrainConfig reads YAML over the defaults. Keys missing from the file keep
// their default value; an empty path returns the defaults unchanged.
func LoadTrainConfig(path string) (TrainConfig, error) {
	cfg := DefaultTrainConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read train config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse train config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c TrainConfig) Validate() error {
	switch {
	case c.FakePath == "" || c.TruePath == "":
		return fmt.Errorf("fake_path and true_path are required")
	case c.ModelPath == "" || c.VectorizerPath == "":
		return fmt.Errorf("model_path and vectorizer_path are required")
	case c.TestSize <= 0 || c.TestSize >= 1:
		return fmt.Errorf("test_size must be in (0, 1), got %v", c.TestSize)
	case c.MaxDF <= 0 || c.MaxDF > 1:
		return fmt.Errorf("max_df must be in (0, 1], got %v", c.MaxDF)
	case c.MaxIter <= 0:
		return fmt.Errorf("max_iter must be positive, got %d", c.MaxIter)
	case c.C <= 0:
		return fmt.Errorf("c must be positive, got %v", c.C)
	}
	return nil
}
