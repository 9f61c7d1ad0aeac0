package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakenews-detector/services"
)

func writeCSV(t *testing.T, path, body string, rows int) {
	t.Helper()
	var b strings.Builder
	b.WriteString("title,text,subject,date\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "headline %d,\"%s item%d\",news,2017\n", i, body, i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestTrainerCommand(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "Fake.csv")
	real := filepath.Join(dir, "True.csv")
	writeCSV(t, fake, "shocking miracle cure secret doctors hate", 12)
	writeCSV(t, real, "officials announced government budget report", 12)
	model := filepath.Join(dir, "model.gob")
	vectorizer := filepath.Join(dir, "vectorizer.gob")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--db=false",
		"--fake", fake,
		"--true", real,
		"--model", model,
		"--vectorizer", vectorizer,
	})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Model trained with accuracy: "))
	assert.Equal(t, "model and vectorizer saved", lines[1])

	svc, err := services.LoadAnalyzerService(model, vectorizer)
	require.NoError(t, err)
	result, err := svc.Analyze("Shocking miracle cure that doctors hate")
	require.NoError(t, err)
	assert.True(t, result.Label.IsFake())
}

func TestTrainerCommandMissingCorpus(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.gob")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--db=false",
		"--fake", filepath.Join(dir, "missing.csv"),
		"--true", filepath.Join(dir, "missing.csv"),
		"--model", model,
		"--vectorizer", filepath.Join(dir, "vectorizer.gob"),
	})
	assert.Error(t, cmd.Execute())
	assert.NoFileExists(t, model)
}

func TestResolveConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "train.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("fake_path: a.csv\ntrue_path: b.csv\ntest_size: 0.3\n"), 0o644))

	flags := &trainFlags{}
	cmd := newRootCmd()
	cmd.Flags().Set("config", cfgPath)
	cmd.Flags().Set("seed", "7")
	flags.configPath = cfgPath
	flags.seed = 7

	cfg, err := resolveConfig(cmd, flags)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", cfg.FakePath)
	assert.Equal(t, 0.3, cfg.TestSize)
	assert.Equal(t, uint64(7), cfg.SplitSeed)
	assert.Equal(t, uint64(7), cfg.ShuffleSeed)
	assert.Equal(t, "model.gob", cfg.ModelPath)
}
