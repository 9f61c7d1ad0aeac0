package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fakenews-detector/config"
	"fakenews-detector/ml"
	"fakenews-detector/models"
)

var fakeTitles = []string{
	"shocking miracle cure", "secret miracle pill", "aliens control banks",
	"miracle water cures", "celebrity clone exposed", "vaccine microchip hoax",
	"miracle diet secret", "secret society cure", "moon landing hoax",
	"shocking weight trick",
}

var realTitles = []string{
	"government budget report", "senate infrastructure bill", "quarterly growth figures",
	"trade agreement signed", "parliament budget debate", "central bank rates",
	"committee spending report", "election schedule confirmed", "senate budget vote",
	"infrastructure report findings",
}

const (
	fakeBody = "doctors hate this shocking secret revealed miracle"
	realBody = "officials announced the report on tuesday government"
)

func trainedArtifacts(t *testing.T) *ml.Artifacts {
	t.Helper()
	var texts []string
	var labels []models.Label
	for i := range fakeTitles {
		texts = append(texts, fakeTitles[i]+" "+fakeBody, realTitles[i]+" "+realBody)
		labels = append(labels, models.LabelFake, models.LabelReal)
	}
	artifacts, _, err := ml.Train(texts, labels, ml.TrainOptions{
		TestSize: 0.2, SplitSeed: 42, MaxDF: 0.7, MaxIter: 200, C: 1.0,
	})
	require.NoError(t, err)
	return artifacts
}

var cleanShape = regexp.MustCompile(`^[a-z ]*$`)

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"Read https://example.com/x now!":  "read  now",
		"Hello, World 2024":                "hello world ",
		"":                                 "",
		"   ":                              "   ",
		"Ünïcödé café":                     "ncd caf",
		"see http://a.b and httpfoo too":   "see  and  too",
		"HTTPS://EXAMPLE.COM shouting":     " shouting",
		"ht-tp-trick word":                 " word",
		"tabs\tand\nnewlines":              "tabsandnewlines",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanText(in), "CleanText(%q)", in)
	}
}

func TestCleanTextProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("aZ hTtTpPs:/.-_!é0123456789\t\nHTTP")
	inputs := []string{"http", "HTTP", "hhttpttp", "h t t p", "ht tp"}
	for i := 0; i < 500; i++ {
		n := r.IntN(40)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[r.IntN(len(alphabet))])
		}
		inputs = append(inputs, b.String())
	}

	for _, in := range inputs {
		once := CleanText(in)
		assert.Regexp(t, cleanShape, once, "input %q", in)
		assert.Equal(t, once, CleanText(once), "not idempotent for %q", in)
	}
}

func TestDetectBot(t *testing.T) {
	v := DetectBot("HELLO WORLD THIS IS ALL CAPS")
	assert.True(t, v.LikelyBot)
	assert.True(t, v.AllCaps)
	assert.False(t, v.ShortText)
	assert.Equal(t, botReason, v.Reason)

	v = DetectBot("ok")
	assert.True(t, v.LikelyBot)
	assert.True(t, v.ShortText)
	assert.False(t, v.AllCaps)

	v = DetectBot("This is a normal human sentence with variety.")
	assert.False(t, v.LikelyBot)
	assert.Equal(t, humanReason, v.Reason)

	// no letters at all counts as all-caps
	v = DetectBot("123 456 789 000 111 !!!")
	assert.True(t, v.AllCaps)
	assert.True(t, v.LikelyBot)

	assert.Equal(t, DetectBot("same input"), DetectBot("same input"))
}

func TestResolveInputUploadWins(t *testing.T) {
	upload, err := NewUpload("news.txt", []byte("from the file"))
	require.NoError(t, err)

	text, err := ResolveInput("typed text here", upload)
	require.NoError(t, err)
	assert.Equal(t, "from the file", text)
}

func TestResolveInputTyped(t *testing.T) {
	text, err := ResolveInput("typed text here", nil)
	require.NoError(t, err)
	assert.Equal(t, "typed text here", text)
}

func TestResolveInputCSVFirstCell(t *testing.T) {
	data := "headline,source,score\n" +
		"Breaking news text,wire,1\n" +
		"Ignored second row,wire,2\n"
	upload, err := NewUpload("batch.CSV", []byte(data))
	require.NoError(t, err)
	require.IsType(t, &TabularUpload{}, upload)

	text, err := ResolveInput("typed", upload)
	require.NoError(t, err)
	assert.Equal(t, "Breaking news text", text)
}

func TestResolveInputEmpty(t *testing.T) {
	_, err := ResolveInput("   ", nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	upload, err := NewUpload("blank.txt", []byte(" \n\t "))
	require.NoError(t, err)
	_, err = ResolveInput("real typed text", upload)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestResolveInputUploadErrors(t *testing.T) {
	_, err := NewUpload("doc.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedUpload)

	upload, err := NewUpload("bad.txt", []byte{0xff, 0xfe, 'a'})
	require.NoError(t, err)
	_, err = ResolveInput("", upload)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	upload, err = NewUpload("header-only.csv", []byte("title,text\n"))
	require.NoError(t, err)
	_, err = ResolveInput("", upload)
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestTabularPreview(t *testing.T) {
	var b strings.Builder
	b.WriteString("\ufefftext,n\n")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&b, "row %d,%d\n", i, i)
	}
	upload := &TabularUpload{Filename: "x.csv", Content: []byte(b.String())}

	preview, err := upload.Preview()
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "n"}, preview.Header)
	assert.Len(t, preview.Rows, 5)
	assert.Equal(t, []string{"row 4", "4"}, preview.Rows[4])
}

func TestAnalyzerService(t *testing.T) {
	svc, err := NewAnalyzerService(trainedArtifacts(t))
	require.NoError(t, err)

	res, err := svc.Analyze("SHOCKING miracle cure, doctors hate this secret! https://spam.example")
	require.NoError(t, err)
	assert.Equal(t, models.LabelFake, res.Label)
	assert.GreaterOrEqual(t, res.Confidence, 50.0)
	assert.LessOrEqual(t, res.Confidence, 100.0)
	assert.Equal(t, Progress(res.Confidence), res.Progress)
	assert.False(t, res.Bot.LikelyBot)
	assert.NotEmpty(t, res.RequestID)

	res, err = svc.Analyze("Officials announced the government budget report on Tuesday")
	require.NoError(t, err)
	assert.Equal(t, models.LabelReal, res.Label)

	// nothing in the vocabulary survives cleaning; a label is still produced
	res, err = svc.Analyze("!!! ??? 123")
	require.NoError(t, err)
	assert.Contains(t, []models.Label{models.LabelFake, models.LabelReal}, res.Label)
	assert.True(t, res.Bot.LikelyBot)

	_, err = svc.Analyze("   ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	stats := svc.Stats()
	assert.Equal(t, int64(3), stats.TotalRequests)
	assert.Equal(t, int64(3), stats.FakeCount+stats.RealCount)
	assert.Equal(t, int64(1), stats.EmptyInputs)
	assert.Equal(t, svc.NumFeatures(), stats.Features)
}

func TestNewAnalyzerServiceRejectsMismatch(t *testing.T) {
	artifacts := trainedArtifacts(t)
	artifacts.Model.Fingerprint++
	_, err := NewAnalyzerService(artifacts)
	assert.ErrorIs(t, err, ml.ErrArtifactMismatch)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(0))
	assert.Equal(t, 73, Progress(73.99))
	assert.Equal(t, 100, Progress(100))
	assert.Equal(t, 100, Progress(100.5))
	assert.Equal(t, 0, Progress(-3))
}

type memCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	err    error
}

func (c *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func TestRateLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewRateLimiter(&memCounter{counts: map[string]int64{}}, 2)

	ok, info := l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
	assert.Equal(t, 1, info.Remaining)
	ok, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
	ok, info = l.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)
	assert.True(t, info.Throttled)
	assert.Equal(t, 0, info.Remaining)

	ok, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, ok)
}

func TestRateLimiterDisabledAndFailOpen(t *testing.T) {
	var disabled *RateLimiter = NewRateLimiter(nil, 10)
	assert.Nil(t, disabled)
	ok, _ := disabled.Allow(context.Background(), "x")
	assert.True(t, ok)

	broken := NewRateLimiter(&memCounter{err: errors.New("redis down")}, 1)
	ok, _ = broken.Allow(context.Background(), "x")
	assert.True(t, ok)
}

func writeCorpus(t *testing.T, dir, name string, titles []string, body string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("title,text,subject\n")
	for _, title := range titles {
		fmt.Fprintf(&b, "%s,%s,news\n", title, body)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestTrainerServiceRun(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultTrainConfig()
	cfg.FakePath = writeCorpus(t, dir, "Fake.csv", fakeTitles, fakeBody)
	cfg.TruePath = writeCorpus(t, dir, "True.csv", realTitles, realBody)
	cfg.ModelPath = filepath.Join(dir, "model.gob")
	cfg.VectorizerPath = filepath.Join(dir, "vectorizer.gob")
	cfg.MaxIter = 200

	report, err := NewTrainerService(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, report.TrainRows)
	assert.Equal(t, 4, report.TestRows)
	assert.GreaterOrEqual(t, report.Accuracy, 0.0)
	assert.LessOrEqual(t, report.Accuracy, 1.0)

	svc, err := LoadAnalyzerService(cfg.ModelPath, cfg.VectorizerPath)
	require.NoError(t, err)
	res, err := svc.Analyze("shocking miracle secret revealed by doctors")
	require.NoError(t, err)
	assert.Equal(t, models.LabelFake, res.Label)
}

func TestTrainerServiceDeterministicCorpus(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultTrainConfig()
	cfg.FakePath = writeCorpus(t, dir, "Fake.csv", fakeTitles, fakeBody)
	cfg.TruePath = writeCorpus(t, dir, "True.csv", realTitles, realBody)

	a, err := NewTrainerService(cfg).LoadCorpus(context.Background())
	require.NoError(t, err)
	b, err := NewTrainerService(cfg).LoadCorpus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 20)
}

func TestTrainerServiceMissingColumnWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultTrainConfig()
	cfg.FakePath = writeCorpus(t, dir, "Fake.csv", fakeTitles, fakeBody)
	cfg.TruePath = filepath.Join(dir, "True.csv")
	require.NoError(t, os.WriteFile(cfg.TruePath, []byte("headline,body\na,b\n"), 0o644))
	cfg.ModelPath = filepath.Join(dir, "model.gob")
	cfg.VectorizerPath = filepath.Join(dir, "vectorizer.gob")

	_, err := NewTrainerService(cfg).Run(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, cfg.ModelPath)
	assert.NoFileExists(t, cfg.VectorizerPath)
}
