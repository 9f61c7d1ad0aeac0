package ml

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrNotFitted       = errors.New("ml: not fitted")
	ErrEmptyVocabulary = errors.New("ml: empty vocabulary after pruning; documents may contain only stop words")
)

var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// TfidfVectorizer turns documents into L2-normalised TF-IDF rows. The
// vocabulary and IDF weights are learned once by Fit and frozen afterwards;
// terms unseen at fit time are ignored by Transform.
type TfidfVectorizer struct {
	MaxDF        float64
	UseStopWords bool

	Vocabulary  map[string]int
	Terms       []string
	IDF         []float64
	Fingerprint uint64
}

func NewTfidfVectorizer(maxDF float64) *TfidfVectorizer {
	return &TfidfVectorizer{MaxDF: maxDF, UseStopWords: true}
}

// Tokenize lower-cases doc and returns its tokens of two or more word
// characters, with stop words removed when enabled.
func (t *TfidfVectorizer) Tokenize(doc string) []string {
	raw := tokenRe.FindAllString(strings.ToLower(doc), -1)
	if !t.UseStopWords {
		return raw
	}
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := EnglishStopWords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func (t *TfidfVectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("fit vectorizer: no documents")
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range t.Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	n := len(docs)
	maxDocCount := t.MaxDF * float64(n)
	if t.MaxDF <= 0 {
		maxDocCount = float64(n)
	}

	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count) <= maxDocCount {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return ErrEmptyVocabulary
	}
	sort.Strings(terms)

	t.Terms = terms
	t.Vocabulary = make(map[string]int, len(terms))
	t.IDF = make([]float64, len(terms))
	for i, term := range terms {
		t.Vocabulary[term] = i
		t.IDF[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}
	t.Fingerprint = VocabularyFingerprint(terms)
	return nil
}

func (t *TfidfVectorizer) Transform(docs []string) ([]SparseVector, error) {
	if !t.Fitted() {
		return nil, ErrNotFitted
	}
	rows := make([]SparseVector, len(docs))
	for i, doc := range docs {
		rows[i] = t.transformOne(doc)
	}
	return rows, nil
}

func (t *TfidfVectorizer) FitTransform(docs []string) ([]SparseVector, error) {
	if err := t.Fit(docs); err != nil {
		return nil, err
	}
	return t.Transform(docs)
}

func (t *TfidfVectorizer) transformOne(doc string) SparseVector {
	counts := make(map[int]int)
	for _, tok := range t.Tokenize(doc) {
		if idx, ok := t.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	v := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)
	for _, idx := range v.Indices {
		v.Values = append(v.Values, float64(counts[idx])*t.IDF[idx])
	}
	v.normalize()
	return v
}

func (t *TfidfVectorizer) Fitted() bool { return len(t.Terms) > 0 && len(t.IDF) == len(t.Terms) }

// NumFeatures is the dimension of every row produced by Transform.
func (t *TfidfVectorizer) NumFeatures() int { return len(t.Terms) }

// VocabularyFingerprint hashes the ordered vocabulary so a model can be tied
// to the exact vectorizer it was trained against.
func VocabularyFingerprint(terms []string) uint64 {
	h := xxhash.New()
	for _, term := range terms {
		h.WriteString(term)
		h.Write([]byte{0})
	}
	return h.Sum64()
}
