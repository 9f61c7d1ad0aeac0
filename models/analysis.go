package models

import "fmt"

// Label is the authenticity class predicted for a news document.
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// ParseLabel accepts the two known labels, case-sensitively, the way they are
// written into the training corpora.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case LabelFake, LabelReal:
		return Label(s), nil
	}
	return "", fmt.Errorf("unknown label %q", s)
}

func (l Label) IsFake() bool { return l == LabelFake }

// BotVerdict is the outcome of the bot-phrasing heuristic.
type BotVerdict struct {
	LikelyBot bool   `json:"likely_bot"`
	ShortText bool   `json:"short_text"`
	AllCaps   bool   `json:"all_caps"`
	Reason    string `json:"reason"`
}

// TablePreview holds the head of an uploaded CSV for display.
type TablePreview struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type AnalysisResult struct {
	RequestID  string        `json:"request_id"`
	Label      Label         `json:"label"`
	Confidence float64       `json:"confidence"`
	Progress   int           `json:"progress"`
	Bot        BotVerdict    `json:"bot"`
	WordCount  int           `json:"word_count"`
	Preview    *TablePreview `json:"preview,omitempty"`
}
