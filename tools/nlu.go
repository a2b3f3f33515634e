package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moodlog/models"
)

// DefaultRankLimit is how many ranked keywords/entities we ask the provider
// for, and how many the normalizer keeps.
const DefaultRankLimit = 3

var (
	// ErrAnalysisFailed covers every way the provider call can fail
	// (network, auth, rate limit). A single failure is terminal for the
	// request; there are no retries here.
	ErrAnalysisFailed = errors.New("analysis failed")

	// ErrMalformedResponse means the provider answered with something that
	// is not the expected analyze shape.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// RankedItem é um item ranqueado (keyword ou entity) na resposta do provider.
type RankedItem struct {
	Text string `json:"text"`
}

// AnalyzeResult mirrors the document-level portion of the Watson NLU
// /v1/analyze response. Any feature may be absent.
type AnalyzeResult struct {
	Emotion *struct {
		Document struct {
			Emotion map[string]float64 `json:"emotion"`
		} `json:"document"`
	} `json:"emotion"`
	Sentiment *struct {
		Document struct {
			Score *float64 `json:"score"`
			Label *string  `json:"label"`
		} `json:"document"`
	} `json:"sentiment"`
	Keywords []RankedItem `json:"keywords"`
	Entities []RankedItem `json:"entities"`
}

// Analyzer is the capability the write paths consume. Tests swap in a fake.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*AnalyzeResult, error)
}

type NLUConfig struct {
	APIKey       string
	URL          string
	Version      string
	KeywordLimit int
	EntityLimit  int
}

// NLUClient calls Watson Natural Language Understanding over HTTP.
// Construct it once from config and inject it; nothing here is global.
type NLUClient struct {
	cfg    NLUConfig
	client *http.Client
}

func NewNLUClient(cfg NLUConfig) *NLUClient {
	if cfg.Version == "" {
		cfg.Version = "2022-04-07"
	}
	if cfg.KeywordLimit <= 0 {
		cfg.KeywordLimit = DefaultRankLimit
	}
	if cfg.EntityLimit <= 0 {
		cfg.EntityLimit = DefaultRankLimit
	}
	return &NLUClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (n *NLUClient) Analyze(ctx context.Context, text string) (*AnalyzeResult, error) {
	if n.cfg.APIKey == "" || n.cfg.URL == "" {
		return nil, fmt.Errorf("%w: WATSON_API_KEY or WATSON_URL not set", ErrAnalysisFailed)
	}

	reqBody := map[string]any{
		"text": text,
		"features": map[string]any{
			"emotion":   map[string]any{"document": true},
			"sentiment": map[string]any{"document": true},
			"keywords":  map[string]any{"limit": n.cfg.KeywordLimit},
			"entities":  map[string]any{"limit": n.cfg.EntityLimit},
		},
	}
	b, _ := json.Marshal(reqBody)

	endpoint := strings.TrimRight(n.cfg.URL, "/") + "/v1/analyze?version=" + url.QueryEscape(n.cfg.Version)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	req.SetBasicAuth("apikey", n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		slog.Error("watson nlu error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: status %d", ErrAnalysisFailed, resp.StatusCode)
	}

	var parsed AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &parsed, nil
}

// Normalize maps the raw provider response into the stored bundle. Pure
// mapping, no I/O: absent features become an empty emotion map, nil
// sentiment score/label and empty keyword/entity lists. Ranked items keep
// provider order and are cut at limit (<=0 means DefaultRankLimit).
func Normalize(raw *AnalyzeResult, limit int) (models.Analysis, error) {
	if raw == nil {
		return models.Analysis{}, ErrMalformedResponse
	}
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	out := models.Analysis{
		Emotions: map[string]float64{},
		Keywords: []string{},
		Entities: []string{},
	}

	if raw.Emotion != nil {
		for k, v := range raw.Emotion.Document.Emotion {
			out.Emotions[k] = v
		}
	}
	if raw.Sentiment != nil {
		out.Sentiment.Score = raw.Sentiment.Document.Score
		out.Sentiment.Label = raw.Sentiment.Document.Label
	}
	out.Keywords = rankedTexts(raw.Keywords, limit)
	out.Entities = rankedTexts(raw.Entities, limit)

	return out, nil
}

func rankedTexts(items []RankedItem, limit int) []string {
	out := []string{}
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		if item.Text == "" {
			continue
		}
		out = append(out, item.Text)
	}
	return out
}
