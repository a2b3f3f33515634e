package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"moodlog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSentimentSeries_NullVsValue(t *testing.T) {
	day := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	logs := []models.Log{
		{CreatedAt: &day, Analysis: &models.Analysis{
			Sentiment: models.Sentiment{Score: f64(0.9), Label: str("positive")},
		}},
		{CreatedAt: &day, Analysis: &models.Analysis{}}, // analysis without sentiment
		{CreatedAt: &day},                               // no analysis at all
	}

	series := buildSentimentSeries(logs)
	require.Len(t, series, 3)
	assert.Equal(t, "2026-03-02", series[0].Date)
	assert.Equal(t, 0.9, *series[0].Score)
	assert.Nil(t, series[1].Score)
	assert.Nil(t, series[2].Score)
}

func TestBuildEmotionSeries_ZeroFillsAbsentKeys(t *testing.T) {
	day := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	logs := []models.Log{
		{CreatedAt: &day, Analysis: &models.Analysis{
			Emotions: map[string]float64{"joy": 0.8, "sadness": 0.01},
		}},
	}

	series := buildEmotionSeries(logs)
	require.Len(t, series, 1)
	assert.Equal(t, 0.8, series[0].Joy)
	assert.Equal(t, 0.01, series[0].Sadness)
	assert.Equal(t, 0.0, series[0].Fear)
	assert.Equal(t, 0.0, series[0].Disgust)
	assert.Equal(t, 0.0, series[0].Anger)
}

func TestCountLogsContaining_DedupsWithinLog(t *testing.T) {
	logs := []models.Log{
		{Analysis: &models.Analysis{Keywords: []string{"focus", "focus", "sleep"}}},
		{Analysis: &models.Analysis{Keywords: []string{"focus", "focus"}}},
		{Analysis: &models.Analysis{Keywords: []string{}}},
		{}, // no analysis
	}

	counts := countLogsContaining(logs, keywordsOf)
	assert.Equal(t, map[string]int{"focus": 2, "sleep": 1}, counts)
}

func TestGetUserDashboard(t *testing.T) {
	r, db, _ := newTestEnv(t)
	ana := createTestUser(t, db, "Ana", "ana@example.com")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	createTestLog(t, db, ana, base, "rough start", &models.Analysis{
		Emotions:  map[string]float64{"sadness": 0.7},
		Sentiment: models.Sentiment{Score: f64(-0.4), Label: str("negative")},
		Keywords:  []string{"work", "deadline"},
		Entities:  []string{"Monday"},
	})
	createTestLog(t, db, ana, base.AddDate(0, 0, 1), "getting better", &models.Analysis{
		Emotions:  map[string]float64{"joy": 0.6},
		Sentiment: models.Sentiment{Score: f64(0.5), Label: str("positive")},
		Keywords:  []string{"work", "progress"},
		Entities:  []string{},
	})

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, ana))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		SentimentData []struct {
			Date  string   `json:"date"`
			Score *float64 `json:"score"`
		} `json:"sentimentData"`
		EmotionsData []struct {
			Date    string  `json:"date"`
			Joy     float64 `json:"joy"`
			Sadness float64 `json:"sadness"`
		} `json:"emotionsData"`
		KeywordData map[string]int `json:"keywordData"`
		EntityData  map[string]int `json:"entityData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	// newest first, matching the fetch order
	require.Len(t, res.SentimentData, 2)
	assert.Equal(t, "2026-03-02", res.SentimentData[0].Date)
	assert.Equal(t, 0.5, *res.SentimentData[0].Score)
	assert.Equal(t, "2026-03-01", res.SentimentData[1].Date)
	assert.Equal(t, -0.4, *res.SentimentData[1].Score)

	require.Len(t, res.EmotionsData, 2)
	assert.Equal(t, 0.6, res.EmotionsData[0].Joy)
	assert.Equal(t, 0.0, res.EmotionsData[0].Sadness)
	assert.Equal(t, 0.7, res.EmotionsData[1].Sadness)

	assert.Equal(t, map[string]int{"work": 2, "deadline": 1, "progress": 1}, res.KeywordData)
	assert.Equal(t, map[string]int{"Monday": 1}, res.EntityData)
}

func TestGetUserDashboard_LimitsToSevenMostRecent(t *testing.T) {
	r, db, _ := newTestEnv(t)
	ana := createTestUser(t, db, "Ana", "ana@example.com")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		createTestLog(t, db, ana, base.AddDate(0, 0, i), fmt.Sprintf("entry %d", i), &models.Analysis{
			Sentiment: models.Sentiment{Score: f64(float64(i) / 10)},
		})
	}

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, ana))
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		SentimentData []struct {
			Date  string   `json:"date"`
			Score *float64 `json:"score"`
		} `json:"sentimentData"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.SentimentData, 7)
	// newest of the ten is first; the oldest three fall outside the window
	assert.Equal(t, "2026-03-10", res.SentimentData[0].Date)
	assert.Equal(t, "2026-03-04", res.SentimentData[6].Date)
}

func TestGetUserDashboard_NoLogs(t *testing.T) {
	r, db, _ := newTestEnv(t)
	ana := createTestUser(t, db, "Ana", "ana@example.com")

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, ana))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserDashboard_WrongUser(t *testing.T) {
	r, db, _ := newTestEnv(t)
	ana := createTestUser(t, db, "Ana", "ana@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	createTestLog(t, db, ana, time.Now(), "private entry", nil)

	w := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, bob))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetUserDashboard_Deterministic(t *testing.T) {
	r, db, _ := newTestEnv(t)
	ana := createTestUser(t, db, "Ana", "ana@example.com")

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createTestLog(t, db, ana, base.AddDate(0, 0, i), fmt.Sprintf("entry %d", i), &models.Analysis{
			Emotions:  map[string]float64{"joy": float64(i) / 10},
			Sentiment: models.Sentiment{Score: f64(float64(i) / 10)},
			Keywords:  []string{"routine"},
			Entities:  []string{},
		})
	}

	first := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, ana))
	second := doJSON(t, r, "GET", fmt.Sprintf("/api/users/%d", ana.ID), nil, authHeader(t, ana))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
}
