package controllers

import (
	"net/http"

	dbpkg "moodlog/db"
	"moodlog/models"

	"github.com/gin-gonic/gin"
)

// recentLogLimit bounds the dashboard window to the user's most recent entries.
const recentLogLimit = 7

type sentimentPoint struct {
	Date string `json:"date"`
	// Score is null when the entry has no sentiment, which charts must
	// distinguish from a neutral 0.
	Score *float64 `json:"score"`
}

type emotionPoint struct {
	Date    string  `json:"date"`
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
	Anger   float64 `json:"anger"`
}

// GET /api/users/:userId (auth)
// Dashboard aggregation over the caller's most recent logs: sentiment and
// emotion time series plus keyword/entity frequency tables.
func GetUserDashboard(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	userID, ok := ParamID(c, "userId")
	if !ok {
		return
	}
	if userID != user.ID {
		RespondError(c, "unauthorized", http.StatusForbidden)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var logs []models.Log
	if err := db.Where("author_id = ?", user.ID).
		Order("created_at desc, id desc").
		Limit(recentLogLimit).
		Find(&logs).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(logs) == 0 {
		RespondError(c, "no logs found", http.StatusNotFound)
		return
	}

	RespondSuccess(c, gin.H{
		"sentimentData": buildSentimentSeries(logs),
		"emotionsData":  buildEmotionSeries(logs),
		"keywordData":   countLogsContaining(logs, keywordsOf),
		"entityData":    countLogsContaining(logs, entitiesOf),
	})
}

// ------------------------------
// Helpers
// ------------------------------

func logDay(l models.Log) string {
	if l.CreatedAt == nil {
		return ""
	}
	return l.CreatedAt.UTC().Format("2006-01-02")
}

func buildSentimentSeries(logs []models.Log) []sentimentPoint {
	out := make([]sentimentPoint, 0, len(logs))
	for _, l := range logs {
		p := sentimentPoint{Date: logDay(l)}
		if l.Analysis != nil {
			p.Score = l.Analysis.Sentiment.Score
		}
		out = append(out, p)
	}
	return out
}

// buildEmotionSeries flattens the emotion map per entry; absent keys become
// 0 here, unlike the sentiment series which keeps nulls.
func buildEmotionSeries(logs []models.Log) []emotionPoint {
	out := make([]emotionPoint, 0, len(logs))
	for _, l := range logs {
		p := emotionPoint{Date: logDay(l)}
		if l.Analysis != nil {
			p.Joy = l.Analysis.Emotions["joy"]
			p.Sadness = l.Analysis.Emotions["sadness"]
			p.Fear = l.Analysis.Emotions["fear"]
			p.Disgust = l.Analysis.Emotions["disgust"]
			p.Anger = l.Analysis.Emotions["anger"]
		}
		out = append(out, p)
	}
	return out
}

func keywordsOf(l models.Log) []string {
	if l.Analysis == nil {
		return nil
	}
	return l.Analysis.Keywords
}

func entitiesOf(l models.Log) []string {
	if l.Analysis == nil {
		return nil
	}
	return l.Analysis.Entities
}

// countLogsContaining tallies, per term, the number of logs whose list
// contains it. A term repeated inside one log still counts once for that log.
func countLogsContaining(logs []models.Log, listOf func(models.Log) []string) map[string]int {
	counts := map[string]int{}
	for _, l := range logs {
		seen := map[string]bool{}
		for _, term := range listOf(l) {
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			counts[term]++
		}
	}
	return counts
}
