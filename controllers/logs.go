package controllers

import (
	"log/slog"
	"net/http"

	dbpkg "moodlog/db"
	"moodlog/models"
	"moodlog/tools"

	"github.com/gin-gonic/gin"
)

type LogRequest struct {
	Title *string `json:"title" form:"title"`
	Text  *string `json:"text" form:"text"`
}

// POST /api/logs (auth)
// Creates a log together with its first analysis bundle. If the provider
// call fails nothing is persisted.
func CreateLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req LogRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == nil || *req.Text == "" {
		RespondError(c, "text is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	analysis, ok := analyzeText(c, *req.Text)
	if !ok {
		return
	}

	item := models.Log{
		Text:     *req.Text,
		AuthorID: user.ID,
		Analysis: analysis,
	}
	if req.Title != nil {
		item.Title = *req.Title
	}

	if err := db.Create(&item).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"log": item})
}

// GET /api/logs (auth)
// Lists the current user's logs only, newest first.
func GetLogs(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var items []models.Log
	if err := db.Where("author_id = ?", user.ID).Order("created_at desc, id desc").Find(&items).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}
	RespondSuccess(c, gin.H{"logs": items})
}

// GET /api/logs/:logId (auth)
func GetLogByID(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "logId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var item models.Log
	if err := db.First(&item, id).Error; err != nil {
		RespondError(c, "log not found", http.StatusNotFound)
		return
	}
	if !item.OwnedBy(user.ID) {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	RespondSuccess(c, gin.H{"log": item})
}

// PUT /api/logs/:logId (auth)
// Title updates never touch the analysis. A changed text re-derives text
// and analysis together; if re-analysis fails the stored row is unchanged.
func UpdateLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "logId")
	if !ok {
		return
	}

	var req LogRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var item models.Log
	if err := db.First(&item, id).Error; err != nil {
		RespondError(c, "log not found", http.StatusNotFound)
		return
	}
	if !item.OwnedBy(user.ID) {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	if req.Title != nil {
		item.Title = *req.Title
	}

	if req.Text != nil && *req.Text != item.Text {
		if *req.Text == "" {
			RespondError(c, "text cannot be empty", http.StatusBadRequest)
			return
		}
		analysis, ok := analyzeText(c, *req.Text)
		if !ok {
			return
		}
		item.Text = *req.Text
		item.Analysis = analysis
	}

	if err := db.Save(&item).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"log": item})
}

// DELETE /api/logs/:logId (auth)
func DeleteLog(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "logId")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db not configured in context", http.StatusInternalServerError)
		return
	}

	var item models.Log
	if err := db.First(&item, id).Error; err != nil {
		RespondError(c, "log not found", http.StatusNotFound)
		return
	}
	if !item.OwnedBy(user.ID) {
		RespondError(c, "forbidden", http.StatusForbidden)
		return
	}

	if err := db.Delete(&models.Log{}, "id = ?", id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondSuccess(c, gin.H{"log": item})
}

// analyzeText runs the provider call plus normalization and writes the
// error response itself when either step fails.
func analyzeText(c *gin.Context, text string) (*models.Analysis, bool) {
	analyzer := tools.AnalyzerInstance(c)
	if analyzer == nil {
		RespondError(c, "analyzer not configured in context", http.StatusInternalServerError)
		return nil, false
	}

	raw, err := analyzer.Analyze(c.Request.Context(), text)
	if err != nil {
		slog.Error("text analysis failed", "error", err)
		RespondError(c, "failed to analyze text", http.StatusInternalServerError)
		return nil, false
	}

	analysis, err := tools.Normalize(raw, tools.DefaultRankLimit)
	if err != nil {
		slog.Error("provider response rejected", "error", err)
		RespondError(c, "failed to analyze text", http.StatusInternalServerError)
		return nil, false
	}
	return &analysis, true
}
