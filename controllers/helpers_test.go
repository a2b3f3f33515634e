package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	dbpkg "moodlog/db"
	"moodlog/models"
	"moodlog/tools"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	result *tools.AnalyzeResult
	err    error
	calls  int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*tools.AnalyzeResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func fullAnalyzeResult(t *testing.T) *tools.AnalyzeResult {
	t.Helper()
	var raw tools.AnalyzeResult
	require.NoError(t, json.Unmarshal([]byte(`{
		"emotion": {"document": {"emotion": {"joy": 0.8, "sadness": 0.01, "fear": 0.02, "disgust": 0.03, "anger": 0.04}}},
		"sentiment": {"document": {"score": 0.9, "label": "positive"}},
		"keywords": [{"text": "great"}],
		"entities": []
	}`), &raw))
	return &raw
}

// newTestEnv builds a router wired like router.Initialize for the routes
// under test, over a throwaway sqlite database and a fake analyzer.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, *fakeAnalyzer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.AutoMigrate(&models.User{}, &models.Log{}).Error)

	fa := &fakeAnalyzer{result: fullAnalyzeResult(t)}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(tools.SetAnalyzerToContext(fa))

	api := r.Group("/api")
	api.POST("/users", CreateUser)
	api.POST("/login", Login)

	auth := api.Group("")
	auth.Use(AuthRequired())
	auth.GET("/me", Me)
	auth.POST("/logs", CreateLog)
	auth.GET("/logs", GetLogs)
	auth.GET("/logs/:logId", GetLogByID)
	auth.PUT("/logs/:logId", UpdateLog)
	auth.DELETE("/logs/:logId", DeleteLog)
	auth.GET("/users/:userId", GetUserDashboard)

	return r, database, fa
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	encoded := tools.EncryptTextSHA512("secret123")
	encoded = email + ":" + encoded
	encoded = tools.EncryptTextSHA512(encoded)

	user := models.User{Name: name, Email: email, Password: encoded}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()
	token, err := signToken(getJWTSecret(), user.ID, user.Email, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func createTestLog(t *testing.T, db *gorm.DB, author models.User, createdAt time.Time, text string, analysis *models.Analysis) models.Log {
	t.Helper()
	item := models.Log{
		Text:      text,
		AuthorID:  author.ID,
		Analysis:  analysis,
		CreatedAt: &createdAt,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func f64(v float64) *float64 { return &v }
func str(v string) *string   { return &v }
