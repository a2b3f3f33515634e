package main

import (
	"log"
	"os"

	"moodlog/config"
	dbpkg "moodlog/db"
	"moodlog/router"
	"moodlog/tools"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// =====================
// ENV esperadas
// =====================
//
// Server
// - PORT                (overrides api_port from config.json)
// - CONFIG_PATH         (default: config.json)
// - AUTOMIGRATE         (1 enables gorm automigrate)
//
// Auth
// - JWT_SECRET          (falls back to security.jwt_secret from config.json)
// - JWT_TTL_HOURS       (default: 24)
//
// Watson NLU
// - WATSON_API_KEY      (falls back to watson.api_key from config.json)
// - WATSON_URL          (falls back to watson.url)
//
// =====================

func main() {
	_ = godotenv.Load()

	cfg := config.Get(getenv("CONFIG_PATH", "config.json"))

	// controllers read the secret from env; bridge the config value so a
	// config.json-only setup still works
	if os.Getenv("JWT_SECRET") == "" && cfg.Security.JwtSecret != "" {
		os.Setenv("JWT_SECRET", cfg.Security.JwtSecret)
	}

	dbpkg.SetConfigurations(cfg)
	database, err := dbpkg.Connect()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	nlu := tools.NewNLUClient(tools.NLUConfig{
		APIKey:       getenv("WATSON_API_KEY", cfg.Watson.ApiKey),
		URL:          getenv("WATSON_URL", cfg.Watson.URL),
		Version:      cfg.Watson.Version,
		KeywordLimit: cfg.Watson.KeywordLimit,
		EntityLimit:  cfg.Watson.EntityLimit,
	})

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(database))
	r.Use(tools.SetAnalyzerToContext(nlu))
	router.Initialize(r, cfg)

	port := getenv("PORT", cfg.ApiPort)
	log.Printf("MoodLog listening on :%s", port)
	log.Fatal(r.Run(":" + port))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
