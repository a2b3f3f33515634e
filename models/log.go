package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Sentiment carries the document-level sentiment of one entry. Score and
// Label stay nil when the provider returned no sentiment, so consumers can
// tell "no data" apart from a neutral 0.
type Sentiment struct {
	Score *float64 `json:"score"`
	Label *string  `json:"label"`
}

// Analysis é o pacote de anotações derivado do texto de um Log.
// Either the whole bundle is stored or none of it; individual collections
// may be empty when the provider had nothing for that feature.
type Analysis struct {
	Emotions  map[string]float64 `json:"emotions"`
	Sentiment Sentiment          `json:"sentiment"`
	Keywords  []string           `json:"keywords"`
	Entities  []string           `json:"entities"`
}

// Value serializes the bundle into a JSON text column.
func (a *Analysis) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *Analysis) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("analysis: cannot scan %T", src)
	}
}

// Log é um registro do diário: texto livre + anotações da análise.
type Log struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Title     string     `gorm:"default:''" json:"title" form:"title"`
	Text      string     `gorm:"type:text;not null" json:"text" form:"text"`
	AuthorID  int64      `gorm:"not null;index" json:"author_id"`
	Analysis  *Analysis  `gorm:"type:text" json:"analysis"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// OwnedBy reports whether userID is the log's author. Every read/mutate
// route goes through this single check.
func (l Log) OwnedBy(userID int64) bool {
	return l.AuthorID == userID
}
