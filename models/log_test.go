package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogOwnedBy(t *testing.T) {
	l := Log{AuthorID: 7}
	assert.True(t, l.OwnedBy(7))
	assert.False(t, l.OwnedBy(8))
}

func TestAnalysisValueScanRoundTrip(t *testing.T) {
	score := 0.9
	label := "positive"
	in := &Analysis{
		Emotions:  map[string]float64{"joy": 0.8},
		Sentiment: Sentiment{Score: &score, Label: &label},
		Keywords:  []string{"great"},
		Entities:  []string{},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out Analysis
	require.NoError(t, out.Scan(v))
	assert.Equal(t, *in, out)
}

func TestAnalysisValueNil(t *testing.T) {
	var a *Analysis
	v, err := a.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
