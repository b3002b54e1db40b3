package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_IsDynamic(t *testing.T) {
	assert.False(t, Settings(nil).IsDynamic())
	assert.False(t, Settings{"isDynamic": "yes"}.IsDynamic())
	assert.False(t, Settings{}.IsDynamic())
	assert.True(t, Settings{"isDynamic": true}.IsDynamic())
}

func TestSettings_WithContent(t *testing.T) {
	original := Settings{"dotsColor": "#000000", "url": "stale", "isDynamic": true}

	echoed := original.WithContent("https://example.com", false)

	assert.Equal(t, "https://example.com", echoed["url"])
	assert.Equal(t, false, echoed["isDynamic"])
	assert.Equal(t, "#000000", echoed["dotsColor"])
	// the input document is left untouched
	assert.Equal(t, "stale", original["url"])
}

func TestSettings_JSONRoundTrip(t *testing.T) {
	var s Settings
	require.NoError(t, json.Unmarshal([]byte(`{"isDynamic":true,"width":320}`), &s))
	assert.True(t, s.IsDynamic())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isDynamic":true`)
}
