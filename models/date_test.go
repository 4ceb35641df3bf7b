package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	t.Run("serializes as yyyy-MM-dd", func(t *testing.T) {
		b, err := json.Marshal(NewDate(2025, time.March, 9))
		require.NoError(t, err)
		assert.Equal(t, `"2025-03-09"`, string(b))
	})

	t.Run("zero date serializes as null", func(t *testing.T) {
		b, err := json.Marshal(Date{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))
	})

	t.Run("parses back what it wrote", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`"2025-03-09"`), &d))
		assert.Equal(t, NewDate(2025, time.March, 9), d)
	})

	t.Run("null clears the value", func(t *testing.T) {
		d := Today()
		require.NoError(t, json.Unmarshal([]byte("null"), &d))
		assert.True(t, d.IsZero())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"09/03/2025"`), &d))
	})
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.December, 31), d)

	_, err = ParseDate("31-12-2025")
	assert.Error(t, err)
}
