package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "iso date", input: "2024-01-10"},
		{name: "leap day", input: "2024-02-29"},
		{name: "european layout", input: "10.01.2024", expectError: true},
		{name: "not a date", input: "tomorrow", expectError: true},
		{name: "impossible day", input: "2023-02-29", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, d.String())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_EmptyStringRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(data))
}

func TestDate_RejectsNonString(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`20240101`), &d))
	assert.Error(t, json.Unmarshal([]byte(`"01/02/2024"`), &d))
}

func TestDate_YAML(t *testing.T) {
	type doc struct {
		Start Date `yaml:"start"`
		End   Date `yaml:"end"`
	}

	out, err := yaml.Marshal(doc{Start: MustParseDate("2024-01-10")})
	require.NoError(t, err)

	var back doc
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, MustParseDate("2024-01-10"), back.Start)
	assert.True(t, back.End.IsZero())

	assert.Error(t, yaml.Unmarshal([]byte("start: 10/01/2024\n"), &back))
}

func TestDate_MarshalCSV(t *testing.T) {
	s, err := MustParseDate("2024-01-10").MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10", s)

	s, err = Date{}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}
