package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{" info ", SeverityInfo, true},
		{"hint", SeverityHint, true},
		{"fatal", SeverityWarning, false},
		{"", SeverityWarning, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSeverity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSeverity_TextRoundTrip(t *testing.T) {
	b, err := json.Marshal(map[string]Severity{"s": SeverityInfo})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"info"}`, string(b))

	var back map[string]Severity
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, SeverityInfo, back["s"])

	var s Severity
	assert.Error(t, s.UnmarshalText([]byte("loud")))
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityHint.AtLeast(SeverityInfo))
}

func TestLintConfig(t *testing.T) {
	cfg := &LintConfig{
		Disabled: []string{"RT05"},
		Severity: map[string]string{"MA04": "error", "MA01": "bogus"},
		Rules:    map[string]RuleOptions{"MA04": {"dependency_aware": false}},
	}

	assert.True(t, cfg.IsDisabled("RT05"))
	assert.False(t, cfg.IsDisabled("RT04"))

	sev, ok := cfg.SeverityFor("MA04")
	assert.True(t, ok)
	assert.Equal(t, SeverityError, sev)
	_, ok = cfg.SeverityFor("MA01")
	assert.False(t, ok)

	assert.Equal(t, false, cfg.OptionsFor("MA04")["dependency_aware"])
	assert.Nil(t, cfg.OptionsFor("MA02"))

	var empty *LintConfig
	assert.False(t, empty.IsDisabled("MA01"))
	assert.Nil(t, empty.OptionsFor("MA01"))
}
