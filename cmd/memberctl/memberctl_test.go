package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTiers_Table(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "tiers")
	require.NoError(t, err)
	assert.Contains(t, out, "FEATURE")
	assert.Regexp(t, `resources\s+5\s+unlimited\s+unlimited`, out)
	assert.Regexp(t, `privateCoaching\s+no\s+no\s+yes`, out)
}

func TestTiers_JSONAndYAML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "tiers", "--output", "json")
	require.NoError(t, err)
	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "purple", views[1]["badge_color"])

	out, err = execute(t, "tiers", "-o", "yaml")
	require.NoError(t, err)
	var parsed []struct {
		Tier     string         `yaml:"tier"`
		Features map[string]any `yaml:"features"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	require.Len(t, parsed, 3)
	assert.Equal(t, "basic", parsed[0].Tier)
	assert.Equal(t, false, parsed[0].Features["analytics"])

	_, err = execute(t, "tiers", "-o", "xml")
	require.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"premium analytics", []string{"check", "premium", "analytics"}, "analytics: allowed on Premium\n"},
		{"basic resources", []string{"check", "Basic", "resources"}, "resources: allowed on Basic (limit 5)"},
		{"basic analytics", []string{"check", "basic", "analytics"}, "analytics: denied on Basic. Upgrade to Premium to unlock this feature"},
		{"premium coaching", []string{"check", "premium", "privateCoaching"}, "Upgrade to Ultimate to unlock this feature"},
		{"explicit requirement", []string{"check", "premium", "privateCoaching", "--required", "premium"}, "privateCoaching: allowed on Premium"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "check", "gold", "analytics")
	require.ErrorContains(t, err, `unknown tier "gold"`)

	_, err = execute(t, "check", "basic", "teleport")
	require.ErrorContains(t, err, `unknown feature "teleport"`)
}

func TestContentCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"course", "basic"}, "free course: allowed for Basic"},
		{[]string{"course", "basic", "standard"}, "standard course: denied for Basic"},
		{[]string{"resource", "basic"}, "general resource: denied for Basic"},
		{[]string{"resource", "premium", "ultimate-exclusive"}, "ultimate-exclusive resource: denied for Premium"},
		{[]string{"resource", "ultimate", "ultimate-exclusive"}, "ultimate-exclusive resource: allowed for Ultimate"},
	}

	for _, tt := range tests {
		out, err := execute(t, tt.args...)
		require.NoError(t, err)
		assert.Contains(t, out, tt.want)
	}
}

func TestUsage_AgainstSQLite(t *testing.T) {
	t.Setenv("USAGE_STORE", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	for range 3 {
		_, err := execute(t, "usage", "use", "goals", "--user", "u1", "--tier", "basic")
		require.NoError(t, err)
	}

	_, err := execute(t, "usage", "use", "goals", "--user", "u1", "--tier", "basic")
	require.EqualError(t, err, "goals limit reached: 3 of 3 used on Basic")

	out, err := execute(t, "usage", "show", "--user", "u1", "--tier", "basic")
	require.NoError(t, err)
	assert.Contains(t, out, "member u1 on Basic")
	assert.Regexp(t, `goals\s+3\s+3\s+0`, out)

	out, err = execute(t, "usage", "reset", "--user", "u1", "--tier", "basic")
	require.NoError(t, err)
	assert.Contains(t, out, "already reset this month")

	_, err = execute(t, "usage", "show", "--user", "u1")
	require.Error(t, err, "tier flag is required")
}
