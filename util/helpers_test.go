package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvDefault(t *testing.T) {
	t.Setenv("VULNVIEW_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", GetEnvDefault("VULNVIEW_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvDefault("VULNVIEW_TEST_KEY_MISSING", "fallback"))

	// an explicitly empty variable wins over the default
	t.Setenv("VULNVIEW_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnvDefault("VULNVIEW_TEST_EMPTY", "fallback"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   \t\n"))
	assert.False(t, IsEmpty("x"))
	assert.True(t, IsNotEmpty(" x "))
}

func TestCleanVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"main-v12.0.1376-g7ac6f3", "12.0.1376-g7ac6f3"},
		{"develop-v2.3.4", "2.3.4"},
		{"v1.2.3", "v1.2.3"},
		{"1.2.3", "1.2.3"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanVersion(tt.input), tt.input)
	}
}

func TestIsSemver(t *testing.T) {
	assert.True(t, IsSemver("1.2.3"))
	assert.True(t, IsSemver("v1.2.3"))
	assert.True(t, IsSemver("go1.21.0"))
	assert.False(t, IsSemver("not-a-version"))
}

func TestCleanPURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips qualifiers",
			input:    "pkg:golang/github.com/gofiber/fiber@v2.52.0?type=module",
			expected: "pkg:golang/github.com/gofiber/fiber@v2.52.0",
		},
		{
			name:     "keeps subpath",
			input:    "pkg:golang/github.com/gofiber/fiber@v2.52.0#v2",
			expected: "pkg:golang/github.com/gofiber/fiber@v2.52.0#v2",
		},
		{
			name:     "lowercases",
			input:    "pkg:golang/github.com/Masterminds/semver@v3.2.1",
			expected: "pkg:golang/github.com/masterminds/semver@v3.2.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCleanPURLInvalid(t *testing.T) {
	_, err := CleanPURL("not a purl")
	assert.Error(t, err)
}
