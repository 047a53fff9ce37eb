package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/scrub/pkg/errors"
)

func TestFillWithoutAPIKeyFailsPerCall(t *testing.T) {
	f := New(WithAPIKey(""))
	f.apiKey = "" // guard against ambient env keys

	_, err := f.Fill(context.Background(), map[string]string{"first_name": "Jane"}, "email")
	require.Error(t, err)

	var configErr *errors.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(map[string]string{
		"first_name": "Jane",
		"country":    "Germany",
		"age":        "34",
	}, "email")

	assert.Contains(t, prompt, "missing its email value")
	assert.Contains(t, prompt, "- age: 34\n- country: Germany\n- first_name: Jane\n", "fields render in sorted order")
	assert.Contains(t, prompt, "nothing else")
}

func TestCleanResponse(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "jane@example.com", "jane@example.com"},
		{"surrounding whitespace", "  jane@example.com \n", "jane@example.com"},
		{"double quoted", `"jane@example.com"`, "jane@example.com"},
		{"single quoted", "'Germany'", "Germany"},
		{"fenced", "```\njane@example.com\n```", "jane@example.com"},
		{"fenced with language", "```text\njane@example.com\n```", "jane@example.com"},
		{"empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanResponse(tc.in))
		})
	}
}

func TestIsRefusal(t *testing.T) {
	assert.True(t, isRefusal("I cannot determine this value."))
	assert.True(t, isRefusal("There is not enough information to answer."))
	assert.False(t, isRefusal("jane@example.com"))
	assert.False(t, isRefusal("Germany"))
}

func TestOptions(t *testing.T) {
	f := New(WithAPIKey("test-key"), WithModel("gemini-2.5-pro"))
	assert.Equal(t, "test-key", f.apiKey)
	assert.Equal(t, "gemini-2.5-pro", f.model)

	// An empty model keeps the default.
	f = New(WithModel(""))
	assert.NotEmpty(t, f.model)
}
