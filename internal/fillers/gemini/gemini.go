// Package gemini implements the enrichment fill capability on Google's
// Gemini API. The client is created lazily on first use; a filler built
// without credentials fails per call, which the enrichment engine
// treats the same as any other fill failure.
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/enrich"
	"github.com/agentstation/scrub/pkg/errors"
)

// apiKeyEnvVars are checked in order for the Gemini API key.
var apiKeyEnvVars = []string{
	"SCRUB_GEMINI_API_KEY",
	"GEMINI_API_KEY",
	"GOOGLE_GEMINI_API_KEY",
}

// Filler fills missing customer fields by asking a Gemini model for
// the single most plausible value given the rest of the row.
type Filler struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// Option configures the filler.
type Option func(*Filler)

// WithAPIKey sets the API key explicitly instead of reading it from
// the environment.
func WithAPIKey(key string) Option {
	return func(f *Filler) {
		f.apiKey = key
	}
}

// WithModel overrides the Gemini model.
func WithModel(model string) Option {
	return func(f *Filler) {
		if model != "" {
			f.model = model
		}
	}
}

// New creates a Gemini filler. Missing credentials are not an error
// here: they surface as per-call failures so a run degrades to
// "left missing" instead of aborting.
func New(opts ...Option) *Filler {
	f := &Filler{
		apiKey: apiKeyFromEnv(),
		model:  constants.DefaultEnrichModel,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name implements enrich.Filler.
func (f *Filler) Name() string { return "gemini" }

// Fill implements enrich.Filler.
func (f *Filler) Fill(ctx context.Context, rowContext map[string]string, targetColumn string) (string, error) {
	client, err := f.getOrCreateClient(ctx)
	if err != nil {
		return "", err
	}

	response, err := client.Models.GenerateContent(ctx, f.model, genai.Text(buildPrompt(rowContext, targetColumn)), nil)
	if err != nil {
		return "", errors.WrapAPI("gemini", 0, err)
	}

	value := cleanResponse(response.Text())
	if value == "" || isRefusal(value) {
		return "", errors.ErrNoFill
	}
	return value, nil
}

// getOrCreateClient returns the shared client, creating it on first
// call.
func (f *Filler) getOrCreateClient(ctx context.Context) (*genai.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.client != nil {
		return f.client, nil
	}
	if f.apiKey == "" {
		return nil, &errors.ConfigError{
			Component: "gemini",
			Message:   "API key not configured, set " + strings.Join(apiKeyEnvVars, " or "),
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  f.apiKey,
	})
	if err != nil {
		return nil, errors.WrapAPI("gemini", 0, err)
	}
	f.client = client
	return client, nil
}

// buildPrompt renders the known fields in sorted order and asks for
// the one missing value, nothing else.
func buildPrompt(rowContext map[string]string, targetColumn string) string {
	var b strings.Builder
	b.WriteString("A customer record is missing its ")
	b.WriteString(targetColumn)
	b.WriteString(" value. The known fields are:\n")
	for _, key := range enrich.ContextKeys(rowContext) {
		fmt.Fprintf(&b, "- %s: %s\n", key, rowContext[key])
	}
	b.WriteString("Reply with a single plausible value for ")
	b.WriteString(targetColumn)
	b.WriteString(" and nothing else: no explanation, no quotes, no markdown.")
	return b.String()
}

// cleanResponse strips the wrapping a model adds despite instructions:
// markdown fences, quotes, a trailing period on bare values.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "\n"); idx >= 0 && !strings.Contains(s[:idx], " ") {
			// Drop a language tag on the opening fence.
			s = s[idx+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// isRefusal spots answers that decline instead of filling.
func isRefusal(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{"i cannot", "i can't", "unable to", "not enough information", "unknown value"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func apiKeyFromEnv() string {
	for _, name := range apiKeyEnvVars {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}
