package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/enrich"
	"github.com/agentstation/scrub/pkg/errors"
	"github.com/agentstation/scrub/pkg/tabular"
)

func datasetFromCSV(t *testing.T, csv string) *tabular.Dataset {
	t.Helper()
	d, err := tabular.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return d
}

// tableFiller answers from a column -> value table.
type tableFiller struct {
	values map[string]string
}

func (f *tableFiller) Name() string { return "table" }

func (f *tableFiller) Fill(_ context.Context, _ map[string]string, target string) (string, error) {
	value, ok := f.values[target]
	if !ok {
		return "", errors.ErrFillerUnavailable
	}
	return value, nil
}

func TestRunCleanDatasetConverges(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email,country
Jane,jane@example.com,Germany
`)
	p, err := New()
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, 0, result.Iterations)
	assert.True(t, result.Report.Empty())
	assert.True(t, result.Changes.Empty())
	assert.Equal(t, 1, result.Metadata.RowsIn)
	assert.Equal(t, 1, result.Metadata.RowsOut)
}

func TestRunCorrectsAndConverges(t *testing.T) {
	d := datasetFromCSV(t, `first_name,country,city
jane,Grmany,Seattle
`)
	p, err := New()
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, 1, result.Iterations)

	row := result.Dataset.Rows()[0]
	assert.Equal(t, "Jane", row.Get("first_name").String())
	assert.Equal(t, "Germany", row.Get("country").String())

	summary := result.Changes.Summary()
	assert.Equal(t, 2, summary[changelog.ActionCorrected])
}

func TestRunEnrichesMissingCells(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email,age,loyalty_points
Jane,,34,700
`)
	filler := &tableFiller{values: map[string]string{"email": "jane@example.com"}}
	p, err := New(WithEnricher(enrich.New(enrich.WithFiller(filler))))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	row := result.Dataset.Rows()[0]
	assert.Equal(t, "jane@example.com", row.Get("email").String())
	assert.Equal(t, "Yes", row.Get(tabular.ColumnIsLoyalCustomer).String())

	summary := result.Changes.Summary()
	assert.Equal(t, 1, summary[changelog.ActionEnriched])
	assert.Equal(t, 2, summary[changelog.ActionDerived])
}

func TestRunRevalidatesEnrichedValues(t *testing.T) {
	// The filler answers with a phone shape correction has to fix, so
	// convergence needs a second pass: fill on pass one, repair on pass
	// two. The loop must re-validate its own changes.
	d := datasetFromCSV(t, `first_name,phone
Jane,
`)
	filler := &tableFiller{values: map[string]string{"phone": "489 123 45"}}
	p, err := New(WithEnricher(enrich.New(enrich.WithFiller(filler))))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "4891-2345", result.Dataset.Rows()[0].Get("phone").String())
}

func TestRunExhaustsIterationBudget(t *testing.T) {
	// Email can never be filled, so the missing cell survives every
	// pass and the loop must stop at the budget with a best-effort
	// dataset rather than spin.
	d := datasetFromCSV(t, `first_name,email
Jane,
`)
	p, err := New(WithMaxIterations(3))
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.False(t, result.Converged)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, 1, result.RemainingIssues())
	require.NotNil(t, result.Dataset)
	assert.True(t, result.Dataset.Rows()[0].Get("email").IsMissing())
}

func TestRunRemovesDuplicates(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email
Jane,jane@example.com
 JANE ,jane@example.com
`)
	p, err := New()
	require.NoError(t, err)

	result, err := p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.True(t, result.Converged)
	assert.Equal(t, 2, result.Metadata.RowsIn)
	assert.Equal(t, 1, result.Metadata.RowsOut)
	assert.Equal(t, 1, result.Changes.Summary()[changelog.ActionDeduplicated])
}

func TestRunDoesNotMutateInput(t *testing.T) {
	d := datasetFromCSV(t, `first_name
jane
`)
	p, err := New()
	require.NoError(t, err)

	_, err = p.Run(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "jane", d.Rows()[0].Get("first_name").String())
}

func TestRunPassHooks(t *testing.T) {
	d := datasetFromCSV(t, `first_name
jane
`)
	type call struct {
		pass  int
		phase Phase
	}
	var calls []call
	p, err := New(WithPassHook(func(pass int, phase Phase, _ int) {
		calls = append(calls, call{pass, phase})
	}))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), d)
	require.NoError(t, err)

	// Pass one detects and corrects, pass two detects clean.
	require.NotEmpty(t, calls)
	assert.Equal(t, call{1, PhaseDetect}, calls[0])
	assert.Contains(t, calls, call{1, PhaseCorrect})
	assert.Equal(t, call{2, PhaseDetect}, calls[len(calls)-1])
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := New()
	require.NoError(t, err)

	_, err = p.Run(ctx, datasetFromCSV(t, "first_name\njane\n"))
	assert.ErrorIs(t, err, errors.ErrCanceled)
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithMaxIterations(0))
	assert.Error(t, err)

	_, err = New(WithMaxIterations(100))
	assert.Error(t, err)

	_, err = New(WithDetector(nil))
	assert.Error(t, err)
}
