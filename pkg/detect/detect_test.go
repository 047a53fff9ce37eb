package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/scrub/pkg/tabular"
)

func datasetFromCSV(t *testing.T, csv string) *tabular.Dataset {
	t.Helper()
	d, err := tabular.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return d
}

func issueKinds(issues []Issue) []Kind {
	kinds := make([]Kind, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	return kinds
}

func TestDetectCleanDataset(t *testing.T) {
	d := datasetFromCSV(t, `first_name,last_name,email,phone,gender,marital_status,age,loyalty_points,country,city
Jane,Doe,jane@example.com,4891-2345,Female,Married,34,120,Germany,Seattle
`)
	report := New().Detect(d)
	assert.True(t, report.Empty())

	// Detection never mutates, so a second pass agrees.
	assert.True(t, New().Detect(d).Empty())
}

func TestDetectMissing(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email
,jane@example.com
`)
	report := New().Detect(d)
	require.False(t, report.Empty())

	row := d.Rows()[0]
	issues := report.Issues(row.ID())
	require.Len(t, issues, 1)
	assert.Equal(t, KindMissing, issues[0].Kind)
	assert.Equal(t, "first_name", issues[0].Column)
	assert.Equal(t, "", issues[0].Value)
}

func TestDetectMalformed(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		value  string
	}{
		{"email without domain", "email", "jane.example.com"},
		{"email without tld", "email", "jane@example"},
		{"email with spaces", "email", "jane doe@example.com"},
		{"phone with separators", "phone", "(489) 123-4567"},
		{"phone too short", "phone", "12-34"},
		{"phone plain digits", "phone", "48912345"},
		{"name lower case", "first_name", "jane"},
		{"name upper case", "last_name", "DOE"},
		{"full name mixed", "full_name", "jane DOE"},
		{"gender case drift", "gender", "male"},
		{"gender unknown value", "gender", "M"},
		{"marital status case drift", "marital_status", "married"},
		{"marital status unknown value", "marital_status", "Separated"},
		{"age text", "age", "thirty"},
		{"age fractional", "age", "34.5"},
		{"loyalty points text", "loyalty_points", "many"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, tc.column+"\nplaceholder\n")
			row := d.Rows()[0]
			row.Set(tc.column, tabular.Parse(tc.value))

			report := New().Detect(d)
			issues := report.Issues(row.ID())
			require.NotEmpty(t, issues, "expected a finding for %q", tc.value)
			assert.Contains(t, issueKinds(issues), KindMalformed)
		})
	}
}

func TestDetectWellFormedValues(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		value  string
	}{
		{"email", "email", "jane.doe-1@mail.example.com"},
		{"phone three digits", "phone", "489-1234"},
		{"phone four digits", "phone", "4891-2345"},
		{"titled name", "first_name", "Jane"},
		{"numeric name left alone", "first_name", "34"},
		{"gender", "gender", "Other"},
		{"marital status", "marital_status", "Widowed"},
		{"age", "age", "120"},
		{"loyalty points zero", "loyalty_points", "0"},
		{"loyalty points fractional", "loyalty_points", "12.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, tc.column+"\nplaceholder\n")
			row := d.Rows()[0]
			row.Set(tc.column, tabular.Parse(tc.value))

			report := New().Detect(d)
			assert.Empty(t, report.Issues(row.ID()))
		})
	}
}

func TestDetectImplausible(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		value  string
	}{
		{"age zero", "age", "0"},
		{"age negative", "age", "-3"},
		{"age beyond range", "age", "121"},
		{"loyalty points negative", "loyalty_points", "-50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, tc.column+"\nplaceholder\n")
			row := d.Rows()[0]
			row.Set(tc.column, tabular.Parse(tc.value))

			report := New().Detect(d)
			issues := report.Issues(row.ID())
			require.Len(t, issues, 1)
			assert.Equal(t, KindImplausible, issues[0].Kind)
			assert.Equal(t, tc.value, issues[0].Value)
		})
	}
}

func TestDetectNonCanonical(t *testing.T) {
	t.Run("near miss carries suggestion", func(t *testing.T) {
		d := datasetFromCSV(t, "country\nGrmany\n")
		report := New().Detect(d)

		issues := report.Issues(d.Rows()[0].ID())
		require.Len(t, issues, 1)
		assert.Equal(t, KindNonCanonical, issues[0].Kind)
		assert.Equal(t, "Grmany", issues[0].Value)
		assert.Equal(t, "Germany", issues[0].Suggestion)
	})

	t.Run("no plausible match leaves suggestion empty", func(t *testing.T) {
		d := datasetFromCSV(t, "country\nXyzzyx\n")
		report := New().Detect(d)

		issues := report.Issues(d.Rows()[0].ID())
		require.Len(t, issues, 1)
		assert.Equal(t, KindNonCanonical, issues[0].Kind)
		assert.Empty(t, issues[0].Suggestion)
	})

	t.Run("case drift matches canonically", func(t *testing.T) {
		d := datasetFromCSV(t, "country\ngermany\n")
		assert.True(t, New().Detect(d).Empty())
	})

	t.Run("city uses the looser threshold", func(t *testing.T) {
		d := datasetFromCSV(t, "city\nNew Yrok\n")
		report := New().Detect(d)

		issues := report.Issues(d.Rows()[0].ID())
		require.Len(t, issues, 1)
		assert.Equal(t, "New York", issues[0].Suggestion)
	})
}

func TestDetectDuplicates(t *testing.T) {
	d := datasetFromCSV(t, `first_name,city
Jane,Seattle
John,Dallas
jane,SEATTLE
Jane,Seattle
`)
	report := New().Detect(d)

	rows := d.Rows()
	duplicates := report.Duplicates()
	require.Len(t, duplicates, 2)

	// Later occurrences are flagged in dataset order; the first stays
	// canonical.
	assert.Equal(t, rows[2].ID(), duplicates[0])
	assert.Equal(t, rows[3].ID(), duplicates[1])
	assert.False(t, report.IsDuplicate(rows[0].ID()))
	assert.True(t, report.IsDuplicate(rows[2].ID()))
}

func TestDetectUnrecognizedColumnsPassThrough(t *testing.T) {
	d := datasetFromCSV(t, `notes,account_id
totally !! malformed,x9@@
`)
	assert.True(t, New().Detect(d).Empty())
}

func TestDetectMultipleIssuesPerRow(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email,age
jane,not-an-email,130
`)
	report := New().Detect(d)

	row := d.Rows()[0]
	issues := report.Issues(row.ID())
	require.Len(t, issues, 3)

	kinds := issueKinds(issues)
	assert.Contains(t, kinds, KindMalformed)
	assert.Contains(t, kinds, KindImplausible)
}

func TestReportGrouping(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email
jane,broken
john,also-broken
`)
	report := New().Detect(d)

	byColumn := report.ByColumn()
	assert.Len(t, byColumn["first_name"], 2)
	assert.Len(t, byColumn["email"], 2)

	// Findings preserve dataset order within a column.
	rows := d.Rows()
	assert.Equal(t, rows[0].ID(), byColumn["email"][0].Row)
	assert.Equal(t, rows[1].ID(), byColumn["email"][1].Row)

	counts := report.CountByKind()
	assert.Equal(t, 4, counts[KindMalformed])
	assert.Equal(t, 4, report.IssueCount())
}

func TestReportEmpty(t *testing.T) {
	report := NewReport()
	assert.True(t, report.Empty())

	report.AddDuplicate("row-1")
	assert.False(t, report.Empty())

	// Flagging the same row twice keeps one entry.
	report.AddDuplicate("row-1")
	assert.Len(t, report.Duplicates(), 1)
}
