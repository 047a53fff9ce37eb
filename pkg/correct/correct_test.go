package correct

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/scrub/pkg/changelog"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/tabular"
)

func datasetFromCSV(t *testing.T, csv string) *tabular.Dataset {
	t.Helper()
	d, err := tabular.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return d
}

// repair runs a real detection pass and corrects against it.
func repair(t *testing.T, d *tabular.Dataset) (*tabular.Dataset, []changelog.Record) {
	t.Helper()
	return New().Correct(d, detect.New().Detect(d))
}

func recordFor(records []changelog.Record, column string) (changelog.Record, bool) {
	for _, r := range records {
		if r.Column == column {
			return r, true
		}
	}
	return changelog.Record{}, false
}

func TestCorrectCountrySuggestion(t *testing.T) {
	d := datasetFromCSV(t, "country\nGrmany\n")
	out, records := repair(t, d)

	require.Len(t, records, 1)
	assert.Equal(t, "Grmany", records[0].Old)
	assert.Equal(t, "Germany", records[0].New)
	assert.Equal(t, changelog.ActionCorrected, records[0].Action)

	assert.Equal(t, "Germany", out.Rows()[0].Get("country").String())

	// The input dataset is untouched.
	assert.Equal(t, "Grmany", d.Rows()[0].Get("country").String())

	// The repaired value passes the next detection pass.
	assert.True(t, detect.New().Detect(out).Empty())
}

func TestCorrectUnresolvableCountry(t *testing.T) {
	d := datasetFromCSV(t, "country\nXyzzyx\n")
	out, records := repair(t, d)

	// No plausible match: no mutation, no record, flagged again next
	// pass.
	assert.Empty(t, records)
	assert.Equal(t, "Xyzzyx", out.Rows()[0].Get("country").String())
	assert.False(t, detect.New().Detect(out).Empty())
}

func TestCorrectNames(t *testing.T) {
	d := datasetFromCSV(t, `first_name,last_name,full_name
jane,DOE,jane DOE
`)
	out, records := repair(t, d)
	require.Len(t, records, 3)

	row := out.Rows()[0]
	assert.Equal(t, "Jane", row.Get("first_name").String())
	assert.Equal(t, "Doe", row.Get("last_name").String())
	assert.Equal(t, "Jane Doe", row.Get("full_name").String())

	assert.True(t, detect.New().Detect(out).Empty())
}

func TestCorrectEmailClearedForEnrichment(t *testing.T) {
	d := datasetFromCSV(t, "email\nnot-an-email\n")
	out, records := repair(t, d)

	require.Len(t, records, 1)
	assert.Equal(t, "not-an-email", records[0].Old)
	assert.Equal(t, "", records[0].New)

	assert.True(t, out.Rows()[0].Get("email").IsMissing())
}

func TestCorrectMissingCellsLeftAlone(t *testing.T) {
	d := datasetFromCSV(t, "email,first_name\n,\n")
	out, records := repair(t, d)

	// Missing values belong to enrichment; correction emits nothing.
	assert.Empty(t, records)
	assert.True(t, out.Rows()[0].Get("email").IsMissing())
}

func TestCorrectPhone(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"separators stripped", "(489) 123-4567", "9123-4567"},
		{"short number padded", "123-456", "0012-3456"},
		{"plain digits", "48912345", "4891-2345"},
		{"no digits at all", "call me", "0000-0000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, "phone\nplaceholder\n")
			d.Rows()[0].Set("phone", tabular.Parse(tc.in))

			out, records := repair(t, d)
			require.Len(t, records, 1)
			assert.Equal(t, tc.want, out.Rows()[0].Get("phone").String())
			assert.True(t, detect.New().Detect(out).Empty())
		})
	}
}

func TestCorrectVocabularies(t *testing.T) {
	testCases := []struct {
		name   string
		column string
		in     string
		want   string
	}{
		{"gender case drift", "gender", "male", "Male"},
		{"gender unknown", "gender", "M", "Other"},
		{"marital case drift", "marital_status", "widowed", "Widowed"},
		{"marital unknown", "marital_status", "Separated", "Single"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, tc.column+"\n"+tc.in+"\n")
			out, records := repair(t, d)

			require.Len(t, records, 1)
			assert.Equal(t, tc.want, out.Rows()[0].Get(tc.column).String())
			assert.True(t, detect.New().Detect(out).Empty())
		})
	}
}

func TestCorrectAge(t *testing.T) {
	testCases := []struct {
		name string
		in   string
	}{
		{"negative", "-3"},
		{"zero", "0"},
		{"beyond range", "150"},
		{"unparseable", "thirty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := datasetFromCSV(t, "age\nplaceholder\n")
			d.Rows()[0].Set("age", tabular.Parse(tc.in))

			out, records := repair(t, d)
			require.Len(t, records, 1)
			assert.Equal(t, tc.in, records[0].Old)
			assert.Equal(t, "", records[0].New)

			// Nulled out, never replaced with a guess.
			assert.True(t, out.Rows()[0].Get("age").IsMissing())
		})
	}
}

func TestCorrectLoyaltyPoints(t *testing.T) {
	t.Run("negative clamps to zero", func(t *testing.T) {
		d := datasetFromCSV(t, "loyalty_points\n-50\n")
		out, records := repair(t, d)

		require.Len(t, records, 1)
		assert.Equal(t, "-50", records[0].Old)
		assert.Equal(t, "0", records[0].New)
		assert.Equal(t, "0", out.Rows()[0].Get("loyalty_points").String())
		assert.True(t, detect.New().Detect(out).Empty())
	})

	t.Run("unparseable clears to missing", func(t *testing.T) {
		d := datasetFromCSV(t, "loyalty_points\nmany\n")
		out, records := repair(t, d)

		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].New)
		assert.True(t, out.Rows()[0].Get("loyalty_points").IsMissing())
	})
}

func TestCorrectDeduplication(t *testing.T) {
	d := datasetFromCSV(t, `first_name,city
Jane,Seattle
Jane,Seattle
jane,SEATTLE
John,Dallas
`)
	report := detect.New().Detect(d)
	out, records := New().Correct(d, report)

	assert.Equal(t, 2, out.Len())

	var dropped []changelog.Record
	for _, r := range records {
		if r.Action == changelog.ActionDeduplicated {
			dropped = append(dropped, r)
		}
	}
	require.Len(t, dropped, 2)

	// One record per dropped row: full snapshot as old value, nothing
	// as new.
	assert.Equal(t, d.Rows()[1].ID(), dropped[0].Row)
	assert.Equal(t, "first_name=Jane, city=Seattle", dropped[0].Old)
	assert.Equal(t, "", dropped[0].New)
	assert.Equal(t, "", dropped[0].Column)

	// The first occurrence survives.
	_, ok := out.Row(d.Rows()[0].ID())
	assert.True(t, ok)

	// No cell corrections were emitted for dropped rows.
	for _, r := range records {
		if r.Action == changelog.ActionCorrected {
			assert.NotEqual(t, d.Rows()[1].ID(), r.Row)
			assert.NotEqual(t, d.Rows()[2].ID(), r.Row)
		}
	}
}

func TestCorrectOnlyFlaggedRows(t *testing.T) {
	d := datasetFromCSV(t, `gender
male
female
`)
	rows := d.Rows()

	// A report that only mentions the first row.
	report := detect.NewReport()
	report.Add(rows[0].ID(), detect.Issue{Column: "gender", Kind: detect.KindMalformed, Value: "male"})

	out, records := New().Correct(d, report)
	require.Len(t, records, 1)
	assert.Equal(t, rows[0].ID(), records[0].Row)

	// The unflagged row is untouched even though the same policy
	// would apply.
	assert.Equal(t, "female", out.Rows()[1].Get("gender").String())
}

func TestCorrectEveryMutationHasARecord(t *testing.T) {
	d := datasetFromCSV(t, `first_name,email,phone,gender,age,loyalty_points,country,city,notes
jane,bad-email,123,male,150,-5,Grmany,New Yrok,keep me
John,john@example.com,489-1234,Male,40,10,Japan,Dallas,also keep
`)
	out, records := repair(t, d)

	// Diff the surviving rows cell by cell; every difference must map
	// to exactly one record.
	type cell struct {
		row    tabular.RowID
		column string
	}
	changed := make(map[cell]int)
	for _, row := range out.Rows() {
		original, ok := d.Row(row.ID())
		require.True(t, ok)
		for _, column := range d.Columns() {
			if !row.Get(column).Equal(original.Get(column)) {
				changed[cell{row.ID(), column}]++
			}
		}
	}

	recorded := make(map[cell]int)
	for _, r := range records {
		require.Equal(t, changelog.ActionCorrected, r.Action)
		recorded[cell{r.Row, r.Column}]++
	}

	assert.Equal(t, changed, recorded)

	// Unrecognized columns pass through untouched.
	assert.Equal(t, "keep me", out.Rows()[0].Get("notes").String())
}
