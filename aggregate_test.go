package dichecker_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dichecker "github.com/farcloser/dichecker"
)

func aggregate(t *testing.T, input string, opts dichecker.Options) (*dichecker.Report, error) {
	t.Helper()

	records, err := dichecker.Read(strings.NewReader(input))
	require.NoError(t, err)

	return dichecker.Aggregate(records, opts)
}

func TestAggregateEndToEnd(t *testing.T) {
	t.Parallel()

	input := `{"file":"a.c","pass":"P1","bugs":[[{"action":"drop","metadata":"DILocation","bb-name":"entry","fn-name":"f","instr":"ret i32 0"}]]}
{"file":"a.c","pass":"P2","bugs":[[{"action":"drop","metadata":"DISubprogram","name":"f"}]]}
`

	report, err := aggregate(t, input, dichecker.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Records)
	assert.Equal(t, 1, report.Locations.Len())
	assert.Equal(t, 1, report.Subprograms.Len())
	assert.Equal(t, 1, report.LocationSummary.Count("P1"))
	assert.Equal(t, 0, report.LocationSummary.Count("P2"))
	assert.Equal(t, 1, report.SubprogramSummary.Count("P2"))

	// Every record creates a group in both indices.
	group, ok := report.Locations.Lookup("a.c", "P2")
	require.True(t, ok)
	assert.Empty(t, group.Failures)

	group, ok = report.Locations.Lookup("a.c", "P1")
	require.True(t, ok)
	assert.Equal(t, []dichecker.LocationFailure{{
		Action:         "drop",
		BasicBlockName: "entry",
		FunctionName:   "f",
		Instruction:    "ret i32 0",
	}}, group.Failures)

	spGroup, ok := report.Subprograms.Lookup("a.c", "P1")
	require.True(t, ok)
	assert.Empty(t, spGroup.Failures)
}

func TestAggregateTotalsMatchEntries(t *testing.T) {
	t.Parallel()

	input := `{"file":"a.c","pass":"p1","bugs":[[{"action":"drop","metadata":"DISubprogram","name":"f"},{"action":"drop","metadata":"DISubprogram","name":"g"},{"action":"drop","metadata":"DILocation","bb-name":"b","fn-name":"f","instr":"i"}]]}
{"file":"b.c","pass":"p1","bugs":[[{"action":"not-generate","metadata":"DISubprogram","name":"h"}]]}
{"file":"a.c","pass":"p1","bugs":[[{"action":"drop","metadata":"DILocation","bb-name":"b","fn-name":"g","instr":"j"}]]}
{"file":"b.c","pass":"p2","bugs":[[]]}
`

	report, err := aggregate(t, input, dichecker.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Subprograms.Len())
	assert.Equal(t, report.Subprograms.Len(), report.SubprogramSummary.Total())
	assert.Equal(t, 2, report.Locations.Len())
	assert.Equal(t, report.Locations.Len(), report.LocationSummary.Total())

	// Repeated (file, pass) pairs accumulate.
	group, ok := report.Locations.Lookup("a.c", "p1")
	require.True(t, ok)
	require.Len(t, group.Failures, 2)
	assert.Equal(t, "f", group.Failures[0].FunctionName)
	assert.Equal(t, "g", group.Failures[1].FunctionName)

	_, ok = report.Subprograms.Lookup("b.c", "p2")
	assert.True(t, ok)
	assert.Len(t, report.Subprograms.Groups(), 3)
}

func TestAggregateBugGroups(t *testing.T) {
	t.Parallel()

	input := `{"file":"a.c","pass":"p1","bugs":[[{"action":"drop","metadata":"DISubprogram","name":"f"}],[{"action":"drop","metadata":"DISubprogram","name":"g"}]]}
{"file":"a.c","pass":"p2","bugs":[]}
`

	report, err := aggregate(t, input, dichecker.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Subprograms.Len())

	_, ok := report.Subprograms.Lookup("a.c", "p2")
	assert.True(t, ok)

	report, err = aggregate(t, input, dichecker.Options{AllGroups: true})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Subprograms.Len())
	assert.Equal(t, 2, report.SubprogramSummary.Count("p1"))
}

func TestAggregateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
		want    string
	}{
		{
			name:    "unsupported metadata",
			input:   `{"file":"a.c","pass":"p1","bugs":[[{"action":"drop","metadata":"DIVariable","name":"v"}]]}`,
			wantErr: dichecker.ErrUnsupportedMetadata,
			want:    "DIVariable",
		},
		{
			name:    "missing file",
			input:   `{"pass":"p1","bugs":[[]]}`,
			wantErr: dichecker.ErrMissingField,
			want:    "file",
		},
		{
			name:    "missing pass",
			input:   `{"file":"a.c","bugs":[[]]}`,
			wantErr: dichecker.ErrMissingField,
			want:    "pass",
		},
		{
			name:    "missing bugs",
			input:   `{"file":"a.c","pass":"p1"}`,
			wantErr: dichecker.ErrMissingField,
			want:    "bugs",
		},
		{
			name:    "bugs not a list of lists",
			input:   `{"file":"a.c","pass":"p1","bugs":[{"action":"drop"}]}`,
			wantErr: dichecker.ErrMalformedInput,
			want:    "record 1",
		},
		{
			name: "missing entry field on second record",
			input: `{"file":"a.c","pass":"p1","bugs":[[]]}
{"file":"a.c","pass":"p2","bugs":[[{"action":"drop","metadata":"DILocation","fn-name":"f","instr":"i"}]]}`,
			wantErr: dichecker.ErrMissingField,
			want:    "record 2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			report, err := aggregate(t, tc.input, dichecker.DefaultOptions())
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, report)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestAggregateEmptyNames(t *testing.T) {
	t.Parallel()

	input := `{"file":"","pass":"p1","bugs":[[{"action":"drop","metadata":"DISubprogram","name":"f"}]]}
{"file":"a.c","pass":"","bugs":[[{"action":"drop","metadata":"DILocation","bb-name":"b","fn-name":"g","instr":"i"}]]}
`

	report, err := aggregate(t, input, dichecker.DefaultOptions())
	require.NoError(t, err)

	group, ok := report.Subprograms.Lookup("", "p1")
	require.True(t, ok)
	assert.Len(t, group.Failures, 1)
	assert.Equal(t, 1, report.SubprogramSummary.Count("p1"))

	group2, ok := report.Locations.Lookup("a.c", "")
	require.True(t, ok)
	assert.Len(t, group2.Failures, 1)
	assert.Equal(t, 1, report.LocationSummary.Count(""))
}

func TestAggregateNullName(t *testing.T) {
	t.Parallel()

	_, err := aggregate(t, `{"file":null,"pass":"p1","bugs":[[]]}`, dichecker.DefaultOptions())
	require.ErrorIs(t, err, dichecker.ErrMissingField)
}
