package report

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows replays canned row values through the pgx.Rows interface.
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (f *fakeRows) Close()                                       {}
func (f *fakeRows) Err() error                                   { return f.err }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}
func (f *fakeRows) Scan(dest ...any) error { return nil }
func (f *fakeRows) Values() ([]any, error) { return f.rows[f.idx-1], nil }
func (f *fakeRows) RawValues() [][]byte    { return nil }
func (f *fakeRows) Conn() *pgx.Conn        { return nil }

func TestNormalizeSeriesEmpty(t *testing.T) {
	spec := QuerySpec{Kind: KindDAU, Shape: ShapeSeries, Value: FieldCount}
	got, err := NormalizeSeries(spec, &fakeRows{})
	require.NoError(t, err)

	assert.NotNil(t, got.Labels)
	assert.NotNil(t, got.Values)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Values)
}

func TestNormalizeSeriesCoercion(t *testing.T) {
	spec := QuerySpec{Kind: KindRevenuePerDay, Shape: ShapeSeries, Value: FieldCurrency}
	rows := &fakeRows{rows: [][]any{
		{"2026-08-30", 1234.567},
		{"2026-08-29", int64(200)},
		{"2026-08-28", nil},
	}}
	got, err := NormalizeSeries(spec, rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-08-30", "2026-08-29", "2026-08-28"}, got.Labels)
	assert.Equal(t, []float64{1234.57, 200, 0}, got.Values)
}

func TestNormalizeSeriesFixedLabels(t *testing.T) {
	spec := QuerySpec{
		Kind:        KindAcquisitionFunnel,
		Shape:       ShapeSeries,
		Value:       FieldCount,
		FixedLabels: []string{"visited", "started_signup", "completed_signup"},
	}

	got, err := NormalizeSeries(spec, &fakeRows{rows: [][]any{{int64(100), int64(40), int64(12)}}})
	require.NoError(t, err)
	assert.Equal(t, spec.FixedLabels, got.Labels)
	assert.Equal(t, []float64{100, 40, 12}, got.Values)

	// No row at all still yields the full label set, zero-valued.
	empty, err := NormalizeSeries(spec, &fakeRows{})
	require.NoError(t, err)
	assert.Equal(t, spec.FixedLabels, empty.Labels)
	assert.Equal(t, []float64{0, 0, 0}, empty.Values)
}

func TestNormalizeSummary(t *testing.T) {
	spec := QuerySpec{
		Kind:  KindPartnerKPIs,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "nps_avg", Kind: FieldScore},
			{Name: "payout_30d", Kind: FieldCurrency},
		},
	}

	got, err := NormalizeSummary(spec, &fakeRows{rows: [][]any{{8.6667, 1520.999}}})
	require.NoError(t, err)
	assert.Equal(t, Summary{"nps_avg": 8.7, "payout_30d": 1521.0}, got)
}

func TestNormalizeSummaryEmptyResult(t *testing.T) {
	spec := QuerySpec{
		Kind:  KindActiveUsers,
		Shape: ShapeSummary,
		Fields: []SummaryField{
			{Name: "dau", Kind: FieldCount},
			{Name: "wau", Kind: FieldCount},
			{Name: "mau", Kind: FieldCount},
		},
	}
	got, err := NormalizeSummary(spec, &fakeRows{})
	require.NoError(t, err)
	assert.Equal(t, Summary{"dau": 0, "wau": 0, "mau": 0}, got)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		kind FieldKind
		in   float64
		want float64
	}{
		{"count truncates", FieldCount, 12.9, 12},
		{"count negative truncates toward zero", FieldCount, -3.7, -3},
		{"currency rounds to cents", FieldCurrency, 10.006, 10.01},
		{"currency keeps cents", FieldCurrency, 99.99, 99.99},
		{"score one decimal", FieldScore, 8.15, 8.2},
		{"percent one decimal", FieldPercent, 33.333, 33.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, coerce(tt.kind, tt.in), 1e-9)
		})
	}
}

func TestAsFloat64(t *testing.T) {
	assert.Equal(t, float64(0), asFloat64(nil))
	assert.Equal(t, float64(7), asFloat64(int64(7)))
	assert.Equal(t, float64(7), asFloat64(int32(7)))
	assert.Equal(t, 1.5, asFloat64(1.5))
	assert.Equal(t, float64(0), asFloat64("not a number"))
}
