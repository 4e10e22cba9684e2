package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
)

// Series is the canonical time- or category-series payload: two
// parallel arrays of equal length. Both are non-nil even when empty.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Summary is the canonical flat scalar payload.
type Summary map[string]float64

// Normalize shapes raw query rows into the metric's canonical payload.
// It consumes and closes rows. SQL NULLs come back as zero, counts are
// truncated, currency is rounded to cents, scores and percentages to
// one decimal place.
func Normalize(spec QuerySpec, rows pgx.Rows) (any, error) {
	switch spec.Shape {
	case ShapeSummary:
		return NormalizeSummary(spec, rows)
	default:
		return NormalizeSeries(spec, rows)
	}
}

// NormalizeSeries shapes rows into a Series. For specs with fixed
// labels the query returns a single row with one column per label;
// otherwise each row is one (label, value) pair.
func NormalizeSeries(spec QuerySpec, rows pgx.Rows) (Series, error) {
	defer rows.Close()

	out := Series{Labels: []string{}, Values: []float64{}}

	if len(spec.FixedLabels) > 0 {
		out.Labels = spec.FixedLabels
		out.Values = make([]float64, len(spec.FixedLabels))
		if rows.Next() {
			vals, err := rows.Values()
			if err != nil {
				return Series{}, fmt.Errorf("failed to read row: %w", err)
			}
			if len(vals) != len(spec.FixedLabels) {
				return Series{}, fmt.Errorf("expected %d columns, got %d", len(spec.FixedLabels), len(vals))
			}
			for i, v := range vals {
				out.Values[i] = coerce(spec.Value, asFloat64(v))
			}
		}
		return out, rows.Err()
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return Series{}, fmt.Errorf("failed to read row: %w", err)
		}
		if len(vals) != 2 {
			return Series{}, fmt.Errorf("expected 2 columns, got %d", len(vals))
		}
		out.Labels = append(out.Labels, asString(vals[0]))
		out.Values = append(out.Values, coerce(spec.Value, asFloat64(vals[1])))
	}
	return out, rows.Err()
}

// NormalizeSummary shapes a single-row result into a Summary. A result
// with no rows yields all fields set to zero.
func NormalizeSummary(spec QuerySpec, rows pgx.Rows) (Summary, error) {
	defer rows.Close()

	out := make(Summary, len(spec.Fields))
	for _, f := range spec.Fields {
		out[f.Name] = 0
	}

	if rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if len(vals) != len(spec.Fields) {
			return nil, fmt.Errorf("expected %d columns, got %d", len(spec.Fields), len(vals))
		}
		for i, f := range spec.Fields {
			out[f.Name] = coerce(f.Kind, asFloat64(vals[i]))
		}
	}
	return out, rows.Err()
}

func coerce(kind FieldKind, v float64) float64 {
	switch kind {
	case FieldCurrency:
		return math.Round(v*100) / 100
	case FieldScore, FieldPercent:
		return math.Round(v*10) / 10
	default:
		return math.Trunc(v)
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case int16:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.Format("2006-01-02")
	case int64:
		return strconv.FormatInt(s, 10)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	default:
		return fmt.Sprintf("%v", s)
	}
}
