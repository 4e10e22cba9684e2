package report

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter marks validation failures that callers should map
// to a client error. It is always returned before any SQL runs.
var ErrInvalidParameter = errors.New("invalid parameter")

// Grouping selects the time bucket for series metrics that support it.
type Grouping string

const (
	GroupByDay   Grouping = "day"
	GroupByMonth Grouping = "month"
	GroupByHour  Grouping = "hour"
)

// Options carries the caller-supplied filters for a metric.
// The zero value is usable: Days defaults to 30 and GroupBy to day.
type Options struct {
	// Days is the size of the trailing window in days.
	Days int
	// EntityID scopes a metric to one partner, client or user. Zero means unset.
	EntityID int64
	// GroupBy selects the time bucket for metrics that support grouping.
	GroupBy Grouping
}

func (o Options) withDefaults() Options {
	if o.Days == 0 {
		o.Days = 30
	}
	if o.GroupBy == "" {
		o.GroupBy = GroupByDay
	}
	return o
}

func (o Options) validate(kind Kind) error {
	if o.Days <= 0 {
		return fmt.Errorf("%w: days must be a positive integer, got %d", ErrInvalidParameter, o.Days)
	}
	if o.EntityID < 0 {
		return fmt.Errorf("%w: entity id must be a positive integer, got %d", ErrInvalidParameter, o.EntityID)
	}
	switch o.GroupBy {
	case GroupByDay, GroupByMonth, GroupByHour:
	default:
		return fmt.Errorf("%w: unknown grouping %q", ErrInvalidParameter, o.GroupBy)
	}
	if entityRequired[kind] && o.EntityID == 0 {
		return fmt.Errorf("%w: metric %q requires an entity id", ErrInvalidParameter, kind)
	}
	return nil
}
