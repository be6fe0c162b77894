package model

import "time"

// Window is the date range a pipeline run fetches, inclusive on both ends.
type Window struct {
	From time.Time
	To   time.Time
}

// WindowAround returns a window of lookback days before and lookahead days
// after now, snapped to whole days.
func WindowAround(now time.Time, lookback, lookahead int) Window {
	today := DateOnly(now)
	return Window{
		From: today.AddDate(0, 0, -lookback),
		To:   today.AddDate(0, 0, lookahead),
	}
}

// WindowAhead returns a window from today through days into the future.
func WindowAhead(now time.Time, days int) Window {
	today := DateOnly(now)
	return Window{
		From: today,
		To:   today.AddDate(0, 0, days),
	}
}

// FromParam and ToParam format the bounds as providers expect them.
func (w Window) FromParam() string { return w.From.Format("2006-01-02") }

// ToParam formats the upper bound for provider query strings.
func (w Window) ToParam() string { return w.To.Format("2006-01-02") }
