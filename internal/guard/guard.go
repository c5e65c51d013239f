// Package guard tracks the search engine's expansion/visited-state/
// wall-clock limits and produces the GuardReport external adapters see.
// It tracks a Value/CurrentUsed pair per limit and flags a breach once
// usage crosses it, the same way a risk-limit manager tracks exposure
// against a budget — here the "limits" are search-resource budgets
// instead of trading risk budgets.
package guard

import (
	"time"

	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/perr"
)

// Limits are the configured guard thresholds. TimeBudgetMs is optional;
// nil means unbounded.
type Limits struct {
	MaxExpansions    int
	MaxVisitedStates int
	TimeBudgetMs     *int
}

// Validate reports guard limits below 1 as input errors.
func (l Limits) Validate() error {
	if l.MaxExpansions < 1 {
		return perr.Inputf("guard.Limits.Validate", "maxExpansions %d must be >= 1", l.MaxExpansions)
	}
	if l.MaxVisitedStates < 1 {
		return perr.Inputf("guard.Limits.Validate", "maxVisitedStates %d must be >= 1", l.MaxVisitedStates)
	}
	if l.TimeBudgetMs != nil && *l.TimeBudgetMs < 1 {
		return perr.Inputf("guard.Limits.Validate", "timeBudgetMs %d must be >= 1 when set", *l.TimeBudgetMs)
	}
	return nil
}

// Report is the external GuardReport shape.
type Report struct {
	ExpansionsReached     bool
	VisitedStatesReached  bool
	TimeBudgetReached     bool
	Expansions            int
	VisitedStates         int
	ElapsedMilliseconds   float64
	ExpansionLimit        int
	VisitedStateLimit     int
	TimeBudgetLimit       *int
}

// Any reports whether any guard limit was reached.
func (r Report) Any() bool {
	return r.ExpansionsReached || r.VisitedStatesReached || r.TimeBudgetReached
}

// Tracker accumulates guard state across a single search call.
type Tracker struct {
	limits  Limits
	clock   clock.Clock
	start   time.Time

	expansions    int
	visitedStates int

	expansionsReached    bool
	visitedStatesReached bool
	timeBudgetReached    bool
}

// NewTracker starts a fresh tracker using c to read the start instant.
func NewTracker(limits Limits, c clock.Clock) *Tracker {
	return &Tracker{limits: limits, clock: c, start: c.Now()}
}

// GuardsAllow reports whether another expansion may be popped from the
// frontier. It sets the expansions-reached flag the first time the limit
// is hit.
func (t *Tracker) GuardsAllow() bool {
	if t.expansions >= t.limits.MaxExpansions {
		t.expansionsReached = true
		return false
	}
	return true
}

// CountExpansion increments the expansion counter for the state just
// popped.
func (t *Tracker) CountExpansion() { t.expansions++ }

// CheckTimeBudget polls the clock and reports whether the time budget was
// breached. Called once per loop iteration, at the head.
func (t *Tracker) CheckTimeBudget() bool {
	if t.limits.TimeBudgetMs == nil {
		return false
	}
	elapsed := t.clock.Now().Sub(t.start)
	if elapsed >= time.Duration(*t.limits.TimeBudgetMs)*time.Millisecond {
		t.timeBudgetReached = true
		return true
	}
	return false
}

// RegisterVisitedState reports whether registering one more distinct
// signature would exceed MaxVisitedStates. On true, the caller must skip
// the candidate and not count it.
func (t *Tracker) RegisterVisitedState() bool {
	if t.visitedStates >= t.limits.MaxVisitedStates {
		t.visitedStatesReached = true
		return true
	}
	t.visitedStates++
	return false
}

// Report snapshots the current guard state.
func (t *Tracker) Report() Report {
	return Report{
		ExpansionsReached:    t.expansionsReached,
		VisitedStatesReached: t.visitedStatesReached,
		TimeBudgetReached:    t.timeBudgetReached,
		Expansions:           t.expansions,
		VisitedStates:        t.visitedStates,
		ElapsedMilliseconds:  float64(t.clock.Now().Sub(t.start)) / float64(time.Millisecond),
		ExpansionLimit:       t.limits.MaxExpansions,
		VisitedStateLimit:    t.limits.MaxVisitedStates,
		TimeBudgetLimit:      t.limits.TimeBudgetMs,
	}
}

// Aggregate combines guard reports across execution-plan iterations:
// sums counters and elapsed time, ORs breach flags, and takes limits
// from the first report.
func Aggregate(reports []Report) Report {
	if len(reports) == 0 {
		return Report{}
	}
	out := Report{
		ExpansionLimit:    reports[0].ExpansionLimit,
		VisitedStateLimit: reports[0].VisitedStateLimit,
		TimeBudgetLimit:   reports[0].TimeBudgetLimit,
	}
	for _, r := range reports {
		out.Expansions += r.Expansions
		out.VisitedStates += r.VisitedStates
		out.ElapsedMilliseconds += r.ElapsedMilliseconds
		out.ExpansionsReached = out.ExpansionsReached || r.ExpansionsReached
		out.VisitedStatesReached = out.VisitedStatesReached || r.VisitedStatesReached
		out.TimeBudgetReached = out.TimeBudgetReached || r.TimeBudgetReached
	}
	return out
}
