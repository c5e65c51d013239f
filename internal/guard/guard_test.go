package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mExOms/pathfinder/internal/clock"
)

func intp(v int) *int { return &v }

func TestLimits_ValidateRejectsBelowOne(t *testing.T) {
	assert.Error(t, Limits{MaxExpansions: 0, MaxVisitedStates: 1}.Validate())
	assert.Error(t, Limits{MaxExpansions: 1, MaxVisitedStates: 0}.Validate())
	assert.Error(t, Limits{MaxExpansions: 1, MaxVisitedStates: 1, TimeBudgetMs: intp(0)}.Validate())
	assert.NoError(t, Limits{MaxExpansions: 1, MaxVisitedStates: 1}.Validate())
}

func TestTracker_GuardsAllowStopsAtMaxExpansions(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(0, 0))
	tracker := NewTracker(Limits{MaxExpansions: 2, MaxVisitedStates: 10}, fixed)

	require.True(t, tracker.GuardsAllow())
	tracker.CountExpansion()
	require.True(t, tracker.GuardsAllow())
	tracker.CountExpansion()
	assert.False(t, tracker.GuardsAllow())

	report := tracker.Report()
	assert.True(t, report.ExpansionsReached)
	assert.True(t, report.Any())
}

func TestTracker_RegisterVisitedStateStopsAtLimit(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(0, 0))
	tracker := NewTracker(Limits{MaxExpansions: 10, MaxVisitedStates: 1}, fixed)

	assert.False(t, tracker.RegisterVisitedState())
	assert.True(t, tracker.RegisterVisitedState())

	report := tracker.Report()
	assert.True(t, report.VisitedStatesReached)
}

func TestTracker_CheckTimeBudget(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(0, 0))
	ms := 100
	tracker := NewTracker(Limits{MaxExpansions: 10, MaxVisitedStates: 10, TimeBudgetMs: &ms}, fixed)

	assert.False(t, tracker.CheckTimeBudget())
	fixed.Advance(200 * time.Millisecond)
	assert.True(t, tracker.CheckTimeBudget())
	assert.True(t, tracker.Report().TimeBudgetReached)
}

func TestTracker_NoTimeBudgetNeverBreaches(t *testing.T) {
	fixed := clock.NewFixed(time.Unix(0, 0))
	tracker := NewTracker(Limits{MaxExpansions: 10, MaxVisitedStates: 10}, fixed)
	fixed.Advance(time.Hour)
	assert.False(t, tracker.CheckTimeBudget())
}

func TestAggregate_SumsCountersAndOrsFlags(t *testing.T) {
	reports := []Report{
		{Expansions: 3, VisitedStates: 1, ElapsedMilliseconds: 10, ExpansionsReached: true, ExpansionLimit: 100},
		{Expansions: 2, VisitedStates: 4, ElapsedMilliseconds: 5, VisitedStatesReached: true, ExpansionLimit: 100},
	}
	out := Aggregate(reports)
	assert.Equal(t, 5, out.Expansions)
	assert.Equal(t, 5, out.VisitedStates)
	assert.InDelta(t, 15, out.ElapsedMilliseconds, 0.001)
	assert.True(t, out.ExpansionsReached)
	assert.True(t, out.VisitedStatesReached)
	assert.Equal(t, 100, out.ExpansionLimit)
}

func TestAggregate_EmptyIsZeroValue(t *testing.T) {
	assert.Equal(t, Report{}, Aggregate(nil))
}
