package pathfinder

import "github.com/mExOms/pathfinder/internal/guard"

func guardView(r guard.Report) GuardReport {
	return GuardReport{
		ExpansionsReached:    r.ExpansionsReached,
		VisitedStatesReached: r.VisitedStatesReached,
		TimeBudgetReached:    r.TimeBudgetReached,
		Expansions:           r.Expansions,
		VisitedStates:        r.VisitedStates,
		ElapsedMilliseconds:  r.ElapsedMilliseconds,
		ExpansionLimit:       r.ExpansionLimit,
		VisitedStateLimit:    r.VisitedStateLimit,
		TimeBudgetLimit:      r.TimeBudgetLimit,
	}
}
