package analytics

import (
	"testing"
	"time"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

func link(id, clientID string) models.Player {
	return models.Player{ID: id, Name: id, ClientID: &clientID}
}

func TestRevenueByMonthFollowsStatementRules(t *testing.T) {
	clients := []models.Client{
		{
			ID: "c1",
			Payments: []models.Payment{
				{ID: "pay1", ClientID: "c1", Date: "2026-01-20", Amount: 400},
				{ID: "pay2", ClientID: "c1", Date: "2026-02-03", Amount: 100},
			},
		},
	}
	players := []models.Player{link("p1", "c1")}
	sessions := []models.TrainingSession{
		{ID: "s1", Date: "2026-01-05", StartTime: "14:00", Price: 200, ParticipantIDs: []string{"p1"}},
		{ID: "s2", Date: "2026-01-12", StartTime: "14:00", Price: 200, ParticipantIDs: []string{"p1"}},
		{ID: "s3", Date: "2026-02-02", StartTime: "14:00", Price: 200, ParticipantIDs: []string{"p1"}},
	}
	events := []models.DayEvent{{ID: "e1", Date: "2026-01-12", Type: models.DayEventRain}}
	expenses := []models.Expense{{ID: "x1", Date: "2026-01-15", Category: "balls", Amount: 50}}

	report := RevenueByMonth(clients, players, sessions, events, expenses, "2026-01", "2026-02")

	if len(report) != 2 {
		t.Fatalf("expected 2 months, got %d", len(report))
	}
	january := report[0]
	if january.Month != "2026-01" || january.Billed != 200 {
		t.Fatalf("rained-out session must not bill: %+v", january)
	}
	if january.Collected != 400 || january.Expenses != 50 || january.Net != 350 {
		t.Fatalf("unexpected january figures: %+v", january)
	}
	february := report[1]
	if february.Billed != 200 || february.Collected != 100 {
		t.Fatalf("unexpected february figures: %+v", february)
	}
	if february.Net != 100 {
		t.Fatalf("net must track cash collected, not billed fees: %+v", february)
	}
}

func TestRevenueByMonthUnlinkedPlayersBillNobody(t *testing.T) {
	players := []models.Player{{ID: "p1", Name: "p1"}}
	sessions := []models.TrainingSession{
		{ID: "s1", Date: "2026-01-05", Price: 500, ParticipantIDs: []string{"p1"}},
	}

	report := RevenueByMonth(nil, players, sessions, nil, nil, "2026-01", "2026-01")
	if report[0].Billed != 0 {
		t.Fatalf("player without a client must not produce revenue, got %v", report[0].Billed)
	}
}

func TestRevenueByMonthRejectsBadRange(t *testing.T) {
	if got := RevenueByMonth(nil, nil, nil, nil, nil, "2026-03", "2026-01"); got != nil {
		t.Fatalf("inverted range must yield nil, got %+v", got)
	}
	if got := RevenueByMonth(nil, nil, nil, nil, nil, "March", "2026-01"); got != nil {
		t.Fatalf("bad month must yield nil, got %+v", got)
	}
}

func TestAttendanceStreakCountsConsecutiveWeeks(t *testing.T) {
	sessions := []models.TrainingSession{
		{ID: "s1", Date: "2026-01-05", ParticipantIDs: []string{"p1"}},
		{ID: "s2", Date: "2026-01-12", ParticipantIDs: []string{"p1"}},
		{ID: "s3", Date: "2026-01-19", ParticipantIDs: []string{"p1"}},
		// gap: week of 2026-01-26 missed
		{ID: "s4", Date: "2026-02-02", ParticipantIDs: []string{"p1"}},
		{ID: "s5", Date: "2026-02-09", ParticipantIDs: []string{"p1"}},
	}

	current, longest := AttendanceStreak("p1", sessions, nil, "2026-02-11")
	if current != 2 {
		t.Fatalf("expected current streak 2, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest streak 3, got %d", longest)
	}
}

func TestAttendanceStreakIgnoresRainedOutSessions(t *testing.T) {
	sessions := []models.TrainingSession{
		{ID: "s1", Date: "2026-01-05", ParticipantIDs: []string{"p1"}},
		{ID: "s2", Date: "2026-01-12", ParticipantIDs: []string{"p1"}},
	}
	events := []models.DayEvent{{ID: "e1", Date: "2026-01-12", Type: models.DayEventRain}}

	// A week later: the rained-out 01-12 week counts as missed, so the run
	// back from last week finds nothing.
	current, longest := AttendanceStreak("p1", sessions, events, "2026-01-21")
	if current != 0 {
		t.Fatalf("rained-out week broke the streak; expected current 0, got %d", current)
	}
	if longest != 1 {
		t.Fatalf("expected longest 1, got %d", longest)
	}
}

func TestAttendanceStreakToleratesOpenCurrentWeek(t *testing.T) {
	sessions := []models.TrainingSession{
		{ID: "s1", Date: "2026-01-05", ParticipantIDs: []string{"p1"}},
		{ID: "s2", Date: "2026-01-12", ParticipantIDs: []string{"p1"}},
	}

	// Monday of the following week: no session yet, streak holds at 2.
	current, _ := AttendanceStreak("p1", sessions, nil, "2026-01-19")
	if current != 2 {
		t.Fatalf("open week must not break the streak, got %d", current)
	}
}

func TestAttendanceStreakNoHistory(t *testing.T) {
	current, longest := AttendanceStreak("p1", nil, nil, "2026-01-19")
	if current != 0 || longest != 0 {
		t.Fatalf("expected zeros, got %d/%d", current, longest)
	}
}

func TestProgressTrendForPlayer(t *testing.T) {
	base := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	logs := []models.SessionLog{
		{ID: "l3", Date: "2026-01-19", Total: 8, Technique: 2, Footwork: 2, Consistency: 2, Attitude: 1, Matchplay: 1, CreatedAt: base.AddDate(0, 0, 18)},
		{ID: "l1", Date: "2026-01-05", Total: 4, Technique: 1, Footwork: 1, Consistency: 0, Attitude: 1, Matchplay: 1, CreatedAt: base},
		{ID: "l2", Date: "2026-01-12", Total: 6, Technique: 1, Footwork: 1, Consistency: 2, Attitude: 1, Matchplay: 1, CreatedAt: base.AddDate(0, 0, 7)},
	}

	trend := ProgressTrendForPlayer(logs)

	if trend.Entries != 3 || trend.First != 4 || trend.Latest != 8 {
		t.Fatalf("unexpected trend bounds: %+v", trend)
	}
	if trend.Average != 6 {
		t.Fatalf("expected average 6, got %v", trend.Average)
	}
	if trend.Slope != 2 {
		t.Fatalf("expected slope 2 for 4,6,8, got %v", trend.Slope)
	}
	if trend.Metrics["consistency"] != 4.0/3.0 {
		t.Fatalf("unexpected consistency average: %v", trend.Metrics["consistency"])
	}
}

func TestProgressTrendEmpty(t *testing.T) {
	trend := ProgressTrendForPlayer(nil)
	if trend.Entries != 0 || trend.Slope != 0 {
		t.Fatalf("expected zero trend, got %+v", trend)
	}
}
