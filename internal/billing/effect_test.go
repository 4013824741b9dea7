package billing

import (
	"testing"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestComputeSessionEffectBillsOnlyMatchingParticipants(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          350,
		ParticipantIDs: []string{"p1", "p2", "other"},
	}

	effect := ComputeSessionEffect(session, idSet("p1", "p2"), nil)

	if effect.Status != EffectNormal {
		t.Fatalf("expected normal status, got %q", effect.Status)
	}
	if effect.InvolvedCount != 2 {
		t.Fatalf("expected 2 involved, got %d", effect.InvolvedCount)
	}
	if effect.Charge != 700 || effect.Credit != 0 || effect.Net != 700 {
		t.Fatalf("unexpected amounts: %+v", effect)
	}
}

func TestComputeSessionEffectIgnoresSessionWithoutClientPlayers(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          9999,
		ParticipantIDs: []string{"someone-else"},
	}

	effect := ComputeSessionEffect(session, idSet("p1"), nil)

	if effect != (SessionEffect{Status: EffectNormal}) {
		t.Fatalf("expected zero effect, got %+v", effect)
	}
}

func TestComputeSessionEffectRainWaivesEverything(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          200,
		ParticipantIDs: []string{"p1"},
	}
	idx := IndexDayEvents([]models.DayEvent{{ID: "e1", Date: "2026-01-15", Type: models.DayEventRain}})

	effect := ComputeSessionEffect(session, idSet("p1"), idx)

	if effect.Status != EffectRain {
		t.Fatalf("expected rain status, got %q", effect.Status)
	}
	if effect.Charge != 0 || effect.Credit != 0 || effect.Net != 0 {
		t.Fatalf("rain day must contribute nothing, got %+v", effect)
	}
	if effect.InvolvedCount != 1 {
		t.Fatalf("expected 1 involved, got %d", effect.InvolvedCount)
	}
}

func TestComputeSessionEffectCoachCancellationCredits(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          200,
		ParticipantIDs: []string{"p1", "p2"},
	}
	idx := IndexDayEvents([]models.DayEvent{{ID: "e1", Date: "2026-01-15", Type: models.DayEventCoachCancelled}})

	effect := ComputeSessionEffect(session, idSet("p1", "p2"), idx)

	if effect.Status != EffectCancelled {
		t.Fatalf("expected cancelled status, got %q", effect.Status)
	}
	if effect.Charge != 0 || effect.Credit != 400 || effect.Net != -400 {
		t.Fatalf("expected full credit, got %+v", effect)
	}
}

func TestComputeSessionEffectTournamentAndHolidayBillNormally(t *testing.T) {
	for _, eventType := range []string{models.DayEventTournament, models.DayEventHoliday} {
		session := models.TrainingSession{
			ID:             "s1",
			Date:           "2026-01-15",
			Price:          150,
			ParticipantIDs: []string{"p1"},
		}
		idx := IndexDayEvents([]models.DayEvent{{ID: "e1", Date: "2026-01-15", Type: eventType}})

		effect := ComputeSessionEffect(session, idSet("p1"), idx)
		if effect.Status != EffectNormal || effect.Net != 150 {
			t.Fatalf("%s: expected normal billing, got %+v", eventType, effect)
		}
	}
}

func TestComputeSessionEffectMissingPriceContributesZero(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		ParticipantIDs: []string{"p1"},
	}

	effect := ComputeSessionEffect(session, idSet("p1"), nil)

	if effect.Net != 0 || effect.Charge != 0 {
		t.Fatalf("missing price must contribute zero, got %+v", effect)
	}
	if effect.InvolvedCount != 1 {
		t.Fatalf("expected involvement still counted, got %d", effect.InvolvedCount)
	}
}

func TestComputeSessionEffectNegativePriceTreatedAsZero(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          -50,
		ParticipantIDs: []string{"p1"},
	}

	effect := ComputeSessionEffect(session, idSet("p1"), nil)
	if effect.Net != 0 {
		t.Fatalf("negative price must contribute zero, got %+v", effect)
	}
}

func TestComputeSessionEffectCountsDuplicateParticipantOnce(t *testing.T) {
	session := models.TrainingSession{
		ID:             "s1",
		Date:           "2026-01-15",
		Price:          100,
		ParticipantIDs: []string{"p1", "p1"},
	}

	effect := ComputeSessionEffect(session, idSet("p1"), nil)
	if effect.InvolvedCount != 1 || effect.Net != 100 {
		t.Fatalf("duplicate entry must bill once, got %+v", effect)
	}
}

func TestResolveDayEventFirstMatchWins(t *testing.T) {
	events := []models.DayEvent{
		{ID: "e1", Date: "2026-01-15", Type: models.DayEventRain},
		{ID: "e2", Date: "2026-01-15", Type: models.DayEventCoachCancelled},
		{ID: "e3", Date: "2026-01-16", Type: models.DayEventHoliday},
	}

	event := ResolveDayEvent(events, "2026-01-15")
	if event == nil || event.ID != "e1" {
		t.Fatalf("expected first event to govern, got %+v", event)
	}

	if ResolveDayEvent(events, "2026-01-14") != nil {
		t.Fatalf("expected nil for a plain day")
	}

	idx := IndexDayEvents(events)
	if idx["2026-01-15"].ID != "e1" {
		t.Fatalf("index must keep the first event, got %+v", idx["2026-01-15"])
	}
}
