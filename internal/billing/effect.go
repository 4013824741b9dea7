package billing

import (
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type EffectStatus string

const (
	EffectNormal    EffectStatus = "normal"
	EffectRain      EffectStatus = "rain"
	EffectCancelled EffectStatus = "cancelled"
)

// SessionEffect is the billing contribution of one session for one client.
type SessionEffect struct {
	Status        EffectStatus `json:"status"`
	Charge        float64      `json:"charge"`
	Credit        float64      `json:"credit"`
	Net           float64      `json:"net"`
	InvolvedCount int          `json:"involved_count"`
}

// DayEventIndex maps a calendar date to its governing event.
type DayEventIndex map[string]models.DayEvent

// IndexDayEvents builds the lookup used during billing. When a date carries
// more than one event, the first in input order governs the whole day.
func IndexDayEvents(events []models.DayEvent) DayEventIndex {
	idx := make(DayEventIndex, len(events))
	for _, event := range events {
		if _, ok := idx[event.Date]; ok {
			continue
		}
		idx[event.Date] = event
	}
	return idx
}

// ResolveDayEvent returns the governing event for a date, or nil when the
// day is unremarkable. First match wins, same rule as IndexDayEvents.
func ResolveDayEvent(events []models.DayEvent, date string) *models.DayEvent {
	for i := range events {
		if events[i].Date == date {
			return &events[i]
		}
	}
	return nil
}

// ComputeSessionEffect prices one session for the client owning
// clientPlayerIDs. A rain day waives the session outright (nothing billed,
// nothing credited); a coach cancellation credits the full amount so the
// running balance always goes down; tournaments, holidays and plain days
// bill normally. Sessions with no matching participants or a missing price
// contribute nothing. Never errors: statements must always render a number.
func ComputeSessionEffect(session models.TrainingSession, clientPlayerIDs map[string]struct{}, events DayEventIndex) SessionEffect {
	involved := 0
	seen := make(map[string]struct{}, len(session.ParticipantIDs))
	for _, id := range session.ParticipantIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := clientPlayerIDs[id]; ok {
			involved++
		}
	}
	if involved == 0 {
		return SessionEffect{Status: EffectNormal}
	}

	price := session.Price
	if price < 0 {
		price = 0
	}
	baseCharge := price * float64(involved)

	effect := SessionEffect{Status: EffectNormal, InvolvedCount: involved}
	event, ok := events[session.Date]
	if !ok {
		effect.Charge = baseCharge
		effect.Net = baseCharge
		return effect
	}

	switch event.Type {
	case models.DayEventRain:
		effect.Status = EffectRain
	case models.DayEventCoachCancelled:
		effect.Status = EffectCancelled
		effect.Credit = baseCharge
		effect.Net = -baseCharge
	default:
		effect.Charge = baseCharge
		effect.Net = baseCharge
	}
	return effect
}
