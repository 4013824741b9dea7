package analytics

import (
	"sort"
	"time"

	"github.com/HaeserTec/tennis-manager-sub002/internal/billing"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

// AttendanceStreak reports how many consecutive weeks (Monday-based) the
// player attended at least one effective session, counting back from the
// week of today. Rained-out and coach-cancelled sessions do not count as
// attendance. The in-progress week may still be empty without breaking the
// run. Also returns the longest such run on record.
func AttendanceStreak(playerID string, sessions []models.TrainingSession, events []models.DayEvent, today string) (current int, longest int) {
	attended := make(map[time.Time]struct{})
	for _, session := range sessions {
		if !containsID(session.ParticipantIDs, playerID) {
			continue
		}
		day, err := time.Parse(dayLayout, session.Date)
		if err != nil {
			continue
		}
		if event := billing.ResolveDayEvent(events, session.Date); event != nil {
			if event.Type == models.DayEventRain || event.Type == models.DayEventCoachCancelled {
				continue
			}
		}
		attended[weekStart(day)] = struct{}{}
	}
	if len(attended) == 0 {
		return 0, 0
	}

	weeks := make([]time.Time, 0, len(attended))
	for week := range attended {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i].Sub(weeks[i-1]) == 7*24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	anchor := weeks[len(weeks)-1]
	if day, err := time.Parse(dayLayout, today); err == nil {
		anchor = weekStart(day)
	}
	if _, ok := attended[anchor]; !ok {
		// The current week may still be open; the streak hangs on last week.
		anchor = anchor.AddDate(0, 0, -7)
	}
	for {
		if _, ok := attended[anchor]; !ok {
			break
		}
		current++
		anchor = anchor.AddDate(0, 0, -7)
	}

	return current, longest
}

func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
