package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type RepeatMode string

const (
	RepeatMonth RepeatMode = "month"
	RepeatTerm  RepeatMode = "term"
)

const dayLayout = "2006-01-02"

// GenerateRecurringSeries expands a template session into weekly instances
// on the template's weekday, starting at the template's own date. Month mode
// stays inside the template's calendar month; term mode runs up to and
// including the term's end date. Day events are not consulted here: rain and
// holidays are billing-time concerns, the term bound is the only thing that
// limits generation.
//
// A template with an unparseable date, or term mode without a usable term,
// yields zero instances rather than an error.
func GenerateRecurringSeries(template models.TrainingSession, mode RepeatMode, term *models.Term, newID func() string) []models.TrainingSession {
	if newID == nil {
		newID = uuid.NewString
	}

	start, err := time.Parse(dayLayout, template.Date)
	if err != nil {
		return nil
	}

	var termEnd time.Time
	switch mode {
	case RepeatMonth:
	case RepeatTerm:
		if term == nil {
			return nil
		}
		termEnd, err = time.Parse(dayLayout, term.EndDate)
		if err != nil {
			return nil
		}
	default:
		return nil
	}

	seriesID := template.ID
	if seriesID == "" {
		seriesID = newID()
	}

	var instances []models.TrainingSession
	for date := start; ; date = date.AddDate(0, 0, 7) {
		if mode == RepeatMonth {
			if date.Month() != start.Month() || date.Year() != start.Year() {
				break
			}
		} else if date.After(termEnd) {
			break
		}

		instance := template
		instance.Date = date.Format(dayLayout)
		sid := seriesID
		instance.SeriesID = &sid
		instance.ParticipantIDs = append([]string(nil), template.ParticipantIDs...)
		if date.Equal(start) && template.ID != "" {
			instance.ID = template.ID
		} else {
			instance.ID = newID()
		}
		instances = append(instances, instance)
	}

	return instances
}

// SessionKey identifies a bookable slot. Two sessions on the same date, at
// the same start time, at the same location are the same booking.
type SessionKey struct {
	Date      string
	StartTime string
	Location  string
}

func KeyOf(session models.TrainingSession) SessionKey {
	return SessionKey{Date: session.Date, StartTime: session.StartTime, Location: session.Location}
}

// FilterExisting drops generated instances whose slot is already taken, so
// repeating over an already-populated range never double-books. Duplicates
// within the generated batch itself are dropped too.
func FilterExisting(instances, existing []models.TrainingSession) []models.TrainingSession {
	taken := make(map[SessionKey]struct{}, len(existing))
	for _, session := range existing {
		taken[KeyOf(session)] = struct{}{}
	}

	var kept []models.TrainingSession
	for _, instance := range instances {
		key := KeyOf(instance)
		if _, ok := taken[key]; ok {
			continue
		}
		taken[key] = struct{}{}
		kept = append(kept, instance)
	}
	return kept
}
