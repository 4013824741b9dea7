package billing

import (
	"sort"
	"time"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

// Statement is a client's monthly account summary. The closing balance is
// always exactly opening + fees - payments.
type Statement struct {
	ClientID        string          `json:"client_id"`
	Month           string          `json:"month"` // YYYY-MM
	OpeningBalance  float64         `json:"opening_balance"`
	MonthlyFees     float64         `json:"monthly_fees"`
	MonthlyPayments float64         `json:"monthly_payments"`
	ClosingBalance  float64         `json:"closing_balance"`
	Lines           []StatementLine `json:"lines"`
}

// StatementLine is one in-month session as it appears on the statement.
type StatementLine struct {
	SessionID     string       `json:"session_id"`
	Date          string       `json:"date"`
	StartTime     string       `json:"start_time"`
	Location      string       `json:"location"`
	Status        EffectStatus `json:"status"`
	InvolvedCount int          `json:"involved_count"`
	Net           float64      `json:"net"`
}

// ComputeClientStatement builds the monthly statement for one client from
// full-history snapshots. The opening balance sums every session effect and
// payment dated before the report month across the client's entire history;
// truncating the lookback to the previous month is the bug this function
// exists to prevent. Unparseable dates and malformed amounts degrade to zero
// contribution rather than failing.
func ComputeClientStatement(client models.Client, players []models.Player, sessions []models.TrainingSession, events []models.DayEvent, month string) Statement {
	statement := Statement{ClientID: client.ID, Month: month}

	monthStart, ok := parseMonth(month)
	if !ok {
		return statement
	}
	nextMonth := monthStart.AddDate(0, 1, 0)

	clientPlayerIDs := make(map[string]struct{})
	for _, player := range players {
		if player.ClientID != nil && *player.ClientID == client.ID {
			clientPlayerIDs[player.ID] = struct{}{}
		}
	}

	idx := IndexDayEvents(events)
	excluded := resolveSameDayAttribution(sessions, clientPlayerIDs)

	for _, session := range sessions {
		day, ok := parseDay(session.Date)
		if !ok || !day.Before(nextMonth) {
			continue
		}

		allowed := clientPlayerIDs
		if drop := excluded[session.ID]; len(drop) > 0 {
			allowed = make(map[string]struct{}, len(clientPlayerIDs))
			for id := range clientPlayerIDs {
				if _, skip := drop[id]; !skip {
					allowed[id] = struct{}{}
				}
			}
		}

		effect := ComputeSessionEffect(session, allowed, idx)
		if day.Before(monthStart) {
			statement.OpeningBalance += effect.Net
			continue
		}
		statement.MonthlyFees += effect.Net
		if effect.InvolvedCount > 0 {
			statement.Lines = append(statement.Lines, StatementLine{
				SessionID:     session.ID,
				Date:          session.Date,
				StartTime:     session.StartTime,
				Location:      session.Location,
				Status:        effect.Status,
				InvolvedCount: effect.InvolvedCount,
				Net:           effect.Net,
			})
		}
	}

	for _, payment := range client.Payments {
		day, ok := parseDay(payment.Date)
		if !ok || !day.Before(nextMonth) {
			continue
		}
		amount := payment.Amount
		if amount < 0 {
			amount = 0
		}
		if day.Before(monthStart) {
			statement.OpeningBalance -= amount
			continue
		}
		statement.MonthlyPayments += amount
	}

	statement.ClosingBalance = statement.OpeningBalance + statement.MonthlyFees - statement.MonthlyPayments

	sort.Slice(statement.Lines, func(i, j int) bool {
		if statement.Lines[i].Date != statement.Lines[j].Date {
			return statement.Lines[i].Date < statement.Lines[j].Date
		}
		return statement.Lines[i].StartTime < statement.Lines[j].StartTime
	})

	return statement
}

// resolveSameDayAttribution dedupes a player who appears in more than one
// session on the same date. The player stays on the session whose start time
// is nearest their regular slot for that weekday (taken from their sessions
// on other dates); with no history the earliest slot wins. Everything else
// is returned as session id -> player ids to drop, so a double entry never
// bills twice.
func resolveSameDayAttribution(sessions []models.TrainingSession, clientPlayerIDs map[string]struct{}) map[string]map[string]struct{} {
	excluded := make(map[string]map[string]struct{})

	byPlayer := make(map[string][]int)
	for i, session := range sessions {
		seen := make(map[string]struct{}, len(session.ParticipantIDs))
		for _, id := range session.ParticipantIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, ok := clientPlayerIDs[id]; ok {
				byPlayer[id] = append(byPlayer[id], i)
			}
		}
	}

	for playerID, indexes := range byPlayer {
		byDate := make(map[string][]int)
		for _, i := range indexes {
			byDate[sessions[i].Date] = append(byDate[sessions[i].Date], i)
		}

		for date, sameDay := range byDate {
			if len(sameDay) < 2 {
				continue
			}
			day, ok := parseDay(date)
			if !ok {
				continue
			}

			expected, hasExpected := expectedSlotMinutes(sessions, indexes, date, day.Weekday())
			chosen := chooseSession(sessions, sameDay, expected, hasExpected)
			for _, i := range sameDay {
				if i == chosen {
					continue
				}
				id := sessions[i].ID
				if excluded[id] == nil {
					excluded[id] = make(map[string]struct{})
				}
				excluded[id][playerID] = struct{}{}
			}
		}
	}

	return excluded
}

// expectedSlotMinutes derives a player's regular start time for a weekday
// from their sessions on other dates: the most frequent start wins, earlier
// start on a tie.
func expectedSlotMinutes(sessions []models.TrainingSession, indexes []int, excludeDate string, weekday time.Weekday) (int, bool) {
	counts := make(map[int]int)
	for _, i := range indexes {
		session := sessions[i]
		if session.Date == excludeDate {
			continue
		}
		day, ok := parseDay(session.Date)
		if !ok || day.Weekday() != weekday {
			continue
		}
		minutes, ok := minutesOfDay(session.StartTime)
		if !ok {
			continue
		}
		counts[minutes]++
	}

	best, bestCount := 0, 0
	for minutes, count := range counts {
		if count > bestCount || (count == bestCount && bestCount > 0 && minutes < best) {
			best, bestCount = minutes, count
		}
	}
	return best, bestCount > 0
}

// chooseSession picks the session a double-booked player is billed against:
// closest start to the expected slot, then earliest start, then lowest id.
func chooseSession(sessions []models.TrainingSession, sameDay []int, expected int, hasExpected bool) int {
	chosen := -1
	chosenMinutes := 0
	chosenTimed := false

	better := func(i int, minutes int, timed bool) bool {
		if chosen == -1 {
			return true
		}
		if timed != chosenTimed {
			return timed
		}
		if timed && hasExpected {
			di := abs(minutes - expected)
			dc := abs(chosenMinutes - expected)
			if di != dc {
				return di < dc
			}
		}
		if timed && minutes != chosenMinutes {
			return minutes < chosenMinutes
		}
		return sessions[i].ID < sessions[chosen].ID
	}

	for _, i := range sameDay {
		minutes, timed := minutesOfDay(sessions[i].StartTime)
		if better(i, minutes, timed) {
			chosen, chosenMinutes, chosenTimed = i, minutes, timed
		}
	}
	return chosen
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
