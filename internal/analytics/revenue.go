package analytics

import (
	"time"

	"github.com/HaeserTec/tennis-manager-sub002/internal/billing"
	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

type MonthlyRevenue struct {
	Month     string  `json:"month"` // YYYY-MM
	Billed    float64 `json:"billed"`
	Collected float64 `json:"collected"`
	Expenses  float64 `json:"expenses"`
	// Net is cash basis: collected payments minus expenses. Billed fees that
	// have not been paid yet do not count toward it.
	Net float64 `json:"net"`
}

// RevenueByMonth aggregates billed fees, collected payments and expenses per
// calendar month over the inclusive from..to range (YYYY-MM). Billed amounts
// are the sum of client session effects, so rain waivers and cancellation
// credits flow through exactly as they do on statements. Sessions whose
// participants are not linked to any client bill nobody and show up nowhere.
func RevenueByMonth(clients []models.Client, players []models.Player, sessions []models.TrainingSession, events []models.DayEvent, expenses []models.Expense, from, to string) []MonthlyRevenue {
	start, err := time.Parse(monthLayout, from)
	if err != nil {
		return nil
	}
	end, err := time.Parse(monthLayout, to)
	if err != nil || end.Before(start) {
		return nil
	}

	buckets := make(map[string]*MonthlyRevenue)
	var months []string
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthLayout)
		buckets[key] = &MonthlyRevenue{Month: key}
		months = append(months, key)
	}

	playersByClient := make(map[string]map[string]struct{})
	for _, player := range players {
		if player.ClientID == nil {
			continue
		}
		set, ok := playersByClient[*player.ClientID]
		if !ok {
			set = make(map[string]struct{})
			playersByClient[*player.ClientID] = set
		}
		set[player.ID] = struct{}{}
	}

	idx := billing.IndexDayEvents(events)

	for _, session := range sessions {
		bucket := bucketFor(buckets, session.Date)
		if bucket == nil {
			continue
		}
		for _, clientPlayerIDs := range playersByClient {
			effect := billing.ComputeSessionEffect(session, clientPlayerIDs, idx)
			bucket.Billed += effect.Net
		}
	}

	for _, client := range clients {
		for _, payment := range client.Payments {
			bucket := bucketFor(buckets, payment.Date)
			if bucket == nil || payment.Amount < 0 {
				continue
			}
			bucket.Collected += payment.Amount
		}
	}

	for _, expense := range expenses {
		bucket := bucketFor(buckets, expense.Date)
		if bucket == nil || expense.Amount < 0 {
			continue
		}
		bucket.Expenses += expense.Amount
	}

	report := make([]MonthlyRevenue, 0, len(months))
	for _, key := range months {
		bucket := buckets[key]
		bucket.Net = bucket.Collected - bucket.Expenses
		report = append(report, *bucket)
	}
	return report
}

func bucketFor(buckets map[string]*MonthlyRevenue, date string) *MonthlyRevenue {
	day, err := time.Parse(dayLayout, date)
	if err != nil {
		return nil
	}
	return buckets[day.Format(monthLayout)]
}
