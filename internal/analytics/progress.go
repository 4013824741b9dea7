package analytics

import (
	"sort"

	"github.com/HaeserTec/tennis-manager-sub002/internal/models"
)

type ProgressTrend struct {
	Entries int                `json:"entries"`
	First   float64            `json:"first"`
	Latest  float64            `json:"latest"`
	Average float64            `json:"average"`
	Slope   float64            `json:"slope"` // total-score points per logged session, least squares
	Metrics map[string]float64 `json:"metrics"`
}

// ProgressTrendForPlayer summarises a player's session logs: per-metric
// averages and the least-squares slope of the 0-10 total over time.
func ProgressTrendForPlayer(logs []models.SessionLog) ProgressTrend {
	trend := ProgressTrend{Metrics: map[string]float64{}}
	if len(logs) == 0 {
		return trend
	}

	ordered := make([]models.SessionLog, len(logs))
	copy(ordered, logs)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var totalSum float64
	metricSums := map[string]int{}
	for _, entry := range ordered {
		totalSum += float64(entry.Total)
		metricSums["technique"] += entry.Technique
		metricSums["footwork"] += entry.Footwork
		metricSums["consistency"] += entry.Consistency
		metricSums["attitude"] += entry.Attitude
		metricSums["matchplay"] += entry.Matchplay
	}

	n := float64(len(ordered))
	trend.Entries = len(ordered)
	trend.First = float64(ordered[0].Total)
	trend.Latest = float64(ordered[len(ordered)-1].Total)
	trend.Average = totalSum / n
	for metric, sum := range metricSums {
		trend.Metrics[metric] = float64(sum) / n
	}

	if len(ordered) > 1 {
		// Least squares over the entry index: x = 0..n-1, y = total.
		var sumX, sumY, sumXY, sumXX float64
		for i, entry := range ordered {
			x := float64(i)
			y := float64(entry.Total)
			sumX += x
			sumY += y
			sumXY += x * y
			sumXX += x * x
		}
		trend.Slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	}

	return trend
}
