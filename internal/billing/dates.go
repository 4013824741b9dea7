package billing

import "time"

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	timeLayout  = "15:04"
)

func parseDay(date string) (time.Time, bool) {
	day, err := time.Parse(dayLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func parseMonth(month string) (time.Time, bool) {
	start, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

func minutesOfDay(hhmm string) (int, bool) {
	t, err := time.Parse(timeLayout, hhmm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
