package services

import (
	"strings"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
	timeLayout  = "15:04"
)

func validDay(date string) bool {
	_, err := time.Parse(dayLayout, date)
	return err == nil
}

func validMonth(month string) bool {
	_, err := time.Parse(monthLayout, month)
	return err == nil
}

func validClock(hhmm string) bool {
	_, err := time.Parse(timeLayout, hhmm)
	return err == nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
