package service

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate переводит строку вида YYYY-MM-DD[THH[:MM[:SS]]] в секунды эпохи.
// Недостающие компоненты времени считаются нулевыми, дата трактуется в часовом поясе loc.
func ParseDate(value string, loc *time.Location) (int64, error) {
	if loc == nil {
		loc = time.UTC
	}
	value = strings.TrimSpace(value)
	datePart, timePart, hasTime := strings.Cut(value, "T")

	day, err := time.ParseInLocation("2006-01-02", datePart, loc)
	if err != nil {
		return 0, fmt.Errorf("date %q does not match YYYY-MM-DD[THH:MM:SS]", value)
	}

	var clock [3]int
	if hasTime {
		parts := strings.Split(timePart, ":")
		if len(parts) > 3 || timePart == "" {
			return 0, fmt.Errorf("time component of %q must be HH[:MM[:SS]]", value)
		}
		limits := [3]int{23, 59, 59}
		for i, part := range parts {
			n, ok := twoDigits(part)
			if !ok || n > limits[i] {
				return 0, fmt.Errorf("time component of %q is out of range", value)
			}
			clock[i] = n
		}
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), clock[0], clock[1], clock[2], 0, loc)
	return t.Unix(), nil
}

// twoDigits разбирает ровно две ASCII-цифры без знака.
func twoDigits(part string) (int, bool) {
	if len(part) != 2 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(part); i++ {
		c := part[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
