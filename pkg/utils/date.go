package utils

import "time"

// ParseDate parses an ISO calendar date (yyyy-mm-dd) from a query parameter.
// An empty string yields a zero time.
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}
