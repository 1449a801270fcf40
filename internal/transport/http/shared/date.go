package shared

import "time"

var dateFormats = []string{time.RFC3339, "2006-01-02"}

// ParseDate accepts RFC3339 or a bare YYYY-MM-DD day.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var parsed time.Time
	var err error
	for _, layout := range dateFormats {
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
