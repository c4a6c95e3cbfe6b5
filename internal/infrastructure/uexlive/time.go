package uexlive

import (
	"errors"
	"time"
)

var errUnparsableTime = errors.New("unparsable timestamp")

func parseISOTime(s string) (int64, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.Unix(), nil
		}
	}
	return 0, errUnparsableTime
}
