package handlers

import (
	"fmt"
	"time"
)

// TimeAgo labels t relative to now with the largest unit of which more
// than one has elapsed, floored.
func TimeAgo(now, t time.Time) string {
	seconds := float64(now.Sub(t) / time.Second)
	for _, u := range []struct {
		name string
		size float64
	}{
		{"years", 31536000},
		{"months", 2592000},
		{"days", 86400},
		{"hours", 3600},
		{"minutes", 60},
	} {
		if n := seconds / u.size; n > 1 {
			return fmt.Sprintf("%d %s ago", int64(n), u.name)
		}
	}
	return fmt.Sprintf("%d seconds ago", int64(seconds))
}

// Stamp formats message times.
func Stamp(t time.Time) string {
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}
