// bucket.go
package monegros

import (
	"github.com/baditaflorin/monegros/internal/core/domain"
	"github.com/baditaflorin/monegros/internal/core/timebucket"
)

// TimeCount is the number of riders that finished within one 20-minute group.
type TimeCount = domain.TimeCount

// BucketTime floors an "HH:MM:SS" finishing time to its 20-minute group,
// returned as "HH:MM".
func BucketTime(t string) (string, error) {
	return timebucket.Bucket(t)
}

// GroupTimes buckets every time and counts riders per group, ordered by
// group label. It stops at the first invalid time.
func GroupTimes(times []string) ([]TimeCount, error) {
	groups := make([]string, len(times))
	for i, t := range times {
		g, err := timebucket.Bucket(t)
		if err != nil {
			return nil, err
		}
		groups[i] = g
	}
	return timebucket.Count(groups), nil
}
