package ratelimit

import "time"

func defaultNow() int64 {
	return time.Now().UnixNano()
}
