package clock

import "time"

// Clock provides wall-clock access behind the Clock port.
type Clock struct{}

// NowUnix returns the current unix time in seconds.
func (Clock) NowUnix() int64 {
	return time.Now().Unix()
}
