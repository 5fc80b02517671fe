package clock

import "time"

// NowFunc returns current time, tests replace it to pin timestamps.
var NowFunc = time.Now

// Now returns NowFunc()
func Now() time.Time { return NowFunc() }

// Since returns elapsed time measured against NowFunc
func Since(t time.Time) time.Duration { return Now().Sub(t) }
