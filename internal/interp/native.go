package interp

import "time"

// newClock returns the `clock` native, which reports seconds since the
// Unix epoch as a float, matching the reference implementation's
// time.time()-backed builtin.
func newClock() *NativeFunction {
	return &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(args []any) any {
			return float64(time.Now().UnixNano()) / float64(time.Second)
		},
	}
}
