package interp

import "time"

// builtinTime returns the number of seconds since the Unix epoch, as a
// float, mirroring the host language's own time.time().
func builtinTime() *Function {
	return &Function{
		Name: "time",
		Native: func(args []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	}
}

// builtinSleep blocks the current goroutine for the given number of
// seconds. A negative duration is treated as zero.
func builtinSleep() *Function {
	return &Function{
		Name:   "sleep",
		Params: []string{"seconds"},
		Native: func(args []Value) (Value, error) {
			seconds, ok := args[0].(float64)
			if !ok {
				return nil, newRuntimeError(0, "sleep: seconds must be a number")
			}
			if seconds > 0 {
				time.Sleep(time.Duration(seconds * float64(time.Second)))
			}
			return nil, nil
		},
	}
}
