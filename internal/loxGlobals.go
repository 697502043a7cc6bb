package internal

import "time"

func defineGlobals(e *env) {
	defineClock(e)
}

// clock returns the seconds elapsed since the Unix epoch
func defineClock(e *env) {
	e.define("clock", &nativeFn{
		name:       "clock",
		arityValue: 0,
		callFn: func(interp *Interpreter, arguments []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / float64(time.Second), nil
		},
	})
}
