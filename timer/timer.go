package timer

import (
	"net/http"
	"time"
)

// HandlerFunc is a handler that reports its failure instead of hiding it.
type HandlerFunc func(rw http.ResponseWriter, req *http.Request) error

// MakeRequestTimeTracker wraps handler and passes the time it took to saver.
// If saveOnError is false, failed calls are not saved.
func MakeRequestTimeTracker(
	handler HandlerFunc,
	saver func(t time.Duration),
	saveOnError bool,
) HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) error {
		start := time.Now()
		err := handler(rw, req)
		if err == nil || saveOnError {
			saver(time.Since(start))
		}

		return err
	}
}
