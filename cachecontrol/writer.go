package cachecontrol

import (
	"io"
	"net/http"
)

// FinalizeFunc is called once, right before the status line and headers are sent.
type FinalizeFunc func(h http.Header, status int)

// Enforce returns a FinalizeFunc that sets Cache-Control to value,
// replacing whatever the wrapped handler put there.
func Enforce(value string) FinalizeFunc {
	return func(h http.Header, _ int) {
		h.Set(Header, value)
	}
}

// Writer wraps http.ResponseWriter and runs the finalize functions as the
// last header-writing step of the response.
type Writer struct {
	http.ResponseWriter
	finalize    []FinalizeFunc
	status      int
	written     int64
	wroteHeader bool
}

// NewWriter creates a Writer.
func NewWriter(rw http.ResponseWriter, finalize ...FinalizeFunc) *Writer {
	return &Writer{
		ResponseWriter: rw,
		finalize:       finalize,
	}
}

// WriteHeader finalizes headers and sends the status line.
func (w *Writer) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	// informational responses are followed by the real one
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		w.ResponseWriter.WriteHeader(code)
		return
	}

	for _, f := range w.finalize {
		f(w.Header(), code)
	}
	w.status = code
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *Writer) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// ReadFrom keeps sendfile available to http.ServeContent.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	var n int64
	var err error
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		n, err = rf.ReadFrom(r)
	} else {
		n, err = io.Copy(writerOnly{w.ResponseWriter}, r)
	}
	w.written += n
	return n, err
}

// Finish makes sure headers are finalized even if the handler wrote nothing.
func (w *Writer) Finish() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
}

// Unwrap is used by http.ResponseController.
func (w *Writer) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Status returns the status code sent, or 0 before WriteHeader.
func (w *Writer) Status() int {
	return w.status
}

// Written returns the number of body bytes written.
func (w *Writer) Written() int64 {
	return w.written
}

// hides ReadFrom of the wrapped writer from io.Copy
type writerOnly struct {
	io.Writer
}
