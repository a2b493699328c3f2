// Package web holds small HTTP helpers: typed access to request
// parameters and a response writer that batches headers explicitly
// instead of relying on process-wide state.
package web

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cleardemon/cdf/coerce"
)

// Params reads query-string and form values from one request, coercing
// them through the library's conversion rules so handlers never parse
// by hand.
type Params struct {
	r *http.Request
}

// RequestParams wraps a request for typed parameter access.
func RequestParams(r *http.Request) *Params {
	return &Params{r: r}
}

// Has reports whether the named parameter was supplied.
func (p *Params) Has(key string) bool {
	return p.r.FormValue(key) != ""
}

// String returns the parameter with markup stripped and whitespace
// trimmed.
func (p *Params) String(key string) string {
	return coerce.AsStringSafe(p.r.FormValue(key), true)
}

// Raw returns the parameter exactly as submitted.
func (p *Params) Raw(key string) string {
	return p.r.FormValue(key)
}

// Int returns the parameter as an integer, 0 when absent or garbage.
func (p *Params) Int(key string) int64 {
	return coerce.AsInt64(p.r.FormValue(key))
}

// Float returns the parameter as a float, 0 when absent or garbage.
func (p *Params) Float(key string) float64 {
	return coerce.AsFloat(p.r.FormValue(key))
}

// Bool returns the parameter as a boolean; only "1", "true", "on" and
// "yes" are true.
func (p *Params) Bool(key string) bool {
	return coerce.AsBool(p.r.FormValue(key))
}

// Time returns the parameter parsed as a date/time literal or Unix
// timestamp; absent or unparseable reads as the epoch.
func (p *Params) Time(key string) time.Time {
	return coerce.AsTime(p.r.FormValue(key))
}

// RemoteAddr returns the client address for the request, honouring the
// first hop of an X-Forwarded-For chain when present.
func RemoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Responder accumulates headers for one response and emits them exactly
// once, ahead of the first body write. Each responder owns its header
// set; nothing is shared between requests.
type Responder struct {
	w       http.ResponseWriter
	headers map[string]string
	emitted bool
}

// NewResponder wraps a response writer.
func NewResponder(w http.ResponseWriter) *Responder {
	return &Responder{w: w, headers: make(map[string]string)}
}

// SetHeader records a header to send with the response. Setting after
// the response has begun is an error.
func (r *Responder) SetHeader(name, value string) error {
	if r.emitted {
		return fmt.Errorf("web: headers already sent")
	}
	r.headers[name] = value
	return nil
}

// ContentType records the Content-Type header.
func (r *Responder) ContentType(value string) error {
	return r.SetHeader("Content-Type", value)
}

// NoCache records headers that forbid client and proxy caching.
func (r *Responder) NoCache() error {
	if err := r.SetHeader("Cache-Control", "no-store, no-cache, must-revalidate"); err != nil {
		return err
	}
	return r.SetHeader("Pragma", "no-cache")
}

func (r *Responder) emit(status int) {
	if r.emitted {
		return
	}
	for name, value := range r.headers {
		r.w.Header().Set(name, value)
	}
	r.w.WriteHeader(status)
	r.emitted = true
}

// Write sends the accumulated headers (with 200 OK) followed by body.
func (r *Responder) Write(body []byte) (int, error) {
	r.emit(http.StatusOK)
	return r.w.Write(body)
}

// WriteStatus sends the accumulated headers with an explicit status and
// no body.
func (r *Responder) WriteStatus(status int) {
	r.emit(status)
}

// WriteJSON serialises v and sends it with a JSON content type.
func (r *Responder) WriteJSON(v any) error {
	if err := r.ContentType("application/json; charset=utf-8"); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("web: encode json: %w", err)
	}
	_, err = r.Write(data)
	return err
}

// Redirect sends a redirect to url, permanent or temporary.
func (r *Responder) Redirect(req *http.Request, url string, permanent bool) error {
	if r.emitted {
		return fmt.Errorf("web: headers already sent")
	}
	status := http.StatusFound
	if permanent {
		status = http.StatusMovedPermanently
	}
	for name, value := range r.headers {
		r.w.Header().Set(name, value)
	}
	http.Redirect(r.w, req, url, status)
	r.emitted = true
	return nil
}
