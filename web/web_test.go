package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsRequest(t *testing.T, query string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/page?"+query, nil)
	return r
}

func TestParams(t *testing.T) {
	p := RequestParams(paramsRequest(t,
		url.Values{
			"name":  {" <b>Anna</b> "},
			"age":   {"41"},
			"ratio": {"2.5"},
			"on":    {"yes"},
			"when":  {"2021-06-01"},
		}.Encode()))

	assert.True(t, p.Has("name"))
	assert.False(t, p.Has("missing"))
	assert.Equal(t, "Anna", p.String("name"))
	assert.Equal(t, " <b>Anna</b> ", p.Raw("name"))
	assert.Equal(t, int64(41), p.Int("age"))
	assert.Equal(t, 2.5, p.Float("ratio"))
	assert.True(t, p.Bool("on"))
	assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), p.Time("when"))
	assert.Equal(t, int64(0), p.Int("missing"))
}

func TestRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:1234"
	assert.Equal(t, "10.0.0.9", RemoteAddr(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", RemoteAddr(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", RemoteAddr(r))
}

func TestResponder(t *testing.T) {
	t.Run("headers batch until first write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := NewResponder(rec)
		require.NoError(t, resp.SetHeader("X-Thing", "yes"))
		require.NoError(t, resp.NoCache())
		_, err := resp.Write([]byte("body"))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "yes", rec.Header().Get("X-Thing"))
		assert.Contains(t, rec.Header().Get("Cache-Control"), "no-store")
		assert.Equal(t, "body", rec.Body.String())
	})

	t.Run("set header after write fails", func(t *testing.T) {
		resp := NewResponder(httptest.NewRecorder())
		_, err := resp.Write([]byte("x"))
		require.NoError(t, err)
		assert.Error(t, resp.SetHeader("Late", "no"))
	})

	t.Run("json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := NewResponder(rec)
		require.NoError(t, resp.WriteJSON(map[string]int{"n": 5}))

		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
		var decoded map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
		assert.Equal(t, 5, decoded["n"])
	})

	t.Run("redirect", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/old", nil)
		resp := NewResponder(rec)
		require.NoError(t, resp.Redirect(req, "/new", true))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/new", rec.Header().Get("Location"))
	})

	t.Run("explicit status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		resp := NewResponder(rec)
		resp.WriteStatus(http.StatusNoContent)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
