package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"

	"github.com/spencer-p/oceantrends/pkg/align"
	"github.com/spencer-p/oceantrends/pkg/fetch"
	"github.com/spencer-p/oceantrends/pkg/pipeline"
)

var t0 = time.Date(2025, time.July, 29, 0, 0, 0, 0, time.UTC)

func fakeResult() *pipeline.Result {
	var table align.Table
	for i, h := range []float64{1, 1, 1, 1, 3} {
		ts := t0.Add(time.Duration(i) * time.Hour)
		table = append(table, align.Record{Time: ts, TideHeight: 1, WaveHeight: h, Temperature: 19, WaveTime: ts})
	}
	return &pipeline.Result{Table: table}
}

type counter struct {
	calls int
	err   error
}

func (c *counter) run(ctx context.Context, cfg pipeline.Config) (*pipeline.Result, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	r := fakeResult()
	r.Respike(cfg.SpikeK)
	return r, nil
}

func newRouter(run Runner) *mux.Router {
	cfg := pipeline.DefaultConfig()
	cfg.Timezone = "UTC"
	return newRouterWith(cfg, run)
}

func newRouterWith(cfg pipeline.Config, run Runner) *mux.Router {
	r := mux.NewRouter()
	Register(r, cfg, run)
	return r
}

func get(h http.Handler, url string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAlignedIsCached(t *testing.T) {
	c := &counter{}
	h := newRouter(c.run)

	for i := 0; i < 2; i++ {
		w := get(h, "/api/v1/aligned")
		if w.Code != http.StatusOK {
			t.Fatalf("got status %d: %s", w.Code, w.Body)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("got content type %q", ct)
		}
		var got align.Table
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		if len(got) != 5 {
			t.Errorf("got %d rows, want 5", len(got))
		}
	}
	if c.calls != 1 {
		t.Errorf("pipeline ran %d times, want 1", c.calls)
	}
}

func TestSpikesRemembersK(t *testing.T) {
	c := &counter{}
	h := newRouter(c.run)

	decode := func(w *httptest.ResponseRecorder) spikesOutput {
		t.Helper()
		if w.Code != http.StatusOK {
			t.Fatalf("got status %d: %s", w.Code, w.Body)
		}
		var out spikesOutput
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		return out
	}

	// Default k=2 flags nothing in five rows.
	if out := decode(get(h, "/api/v1/spikes")); out.K != 2 || len(out.Spikes) != 0 {
		t.Errorf("default: got k=%v with %d spikes", out.K, len(out.Spikes))
	}

	w := get(h, "/api/v1/spikes?k=1")
	out := decode(w)
	if diff := cmp.Diff([]time.Time{t0.Add(4 * time.Hour)}, out.Spikes.Times()); out.K != 1 || diff != "" {
		t.Errorf("k=1: got k=%v, spikes (-want,+got):\n%s", out.K, diff)
	}

	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}
	if out := decode(get(h, "/api/v1/spikes", cookies...)); out.K != 1 || len(out.Spikes) != 1 {
		t.Errorf("remembered: got k=%v with %d spikes", out.K, len(out.Spikes))
	}
}

func TestSpikesBadK(t *testing.T) {
	h := newRouter((&counter{}).run)
	for _, k := range []string{"abc", "-1"} {
		if w := get(h, "/api/v1/spikes?k="+k); w.Code != http.StatusBadRequest {
			t.Errorf("k=%s: got status %d, want 400", k, w.Code)
		}
	}
}

func TestPlot(t *testing.T) {
	h := newRouter((&counter{}).run)

	w := get(h, "/plot/scatter")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("got content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "<svg") {
		t.Errorf("expected svg body")
	}

	if w := get(h, "/plot/pie"); w.Code != http.StatusNotFound {
		t.Errorf("unknown consumer: got status %d, want 404", w.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	table := []struct {
		err  error
		want int
	}{
		{fetch.Unavailable("noaa", errors.New("timeout")), http.StatusServiceUnavailable},
		{align.ErrEmptyDataset, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range table {
		t.Run(tc.err.Error(), func(t *testing.T) {
			c := &counter{err: tc.err}
			h := newRouter(c.run)
			w := get(h, "/api/v1/aligned")
			if w.Code != tc.want {
				t.Errorf("got status %d, want %d", w.Code, tc.want)
			}
			// Failures are not cached.
			get(h, "/api/v1/aligned")
			if c.calls != 2 {
				t.Errorf("pipeline ran %d times, want 2", c.calls)
			}
		})
	}
}

func TestSessionCookieSecureFlag(t *testing.T) {
	for _, secure := range []bool{true, false} {
		cfg := pipeline.DefaultConfig()
		cfg.Timezone = "UTC"
		cfg.SecureCookies = secure
		h := newRouterWith(cfg, (&counter{}).run)

		cookies := get(h, "/api/v1/spikes?k=1").Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("secure=%v: got %d cookies, want 1", secure, len(cookies))
		}
		if cookies[0].Secure != secure {
			t.Errorf("got Secure=%v, want %v", cookies[0].Secure, secure)
		}
	}
}
