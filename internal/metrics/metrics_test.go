// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/arxiv-researcher/pkg/types"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Submitted(false)
	r.Submitted(true)
	r.Submitted(true)
	r.Settled(types.OutcomeSuccess, 200*time.Millisecond)
	r.Settled(types.OutcomeQueryError, time.Second)
	r.Stale()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissions.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.submissions.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.outcomes.WithLabelValues("query_error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.outcomes.WithLabelValues("transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stale))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Submitted(true)
		r.Settled(types.OutcomeEmpty, time.Second)
		r.Stale()
	})
}

func TestRouterServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)
	r.Settled(types.OutcomeEmpty, 10*time.Millisecond)

	ts := httptest.NewServer(NewRouter(reg))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `arxiv_researcher_search_outcomes_total{outcome="empty"} 1`)

	resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListenAddressInUse(t *testing.T) {
	held, err := Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer held.Close()

	_, err = Listen(held.Addr().String())
	assert.ErrorContains(t, err, "metrics endpoint")
}

func TestServeUntilCancelled(t *testing.T) {
	ln, err := Listen("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, prometheus.NewRegistry(), zap.NewNop()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
