package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdrop/internal/core"
)

func TestObserveEvents(t *testing.T) {
	r := New()

	r.ObserveEvents("blocks", []core.Event{
		{Kind: core.EventLaunch, Value: 2},
		{Kind: core.EventLand, Value: 2},
		{Kind: core.EventMerge, Value: 4},
		{Kind: core.EventMerge, Value: 8},
	})
	r.ObserveEvents("launcher", []core.Event{{Kind: core.EventLaunch}})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues("blocks", "launch")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.events.WithLabelValues("blocks", "merge")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.events.WithLabelValues("launcher", "launch")))
	assert.Equal(t, 4, testutil.CollectAndCount(r.events))
}

func TestRunFinished(t *testing.T) {
	r := New()

	r.RunFinished("blocks", 300, 64)
	r.RunFinished("blocks", 20, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("blocks")))

	expected := `
# HELP blockdrop_run_score Final score of finished runs.
# TYPE blockdrop_run_score histogram
blockdrop_run_score_bucket{game="blocks",le="16"} 0
blockdrop_run_score_bucket{game="blocks",le="64"} 1
blockdrop_run_score_bucket{game="blocks",le="256"} 1
blockdrop_run_score_bucket{game="blocks",le="1024"} 2
blockdrop_run_score_bucket{game="blocks",le="4096"} 2
blockdrop_run_score_bucket{game="blocks",le="16384"} 2
blockdrop_run_score_bucket{game="blocks",le="65536"} 2
blockdrop_run_score_bucket{game="blocks",le="262144"} 2
blockdrop_run_score_bucket{game="blocks",le="+Inf"} 2
blockdrop_run_score_sum{game="blocks"} 320
blockdrop_run_score_count{game="blocks"} 2
`
	require.NoError(t, testutil.CollectAndCompare(r.scores, strings.NewReader(expected)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.maxTiles), "zero max tile is not observed")
}

func TestSessions(t *testing.T) {
	r := New()

	r.SessionStarted()
	r.SessionStarted()
	r.SessionEnded()

	assert.Equal(t, 1.0, testutil.ToFloat64(r.sessions))
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveEvents("blocks", []core.Event{{Kind: core.EventLaunch}})
		r.RunFinished("blocks", 1, 2)
		r.SessionStarted()
		r.SessionEnded()
	})
	assert.Nil(t, r.Registry())
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveEvents("blocks", []core.Event{{Kind: core.EventDrop}})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `blockdrop_events_total{game="blocks",kind="drop"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
