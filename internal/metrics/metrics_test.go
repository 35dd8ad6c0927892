package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(helpRequests.WithLabelValues("duplicate"))
	RecordHelpRequest("duplicate")
	assert.Equal(t, before+1, testutil.ToFloat64(helpRequests.WithLabelValues("duplicate")))

	okBefore := testutil.ToFloat64(feedLoads.WithLabelValues("ok"))
	errBefore := testutil.ToFloat64(feedLoads.WithLabelValues("error"))
	RecordFeedLoad(nil)
	RecordFeedLoad(errors.New("timeout"))
	assert.Equal(t, okBefore+1, testutil.ToFloat64(feedLoads.WithLabelValues("ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(feedLoads.WithLabelValues("error")))

	RecordPostCreated("blood", "text")
	assert.GreaterOrEqual(t, testutil.ToFloat64(postsCreated.WithLabelValues("blood", "text")), 1.0)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordOrphanedMedia()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "media_orphaned_total")
}
