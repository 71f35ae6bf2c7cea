package metrics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/glossa/internal/metrics"
	"github.com/aretw0/glossa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks(t *testing.T) {
	c := metrics.New()
	hooks := c.Hooks()
	ctx := context.Background()

	hooks.OnRecord(ctx, &domain.RecordEvent{Model: "main", Record: domain.NewDocument("en", "Hi", "greeting.hello")})
	hooks.OnRecord(ctx, &domain.RecordEvent{Model: "main", Record: domain.NewDocument("en", "Hey", "greeting.hello")})
	hooks.OnSkillSkipped(ctx, &domain.SkillEvent{Lang: "fr"})
	hooks.OnExpansionLimit(ctx, &domain.ExpansionEvent{})
	hooks.OnSlotIgnored(ctx, &domain.SlotEvent{ItemType: "global_entity"})
	hooks.OnModelTrained(ctx, &domain.ModelEvent{Model: "main", Duration: time.Second})
	hooks.OnModelTrained(ctx, &domain.ModelEvent{Model: "resolvers", Err: errors.New("boom")})

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Records.WithLabelValues("main", "en", "document")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Skipped.WithLabelValues("fr")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Truncated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SlotsIgnored.WithLabelValues("global_entity")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.TrainSeconds))
}

func TestHandler(t *testing.T) {
	c := metrics.New()
	c.Truncated.Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "glossa_expansion_truncated_total 1")
}
