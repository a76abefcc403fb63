package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLoadFinishedSuccess(t *testing.T) {
	m := New()

	m.RecordLoadStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.activeLoads))

	m.RecordLoadFinished(2048, 0.5, nil)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.activeLoads))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.filesLoaded))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.loadErrors))
}

func TestRecordLoadFinishedError(t *testing.T) {
	m := New()

	m.RecordLoadStarted()
	m.RecordLoadFinished(1024, 0.1, assert.AnError)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.loadErrors))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.filesLoaded))
}

func TestRecordDecode(t *testing.T) {
	m := New()
	m.RecordDecode(150, 0.02)
	assert.Equal(t, float64(150), testutil.ToFloat64(m.entitiesDecoded))
}

func TestRecordTessellation(t *testing.T) {
	m := New()
	m.RecordTessellation(0.001, false)
	m.RecordTessellation(0.001, true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.geometryFailures))
}

func TestRecordCacheHitMiss(t *testing.T) {
	m := New()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.cacheHits))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheMisses))
}
