package db

import (
	"context"
	"testing"
	"time"

	"github.com/bearingmart/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGormLoggerTrace_RecordsQueryMetrics(t *testing.T) {
	m := metrics.New("db_test")
	l := NewGormLogger(false, time.Second, m)

	for i := 0; i < 2; i++ {
		l.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.DBQueriesTotal))
}

func TestGormLoggerTrace_NilMetrics(t *testing.T) {
	l := NewGormLogger(true, time.Second, nil)

	assert.NotPanics(t, func() {
		l.Trace(context.Background(), time.Now(), func() (string, int64) {
			return "SELECT 1", 1
		}, nil)
	})
}
