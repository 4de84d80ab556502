package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(absenceBatches.WithLabelValues("partial"))
	IncAbsenceBatch("partial")
	assert.Equal(t, before+1, testutil.ToFloat64(absenceBatches.WithLabelValues("partial")))

	ObserveBackendRequest("POST", "shifts", 201, 15*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(backendRequests.WithLabelValues("POST", "shifts", "201")))

	SetOvertimeEmployees(3, 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(overtimeEmployees.WithLabelValues("3")))
}
