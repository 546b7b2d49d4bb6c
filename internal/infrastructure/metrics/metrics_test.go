package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("put", "error"))

	RecordStoreOperation("put", errors.New("boom"), time.Millisecond)

	after := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("put", "error"))
	assert.InDelta(t, before+1, after, 0.0001)
}

func TestRecordSavedBytesIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(SavedBytesTotal)

	RecordSavedBytes(0)
	RecordSavedBytes(-10)
	RecordSavedBytes(25)

	assert.InDelta(t, before+25, testutil.ToFloat64(SavedBytesTotal), 0.0001)
}
