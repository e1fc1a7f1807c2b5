package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveMovement(t *testing.T) {
	beforeCount := testutil.ToFloat64(movements.WithLabelValues("inbound"))
	beforeQty := testutil.ToFloat64(movedQuantity.WithLabelValues("inbound"))

	ObserveMovement("inbound", 7)

	assert.Equal(t, beforeCount+1, testutil.ToFloat64(movements.WithLabelValues("inbound")))
	assert.Equal(t, beforeQty+7, testutil.ToFloat64(movedQuantity.WithLabelValues("inbound")))
}

func TestObserveRejectedAndRecordCount(t *testing.T) {
	before := testutil.ToFloat64(rejected.WithLabelValues("duplicate"))
	ObserveRejected("duplicate")
	assert.Equal(t, before+1, testutil.ToFloat64(rejected.WithLabelValues("duplicate")))

	SetRecordCount(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(registered))
}
