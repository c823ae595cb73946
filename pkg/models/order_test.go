package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTransition_HappyPath(t *testing.T) {
	o := &Order{Status: StatusCreated}
	now := time.Now()

	require.NoError(t, o.Transition(StatusPaid, now))
	assert.True(t, o.IsPaid)
	assert.Equal(t, now, *o.PaidAt)

	require.NoError(t, o.Transition(StatusDelivered, now))
	assert.True(t, o.IsDelivered)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestOrderTransition_Cancel(t *testing.T) {
	o := &Order{Status: StatusCreated}

	require.NoError(t, o.Transition(StatusCancelled, time.Now()))
	assert.True(t, o.IsCancelled)
	assert.NotNil(t, o.CancelledAt)
}

func TestOrderTransition_Rejected(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{StatusCreated, StatusDelivered},
		{StatusPaid, StatusCancelled},
		{StatusPaid, StatusPaid},
		{StatusCancelled, StatusPaid},
		{StatusDelivered, StatusCancelled},
	}

	for _, tc := range cases {
		o := &Order{Status: tc.from}
		err := o.Transition(tc.to, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.from, o.Status)
	}
}

func TestOrderCurrentStatus_FromLegacyFlags(t *testing.T) {
	assert.Equal(t, StatusCreated, (&Order{}).CurrentStatus())
	assert.Equal(t, StatusPaid, (&Order{IsPaid: true}).CurrentStatus())
	assert.Equal(t, StatusDelivered, (&Order{IsPaid: true, IsDelivered: true}).CurrentStatus())
	assert.Equal(t, StatusCancelled, (&Order{IsCancelled: true}).CurrentStatus())
}

func TestPayOrderRequest_ToResult(t *testing.T) {
	req := PayOrderRequest{ID: "pay_1", Status: "COMPLETED", UpdateTime: "2024-01-01", Payer: Payer{EmailAddress: "a@b.c"}}
	res := req.ToResult()

	assert.Equal(t, "pay_1", res.ID)
	assert.Equal(t, "a@b.c", res.EmailAddress)
}
