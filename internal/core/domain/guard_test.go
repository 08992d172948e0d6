package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	c := &Campaign{Funder: "brand", Deliverer: "influencer"}
	tests := []struct {
		caller string
		op     Operation
		ok     bool
	}{
		{"brand", OpCreate, true},
		{"brand", OpDeposit, true},
		{"influencer", OpDeposit, false},
		{"influencer", OpProof, true},
		{"brand", OpProof, false},
		{"brand", OpApprove, true},
		{"influencer", OpApprove, false},
		{"brand", OpRelease, true},
		{"influencer", OpRelease, false},
		{"brand", OpCancel, true},
		{"influencer", OpCancel, true},
		{"stranger", OpCancel, false},
		{"", OpDeposit, false},
		{"brand", Operation("unknown"), false},
	}
	for _, tt := range tests {
		err := Authorize(tt.caller, tt.op, c)
		if tt.ok {
			assert.NoError(t, err, "%s %s", tt.caller, tt.op)
		} else {
			assert.ErrorIs(t, err, ErrUnauthorized, "%s %s", tt.caller, tt.op)
		}
	}
}

func TestAuthorizeIgnoresState(t *testing.T) {
	c := &Campaign{Funder: "brand", Deliverer: "influencer", State: StateCancelled}
	assert.NoError(t, Authorize("brand", OpDeposit, c))
}
