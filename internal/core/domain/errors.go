package domain

import "errors"

// Errors returned by ledger operations. Every one of them aborts the
// operation without any state change.
var (
	ErrCampaignNotFound         = errors.New("campaign not found")
	ErrUnauthorized             = errors.New("unauthorized")
	ErrInvalidState             = errors.New("invalid campaign state")
	ErrInvalidParticipants      = errors.New("invalid participants")
	ErrInvalidMilestoneList     = errors.New("invalid milestone list")
	ErrInvalidFeeRate           = errors.New("invalid fee rate")
	ErrInvalidMilestoneIndex    = errors.New("invalid milestone index")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrInvalidProof             = errors.New("invalid proof")
	ErrMilestoneProofMissing    = errors.New("milestone proof missing")
	ErrMilestoneAlreadyPaid     = errors.New("milestone already paid")
	ErrNothingToRelease         = errors.New("nothing to release")
	ErrInsufficientEscrow       = errors.New("insufficient escrow")
	ErrCannotCancelAfterRelease = errors.New("cannot cancel after release")
)

// ErrorKind returns a stable snake_case name for a ledger error, or
// "internal" for anything else.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{ErrCampaignNotFound, "campaign_not_found"},
	{ErrUnauthorized, "unauthorized"},
	{ErrInvalidState, "invalid_state"},
	{ErrInvalidParticipants, "invalid_participants"},
	{ErrInvalidMilestoneList, "invalid_milestone_list"},
	{ErrInvalidFeeRate, "invalid_fee_rate"},
	{ErrInvalidMilestoneIndex, "invalid_milestone_index"},
	{ErrInvalidAmount, "invalid_amount"},
	{ErrInvalidProof, "invalid_proof"},
	{ErrMilestoneProofMissing, "milestone_proof_missing"},
	{ErrMilestoneAlreadyPaid, "milestone_already_paid"},
	{ErrNothingToRelease, "nothing_to_release"},
	{ErrInsufficientEscrow, "insufficient_escrow"},
	{ErrCannotCancelAfterRelease, "cannot_cancel_after_release"},
}
