package domain

// Operation names a ledger write for authorization and audit.
type Operation string

const (
	OpCreate  Operation = "create_campaign"
	OpDeposit Operation = "deposit_funds"
	OpProof   Operation = "submit_proof"
	OpApprove Operation = "approve_milestone"
	OpRelease Operation = "release_funds"
	OpCancel  Operation = "cancel_campaign"
)

// Authorize checks that caller holds the role op requires on c. It does not
// look at the campaign state.
func Authorize(caller string, op Operation, c *Campaign) error {
	if caller == "" || c == nil {
		return ErrUnauthorized
	}
	var ok bool
	switch op {
	case OpCreate, OpDeposit, OpApprove, OpRelease:
		ok = caller == c.Funder
	case OpProof:
		ok = caller == c.Deliverer
	case OpCancel:
		ok = caller == c.Funder || caller == c.Deliverer
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}
