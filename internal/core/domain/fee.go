package domain

import "math"

// MaxFeeRateBps is 100% expressed in basis points.
const MaxFeeRateBps = 10000

const maxAmount = math.MaxInt64

// Split divides gross into the recipient share and the fee for a rate in
// basis points. The fee is rounded down and the recipient receives the
// remainder, so recipient+fee == gross. gross is decomposed as
// q*10000 + r so the multiplication cannot overflow.
func Split(gross, feeRateBps int64) (recipient, fee int64) {
	if gross <= 0 || feeRateBps <= 0 {
		return gross, 0
	}
	if feeRateBps >= MaxFeeRateBps {
		return 0, gross
	}
	q, r := gross/MaxFeeRateBps, gross%MaxFeeRateBps
	fee = q*feeRateBps + r*feeRateBps/MaxFeeRateBps
	return gross - fee, fee
}
