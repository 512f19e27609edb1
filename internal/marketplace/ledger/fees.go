package ledger

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// FeeBasisPoints is the platform cut taken out of every completed
	// reward: 200 bps = 2%.
	FeeBasisPoints = 200

	basisPointsDenominator = 10_000

	// ReviewPeriod is how long after submission the creator may review
	// before anyone can trigger auto approval.
	ReviewPeriod = 72 * time.Hour

	// MaxTitleLength bounds the human-readable title.
	MaxTitleLength = 200
)

// MinReward is the smallest reward a task may lock, in wei.
var MinReward = big.NewInt(1000)

// SplitReward computes the platform fee and the worker payment for a
// reward. The fee truncates toward zero, and the payment is defined as
// the remainder, so fee+payment == reward holds exactly at any
// magnitude.
func SplitReward(reward *big.Int) (fee, workerPayment *big.Int) {
	fee = new(big.Int).Mul(reward, big.NewInt(FeeBasisPoints))
	fee.Quo(fee, big.NewInt(basisPointsDenominator))
	workerPayment = new(big.Int).Sub(reward, fee)
	return fee, workerPayment
}

// CreateTaskParams carries everything needed to post a task.
type CreateTaskParams struct {
	Creator          common.Address
	Title            string
	MetadataRef      string
	Category         Category
	TagsDigest       common.Hash
	ApplyDeadline    time.Time
	DeliveryDeadline time.Time
	Reward           *big.Int
}

// ValidateCreateTaskParams checks every creation precondition against
// the supplied logical time. Stateless.
func ValidateCreateTaskParams(p CreateTaskParams, now time.Time) error {
	if p.Creator == (common.Address{}) {
		return fmt.Errorf("%w: creator must be a nonzero address", ErrInvalidParameters)
	}
	if len(p.Title) == 0 || len(p.Title) > MaxTitleLength {
		return fmt.Errorf("%w: title length must be in (0, %d]", ErrInvalidParameters, MaxTitleLength)
	}
	if p.MetadataRef == "" {
		return fmt.Errorf("%w: metadata reference must not be empty", ErrInvalidParameters)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %d", ErrInvalidParameters, p.Category)
	}
	if p.Reward == nil || p.Reward.Sign() <= 0 || p.Reward.Cmp(MinReward) < 0 {
		return fmt.Errorf("%w: reward must be at least %s wei", ErrInvalidParameters, MinReward)
	}
	if !p.ApplyDeadline.After(now) {
		return fmt.Errorf("%w: apply deadline must be in the future", ErrInvalidParameters)
	}
	if !p.DeliveryDeadline.After(p.ApplyDeadline) {
		return fmt.Errorf("%w: delivery deadline must be after apply deadline", ErrInvalidParameters)
	}
	return nil
}

// ValidateStars checks a rating value.
func ValidateStars(stars uint8) error {
	if stars < 1 || stars > 5 {
		return fmt.Errorf("%w: stars must be in [1,5], got %d", ErrInvalidParameters, stars)
	}
	return nil
}
