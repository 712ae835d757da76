// Package vesting implements the linear vesting schedule with cliff.
package vesting

import (
	"errors"
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/vesting-engine/internal/types"
)

var (
	ErrClaimNotAvailableYet = errors.New("claiming is not available yet")
	ErrInvalidVestingPeriod = errors.New("invalid vesting period")
	ErrCalculationOverflow  = errors.New("vested amount calculation overflows")
	ErrNothingToClaim       = errors.New("there is nothing to claim")
	ErrInvalidAmount        = errors.New("invalid total amount")
)

var maxAmount = sdkmath.NewIntFromUint64(math.MaxUint64)

// Schedule is the time and amount part of a grant. Times are unix seconds.
type Schedule struct {
	StartTime   int64
	EndTime     int64
	CliffTime   int64
	TotalAmount uint64
}

// Validate checks a schedule before a grant is created with it
func (s Schedule) Validate() error {
	if s.EndTime <= s.StartTime {
		return fmt.Errorf("%w: end time %d must be after start time %d",
			ErrInvalidVestingPeriod, s.EndTime, s.StartTime)
	}
	if s.CliffTime < s.StartTime || s.CliffTime > s.EndTime {
		return fmt.Errorf("%w: cliff time %d must be within [%d, %d]",
			ErrInvalidVestingPeriod, s.CliffTime, s.StartTime, s.EndTime)
	}
	if s.TotalAmount == 0 {
		return fmt.Errorf("%w: total amount must be positive", ErrInvalidAmount)
	}
	return nil
}

// span returns end - start floored at zero
func (s Schedule) span() int64 {
	return saturatingSub(s.EndTime, s.StartTime)
}

// Unlocked returns the amount unlocked at now by the linear schedule,
// ignoring the cliff.
func (s Schedule) Unlocked(now int64) (uint64, error) {
	span := s.span()
	if span == 0 {
		return 0, ErrInvalidVestingPeriod
	}

	if now >= s.EndTime {
		return s.TotalAmount, nil
	}

	elapsed := saturatingSub(now, s.StartTime)
	product := sdkmath.NewIntFromUint64(s.TotalAmount).Mul(sdkmath.NewIntFromUint64(uint64(elapsed)))
	if product.GT(maxAmount) {
		return 0, ErrCalculationOverflow
	}

	return product.Quo(sdkmath.NewIntFromUint64(uint64(span))).Uint64(), nil
}

// Vested returns the amount that may have left the grant by now. Nothing is
// vested before the cliff.
func (s Schedule) Vested(now int64) (uint64, error) {
	if now < s.CliffTime {
		if s.span() == 0 {
			return 0, ErrInvalidVestingPeriod
		}
		return 0, nil
	}
	return s.Unlocked(now)
}

// Claimable runs the claim checks in order and returns the amount that can be
// transferred at now given what was already withdrawn.
func (s Schedule) Claimable(totalWithdrawn uint64, now int64) (uint64, error) {
	if now < s.CliffTime {
		return 0, ErrClaimNotAvailableYet
	}

	vested, err := s.Unlocked(now)
	if err != nil {
		return 0, err
	}

	var claimable uint64
	if vested > totalWithdrawn {
		claimable = vested - totalWithdrawn
	}
	if claimable == 0 {
		return 0, ErrNothingToClaim
	}

	return claimable, nil
}

// State returns the position of the grant in its lifecycle at now
func (s Schedule) State(totalWithdrawn uint64, now int64) types.GrantState {
	switch {
	case s.TotalAmount > 0 && totalWithdrawn >= s.TotalAmount:
		return types.StateExhausted
	case now < s.StartTime && now < s.CliffTime:
		return types.StateCreated
	case now < s.CliffTime:
		return types.StatePendingCliff
	case now < s.EndTime:
		return types.StateVesting
	default:
		return types.StateFullyVested
	}
}

func saturatingSub(a, b int64) int64 {
	if b > a {
		return 0
	}
	d := a - b
	// a - b wraps when a is positive and b largely negative
	if d < 0 {
		return math.MaxInt64
	}
	return d
}
