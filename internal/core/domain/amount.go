package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// NativeDecimals is the number of decimals between one ether and one wei.
const NativeDecimals = 18

// maxUint256Digits is the number of decimal digits in 2^256-1.
const maxUint256Digits = 78

var (
	ErrAmountNotNumeric  = errors.New("amount is not a number")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountFractional  = errors.New("amount must be a whole number")
	ErrAmountTooLarge    = errors.New("amount does not fit in 256 bits")
	ErrBalanceOutOfRange = errors.New("balance does not fit in 64 bits")
)

// Amount is a validated, strictly positive whole amount as typed by the user.
type Amount struct {
	value decimal.Decimal
}

// ParseAmount validates user input before it can reach the contract.
// The contract takes the amount as an integer argument, so fractional input
// is rejected instead of silently truncated.
func ParseAmount(raw string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrAmountNotNumeric, raw)
	}
	if !d.IsPositive() {
		return Amount{}, ErrAmountNotPositive
	}
	// Exponent notation can describe huge values in a few bytes; bound the
	// digit count before anything is expanded.
	if intDigits(d)+NativeDecimals > maxUint256Digits {
		return Amount{}, ErrAmountTooLarge
	}
	if !d.IsInteger() {
		return Amount{}, ErrAmountFractional
	}
	if _, overflow := uint256.FromBig(d.Shift(NativeDecimals).BigInt()); overflow {
		return Amount{}, ErrAmountTooLarge
	}
	return Amount{value: d}, nil
}

// intDigits is the number of digits left of the decimal point.
func intDigits(d decimal.Decimal) int64 {
	return int64(len(d.Coefficient().String())) + int64(d.Exponent())
}

// Decimal returns the amount as entered.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Units returns the amount as the contract's integer call argument.
func (a Amount) Units() *big.Int {
	return a.value.BigInt()
}

// Wei returns the amount in ether converted to wei, for the attached value.
func (a Amount) Wei() *big.Int {
	return a.value.Shift(NativeDecimals).BigInt()
}

func (a Amount) String() string {
	return a.value.String()
}

// BalanceFromBig converts the contract's uint256 balance into the uint64 the
// session keeps.
func BalanceFromBig(v *big.Int) (uint64, error) {
	if v == nil || v.Sign() < 0 {
		return 0, ErrBalanceOutOfRange
	}
	u, overflow := uint256.FromBig(v)
	if overflow || !u.IsUint64() {
		return 0, ErrBalanceOutOfRange
	}
	return u.Uint64(), nil
}
