// Package fees computes the fee charged for each transaction kind. All
// functions are pure: deterministic for a given input, no hidden state, and
// they always return the already-scaled fee amount (rate times amount),
// never a bare rate.
package fees

import (
	"time"

	"github.com/shopspring/decimal"
)

// anyValue is a floor that every non-negative amount or balance clears, used
// by tier rows that apply regardless of one dimension.
var anyValue = decimal.NewFromInt(-1)

var (
	rateFree    = decimal.Zero
	rateHalf    = decimal.RequireFromString("0.005")
	rateOne     = decimal.RequireFromString("0.01")
	rateLowBal  = decimal.RequireFromString("0.002")
	rateMidBal  = decimal.RequireFromString("0.001")
	rateEighth  = decimal.RequireFromString("0.0125")
	rateQuarter = decimal.RequireFromString("0.0075")
	rateMax     = decimal.RequireFromString("0.015")
)

var (
	amountSmall     = decimal.NewFromInt(100)
	balanceLow      = decimal.NewFromInt(1000)
	balanceMid      = decimal.NewFromInt(5000)
	balanceHigh     = decimal.NewFromInt(10000)
	combinedHighBar = decimal.NewFromInt(10000)
)

// tier is one row of an ordered fee table. A row matches when the holder's
// student status equals the row's, the amount strictly exceeds amountAbove
// and the keyed balance strictly exceeds balanceAbove. Rows are evaluated
// top to bottom, first match wins.
type tier struct {
	student      bool
	amountAbove  decimal.Decimal
	balanceAbove decimal.Decimal
	rate         decimal.Decimal
}

var depositTiers = []tier{
	{student: true, amountAbove: amountSmall, balanceAbove: balanceLow, rate: rateOne},
	{student: true, amountAbove: amountSmall, balanceAbove: anyValue, rate: rateHalf},
	{student: true, amountAbove: anyValue, balanceAbove: balanceMid, rate: rateHalf},
	{student: false, amountAbove: amountSmall, balanceAbove: balanceMid, rate: rateOne},
	{student: false, amountAbove: amountSmall, balanceAbove: anyValue, rate: rateHalf},
	{student: false, amountAbove: anyValue, balanceAbove: balanceHigh, rate: rateHalf},
}

var transferTiers = []tier{
	{student: true, amountAbove: amountSmall, balanceAbove: combinedHighBar, rate: rateQuarter},
	{student: true, amountAbove: amountSmall, balanceAbove: anyValue, rate: rateEighth},
	{student: true, amountAbove: anyValue, balanceAbove: combinedHighBar, rate: rateHalf},
	{student: true, amountAbove: anyValue, balanceAbove: anyValue, rate: rateOne},
	{student: false, amountAbove: amountSmall, balanceAbove: combinedHighBar, rate: rateOne},
	{student: false, amountAbove: amountSmall, balanceAbove: anyValue, rate: rateMax},
	{student: false, amountAbove: anyValue, balanceAbove: combinedHighBar, rate: rateQuarter},
	{student: false, amountAbove: anyValue, balanceAbove: anyValue, rate: rateEighth},
}

func matchRate(tiers []tier, amount, balance decimal.Decimal, student bool) decimal.Decimal {
	for _, t := range tiers {
		if t.student != student {
			continue
		}
		if amount.GreaterThan(t.amountAbove) && balance.GreaterThan(t.balanceAbove) {
			return t.rate
		}
	}
	return rateFree
}

// Calculator computes per-transaction fees from the tier tables above. It
// is stateless; a single instance can be shared freely.
type Calculator struct{}

// NewCalculator creates a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Deposit returns the fee credited on a deposit. Deposits over 100 earn
// 0.5%, or 1% once the balance clears the holder's bar (1000 for students,
// 5000 otherwise). Deposits of at most 100 earn 0.5% only at high balances
// (above 5000 for students, 10000 otherwise) and are otherwise free.
func (c *Calculator) Deposit(amount, balance decimal.Decimal, student bool) decimal.Decimal {
	return matchRate(depositTiers, amount, balance, student).Mul(amount)
}

// Withdrawal returns the fee charged on a withdrawal. Students pay nothing
// on Saturday or Sunday. Everyone else resolves through balance tiers:
// strictly below 1000 the rate is 0.2%, from 1000 through 10000 it is 0.1%,
// above 10000 withdrawals are free.
func (c *Calculator) Withdrawal(amount, balance decimal.Decimal, student bool, day time.Weekday) decimal.Decimal {
	if student && (day == time.Saturday || day == time.Sunday) {
		return decimal.Zero
	}
	var rate decimal.Decimal
	switch {
	case balance.GreaterThan(balanceHigh):
		rate = rateFree
	case balance.GreaterThanOrEqual(balanceLow):
		rate = rateMidBal
	default:
		rate = rateLowBal
	}
	return rate.Mul(amount)
}

// Transfer returns the fee deducted from the source account of a transfer.
// The tier is keyed by the amount and the combined balance of both accounts.
func (c *Calculator) Transfer(amount, fromBalance, toBalance decimal.Decimal, student bool) decimal.Decimal {
	combined := fromBalance.Add(toBalance)
	return matchRate(transferTiers, amount, combined, student).Mul(amount)
}
