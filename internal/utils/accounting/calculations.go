package accounting

import (
	"fmt"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute difference between total debits
// and total credits for an entry (or a whole trial balance) to count as
// balanced. Amounts are decimals end to end, so in practice the difference is
// exactly zero; the tolerance mirrors the documented contract for callers
// submitting rounded figures.
var BalanceTolerance = decimal.RequireFromString("0.01")

// LineDelta computes the signed effect of a single entry line on an account's
// balance. DEBIT increases ASSET/EXPENSE and decreases the rest; CREDIT is
// the mirror image.
func LineDelta(line domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
}

// ValidateEntryBalance checks the structural double-entry invariants of a
// line set: at least two lines, no negative amounts, exactly one of
// debit/credit positive per line, and total debits equal to total credits
// within BalanceTolerance.
func ValidateEntryBalance(lines []domain.EntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("entry must have at least two lines")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d: debit and credit amounts cannot be negative", i)
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return fmt.Errorf("line %d: exactly one of debit or credit must be set", i)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if totalDebit.Sub(totalCredit).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("total debits %s do not equal total credits %s", totalDebit, totalCredit)
	}
	return nil
}

// PresentOnNormalSide splits a balance into trial-balance debit/credit
// columns. A positive balance lands on the account type's normal side; a
// negative (abnormal, contra) balance appears as its absolute value on the
// opposite side.
func PresentOnNormalSide(balance decimal.Decimal, accountType domain.AccountType) (debit, credit decimal.Decimal) {
	if accountType.IsDebitNormal() {
		if balance.Sign() >= 0 {
			return balance, decimal.Zero
		}
		return decimal.Zero, balance.Abs()
	}
	if balance.Sign() >= 0 {
		return decimal.Zero, balance
	}
	return balance.Abs(), decimal.Zero
}

// IsBalanced reports whether two column totals agree within BalanceTolerance.
func IsBalanced(totalDebit, totalCredit decimal.Decimal) bool {
	return totalDebit.Sub(totalCredit).Abs().LessThan(BalanceTolerance)
}
