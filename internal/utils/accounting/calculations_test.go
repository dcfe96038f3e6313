package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineDelta(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       string
		credit      string
		want        string
	}{
		{"debit increases asset", domain.Asset, "100", "0", "100"},
		{"credit decreases asset", domain.Asset, "0", "40", "-40"},
		{"debit increases expense", domain.Expense, "25.50", "0", "25.50"},
		{"credit increases liability", domain.Liability, "0", "100", "100"},
		{"debit decreases liability", domain.Liability, "30", "0", "-30"},
		{"credit increases equity", domain.Equity, "0", "500", "500"},
		{"credit increases revenue", domain.Revenue, "0", "75", "75"},
		{"debit decreases revenue", domain.Revenue, "75", "0", "-75"},
		{"both sides net", domain.Asset, "100", "40", "60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := domain.EntryLine{AccountID: "acc-1", Debit: dec(tt.debit), Credit: dec(tt.credit)}
			got, err := LineDelta(line, tt.accountType)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestLineDelta_UnknownAccountType(t *testing.T) {
	line := domain.EntryLine{AccountID: "acc-1", Debit: dec("10")}
	_, err := LineDelta(line, domain.AccountType("CONTRA"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CONTRA")
}

func TestValidateEntryBalance(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.EntryLine
		wantErr string
	}{
		{
			name: "balanced pair",
			lines: []domain.EntryLine{
				{Debit: dec("100"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: dec("100")},
			},
		},
		{
			name: "balanced within tolerance",
			lines: []domain.EntryLine{
				{Debit: dec("100.00"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: dec("99.99")},
			},
		},
		{
			name: "unbalanced beyond tolerance",
			lines: []domain.EntryLine{
				{Debit: dec("100.00"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: dec("99.98")},
			},
			wantErr: "do not equal",
		},
		{
			name:    "single line",
			lines:   []domain.EntryLine{{Debit: dec("100"), Credit: decimal.Zero}},
			wantErr: "at least two lines",
		},
		{
			name: "negative amount",
			lines: []domain.EntryLine{
				{Debit: dec("-10"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: dec("-10")},
			},
			wantErr: "cannot be negative",
		},
		{
			name: "empty line",
			lines: []domain.EntryLine{
				{Debit: dec("100"), Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: decimal.Zero},
				{Debit: decimal.Zero, Credit: dec("100")},
			},
			wantErr: "exactly one of debit or credit",
		},
		{
			name: "line with both sides set",
			lines: []domain.EntryLine{
				{Debit: dec("100"), Credit: dec("40")},
				{Debit: decimal.Zero, Credit: dec("60")},
			},
			wantErr: "exactly one of debit or credit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntryBalance(tt.lines)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPresentOnNormalSide(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		balance     string
		wantDebit   string
		wantCredit  string
	}{
		{"positive asset on debit side", domain.Asset, "250", "250", "0"},
		{"negative asset flips to credit", domain.Asset, "-30", "0", "30"},
		{"positive liability on credit side", domain.Liability, "75", "0", "75"},
		{"negative revenue flips to debit", domain.Revenue, "-50", "50", "0"},
		{"zero expense stays on debit side", domain.Expense, "0", "0", "0"},
		{"zero equity stays on credit side", domain.Equity, "0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit := PresentOnNormalSide(dec(tt.balance), tt.accountType)
			assert.True(t, debit.Equal(dec(tt.wantDebit)), "debit: got %s, want %s", debit, tt.wantDebit)
			assert.True(t, credit.Equal(dec(tt.wantCredit)), "credit: got %s, want %s", credit, tt.wantCredit)
		})
	}
}

func TestIsBalanced(t *testing.T) {
	assert.True(t, IsBalanced(dec("100"), dec("100")))
	assert.True(t, IsBalanced(dec("100.005"), dec("100")))
	assert.False(t, IsBalanced(dec("100.01"), dec("100")))
	assert.False(t, IsBalanced(dec("100"), dec("101")))
}
