package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransactionType(t *testing.T) {
	valid := []TransactionType{
		TxnPurchase, TxnPurchaseReturn, TxnPurchaseAllowance, TxnPurchaseDiscount,
		TxnInboundFreight, TxnSale, TxnSaleReturn, TxnSaleAllowance,
		TxnSaleDiscount, TxnOutboundFreight,
	}
	for _, txnType := range valid {
		assert.True(t, ValidTransactionType(txnType), "expected %q to be valid", txnType)
	}

	assert.False(t, ValidTransactionType("writeoff"))
	assert.False(t, ValidTransactionType("Sale"))
	assert.False(t, ValidTransactionType(""))
}

func TestTransactionTypeQuantityEffect(t *testing.T) {
	tests := []struct {
		txnType TransactionType
		want    int
	}{
		{TxnPurchase, 1},
		{TxnSaleReturn, 1},
		{TxnSale, -1},
		{TxnPurchaseReturn, -1},
		{TxnPurchaseAllowance, 0},
		{TxnPurchaseDiscount, 0},
		{TxnInboundFreight, 0},
		{TxnSaleAllowance, 0},
		{TxnSaleDiscount, 0},
		{TxnOutboundFreight, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.txnType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txnType.QuantityEffect())
		})
	}
}

func TestAccountTypeIsDebitNormal(t *testing.T) {
	assert.True(t, Asset.IsDebitNormal())
	assert.True(t, Expense.IsDebitNormal())
	assert.False(t, Liability.IsDebitNormal())
	assert.False(t, Equity.IsDebitNormal())
	assert.False(t, Revenue.IsDebitNormal())
}

func TestIsControlAccountCode(t *testing.T) {
	for _, code := range ControlAccountCodes {
		assert.True(t, IsControlAccountCode(code), "expected %q to be a control account code", code)
	}
	assert.False(t, IsControlAccountCode("1000"))
	assert.False(t, IsControlAccountCode(""))
}
