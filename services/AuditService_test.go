package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocksim.com/db"
	"stocksim.com/types"
)

func TestReconcileBalancesClean(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	trades := NewTradeService(&stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	_, err := trades.Buy(user.ID, "AAPL", "10")
	require.NoError(t, err)
	_, err = trades.Sell(user.ID, "AAPL", "4")
	require.NoError(t, err)

	drifts, err := NewAuditService().ReconcileBalances()
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestReconcileBalancesDetectsDrift(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "10000.00")
	trades := NewTradeService(&stubQuotes{prices: map[string]string{"AAPL": "150.00"}})

	_, err := trades.Buy(user.ID, "AAPL", "10")
	require.NoError(t, err)

	// Tamper with the balance behind the ledger's back.
	err = db.DB.Model(&types.User{}).Where("id = ?", user.ID).
		Update("cash", decimal.NewFromInt(9000)).Error
	require.NoError(t, err)

	drifts, err := NewAuditService().ReconcileBalances()
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, user.ID, drifts[0].UserID)
	assert.Equal(t, "8500.00", drifts[0].Expected)
	assert.Equal(t, "9000.00", drifts[0].Actual)
	assert.Equal(t, "500.00", drifts[0].Drift)
}
