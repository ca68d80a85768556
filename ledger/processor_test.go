package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProcessor(t *testing.T) *Processor {
	t.Helper()
	return NewProcessor(newTestStore(t))
}

func TestProcessor_Deposit_AddsAvailable(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))

	txErr, err := p.Process(&account, NewDeposit(ClientID(1), TxID(2), mustAmount(t, "1.0")))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Available.Equal(mustAmount(t, "1")))
	assert.True(t, account.Total.Equal(mustAmount(t, "1")))
}

func TestProcessor_Deposit_NegativeAmount(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))

	txErr, err := p.Process(&account, NewDeposit(ClientID(1), TxID(2), mustAmount(t, "-1.0")))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDepositAmountNegative, txErr.Kind)
	assert.True(t, account.Available.IsZero())
}

func TestProcessor_Deposit_AvailableOverflow(t *testing.T) {
	p := newTestProcessor(t)
	account, err := NewAccount(ClientID(1), mustAmount(t, "1.0"), Zero, false, nil)
	require.NoError(t, err)

	txErr, err := p.Process(&account, NewDeposit(ClientID(1), TxID(2), NewAmount(Max)))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDepositAvailableOverflow, txErr.Kind)
}

func TestProcessor_Deposit_TotalOverflow(t *testing.T) {
	p := newTestProcessor(t)
	heldNearMax := mustAmount(t, "79228162514264337593543950334") // Max - 1
	account, err := NewAccount(ClientID(1), Zero, heldNearMax, false, nil)
	require.NoError(t, err)

	// available'=2 fits comfortably, but available'+held overflows Max.
	txErr, err := p.Process(&account, NewDeposit(ClientID(1), TxID(2), mustAmount(t, "2")))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDepositTotalOverflow, txErr.Kind)
	assert.True(t, account.Available.IsZero())
	assert.True(t, account.Held.Equal(heldNearMax))
}

func TestProcessor_Withdrawal_ExactAmount_ZeroesAvailable(t *testing.T) {
	p := newTestProcessor(t)
	account, err := NewAccount(ClientID(1), mustAmount(t, "1.0"), Zero, false, nil)
	require.NoError(t, err)

	txErr, err := p.Process(&account, NewWithdrawal(ClientID(1), TxID(2), mustAmount(t, "1.0")))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Available.IsZero())
}

func TestProcessor_Withdrawal_Insufficient_DoesNothing(t *testing.T) {
	p := newTestProcessor(t)
	account, err := NewAccount(ClientID(1), mustAmount(t, "1.0"), Zero, false, nil)
	require.NoError(t, err)

	txErr, err := p.Process(&account, NewWithdrawal(ClientID(1), TxID(2), mustAmount(t, "2.0")))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxWithdrawalInsufficientAvailable, txErr.Kind)
	assert.True(t, account.Available.Equal(mustAmount(t, "1")))
}

func TestProcessor_Withdrawal_NegativeAmount(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))

	txErr, err := p.Process(&account, NewWithdrawal(ClientID(1), TxID(2), mustAmount(t, "-1.0")))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxWithdrawalAmountNegative, txErr.Kind)
}

func TestProcessor_Dispute_HoldsFunds(t *testing.T) {
	store := newTestStore(t)
	p := NewProcessor(store)
	account := EmptyAccount(ClientID(1))

	_, err := p.Process(&account, NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0")))
	require.NoError(t, err)
	require.NoError(t, store.PersistBlock([]Transaction{NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0"))}))

	txErr, err := p.Process(&account, NewDispute(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Available.Equal(Zero))
	assert.True(t, account.Held.Equal(mustAmount(t, "5")))
	assert.True(t, account.IsDisputed(TxID(1)))
}

func TestProcessor_Dispute_UnknownTx_IsNonFatal(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))

	txErr, err := p.Process(&account, NewDispute(ClientID(1), TxID(999)))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDisputeTxNotFound, txErr.Kind)
}

func TestProcessor_Dispute_ClientMismatch(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistBlock([]Transaction{NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0"))}))
	p := NewProcessor(store)
	account := EmptyAccount(ClientID(2))

	txErr, err := p.Process(&account, NewDispute(ClientID(2), TxID(1)))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDisputeClientMismatch, txErr.Kind)
}

func TestProcessor_Dispute_Duplicate_DoesNotMoveFundsTwice(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistBlock([]Transaction{NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0"))}))
	p := NewProcessor(store)
	account := EmptyAccount(ClientID(1))
	account.Available = mustAmount(t, "5.0")
	account.Total = mustAmount(t, "5.0")

	txErr, err := p.Process(&account, NewDispute(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Available.Equal(Zero))
	assert.True(t, account.Held.Equal(mustAmount(t, "5")))

	txErr, err = p.Process(&account, NewDispute(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxDisputeAlreadyOpen, txErr.Kind)
	assert.True(t, account.Available.Equal(Zero))
	assert.True(t, account.Held.Equal(mustAmount(t, "5")))
}

func TestProcessor_Resolve_ReleasesHeldFunds(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistBlock([]Transaction{NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0"))}))
	p := NewProcessor(store)
	account := EmptyAccount(ClientID(1))
	account.Available = mustAmount(t, "5.0")
	account.Total = mustAmount(t, "5.0")

	_, err := p.Process(&account, NewDispute(ClientID(1), TxID(1)))
	require.NoError(t, err)

	txErr, err := p.Process(&account, NewResolve(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Available.Equal(mustAmount(t, "5")))
	assert.True(t, account.Held.Equal(Zero))
	assert.False(t, account.IsDisputed(TxID(1)))
}

func TestProcessor_Resolve_NotDisputed(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))

	txErr, err := p.Process(&account, NewResolve(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxResolveTxNotInDispute, txErr.Kind)
}

func TestProcessor_Chargeback_LocksAccount(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PersistBlock([]Transaction{NewDeposit(ClientID(1), TxID(1), mustAmount(t, "5.0"))}))
	p := NewProcessor(store)
	account := EmptyAccount(ClientID(1))
	account.Available = mustAmount(t, "5.0")
	account.Total = mustAmount(t, "5.0")

	_, err := p.Process(&account, NewDispute(ClientID(1), TxID(1)))
	require.NoError(t, err)

	txErr, err := p.Process(&account, NewChargeback(ClientID(1), TxID(1)))
	require.NoError(t, err)
	require.Nil(t, txErr)
	assert.True(t, account.Locked)
	assert.True(t, account.Held.Equal(Zero))
	assert.False(t, account.IsDisputed(TxID(1)))
}

func TestProcessor_LockedAccount_RejectsEverything(t *testing.T) {
	p := newTestProcessor(t)
	account := EmptyAccount(ClientID(1))
	account.Locked = true

	txErr, err := p.Process(&account, NewDeposit(ClientID(1), TxID(1), mustAmount(t, "1.0")))
	require.NoError(t, err)
	require.NotNil(t, txErr)
	assert.Equal(t, TxAccountLocked, txErr.Kind)
	assert.True(t, account.Available.IsZero())
}
