package ledger

import "fmt"

// ErrTotalOverflow is returned by NewAccount when available+held would
// overflow Amount's representable range.
type ErrTotalOverflow struct {
	Client ClientID
}

func (e *ErrTotalOverflow) Error() string {
	return fmt.Sprintf("client %s: available + held would overflow total", e.Client)
}

// Account is a client's ledger state: available funds, held funds, their
// sum (total), a locked flag, and the set of currently open disputed
// transaction ids. Once locked, an Account is never mutated again.
//
// Every mutation replaces the whole Account value so that total ==
// available + held is re-checked at each step, rather than drifting.
type Account struct {
	Client      ClientID
	Available   Amount
	Held        Amount
	Total       Amount
	Locked      bool
	DisputedTxs map[TxID]struct{}
}

// NewAccount is the checked constructor: it computes Total and fails if
// available+held overflows.
func NewAccount(client ClientID, available, held Amount, locked bool, disputedTxs map[TxID]struct{}) (Account, error) {
	total, ok := available.CheckedAdd(held)
	if !ok {
		return Account{}, &ErrTotalOverflow{Client: client}
	}
	return Account{
		Client:      client,
		Available:   available,
		Held:        held,
		Total:       total,
		Locked:      locked,
		DisputedTxs: disputedTxs,
	}, nil
}

// EmptyAccount returns a new Account with zero balances, unlocked, and no
// open disputes. Accounts are created lazily this way on first sight of a
// client in the transaction stream.
func EmptyAccount(client ClientID) Account {
	return Account{
		Client:      client,
		Available:   Zero,
		Held:        Zero,
		Total:       Zero,
		Locked:      false,
		DisputedTxs: make(map[TxID]struct{}),
	}
}

// IsDisputed reports whether tx is currently an open dispute on this
// account.
func (a Account) IsDisputed(tx TxID) bool {
	_, ok := a.DisputedTxs[tx]
	return ok
}

// cloneDisputedTxs returns a shallow copy of the disputed-tx set, so that a
// rejected mutation never shares (and risks later aliasing) the set with
// the account it was derived from.
func (a Account) cloneDisputedTxs() map[TxID]struct{} {
	clone := make(map[TxID]struct{}, len(a.DisputedTxs))
	for tx := range a.DisputedTxs {
		clone[tx] = struct{}{}
	}
	return clone
}
