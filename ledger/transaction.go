package ledger

import "fmt"

// Kind distinguishes the five transaction variants.
type Kind int

const (
	// KindDeposit credits the client's available funds.
	KindDeposit Kind = iota
	// KindWithdrawal debits the client's available funds.
	KindWithdrawal
	// KindDispute claims a prior deposit was erroneous.
	KindDispute
	// KindResolve releases a dispute's held funds back to available.
	KindResolve
	// KindChargeback reverses a disputed deposit and locks the account.
	KindChargeback
)

// String renders the kind the way it appears in the CSV "type" column.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// Transaction is the sum type over the five shapes a transaction stream can
// carry: Deposit{client,tx,amount}, Withdrawal{client,tx,amount},
// Dispute{client,tx}, Resolve{client,tx}, Chargeback{client,tx}. Amount is
// the zero Amount for the dispute family, which carry no amount of their
// own.
type Transaction struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount Amount
}

// NewDeposit returns a Deposit transaction.
func NewDeposit(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Kind: KindDeposit, Client: client, Tx: tx, Amount: amount}
}

// NewWithdrawal returns a Withdrawal transaction.
func NewWithdrawal(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Kind: KindWithdrawal, Client: client, Tx: tx, Amount: amount}
}

// NewDispute returns a Dispute transaction.
func NewDispute(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindDispute, Client: client, Tx: tx}
}

// NewResolve returns a Resolve transaction.
func NewResolve(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindResolve, Client: client, Tx: tx}
}

// NewChargeback returns a Chargeback transaction.
func NewChargeback(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindChargeback, Client: client, Tx: tx}
}

// IsDeposit reports whether this is a Deposit transaction. Only deposits may
// be persisted to, and found in, the block store.
func (t Transaction) IsDeposit() bool {
	return t.Kind == KindDeposit
}

func errUnknownKind(k Kind) error {
	return fmt.Errorf("unknown transaction kind %d", int(k))
}
