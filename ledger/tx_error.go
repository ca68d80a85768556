package ledger

import "fmt"

// TxKind distinguishes the per-transaction business errors the processor can
// report. None of these abort the pipeline: the processor returns them
// without mutating the account, and the pipeline logs and continues.
type TxKind int

const (
	// TxAccountLocked: the account is locked; no further mutation allowed.
	TxAccountLocked TxKind = iota
	// TxDepositAmountNegative: a deposit's amount is negative.
	TxDepositAmountNegative
	// TxDepositAvailableOverflow: available+amount would overflow.
	TxDepositAvailableOverflow
	// TxDepositTotalOverflow: available'+held would overflow.
	TxDepositTotalOverflow
	// TxWithdrawalAmountNegative: a withdrawal's amount is negative.
	TxWithdrawalAmountNegative
	// TxWithdrawalInsufficientAvailable: amount exceeds available.
	TxWithdrawalInsufficientAvailable
	// TxDisputeTxNotFound: the disputed tx isn't in the block store.
	TxDisputeTxNotFound
	// TxDisputeClientMismatch: the disputed deposit belongs to another
	// client.
	TxDisputeClientMismatch
	// TxDisputeInsufficientAvailable: the disputed amount exceeds
	// available.
	TxDisputeInsufficientAvailable
	// TxDisputeHeldOverflow: held+amount would overflow.
	TxDisputeHeldOverflow
	// TxDisputeAlreadyOpen: tx is already an open dispute (a duplicate
	// dispute is reported, not silently dropped, though no funds move
	// either way).
	TxDisputeAlreadyOpen
	// TxResolveTxNotInDispute: tx is not currently disputed.
	TxResolveTxNotInDispute
	// TxResolveClientMismatch: the disputed deposit belongs to another
	// client.
	TxResolveClientMismatch
	// TxResolveInsufficientHeld: amount exceeds held.
	TxResolveInsufficientHeld
	// TxResolveAvailableOverflow: available+amount would overflow.
	TxResolveAvailableOverflow
	// TxChargebackTxNotInDispute: tx is not currently disputed.
	TxChargebackTxNotInDispute
	// TxChargebackClientMismatch: the disputed deposit belongs to another
	// client.
	TxChargebackClientMismatch
	// TxChargebackInsufficientHeld: amount exceeds held.
	TxChargebackInsufficientHeld
)

func (k TxKind) String() string {
	switch k {
	case TxAccountLocked:
		return "AccountLocked"
	case TxDepositAmountNegative:
		return "DepositAmountNegative"
	case TxDepositAvailableOverflow:
		return "DepositAvailableOverflow"
	case TxDepositTotalOverflow:
		return "DepositTotalOverflow"
	case TxWithdrawalAmountNegative:
		return "WithdrawalAmountNegative"
	case TxWithdrawalInsufficientAvailable:
		return "WithdrawalInsufficientAvailable"
	case TxDisputeTxNotFound:
		return "DisputeTxNotFound"
	case TxDisputeClientMismatch:
		return "DisputeClientMismatch"
	case TxDisputeInsufficientAvailable:
		return "DisputeInsufficientAvailable"
	case TxDisputeHeldOverflow:
		return "DisputeHeldOverflow"
	case TxDisputeAlreadyOpen:
		return "DisputeAlreadyOpen"
	case TxResolveTxNotInDispute:
		return "ResolveTxNotInDispute"
	case TxResolveClientMismatch:
		return "ResolveClientMismatch"
	case TxResolveInsufficientHeld:
		return "ResolveInsufficientHeld"
	case TxResolveAvailableOverflow:
		return "ResolveAvailableOverflow"
	case TxChargebackTxNotInDispute:
		return "ChargebackTxNotInDispute"
	case TxChargebackClientMismatch:
		return "ChargebackClientMismatch"
	case TxChargebackInsufficientHeld:
		return "ChargebackInsufficientHeld"
	default:
		return "Unknown"
	}
}

// TxError is a per-transaction business failure. It never wraps a fatal
// Error, and it never causes a state change to the account it refers to.
type TxError struct {
	Kind      TxKind
	Client    ClientID
	Tx        TxID
	Available Amount
	Held      Amount
	Amount    Amount
}

func (e *TxError) Error() string {
	return fmt.Sprintf("%s: client %s, transaction %s", e.Kind, e.Client, e.Tx)
}
