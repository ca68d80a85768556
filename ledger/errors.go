package ledger

import "fmt"

// ErrorKind distinguishes the fatal error conditions: I/O failures from the
// block store, the input file, or the output stream, plus the two
// decode-time failures (missing amount on a deposit or withdrawal). Any
// ErrorKind aborts the pipeline.
type ErrorKind int

const (
	// KindBlockStoreDirCreate is returned when the block store's temp
	// directory cannot be created.
	KindBlockStoreDirCreate ErrorKind = iota
	// KindBlockStoreDirRead is returned when the block store's directory
	// cannot be enumerated, or a block file in it cannot be opened, during
	// FindTransaction.
	KindBlockStoreDirRead
	// KindBlockFileCreate is returned when a block file cannot be created.
	KindBlockFileCreate
	// KindBlockFileWrite is returned when a row cannot be written to a
	// block file.
	KindBlockFileWrite
	// KindBlockFileFlush is returned when a block file cannot be flushed.
	KindBlockFileFlush
	// KindBlockFileRename is returned when a block file cannot be renamed
	// to its final {min}_{max}.csv name.
	KindBlockFileRename
	// KindBlockFileNameInvalid is returned when a file in the block store's
	// directory doesn't parse as {min}_{max}.csv.
	KindBlockFileNameInvalid
	// KindInputOpen is returned when the input transactions CSV cannot be
	// opened.
	KindInputOpen
	// KindTransactionDeserialize is returned when a row fails to decode.
	KindTransactionDeserialize
	// KindDepositAmountNotProvided is returned when a deposit record has no
	// amount column.
	KindDepositAmountNotProvided
	// KindWithdrawalAmountNotProvided is returned when a withdrawal record
	// has no amount column.
	KindWithdrawalAmountNotProvided
	// KindOutputWrite is returned when an account snapshot cannot be
	// written to the output stream.
	KindOutputWrite
	// KindOutputFlush is returned when the output stream cannot be flushed.
	KindOutputFlush
)

func (k ErrorKind) String() string {
	switch k {
	case KindBlockStoreDirCreate:
		return "BlockStoreDirCreate"
	case KindBlockStoreDirRead:
		return "BlockStoreDirRead"
	case KindBlockFileCreate:
		return "BlockFileCreate"
	case KindBlockFileWrite:
		return "BlockFileWrite"
	case KindBlockFileFlush:
		return "BlockFileFlush"
	case KindBlockFileRename:
		return "BlockFileRename"
	case KindBlockFileNameInvalid:
		return "BlockFileNameInvalid"
	case KindInputOpen:
		return "InputOpen"
	case KindTransactionDeserialize:
		return "TransactionDeserialize"
	case KindDepositAmountNotProvided:
		return "DepositAmountNotProvided"
	case KindWithdrawalAmountNotProvided:
		return "WithdrawalAmountNotProvided"
	case KindOutputWrite:
		return "OutputWrite"
	case KindOutputFlush:
		return "OutputFlush"
	default:
		return "Unknown"
	}
}

// Error is a fatal processing error: one that aborts the pipeline.
type Error struct {
	Kind    ErrorKind
	Client  ClientID
	Tx      TxID
	Detail  string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Wrapped)
	}
	return e.Kind.String()
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

func newIOErr(kind ErrorKind, wrapped error) *Error {
	return &Error{Kind: kind, Wrapped: wrapped}
}

func newAmountNotProvidedErr(kind ErrorKind, client ClientID, tx TxID) *Error {
	return &Error{Kind: kind, Client: client, Tx: tx,
		Detail: fmt.Sprintf("client %s, transaction %s", client, tx)}
}

func newFileNameInvalidErr(fileName string, wrapped error) *Error {
	return &Error{Kind: KindBlockFileNameInvalid, Detail: fileName, Wrapped: wrapped}
}

func newRenameErr(from, to string, wrapped error) *Error {
	return &Error{Kind: KindBlockFileRename, Detail: fmt.Sprintf("%s -> %s", from, to), Wrapped: wrapped}
}
