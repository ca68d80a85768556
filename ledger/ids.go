package ledger

import "strconv"

// ClientID identifies a client account. It is a uint16 newtype: equality and
// hashing use the inner integer, so ClientID is safe to use as a map key.
type ClientID uint16

// Uint16 returns the inner value.
func (c ClientID) Uint16() uint16 {
	return uint16(c)
}

// String renders the client id as a decimal string.
func (c ClientID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// TxID identifies a transaction. It is a uint32 newtype, unique across the
// input stream by assumption of the caller.
type TxID uint32

// Uint32 returns the inner value.
func (t TxID) Uint32() uint32 {
	return uint32(t)
}

// String renders the transaction id as a decimal string.
func (t TxID) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
