package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// InputHeader is the header row of the input transaction stream.
var InputHeader = []string{"type", "client", "tx", "amount"}

// OutputHeader is the header row of the emitted account snapshots.
var OutputHeader = []string{"client", "available", "held", "total", "locked"}

// DecodeTransactions returns a lazy, fallible sequence of Transactions read
// from r, a CSV stream with header "type,client,tx,amount". Every field is
// trimmed of surrounding whitespace; rows for the dispute family may omit
// the trailing amount column or comma entirely. Iteration stops at the
// first error: the caller's range loop should check the yielded error on
// every iteration and break on a non-nil one.
func DecodeTransactions(r io.Reader) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1 // dispute/resolve/chargeback rows may be short

		if _, err := reader.Read(); err != nil {
			if err == io.EOF {
				return
			}
			yield(Transaction{}, newIOErr(KindTransactionDeserialize, err))
			return
		}

		for {
			record, err := reader.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(Transaction{}, newIOErr(KindTransactionDeserialize, err))
				return
			}

			tx, err := decodeRow(record)
			if err != nil {
				yield(Transaction{}, err)
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

func decodeRow(record []string) (Transaction, error) {
	if len(record) < 3 {
		return Transaction{}, newIOErr(KindTransactionDeserialize,
			fmt.Errorf("row has %d fields, want at least 3", len(record)))
	}

	typ := strings.ToLower(strings.TrimSpace(record[0]))
	clientStr := strings.TrimSpace(record[1])
	txStr := strings.TrimSpace(record[2])

	clientVal, err := strconv.ParseUint(clientStr, 10, 16)
	if err != nil {
		return Transaction{}, newIOErr(KindTransactionDeserialize, fmt.Errorf("invalid client id %q: %w", clientStr, err))
	}
	txVal, err := strconv.ParseUint(txStr, 10, 32)
	if err != nil {
		return Transaction{}, newIOErr(KindTransactionDeserialize, fmt.Errorf("invalid tx id %q: %w", txStr, err))
	}
	client := ClientID(clientVal)
	tx := TxID(txVal)

	var amountStr string
	if len(record) >= 4 {
		amountStr = strings.TrimSpace(record[3])
	}

	switch typ {
	case "deposit":
		if amountStr == "" {
			return Transaction{}, newAmountNotProvidedErr(KindDepositAmountNotProvided, client, tx)
		}
		amount, err := ParseAmount(amountStr)
		if err != nil {
			return Transaction{}, newIOErr(KindTransactionDeserialize, fmt.Errorf("invalid deposit amount %q: %w", amountStr, err))
		}
		return NewDeposit(client, tx, amount), nil
	case "withdrawal":
		if amountStr == "" {
			return Transaction{}, newAmountNotProvidedErr(KindWithdrawalAmountNotProvided, client, tx)
		}
		amount, err := ParseAmount(amountStr)
		if err != nil {
			return Transaction{}, newIOErr(KindTransactionDeserialize, fmt.Errorf("invalid withdrawal amount %q: %w", amountStr, err))
		}
		return NewWithdrawal(client, tx, amount), nil
	case "dispute":
		return NewDispute(client, tx), nil
	case "resolve":
		return NewResolve(client, tx), nil
	case "chargeback":
		return NewChargeback(client, tx), nil
	default:
		return Transaction{}, newIOErr(KindTransactionDeserialize, fmt.Errorf("unknown transaction type %q", typ))
	}
}

// EncodeAccount writes a single account snapshot row.
func EncodeAccount(w *csv.Writer, account Account) error {
	record := []string{
		account.Client.String(),
		account.Available.String(),
		account.Held.String(),
		account.Total.String(),
		strconv.FormatBool(account.Locked),
	}
	if err := w.Write(record); err != nil {
		return newIOErr(KindOutputWrite, err)
	}
	return nil
}

// writeBlockRow writes a single deposit as a block-file row, mirroring the
// input schema restricted to deposit records.
func writeBlockRow(w *csv.Writer, tx Transaction) error {
	return w.Write([]string{
		"deposit",
		tx.Client.String(),
		tx.Tx.String(),
		tx.Amount.String(),
	})
}

// readBlockRow parses a single block-file row back into a Transaction. Block
// files only ever contain deposit rows.
func readBlockRow(record []string) (Transaction, error) {
	if len(record) != 4 {
		return Transaction{}, fmt.Errorf("block row has %d fields, want 4", len(record))
	}
	clientVal, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid client id %q: %w", record[1], err)
	}
	txVal, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid tx id %q: %w", record[2], err)
	}
	amount, err := ParseAmount(strings.TrimSpace(record[3]))
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", record[3], err)
	}
	return NewDeposit(ClientID(clientVal), TxID(txVal), amount), nil
}
