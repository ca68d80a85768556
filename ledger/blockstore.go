package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// TxBlockStore is a directory of immutable block files, each a CSV of
// deposit records named "{txMin}_{txMax}.csv". It is the out-of-core index
// that lets the processor answer "what was the amount of deposit X?"
// without holding the whole stream in memory: a lookup prunes candidate
// files by name before reading any of them.
//
// TxBlockStore owns its directory exclusively; Close removes it and
// everything in it, which is the store's only cleanup path. There is no
// durability goal beyond the lifetime of the process.
type TxBlockStore struct {
	dir string
}

// NewTxBlockStore creates a fresh temp directory to back the store.
func NewTxBlockStore() (*TxBlockStore, error) {
	dir, err := os.MkdirTemp("", "txledger-blocks-*")
	if err != nil {
		return nil, newIOErr(KindBlockStoreDirCreate, err)
	}
	return &TxBlockStore{dir: dir}, nil
}

// Close removes the store's directory and all block files in it.
func (s *TxBlockStore) Close() error {
	return os.RemoveAll(s.dir)
}

// PersistBlock writes a new block file for the deposits in transactions.
// Only deposits are persisted: disputes, resolves, and chargebacks carry no
// amount, and none of them nor a withdrawal can be a dispute target. If
// transactions contains no deposits, no file is written.
func (s *TxBlockStore) PersistBlock(transactions []Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	deposits := make([]Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.IsDeposit() {
			deposits = append(deposits, tx)
		}
	}
	if len(deposits) == 0 {
		return nil
	}

	// Provisional name, from the chunk's first/last transaction id: the
	// true min/max (restricted to deposits) is only known once we've
	// filtered, so the file may need a rename once we're done writing.
	provisionalMin := transactions[0].Tx
	provisionalMax := transactions[len(transactions)-1].Tx
	provisionalName := blockFileName(provisionalMin, provisionalMax)
	provisionalPath := filepath.Join(s.dir, provisionalName)

	file, err := os.Create(provisionalPath)
	if err != nil {
		return newIOErr(KindBlockFileCreate, err)
	}

	txMin, txMax := deposits[0].Tx, deposits[0].Tx
	writer := csv.NewWriter(file)
	writer.UseCRLF = false

	var writeErr error
	for _, deposit := range deposits {
		if deposit.Tx < txMin {
			txMin = deposit.Tx
		}
		if deposit.Tx > txMax {
			txMax = deposit.Tx
		}
		if err := writeBlockRow(writer, deposit); err != nil {
			writeErr = newIOErr(KindBlockFileWrite, err)
			break
		}
	}
	if writeErr == nil {
		writer.Flush()
		if err := writer.Error(); err != nil {
			writeErr = newIOErr(KindBlockFileFlush, err)
		}
	}
	closeErr := file.Close()
	if writeErr != nil {
		os.Remove(provisionalPath)
		return writeErr
	}
	if closeErr != nil {
		os.Remove(provisionalPath)
		return newIOErr(KindBlockFileFlush, closeErr)
	}

	finalName := blockFileName(txMin, txMax)
	if finalName != provisionalName {
		finalPath := filepath.Join(s.dir, finalName)
		if err := os.Rename(provisionalPath, finalPath); err != nil {
			return newRenameErr(provisionalName, finalName, err)
		}
	}

	log.Debug().
		Uint32("tx_min", txMin.Uint32()).
		Uint32("tx_max", txMax.Uint32()).
		Int("deposits", len(deposits)).
		Msg("persisted block")

	return nil
}

// FindTransaction returns the deposit matching tx, if any block file's
// range contains it. Directory entries are parsed into (min, max) pairs,
// pruned to those whose range could contain tx, then streamed in
// ascending-name order until a match or exhaustion.
func (s *TxBlockStore) FindTransaction(tx TxID) (Transaction, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Transaction{}, false, newIOErr(KindBlockStoreDirRead, err)
	}

	type candidate struct {
		name string
		min  TxID
		max  TxID
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		min, max, err := parseBlockFileName(entry.Name())
		if err != nil {
			return Transaction{}, false, err
		}
		if tx >= min && tx <= max {
			candidates = append(candidates, candidate{name: entry.Name(), min: min, max: max})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].name < candidates[j].name
	})

	for _, c := range candidates {
		found, ok, err := s.scanBlockFile(c.name, tx)
		if err != nil {
			return Transaction{}, false, err
		}
		if ok {
			return found, true, nil
		}
	}

	return Transaction{}, false, nil
}

func (s *TxBlockStore) scanBlockFile(name string, tx TxID) (Transaction, bool, error) {
	path := filepath.Join(s.dir, name)
	file, err := os.Open(path)
	if err != nil {
		return Transaction{}, false, newIOErr(KindBlockStoreDirRead, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err != nil {
			break // io.EOF or malformed trailer: either way, no more rows here
		}
		deposit, err := readBlockRow(record)
		if err != nil {
			continue
		}
		if deposit.Tx == tx {
			return deposit, true, nil
		}
	}
	return Transaction{}, false, nil
}

func blockFileName(min, max TxID) string {
	return fmt.Sprintf("%d_%d.csv", min.Uint32(), max.Uint32())
}

func parseBlockFileName(fileName string) (TxID, TxID, error) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return 0, 0, newFileNameInvalidErr(fileName, fmt.Errorf("expected {min}_{max}.csv"))
	}
	minVal, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, newFileNameInvalidErr(fileName, err)
	}
	maxVal, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, newFileNameInvalidErr(fileName, err)
	}
	return TxID(minVal), TxID(maxVal), nil
}
