package ledger

import (
	"encoding/csv"
	"io"

	"github.com/rs/zerolog/log"
)

// DefaultTxBlockSize is the default chunk size transactions are grouped into
// before being persisted to the block store.
const DefaultTxBlockSize = 10_000

// Config holds the Pipeline's tunables.
type Config struct {
	BlockSize int
}

// Option customizes a Config.
type Option func(*Config)

// WithBlockSize overrides DefaultTxBlockSize.
func WithBlockSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.BlockSize = n
		}
	}
}

// Process orchestrates the full pipeline: decode r's transaction stream,
// persist it to a temporary block store in BlockSize chunks, dispatch each
// transaction through the Processor into a live Accounts map, and once the
// stream closes, emit every account snapshot to w. Per-client mutation
// order matches input order; output order across clients is unspecified.
//
// Any fatal Error aborts processing and is returned. Per-transaction
// business errors are logged and do not abort; the account they refer to
// is left unmutated.
func Process(r io.Reader, w io.Writer, opts ...Option) error {
	cfg := Config{BlockSize: DefaultTxBlockSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	store, err := NewTxBlockStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to remove block store directory")
		}
	}()

	processor := NewProcessor(store)
	accounts := NewAccounts()

	chunk := make([]Transaction, 0, cfg.BlockSize)
	flushChunk := func() error {
		if len(chunk) == 0 {
			return nil
		}
		if err := store.PersistBlock(chunk); err != nil {
			return err
		}
		for _, tx := range chunk {
			account := accounts.GetOrCreate(tx.Client)

			txErr, err := processor.Process(&account, tx)
			if err != nil {
				return err
			}
			if txErr != nil {
				log.Warn().
					Str("error", txErr.Kind.String()).
					Uint16("client", tx.Client.Uint16()).
					Uint32("tx", tx.Tx.Uint32()).
					Str("tx_type", tx.Kind.String()).
					Msg("transaction rejected")
			}
			accounts.Put(account)
		}
		chunk = chunk[:0]
		return nil
	}

	for tx, decodeErr := range DecodeTransactions(r) {
		if decodeErr != nil {
			return decodeErr
		}
		chunk = append(chunk, tx)
		if len(chunk) >= cfg.BlockSize {
			if err := flushChunk(); err != nil {
				return err
			}
		}
	}
	if err := flushChunk(); err != nil {
		return err
	}

	if err := emit(w, accounts); err != nil {
		return err
	}

	log.Info().Int("accounts", len(accounts)).Msg("processing complete")
	return nil
}

func emit(w io.Writer, accounts Accounts) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(OutputHeader); err != nil {
		return newIOErr(KindOutputWrite, err)
	}
	for _, account := range accounts {
		if err := EncodeAccount(writer, account); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return newIOErr(KindOutputFlush, err)
	}
	return nil
}
