package ledger

// Processor applies a single Transaction to a single Account, consulting a
// TxBlockStore for the dispute family. It is deterministic, performs no
// retries, and has no internal concurrency.
type Processor struct {
	store *TxBlockStore
}

// NewProcessor returns a Processor backed by store.
func NewProcessor(store *TxBlockStore) *Processor {
	return &Processor{store: store}
}

// Process applies transaction to account. The outer error is fatal (an I/O
// failure from the block store) and should abort the pipeline. The inner
// *TxError is a per-transaction business failure: the account is left
// unmutated and the pipeline may log and continue.
func (p *Processor) Process(account *Account, transaction Transaction) (*TxError, error) {
	if account.Locked {
		return &TxError{Kind: TxAccountLocked, Client: account.Client, Tx: transaction.Tx}, nil
	}

	switch transaction.Kind {
	case KindDeposit:
		return p.handleDeposit(account, transaction)
	case KindWithdrawal:
		return p.handleWithdrawal(account, transaction)
	case KindDispute:
		return p.handleDispute(account, transaction)
	case KindResolve:
		return p.handleResolve(account, transaction)
	case KindChargeback:
		return p.handleChargeback(account, transaction)
	default:
		return nil, newIOErr(KindTransactionDeserialize, errUnknownKind(transaction.Kind))
	}
}

func (p *Processor) handleDeposit(account *Account, deposit Transaction) (*TxError, error) {
	client, tx, amount := account.Client, deposit.Tx, deposit.Amount

	if amount.IsNegative() {
		return &TxError{Kind: TxDepositAmountNegative, Client: client, Tx: tx, Amount: amount}, nil
	}

	availableNext, ok := account.Available.CheckedAdd(amount)
	if !ok {
		return &TxError{Kind: TxDepositAvailableOverflow, Client: client, Tx: tx, Amount: amount}, nil
	}

	updated, err := NewAccount(client, availableNext, account.Held, account.Locked, account.cloneDisputedTxs())
	if err != nil {
		return &TxError{Kind: TxDepositTotalOverflow, Client: client, Tx: tx, Amount: amount}, nil
	}

	*account = updated
	return nil, nil
}

func (p *Processor) handleWithdrawal(account *Account, withdrawal Transaction) (*TxError, error) {
	client, tx, amount := account.Client, withdrawal.Tx, withdrawal.Amount

	if amount.IsNegative() {
		return &TxError{Kind: TxWithdrawalAmountNegative, Client: client, Tx: tx, Amount: amount}, nil
	}
	if amount.GreaterThan(account.Available) {
		return &TxError{Kind: TxWithdrawalInsufficientAvailable, Client: client, Tx: tx,
			Available: account.Available, Amount: amount}, nil
	}

	availableNext := account.Available.SaturatingSub(amount)
	updated, err := NewAccount(client, availableNext, account.Held, account.Locked, account.cloneDisputedTxs())
	if err != nil {
		// Unreachable: withdrawal amount is non-negative and <= available,
		// so total can only shrink relative to the previous (valid) total.
		return &TxError{Kind: TxDepositTotalOverflow, Client: client, Tx: tx, Amount: amount}, nil
	}

	*account = updated
	return nil, nil
}

func (p *Processor) handleDispute(account *Account, dispute Transaction) (*TxError, error) {
	client, tx := account.Client, dispute.Tx

	deposit, found, err := p.store.FindTransaction(tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return &TxError{Kind: TxDisputeTxNotFound, Client: client, Tx: tx}, nil
	}
	if deposit.Client != client {
		return &TxError{Kind: TxDisputeClientMismatch, Client: client, Tx: tx}, nil
	}
	if account.IsDisputed(tx) {
		return &TxError{Kind: TxDisputeAlreadyOpen, Client: client, Tx: tx}, nil
	}

	amount := deposit.Amount
	if amount.GreaterThan(account.Available) {
		return &TxError{Kind: TxDisputeInsufficientAvailable, Client: client, Tx: tx,
			Available: account.Available, Amount: amount}, nil
	}

	heldNext, ok := account.Held.CheckedAdd(amount)
	if !ok {
		return &TxError{Kind: TxDisputeHeldOverflow, Client: client, Tx: tx,
			Held: account.Held, Amount: amount}, nil
	}
	availableNext := account.Available.SaturatingSub(amount)

	disputedTxs := account.cloneDisputedTxs()
	disputedTxs[tx] = struct{}{}

	updated, err := NewAccount(client, availableNext, heldNext, account.Locked, disputedTxs)
	if err != nil {
		// Unreachable: available' + held' == previous total, which was
		// already known not to overflow.
		return &TxError{Kind: TxDisputeHeldOverflow, Client: client, Tx: tx,
			Held: account.Held, Amount: amount}, nil
	}

	*account = updated
	return nil, nil
}

func (p *Processor) handleResolve(account *Account, resolve Transaction) (*TxError, error) {
	client, tx := account.Client, resolve.Tx

	if !account.IsDisputed(tx) {
		return &TxError{Kind: TxResolveTxNotInDispute, Client: client, Tx: tx}, nil
	}

	deposit, found, err := p.store.FindTransaction(tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return &TxError{Kind: TxDisputeTxNotFound, Client: client, Tx: tx}, nil
	}
	if deposit.Client != client {
		return &TxError{Kind: TxResolveClientMismatch, Client: client, Tx: tx}, nil
	}

	amount := deposit.Amount
	if amount.GreaterThan(account.Held) {
		return &TxError{Kind: TxResolveInsufficientHeld, Client: client, Tx: tx,
			Held: account.Held, Amount: amount}, nil
	}

	heldNext := account.Held.SaturatingSub(amount)
	availableNext, ok := account.Available.CheckedAdd(amount)
	if !ok {
		return &TxError{Kind: TxResolveAvailableOverflow, Client: client, Tx: tx,
			Available: account.Available, Amount: amount}, nil
	}

	disputedTxs := account.cloneDisputedTxs()
	delete(disputedTxs, tx)

	updated, err := NewAccount(client, availableNext, heldNext, account.Locked, disputedTxs)
	if err != nil {
		return &TxError{Kind: TxResolveAvailableOverflow, Client: client, Tx: tx,
			Available: account.Available, Amount: amount}, nil
	}

	*account = updated
	return nil, nil
}

func (p *Processor) handleChargeback(account *Account, chargeback Transaction) (*TxError, error) {
	client, tx := account.Client, chargeback.Tx

	if !account.IsDisputed(tx) {
		return &TxError{Kind: TxChargebackTxNotInDispute, Client: client, Tx: tx}, nil
	}

	deposit, found, err := p.store.FindTransaction(tx)
	if err != nil {
		return nil, err
	}
	if !found {
		return &TxError{Kind: TxDisputeTxNotFound, Client: client, Tx: tx}, nil
	}
	if deposit.Client != client {
		return &TxError{Kind: TxChargebackClientMismatch, Client: client, Tx: tx}, nil
	}

	amount := deposit.Amount
	if amount.GreaterThan(account.Held) {
		return &TxError{Kind: TxChargebackInsufficientHeld, Client: client, Tx: tx,
			Held: account.Held, Amount: amount}, nil
	}

	heldNext := account.Held.SaturatingSub(amount)

	disputedTxs := account.cloneDisputedTxs()
	delete(disputedTxs, tx)

	updated, err := NewAccount(client, account.Available, heldNext, true, disputedTxs)
	if err != nil {
		return &TxError{Kind: TxChargebackInsufficientHeld, Client: client, Tx: tx,
			Held: account.Held, Amount: amount}, nil
	}

	*account = updated
	return nil, nil
}
