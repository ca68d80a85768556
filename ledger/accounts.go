package ledger

// Accounts is the working map of ClientID to Account. As long as the stream
// only ever touches up to 65,536 distinct clients (ClientID being a uint16),
// the map holds at most that many entries; memory use is otherwise
// determined by how many transactions are concurrently disputed (the
// DisputedTxs sets), not by stream length.
type Accounts map[ClientID]Account

// NewAccounts returns an empty Accounts map.
func NewAccounts() Accounts {
	return make(Accounts)
}

// GetOrCreate returns the account for client, creating an EmptyAccount on
// first sight of that client.
func (a Accounts) GetOrCreate(client ClientID) Account {
	account, ok := a[client]
	if !ok {
		account = EmptyAccount(client)
	}
	return account
}

// Put replaces the stored account, keyed by its own Client field.
func (a Accounts) Put(account Account) {
	a[account.Client] = account
}
