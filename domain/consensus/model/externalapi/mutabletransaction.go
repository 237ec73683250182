package externalapi

import "github.com/pkg/errors"

// MutableTransaction represents a transaction along with partially filled UTXO
// entry data and optional fee and mass.
//
// The inner transaction is held by pointer, so a single underlying transaction
// may back several MutableTransactions at once (e.g. the mempool and a
// block-template builder resolving entries independently). That is only safe
// while no one mutates the inner transaction; a signer that rewrites input
// scripts must hold the only reference. MutableTransaction itself provides no
// locking, so sharing one instance across goroutines requires external
// synchronization.
type MutableTransaction struct {
	// Tx is the inner transaction
	Tx *DomainTransaction
	// Entries is the partially filled UTXO entry data, one slot per
	// input, where a nil slot is not yet resolved
	Entries []*UTXOEntry
	// CalculatedFee is the populated fee, nil until calculated
	CalculatedFee *uint64
	// CalculatedMass is the populated mass, nil until calculated
	CalculatedMass *uint64
}

// SignableTransaction is a fully mutable and owned transaction which can be
// populated with external data and also modified internally and signed etc.
type SignableTransaction = MutableTransaction

// NewMutableTransaction wraps the given transaction with all entry slots unset
func NewMutableTransaction(tx *DomainTransaction) *MutableTransaction {
	return &MutableTransaction{
		Tx:      tx,
		Entries: make([]*UTXOEntry, len(tx.Inputs)),
	}
}

// NewMutableTransactionWithEntries wraps the given transaction with all entry
// slots set. Mismatching entry and input counts is a programming error and panics.
func NewMutableTransactionWithEntries(tx *DomainTransaction, entries []*UTXOEntry) *MutableTransaction {
	if len(tx.Inputs) != len(entries) {
		panic(errors.Errorf("mutable transaction got %d UTXO entries for %d inputs",
			len(entries), len(tx.Inputs)))
	}

	entriesClone := make([]*UTXOEntry, len(entries))
	copy(entriesClone, entries)
	return &MutableTransaction{Tx: tx, Entries: entriesClone}
}

// ID returns the inner transaction's cached ID
func (mtx *MutableTransaction) ID() *DomainTransactionID {
	return mtx.Tx.ID()
}

// IsVerifiable returns true iff every entry slot is set
func (mtx *MutableTransaction) IsVerifiable() bool {
	mtx.checkEntriesLength()
	for _, entry := range mtx.Entries {
		if entry == nil {
			return false
		}
	}
	return true
}

// IsFullyPopulated returns true iff the transaction is verifiable and both fee
// and mass have been calculated
func (mtx *MutableTransaction) IsFullyPopulated() bool {
	return mtx.IsVerifiable() && mtx.CalculatedFee != nil && mtx.CalculatedMass != nil
}

// MissingOutpoints begins an iterator over the previous outpoints of all
// currently unset entry slots, in input order. Used by resolvers to know
// what to fetch next.
func (mtx *MutableTransaction) MissingOutpoints() *MissingOutpointIterator {
	mtx.checkEntriesLength()
	return &MissingOutpointIterator{mtx: mtx, index: -1}
}

// ClearEntries resets every entry slot to unset, e.g. to retry resolution
// after a chain reorganization invalidated previously resolved entries.
func (mtx *MutableTransaction) ClearEntries() {
	for i := range mtx.Entries {
		mtx.Entries[i] = nil
	}
}

// AsVerifiable returns the transaction wrapped as a VerifiableTransaction.
// Note that this function must be called only once all UTXO entries are
// populated, otherwise it panics. Callers are expected to check IsVerifiable
// first.
func (mtx *MutableTransaction) AsVerifiable() VerifiableTransaction {
	if !mtx.IsVerifiable() {
		panic(errors.Errorf("transaction %s is not fully populated with UTXO entries", mtx.ID()))
	}
	return verifiableMutableTransaction{mtx: mtx}
}

func (mtx *MutableTransaction) checkEntriesLength() {
	if len(mtx.Entries) != len(mtx.Tx.Inputs) {
		panic(errors.Errorf("mutable transaction has %d UTXO entry slots for %d inputs",
			len(mtx.Entries), len(mtx.Tx.Inputs)))
	}
}

// MissingOutpointIterator iterates over the previous outpoints of the unset
// entry slots of a MutableTransaction
type MissingOutpointIterator struct {
	mtx   *MutableTransaction
	index int
}

// Next moves the iterator to the next missing outpoint. Returns false when done.
func (mi *MissingOutpointIterator) Next() bool {
	for mi.index++; mi.index < len(mi.mtx.Entries); mi.index++ {
		if mi.mtx.Entries[mi.index] == nil {
			return true
		}
	}
	return false
}

// Get returns the missing outpoint the iterator currently points to, along
// with the index of the input it belongs to
func (mi *MissingOutpointIterator) Get() (outpoint *DomainOutpoint, inputIndex int) {
	return &mi.mtx.Tx.Inputs[mi.index].PreviousOutpoint, mi.index
}

// verifiableMutableTransaction is a private wrapper over MutableTransaction
// that exposes it as a VerifiableTransaction
type verifiableMutableTransaction struct {
	mtx *MutableTransaction
}

func (v verifiableMutableTransaction) Tx() *DomainTransaction {
	return v.mtx.Tx
}

func (v verifiableMutableTransaction) PopulatedInput(index int) (*DomainTransactionInput, *UTXOEntry) {
	entry := v.mtx.Entries[index]
	if entry == nil {
		panic(errors.Errorf("expected to be called only following full UTXO population"))
	}
	return v.mtx.Tx.Inputs[index], entry
}

func (v verifiableMutableTransaction) Inputs() []*DomainTransactionInput {
	return v.mtx.Tx.Inputs
}

func (v verifiableMutableTransaction) Outputs() []*DomainTransactionOutput {
	return v.mtx.Tx.Outputs
}

func (v verifiableMutableTransaction) IsCoinBase() bool {
	return v.mtx.Tx.IsCoinBase()
}

func (v verifiableMutableTransaction) ID() *DomainTransactionID {
	return v.mtx.Tx.ID()
}
