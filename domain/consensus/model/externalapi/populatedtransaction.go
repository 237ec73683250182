package externalapi

import "github.com/pkg/errors"

// PopulatedTransaction represents a read-only referenced transaction along
// with fully populated UTXO entry data
type PopulatedTransaction struct {
	tx      *DomainTransaction
	entries []*UTXOEntry
}

// NewPopulatedTransaction wraps the given transaction with the given UTXO
// entries, one per input. Mismatching entry and input counts is a programming
// error, since populated views are only built after a successful UTXO
// resolution step, so it panics rather than returning an error.
func NewPopulatedTransaction(tx *DomainTransaction, entries []*UTXOEntry) *PopulatedTransaction {
	if len(tx.Inputs) != len(entries) {
		panic(errors.Errorf("populated transaction got %d UTXO entries for %d inputs",
			len(entries), len(tx.Inputs)))
	}
	return &PopulatedTransaction{tx: tx, entries: entries}
}

// Tx returns the underlying transaction
func (pt *PopulatedTransaction) Tx() *DomainTransaction {
	return pt.tx
}

// Entries returns the resolved UTXO entries, one per input
func (pt *PopulatedTransaction) Entries() []*UTXOEntry {
	return pt.entries
}

// PopulatedInput returns the index'th input along with its resolved UTXO entry
func (pt *PopulatedTransaction) PopulatedInput(index int) (*DomainTransactionInput, *UTXOEntry) {
	return pt.tx.Inputs[index], pt.entries[index]
}

// Inputs returns the underlying transaction's inputs
func (pt *PopulatedTransaction) Inputs() []*DomainTransactionInput {
	return pt.tx.Inputs
}

// Outputs returns the underlying transaction's outputs
func (pt *PopulatedTransaction) Outputs() []*DomainTransactionOutput {
	return pt.tx.Outputs
}

// IsCoinBase returns whether the underlying transaction is a coinbase transaction
func (pt *PopulatedTransaction) IsCoinBase() bool {
	return pt.tx.IsCoinBase()
}

// ID returns the underlying transaction's cached ID
func (pt *PopulatedTransaction) ID() *DomainTransactionID {
	return pt.tx.ID()
}
