package externalapi

import "github.com/pkg/errors"

// ValidatedTransaction represents a validated transaction with populated UTXO
// entry data and a calculated fee
type ValidatedTransaction struct {
	tx            *DomainTransaction
	entries       []*UTXOEntry
	calculatedFee uint64
}

// NewValidatedTransaction promotes the given populated transaction into a
// validated one with the given calculated fee
func NewValidatedTransaction(populatedTx *PopulatedTransaction, calculatedFee uint64) *ValidatedTransaction {
	return &ValidatedTransaction{
		tx:            populatedTx.tx,
		entries:       populatedTx.entries,
		calculatedFee: calculatedFee,
	}
}

// NewValidatedTransactionCoinbase wraps the given coinbase transaction as a
// validated transaction with no spent entries and zero fee. Calling it with a
// non-coinbase transaction is a programming error and panics.
func NewValidatedTransactionCoinbase(tx *DomainTransaction) *ValidatedTransaction {
	if !tx.IsCoinBase() {
		panic(errors.Errorf("transaction %s is not a coinbase transaction", tx.ID()))
	}
	return &ValidatedTransaction{tx: tx, entries: nil, calculatedFee: 0}
}

// Tx returns the underlying transaction
func (vt *ValidatedTransaction) Tx() *DomainTransaction {
	return vt.tx
}

// Entries returns the resolved UTXO entries, one per input
func (vt *ValidatedTransaction) Entries() []*UTXOEntry {
	return vt.entries
}

// CalculatedFee returns the final calculated fee of the transaction
func (vt *ValidatedTransaction) CalculatedFee() uint64 {
	return vt.calculatedFee
}

// PopulatedInput returns the index'th input along with its resolved UTXO entry
func (vt *ValidatedTransaction) PopulatedInput(index int) (*DomainTransactionInput, *UTXOEntry) {
	return vt.tx.Inputs[index], vt.entries[index]
}

// Inputs returns the underlying transaction's inputs
func (vt *ValidatedTransaction) Inputs() []*DomainTransactionInput {
	return vt.tx.Inputs
}

// Outputs returns the underlying transaction's outputs
func (vt *ValidatedTransaction) Outputs() []*DomainTransactionOutput {
	return vt.tx.Outputs
}

// IsCoinBase returns whether the underlying transaction is a coinbase transaction
func (vt *ValidatedTransaction) IsCoinBase() bool {
	return vt.tx.IsCoinBase()
}

// ID returns the underlying transaction's cached ID
func (vt *ValidatedTransaction) ID() *DomainTransactionID {
	return vt.tx.ID()
}
