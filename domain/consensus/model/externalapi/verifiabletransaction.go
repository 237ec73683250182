package externalapi

// VerifiableTransaction represents any kind of transaction which has populated
// UTXO entry data and can be verified/signed etc
type VerifiableTransaction interface {
	// Tx returns the underlying transaction
	Tx() *DomainTransaction

	// PopulatedInput returns the i'th input along with its resolved UTXO entry.
	// index must be smaller than the number of inputs.
	PopulatedInput(index int) (*DomainTransactionInput, *UTXOEntry)

	// Inputs returns the underlying transaction's inputs
	Inputs() []*DomainTransactionInput

	// Outputs returns the underlying transaction's outputs
	Outputs() []*DomainTransactionOutput

	// IsCoinBase returns whether the underlying transaction is a coinbase transaction
	IsCoinBase() bool

	// ID returns the underlying transaction's cached ID
	ID() *DomainTransactionID
}

// PopulatedInputIterator iterates over the populated (input, UTXO entry) pairs
// of a VerifiableTransaction in input order. It is finite, with exactly one
// pair per input, and is restarted by constructing a new iterator.
type PopulatedInputIterator struct {
	tx    VerifiableTransaction
	index int
}

// NewPopulatedInputIterator begins a new iterator over the populated inputs of tx
func NewPopulatedInputIterator(tx VerifiableTransaction) *PopulatedInputIterator {
	return &PopulatedInputIterator{tx: tx, index: -1}
}

// Next moves the iterator to the next populated input. Returns false when done.
func (pi *PopulatedInputIterator) Next() bool {
	pi.index++
	return pi.index < len(pi.tx.Inputs())
}

// Get returns the populated input the iterator currently points to
func (pi *PopulatedInputIterator) Get() (*DomainTransactionInput, *UTXOEntry) {
	return pi.tx.PopulatedInput(pi.index)
}

// Len returns the total number of populated inputs the iterator goes over
func (pi *PopulatedInputIterator) Len() int {
	return len(pi.tx.Inputs())
}
