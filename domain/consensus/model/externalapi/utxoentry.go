package externalapi

// UTXOEntry houses details about an individual transaction output in a utxo
// set such as whether or not it was contained in a coinbase tx, the daa
// score of the block that accepts the tx, its public key script, and how
// much it pays. UTXOEntries are read-only after construction.
type UTXOEntry struct {
	amount          uint64 // Utxo amount in Sompis
	scriptPublicKey *ScriptPublicKey
	blockDAAScore   uint64 // Daa score of the block accepting the tx
	isCoinbase      bool
}

// NewUTXOEntry creates a new UTXOEntry
func NewUTXOEntry(amount uint64, scriptPublicKey *ScriptPublicKey, blockDAAScore uint64, isCoinbase bool) *UTXOEntry {
	return &UTXOEntry{
		amount:          amount,
		scriptPublicKey: scriptPublicKey,
		blockDAAScore:   blockDAAScore,
		isCoinbase:      isCoinbase,
	}
}

// Amount returns the UTXO amount in Sompis
func (u *UTXOEntry) Amount() uint64 {
	return u.amount
}

// ScriptPublicKey returns the public key script of the output
func (u *UTXOEntry) ScriptPublicKey() *ScriptPublicKey {
	return u.scriptPublicKey
}

// BlockDAAScore returns the DAA score of the block accepting the tx
func (u *UTXOEntry) BlockDAAScore() uint64 {
	return u.blockDAAScore
}

// IsCoinbase returns whether the output was contained in a coinbase transaction
func (u *UTXOEntry) IsCoinbase() bool {
	return u.isCoinbase
}

// Equal returns whether u equals to other
func (u *UTXOEntry) Equal(other *UTXOEntry) bool {
	if u == nil || other == nil {
		return u == other
	}

	if u.amount != other.amount {
		return false
	}

	if !u.scriptPublicKey.Equal(other.scriptPublicKey) {
		return false
	}

	if u.blockDAAScore != other.blockDAAScore {
		return false
	}

	return u.isCoinbase == other.isCoinbase
}

// Clone returns a clone of u
func (u *UTXOEntry) Clone() *UTXOEntry {
	if u == nil {
		return nil
	}

	return &UTXOEntry{
		amount:          u.amount,
		scriptPublicKey: u.scriptPublicKey.Clone(),
		blockDAAScore:   u.blockDAAScore,
		isCoinbase:      u.isCoinbase,
	}
}
