package hashes

const (
	transactionHashDomain        = "TransactionHash"
	transactionIDDomain          = "TransactionID"
	transactionSigningHashDomain = "TransactionSigningHash"
)

// Size of the arrays used to store hashes.
const Size = 32
