package hashes

import (
	"hash"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is blake2b.
// This can only be created via one of the domain separated constructors
type HashWriter struct {
	hash.Hash
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() [Size]byte {
	var sum [Size]byte
	// This should prevent `Sum` from allocating an output buffer, by using the existing array. we still copy because we don't want to rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return sum
}

func blake2bWithDomain(domain string) hash.Hash {
	blake, err := blake2b.New256([]byte(domain))
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return blake
}

// NewTransactionHashWriter returns a new HashWriter used for transaction hashes
func NewTransactionHashWriter() HashWriter {
	return HashWriter{blake2bWithDomain(transactionHashDomain)}
}

// NewTransactionIDWriter returns a new HashWriter used for transaction IDs
func NewTransactionIDWriter() HashWriter {
	return HashWriter{blake2bWithDomain(transactionIDDomain)}
}

// NewTransactionSigningHashWriter returns a new HashWriter used for signature hashes
func NewTransactionSigningHashWriter() HashWriter {
	return HashWriter{blake2bWithDomain(transactionSigningHashDomain)}
}
