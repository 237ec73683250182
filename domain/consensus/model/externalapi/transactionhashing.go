package externalapi

import (
	"github.com/casparnet/caspad/domain/consensus/utils/hashes"
	"github.com/casparnet/caspad/util/binaryserializer"
	"github.com/pkg/errors"
)

// txEncoding is a bitmask defining which transaction fields we
// want to encode and which to ignore.
type txEncoding uint8

const (
	txEncodingFull txEncoding = 0

	txEncodingExcludeSignatureScript txEncoding = 1 << iota
)

// TransactionHash returns the hash of the transaction over all of its fields,
// signature scripts included. This is distinct from the transaction ID, which
// blanks the signature scripts of non-coinbase transactions so that it stays
// stable under signing.
func TransactionHash(tx *DomainTransaction) *DomainHash {
	writer := hashes.NewTransactionHashWriter()
	err := writeTransactionForHashing(writer, tx, txEncodingFull)
	if err != nil {
		// The writer never returns errors (no allocations or possible failures), so errors
		// can only come from the serialization logic itself, which assumes well-formed input.
		panic(errors.Wrap(err, "TransactionHash is not expected to fail for structurally-valid transactions"))
	}

	hash := DomainHash(writer.Finalize())
	return &hash
}

// transactionID computes the content-derived ID of tx: the hash of the
// transaction with the signature scripts replaced by empty scripts, unless
// the transaction is a coinbase, in which case it is hashed in full.
func transactionID(tx *DomainTransaction) DomainTransactionID {
	encodingFlags := txEncodingExcludeSignatureScript
	if tx.IsCoinBase() {
		encodingFlags = txEncodingFull
	}
	writer := hashes.NewTransactionIDWriter()
	err := writeTransactionForHashing(writer, tx, encodingFlags)
	if err != nil {
		panic(errors.Wrap(err, "TransactionID is not expected to fail for structurally-valid transactions"))
	}

	return DomainTransactionID(writer.Finalize())
}

// WriteTransactionForSigningHash serializes tx into the given signing-hash
// writer, in full encoding. Used by the signature hash calculation.
func WriteTransactionForSigningHash(writer hashes.HashWriter, tx *DomainTransaction) error {
	return writeTransactionForHashing(writer, tx, txEncodingFull)
}

func writeTransactionForHashing(writer hashes.HashWriter, tx *DomainTransaction, encodingFlags txEncoding) error {
	err := binaryserializer.PutUint16(writer, tx.Version)
	if err != nil {
		return err
	}

	err = binaryserializer.PutUint64(writer, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}

	for _, input := range tx.Inputs {
		err = writeTransactionInputForHashing(writer, input, encodingFlags)
		if err != nil {
			return err
		}
	}

	err = binaryserializer.PutUint64(writer, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}

	for _, output := range tx.Outputs {
		err = writeTransactionOutputForHashing(writer, output)
		if err != nil {
			return err
		}
	}

	err = binaryserializer.PutUint64(writer, tx.LockTime)
	if err != nil {
		return err
	}

	_, err = writer.Write(tx.SubnetworkID[:])
	if err != nil {
		return err
	}

	err = binaryserializer.PutUint64(writer, tx.Gas)
	if err != nil {
		return err
	}

	return writeVarBytesForHashing(writer, tx.Payload)
}

func writeTransactionInputForHashing(writer hashes.HashWriter, input *DomainTransactionInput, encodingFlags txEncoding) error {
	err := writeOutpointForHashing(writer, &input.PreviousOutpoint)
	if err != nil {
		return err
	}

	if encodingFlags&txEncodingExcludeSignatureScript != txEncodingExcludeSignatureScript {
		err = writeVarBytesForHashing(writer, input.SignatureScript)
		if err != nil {
			return err
		}

		err = binaryserializer.PutUint8(writer, input.SigOpCount)
		if err != nil {
			return err
		}
	} else {
		err = writeVarBytesForHashing(writer, []byte{})
		if err != nil {
			return err
		}
	}

	return binaryserializer.PutUint64(writer, input.Sequence)
}

func writeOutpointForHashing(writer hashes.HashWriter, outpoint *DomainOutpoint) error {
	_, err := writer.Write(outpoint.TransactionID[:])
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(writer, outpoint.Index)
}

func writeTransactionOutputForHashing(writer hashes.HashWriter, output *DomainTransactionOutput) error {
	err := binaryserializer.PutUint64(writer, output.Value)
	if err != nil {
		return err
	}

	err = binaryserializer.PutUint16(writer, output.ScriptPublicKey.Version)
	if err != nil {
		return err
	}

	return writeVarBytesForHashing(writer, output.ScriptPublicKey.Script())
}

func writeVarBytesForHashing(writer hashes.HashWriter, data []byte) error {
	err := binaryserializer.PutUint64(writer, uint64(len(data)))
	if err != nil {
		return err
	}

	_, err = writer.Write(data)
	return err
}
