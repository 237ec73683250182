package serialization

import (
	"bytes"
	"io"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/subnetworks"
	"github.com/casparnet/caspad/domain/consensus/utils/transactionid"
	"github.com/casparnet/caspad/util/binaryserializer"
	"github.com/pkg/errors"
)

// minimumTransactionInputSize is the number of bytes the smallest possible
// serialized transaction input takes: outpoint (32 + 4), an empty signature
// script length prefix (8), sequence (8) and sig op count (1).
const minimumTransactionInputSize = externalapi.DomainHashSize + 4 + 8 + 8 + 1

// minimumTransactionOutputSize is the number of bytes the smallest possible
// serialized transaction output takes: value (8), script public key version (2)
// and an empty script length prefix (8).
const minimumTransactionOutputSize = 8 + 2 + 8

// SerializeTransaction returns the canonical binary representation of tx:
// all fields in declaration order, fixed-width integers as little endian,
// variable-length sequences prefixed with an 8-byte little-endian length,
// the cached id included at the end.
func SerializeTransaction(tx *externalapi.DomainTransaction) ([]byte, error) {
	w := &bytes.Buffer{}

	err := binaryserializer.PutUint16(w, tx.Version)
	if err != nil {
		return nil, err
	}

	err = binaryserializer.PutUint64(w, uint64(len(tx.Inputs)))
	if err != nil {
		return nil, err
	}

	for _, input := range tx.Inputs {
		err = serializeTransactionInput(w, input)
		if err != nil {
			return nil, err
		}
	}

	err = binaryserializer.PutUint64(w, uint64(len(tx.Outputs)))
	if err != nil {
		return nil, err
	}

	for _, output := range tx.Outputs {
		err = serializeTransactionOutput(w, output)
		if err != nil {
			return nil, err
		}
	}

	err = binaryserializer.PutUint64(w, tx.LockTime)
	if err != nil {
		return nil, err
	}

	_, err = w.Write(tx.SubnetworkID[:])
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = binaryserializer.PutUint64(w, tx.Gas)
	if err != nil {
		return nil, err
	}

	err = writeVarBytes(w, tx.Payload)
	if err != nil {
		return nil, err
	}

	id := tx.ID()
	_, err = w.Write(id[:])
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return w.Bytes(), nil
}

// DeserializeTransaction deserializes the given byte slice into a transaction.
// The trailing cached id is read verbatim rather than recomputed, so the
// canonical binary form round-trips bit-exact; callers that do not trust the
// source should call Finalize on the result and compare.
func DeserializeTransaction(transactionBytes []byte) (*externalapi.DomainTransaction, error) {
	tx, err := deserializeTransaction(bytes.NewReader(transactionBytes))
	if err != nil {
		return nil, asMalformedError(err)
	}
	return tx, nil
}

func deserializeTransaction(r *bytes.Reader) (*externalapi.DomainTransaction, error) {
	version, err := binaryserializer.Uint16(r)
	if err != nil {
		return nil, err
	}

	inputCount, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}
	if inputCount > uint64(r.Len())/minimumTransactionInputSize {
		return nil, errors.Wrapf(errMalformed, "encoded input count is %d, but only %d bytes remain",
			inputCount, r.Len())
	}

	inputs := make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range inputs {
		inputs[i], err = deserializeTransactionInput(r)
		if err != nil {
			return nil, err
		}
	}

	outputCount, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}
	if outputCount > uint64(r.Len())/minimumTransactionOutputSize {
		return nil, errors.Wrapf(errMalformed, "encoded output count is %d, but only %d bytes remain",
			outputCount, r.Len())
	}

	outputs := make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range outputs {
		outputs[i], err = deserializeTransactionOutput(r)
		if err != nil {
			return nil, err
		}
	}

	lockTime, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	subnetworkIDBytes := make([]byte, externalapi.DomainSubnetworkIDSize)
	_, err = io.ReadFull(r, subnetworkIDBytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	subnetworkID, err := subnetworks.FromBytes(subnetworkIDBytes)
	if err != nil {
		return nil, err
	}

	gas, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	payload, err := readVarBytes(r)
	if err != nil {
		return nil, err
	}

	idBytes := make([]byte, externalapi.DomainHashSize)
	_, err = io.ReadFull(r, idBytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	id, err := transactionid.FromBytes(idBytes)
	if err != nil {
		return nil, err
	}

	if r.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after the serialized transaction", r.Len())
	}

	return externalapi.NewDomainTransactionWithCachedID(
		version, inputs, outputs, lockTime, *subnetworkID, gas, payload, *id), nil
}

func serializeTransactionInput(w io.Writer, input *externalapi.DomainTransactionInput) error {
	err := SerializeOutpoint(w, &input.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = writeVarBytes(w, input.SignatureScript)
	if err != nil {
		return err
	}

	err = binaryserializer.PutUint64(w, input.Sequence)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint8(w, input.SigOpCount)
}

func deserializeTransactionInput(r *bytes.Reader) (*externalapi.DomainTransactionInput, error) {
	previousOutpoint, err := DeserializeOutpoint(r)
	if err != nil {
		return nil, err
	}

	signatureScript, err := readVarBytes(r)
	if err != nil {
		return nil, err
	}

	sequence, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	sigOpCount, err := binaryserializer.Uint8(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainTransactionInput{
		PreviousOutpoint: *previousOutpoint,
		SignatureScript:  signatureScript,
		Sequence:         sequence,
		SigOpCount:       sigOpCount,
	}, nil
}

func serializeTransactionOutput(w io.Writer, output *externalapi.DomainTransactionOutput) error {
	err := binaryserializer.PutUint64(w, output.Value)
	if err != nil {
		return err
	}

	return SerializeScriptPublicKey(w, output.ScriptPublicKey)
}

func deserializeTransactionOutput(r *bytes.Reader) (*externalapi.DomainTransactionOutput, error) {
	value, err := binaryserializer.Uint64(r)
	if err != nil {
		return nil, err
	}

	scriptPublicKey, err := DeserializeScriptPublicKey(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainTransactionOutput{Value: value, ScriptPublicKey: scriptPublicKey}, nil
}

// SerializeOutpoint serializes the given outpoint to w
func SerializeOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	_, err := w.Write(outpoint.TransactionID[:])
	if err != nil {
		return errors.WithStack(err)
	}

	return binaryserializer.PutUint32(w, outpoint.Index)
}

// DeserializeOutpoint deserializes an outpoint from r
func DeserializeOutpoint(r *bytes.Reader) (*externalapi.DomainOutpoint, error) {
	transactionIDBytes := make([]byte, externalapi.DomainHashSize)
	_, err := io.ReadFull(r, transactionIDBytes)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	transactionID, err := transactionid.FromBytes(transactionIDBytes)
	if err != nil {
		return nil, err
	}

	index, err := binaryserializer.Uint32(r)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainOutpoint{TransactionID: *transactionID, Index: index}, nil
}

// SerializeScriptPublicKey serializes the given script public key to w as two
// sequential fields: the 16-bit version and the length-prefixed script bytes.
func SerializeScriptPublicKey(w io.Writer, scriptPublicKey *externalapi.ScriptPublicKey) error {
	err := binaryserializer.PutUint16(w, scriptPublicKey.Version)
	if err != nil {
		return err
	}

	return writeVarBytes(w, scriptPublicKey.Script())
}

// DeserializeScriptPublicKey deserializes a script public key from r
func DeserializeScriptPublicKey(r *bytes.Reader) (*externalapi.ScriptPublicKey, error) {
	version, err := binaryserializer.Uint16(r)
	if err != nil {
		return nil, err
	}

	script, err := readVarBytes(r)
	if err != nil {
		return nil, err
	}

	return externalapi.NewScriptPublicKey(version, script), nil
}
