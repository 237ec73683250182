package externalapi

import (
	"bytes"
	"fmt"
)

// DomainOutpoint represents a caspad transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NewDomainOutpoint instantiates a new DomainOutpoint with the given id and index
func NewDomainOutpoint(transactionID *DomainTransactionID, index uint32) *DomainOutpoint {
	return &DomainOutpoint{
		TransactionID: *transactionID,
		Index:         index,
	}
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("(%s, %d)", op.TransactionID, op.Index)
}

// Equal returns whether op equals to other
func (op *DomainOutpoint) Equal(other *DomainOutpoint) bool {
	if op == nil || other == nil {
		return op == other
	}

	return *op == *other
}

// Clone returns a clone of op
func (op *DomainOutpoint) Clone() *DomainOutpoint {
	opClone := *op
	return &opClone
}

// DomainTransactionInput represents a caspad transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       uint8
}

// NewDomainTransactionInput instantiates a new DomainTransactionInput
func NewDomainTransactionInput(previousOutpoint *DomainOutpoint, signatureScript []byte,
	sequence uint64, sigOpCount uint8) *DomainTransactionInput {

	return &DomainTransactionInput{
		PreviousOutpoint: *previousOutpoint,
		SignatureScript:  signatureScript,
		Sequence:         sequence,
		SigOpCount:       sigOpCount,
	}
}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	if !input.PreviousOutpoint.Equal(&other.PreviousOutpoint) {
		return false
	}

	if !bytes.Equal(input.SignatureScript, other.SignatureScript) {
		return false
	}

	return input.Sequence == other.Sequence && input.SigOpCount == other.SigOpCount
}

// Clone returns a clone of input
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	signatureScriptClone := make([]byte, len(input.SignatureScript))
	copy(signatureScriptClone, input.SignatureScript)

	return &DomainTransactionInput{
		PreviousOutpoint: *input.PreviousOutpoint.Clone(),
		SignatureScript:  signatureScriptClone,
		Sequence:         input.Sequence,
		SigOpCount:       input.SigOpCount,
	}
}

// DomainTransactionOutput represents a caspad transaction output
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey *ScriptPublicKey
}

// NewDomainTransactionOutput instantiates a new DomainTransactionOutput
func NewDomainTransactionOutput(value uint64, scriptPublicKey *ScriptPublicKey) *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value:           value,
		ScriptPublicKey: scriptPublicKey,
	}
}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	return output.Value == other.Value && output.ScriptPublicKey.Equal(other.ScriptPublicKey)
}

// Clone returns a clone of output
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value:           output.Value,
		ScriptPublicKey: output.ScriptPublicKey.Clone(),
	}
}

// DomainTransaction represents a caspad transaction
type DomainTransaction struct {
	Version      uint16
	Inputs       []*DomainTransactionInput
	Outputs      []*DomainTransactionOutput
	LockTime     uint64
	SubnetworkID DomainSubnetworkID
	Gas          uint64
	Payload      []byte

	// id caches the transaction ID. It is set on construction and by
	// Finalize, and is deliberately never recomputed on field mutation.
	// Any code path that mutates the fields above in place must call
	// Finalize afterwards, or the cached id becomes inconsistent with
	// the transaction's content.
	id DomainTransactionID
}

// NewDomainTransaction instantiates a new DomainTransaction and computes its ID
func NewDomainTransaction(version uint16, inputs []*DomainTransactionInput,
	outputs []*DomainTransactionOutput, lockTime uint64, subnetworkID DomainSubnetworkID,
	gas uint64, payload []byte) *DomainTransaction {

	tx := &DomainTransaction{
		Version:      version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     lockTime,
		SubnetworkID: subnetworkID,
		Gas:          gas,
		Payload:      payload,
	}
	tx.Finalize()
	return tx
}

// NewDomainTransactionWithCachedID instantiates a new DomainTransaction with
// the given precomputed ID instead of deriving it. It is meant for codecs
// whose wire form carries the cached id; the caller vouches that the id
// matches the transaction's content.
func NewDomainTransactionWithCachedID(version uint16, inputs []*DomainTransactionInput,
	outputs []*DomainTransactionOutput, lockTime uint64, subnetworkID DomainSubnetworkID,
	gas uint64, payload []byte, id DomainTransactionID) *DomainTransaction {

	return &DomainTransaction{
		Version:      version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     lockTime,
		SubnetworkID: subnetworkID,
		Gas:          gas,
		Payload:      payload,
		id:           id,
	}
}

// Finalize recomputes the cached transaction ID based on the current field
// values. See the id field for the contract around in-place mutation.
func (tx *DomainTransaction) Finalize() {
	tx.id = transactionID(tx)
}

// ID returns the cached transaction ID. It never recomputes.
func (tx *DomainTransaction) ID() *DomainTransactionID {
	idClone := tx.id
	return &idClone
}

// IsCoinBase determines whether or not a transaction is a coinbase transaction. A coinbase
// transaction is a special transaction created by miners that distributes fees and block subsidy
// to the previous blocks' miners, and specifies the scriptPublicKey that will be used to pay the current
// miner in future blocks.
func (tx *DomainTransaction) IsCoinBase() bool {
	return tx.SubnetworkID == SubnetworkIDCoinbase
}

// Equal returns whether tx equals to other. Note that the comparison includes
// the cached id, so a transaction mutated in place without a Finalize call
// compares by its stale id rather than by its true content.
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Version != other.Version {
		return false
	}

	if len(tx.Inputs) != len(other.Inputs) || len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	if tx.LockTime != other.LockTime {
		return false
	}

	if !tx.SubnetworkID.Equal(&other.SubnetworkID) {
		return false
	}

	if tx.Gas != other.Gas {
		return false
	}

	if !bytes.Equal(tx.Payload, other.Payload) {
		return false
	}

	return tx.id == other.id
}

// Clone returns a clone of tx
func (tx *DomainTransaction) Clone() *DomainTransaction {
	payloadClone := make([]byte, len(tx.Payload))
	copy(payloadClone, tx.Payload)

	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	return &DomainTransaction{
		Version:      tx.Version,
		Inputs:       inputsClone,
		Outputs:      outputsClone,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      payloadClone,
		id:           tx.id,
	}
}
