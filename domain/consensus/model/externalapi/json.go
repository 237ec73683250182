package externalapi

import (
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
)

// The JSON form of a transaction uses lower-camel-case field names, renders
// all hashes and byte sequences as lowercase hex strings, and includes the
// cached id so that it round-trips.

type transactionJSON struct {
	Version      uint16                   `json:"version"`
	Inputs       []*transactionInputJSON  `json:"inputs"`
	Outputs      []*transactionOutputJSON `json:"outputs"`
	LockTime     uint64                   `json:"lockTime"`
	SubnetworkID string                   `json:"subnetworkId"`
	Gas          uint64                   `json:"gas"`
	Payload      string                   `json:"payload"`
	ID           *string                  `json:"id"`
}

type transactionInputJSON struct {
	PreviousOutpoint outpointJSON `json:"previousOutpoint"`
	SignatureScript  string       `json:"signatureScript"`
	Sequence         uint64       `json:"sequence"`
	SigOpCount       uint8        `json:"sigOpCount"`
}

type outpointJSON struct {
	TransactionID string `json:"transactionId"`
	Index         uint32 `json:"index"`
}

type transactionOutputJSON struct {
	Value           uint64           `json:"value"`
	ScriptPublicKey *ScriptPublicKey `json:"scriptPublicKey"`
}

// MarshalJSON renders tx in its canonical human-readable form.
func (tx *DomainTransaction) MarshalJSON() ([]byte, error) {
	inputs := make([]*transactionInputJSON, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputs[i] = &transactionInputJSON{
			PreviousOutpoint: outpointJSON{
				TransactionID: input.PreviousOutpoint.TransactionID.String(),
				Index:         input.PreviousOutpoint.Index,
			},
			SignatureScript: hex.EncodeToString(input.SignatureScript),
			Sequence:        input.Sequence,
			SigOpCount:      input.SigOpCount,
		}
	}

	outputs := make([]*transactionOutputJSON, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputs[i] = &transactionOutputJSON{
			Value:           output.Value,
			ScriptPublicKey: output.ScriptPublicKey,
		}
	}

	id := tx.id.String()
	return json.Marshal(&transactionJSON{
		Version:      tx.Version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID.String(),
		Gas:          tx.Gas,
		Payload:      hex.EncodeToString(tx.Payload),
		ID:           &id,
	})
}

// UnmarshalJSON parses the canonical human-readable form of a transaction.
// The encoded id is trusted and kept as the cached id; when it is absent the
// id is recomputed instead.
func (tx *DomainTransaction) UnmarshalJSON(data []byte) error {
	var txJSON transactionJSON
	err := json.Unmarshal(data, &txJSON)
	if err != nil {
		return errors.WithStack(err)
	}

	inputs := make([]*DomainTransactionInput, len(txJSON.Inputs))
	for i, inputJSON := range txJSON.Inputs {
		if inputJSON == nil {
			return errors.Errorf("transaction input %d is null", i)
		}

		transactionID, err := NewDomainTransactionIDFromString(inputJSON.PreviousOutpoint.TransactionID)
		if err != nil {
			return err
		}

		signatureScript, err := hex.DecodeString(inputJSON.SignatureScript)
		if err != nil {
			return errors.WithStack(err)
		}

		inputs[i] = &DomainTransactionInput{
			PreviousOutpoint: DomainOutpoint{
				TransactionID: *transactionID,
				Index:         inputJSON.PreviousOutpoint.Index,
			},
			SignatureScript: signatureScript,
			Sequence:        inputJSON.Sequence,
			SigOpCount:      inputJSON.SigOpCount,
		}
	}

	outputs := make([]*DomainTransactionOutput, len(txJSON.Outputs))
	for i, outputJSON := range txJSON.Outputs {
		if outputJSON == nil {
			return errors.Errorf("transaction output %d is null", i)
		}
		if outputJSON.ScriptPublicKey == nil {
			return errors.Errorf("transaction output %d is missing a script public key", i)
		}

		outputs[i] = &DomainTransactionOutput{
			Value:           outputJSON.Value,
			ScriptPublicKey: outputJSON.ScriptPublicKey,
		}
	}

	subnetworkIDBytes, err := hex.DecodeString(txJSON.SubnetworkID)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(subnetworkIDBytes) != DomainSubnetworkIDSize {
		return errors.Errorf("invalid subnetwork id size. Want: %d, got: %d",
			DomainSubnetworkIDSize, len(subnetworkIDBytes))
	}
	var subnetworkID DomainSubnetworkID
	copy(subnetworkID[:], subnetworkIDBytes)

	payload, err := hex.DecodeString(txJSON.Payload)
	if err != nil {
		return errors.WithStack(err)
	}

	*tx = DomainTransaction{
		Version:      txJSON.Version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     txJSON.LockTime,
		SubnetworkID: subnetworkID,
		Gas:          txJSON.Gas,
		Payload:      payload,
	}

	if txJSON.ID == nil {
		tx.Finalize()
		return nil
	}

	id, err := NewDomainTransactionIDFromString(*txJSON.ID)
	if err != nil {
		return err
	}
	tx.id = *id
	return nil
}
