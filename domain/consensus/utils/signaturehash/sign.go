package signaturehash

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/constants"
)

// opCheckSig is the script opcode that verifies a Schnorr signature against
// the public key pushed before it.
const opCheckSig = 0xac

// maxDirectPushSize is the largest payload a single-byte data-push opcode can
// carry. Serialized signatures and public keys are well within it.
const maxDirectPushSize = 75

// RawTxInSignature returns the serialized Schnorr signature for the input idx of
// the given transaction, with hashType appended to it.
func RawTxInSignature(tx *externalapi.DomainTransaction, idx int, hashType SigHashType,
	prevScriptPublicKey *externalapi.ScriptPublicKey, key *secp256k1.SchnorrKeyPair) ([]byte, error) {

	hash, err := CalcSignatureHash(prevScriptPublicKey, hashType, tx, idx)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*hash)
	signature, err := key.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Errorf("cannot sign tx input: %s", err)
	}

	return append(signature.Serialize()[:], byte(hashType)), nil
}

// SignatureScript creates an input signature script for tx to spend coins sent
// to a pay-to-public-key output. The returned script is calculated to be used
// as the idx'th txin sigscript. prevScriptPublicKey is the script public key
// of the previous output being spent by the idx'th input.
func SignatureScript(tx *externalapi.DomainTransaction, idx int, hashType SigHashType,
	prevScriptPublicKey *externalapi.ScriptPublicKey, key *secp256k1.SchnorrKeyPair) ([]byte, error) {

	sig, err := RawTxInSignature(tx, idx, hashType, prevScriptPublicKey, key)
	if err != nil {
		return nil, err
	}

	return pushData(sig)
}

// Sign fills in the signature scripts of all inputs of the given transaction,
// signing each input with the given key pair under SigHashAll. The
// transaction must be fully populated with the UTXO entries of its inputs.
func Sign(mutableTx *externalapi.MutableTransaction, key *secp256k1.SchnorrKeyPair) error {
	if !mutableTx.IsVerifiable() {
		return errors.Errorf("transaction %s is missing UTXO entries and cannot be signed", mutableTx.ID())
	}

	// The signature hash preimage covers the sig op counts of every input,
	// so they must all be in their final state before the first signature
	// is computed. Signature scripts are excluded from the preimage and can
	// be filled in afterwards.
	for i := range mutableTx.Tx.Inputs {
		mutableTx.Tx.Inputs[i].SigOpCount = 1
	}

	for i, entry := range mutableTx.Entries {
		sigScript, err := SignatureScript(mutableTx.Tx, i, SigHashAll, entry.ScriptPublicKey(), key)
		if err != nil {
			return errors.Wrapf(err, "failed signing input %d", i)
		}
		mutableTx.Tx.Inputs[i].SignatureScript = sigScript
	}
	return nil
}

// PayToPublicKeyScript builds the canonical pay-to-public-key script public
// key for the given serialized Schnorr public key.
func PayToPublicKeyScript(serializedPublicKey []byte) (*externalapi.ScriptPublicKey, error) {
	push, err := pushData(serializedPublicKey)
	if err != nil {
		return nil, err
	}
	script := append(push, opCheckSig)
	return externalapi.NewScriptPublicKey(constants.MaxScriptPublicKeyVersion, script), nil
}

// ExtractPublicKey returns the serialized public key pushed by a canonical
// pay-to-public-key script public key.
func ExtractPublicKey(scriptPublicKey *externalapi.ScriptPublicKey) ([]byte, error) {
	script := scriptPublicKey.Script()
	if len(script) < 2 || script[len(script)-1] != opCheckSig {
		return nil, errors.Errorf("script public key %s is not pay-to-public-key", scriptPublicKey)
	}
	pushLength := int(script[0])
	if pushLength > maxDirectPushSize || len(script) != pushLength+2 {
		return nil, errors.Errorf("script public key %s is not pay-to-public-key", scriptPublicKey)
	}
	return script[1 : 1+pushLength], nil
}

// pushData encodes a single direct data push of the given bytes.
func pushData(data []byte) ([]byte, error) {
	if len(data) > maxDirectPushSize {
		return nil, errors.Errorf("cannot push %d bytes with a direct data push", len(data))
	}
	return append([]byte{byte(len(data))}, data...), nil
}
