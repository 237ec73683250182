package signaturehash_test

import (
	"bytes"
	"testing"

	"github.com/kaspanet/go-secp256k1"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/signaturehash"
)

func testUnsignedTransaction(t *testing.T, scriptPublicKey *externalapi.ScriptPublicKey) *externalapi.DomainTransaction {
	t.Helper()

	previousID, err := externalapi.NewDomainTransactionIDFromString(
		"165e38e8b3914595d9c641f3b8eec2f34611896b821a683b7a4edefe2c000000")
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromString unexpectedly failed: %s", err)
	}

	return externalapi.NewDomainTransaction(
		1,
		[]*externalapi.DomainTransactionInput{
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(previousID, 0), nil, 1, 0),
		},
		[]*externalapi.DomainTransactionOutput{
			externalapi.NewDomainTransactionOutput(90, scriptPublicKey),
		},
		0,
		externalapi.SubnetworkIDNative,
		0,
		nil,
	)
}

func TestSignAndVerify(t *testing.T) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GenerateSchnorrKeyPair unexpectedly failed: %s", err)
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey unexpectedly failed: %s", err)
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %s", err)
	}
	scriptPublicKey, err := signaturehash.PayToPublicKeyScript(serializedPublicKey[:])
	if err != nil {
		t.Fatalf("PayToPublicKeyScript unexpectedly failed: %s", err)
	}

	tx := testUnsignedTransaction(t, scriptPublicKey)
	idBefore := tx.ID()

	mutableTx := externalapi.NewMutableTransaction(tx)
	mutableTx.Entries[0] = externalapi.NewUTXOEntry(100, scriptPublicKey, 0, false)

	err = signaturehash.Sign(mutableTx, keyPair)
	if err != nil {
		t.Fatalf("Sign unexpectedly failed: %s", err)
	}

	if tx.Inputs[0].SigOpCount != 1 {
		t.Fatalf("Sign expected to set the sig op count to 1, got %d", tx.Inputs[0].SigOpCount)
	}

	signatureScript := tx.Inputs[0].SignatureScript
	// A pay-to-public-key signature script is a single push of the 64-byte
	// signature followed by the hash type byte.
	if len(signatureScript) != 1+64+1 {
		t.Fatalf("signature script has unexpected length %d", len(signatureScript))
	}
	if signatureScript[len(signatureScript)-1] != byte(signaturehash.SigHashAll) {
		t.Fatalf("signature expected to end with hash type %x, got: %x",
			byte(signaturehash.SigHashAll), signatureScript[len(signatureScript)-1])
	}

	// Signing rewrites the signature scripts, but the content-derived ID of a
	// non-coinbase transaction blanks them, so it must not change.
	tx.Finalize()
	if !tx.ID().Equal(idBefore) {
		t.Fatalf("signing unexpectedly changed the transaction ID")
	}

	// Verify the signature against a recomputed signature hash.
	sigHash, err := signaturehash.CalcSignatureHash(scriptPublicKey, signaturehash.SigHashAll, tx, 0)
	if err != nil {
		t.Fatalf("CalcSignatureHash unexpectedly failed: %s", err)
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(signatureScript[1 : 1+64])
	if err != nil {
		t.Fatalf("DeserializeSchnorrSignatureFromSlice unexpectedly failed: %s", err)
	}
	secpHash := secp256k1.Hash(*sigHash)
	valid := publicKey.SchnorrVerify(&secpHash, signature)
	if !valid {
		t.Fatalf("signature failed to verify against the recomputed signature hash")
	}
}

// TestSignTwoInputs verifies every signature against the transaction in its
// fully signed state. The signature hash preimage covers the sig op counts of
// all inputs, so a signature computed before they reach their final values
// would no longer verify here.
func TestSignTwoInputs(t *testing.T) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GenerateSchnorrKeyPair unexpectedly failed: %s", err)
	}
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		t.Fatalf("SchnorrPublicKey unexpectedly failed: %s", err)
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		t.Fatalf("Serialize unexpectedly failed: %s", err)
	}
	scriptPublicKey, err := signaturehash.PayToPublicKeyScript(serializedPublicKey[:])
	if err != nil {
		t.Fatalf("PayToPublicKeyScript unexpectedly failed: %s", err)
	}

	previousID, err := externalapi.NewDomainTransactionIDFromString(
		"165e38e8b3914595d9c641f3b8eec2f34611896b821a683b7a4edefe2c000000")
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromString unexpectedly failed: %s", err)
	}
	tx := externalapi.NewDomainTransaction(
		1,
		[]*externalapi.DomainTransactionInput{
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(previousID, 0), nil, 1, 0),
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(previousID, 1), nil, 1, 0),
		},
		[]*externalapi.DomainTransactionOutput{
			externalapi.NewDomainTransactionOutput(150, scriptPublicKey),
		},
		0,
		externalapi.SubnetworkIDNative,
		0,
		nil,
	)

	mutableTx := externalapi.NewMutableTransactionWithEntries(tx, []*externalapi.UTXOEntry{
		externalapi.NewUTXOEntry(100, scriptPublicKey, 0, false),
		externalapi.NewUTXOEntry(100, scriptPublicKey, 0, false),
	})
	err = signaturehash.Sign(mutableTx, keyPair)
	if err != nil {
		t.Fatalf("Sign unexpectedly failed: %s", err)
	}

	for i, input := range tx.Inputs {
		if input.SigOpCount != 1 {
			t.Fatalf("input %d has sig op count %d after signing, expected 1", i, input.SigOpCount)
		}

		sigHash, err := signaturehash.CalcSignatureHash(scriptPublicKey, signaturehash.SigHashAll, tx, i)
		if err != nil {
			t.Fatalf("CalcSignatureHash unexpectedly failed for input %d: %s", i, err)
		}
		signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(input.SignatureScript[1 : 1+64])
		if err != nil {
			t.Fatalf("DeserializeSchnorrSignatureFromSlice unexpectedly failed for input %d: %s", i, err)
		}
		secpHash := secp256k1.Hash(*sigHash)
		if !publicKey.SchnorrVerify(&secpHash, signature) {
			t.Fatalf("signature of input %d failed to verify against the signed transaction", i)
		}
	}
}

func TestSignRequiresPopulatedEntries(t *testing.T) {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GenerateSchnorrKeyPair unexpectedly failed: %s", err)
	}
	tx := testUnsignedTransaction(t, externalapi.NewScriptPublicKey(0, []byte{0x51}))

	err = signaturehash.Sign(externalapi.NewMutableTransaction(tx), keyPair)
	if err == nil {
		t.Fatalf("Sign unexpectedly succeeded on a transaction with unset entries")
	}
}

func TestCalcSignatureHashErrors(t *testing.T) {
	scriptPublicKey := externalapi.NewScriptPublicKey(0, []byte{0x51})
	tx := testUnsignedTransaction(t, scriptPublicKey)

	unknownVersion := externalapi.NewScriptPublicKey(1, []byte{0x51})
	_, err := signaturehash.CalcSignatureHash(unknownVersion, signaturehash.SigHashAll, tx, 0)
	if err == nil {
		t.Fatalf("CalcSignatureHash unexpectedly succeeded on an unknown script version")
	}

	_, err = signaturehash.CalcSignatureHash(scriptPublicKey, signaturehash.SigHashSingle, tx, 1)
	if err == nil {
		t.Fatalf("CalcSignatureHash unexpectedly succeeded on a sigHashSingle index with no matching output")
	}
}

func TestSignatureHashDependsOnHashType(t *testing.T) {
	scriptPublicKey := externalapi.NewScriptPublicKey(0, []byte{0x51})
	tx := testUnsignedTransaction(t, scriptPublicKey)

	hashAll, err := signaturehash.CalcSignatureHash(scriptPublicKey, signaturehash.SigHashAll, tx, 0)
	if err != nil {
		t.Fatalf("CalcSignatureHash unexpectedly failed: %s", err)
	}
	hashNone, err := signaturehash.CalcSignatureHash(scriptPublicKey, signaturehash.SigHashNone, tx, 0)
	if err != nil {
		t.Fatalf("CalcSignatureHash unexpectedly failed: %s", err)
	}
	if hashAll.Equal(hashNone) {
		t.Fatalf("signature hashes for different hash types are unexpectedly equal")
	}
}

func TestExtractPublicKey(t *testing.T) {
	serializedPublicKey := bytes.Repeat([]byte{0xab}, 32)
	scriptPublicKey, err := signaturehash.PayToPublicKeyScript(serializedPublicKey)
	if err != nil {
		t.Fatalf("PayToPublicKeyScript unexpectedly failed: %s", err)
	}

	extracted, err := signaturehash.ExtractPublicKey(scriptPublicKey)
	if err != nil {
		t.Fatalf("ExtractPublicKey unexpectedly failed: %s", err)
	}
	if !bytes.Equal(extracted, serializedPublicKey) {
		t.Fatalf("extracted public key %x is not equal to the original %x", extracted, serializedPublicKey)
	}

	_, err = signaturehash.ExtractPublicKey(externalapi.NewScriptPublicKey(0, []byte{0x51}))
	if err == nil {
		t.Fatalf("ExtractPublicKey unexpectedly succeeded on a non pay-to-public-key script")
	}
}
