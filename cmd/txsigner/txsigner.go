package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kaspanet/go-secp256k1"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/serialization"
	"github.com/casparnet/caspad/domain/consensus/utils/signaturehash"
	"github.com/casparnet/caspad/infrastructure/logger"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		printErrorAndExit(err, "Failed to parse arguments")
	}
	defer logger.Close()

	keyPair, err := parsePrivateKey(cfg.PrivateKey)
	if err != nil {
		printErrorAndExit(err, "Failed to decode private key")
	}

	transaction, err := parseTransaction(cfg.Transaction)
	if err != nil {
		printErrorAndExit(err, "Failed to decode transaction")
	}

	scriptPublicKey, err := createScriptPublicKey(keyPair)
	if err != nil {
		printErrorAndExit(err, "Failed to create scriptPublicKey")
	}

	err = signTransaction(transaction, keyPair, scriptPublicKey)
	if err != nil {
		printErrorAndExit(err, "Failed to sign transaction")
	}
	log.Debugf("Signed %d inputs of transaction %s", len(transaction.Inputs), transaction.ID())

	serializedTransaction, err := serialization.SerializeTransaction(transaction)
	if err != nil {
		printErrorAndExit(err, "Failed to serialize transaction")
	}

	fmt.Printf("Signed Transaction (hex): %s\n\n", hex.EncodeToString(serializedTransaction))
}

func parsePrivateKey(privateKeyHex string) (*secp256k1.SchnorrKeyPair, error) {
	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, err
	}
	return secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKeyBytes)
}

func parseTransaction(transactionHex string) (*externalapi.DomainTransaction, error) {
	serializedTx, err := hex.DecodeString(transactionHex)
	if err != nil {
		return nil, err
	}
	return serialization.DeserializeTransaction(serializedTx)
}

func createScriptPublicKey(keyPair *secp256k1.SchnorrKeyPair) (*externalapi.ScriptPublicKey, error) {
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, err
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, err
	}
	return signaturehash.PayToPublicKeyScript(serializedPublicKey[:])
}

// signTransaction assumes every input of the transaction spends an output
// paying to the signer's own public key.
func signTransaction(transaction *externalapi.DomainTransaction, keyPair *secp256k1.SchnorrKeyPair,
	scriptPublicKey *externalapi.ScriptPublicKey) error {

	mutableTx := externalapi.NewMutableTransaction(transaction)
	for i := range mutableTx.Entries {
		mutableTx.Entries[i] = externalapi.NewUTXOEntry(0, scriptPublicKey, 0, false)
	}
	return signaturehash.Sign(mutableTx, keyPair)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}
