package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/kaspanet/go-secp256k1"
)

func main() {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate key pair: %s\n", err)
		os.Exit(1)
	}

	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to derive public key: %s\n", err)
		os.Exit(1)
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to serialize public key: %s\n", err)
		os.Exit(1)
	}

	fmt.Printf("Private key: %s\n", hex.EncodeToString(keyPair.SerializePrivateKey()[:]))
	fmt.Printf("Public key:  %s\n", hex.EncodeToString(serializedPublicKey[:]))
}
