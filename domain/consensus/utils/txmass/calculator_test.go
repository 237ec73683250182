package txmass_test

import (
	"testing"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/serialization"
	"github.com/casparnet/caspad/domain/consensus/utils/txmass"
)

func testTransaction(t *testing.T, subnetworkID externalapi.DomainSubnetworkID) *externalapi.DomainTransaction {
	t.Helper()

	previousID, err := externalapi.NewDomainTransactionIDFromString(
		"165e38e8b3914595d9c641f3b8eec2f34611896b821a683b7a4edefe2c000000")
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromString unexpectedly failed: %s", err)
	}
	scriptPublicKey := externalapi.NewScriptPublicKey(0, []byte{0x51, 0x52, 0x53})

	return externalapi.NewDomainTransaction(
		1,
		[]*externalapi.DomainTransactionInput{
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(previousID, 1), []byte{0x01, 0x02}, 5, 2),
		},
		[]*externalapi.DomainTransactionOutput{
			externalapi.NewDomainTransactionOutput(100, scriptPublicKey),
			externalapi.NewDomainTransactionOutput(200, scriptPublicKey),
		},
		0,
		subnetworkID,
		0,
		[]byte{0xaa, 0xbb, 0xcc},
	)
}

// The estimated serialized size must agree exactly with the canonical binary
// codec, since mass is charged per serialized byte.
func TestTransactionEstimatedSerializedSize(t *testing.T) {
	tx := testTransaction(t, externalapi.SubnetworkIDNative)

	serialized, err := serialization.SerializeTransaction(tx)
	if err != nil {
		t.Fatalf("SerializeTransaction unexpectedly failed: %s", err)
	}

	estimated := txmass.TransactionEstimatedSerializedSize(tx)
	if estimated != uint64(len(serialized)) {
		t.Fatalf("estimated serialized size is %d while the actual size is %d", estimated, len(serialized))
	}
}

func TestCalculateTransactionMass(t *testing.T) {
	tx := testTransaction(t, externalapi.SubnetworkIDNative)
	calculator := txmass.NewCalculator(1, 10, 1000)

	size := txmass.TransactionEstimatedSerializedSize(tx)
	scriptPubKeySize := uint64(2+3) * 2 // version + script, for each of the two outputs
	sigOps := uint64(2)

	expectedMass := size*1 + scriptPubKeySize*10 + sigOps*1000
	mass := calculator.CalculateTransactionMass(tx)
	if mass != expectedMass {
		t.Fatalf("CalculateTransactionMass returned %d while %d was expected", mass, expectedMass)
	}
}

func TestCalculateTransactionMassForCoinbase(t *testing.T) {
	tx := testTransaction(t, externalapi.SubnetworkIDCoinbase)
	calculator := txmass.NewCalculator(1, 10, 1000)

	if mass := calculator.CalculateTransactionMass(tx); mass != 0 {
		t.Fatalf("coinbase transactions have no mass, got: %d", mass)
	}
}
