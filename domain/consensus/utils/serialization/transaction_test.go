package serialization_test

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/casparnet/caspad/domain/consensus/model/externalapi"
	"github.com/casparnet/caspad/domain/consensus/utils/serialization"
)

func testTransaction(t *testing.T) *externalapi.DomainTransaction {
	t.Helper()

	scriptPublicKey := externalapi.NewScriptPublicKey(0, []byte{
		0x76, 0xa9, 0x21, 0x03, 0x2f, 0x7e, 0x43, 0x0a, 0xa4, 0xc9, 0xd1, 0x59, 0x43, 0x7e, 0x84, 0xb9,
		0x75, 0xdc, 0x76, 0xd9, 0x00, 0x3b, 0xf0, 0x92, 0x2c, 0xf3, 0xaa, 0x45, 0x28, 0x46, 0x4b, 0xab,
		0x78, 0x0d, 0xba, 0x5e,
	})

	firstPreviousID, err := externalapi.NewDomainTransactionIDFromString(
		"165e38e8b3914595d9c641f3b8eec2f34611896b821a683b7a4edefe2c000000")
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromString unexpectedly failed: %s", err)
	}
	secondPreviousID, err := externalapi.NewDomainTransactionIDFromString(
		"4bb07535dfd58e0b3cd64fd7155280872a0471bcf83095526ace0e38c6000000")
	if err != nil {
		t.Fatalf("NewDomainTransactionIDFromString unexpectedly failed: %s", err)
	}

	firstSignatureScript := make([]byte, 32)
	secondSignatureScript := make([]byte, 32)
	payload := make([]byte, 100)
	for i := 0; i < 100; i++ {
		if i < 32 {
			firstSignatureScript[i] = byte(i)
			secondSignatureScript[i] = byte(i + 32)
		}
		payload[i] = byte(i)
	}

	return externalapi.NewDomainTransaction(
		1,
		[]*externalapi.DomainTransactionInput{
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(firstPreviousID, 0xfffffffa), firstSignatureScript, 2, 3),
			externalapi.NewDomainTransactionInput(
				externalapi.NewDomainOutpoint(secondPreviousID, 0xfffffffb), secondSignatureScript, 4, 5),
		},
		[]*externalapi.DomainTransactionOutput{
			externalapi.NewDomainTransactionOutput(6, scriptPublicKey),
			externalapi.NewDomainTransactionOutput(7, scriptPublicKey),
		},
		8,
		externalapi.SubnetworkIDCoinbase,
		9,
		payload,
	)
}

func expectedSerializedTestTransaction() []byte {
	return []byte{
		1, 0, 2, 0, 0, 0, 0, 0, 0, 0, 22, 94, 56, 232, 179, 145, 69, 149, 217, 198, 65, 243, 184, 238, 194, 243, 70, 17, 137, 107,
		130, 26, 104, 59, 122, 78, 222, 254, 44, 0, 0, 0, 250, 255, 255, 255, 32, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 2, 0, 0, 0, 0, 0, 0, 0, 3, 75,
		176, 117, 53, 223, 213, 142, 11, 60, 214, 79, 215, 21, 82, 128, 135, 42, 4, 113, 188, 248, 48, 149, 82, 106, 206, 14, 56,
		198, 0, 0, 0, 251, 255, 255, 255, 32, 0, 0, 0, 0, 0, 0, 0, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42, 43, 44, 45, 46, 47,
		48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 4, 0, 0, 0, 0, 0, 0, 0, 5, 2, 0, 0, 0, 0, 0, 0, 0, 6, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 36, 0, 0, 0, 0, 0, 0, 0, 118, 169, 33, 3, 47, 126, 67, 10, 164, 201, 209, 89, 67, 126, 132, 185,
		117, 220, 118, 217, 0, 59, 240, 146, 44, 243, 170, 69, 40, 70, 75, 171, 120, 13, 186, 94, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		36, 0, 0, 0, 0, 0, 0, 0, 118, 169, 33, 3, 47, 126, 67, 10, 164, 201, 209, 89, 67, 126, 132, 185, 117, 220, 118, 217, 0,
		59, 240, 146, 44, 243, 170, 69, 40, 70, 75, 171, 120, 13, 186, 94, 8, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 0, 0, 0, 0, 0, 0, 0, 100, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40, 41, 42,
		43, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 64, 65, 66, 67, 68, 69, 70, 71, 72,
		73, 74, 75, 76, 77, 78, 79, 80, 81, 82, 83, 84, 85, 86, 87, 88, 89, 90, 91, 92, 93, 94, 95, 96, 97, 98, 99, 69, 146, 193,
		64, 98, 49, 45, 0, 77, 32, 25, 122, 77, 15, 211, 252, 61, 210, 82, 177, 39, 153, 127, 33, 188, 172, 138, 38, 67, 75, 241,
		176,
	}
}

func TestSerializeTransaction(t *testing.T) {
	tx := testTransaction(t)

	serialized, err := serialization.SerializeTransaction(tx)
	if err != nil {
		t.Fatalf("SerializeTransaction unexpectedly failed: %s", err)
	}

	expected := expectedSerializedTestTransaction()
	if !bytes.Equal(serialized, expected) {
		t.Fatalf("SerializeTransaction returned unexpected bytes. Want:\n%s\ngot:\n%s",
			spew.Sdump(expected), spew.Sdump(serialized))
	}
}

func TestDeserializeTransaction(t *testing.T) {
	tx := testTransaction(t)

	deserialized, err := serialization.DeserializeTransaction(expectedSerializedTestTransaction())
	if err != nil {
		t.Fatalf("DeserializeTransaction unexpectedly failed: %s", err)
	}
	if !deserialized.Equal(tx) {
		t.Fatalf("deserialized transaction is not equal to the original. Deserialized:\n%s\nOriginal:\n%s",
			spew.Sdump(deserialized), spew.Sdump(tx))
	}
	if !deserialized.ID().Equal(tx.ID()) {
		t.Fatalf("deserialized transaction has wrong ID. Want: %s, got: %s", tx.ID(), deserialized.ID())
	}
}

// The trailing ID is read verbatim rather than recomputed, so a transaction
// whose encoded ID disagrees with its contents keeps the encoded one.
func TestDeserializeTransactionTrustsEncodedID(t *testing.T) {
	serialized := expectedSerializedTestTransaction()
	serialized[len(serialized)-1] ^= 0xff

	deserialized, err := serialization.DeserializeTransaction(serialized)
	if err != nil {
		t.Fatalf("DeserializeTransaction unexpectedly failed: %s", err)
	}
	expectedID := testTransaction(t).ID()
	if deserialized.ID().Equal(expectedID) {
		t.Fatalf("deserialized transaction expected to carry the encoded ID rather than a recomputed one")
	}

	deserialized.Finalize()
	if !deserialized.ID().Equal(expectedID) {
		t.Fatalf("finalizing expected to recompute the content-derived ID %s, got: %s",
			expectedID, deserialized.ID())
	}
}

func TestDeserializeTransactionMalformed(t *testing.T) {
	serialized := expectedSerializedTestTransaction()

	testCases := []struct {
		name  string
		bytes []byte
	}{
		{"empty", nil},
		{"truncated header", serialized[:5]},
		{"truncated input", serialized[:30]},
		{"truncated id", serialized[:len(serialized)-10]},
		{"trailing garbage", append(append([]byte{}, serialized...), 0xde, 0xad)},
	}

	for _, testCase := range testCases {
		_, err := serialization.DeserializeTransaction(testCase.bytes)
		if err == nil {
			t.Fatalf("%s: DeserializeTransaction unexpectedly succeeded", testCase.name)
		}
		if !serialization.IsMalformedError(err) {
			t.Fatalf("%s: DeserializeTransaction returned a non-malformed error: %+v", testCase.name, err)
		}
	}
}

// A length prefix claiming more inputs than the buffer could possibly hold
// must fail up front instead of attempting a huge allocation.
func TestDeserializeTransactionRejectsAbsurdCounts(t *testing.T) {
	malformed := []byte{
		1, 0, // version
		255, 255, 255, 255, 255, 255, 255, 255, // input count
	}
	_, err := serialization.DeserializeTransaction(malformed)
	if err == nil {
		t.Fatalf("DeserializeTransaction unexpectedly succeeded on an absurd input count")
	}
	if !serialization.IsMalformedError(err) {
		t.Fatalf("DeserializeTransaction returned a non-malformed error: %+v", err)
	}
}

func TestSerializeOutpointRoundTrip(t *testing.T) {
	tx := testTransaction(t)
	outpoint := &tx.Inputs[0].PreviousOutpoint

	buffer := &bytes.Buffer{}
	err := serialization.SerializeOutpoint(buffer, outpoint)
	if err != nil {
		t.Fatalf("SerializeOutpoint unexpectedly failed: %s", err)
	}

	deserialized, err := serialization.DeserializeOutpoint(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatalf("DeserializeOutpoint unexpectedly failed: %s", err)
	}
	if !deserialized.Equal(outpoint) {
		t.Fatalf("deserialized outpoint %s is not equal to the original %s", deserialized, outpoint)
	}
}

func TestSerializeScriptPublicKeyRoundTrip(t *testing.T) {
	spk := externalapi.NewScriptPublicKey(0xc0de, []byte{0x01, 0x02, 0x03})

	buffer := &bytes.Buffer{}
	err := serialization.SerializeScriptPublicKey(buffer, spk)
	if err != nil {
		t.Fatalf("SerializeScriptPublicKey unexpectedly failed: %s", err)
	}

	deserialized, err := serialization.DeserializeScriptPublicKey(bytes.NewReader(buffer.Bytes()))
	if err != nil {
		t.Fatalf("DeserializeScriptPublicKey unexpectedly failed: %s", err)
	}
	if !deserialized.Equal(spk) {
		t.Fatalf("deserialized script public key %s is not equal to the original %s", deserialized, spk)
	}
}
