package multiset

import (
	"math/rand"
	"testing"
)

func TestMultisetAddRemove(t *testing.T) {
	r := rand.New(rand.NewSource(0))

	ms := New()
	emptyHash := ms.Hash()

	datas := make([][]byte, 10)
	for i := range datas {
		data := make([]byte, 100)
		_, err := r.Read(data)
		if err != nil {
			t.Fatalf("rand.Read unexpectedly failed: %s", err)
		}
		datas[i] = data
		ms.Add(data)
	}
	fullHash := ms.Hash()
	if fullHash.Equal(emptyHash) {
		t.Fatalf("Hash unexpectedly unchanged after adding elements")
	}

	// The commitment is order independent, so removing and re-adding an
	// element in the middle must reproduce the same hash.
	ms.Remove(datas[3])
	if ms.Hash().Equal(fullHash) {
		t.Fatalf("Hash unexpectedly unchanged after Remove")
	}
	ms.Add(datas[3])
	if !ms.Hash().Equal(fullHash) {
		t.Fatalf("Hash expected to return to its previous value after re-adding. "+
			"Want: %s, got: %s", fullHash, ms.Hash())
	}

	for _, data := range datas {
		ms.Remove(data)
	}
	if !ms.Hash().Equal(emptyHash) {
		t.Fatalf("Hash expected to return to the empty hash after removing all elements. "+
			"Want: %s, got: %s", emptyHash, ms.Hash())
	}
}

func TestMultisetSerializeAndClone(t *testing.T) {
	ms := New()
	ms.Add([]byte("some data"))

	deserialized, err := FromBytes(ms.Serialize())
	if err != nil {
		t.Fatalf("FromBytes unexpectedly failed: %s", err)
	}
	if !deserialized.Hash().Equal(ms.Hash()) {
		t.Fatalf("FromBytes produced a multiset with a different hash. Want: %s, got: %s",
			ms.Hash(), deserialized.Hash())
	}

	_, err = FromBytes([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("FromBytes of a too-short slice unexpectedly succeeded")
	}

	clone := ms.Clone()
	if !clone.Hash().Equal(ms.Hash()) {
		t.Fatalf("Clone produced a multiset with a different hash")
	}
	clone.Add([]byte("more data"))
	if clone.Hash().Equal(ms.Hash()) {
		t.Fatalf("mutating a clone unexpectedly changed the original's hash")
	}
}
