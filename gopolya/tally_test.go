package gopolya

import (
	"math/big"
	"strings"
	"testing"
)

var gT *testing.T

func TestTallyKeyEnc(t *testing.T) {
	gT = t

	checkKeyEncoding(TallyKey{Action: "grid", DomainSize: 3, Colors: 2}, nil)
	checkKeyEncoding(TallyKey{Action: "bracelet", DomainSize: 70000, Colors: 300}, nil)
	{
		var scrap [4]byte
		checkKeyEncoding(TallyKey{Action: "", DomainSize: 1, Colors: 1}, scrap[:0])
	}
}

func TestTallyKeyOrder(t *testing.T) {
	var b1, b2 [64]byte
	lo := TallyKey{Action: "necklace", DomainSize: 9, Colors: 2}.AppendKey(b1[:0])
	hi := TallyKey{Action: "necklace", DomainSize: 300, Colors: 2}.AppendKey(b2[:0])
	if string(lo) >= string(hi) {
		t.Fatal("keys must sort by domain size")
	}
}

func TestTallyKeyBad(t *testing.T) {
	var key TallyKey
	if err := key.InitFromKey([]byte("grid")); err != ErrUnmarshal {
		t.Fatalf("expected ErrUnmarshal, got %v", err)
	}
	if err := key.InitFromKey([]byte("grid\x00\x01")); err != ErrUnmarshal {
		t.Fatalf("expected ErrUnmarshal, got %v", err)
	}
}

func TestTallyString(t *testing.T) {
	T := &Tally{
		TallyKey:   TallyKey{Action: "grid", DomainSize: 3, Colors: 2},
		Order:      8,
		Orbits:     big.NewInt(102),
		Asymmetric: big.NewInt(288),
	}

	b := strings.Builder{}
	T.WriteAsString(&b, DefaultPrintOpts)
	if got := b.String(); got != "3 36 102" {
		t.Fatalf("row should be:\n    %q\ngot:\n    %q", "3 36 102", got)
	}

	b.Reset()
	T.WriteAsString(&b, PrintOpts{Label: "grid", Order: true, Asymmetric: true})
	if got := b.String(); got != "grid 3 8 288 36 102" {
		t.Fatalf("row should be:\n    %q\ngot:\n    %q", "grid 3 8 288 36 102", got)
	}

	if T.SymmetricOrbits().Int64() != 66 {
		t.Fatalf("expected 66 symmetric orbits, got %v", T.SymmetricOrbits())
	}
}

func TestCyclesString(t *testing.T) {
	c := Cycles{{0, 1, 2}, {3, 4}, {5}}
	if c.String() != "(0 1 2)(3 4)" {
		t.Fatalf("got %q", c.String())
	}
	if c.NumPoints() != 6 {
		t.Fatalf("expected 6 points, got %d", c.NumPoints())
	}
	e := Cycles{{0}, {1}, {2}}
	if e.String() != "e" || !e.IsIdentity(3) {
		t.Fatal("identity not recognized")
	}
	if c.IsIdentity(6) {
		t.Fatal("non-identity reported as identity")
	}
}

func checkKeyEncoding(key TallyKey, scrap []byte) {
	enc := key.AppendKey(scrap)

	var dec TallyKey
	err := dec.InitFromKey(enc)
	if err != nil {
		gT.Fatalf("TallyKey encoding error: %v", err)
	}

	if dec != key {
		gT.Fatalf("TallyKey encoding failed, should be:\n     %v\ngot:\n    %v", key, dec)
	}
}
