package main

import (
	"os"
	"path"
	"testing"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("config should be:\n    %+v\ngot:\n    %+v", DefaultConfig(), cfg)
	}

	cfg, err = LoadConfig("testdata/gopolya.yaml")
	if err != nil {
		t.Fatal(err)
	}
	want := DriverConfig{
		Action: "necklace",
		From:   3,
		To:     6,
		Colors: 2,
		Print:  PrintConfig{Header: true},
	}
	if cfg != want {
		t.Fatalf("config should be:\n    %+v\ngot:\n    %+v", want, cfg)
	}
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range []struct {
		yaml string
		err  error
	}{
		{"action: cube\n", gopolya.ErrUnknownAction},
		{"colors: 0\n", gopolya.ErrBadColorCount},
		{"from: 5\nto: 4\n", gopolya.ErrBadDomainSize},
	} {
		pathname := path.Join(dir, "bad.yaml")
		if err := os.WriteFile(pathname, []byte(tc.yaml), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(pathname); errors.Cause(err) != tc.err {
			t.Fatalf("%q: expected %v, got %v", tc.yaml, tc.err, err)
		}
	}

	if _, err := LoadConfig(path.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}

	pathname := path.Join(dir, "garbled.yaml")
	os.WriteFile(pathname, []byte("from: [1, 2\n"), 0644)
	if _, err := LoadConfig(pathname); err == nil {
		t.Fatal("expected a parse error")
	}
}
