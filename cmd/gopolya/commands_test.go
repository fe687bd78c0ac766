package main

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/2x3systems/gopolya/gopolya"
	"github.com/pkg/errors"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cfg DriverConfig
	cmd := newRootCmd(nil, &cfg)
	out := bytes.Buffer{}
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTableCmd(t *testing.T) {
	got, err := runCmd(t, "table", "--config", "testdata/gopolya.yaml")
	if err != nil {
		t.Fatal(err)
	}
	want := "# n asymmetric_orbits orbits\n3 2 4\n4 3 6\n5 6 8\n6 9 14\n"
	if got != want {
		t.Fatalf("table should be:\n%s\ngot:\n%s", want, got)
	}

	// Flags override the config file
	got, err = runCmd(t, "table", "--config", "testdata/gopolya.yaml", "--to", "4", "--k", "3")
	if err != nil {
		t.Fatal(err)
	}
	want = "# n asymmetric_orbits orbits\n3 8 11\n4 18 24\n"
	if got != want {
		t.Fatalf("table should be:\n%s\ngot:\n%s", want, got)
	}

	got, err = runCmd(t, "table", "--action", "grid", "--from", "1", "--to", "3", "--order", "--asymmetric")
	if err != nil {
		t.Fatal(err)
	}
	want = "2 8 0 0 6\n3 8 288 36 102\n"
	if got != want {
		t.Fatalf("table should be:\n%s\ngot:\n%s", want, got)
	}
}

func TestTableCatalog(t *testing.T) {
	dbPath := path.Join(t.TempDir(), "catalog")
	args := []string{"table", "--action", "bracelet", "--from", "3", "--to", "7", "--workers", "2", "--catalog", dbPath}

	first, err := runCmd(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = os.Stat(dbPath); err != nil {
		t.Fatal(err)
	}

	second, err := runCmd(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if first != second || !strings.HasPrefix(first, "3 0 4\n") {
		t.Fatalf("catalog output differs:\n%s\nvs:\n%s", first, second)
	}
}

func TestCountCmd(t *testing.T) {
	got, err := runCmd(t, "count", "--expr", "e; (0 1 2 3); (0 2)(1 3); (0 3 2 1)", "--terms")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{
		"order:             4\n",
		"orbits:            6\n",
		"asymmetric:        12\n",
		"asymmetric_orbits: 3\n",
		"cycle_index:       1/4 (x1^4 + x2^2 + 2 x4)\n",
	} {
		if !strings.Contains(got, line) {
			t.Fatalf("expected %q in:\n%s", line, got)
		}
	}

	got, err = runCmd(t, "count", "--action", "grid", "--n", "3")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "orbits:            102\n") {
		t.Fatalf("unexpected output:\n%s", got)
	}

	_, err = runCmd(t, "count", "--expr", "e; (0 1 2)")
	if errors.Cause(err) != gopolya.ErrNotClosed {
		t.Fatalf("expected ErrNotClosed, got %v", err)
	}

	_, err = runCmd(t, "count", "--action", "cube", "--n", "3")
	if errors.Cause(err) != gopolya.ErrUnknownAction {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
