package toolchain

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestParseKeyRoundTrip(t *testing.T) {
	inputs := []string{
		"cpython@3.11.4",
		"cpython-dbg@3.11.4",
		"pypy@3.9.0",
		"custom@3.12",
		"cpython@3.12.0rc1",
		"cpython@3.13.0a1+",
		"my.build_2@3.10.13",
	}

	for _, in := range inputs {
		key, err := ParseKey(in)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", in, err)
		}
		if got := key.String(); got != in {
			t.Fatalf("round trip of %q produced %q", in, got)
		}
	}
}

func TestParseKeyErrors(t *testing.T) {
	tests := []struct {
		input string
	}{
		{""},
		{"cpython"},
		{"cpython-3.11.4"},
		{"@3.11.4"},
		{"cpython@"},
		{"cpython@3"},
		{"cpython@latest"},
		{"cpython@3.x.1"},
		{"../evil@3.11.4"},
		{"cpy/thon@3.11.4"},
		{"cpython@3.11.4@1"},
	}

	for _, tt := range tests {
		_, err := ParseKey(tt.input)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("ParseKey(%q) error = %v, want ParseError", tt.input, err)
		}
	}
}

func TestKeyDebug(t *testing.T) {
	if !MustParseKey("cpython-dbg@3.11.4").Debug() {
		t.Fatal("expected debug key")
	}
	if MustParseKey("cpython@3.11.4").Debug() {
		t.Fatal("expected non-debug key")
	}
}

func TestCompareKeys(t *testing.T) {
	keys := []Key{
		MustParseKey("pypy@3.9.0"),
		MustParseKey("cpython@3.9.18"),
		MustParseKey("cpython@3.12.0rc1"),
		MustParseKey("cpython@3.11.4"),
		MustParseKey("cpython@3.12.0"),
		MustParseKey("cpython@3.10.13"),
	}
	slices.SortFunc(keys, CompareKeys)

	want := []string{
		"cpython@3.12.0",
		"cpython@3.12.0rc1",
		"cpython@3.11.4",
		"cpython@3.10.13",
		"cpython@3.9.18",
		"pypy@3.9.0",
	}
	for i, key := range keys {
		if key.String() != want[i] {
			t.Fatalf("position %d: got %s, want %s (all: %v)", i, key, want[i], keys)
		}
	}
}

func TestCompareKeysIsConsistent(t *testing.T) {
	keys := []Key{
		MustParseKey("cpython@3.10.0"),
		MustParseKey("cpython@3.9.0"),
		MustParseKey("cpython@3.5.01"),
		MustParseKey("cpython@3.11"),
		MustParseKey("cpython@3.11.0"),
		MustParseKey("cpython@3.11.0a1"),
		MustParseKey("cpython@3.11.0rc1"),
		MustParseKey("cpython@3.11.0.final"),
	}

	for _, a := range keys {
		if CompareKeys(a, a) != 0 {
			t.Fatalf("%s does not compare equal to itself", a)
		}
		for _, b := range keys {
			if CompareKeys(a, b) != -CompareKeys(b, a) {
				t.Fatalf("asymmetric comparison of %s and %s", a, b)
			}
			for _, c := range keys {
				if CompareKeys(a, b) < 0 && CompareKeys(b, c) < 0 && CompareKeys(a, c) >= 0 {
					t.Fatalf("ordering cycle: %s < %s < %s but not %s < %s", a, b, c, a, c)
				}
			}
		}
	}

	tests := []struct {
		newer, older string
	}{
		{"cpython@3.10.0", "cpython@3.9.0"},
		{"cpython@3.9.0", "cpython@3.5.01"},
		{"cpython@3.10.0", "cpython@3.5.01"},
		{"cpython@3.11.0", "cpython@3.11.0rc1"},
		{"cpython@3.11.0rc1", "cpython@3.11.0a1"},
	}
	for _, tt := range tests {
		if CompareKeys(MustParseKey(tt.newer), MustParseKey(tt.older)) >= 0 {
			t.Errorf("expected %s to sort before %s", tt.newer, tt.older)
		}
	}
}

func TestKeyJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Name Key `json:"name"`
	}{MustParseKey("cpython@3.11.4")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"name":"cpython@3.11.4"}` {
		t.Fatalf("unexpected json %s", data)
	}

	var decoded Key
	if err := json.Unmarshal([]byte(`"pypy@3.9.0"`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != MustParseKey("pypy@3.9.0") {
		t.Fatalf("unexpected key %v", decoded)
	}
}
