// Package toolchain registers, lists and removes interpreter toolchains kept
// under a version-keyed directory layout.
package toolchain

import (
	"cmp"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DebugSuffix marks a key whose interpreter is a debug build.
const DebugSuffix = "-dbg"

var (
	namePattern    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)
	versionPattern = regexp.MustCompile(`^([0-9]+)\.([0-9]+)(?:\.([0-9]+))?([A-Za-z0-9.+_-]*)$`)
)

// Key is the canonical identity of a toolchain, written name@version.
type Key struct {
	Name    string
	Version string
}

// ParseKey parses a canonical key string.
func ParseKey(s string) (Key, error) {
	name, version, ok := strings.Cut(s, "@")
	if !ok {
		return Key{}, &ParseError{Input: s, Reason: "missing @ separator"}
	}
	if !namePattern.MatchString(name) {
		return Key{}, &ParseError{Input: s, Reason: fmt.Sprintf("invalid toolchain name %q", name)}
	}
	if !versionPattern.MatchString(version) {
		return Key{}, &ParseError{Input: s, Reason: fmt.Sprintf("invalid version %q", version)}
	}
	return Key{Name: name, Version: version}, nil
}

// MustParseKey is ParseKey for static keys; it panics on error.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) String() string {
	return k.Name + "@" + k.Version
}

// Debug reports whether the key names a debug build.
func (k Key) Debug() bool {
	return strings.HasSuffix(k.Name, DebugSuffix)
}

// MarshalText emits the canonical string so keys encode as plain JSON strings.
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses the canonical string.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// CompareKeys orders keys by name ascending, then by version descending so
// the most recent release of a name comes first.
func CompareKeys(a, b Key) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return -compareVersions(a.Version, b.Version)
}

// compareVersions compares the numeric release parts as integers, then the
// suffix: a bare release sorts above any pre-release, semver-shaped suffixes
// compare by semver precedence and anything else sorts below them. The raw
// string breaks remaining ties, so the order is total.
func compareVersions(a, b string) int {
	ma := versionPattern.FindStringSubmatch(a)
	mb := versionPattern.FindStringSubmatch(b)
	if (ma == nil) != (mb == nil) {
		if ma == nil {
			return -1
		}
		return 1
	}
	if ma != nil {
		for i := 1; i <= 3; i++ {
			if c := compareNumeric(ma[i], mb[i]); c != 0 {
				return c
			}
		}
		if c := compareSuffixes(ma[4], mb[4]); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

// compareNumeric orders digit strings by value without converting them, so
// leading zeros and very long components are fine. Empty means zero.
func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

const (
	suffixOther = iota
	suffixPrerelease
	suffixRelease
)

func compareSuffixes(a, b string) int {
	pa, ka := prereleaseOf(a)
	pb, kb := prereleaseOf(b)
	if c := cmp.Compare(ka, kb); c != 0 {
		return c
	}
	if ka == suffixPrerelease {
		return pa.Compare(pb)
	}
	return 0
}

// prereleaseOf maps an interpreter version suffix such as rc1 onto a semver
// pre-release and reports which class the suffix falls in.
func prereleaseOf(suffix string) (*semver.Version, int) {
	suffix = strings.Trim(suffix, ".+_-")
	if suffix == "" {
		return nil, suffixRelease
	}
	suffix = strings.NewReplacer("_", "-", "+", ".").Replace(suffix)
	v, err := semver.StrictNewVersion("0.0.0-" + suffix)
	if err != nil {
		return nil, suffixOther
	}
	return v, suffixPrerelease
}
