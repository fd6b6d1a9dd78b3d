package util

import (
	"strings"
	"testing"
)

func TestSiteSuffix(t *testing.T) {
	if got := SiteSuffix("posts", 3); got != "posts_3" {
		t.Fatalf("got %q", got)
	}
}

func TestKeysArePrefixed(t *testing.T) {
	if got := ObjectKey("g", "k"); got != "obj:1:g:k" {
		t.Fatalf("ObjectKey=%q", got)
	}
	if got := GroupKey("g"); got != "grp:g" {
		t.Fatalf("GroupKey=%q", got)
	}
	// an object key equal to the group name never collides with the aggregate
	if ObjectKey("g", "g") == GroupKey("g") {
		t.Fatalf("object and group keys collide")
	}
}

func TestColonsDoNotShiftTheGroupBoundary(t *testing.T) {
	pairs := [][2]string{
		{"a", "b:c"},
		{"a:b", "c"},
		{"a:", "b:c"},
		{"", "a:b:c"},
		{"a:b:c", ""},
	}
	seen := make(map[string][2]string, len(pairs))
	for _, p := range pairs {
		k := ObjectKey(p[0], p[1])
		if prev, dup := seen[k]; dup {
			t.Fatalf("%q and %q both map to %q", prev, p, k)
		}
		seen[k] = p
	}
}

func TestLongKeysAreHashed(t *testing.T) {
	long := strings.Repeat("x", 400)
	a := ObjectKey("g", long)
	b := ObjectKey("g", long+"y")
	if len(a) > MaxKeyLen || len(b) > MaxKeyLen {
		t.Fatalf("hashed keys exceed limit: %d %d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("distinct long keys hashed to the same storage key")
	}
	if !strings.HasPrefix(a, "objh:") || len(a) != len("objh:")+16 {
		t.Fatalf("unexpected hashed form %q", a)
	}
	if a != ObjectKey("g", long) {
		t.Fatalf("hashing is not deterministic")
	}

	g := GroupKey(long)
	if !strings.HasPrefix(g, "grph:") || len(g) != len("grph:")+16 {
		t.Fatalf("unexpected hashed group key %q", g)
	}
}

func TestHashedKeysNeverEqualLiteralKeys(t *testing.T) {
	long := strings.Repeat("x", 400)
	hashed := ObjectKey("g", long)
	// a short literal key that spells out the hashed form
	literal := ObjectKey("g", strings.TrimPrefix(hashed, "objh:"))
	if hashed == literal || strings.HasPrefix(literal, "objh:") {
		t.Fatalf("hashed %q overlaps literal %q", hashed, literal)
	}

	hg := GroupKey(long)
	lg := GroupKey(hg[len("grph:"):])
	if hg == lg || strings.HasPrefix(lg, "grph:") {
		t.Fatalf("hashed group %q overlaps literal %q", hg, lg)
	}
	// "grph:" is not a literal "grp:" key either
	if strings.HasPrefix(hg, "grp:") || strings.HasPrefix(hashed, "obj:") {
		t.Fatalf("hashed keys share the literal prefixes: %q %q", hg, hashed)
	}
}
