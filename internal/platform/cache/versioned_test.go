package cache

import "testing"

func TestVersions_BumpChangesDerivedKeys(t *testing.T) {
	t.Parallel()

	versions := NewVersions()

	before := versions.Key("leagues", "list:all")
	if before != "leagues:v0:list:all" {
		t.Fatalf("unexpected initial key: %q", before)
	}

	versions.Bump("leagues")
	after := versions.Key("leagues", "list:all")
	if after != "leagues:v1:list:all" {
		t.Fatalf("unexpected bumped key: %q", after)
	}
	if before == after {
		t.Fatalf("bump did not change derived key")
	}
}

func TestVersions_NamespacesAreIndependent(t *testing.T) {
	t.Parallel()

	versions := NewVersions()
	versions.Bump("teams")

	if got := versions.Current("teams"); got != 1 {
		t.Fatalf("unexpected teams version: %d", got)
	}
	if got := versions.Current("players"); got != 0 {
		t.Fatalf("unexpected players version: %d", got)
	}
}

func TestVersions_EmptyNamespaceIgnored(t *testing.T) {
	t.Parallel()

	versions := NewVersions()
	versions.Bump("")

	if got := versions.Current(""); got != 0 {
		t.Fatalf("empty namespace should never advance, got %d", got)
	}
}
