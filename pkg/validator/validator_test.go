package validator

import "testing"

func TestAll(t *testing.T) {
	if err := All(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := All(nil, NotEmpty("", "field")); err == nil {
		t.Fatal("want error")
	}
}

func TestNoDuplicates(t *testing.T) {
	if err := NoDuplicates([]string{"a", "b"}, "names"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := NoDuplicates([]string{"a", "a"}, "names"); err == nil {
		t.Fatal("want error")
	}
}

func TestMatchesAllowed(t *testing.T) {
	if err := MatchesAllowed("cwd", []string{"cwd", "template", "path"}, "mode"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := MatchesAllowed("nope", []string{"cwd"}, "mode"); err == nil {
		t.Fatal("want error")
	}
}

func TestHasNoPlaceholder(t *testing.T) {
	if err := HasNoPlaceholder("title", "key"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := HasNoPlaceholder("{title}", "key"); err == nil {
		t.Fatal("want error")
	}
}
