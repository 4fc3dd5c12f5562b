package utils

import (
	"errors"
	"testing"
)

func TestUniqueSlugFree(t *testing.T) {
	got, err := UniqueSlug("Hello World", "post", func(string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "hello-world" {
		t.Errorf("UniqueSlug = %q, want hello-world", got)
	}
}

func TestUniqueSlugSuffix(t *testing.T) {
	taken := map[string]bool{"my-post": true, "my-post-1": true}
	got, err := UniqueSlug("My Post", "post", func(c string) (bool, error) { return taken[c], nil })
	if err != nil {
		t.Fatalf("UniqueSlug: %v", err)
	}
	if got != "my-post-2" {
		t.Errorf("UniqueSlug = %q, want my-post-2", got)
	}
}

func TestUniqueSlugFallback(t *testing.T) {
	got, _ := UniqueSlug("!!!", "post", func(string) (bool, error) { return false, nil })
	if got != "post" {
		t.Errorf("UniqueSlug = %q, want post", got)
	}
}

func TestUniqueSlugLookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := UniqueSlug("x", "post", func(string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}
