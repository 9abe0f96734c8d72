package storage

import (
	"context"
	"strings"
	"testing"
)

func TestNewUnknownKind(t *testing.T) {
	_, err := New(context.Background(), Config{Kind: "bogus", DSN: "x"})
	if err == nil {
		t.Fatalf("expected error for unknown backend kind")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("error should name the unknown kind: %v", err)
	}
}

func TestRegisterAndKinds(t *testing.T) {
	Register("fake", func(ctx context.Context, cfg Config) (Repository, error) {
		return nil, nil
	})
	found := false
	for _, k := range Kinds() {
		if k == "fake" {
			found = true
		}
	}
	if !found {
		t.Fatalf("registered kind missing from Kinds(): %v", Kinds())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("duplicate registration should panic")
		}
	}()
	Register("dup", func(ctx context.Context, cfg Config) (Repository, error) { return nil, nil })
	Register("dup", func(ctx context.Context, cfg Config) (Repository, error) { return nil, nil })
}
