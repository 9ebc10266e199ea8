// Package testsupport holds the fixtures shared by the package tests.
package testsupport

import (
	"context"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-lineitems/pkg/model"
)

//go:embed testdata/*.json
var fixtures embed.FS

// Fixture names inside FS().
const (
	DeliveryFixture        = "testdata/delivery.json"
	InvalidDeliveryFixture = "testdata/invalid_delivery.json"
)

// FS exposes the embedded fixtures, e.g. for loader.WithFileSystem.
func FS() embed.FS {
	return fixtures
}

// MustFixture returns the raw bytes of an embedded fixture.
func MustFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := fixtures.ReadFile(name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// MustDelivery decodes the sample delivery: two products, the first one
// described and illustrated.
func MustDelivery(t *testing.T) model.Delivery {
	t.Helper()
	var dv model.Delivery
	if err := json.Unmarshal(MustFixture(t, DeliveryFixture), &dv); err != nil {
		t.Fatalf("decode delivery fixture: %v", err)
	}
	return dv
}

// WriteFixtureFile copies an embedded fixture into dir and returns its path.
func WriteFixtureFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, MustFixture(t, name), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
