package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_DefaultIsHighestPriority(t *testing.T) {
	reg := NewRegistry()
	factory, ok := reg.Resolve("")
	if !ok {
		t.Fatalf("expected a default factory")
	}
	if _, isRich := factory(DefaultConfig()).(*Rich); !isRich {
		t.Fatalf("expected rich editor as default")
	}
}

func TestResolve_ByName(t *testing.T) {
	reg := NewRegistry()
	factory, ok := reg.Resolve(" Plain ")
	if !ok {
		t.Fatalf("expected plain editor to resolve")
	}
	if _, isMemory := factory(Config{}).(*Memory); !isMemory {
		t.Fatalf("expected memory editor for plain")
	}
	if _, ok := reg.Resolve("tinymce"); ok {
		t.Fatalf("unknown editor should not resolve")
	}
}

func TestRegister_LatestNameWinsAndPriorityOrders(t *testing.T) {
	reg := NewRegistry()
	var built []string
	reg.Register("plain", 5, func(Config) Editor {
		built = append(built, "override")
		return &Memory{}
	})
	reg.Register("custom", 100, func(Config) Editor {
		built = append(built, "custom")
		return &Memory{}
	})
	reg.Register("  ", 200, NewMemory)
	reg.Register("nil", 200, nil)

	plain, _ := reg.Resolve("plain")
	plain(Config{})
	def, _ := reg.Resolve("")
	def(Config{})

	if diff := cmp.Diff([]string{"override", "custom"}, built); diff != "" {
		t.Fatalf("resolution mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"custom", "plain", "rich"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyRegistryNeverResolves(t *testing.T) {
	var reg Registry
	if _, ok := reg.Resolve(""); ok {
		t.Fatalf("empty registry should not resolve")
	}
}
