package image

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func stringUpload(name, body string) *Upload {
	return NewUpload(name, "image/png", func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(body)), nil
	})
}

func TestContainerStates(t *testing.T) {
	c := NewContainer(2)
	if c.State() != Absent || c.PreviewURL() != Placeholder {
		t.Fatalf("new container should be absent with placeholder, got %s %q", c.State(), c.PreviewURL())
	}

	c.ShowRemote("/media/apples.png")
	if c.State() != Unchanged || c.Modified() {
		t.Fatalf("remote image must not count as modified, got %s", c.State())
	}
	if c.PreviewURL() != "/media/apples.png" {
		t.Fatalf("unexpected preview %q", c.PreviewURL())
	}

	up := stringUpload("pears.png", "png-bytes")
	c.Replace(up)
	if !c.Modified() || c.Upload() != up {
		t.Fatalf("replace should take ownership of the upload")
	}
	if !strings.HasPrefix(c.PreviewURL(), "blob:") {
		t.Fatalf("replaced preview should be an object URL, got %q", c.PreviewURL())
	}
	if c.PreviewURL() != up.DisplayURL() {
		t.Fatalf("display URL must be stable")
	}
}

func TestRelocateMovesOwnership(t *testing.T) {
	a, b := NewContainer(1), NewContainer(2)
	up := stringUpload("a.png", "x")
	a.Replace(up)
	origA, origB := a, b

	Relocate(&a, &b)

	if a != origB || b != origA {
		t.Fatalf("containers were not exchanged")
	}
	if a.CurrentSlot() != 1 || b.CurrentSlot() != 2 {
		t.Fatalf("containers not relabelled: a=%d b=%d", a.CurrentSlot(), b.CurrentSlot())
	}
	if b.Upload() != up || a.Upload() != nil {
		t.Fatalf("upload should follow its container")
	}

	Relocate(&a, &b)
	if a != origA || b != origB || a.CurrentSlot() != 1 || b.CurrentSlot() != 2 {
		t.Fatalf("double relocation should restore the original layout")
	}
}

func TestUploadStreamsOnce(t *testing.T) {
	up := stringUpload("a.png", "payload")
	var buf bytes.Buffer
	n, err := up.WriteTo(&buf)
	if err != nil || n != int64(len("payload")) || buf.String() != "payload" {
		t.Fatalf("unexpected write: n=%d err=%v body=%q", n, err, buf.String())
	}
	if _, err := up.WriteTo(&buf); !errors.Is(err, ErrConsumed) {
		t.Fatalf("expected ErrConsumed, got %v", err)
	}
}
