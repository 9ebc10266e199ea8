// Package image models the per-row product picture. A picture chosen by the
// user is an Upload: a file handle that program code may neither copy nor
// read, except by minting a transient display URL for previews or by handing
// it to the submission encoder. Rows never exchange Uploads by value; they
// relocate the Container that owns it.
package image

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// State enumerates the image states of a row.
type State int

const (
	// Absent means the row has no image at all.
	Absent State = iota
	// Unchanged means the row shows the image already stored server side.
	Unchanged
	// Replaced means the user picked a new file for this row.
	Replaced
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Unchanged:
		return "unchanged"
	case Replaced:
		return "replaced"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Placeholder is displayed for rows without an image.
const Placeholder = "/media/none.png"

// ErrConsumed is returned when an upload's payload was already streamed.
var ErrConsumed = errors.New("image: upload payload already consumed")

// noCopy makes `go vet` flag value copies of the types embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Opener yields the bytes behind an upload. It is called at most once.
type Opener func() (io.ReadCloser, error)

// Upload is a user-selected file. It is handled by pointer only.
type Upload struct {
	_ noCopy

	filename    string
	contentType string
	open        Opener

	mu       sync.Mutex
	consumed bool
	display  string
}

// NewUpload wraps a file selection. open is not invoked until the submission
// streams the payload.
func NewUpload(filename, contentType string, open Opener) *Upload {
	return &Upload{
		filename:    filename,
		contentType: contentType,
		open:        open,
	}
}

// Filename returns the client-side file name.
func (u *Upload) Filename() string {
	if u == nil {
		return ""
	}
	return u.filename
}

// ContentType returns the declared MIME type.
func (u *Upload) ContentType() string {
	if u == nil {
		return ""
	}
	return u.contentType
}

// DisplayURL mints (once) a transient object URL usable for previews. The
// URL names the upload; it does not expose its bytes.
func (u *Upload) DisplayURL() string {
	if u == nil {
		return ""
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.display == "" {
		u.display = "blob:" + uuid.NewString()
	}
	return u.display
}

// WriteTo streams the payload into w. Only the submission encoder calls it,
// and only once: the handle is spent afterwards.
func (u *Upload) WriteTo(w io.Writer) (int64, error) {
	if u == nil {
		return 0, errors.New("image: upload is nil")
	}
	u.mu.Lock()
	if u.consumed {
		u.mu.Unlock()
		return 0, ErrConsumed
	}
	u.consumed = true
	u.mu.Unlock()

	if u.open == nil {
		return 0, errors.New("image: upload has no opener")
	}
	rc, err := u.open()
	if err != nil {
		return 0, fmt.Errorf("image: open %s: %w", u.filename, err)
	}
	defer func() {
		_ = rc.Close()
	}()
	return io.Copy(w, rc)
}

// Container is the relocatable holder of one row's image: the modification
// marker, the preview and the upload itself, labelled with the slot it
// currently belongs to.
type Container struct {
	_ noCopy

	state  State
	remote string
	upload *Upload
	slot   int
}

// NewContainer returns an empty container owned by slot.
func NewContainer(slot int) *Container {
	return &Container{slot: slot}
}

// CurrentSlot returns the slot the container is attached to.
func (c *Container) CurrentSlot() int {
	return c.slot
}

// State reports the container's image state.
func (c *Container) State() State {
	return c.state
}

// Modified reports whether the stored image must be replaced on submit.
func (c *Container) Modified() bool {
	return c.state == Replaced
}

// Upload returns the replaced file handle, or nil.
func (c *Container) Upload() *Upload {
	return c.upload
}

// ShowRemote displays an image already stored server side. It is a display
// change only and never marks the container modified.
func (c *Container) ShowRemote(url string) {
	if url == "" {
		return
	}
	c.remote = url
	if c.state == Absent {
		c.state = Unchanged
	}
}

// Replace takes ownership of a user-selected upload. A nil upload is ignored.
func (c *Container) Replace(u *Upload) {
	if u == nil {
		return
	}
	c.upload = u
	c.state = Replaced
}

// PreviewURL returns what the row's <img> should show.
func (c *Container) PreviewURL() string {
	switch {
	case c.state == Replaced && c.upload != nil:
		return c.upload.DisplayURL()
	case c.remote != "":
		return c.remote
	default:
		return Placeholder
	}
}

// Relocate exchanges two slots' containers in place: after the call *a holds
// what *b held and vice versa, and each container is relabelled with its new
// slot. Uploads move with their container; nothing is copied.
func Relocate(a, b **Container) {
	if a == nil || b == nil || *a == nil || *b == nil {
		panic("image: relocate needs two containers")
	}
	slotA, slotB := (*a).slot, (*b).slot
	*a, *b = *b, *a
	(*a).slot = slotA
	(*b).slot = slotB
}
