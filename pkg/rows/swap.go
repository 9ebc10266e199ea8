package rows

import (
	"fmt"

	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/image"
)

// Swap exchanges the content of slots p and p+1. Slots keep their wiring;
// identity, fields, flags, description and image move. Calling Swap twice
// with the same p restores the original content.
//
// p must satisfy 1 <= p < Len(). The move affordances of the first and last
// rows are disabled, so a violation is a caller bug and panics.
//
// The only error comes from an editor that fails to initialise while the
// description is being moved. Fields and flags have been exchanged by then
// but the images have not, so callers should treat the form as broken.
func (s *Store) Swap(p Slot) error {
	if p < 1 || int(p) >= len(s.rows) {
		panic(fmt.Sprintf("rows: swap(%d) needs slots %d and %d, store has %d rows", p, p, p+1, len(s.rows)))
	}
	a, b := s.rows[p-1], s.rows[p]

	a.data, b.data = b.data, a.data

	if err := editor.Exchange(a.editor, b.editor, s.strategy); err != nil {
		return fmt.Errorf("rows: swap %d: %w", p, err)
	}

	image.Relocate(&a.image, &b.image)

	errA := s.reflect(a)
	errB := s.reflect(b)
	if errA != nil {
		return fmt.Errorf("rows: swap %d: %w", p, errA)
	}
	if errB != nil {
		return fmt.Errorf("rows: swap %d: %w", p, errB)
	}
	return nil
}
