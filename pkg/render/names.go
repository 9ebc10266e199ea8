package render

import (
	"fmt"

	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

// Delivery-level input names.
const (
	DeliveryID          = "dv-id"
	DeliveryName        = "dv-name"
	DeliveryState       = "dv-state"
	DeliveryDescription = "dv-description"
	FreezeDate          = "freeze-date"
	DistributionDate    = "distribution-date"
	Producer            = "producer"
	ThenLeave           = "then_leave"
)

// Per-slot input suffixes that are not product fields.
const (
	SuffixPlace         = "place"
	SuffixDeleted       = "deleted"
	SuffixDescribed     = "described"
	SuffixDescription   = "description"
	SuffixImageModified = "image-modified"
	SuffixImageUpload   = "image-upload"
)

// SlotKey names the input bound to slot, e.g. SlotKey(3, "price") is
// "r3-price". Slots keep their names for the whole session.
func SlotKey(slot rows.Slot, suffix string) string {
	return fmt.Sprintf("r%d-%s", int(slot), suffix)
}

// FieldKey names a product input of slot.
func FieldKey(slot rows.Slot, field model.Field) string {
	return SlotKey(slot, string(field))
}

// RowID is the element id of a slot's table row.
func RowID(slot rows.Slot) string {
	return fmt.Sprintf("r%d", int(slot))
}

// EditorTarget is the element a slot's description editor attaches to.
func EditorTarget(slot rows.Slot) string {
	return SlotKey(slot, "description-editor")
}
