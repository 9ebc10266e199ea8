package rows

import "github.com/goliatone/go-lineitems/pkg/model"

// Presentation is the visual state of a row, derived from its content and the
// store size. It is never edited directly.
type Presentation struct {
	Struck             bool   `json:"struck"`
	InputsDisabled     bool   `json:"inputs_disabled"`
	DescriptionVisible bool   `json:"description_visible"`
	DescriptionEnabled bool   `json:"description_enabled"`
	UnitMirror         string `json:"unit_mirror"`
	ShowUnitSuffix     bool   `json:"show_unit_suffix"`
	CanMoveUp          bool   `json:"can_move_up"`
	CanMoveDown        bool   `json:"can_move_down"`
	ImageURL           string `json:"image_url"`
	ImageModified      bool   `json:"image_modified"`
}

func (s *Store) present(row *Row) Presentation {
	mirror := model.UnitMirror(row.data.fields.Get(model.FieldUnit))
	return Presentation{
		Struck:             row.data.deleted,
		InputsDisabled:     row.data.deleted,
		DescriptionVisible: row.data.described,
		DescriptionEnabled: row.data.described && !row.data.deleted,
		UnitMirror:         mirror,
		ShowUnitSuffix:     mirror != "",
		CanMoveUp:          s.CanMoveUp(row.slot),
		CanMoveDown:        s.CanMoveDown(row.slot),
		ImageURL:           row.image.PreviewURL(),
		ImageModified:      row.image.Modified(),
	}
}
