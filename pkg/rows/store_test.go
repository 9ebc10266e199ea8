package rows_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lineitems/pkg/editor"
	"github.com/goliatone/go-lineitems/pkg/image"
	"github.com/goliatone/go-lineitems/pkg/model"
	"github.com/goliatone/go-lineitems/pkg/rows"
)

func upload(name string) *image.Upload {
	return image.NewUpload(name, "image/png", func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(name)), nil
	})
}

func newStore(t *testing.T, n int, opts ...rows.Option) *rows.Store {
	t.Helper()
	s := rows.New(opts...)
	for i := 0; i < n; i++ {
		s.AddRow()
	}
	return s
}

func TestAddRowAppendsAndUpdatesAffordances(t *testing.T) {
	s := rows.New()
	first := s.AddRow()
	if s.Len() != 1 || first.Slot() != 1 {
		t.Fatalf("expected one row at slot 1, got len=%d slot=%d", s.Len(), first.Slot())
	}
	if p := first.Presentation(); p.CanMoveUp || p.CanMoveDown {
		t.Fatalf("a lone row cannot move: %+v", p)
	}

	second := s.AddRow()
	if s.Len() != 2 || second.Slot() != 2 {
		t.Fatalf("expected slot 2, got %d", second.Slot())
	}
	if !first.Presentation().CanMoveDown {
		t.Fatalf("previous last row should be able to move down once a row follows")
	}
	if p := second.Presentation(); !p.CanMoveUp || p.CanMoveDown {
		t.Fatalf("new last row: %+v", p)
	}
}

func TestSwapExchangesContentKeepsSlots(t *testing.T) {
	s := newStore(t, 3)
	mustHydrate(t, s, 1, model.ProductRecord{ID: "10", Fields: model.Fields{model.FieldName: "Apples", model.FieldPrice: "2", model.FieldUnit: "kg"}})
	mustHydrate(t, s, 2, model.ProductRecord{ID: "11", Fields: model.Fields{model.FieldName: "Pears", model.FieldPrice: "3", model.FieldUnit: "5kg"}, Description: "<p>ripe</p>"})
	s.MarkDeleted(2, true)

	before1, before2 := s.Row(1).Content(), s.Row(2).Content()
	target1, target2 := s.Row(1).Editor().Target(), s.Row(2).Editor().Target()

	if err := s.Swap(1); err != nil {
		t.Fatalf("swap: %v", err)
	}

	if diff := cmp.Diff(before2, s.Row(1).Content()); diff != "" {
		t.Fatalf("slot 1 content mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before1, s.Row(2).Content()); diff != "" {
		t.Fatalf("slot 2 content mismatch (-want +got):\n%s", diff)
	}
	if s.Row(1).Slot() != 1 || s.Row(2).Slot() != 2 {
		t.Fatalf("slots moved")
	}
	if s.Row(1).Editor().Target() != target1 || s.Row(2).Editor().Target() != target2 {
		t.Fatalf("editor wiring must stay with the slot")
	}

	p1 := s.Row(1).Presentation()
	if !p1.Struck || !p1.InputsDisabled || p1.UnitMirror != "×5kg" || !p1.DescriptionVisible || p1.DescriptionEnabled {
		t.Fatalf("slot 1 presentation not recomputed: %+v", p1)
	}
	p2 := s.Row(2).Presentation()
	if p2.Struck || p2.UnitMirror != "kg" || p2.DescriptionVisible {
		t.Fatalf("slot 2 presentation not recomputed: %+v", p2)
	}
}

func TestDoubleSwapIsIdentity(t *testing.T) {
	factories := map[string]editor.Factory{
		"memory": editor.NewMemory,
		"rich":   editor.NewRich,
	}
	for factoryName, factory := range factories {
		for _, strategy := range []editor.Strategy{editor.StrategyFlagSwap, editor.StrategyDestroyRecreate} {
			t.Run(factoryName+"/"+string(strategy), func(t *testing.T) {
				assertDoubleSwapIsIdentity(t, rows.WithStrategy(strategy), rows.WithEditorFactory(factory))
			})
		}
	}
}

func assertDoubleSwapIsIdentity(t *testing.T, opts ...rows.Option) {
	t.Helper()
	s := newStore(t, 4, opts...)
	mustHydrate(t, s, 2, model.ProductRecord{ID: "1", Fields: model.Fields{model.FieldName: "Leeks", model.FieldPrice: "1.2"}, Description: "<p>green</p>", Image: "/media/leeks.png"})
	mustHydrate(t, s, 3, model.ProductRecord{Fields: model.Fields{model.FieldName: "Kale", model.FieldQuantum: "0.5"}})
	if err := s.ReplaceImage(3, upload("kale.png")); err != nil {
		t.Fatalf("replace image: %v", err)
	}
	// Not described, so the raw draft stays in the buffer of an unloaded slot.
	if err := s.SetDescription(3, "draft <b>x</b><script>alert(1)</script> "); err != nil {
		t.Fatalf("set description: %v", err)
	}

	snapshot := func() []model.Content {
		out := make([]model.Content, 0, s.Len())
		for _, r := range s.Rows() {
			out = append(out, r.Content())
		}
		return out
	}
	images := func() []*image.Container {
		out := make([]*image.Container, 0, s.Len())
		for _, r := range s.Rows() {
			out = append(out, r.Image())
		}
		return out
	}

	beforeContent, beforeImages := snapshot(), images()
	for i := 0; i < 2; i++ {
		if err := s.Swap(2); err != nil {
			t.Fatalf("swap %d: %v", i, err)
		}
	}
	if diff := cmp.Diff(beforeContent, snapshot()); diff != "" {
		t.Fatalf("content changed after double swap (-want +got):\n%s", diff)
	}
	if got := s.Row(3).Editor().Content(); got != "draft <b>x</b><script>alert(1)</script> " {
		t.Fatalf("buffered draft was rewritten: %q", got)
	}
	for i, c := range images() {
		if c != beforeImages[i] {
			t.Fatalf("image container at slot %d moved after double swap", i+1)
		}
	}
}

func TestSwapMigratesLoadedEditor(t *testing.T) {
	s := newStore(t, 2)
	if err := s.MarkDescribed(1, true); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if err := s.SetDescription(1, "<p>only here</p>"); err != nil {
		t.Fatalf("set description: %v", err)
	}
	if s.Row(2).Editor().Loaded() {
		t.Fatalf("slot 2 editor should not be loaded yet")
	}

	if err := s.Swap(1); err != nil {
		t.Fatalf("swap: %v", err)
	}

	r1, r2 := s.Row(1), s.Row(2)
	if r1.Editor().Loaded() || !r2.Editor().Loaded() {
		t.Fatalf("loaded state should travel with the content: slot1=%v slot2=%v", r1.Editor().Loaded(), r2.Editor().Loaded())
	}
	if got := r2.Editor().Content(); got != "<p>only here</p>" {
		t.Fatalf("slot 2 content = %q", got)
	}
	if got := r1.Editor().Content(); got != "" {
		t.Fatalf("slot 1 content = %q", got)
	}
	if r1.Described() || !r2.Described() {
		t.Fatalf("described flag should travel with the content")
	}
	if r1.Editor().Inits() != 1 || r2.Editor().Inits() != 1 {
		t.Fatalf("each slot initialises once: slot1=%d slot2=%d", r1.Editor().Inits(), r2.Editor().Inits())
	}
}

func TestSwapRelocatesImageOwnership(t *testing.T) {
	s := newStore(t, 2)
	up := upload("beets.png")
	if err := s.ReplaceImage(2, up); err != nil {
		t.Fatalf("replace: %v", err)
	}
	original := s.Row(2).Image()

	if err := s.Swap(1); err != nil {
		t.Fatalf("swap: %v", err)
	}

	moved := s.Row(1).Image()
	if moved != original || moved.Upload() != up {
		t.Fatalf("upload container was not relocated to slot 1")
	}
	if moved.CurrentSlot() != 1 || s.Row(2).Image().CurrentSlot() != 2 {
		t.Fatalf("containers not relabelled")
	}
	if s.Row(2).Image().Upload() != nil {
		t.Fatalf("upload duplicated into slot 2")
	}
	if !s.Row(1).Presentation().ImageModified || s.Row(2).Presentation().ImageModified {
		t.Fatalf("image-modified marker should follow the upload")
	}
}

func TestSwapPreconditionPanics(t *testing.T) {
	s := newStore(t, 2)
	for _, p := range []rows.Slot{0, 2, 3, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Swap(%d) should panic", p)
				}
			}()
			_ = s.Swap(p)
		}()
	}
}

func TestDeletedRowRejectsEdits(t *testing.T) {
	s := newStore(t, 1)
	s.MarkDeleted(1, true)
	if err := s.SetField(1, model.FieldName, "x"); !errors.Is(err, rows.ErrRowDeleted) {
		t.Fatalf("expected ErrRowDeleted, got %v", err)
	}
	if err := s.ReplaceImage(1, upload("a.png")); !errors.Is(err, rows.ErrRowDeleted) {
		t.Fatalf("expected ErrRowDeleted, got %v", err)
	}
	s.MarkDeleted(1, false)
	if err := s.SetField(1, model.FieldName, "x"); err != nil {
		t.Fatalf("undeleted row should accept edits: %v", err)
	}
	if err := s.SetField(1, model.Field("colour"), "red"); !errors.Is(err, rows.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDescribedFalseHidesWithoutDestroying(t *testing.T) {
	s := newStore(t, 1)
	if err := s.MarkDescribed(1, true); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if err := s.MarkDescribed(1, false); err != nil {
		t.Fatalf("undescribe: %v", err)
	}
	if err := s.MarkDescribed(1, true); err != nil {
		t.Fatalf("describe again: %v", err)
	}
	h := s.Row(1).Editor()
	if !h.Loaded() || h.Inits() != 1 {
		t.Fatalf("editor should stay loaded and initialise once, loaded=%v inits=%d", h.Loaded(), h.Inits())
	}
	if s.Row(1).Presentation().DescriptionVisible != true {
		t.Fatalf("description should be visible")
	}
}

func TestHydrateShowsRemoteImageWithoutModifying(t *testing.T) {
	s := newStore(t, 1)
	mustHydrate(t, s, 1, model.ProductRecord{
		ID:     "5",
		Fields: model.Fields{model.FieldName: "Eggs", model.Field("legacy"): "ignored"},
		Image:  "/media/eggs.png",
	})
	r := s.Row(1)
	if r.Image().State() != image.Unchanged || r.Presentation().ImageModified {
		t.Fatalf("hydrated image must not count as a replacement")
	}
	if r.Presentation().ImageURL != "/media/eggs.png" {
		t.Fatalf("unexpected preview %q", r.Presentation().ImageURL)
	}
	if r.Described() || r.Editor().Loaded() {
		t.Fatalf("record without description should stay undescribed")
	}
	if _, ok := r.Content().Fields[model.Field("legacy")]; ok {
		t.Fatalf("unknown fields must be ignored on hydration")
	}
}

func TestHydrateWhitespaceDescriptionIsDescribed(t *testing.T) {
	s := newStore(t, 2)
	mustHydrate(t, s, 1, model.ProductRecord{Fields: model.Fields{model.FieldName: "Eggs"}, Description: " \n"})
	mustHydrate(t, s, 2, model.ProductRecord{Fields: model.Fields{model.FieldName: "Milk"}})

	if r := s.Row(1); !r.Described() || !r.Editor().Loaded() || r.Content().Description != " \n" {
		t.Fatalf("any non-empty description turns the panel on: described=%v %q", r.Described(), r.Content().Description)
	}
	if s.Row(2).Described() {
		t.Fatalf("an empty description keeps the panel off")
	}
}

func TestOnReflectObservesMutations(t *testing.T) {
	s := rows.New()
	var seen []rows.Slot
	s.OnReflect(func(r *rows.Row) { seen = append(seen, r.Slot()) })

	s.AddRow()
	s.AddRow()
	if err := s.Swap(1); err != nil {
		t.Fatalf("swap: %v", err)
	}

	want := []rows.Slot{1, 1, 2, 1, 2}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Fatalf("reflections mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorTargetNaming(t *testing.T) {
	s := rows.New(rows.WithEditorTarget(func(slot rows.Slot) string {
		return "desc-" + string(rune('a'+int(slot)-1))
	}))
	s.AddRow()
	s.AddRow()
	if got := s.Row(2).Editor().Target(); got != "desc-b" {
		t.Fatalf("unexpected target %q", got)
	}
}

func mustHydrate(t *testing.T, s *rows.Store, slot rows.Slot, rec model.ProductRecord) {
	t.Helper()
	if err := s.Hydrate(slot, rec); err != nil {
		t.Fatalf("hydrate slot %d: %v", slot, err)
	}
}
