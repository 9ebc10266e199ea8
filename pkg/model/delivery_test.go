package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-lineitems/pkg/model"
)

func TestDeliveryUnmarshalNormalisesScalars(t *testing.T) {
	payload := []byte(`{
		"id": 42,
		"state": "A",
		"name": "Livraison de mai",
		"description": null,
		"freezeDate": "2024-05-01",
		"distribution-date": "2024-05-08",
		"producer": 3,
		"producers": [{"id": 3, "name": "Ferme du Bois", "selected": true}],
		"products": [
			{"id": 7, "name": "Pommes", "price": 2.5, "unit": "kg", "quantity_limit": null,
			 "description": "<p>Bio</p>", "image": "/media/pommes.png", "place": 1}
		]
	}`)

	var dv model.Delivery
	if err := json.Unmarshal(payload, &dv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := model.Delivery{
		ID:               "42",
		State:            "A",
		Name:             "Livraison de mai",
		FreezeDate:       "2024-05-01",
		DistributionDate: "2024-05-08",
		Producer:         "3",
		Producers:        []model.Producer{{ID: "3", Name: "Ferme du Bois", Selected: true}},
		Products: []model.ProductRecord{{
			ID: "7",
			Fields: model.Fields{
				model.FieldName:          "Pommes",
				model.FieldPrice:         "2.5",
				model.FieldUnit:          "kg",
				model.FieldQuantityLimit: "",
			},
			Description: "<p>Bio</p>",
			Image:       "/media/pommes.png",
		}},
	}
	if diff := cmp.Diff(want, dv); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
}

func TestProductRecordRejectsNestedValues(t *testing.T) {
	var pd model.ProductRecord
	if err := json.Unmarshal([]byte(`{"name": {"nested": true}}`), &pd); err == nil {
		t.Fatalf("expected error for object value")
	}
}

func TestHeaderFromKeepsNameEmptyForNewDeliveries(t *testing.T) {
	dv := model.Delivery{ID: "1", Name: "Mai 2024", Producer: model.NoProducer}

	if got := model.HeaderFrom(dv, true).Name; got != "" {
		t.Fatalf("expected empty name for new delivery, got %q", got)
	}
	h := model.HeaderFrom(dv, false)
	if h.Name != "Mai 2024" {
		t.Fatalf("expected name copied, got %q", h.Name)
	}
	if h.HasProducer() {
		t.Fatalf("producer %q should count as none", h.Producer)
	}
}

func TestUnitMirror(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"kg":    "kg",
		"5kg":   "×5kg",
		"500 g": "×500 g",
		"pièce": "pièce",
	}
	for in, want := range cases {
		if got := model.UnitMirror(in); got != want {
			t.Errorf("UnitMirror(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestContentBlank(t *testing.T) {
	if !(model.Content{Identity: "3"}).Blank() {
		t.Fatalf("content without product fields should be blank")
	}
	c := model.Content{Fields: model.Fields{model.FieldUnit: "kg"}}
	if c.Blank() {
		t.Fatalf("content with a unit is not blank")
	}
	if c.Name() != "" {
		t.Fatalf("expected empty name, got %q", c.Name())
	}
}
