package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTranslator is reported to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// ErrMissingTranslation is returned by Catalog for unknown keys.
var ErrMissingTranslation = errors.New("render: missing translation")

// Translator resolves user-facing strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what to show when a key cannot be
// resolved. args carries the caller's arguments; a trailing
// map[string]any{"default": ...} holds the fallback text.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if hint, ok := arg.(map[string]any); ok {
			if fallback, ok := hint["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Catalog is an in-memory Translator: locale -> key -> format string.
// Lookups fall back from "fr_FR" or "fr-FR" to "fr".
type Catalog map[string]map[string]string

// Translate implements Translator. Arguments are applied with fmt.Sprintf.
func (c Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		messages, ok := c[candidate]
		if !ok {
			continue
		}
		format, ok := messages[key]
		if !ok {
			continue
		}
		if len(args) == 0 {
			return format, nil
		}
		return fmt.Sprintf(format, args...), nil
	}
	return "", fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
}

// Merge returns a catalog holding c's entries overridden by other's.
func (c Catalog) Merge(other Catalog) Catalog {
	out := make(Catalog, len(c)+len(other))
	for _, src := range []Catalog{c, other} {
		for locale, messages := range src {
			if out[locale] == nil {
				out[locale] = make(map[string]string, len(messages))
			}
			for key, value := range messages {
				out[locale][key] = value
			}
		}
	}
	return out
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return []string{DefaultLocale}
	}
	chain := []string{locale}
	if idx := strings.IndexAny(locale, "_-"); idx > 0 {
		chain = append(chain, strings.ToLower(locale[:idx]))
	}
	if locale != DefaultLocale {
		chain = append(chain, DefaultLocale)
	}
	return chain
}

// DefaultLocale is used when callers do not pick one.
const DefaultLocale = "en"

// Translate resolves key through t, routing failures to onMissing with
// fallback as the default text.
func Translate(t Translator, onMissing MissingTranslationHandler, locale, key, fallback string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	hint := append(append([]any(nil), args...), map[string]any{"default": fallback})
	if t == nil {
		return onMissing(locale, key, hint, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key, args...)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, hint, err)
}

// DefaultCatalog holds the form's labels and the validation messages in
// French and English.
func DefaultCatalog() Catalog {
	return Catalog{
		"fr": {
			"validation.missing_delivery_name": "Avant de pouvoir sauvegarder, il faut donner un nom à la livraison, en haut du formulaire !",
			"validation.duplicate_product":     "Il y a plusieurs produits nommés %s, il faut en renommer au moins un.",
			"validation.invalid_price":         "Le prix de %s n'est pas valide.",

			"label.delivery_name":        "Nom de la livraison",
			"label.state":                "État",
			"label.freeze_date":          "Date de gel",
			"label.distribution_date":    "Date de distribution",
			"label.producer":             "Producteur",
			"label.no_producer":          "Aucun producteur",
			"label.description":          "Description",
			"label.place":                "Place",
			"label.name":                 "Produit",
			"label.price":                "Prix",
			"label.unit":                 "Unité",
			"label.quantity_per_package": "Par colis",
			"label.quantity_limit":       "Limite",
			"label.quantum":              "Quantum",
			"label.unit_weight":          "Poids unitaire",
			"label.image":                "Image",
			"action.delete":              "Supprimer",
			"action.describe":            "Décrire",
			"action.add_row":             "Ajouter un produit",
			"action.save":                "Sauvegarder",
			"action.save_and_leave":      "Sauvegarder et quitter",
			"action.restore":             "Restaurer",
			"action.hide_description":    "Masquer la description",
			"action.edit_header":         "Modifier la livraison",
			"action.edit_fields":         "Modifier le produit",
			"action.write_description":   "Écrire la description",
			"action.attach_image":        "Choisir une image",
			"action.move_up":             "Monter",
			"action.move_down":           "Descendre",
			"action.back":                "Retour",
			"action.quit":                "Quitter sans sauvegarder",
			"prompt.choose_row":          "Produit ou action",
			"prompt.choose_action":       "Que faire de %s ?",
			"prompt.image_path":          "Chemin de l'image",
			"status.saved":               "Livraison sauvegardée.",
			"status.empty_row":           "(vide)",
		},
		"en": {
			"validation.missing_delivery_name": "Name the delivery at the top of the form before saving.",
			"validation.duplicate_product":     "Several products are named %s; rename at least one of them.",
			"validation.invalid_price":         "The price of %s is not valid.",

			"label.delivery_name":        "Delivery name",
			"label.state":                "State",
			"label.freeze_date":          "Freeze date",
			"label.distribution_date":    "Distribution date",
			"label.producer":             "Producer",
			"label.no_producer":          "No producer",
			"label.description":          "Description",
			"label.place":                "Place",
			"label.name":                 "Product",
			"label.price":                "Price",
			"label.unit":                 "Unit",
			"label.quantity_per_package": "Per package",
			"label.quantity_limit":       "Limit",
			"label.quantum":              "Quantum",
			"label.unit_weight":          "Unit weight",
			"label.image":                "Image",
			"action.delete":              "Delete",
			"action.describe":            "Describe",
			"action.add_row":             "Add a product",
			"action.save":                "Save",
			"action.save_and_leave":      "Save and leave",
			"action.restore":             "Restore",
			"action.hide_description":    "Hide description",
			"action.edit_header":         "Edit delivery",
			"action.edit_fields":         "Edit product",
			"action.write_description":   "Write description",
			"action.attach_image":        "Attach image",
			"action.move_up":             "Move up",
			"action.move_down":           "Move down",
			"action.back":                "Back",
			"action.quit":                "Quit without saving",
			"prompt.choose_row":          "Product or action",
			"prompt.choose_action":       "What to do with %s?",
			"prompt.image_path":          "Image path",
			"status.saved":               "Delivery saved.",
			"status.empty_row":           "(empty)",
		},
	}
}
