package vanilla

// ChromeClass is a CSS class the embedded templates and stylesheet agree on.
type ChromeClass string

const (
	ClassForm        ChromeClass = "lineitems-form"
	ClassHeader      ChromeClass = "lineitems-header"
	ClassTable       ChromeClass = "lineitems-products"
	ClassRow         ChromeClass = "lineitems-row"
	ClassDescription ChromeClass = "lineitems-description"
	ClassActions     ChromeClass = "lineitems-actions"
	ClassErrors      ChromeClass = "lineitems-errors"
	// ClassDeleted strikes a deleted row through.
	ClassDeleted ChromeClass = "deleted"
	ClassInvalid ChromeClass = "invalid"
)
