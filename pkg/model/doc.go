// Package model defines the line item data consumed and produced by the row
// engine. A slot's mobile payload is a Content value (identity, the fixed
// product field set, deleted/described flags and description text); the
// slot itself, its editor handle and its image container live in pkg/rows.
// Delivery and ProductRecord mirror the JSON document served by the product
// endpoint (`products.json`) and are only ever consumed by this module.
// Field values stay strings until validation, matching what an HTML input
// would hold.
package model
