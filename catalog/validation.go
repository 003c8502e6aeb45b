package catalog

import (
	"strconv"
	"strings"

	"github.com/mkhasa/admin-gateway/internal/errors"
)

// ProductForm carries the text fields of a product create/update
// submission. Image files travel alongside in the multipart body and are
// passed through untouched.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// Validate applies the required-field checks made before a product write
// is forwarded. Any failure blocks the submission outright so the form
// state stays intact for correction.
func (f ProductForm) Validate() error {
	fieldErrs := errors.FieldErrors{}

	if strings.TrimSpace(f.Name) == "" {
		fieldErrs["name"] = "Name is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		fieldErrs["description"] = "Description is required"
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64); err != nil {
		fieldErrs["price"] = "Valid price is required"
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}
