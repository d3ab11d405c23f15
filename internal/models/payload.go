package models

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// ErrEmptyUpdate is returned when an update payload carries no usable fields.
var ErrEmptyUpdate = errors.New("no fields provided for update")

// FieldError describes a single validation failure, reported to the client
// under the "errors" array of the error body.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"msg"`
}

// ErrorResponse is the generic error body for every non-2xx response.
type ErrorResponse struct {
	Detail string       `json:"detail"`
	Errors []FieldError `json:"errors,omitempty"`
}

// TokenRequest is the login payload.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the successful login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Validate trims and checks both credentials fields.
func (p *TokenRequest) Validate() []FieldError {
	var errs []FieldError
	p.Username = strings.TrimSpace(p.Username)
	p.Password = strings.TrimSpace(p.Password)
	if p.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Field is required."})
	}
	if p.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Field is required."})
	}
	return errs
}

// assetFields is the shared shape of create and update payloads. Pointers
// distinguish absent fields from present ones.
type assetFields struct {
	Name         *string  `json:"name"`
	Category     *string  `json:"category"`
	Owner        *string  `json:"owner"`
	Status       *string  `json:"status"`
	Location     *string  `json:"location"`
	Value        *float64 `json:"value"`
	PurchaseDate *string  `json:"purchase_date"`
	Metadata     *string  `json:"metadata"`
}

// AssetCreate is the payload for POST /api/asset. Name is required; all other
// fields are optional.
type AssetCreate struct {
	assetFields
}

// AssetUpdate is the payload for PUT /api/asset/{id}. Every field is optional
// but at least one must be present.
type AssetUpdate struct {
	assetFields
}

// normalize trims string fields in place and checks the per-field rules
// common to create and update.
func (f *assetFields) normalize() []FieldError {
	var errs []FieldError

	for _, s := range []*string{f.Name, f.Category, f.Owner, f.Status, f.Location, f.Metadata} {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}

	if f.Value != nil && *f.Value < 0 {
		errs = append(errs, FieldError{Field: "value", Message: "Value must be greater than or equal to 0."})
	}

	if f.PurchaseDate != nil {
		*f.PurchaseDate = strings.TrimSpace(*f.PurchaseDate)
		parsed, err := time.Parse("2006-01-02", *f.PurchaseDate)
		if err != nil {
			errs = append(errs, FieldError{Field: "purchase_date", Message: "Must be a valid date in YYYY-MM-DD format."})
		} else {
			*f.PurchaseDate = parsed.Format("2006-01-02")
		}
	}

	return errs
}

// fieldMap returns the present, non-null fields keyed by column name.
func (f *assetFields) fieldMap() map[string]any {
	fields := make(map[string]any)
	if f.Name != nil {
		fields["name"] = *f.Name
	}
	if f.Category != nil {
		fields["category"] = *f.Category
	}
	if f.Owner != nil {
		fields["owner"] = *f.Owner
	}
	if f.Status != nil {
		fields["status"] = *f.Status
	}
	if f.Location != nil {
		fields["location"] = *f.Location
	}
	if f.Value != nil {
		fields["value"] = *f.Value
	}
	if f.PurchaseDate != nil {
		fields["purchase_date"] = *f.PurchaseDate
	}
	if f.Metadata != nil {
		fields["metadata"] = *f.Metadata
	}
	return fields
}

// Validate normalizes the payload and enforces the create rules.
func (p *AssetCreate) Validate() []FieldError {
	errs := p.normalize()
	if p.Name == nil || *p.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name must not be empty."})
	}
	return errs
}

// Fields returns every asset column for insertion; absent fields map to nil.
func (p *AssetCreate) Fields() map[string]any {
	fields := p.fieldMap()
	for _, column := range AssetColumns {
		if _, ok := fields[column]; !ok {
			fields[column] = nil
		}
	}
	return fields
}

// Validate normalizes the payload, enforces the per-field rules, and requires
// at least one field to be present. This is the authoritative empty-update
// check; handlers rely on it.
func (p *AssetUpdate) Validate() ([]FieldError, error) {
	errs := p.normalize()
	if len(errs) > 0 {
		return errs, nil
	}
	if len(p.fieldMap()) == 0 {
		return nil, ErrEmptyUpdate
	}
	return nil, nil
}

// Fields returns only the fields explicitly present in the payload.
func (p *AssetUpdate) Fields() map[string]any {
	return p.fieldMap()
}

// AssetColumns lists the writable asset columns in insertion order.
var AssetColumns = []string{
	"name", "category", "owner", "status", "location", "value", "purchase_date", "metadata",
}

// DecodeStrict decodes a JSON request body into dst, rejecting unknown fields.
// Failures come back as field errors suitable for the 400 response body.
func DecodeStrict(r io.Reader, dst any) []FieldError {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return []FieldError{{Field: typeErr.Field, Message: "Invalid value type."}}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return []FieldError{{Field: field, Message: "Unknown field."}}
	default:
		return []FieldError{{Message: "Request body must be valid JSON."}}
	}
}
