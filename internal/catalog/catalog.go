package catalog

import (
	"errors"
	"fmt"
)

// Catalog is the validated pair of Form Catalog and Field Catalog.
// It is read-only after construction.
type Catalog struct {
	forms    []FormSpec
	fields   []FieldSpec
	formIdx  map[string]int
	fieldIdx map[string]int
	byForm   map[string][]int
}

// New validates forms and fields and indexes them. All invariant
// violations are reported together.
func New(forms []FormSpec, fields []FieldSpec) (*Catalog, error) {
	c := &Catalog{
		forms:    forms,
		fields:   fields,
		formIdx:  make(map[string]int, len(forms)),
		fieldIdx: make(map[string]int, len(fields)),
		byForm:   make(map[string][]int),
	}

	var errs []error
	for i, f := range forms {
		if _, dup := c.formIdx[f.ID]; dup {
			errs = append(errs, &SchemaError{Source: "forms", Field: f.ID, Msg: "duplicate form name"})
			continue
		}
		c.formIdx[f.ID] = i
	}
	for _, id := range []string{HomeFormID, ReviewFormID} {
		if _, ok := c.formIdx[id]; !ok {
			errs = append(errs, &SchemaError{Source: "forms", Msg: fmt.Sprintf("required form %q is missing", id)})
		}
	}

	for i, f := range fields {
		if _, dup := c.fieldIdx[f.Name]; dup {
			errs = append(errs, &SchemaError{Source: "fields", Row: f.Row, Field: f.Name, Msg: "duplicate field name"})
			continue
		}
		c.fieldIdx[f.Name] = i

		if _, ok := c.formIdx[f.Form]; !ok {
			errs = append(errs, &SchemaError{Source: "fields", Row: f.Row, Field: f.Name, Msg: fmt.Sprintf("unknown form %q", f.Form)})
			continue
		}
		c.byForm[f.Form] = append(c.byForm[f.Form], i)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// Forms returns the forms in catalog order.
func (c *Catalog) Forms() []FormSpec {
	return c.forms
}

// FormIDs returns the form ids in catalog order.
func (c *Catalog) FormIDs() []string {
	ids := make([]string, len(c.forms))
	for i, f := range c.forms {
		ids[i] = f.ID
	}
	return ids
}

// Form looks up a form by id.
func (c *Catalog) Form(id string) (FormSpec, bool) {
	i, ok := c.formIdx[id]
	if !ok {
		return FormSpec{}, false
	}
	return c.forms[i], true
}

// Fields returns every field in catalog order.
func (c *Catalog) Fields() []FieldSpec {
	return c.fields
}

// Field looks up a field by name.
func (c *Catalog) Field(name string) (FieldSpec, bool) {
	i, ok := c.fieldIdx[name]
	if !ok {
		return FieldSpec{}, false
	}
	return c.fields[i], true
}

// FieldsOf returns the fields owned by a form, in catalog order.
func (c *Catalog) FieldsOf(formID string) []FieldSpec {
	idx := c.byForm[formID]
	out := make([]FieldSpec, len(idx))
	for i, j := range idx {
		out[i] = c.fields[j]
	}
	return out
}
