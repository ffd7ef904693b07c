// internal/ordering/field.go

// Package ordering assigns per-group sequence numbers to gorm models.
//
// A Field is declared once per model with the name of its order field and of
// the field whose value defines the group (usually a foreign key). Records
// saved without an order get MAX(order)+1 within their group, or 1 for an
// empty group. Every save is checked for a clashing order in the same group.
//
// Assignment is optimistic: two concurrent inserts into one group may compute
// the same value. The slower writer is rejected with ErrDuplicateOrder (or by
// the table's unique index) and is expected to retry.
package ordering

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	ErrMisconfigured  = errors.New("ordering: misconfigured field")
	ErrMissingGroup   = errors.New("ordering: group value is required")
	ErrDuplicateOrder = errors.New("duplicate order value")
)

var schemaCache = &sync.Map{}

type Field struct {
	schema *schema.Schema
	order  *schema.Field
	group  *schema.Field
	pk     *schema.Field
}

// New declares an ordering field on model. orderField and groupField are Go
// field names or column names of model.
func New(model interface{}, orderField, groupField string) (*Field, error) {
	if groupField == "" {
		return nil, fmt.Errorf("%w: a group field must be declared", ErrMisconfigured)
	}

	sch, err := schema.Parse(model, schemaCache, schema.NamingStrategy{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}

	order := sch.LookUpField(orderField)
	if order == nil {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrMisconfigured, sch.Name, orderField)
	}
	switch order.IndirectFieldType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, fmt.Errorf("%w: %s.%s must be an integer", ErrMisconfigured, sch.Name, order.Name)
	}

	group := sch.LookUpField(groupField)
	if group == nil {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrMisconfigured, sch.Name, groupField)
	}
	if group == order {
		return nil, fmt.Errorf("%w: %s cannot group by its own order field", ErrMisconfigured, sch.Name)
	}

	pk := sch.PrioritizedPrimaryField
	if pk == nil {
		return nil, fmt.Errorf("%w: %s has no primary key", ErrMisconfigured, sch.Name)
	}

	return &Field{schema: sch, order: order, group: group, pk: pk}, nil
}

// MustNew is like New but panics on misconfiguration. It is meant for
// package-level declarations so a broken model stops the process at start.
func MustNew(model interface{}, orderField, groupField string) *Field {
	f, err := New(model, orderField, groupField)
	if err != nil {
		panic(err)
	}
	return f
}

// Prepare fills in the order of record when it is unset and validates it.
// record must be a pointer to the model the field was declared on.
func (f *Field) Prepare(tx *gorm.DB, record interface{}) error {
	rv, err := f.indirect(record)
	if err != nil {
		return err
	}

	ctx := tx.Statement.Context
	group, zero := f.group.ValueOf(ctx, rv)
	if zero {
		return fmt.Errorf("%w: %s", ErrMissingGroup, f.group.DBName)
	}

	if _, unset := f.order.ValueOf(ctx, rv); unset {
		next, err := f.Next(tx, group)
		if err != nil {
			return err
		}
		if err := f.order.Set(ctx, rv, next); err != nil {
			return fmt.Errorf("failed to set %s: %w", f.order.DBName, err)
		}
	}

	return f.validate(tx, rv, group)
}

// Validate rejects record when another row of its group holds the same order.
func (f *Field) Validate(tx *gorm.DB, record interface{}) error {
	rv, err := f.indirect(record)
	if err != nil {
		return err
	}

	group, zero := f.group.ValueOf(tx.Statement.Context, rv)
	if zero {
		return fmt.Errorf("%w: %s", ErrMissingGroup, f.group.DBName)
	}
	return f.validate(tx, rv, group)
}

// Next returns the order a new record of group would receive.
func (f *Field) Next(tx *gorm.DB, group interface{}) (int64, error) {
	var max int64
	err := tx.Table(f.schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: f.group.DBName}, Value: group}).
		Select("COALESCE(MAX(?), 0)", clause.Column{Name: f.order.DBName}).
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max %s: %w", f.order.DBName, err)
	}
	return max + 1, nil
}

func (f *Field) validate(tx *gorm.DB, rv reflect.Value, group interface{}) error {
	ctx := tx.Statement.Context
	order, _ := f.order.ValueOf(ctx, rv)
	id, _ := f.pk.ValueOf(ctx, rv)

	var count int64
	err := tx.Table(f.schema.Table).
		Where(clause.Eq{Column: clause.Column{Name: f.group.DBName}, Value: group}).
		Where(clause.Eq{Column: clause.Column{Name: f.order.DBName}, Value: order}).
		Where(clause.Neq{Column: clause.Column{Name: f.pk.DBName}, Value: id}).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", f.order.DBName, err)
	}
	if count > 0 {
		return ErrDuplicateOrder
	}
	return nil
}

func (f *Field) indirect(record interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(record)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return reflect.Value{}, fmt.Errorf("ordering: expected non-nil pointer to %s, got %T", f.schema.Name, record)
	}
	rv = rv.Elem()
	if rv.Type() != f.schema.ModelType {
		return reflect.Value{}, fmt.Errorf("ordering: expected %s, got %s", f.schema.Name, rv.Type())
	}
	return rv, nil
}
