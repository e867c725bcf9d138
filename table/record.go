package table

// RowState is the pending-state bitmask of a record. A committed record has
// state 0; the bits below are independent and OR-combinable.
type RowState uint8

const (
	StateCreate RowState = 1 << iota // 1
	StateUpdate                      // 2
	StateDelete                      // 4
)

// RowHooks is the only channel through which a record affects table state.
// The table implements it once and passes itself into every record it
// creates.
type RowHooks interface {
	CreateRowID() int
	DeleteHook(rowid int)
	RestoreHook(rowid int)
	UpdateHook(rowid int, changes Values) error
	RevokeHook(rowid int)
}

// schema maps column names to positions. It is shared by a table and all of
// its records.
type schema struct {
	fields []Field
	byName map[string]int
}

func newSchema(fields []Field) *schema {
	s := &schema{
		fields: fields,
		byName: map[string]int{},
	}
	for i, f := range fields {
		s.byName[f.Name] = i
	}
	return s
}

// Record is a single row: its position in the table arrays (id), its
// pending-state bitmask and one value per schema column.
type Record struct {
	id     int
	state  RowState
	values []any
	schema *schema
	hooks  RowHooks
}

func newRecord(schema *schema, values []any, hooks RowHooks) (*Record, error) {
	r := &Record{
		values: values,
		schema: schema,
		hooks:  hooks,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	r.id = hooks.CreateRowID()
	r.state = StateCreate
	return r, nil
}

// validate checks every value against the declared kind of its column.
func (r *Record) validate() error {
	for i, f := range r.schema.fields {
		if !f.Kind.Check(r.values[i]) {
			return TypeMismatchError{Field: f.Name, Expected: f.Kind, Actual: r.values[i]}
		}
	}
	return nil
}

// ID is the record's position in the table's storage arrays. It never
// changes during the record's lifetime, until a Pack reassigns ids
// table-wide.
func (r *Record) ID() int { return r.id }

// State returns the pending-state bitmask.
func (r *Record) State() RowState { return r.state }

// Get returns the value of the named column.
func (r *Record) Get(column string) (any, error) {
	i, exists := r.schema.byName[column]
	if !exists {
		return nil, ColumnLookupError{Column: column}
	}
	return r.values[i], nil
}

// Tuple returns the row values in schema order.
func (r *Record) Tuple() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// Dict returns the row values keyed by column name.
func (r *Record) Dict() Values {
	out := Values{}
	for i, f := range r.schema.fields {
		out[f.Name] = r.values[i]
	}
	return out
}

// Delete marks the record as deleted and removes its id from the table
// index, making it invisible to iteration before commit. It is idempotent.
func (r *Record) Delete() {
	if r.state&StateDelete == 0 {
		r.state |= StateDelete
		r.hooks.DeleteHook(r.id)
	}
}

// Restore clears a pending delete and re-appends the id to the table index.
// It is idempotent.
func (r *Record) Restore() {
	if r.state&StateDelete != 0 {
		r.state &^= StateDelete
		r.hooks.RestoreHook(r.id)
	}
}

// Update stages changes into the diff table. The staged copy carries the
// UPDATE flag; the record itself is left untouched, so revoking falls back
// to it cleanly. Repeated calls merge: a second update before Revoke applies
// its changes on top of the already staged row.
func (r *Record) Update(changes Values) error {
	return r.hooks.UpdateHook(r.id, changes)
}

// Revoke discards a staged update and clears the UPDATE flag. It is
// idempotent.
func (r *Record) Revoke() {
	if r.state&StateUpdate != 0 {
		r.state &^= StateUpdate
		r.hooks.RevokeHook(r.id)
	}
}

// clone returns a copy of the record with changes applied, keeping id, state
// and hooks.
func (r *Record) clone(changes Values) (*Record, error) {
	values := make([]any, len(r.values))
	copy(values, r.values)
	upd := &Record{
		id:     r.id,
		state:  r.state,
		values: values,
		schema: r.schema,
		hooks:  r.hooks,
	}
	for column, value := range changes {
		i, exists := r.schema.byName[column]
		if !exists {
			return nil, ColumnLookupError{Column: column}
		}
		upd.values[i] = value
	}
	if err := upd.validate(); err != nil {
		return nil, err
	}
	return upd, nil
}
