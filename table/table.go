package table

import (
	"fmt"
)

// Table owns the committed rows (store), the staged changes (diff) and the
// ordered list of live row ids (index). Both arrays always have the same
// length; the effective row at any id is the diff entry if present, the
// store entry otherwise.
type Table struct {
	schema *schema
	store  []*Record
	diff   []*Record
	index  []int
	hooks  RowHooks
}

// New creates an empty table with a fixed schema.
func New(fields ...Field) (*Table, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: at least one field is required", ErrTable)
	}
	seen := map[string]bool{}
	for _, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field name cannot be empty", ErrTable)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("%w: duplicated field '%s'", ErrTable, f.Name)
		}
		seen[f.Name] = true
	}

	t := &Table{
		schema: newSchema(fields),
		store:  []*Record{},
		diff:   []*Record{},
		index:  []int{},
	}
	t.hooks = tableHooks{t}
	return t, nil
}

// Fields returns the schema, in declaration order.
func (t *Table) Fields() []Field {
	fields := make([]Field, len(t.schema.fields))
	copy(fields, t.schema.fields)
	return fields
}

// Colnames returns the column names, in declaration order.
func (t *Table) Colnames() []string {
	names := make([]string, len(t.schema.fields))
	for i, f := range t.schema.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of rows currently visible to iteration.
func (t *Table) Len() int {
	return len(t.index)
}

// AppendRow stages a new row with one value per schema column. The row gets
// the next free id, lives in the diff array flagged CREATE until commit, and
// is immediately visible to iteration.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.schema.fields) {
		return fmt.Errorf("%w: expected %d values, got %d", ErrTable, len(t.schema.fields), len(values))
	}
	row, err := newRecord(t.schema, values, t.hooks)
	if err != nil {
		return err
	}
	t.store = append(t.store, nil)
	t.diff = append(t.diff, row)
	t.index = append(t.index, row.id)
	return nil
}

// GetRow returns the effective row at rowid: the staged version if one
// exists, the committed one otherwise. It returns nil for tombstoned slots
// and for ids out of range.
func (t *Table) GetRow(rowid int) *Record {
	if rowid < 0 || rowid >= len(t.store) {
		return nil
	}
	if row := t.diff[rowid]; row != nil {
		return row
	}
	return t.store[rowid]
}

// DeleteRow marks the row as deleted, removing it from iteration right away.
// The data is kept in store/diff until commit.
func (t *Table) DeleteRow(rowid int) error {
	row := t.GetRow(rowid)
	if row == nil {
		return RowLookupError{RowID: rowid}
	}
	row.Delete()
	return nil
}

// RestoreRow undoes a pending delete.
func (t *Table) RestoreRow(rowid int) error {
	row := t.GetRow(rowid)
	if row == nil {
		return RowLookupError{RowID: rowid}
	}
	row.Restore()
	return nil
}

// UpdateRow stages changes for the row into the diff array.
func (t *Table) UpdateRow(rowid int, changes Values) error {
	row := t.GetRow(rowid)
	if row == nil {
		return RowLookupError{RowID: rowid}
	}
	return row.Update(changes)
}

// RevokeRow discards staged changes for the row.
func (t *Table) RevokeRow(rowid int) error {
	row := t.GetRow(rowid)
	if row == nil {
		return RowLookupError{RowID: rowid}
	}
	row.Revoke()
	return nil
}

// DeleteRows deletes every visible row matching the predicate, or all
// visible rows if predicate is nil. The rows reachable at call time are
// captured first, so deleting does not disturb the traversal.
func (t *Table) DeleteRows(predicate Predicate) error {
	cur, err := t.NewCursor(CursorOptions{Predicate: predicate, Mode: ModeIndexed})
	if err != nil {
		return err
	}
	return eachRecord(cur, func(row *Record) error {
		row.Delete()
		return nil
	})
}

// UpdateRows stages changes on every visible row matching the predicate, or
// on all visible rows if predicate is nil.
func (t *Table) UpdateRows(predicate Predicate, changes Values) error {
	cur, err := t.NewCursor(CursorOptions{Predicate: predicate, Mode: ModeIndexed})
	if err != nil {
		return err
	}
	return eachRecord(cur, func(row *Record) error {
		return row.Update(changes)
	})
}

// Rows returns a cursor over the visible rows.
func (t *Table) Rows(predicate Predicate, mode Mode) *Cursor {
	cur, _ := t.NewCursor(CursorOptions{Predicate: predicate, Mode: mode})
	return cur
}

// Format selects the shape of the rows returned by Select.
type Format int

const (
	Tuple Format = iota // []any in column order
	Dict                // Values keyed by column name
)

// Select returns a cursor whose rows are projected to the given columns
// (all schema columns if nil, order preserved) and formatted as Tuple or
// Dict.
func (t *Table) Select(columns []string, predicate Predicate, format Format, mode Mode) (*Cursor, error) {
	mapper, err := t.Mapper(columns, format)
	if err != nil {
		return nil, err
	}
	return t.NewCursor(CursorOptions{
		Predicate: predicate,
		Mapper:    mapper,
		Mode:      mode,
	})
}

// Mapper builds a projection over the given columns (all schema columns if
// nil) in the given format.
func (t *Table) Mapper(columns []string, format Format) (Mapper, error) {
	if columns == nil {
		columns = t.Colnames()
	}
	positions := make([]int, len(columns))
	for i, name := range columns {
		pos, exists := t.schema.byName[name]
		if !exists {
			return nil, ColumnLookupError{Column: name}
		}
		positions[i] = pos
	}
	switch format {
	case Tuple:
		return func(row *Record) any {
			out := make([]any, len(positions))
			for i, pos := range positions {
				out[i] = row.values[pos]
			}
			return out
		}, nil
	case Dict:
		return func(row *Record) any {
			out := Values{}
			for i, pos := range positions {
				out[columns[i]] = row.values[pos]
			}
			return out
		}, nil
	}
	return nil, fmt.Errorf("%w: format requires to be Tuple or Dict", ErrTable)
}

// NewCursor returns a cursor configured by opts.
func (t *Table) NewCursor(opts CursorOptions) (*Cursor, error) {
	return newCursor(t, opts)
}

// Commit applies every staged change to the store: rows flagged DELETE are
// tombstoned and dropped from the index, rows flagged CREATE or UPDATE
// replace their committed version with state reset to zero. The diff array
// is flushed afterwards.
func (t *Table) Commit() {
	for rowid := range t.store {
		row := t.GetRow(rowid)
		if row == nil {
			continue
		}
		if row.state&StateDelete != 0 {
			t.store[rowid] = nil
			// The id is usually gone already, removed by Delete.
			t.removeRowID(rowid)
		} else if row.state&(StateCreate|StateUpdate) != 0 {
			t.store[rowid] = row
			row.state = 0
		}
	}
	t.diff = make([]*Record, len(t.store))
}

// Rollback discards every staged change: rows flagged CREATE are dropped
// from the index (their slot stays tombstoned until Pack), pending deletes
// on committed rows are undone and their ids re-appended to the index, and
// any remaining state flag on committed rows is cleared. The diff array is
// flushed afterwards.
func (t *Table) Rollback() {
	for rowid := range t.store {
		row := t.GetRow(rowid)
		if row == nil {
			continue
		}
		if row.state&StateCreate != 0 {
			t.removeRowID(rowid)
			continue
		}
		if row.state&StateDelete != 0 {
			t.index = append(t.index, rowid)
		}
		t.store[rowid].state = 0
	}
	t.diff = make([]*Record, len(t.store))
}

// Pack commits pending changes, removes tombstoned slots from the store,
// reassigns every remaining row id to its new position and rebuilds index
// and diff.
func (t *Table) Pack() {
	t.Commit()

	packed := t.store[:0]
	for _, row := range t.store {
		if row != nil {
			packed = append(packed, row)
		}
	}
	t.store = packed

	t.index = make([]int, len(t.store))
	for rowid, row := range t.store {
		row.id = rowid
		t.index[rowid] = rowid
	}
	t.diff = make([]*Record, len(t.store))
}

// removeRowID drops the first occurrence of rowid from the index. Absence is
// tolerated: Delete removes the id eagerly, Commit removes it again.
func (t *Table) removeRowID(rowid int) {
	for i, id := range t.index {
		if id == rowid {
			t.index = append(t.index[:i], t.index[i+1:]...)
			return
		}
	}
}

// eachRecord drains a cursor without mapper, applying f to every record.
func eachRecord(cur *Cursor, f func(*Record) error) error {
	for {
		row, err := cur.Next()
		if err == ErrExhausted {
			return nil
		}
		if err != nil {
			return err
		}
		if err := f(row.(*Record)); err != nil {
			return err
		}
	}
}

// tableHooks wires the table into each record. It is the only channel
// through which a record mutates table state.
type tableHooks struct {
	t *Table
}

// CreateRowID returns the id for the next appended row.
func (h tableHooks) CreateRowID() int {
	return len(h.t.store)
}

// DeleteHook removes the id from the index, hiding the row from iteration
// before commit.
func (h tableHooks) DeleteHook(rowid int) {
	h.t.removeRowID(rowid)
}

// RestoreHook re-appends a restored id to the index.
func (h tableHooks) RestoreHook(rowid int) {
	h.t.index = append(h.t.index, rowid)
}

// UpdateHook stages a copy of the effective row with changes applied into
// the diff array, keeping id and state.
func (h tableHooks) UpdateHook(rowid int, changes Values) error {
	row := h.t.GetRow(rowid)
	if row == nil {
		return RowLookupError{RowID: rowid}
	}
	upd, err := row.clone(changes)
	if err != nil {
		return err
	}
	upd.state |= StateUpdate
	h.t.diff[rowid] = upd
	return nil
}

// RevokeHook discards the staged row at rowid.
func (h tableHooks) RevokeHook(rowid int) {
	h.t.diff[rowid] = nil
}
