package table

import (
	"math/rand"
	"sort"
	"strings"
)

// Predicate decides whether a row belongs to a cursor's result set.
type Predicate func(*Record) bool

// Mapper projects a record into the row shape returned by the cursor.
type Mapper func(*Record) any

// Mode is the cursor mode bitmask. The traversal axis (forward-only,
// scrollable, random) and the operation axis (dynamic, indexed, buffered)
// are independent. The zero mode is a forward-only dynamic cursor.
type Mode uint8

const (
	ModeBuffered   Mode = 1 << iota // 1
	ModeIndexed                     // 2
	ModeScrollable                  // 4
	ModeRandom                      // 8
)

// String returns the space separated mode name, traversal type first:
// "dynamic", "indexed", "random static", "scrollable indexed", ...
func (m Mode) String() string {
	tokens := []string{}
	if m&ModeRandom != 0 {
		tokens = append(tokens, "random")
	} else if m&ModeScrollable != 0 {
		tokens = append(tokens, "scrollable")
	}
	if m&ModeBuffered != 0 {
		tokens = append(tokens, "static")
	} else if m&ModeIndexed != 0 {
		tokens = append(tokens, "indexed")
	} else {
		tokens = append(tokens, "dynamic")
	}
	return strings.Join(tokens, " ")
}

// ParseMode reads a space separated mode name. Traversal tokens are
// "forward-only" (default), "scrollable" and "random"; operation tokens are
// "dynamic" (default), "indexed" and "static" (or "buffered"). The empty
// string is the default forward-only dynamic mode.
func ParseMode(name string) (Mode, error) {
	var mode Mode
	for _, token := range strings.Fields(strings.ToLower(name)) {
		switch token {
		case "forward-only", "dynamic":
			// default axes, no bit
		case "scrollable":
			mode |= ModeScrollable
		case "random":
			mode |= ModeRandom
		case "indexed":
			mode |= ModeIndexed
		case "static", "buffered":
			mode |= ModeBuffered | ModeIndexed
		default:
			return 0, CursorModeError{Mode: name}
		}
	}
	return mode, nil
}

// CursorOptions configures a cursor built by Table.NewCursor.
type CursorOptions struct {
	Predicate Predicate
	Mapper    Mapper
	Mode      Mode
	Batchsize int    // rows per Fetch, defaults to 1
	OrderBy   string // column to sort by, buffered cursors only
	Reverse   bool   // descending order
}

// Cursor traverses the visible rows of a table. Dynamic cursors observe
// every table mutation immediately, indexed cursors capture the id list at
// creation time, buffered (static) cursors additionally materialize the
// matching rows and are immune to any later mutation.
type Cursor struct {
	// Batchsize is the default number of rows fetched by Fetch. It can be
	// adapted during the lifetime of the cursor.
	Batchsize int

	mode      Mode
	table     *Table
	predicate Predicate
	mapper    Mapper
	index     []int // id snapshot, indexed and buffered modes
	buffer    []any // materialized rows, buffered mode
	pos       int
}

func newCursor(t *Table, opts CursorOptions) (*Cursor, error) {
	mode := opts.Mode
	if mode&ModeBuffered != 0 {
		mode |= ModeIndexed
	}

	c := &Cursor{
		Batchsize: opts.Batchsize,
		mode:      mode,
		table:     t,
		predicate: opts.Predicate,
		mapper:    opts.Mapper,
	}
	if c.Batchsize <= 0 {
		c.Batchsize = 1
	}

	if opts.OrderBy != "" && mode&ModeBuffered == 0 {
		return nil, CursorModeError{Mode: mode.String(), Operation: "sorting rows"}
	}

	if mode&ModeIndexed != 0 {
		c.index = make([]int, len(t.index))
		copy(c.index, t.index)
	}
	if mode&ModeBuffered != 0 {
		if err := c.fill(opts.OrderBy, opts.Reverse); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// fill materializes the buffer by draining an inner dynamic cursor over the
// id snapshot, sorting the matches if requested, and applying the mapper.
func (c *Cursor) fill(orderBy string, reverse bool) error {
	inner := &Cursor{
		Batchsize: 1,
		table:     c.table,
		predicate: c.predicate,
		index:     c.index,
		mode:      ModeIndexed,
	}
	rows := []*Record{}
	if err := eachRecord(inner, func(row *Record) error {
		rows = append(rows, row)
		return nil
	}); err != nil {
		return err
	}

	if orderBy != "" {
		pos, exists := c.table.schema.byName[orderBy]
		if !exists {
			return ColumnLookupError{Column: orderBy}
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if reverse {
				i, j = j, i
			}
			return lessValue(rows[i].values[pos], rows[j].values[pos])
		})
	}

	c.buffer = make([]any, 0, len(rows))
	for _, row := range rows {
		if c.mapper != nil {
			c.buffer = append(c.buffer, c.mapper(row))
		} else {
			c.buffer = append(c.buffer, row)
		}
	}
	return nil
}

// Mode returns the cursor mode.
func (c *Cursor) Mode() Mode {
	return c.mode
}

// Reset rewinds the traversal to the beginning without rebuilding the id
// snapshot or the buffer.
func (c *Cursor) Reset() {
	c.pos = 0
}

// Next returns the next row matching the predicate, mapped if a mapper is
// set. It returns ErrExhausted at the end of the traversal. Random cursors
// draw a fresh position on every call, without uniqueness or termination
// guarantees.
func (c *Cursor) Next() (any, error) {
	if c.mode&ModeBuffered != 0 {
		return c.nextFromBuffer()
	}
	return c.nextFromIndex()
}

func (c *Cursor) nextFromBuffer() (any, error) {
	if c.mode&ModeRandom != 0 {
		if len(c.buffer) == 0 {
			return nil, ErrExhausted
		}
		return c.buffer[rand.Intn(len(c.buffer))], nil
	}
	if c.pos >= len(c.buffer) {
		return nil, ErrExhausted
	}
	row := c.buffer[c.pos]
	c.pos++
	return row, nil
}

func (c *Cursor) nextFromIndex() (any, error) {
	for {
		index := c.currentIndex()
		var rowid int
		if c.mode&ModeRandom != 0 {
			if len(index) == 0 {
				return nil, ErrExhausted
			}
			rowid = index[rand.Intn(len(index))]
		} else {
			if c.pos >= len(index) {
				return nil, ErrExhausted
			}
			rowid = index[c.pos]
			c.pos++
		}
		row := c.table.GetRow(rowid)
		if row == nil {
			// Tombstoned or revoked slot still referenced by the snapshot.
			continue
		}
		if c.predicate != nil && !c.predicate(row) {
			continue
		}
		if c.mapper != nil {
			return c.mapper(row), nil
		}
		return row, nil
	}
}

// currentIndex is the id list the cursor traverses: the private snapshot for
// indexed cursors, the live table index for dynamic ones.
func (c *Cursor) currentIndex() []int {
	if c.mode&ModeIndexed != 0 {
		return c.index
	}
	return c.table.index
}

// Fetch returns up to size rows. A zero size fetches all remaining rows,
// which random cursors reject with CursorModeError since they never exhaust.
// A negative size fetches Batchsize rows.
func (c *Cursor) Fetch(size int) ([]any, error) {
	if size < 0 {
		size = c.Batchsize
	}
	if size == 0 && c.mode&ModeRandom != 0 {
		return nil, CursorModeError{Mode: c.mode.String(), Operation: "fetching all rows"}
	}
	results := []any{}
	for {
		row, err := c.Next()
		if err == ErrExhausted {
			return results, nil
		}
		if err != nil {
			return results, err
		}
		results = append(results, row)
		if 0 < size && size <= len(results) {
			return results, nil
		}
	}
}

// RowCount returns the number of rows in the result set. It is undefined
// for random cursors, and for filtered cursors that are not buffered, since
// counting matches requires materialization.
func (c *Cursor) RowCount() (int, error) {
	if c.mode&ModeRandom != 0 {
		return 0, CursorModeError{Mode: c.mode.String(), Operation: "counting rows"}
	}
	if c.mode&ModeBuffered != 0 {
		return len(c.buffer), nil
	}
	if c.predicate != nil {
		return 0, CursorModeError{Mode: c.mode.String(), Operation: "counting filtered rows"}
	}
	return len(c.currentIndex()), nil
}

// lessValue orders two column values of the same kind. Nil sorts first.
func lessValue(a, b any) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av < bv
	case int:
		bv, ok := b.(int)
		return ok && av < bv
	case int64:
		bv, ok := b.(int64)
		return ok && av < bv
	case float64:
		bv, ok := b.(float64)
		return ok && av < bv
	case bool:
		bv, ok := b.(bool)
		return ok && !av && bv
	}
	return false
}
