package apitablev1

import (
	"errors"
	"sync"

	"github.com/fulldump/stagedb/table"
)

var ErrorCursorNotFound = errors.New("cursor not found")

// CursorRegistry holds the open server-side cursors, addressed by UUID.
type CursorRegistry struct {
	mutex   sync.Mutex
	cursors map[string]*table.Cursor
}

func NewCursorRegistry() *CursorRegistry {
	return &CursorRegistry{
		cursors: map[string]*table.Cursor{},
	}
}

func (c *CursorRegistry) Put(id string, cur *table.Cursor) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cursors[id] = cur
}

func (c *CursorRegistry) Get(id string) (*table.Cursor, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	cur, exists := c.cursors[id]
	if !exists {
		return nil, ErrorCursorNotFound
	}
	return cur, nil
}

func (c *CursorRegistry) Delete(id string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if _, exists := c.cursors[id]; !exists {
		return ErrorCursorNotFound
	}
	delete(c.cursors, id)
	return nil
}
