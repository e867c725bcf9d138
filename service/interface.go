package service

import (
	"errors"

	"github.com/fulldump/stagedb/table"
)

var ErrorTableNotFound = errors.New("table not found")
var ErrorTableAlreadyExists = errors.New("table already exists")

type Servicer interface {
	CreateTable(name string, fields ...table.Field) (*table.Table, error)
	GetTable(name string) (*table.Table, error)
	ListTables() map[string]*table.Table
	DropTable(name string) error
}
