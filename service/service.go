package service

import (
	"github.com/fulldump/stagedb/database"
	"github.com/fulldump/stagedb/table"
)

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateTable(name string, fields ...table.Field) (*table.Table, error) {
	if _, exists := s.db.Tables[name]; exists {
		return nil, ErrorTableAlreadyExists
	}

	return s.db.CreateTable(name, fields...)
}

func (s *Service) GetTable(name string) (*table.Table, error) {
	t, exists := s.db.Tables[name]
	if !exists {
		return nil, ErrorTableNotFound
	}

	return t, nil
}

func (s *Service) ListTables() map[string]*table.Table {
	return s.db.Tables
}

func (s *Service) DropTable(name string) error {
	if _, exists := s.db.Tables[name]; !exists {
		return ErrorTableNotFound
	}

	return s.db.DropTable(name)
}
