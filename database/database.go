package database

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fulldump/stagedb/dsv"
	"github.com/fulldump/stagedb/table"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	// Dir is scanned on Load: every *.csv file is ingested as a table named
	// after its base name. Tables live in memory, nothing is written back.
	Dir string
}

// Database is a named-table registry with a load/operate/close lifecycle.
type Database struct {
	config *Config
	status string
	Tables map[string]*table.Table
	exit   chan struct{}
}

func NewDatabase(config *Config) *Database {
	return &Database{
		config: config,
		status: StatusOpening,
		Tables: map[string]*table.Table{},
		exit:   make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	return db.status
}

// CreateTable registers an empty table with the given schema.
func (db *Database) CreateTable(name string, fields ...table.Field) (*table.Table, error) {
	if _, exists := db.Tables[name]; exists {
		return nil, fmt.Errorf("table '%s' already exists", name)
	}

	t, err := table.New(fields...)
	if err != nil {
		return nil, err
	}

	db.Tables[name] = t

	return t, nil
}

// DropTable unregisters the table. Its rows are gone with it.
func (db *Database) DropTable(name string) error {
	if _, exists := db.Tables[name]; !exists {
		return fmt.Errorf("table '%s' not found", name)
	}

	delete(db.Tables, name)

	return nil
}

// Load ingests the configured data directory.
func (db *Database) Load() error {
	dir := db.config.Dir
	if dir == "" {
		db.status = StatusOperating
		return nil
	}

	log.Printf("Loading database %s...", dir)
	err := filepath.WalkDir(dir, func(filename string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(filename, ".csv") {
			return nil
		}

		name := strings.TrimSuffix(filepath.Base(filename), ".csv")

		t0 := time.Now()
		t, err := dsv.Load(filename)
		if err != nil {
			log.Printf("ERROR: load table '%s': %s", filename, err.Error())
			return err
		}
		log.Println(name, t.Len(), time.Since(t0))

		db.Tables[name] = t

		return nil
	})

	if err != nil {
		db.status = StatusClosing
		return err
	}

	db.status = StatusOperating

	return nil
}

func (db *Database) Start() error {

	go db.Load()

	<-db.exit

	return nil
}

func (db *Database) Stop() error {

	defer close(db.exit)

	db.status = StatusClosing

	return nil
}
