package database

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/stagedb/table"
)

func TestDatabase_CreateAndDrop(t *testing.T) {
	db := NewDatabase(&Config{})

	_, err := db.CreateTable("users", table.Field{Name: "name", Kind: table.String})
	AssertNil(err)

	_, err = db.CreateTable("users", table.Field{Name: "name", Kind: table.String})
	AssertNotNil(err)

	AssertNil(db.DropTable("users"))
	AssertNotNil(db.DropTable("users"))
}

func TestDatabase_Load(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "users.csv")
	os.WriteFile(filename, []byte("name:string,age:int\nPablo,30\n"), 0666)

	db := NewDatabase(&Config{Dir: dir})

	AssertNil(db.Load())
	AssertEqual(db.GetStatus(), StatusOperating)

	users, exists := db.Tables["users"]
	AssertTrue(exists)
	AssertEqual(users.Len(), 1)
}

func TestDatabase_LoadEmptyDir(t *testing.T) {
	db := NewDatabase(&Config{})

	AssertNil(db.Load())
	AssertEqual(db.GetStatus(), StatusOperating)
}
