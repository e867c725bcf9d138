package dsv

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/fulldump/biff"

	"github.com/fulldump/stagedb/table"
)

func TestRead(t *testing.T) {
	source := strings.Join([]string{
		"name:string,age:int,score:float,active:bool",
		"Pablo,30,1.5,true",
		"Sara,33,,false",
	}, "\n")

	users, err := Read(strings.NewReader(source), ',')

	AssertNil(err)
	AssertEqual(users.Len(), 2)
	AssertEqual(users.Colnames(), []string{"name", "age", "score", "active"})

	row := users.GetRow(0)
	AssertEqual(row.Dict(), table.Values{
		"name":   "Pablo",
		"age":    30,
		"score":  1.5,
		"active": true,
	})
	AssertEqual(row.State(), table.RowState(0)) // already committed

	score, _ := users.GetRow(1).Get("score")
	AssertNil(score) // empty cell is an unset column
}

func TestRead_UntypedHeader(t *testing.T) {
	source := "id,payload\n1,x\n"

	rows, err := Read(strings.NewReader(source), ',')

	AssertNil(err)
	id, _ := rows.GetRow(0).Get("id")
	AssertEqual(id, "1") // untyped columns keep the raw cell
}

func TestRead_BadCell(t *testing.T) {
	source := "age:int\nnope\n"

	_, err := Read(strings.NewReader(source), ',')

	AssertNotNil(err)
	AssertTrue(strings.Contains(err.Error(), "column 'age'"))
}

func TestRead_BadKind(t *testing.T) {
	_, err := Read(strings.NewReader("age:decimal\n"), ',')

	AssertNotNil(err)
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), ',')

	AssertNotNil(err)
}

func TestWrite_Roundtrip(t *testing.T) {
	users, _ := table.New(
		table.Field{Name: "name", Kind: table.String},
		table.Field{Name: "age", Kind: table.Int},
	)
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.Commit()
	users.DeleteRow(0)

	buffer := &bytes.Buffer{}
	err := Write(users, buffer, ',')
	AssertNil(err)

	// Only visible rows are exported
	back, err := Read(buffer, ',')
	AssertNil(err)
	AssertEqual(back.Len(), 1)
	name, _ := back.GetRow(0).Get("name")
	AssertEqual(name, "Sara")
}

func TestSaveLoad(t *testing.T) {
	users, _ := table.New(table.Field{Name: "name", Kind: table.String})
	users.AppendRow("Pablo")
	users.Commit()

	filename := t.TempDir() + "/users.csv"
	AssertNil(Save(users, filename))

	back, err := Load(filename)
	AssertNil(err)
	AssertEqual(back.Len(), 1)
}
