package table

import (
	"errors"
	"testing"

	. "github.com/fulldump/biff"
)

func newUsersTable() *Table {
	t, err := New(
		Field{Name: "name", Kind: String},
		Field{Name: "age", Kind: Int},
	)
	AssertNil(err)
	return t
}

func TestNew_DuplicatedField(t *testing.T) {
	_, err := New(
		Field{Name: "name", Kind: String},
		Field{Name: "name", Kind: String},
	)
	AssertNotNil(err)
	AssertTrue(errors.Is(err, ErrTable))
}

func TestAppendRow_StagesIntoDiff(t *testing.T) {
	users := newUsersTable()

	err := users.AppendRow("Pablo", 30)

	// Appended rows live in diff, flagged CREATE, until commit
	AssertNil(err)
	AssertNil(users.store[0])
	AssertNotNil(users.diff[0])
	AssertEqual(users.diff[0].State(), StateCreate)
	AssertEqual(users.index, []int{0})
}

func TestAppendRow_TypeMismatch(t *testing.T) {
	users := newUsersTable()

	err := users.AppendRow("Pablo", "thirty")

	mismatch := TypeMismatchError{}
	AssertTrue(errors.As(err, &mismatch))
	AssertEqual(mismatch.Field, "age")
	AssertEqual(users.Len(), 0)
}

func TestAppendRow_WrongArity(t *testing.T) {
	users := newUsersTable()

	err := users.AppendRow("Pablo")

	AssertNotNil(err)
	AssertTrue(errors.Is(err, ErrTable))
}

func TestDeleteRow_ImmediateInvisibility(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.Commit()

	err := users.DeleteRow(0)

	// The row disappears from iteration before commit
	AssertNil(err)
	rows, _ := users.Rows(nil, 0).Fetch(0)
	AssertEqual(len(rows), 1)
	AssertEqual(rows[0].(*Record).ID(), 1)
	// The data is still there
	AssertNotNil(users.GetRow(0))
	AssertEqual(users.GetRow(0).State()&StateDelete, StateDelete)
}

func TestDeleteRow_NotFound(t *testing.T) {
	users := newUsersTable()

	err := users.DeleteRow(7)

	lookup := RowLookupError{}
	AssertTrue(errors.As(err, &lookup))
	AssertEqual(lookup.RowID, 7)
}

func TestRestoreRow_Reversibility(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.Commit()

	users.DeleteRow(0)
	err := users.RestoreRow(0)

	AssertNil(err)
	AssertEqual(users.GetRow(0).State()&StateDelete, RowState(0))
	AssertEqual(users.Len(), 2)
	rows, _ := users.Rows(nil, 0).Fetch(0)
	AssertEqual(len(rows), 2)
}

func TestUpdateRow_RevokeRoundtrip(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.Commit()

	users.UpdateRow(0, Values{"age": 31})
	age, _ := users.GetRow(0).Get("age")
	AssertEqual(age, 31)

	users.RevokeRow(0)

	age, _ = users.GetRow(0).Get("age")
	AssertEqual(age, 30)
	AssertEqual(users.GetRow(0).State(), RowState(0))
}

func TestUpdateRow_MergesPendingChanges(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.Commit()

	users.UpdateRow(0, Values{"age": 31})
	users.UpdateRow(0, Values{"name": "Pablo II"})

	// Second update is applied on top of the staged row
	row := users.GetRow(0)
	name, _ := row.Get("name")
	age, _ := row.Get("age")
	AssertEqual(name, "Pablo II")
	AssertEqual(age, 31)
	AssertEqual(row.State(), StateUpdate)
}

func TestUpdateRow_UnknownColumn(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)

	err := users.UpdateRow(0, Values{"salary": 1000})

	lookup := ColumnLookupError{}
	AssertTrue(errors.As(err, &lookup))
	AssertEqual(lookup.Column, "salary")
	// Nothing was staged on top of the CREATE row
	name, _ := users.GetRow(0).Get("name")
	AssertEqual(name, "Pablo")
	AssertEqual(users.GetRow(0).State(), StateCreate)
}

func TestCommit_Finalizes(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.AppendRow("Fulanez", 19)
	users.DeleteRow(1)

	users.Commit()

	for rowid := range users.store {
		AssertNil(users.diff[rowid])
	}
	AssertNil(users.store[1])
	AssertEqual(users.GetRow(0).State(), RowState(0))
	AssertEqual(users.GetRow(2).State(), RowState(0))
	AssertEqual(users.index, []int{0, 2})
}

func TestRollback_DiscardsCreatesKeepsCommits(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.AppendRow("Fulanez", 19)
	users.Commit()

	users.AppendRow("Intruso", 99)
	users.Rollback()

	AssertEqual(users.Len(), 3)
	AssertEqual(users.index, []int{0, 1, 2})
	AssertNil(users.GetRow(3))
	// The abandoned slot is reclaimed by Pack
	users.Pack()
	AssertEqual(len(users.store), 3)
}

func TestRollback_UndoesPendingDeletes(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.AppendRow("Sara", 33)
	users.Commit()

	users.DeleteRow(0)
	AssertEqual(users.Len(), 1)

	users.Rollback()

	// The pending delete is undone and the id is back in the index
	AssertEqual(users.Len(), 2)
	AssertEqual(users.GetRow(0).State(), RowState(0))
	rows, _ := users.Rows(nil, 0).Fetch(0)
	AssertEqual(len(rows), 2)
}

func TestRollback_DiscardsPendingUpdates(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.Commit()

	users.UpdateRow(0, Values{"age": 44})
	users.Rollback()

	age, _ := users.GetRow(0).Get("age")
	AssertEqual(age, 30)
	AssertEqual(users.GetRow(0).State(), RowState(0))
}

func TestPack_Compaction(t *testing.T) {
	users := newUsersTable()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		users.AppendRow(name, 1)
	}
	users.DeleteRow(1)
	users.DeleteRow(3)
	users.Commit()

	users.Pack()

	AssertEqual(len(users.store), 3)
	AssertEqual(len(users.diff), 3)
	AssertEqual(users.index, []int{0, 1, 2})
	for rowid, row := range users.store {
		AssertEqual(row.ID(), rowid)
	}
	names := []string{}
	for _, row := range users.store {
		name, _ := row.Get("name")
		names = append(names, name.(string))
	}
	AssertEqual(names, []string{"a", "c", "e"})
}

func TestDeleteRows_Predicate(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("x", 1)
	users.AppendRow("y", 2)
	users.AppendRow("y", 3)
	users.Commit()

	err := users.DeleteRows(func(row *Record) bool {
		name, _ := row.Get("name")
		return name == "y"
	})

	AssertNil(err)
	rows, _ := users.Rows(nil, 0).Fetch(0)
	AssertEqual(len(rows), 1)
	name, _ := rows[0].(*Record).Get("name")
	AssertEqual(name, "x")

	users.Commit()
	users.Pack()

	AssertEqual(len(users.store), 1)
	AssertEqual(users.store[0].ID(), 0)
	AssertEqual(users.index, []int{0})
}

func TestUpdateRows_All(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("x", 1)
	users.AppendRow("y", 2)

	err := users.UpdateRows(nil, Values{"age": 0})

	AssertNil(err)
	cur := users.Rows(nil, 0)
	for {
		row, err := cur.Next()
		if err == ErrExhausted {
			break
		}
		age, _ := row.(*Record).Get("age")
		AssertEqual(age, 0)
	}
}

func TestSelect_ProjectionFormats(t *testing.T) {
	users := newUsersTable()
	users.AppendRow("Pablo", 30)
	users.Commit()

	tuples, err := users.Select([]string{"age", "name"}, nil, Tuple, 0)
	AssertNil(err)
	rows, _ := tuples.Fetch(0)
	AssertEqual(rows[0], []any{30, "Pablo"})

	dicts, err := users.Select(nil, nil, Dict, 0)
	AssertNil(err)
	rows, _ = dicts.Fetch(0)
	AssertEqual(rows[0], Values{"name": "Pablo", "age": 30})
}

func TestSelect_UnknownColumn(t *testing.T) {
	users := newUsersTable()

	_, err := users.Select([]string{"salary"}, nil, Tuple, 0)

	lookup := ColumnLookupError{}
	AssertTrue(errors.As(err, &lookup))
	AssertEqual(lookup.Column, "salary")
}

func TestColnames(t *testing.T) {
	users := newUsersTable()

	AssertEqual(users.Colnames(), []string{"name", "age"})
	AssertEqual(len(users.Fields()), 2)
}
