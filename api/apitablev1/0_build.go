package apitablev1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/stagedb/service"
)

func BuildV1Table(v1 *box.R, s service.Servicer) *box.R {

	tables := v1.Resource("/tables").
		WithActions(
			box.Get(listTables),
			box.Post(createTable),
		)

	v1.Resource("/tables/{tableName}").
		WithActions(
			box.Get(getTable),
			box.ActionPost(insert),
			box.ActionPost(find),
			box.ActionPost(update),
			box.ActionPost(remove),
			box.ActionPost(restoreRow),
			box.ActionPost(revokeRow),
			box.ActionPost(commit),
			box.ActionPost(rollback),
			box.ActionPost(pack),
			box.ActionPost(size),
			box.ActionPost(dropTable),
			box.ActionPost(createCursor),
			box.ActionPost(fetchCursor),
			box.ActionPost(countCursor),
			box.ActionPost(resetCursor),
			box.ActionPost(closeCursor),
		)

	return tables
}
