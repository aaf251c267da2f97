package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// updated is the server reply to an update statement that matched n documents.
func updated(n int32) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

// updateStatement is the first statement of an update command as the server saw it.
type updateStatement struct {
	filter bson.M
	update bson.M
	multi  bool
}

// nextUpdate pops the next started command, which must be an update on coll.
func nextUpdate(mt *mtest.T, coll string) updateStatement {
	mt.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt, "no command was sent")
	require.Equal(mt, "update", evt.CommandName)
	require.Equal(mt, coll, evt.Command.Lookup("update").StringValue())

	stmt := evt.Command.Lookup("updates", "0").Document()
	var out updateStatement
	require.NoError(mt, bson.Unmarshal(stmt.Lookup("q").Document(), &out.filter))
	require.NoError(mt, bson.Unmarshal(stmt.Lookup("u").Document(), &out.update))
	if v, err := stmt.LookupErr("multi"); err == nil {
		out.multi = v.Boolean()
	}
	return out
}
