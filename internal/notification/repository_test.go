package notification

import (
	"context"
	"testing"
	"time"

	"SmartCampus/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// normalize round-trips a filter through BSON so maps compare regardless of
// their Go types.
func normalize(t testing.TB, doc interface{}) bson.M {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var out bson.M
	require.NoError(t, bson.Unmarshal(raw, &out))
	return out
}

func TestMongoRepository_Commands(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	caller := Caller{ID: primitive.NewObjectID(), Role: auth.RoleTeacher}
	v, err := VisibleTo(caller)
	require.NoError(t, err)

	mt.Run("find visible", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "campus.notifications", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "recipientType", Value: "all_teachers"},
			{Key: "title", Value: "Exam routine"},
			{Key: "isRead", Value: false},
			{Key: "createdAt", Value: time.Now()},
		}))

		got, err := NewMongoRepository(mt.DB).FindVisible(context.Background(), v, PageSize)
		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, id, got[0].ID)
		assert.Equal(mt, RecipientAllTeachers, got[0].RecipientType)

		evt := mt.GetStartedEvent()
		require.Equal(mt, "find", evt.CommandName)
		assert.Equal(mt, normalize(mt, v.Filter()), normalize(mt, evt.Command.Lookup("filter").Document()))
		assert.EqualValues(mt, PageSize, evt.Command.Lookup("limit").AsInt64())
		assert.EqualValues(mt, -1, evt.Command.Lookup("sort", "createdAt").AsInt64())
	})

	mt.Run("mark all read", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 3}))

		n, err := NewMongoRepository(mt.DB).MarkAllRead(context.Background(), v.IncludingOwn())
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, n)

		evt := mt.GetStartedEvent()
		require.Equal(mt, "update", evt.CommandName)
		stmt := evt.Command.Lookup("updates").Array().Index(0).Value().Document()
		filter := normalize(mt, stmt.Lookup("q").Document())
		assert.Equal(mt, false, filter["isRead"])
		assert.NotContains(mt, filter, "senderId")
		assert.True(mt, stmt.Lookup("multi").Boolean())
	})

	mt.Run("mark read missing", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := NewMongoRepository(mt.DB).MarkRead(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
