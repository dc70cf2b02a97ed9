package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpdateFor(t *testing.T) {
	room := &Room{Number: "101", Type: "Lab", Capacity: 40, Location: "Main Building"}

	update := updateFor(room)
	assert.Equal(t, bson.M{"department": ""}, update["$unset"])
	assert.NotContains(t, update["$set"], "department")

	room.Department = "Computer"
	update = updateFor(room)
	assert.NotContains(t, update, "$unset")
	assert.Equal(t, "Computer", update["$set"].(bson.M)["department"])
}

func TestMongoRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	room := &Room{ID: primitive.NewObjectID(), Number: "101", Type: "Lab", Capacity: 40, Location: "Main Building"}

	mt.Run("unsets empty department", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))
		require.NoError(mt, NewMongoRepository(mt.DB).Update(context.Background(), room))

		evt := mt.GetStartedEvent()
		require.Equal(mt, "update", evt.CommandName)
		u := evt.Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u").Document()
		_, err := u.LookupErr("$unset", "department")
		assert.NoError(mt, err)
		_, err = u.LookupErr("$set", "department")
		assert.Error(mt, err)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))
		assert.ErrorIs(mt, NewMongoRepository(mt.DB).Update(context.Background(), room), ErrNotFound)
	})

	mt.Run("duplicate number", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		assert.ErrorIs(mt, NewMongoRepository(mt.DB).Update(context.Background(), room), ErrDuplicate)
	})
}
