package datastores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func contactBSON(oid primitive.ObjectID, c *Contact) bson.D {
	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "firstName", Value: c.FirstName},
		{Key: "lastName", Value: c.LastName},
		{Key: "email", Value: c.Email},
		{Key: "favoriteColor", Value: c.FavoriteColor},
		{Key: "birthday", Value: c.Birthday},
	}
}

func TestContactsMongo(t *testing.T) {
	ctx := context.Background()
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("List", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		john, jane := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, contactBSON(john, newTestContact("john"))),
			mtest.CreateCursorResponse(1, ns, mtest.NextBatch, contactBSON(jane, newTestContact("jane"))),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		contacts, err := s.List(ctx)
		require.NoError(mt, err)
		require.Len(mt, contacts, 2)
		assert.Equal(mt, ContactID(john.Hex()), contacts[0].ID)
		assert.Equal(mt, "john", contacts[0].FirstName)
		assert.Equal(mt, ContactID(jane.Hex()), contacts[1].ID)
		assert.Equal(mt, "jane@example.com", contacts[1].Email)
	})

	mt.Run("ListEmpty", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		contacts, err := s.List(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, contacts)
		assert.Empty(mt, contacts)
	})

	mt.Run("Get", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, contactBSON(oid, newTestContact("john"))))

		got, err := s.Get(ctx, ContactID(oid.Hex()))
		require.NoError(mt, err)
		want := newTestContact("john")
		want.ID = ContactID(oid.Hex())
		assert.Equal(mt, want, got)
	})

	mt.Run("GetNotFound", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := s.Get(ctx, unusedID)
		assert.ErrorIs(mt, err, ErrObjectNotFound)
	})

	mt.Run("MalformedID", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)

		// no mock responses: the driver must not be called
		for _, id := range []ContactID{malformedID, upperID} {
			_, err := s.Get(ctx, id)
			assert.ErrorIs(mt, err, ErrObjectNotFound, id)
			assert.ErrorIs(mt, s.Update(ctx, id, newTestContact("john")), ErrObjectNotFound, id)
			assert.ErrorIs(mt, s.Delete(ctx, id), ErrObjectNotFound, id)
		}
	})

	mt.Run("Create", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := s.Create(ctx, newTestContact("john"))
		require.NoError(mt, err)
		assert.True(mt, id.Valid())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("CreateFailure", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Message: "duplicate key error",
			Name:    "DuplicateKey",
		}))

		_, err := s.Create(ctx, newTestContact("john"))
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrObjectNotFound)
	})

	mt.Run("Update", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, s.Update(ctx, unusedID, newTestContact("jane")))
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
	})

	mt.Run("UpdateNotFound", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		assert.ErrorIs(mt, s.Update(ctx, unusedID, newTestContact("jane")), ErrObjectNotFound)
	})

	mt.Run("Delete", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, s.Delete(ctx, unusedID))
	})

	mt.Run("DeleteNotFound", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, s.Delete(ctx, unusedID), ErrObjectNotFound)
	})

	mt.Run("DeleteFailure", func(mt *mtest.T) {
		s := NewContactsMongo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    1,
			Message: "internal error",
		}))

		err := s.Delete(ctx, unusedID)
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrObjectNotFound)
	})
}
