package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func rawInt(v bson.RawValue) int64 {
	if i, ok := v.Int32OK(); ok {
		return int64(i)
	}
	return v.Int64()
}

func TestMongoPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.posts"
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("create assigns an id", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.Post{UserID: "u1", Title: "Rice", Category: models.CategoryFood, Status: models.PostStatusActive}
		require.NoError(mt, repo.CreatePost(context.Background(), post))
		assert.Len(mt, post.ID, 36)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		id := "5f0c3a9e-1d2b-4c3d-8e4f-a1b2c3d4e5f6"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "user_id", Value: "u1"},
			{Key: "title", Value: "Need O- urgently"},
			{Key: "category", Value: "blood"},
			{Key: "status", Value: "active"},
			{Key: "created_at", Value: base},
		}))

		post, err := repo.GetPostByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "Need O- urgently", post.Title)
		assert.Equal(mt, models.CategoryBlood, post.Category)
		assert.True(mt, base.Equal(post.CreatedAt))
	})

	mt.Run("missing post", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.GetPostByID(context.Background(), "5f0c3a9e-1d2b-4c3d-8e4f-a1b2c3d4e5f6")
		assert.ErrorIs(mt, err, apperrors.ErrPostNotFound)
	})

	mt.Run("malformed id skips the query", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)

		_, err := repo.GetPostByID(context.Background(), "not-a-uuid")
		assert.ErrorIs(mt, err, apperrors.ErrPostNotFound)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("active posts newest first", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "p2"}, {Key: "title", Value: "newer"}, {Key: "status", Value: "active"}, {Key: "created_at", Value: base.Add(time.Hour)}},
			bson.D{{Key: "_id", Value: "p1"}, {Key: "title", Value: "older"}, {Key: "status", Value: "active"}, {Key: "created_at", Value: base}},
		))

		posts, err := repo.GetActivePosts(context.Background())
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "newer", posts[0].Title)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, "active", started.Command.Lookup("filter", "status").StringValue())
		assert.EqualValues(mt, -1, rawInt(started.Command.Lookup("sort", "created_at")))
	})

	mt.Run("posts by user", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		posts, err := repo.GetPostsByUserID(context.Background(), "u1")
		require.NoError(mt, err)
		assert.Empty(mt, posts)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "u1", started.Command.Lookup("filter", "user_id").StringValue())
		assert.EqualValues(mt, -1, rawInt(started.Command.Lookup("sort", "created_at")))
	})

	mt.Run("query failure", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		_, err := repo.GetActivePosts(context.Background())
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, apperrors.ErrPostNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := repositories.NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.EnsureIndexes(context.Background()))
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "createIndexes", started.CommandName)
	})
}
