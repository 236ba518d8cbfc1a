package service

import (
	"testing"
	"time"

	"social_hub_backend/internal/model"
	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	s := &PostService{}

	_, err := s.CreatePost(1, PostRequest{Content: "   "})
	assert.ErrorIs(t, err, util.ErrEmptyPostContent)

	_, err = s.CreatePost(1, PostRequest{})
	assert.ErrorIs(t, err, util.ErrEmptyPostContent)
}

func username(s string) *string { return &s }

func TestAssemblePostViewsAggregatesLikesAndComments(t *testing.T) {
	u1 := model.User{BaseModel: model.BaseModel{ID: 1}, Email: "u1@example.com", Username: username("u1")}
	u2 := model.User{BaseModel: model.BaseModel{ID: 2}, Email: "u2@example.com", Username: username("u2")}

	// u1 发帖，u2 点赞并评论
	posts := []model.Post{
		{BaseModel: model.BaseModel{ID: 10}, AuthorID: 1, Author: u1, Content: "hello", LikesCount: 1, CommentsCount: 1},
	}
	likes := []model.PostLike{
		{ID: 1, UserID: 2, User: u2, PostID: 10},
	}
	comments := []model.PostComment{
		{BaseModel: model.BaseModel{ID: 1}, UserID: 2, User: u2, PostID: 10, Content: "nice"},
	}

	// 以 u2 的视角
	views := assemblePostViews(posts, likes, comments, []uint{10})
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, uint(10), v.ID)
	assert.Equal(t, "u1", v.Author)
	assert.Equal(t, 1, v.LikesCount)
	assert.True(t, v.IsLiked)
	require.Len(t, v.Likes, 1)
	assert.Equal(t, "u2", v.Likes[0].User)
	require.Len(t, v.Comments, 1)
	assert.Equal(t, "nice", v.Comments[0].Content)

	// 以 u1 的视角：计数相同，但未点赞
	views = assemblePostViews(posts, likes, comments, nil)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].LikesCount)
	assert.False(t, views[0].IsLiked)
}

func TestAssemblePostViewsReturnsEmptySlicesNotNil(t *testing.T) {
	posts := []model.Post{
		{BaseModel: model.BaseModel{ID: 10}, AuthorID: 1, Author: model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@b.c"}},
	}

	views := assemblePostViews(posts, nil, nil, nil)
	require.Len(t, views, 1)
	assert.NotNil(t, views[0].Likes)
	assert.NotNil(t, views[0].Comments)
	assert.Empty(t, views[0].Likes)
	assert.Empty(t, views[0].Comments)
}

func TestGetFeedSpansSelfAndAcceptedFriends(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewPostService(
		repository.NewPostRepository(gdb),
		repository.NewFriendshipRepository(gdb, nil),
		repository.NewUserRepository(gdb),
		nil,
	)

	// 好友集合只来自 accepted 边
	mock.ExpectQuery("SELECT .friend_id. FROM .friends. WHERE user_id = .* AND status = .*").
		WithArgs(1, "accepted").
		WillReturnRows(sqlmock.NewRows([]string{"friend_id"}).AddRow(2))

	// 动态查询覆盖 好友∪自己，按时间倒序
	postRows := sqlmock.NewRows([]string{"id", "author_id", "content", "likes_count", "created_at", "updated_at"}).
		AddRow(11, 2, "from friend", 1, time.Now(), time.Now()).
		AddRow(10, 1, "from self", 0, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT .* FROM .posts. WHERE author_id IN .* ORDER BY created_at DESC").
		WithArgs(2, 1, 20).
		WillReturnRows(postRows)
	mock.ExpectQuery("SELECT .* FROM .users..*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(2, "u2@example.com").AddRow(1, "u1@example.com"))

	// 批量取点赞/评论/本人点赞集合
	mock.ExpectQuery("SELECT .* FROM .post_likes..*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM .post_comments..*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .post_id. FROM .post_likes..*").
		WillReturnRows(sqlmock.NewRows([]string{"post_id"}).AddRow(11))

	views, err := s.GetFeed(1, 20, 0)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, uint(11), views[0].ID)
	assert.Equal(t, "u2@example.com", views[0].Author)
	assert.True(t, views[0].IsLiked)
	assert.Equal(t, uint(10), views[1].ID)
	assert.False(t, views[1].IsLiked)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserPostsReturnsTotalForPagination(t *testing.T) {
	gdb, mock := newMockDB(t)
	s := NewPostService(
		repository.NewPostRepository(gdb),
		repository.NewFriendshipRepository(gdb, nil),
		repository.NewUserRepository(gdb),
		nil,
	)

	mock.ExpectQuery("SELECT count.*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT .* FROM .posts. WHERE author_id IN .* ORDER BY created_at DESC").
		WithArgs(3, 20).
		WillReturnRows(postRowSet())
	mock.ExpectQuery("SELECT .* FROM .users..*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(3, "u3@example.com"))
	mock.ExpectQuery("SELECT .* FROM .post_likes..*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .* FROM .post_comments..*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT .post_id. FROM .post_likes..*").WillReturnRows(sqlmock.NewRows([]string{"post_id"}))

	views, total, err := s.GetUserPosts(3, 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	require.Len(t, views, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func postRowSet() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "author_id", "content", "created_at", "updated_at"}).
		AddRow(20, 3, "hello", time.Now(), time.Now())
}

func TestDisplayNameFallbacks(t *testing.T) {
	withUsername := model.User{Email: "a@b.c", Username: username("coder"), FirstName: "三", LastName: "张"}
	assert.Equal(t, "coder", withUsername.DisplayName())

	withNames := model.User{Email: "a@b.c", FirstName: "San", LastName: "Zhang"}
	assert.Equal(t, "San Zhang", withNames.DisplayName())

	bare := model.User{Email: "a@b.c"}
	assert.Equal(t, "a@b.c", bare.DisplayName())
}
