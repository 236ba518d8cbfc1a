package service

import (
	"testing"
	"time"

	"social_hub_backend/internal/repository"
	"social_hub_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupService(t *testing.T) (*GroupService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	return NewGroupService(
		repository.NewGroupRepository(gdb),
		repository.NewUserRepository(gdb),
		nil,
	), mock
}

func groupRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "created_by", "member_count", "created_at", "updated_at"}).
		AddRow(3, "Gophers", 1, 1, time.Now(), time.Now())
}

func TestJoinUnknownGroupRejected(t *testing.T) {
	s, mock := newGroupService(t)

	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := s.Join(99, 1)
	assert.ErrorIs(t, err, util.ErrGroupNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinTwiceRejected(t *testing.T) {
	s, mock := newGroupService(t)

	mock.ExpectQuery("SELECT .*").WillReturnRows(groupRows())
	// Creator 关联预加载
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// 已是成员
	mock.ExpectQuery("SELECT count.*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	err := s.Join(3, 2)
	assert.ErrorIs(t, err, util.ErrAlreadyGroupMember)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGroupPostRequiresMembership(t *testing.T) {
	s, mock := newGroupService(t)

	mock.ExpectQuery("SELECT .*").WillReturnRows(groupRows())
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	// 非成员
	mock.ExpectQuery("SELECT count.*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := s.CreateGroupPost(3, 2, PostRequest{Content: "hi"})
	assert.ErrorIs(t, err, util.ErrNotGroupMember)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGroupPostRejectsEmptyContent(t *testing.T) {
	s, mock := newGroupService(t)

	mock.ExpectQuery("SELECT .*").WillReturnRows(groupRows())
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT count.*").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := s.CreateGroupPost(3, 2, PostRequest{})
	assert.ErrorIs(t, err, util.ErrEmptyPostContent)
	require.NoError(t, mock.ExpectationsWereMet())
}
