package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func TestAcceptWritesReciprocalEdgeInOneTransaction(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFriendshipRepository(gdb, nil)

	// 入边置为 accepted + 写入反向边，同一事务
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT .*").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if err := repo.Accept(2, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAcceptWithoutPendingRequestFails(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFriendshipRepository(gdb, nil)

	// 没有待处理入边时整个事务回滚，不会写反向边
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Accept(2, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetFriendIDsSelectsAcceptedEdgesOnly(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFriendshipRepository(gdb, nil)

	// pending/declined 边不进入好友集合
	mock.ExpectQuery("SELECT .friend_id. FROM .friends. WHERE user_id = .* AND status = .*").
		WithArgs(1, "accepted").
		WillReturnRows(sqlmock.NewRows([]string{"friend_id"}).AddRow(2).AddRow(5))

	ids, err := repo.GetFriendIDs(1)
	if err != nil {
		t.Fatalf("get friend ids: %v", err)
	}
	if len(ids) != 2 || ids[0] != 2 || ids[1] != 5 {
		t.Fatalf("unexpected friend ids: %v", ids)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteFriendshipRemovesBothEdges(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFriendshipRepository(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteFriendship(1, 2); err != nil {
		t.Fatalf("delete friendship: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeclineRequiresPendingEdge(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewFriendshipRepository(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Decline(2, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
