package repository

import (
	"testing"
	"time"

	"social_hub_backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

func TestLikeCreatesRowAndIncrementsCounter(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	// 尚无点赞记录
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// 插入点赞和计数更新在同一事务内
	mock.ExpectBegin()
	mock.ExpectExec("INSERT .*").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.Like(7, 42)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !created {
		t.Fatal("expected a new like to be created")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLikeIsIdempotent(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	// 已存在点赞记录，不应产生任何写操作
	mock.ExpectQuery("SELECT .*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "post_id"}).AddRow(1, 7, 42))

	created, err := repo.Like(7, 42)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if created {
		t.Fatal("repeated like must not create a new row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestLikeTreatsDuplicateKeyAsNoOp(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	// 两个并发请求都通过了存在性检查，落败方的插入撞唯一索引
	mock.ExpectQuery("SELECT .*").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT .*").WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry"})
	mock.ExpectRollback()

	created, err := repo.Like(7, 42)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if created {
		t.Fatal("duplicate-key insert must be reported as no new like")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByAuthorsFiltersAuthorSetNewestFirst(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	postRows := sqlmock.NewRows([]string{"id", "author_id", "content", "created_at", "updated_at"}).
		AddRow(11, 2, "newer", time.Now(), time.Now()).
		AddRow(10, 1, "older", time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))

	// 语句必须按作者集合过滤并按发布时间倒序
	mock.ExpectQuery("SELECT .* FROM .posts. WHERE author_id IN .* ORDER BY created_at DESC").
		WithArgs(1, 2, 20).
		WillReturnRows(postRows)
	// Author 关联预加载
	mock.ExpectQuery("SELECT .* FROM .users..*").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "u1@example.com").AddRow(2, "u2@example.com"))

	posts, err := repo.FindByAuthors([]uint{1, 2}, 20, 0)
	if err != nil {
		t.Fatalf("find by authors: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindByAuthorsWithoutAuthorsSkipsQuery(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	posts, err := repo.FindByAuthors(nil, 20, 0)
	if err != nil {
		t.Fatalf("find by authors: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(posts))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnlikeDeletesRowAndDecrementsCounter(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Unlike(7, 42); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUnlikeWithoutLikeLeavesCounterAlone(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	// 删除影响0行时不执行计数更新
	mock.ExpectBegin()
	mock.ExpectExec("DELETE .*").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Unlike(7, 42); err != nil {
		t.Fatalf("unlike: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAddCommentIncrementsCounterInTransaction(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT .*").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE .*").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	comment := &model.PostComment{UserID: 5, PostID: 42, Content: "不错"}
	if err := repo.AddComment(comment); err != nil {
		t.Fatalf("add comment: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
