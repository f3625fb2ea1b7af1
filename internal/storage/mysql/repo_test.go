package mysql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"reviewpulse/internal/domain"
)

func TestInsertRows_BatchWithOffsets(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO snapshot_rows (snapshot_id, pos, doc)")).
		WithArgs(
			"snap-1", 10, `{"Name":"Ana"}`,
			"snap-1", 11, `{"Name":"Omar"}`,
		).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := New(db)
	err = repo.InsertRows(context.Background(), "snap-1", 10, []domain.RawRow{
		{domain.ColName: "Ana"},
		{domain.ColName: "Omar"},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsertRows_EmptyBatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := New(db)
	if err := repo.InsertRows(context.Background(), "snap-1", 0, nil); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPromoteSnapshot_UnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE snapshots SET promoted_at").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := New(db)
	if err := repo.PromoteSnapshot(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown snapshot")
	}
}

func TestLatestSnapshot_OrderAndDecode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow(`{"id":"1"}`).
		AddRow(`{"id":"2"}`)
	mock.ExpectQuery("SELECT r.doc").WillReturnRows(rows)

	repo := New(db)
	got, err := repo.LatestSnapshot(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(got) != 2 || got[0][domain.ColID] != "1" || got[1][domain.ColID] != "2" {
		t.Fatalf("rows: %+v", got)
	}
}

func TestLatestSnapshot_NonePromoted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT r.doc").WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	repo := New(db)
	if _, err := repo.LatestSnapshot(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("want ErrNoSnapshot, got %v", err)
	}
}
