package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	mock.ExpectQuery("information_schema.tables").WithArgs("ghost").
		WillReturnError(errors.New("connection reset"))

	if !HasTable(context.Background(), db, "users") {
		t.Fatalf("expected users table to exist")
	}
	if HasTable(context.Background(), db, "ghost") {
		t.Fatalf("query error should read as absent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestColumns_LowerCased(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.columns").WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("ID").AddRow("salon_name"))

	cols, err := Columns(context.Background(), db, "users")
	if err != nil {
		t.Fatalf("Columns returned error: %v", err)
	}
	if !cols["id"] || !cols["salon_name"] || len(cols) != 2 {
		t.Fatalf("unexpected columns %v", cols)
	}
}

func TestValidIdentifier(t *testing.T) {
	for _, ok := range []string{"users", "Users_2024"} {
		if !ValidIdentifier(ok) {
			t.Fatalf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"", "users;", "a b", "`users`", "users-x"} {
		if ValidIdentifier(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
