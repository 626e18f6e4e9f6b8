package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestMigrateAppliesPendingFiles(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schema_migrations").
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("001_init.sql").WillReturnResult(sqlmock.NewResult(1, 1))

	if err := Migrate(context.Background(), conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMigrateSkipsAppliedFiles(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM schema_migrations").
		WithArgs("001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	if err := Migrate(context.Background(), conn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("trips"))
	mock.ExpectQuery("FROM information_schema.tables").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	if !HasTable(context.Background(), conn, "trips") {
		t.Fatalf("expected trips to exist")
	}
	if HasTable(context.Background(), conn, "nope") {
		t.Fatalf("expected nope to be missing")
	}
}

func TestIsDuplicateKey(t *testing.T) {
	dup := fmt.Errorf("insert vendor: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !IsDuplicateKey(dup) {
		t.Fatalf("wrapped 1062 should be detected")
	}
	if IsDuplicateKey(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("1452 is not a duplicate key")
	}
}
