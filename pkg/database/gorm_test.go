package database

import (
	"path/filepath"
	"testing"
)

func TestConfigDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "app", Password: "secret", DBName: "donations", SSLMode: "disable"}
	want := "host=db port=5432 user=app password=secret dbname=donations sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	lite := Config{Driver: DriverSQLite, Path: "/tmp/x.db"}
	if got := lite.DSN(); got != "/tmp/x.db?_busy_timeout=5000" {
		t.Fatalf("unexpected sqlite dsn %q", got)
	}
}

func TestNewGormConnectionSQLite(t *testing.T) {
	db, err := NewGormConnection(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	defer sqlDB.Close()

	if stats := sqlDB.Stats(); stats.MaxOpenConnections != 1 {
		t.Fatalf("expected a single sqlite connection, got %d", stats.MaxOpenConnections)
	}
}

func TestNewGormConnectionUnknownDriver(t *testing.T) {
	if _, err := NewGormConnection(Config{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
