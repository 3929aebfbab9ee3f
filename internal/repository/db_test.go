package repository

import (
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestNormalizeDSN_EnablesClientFoundRows(t *testing.T) {
	dsn, err := normalizeDSN("root:password@tcp(127.0.0.1:3306)/housingportal?parseTime=true")
	if err != nil {
		t.Fatalf("normalizeDSN error: %v", err)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN error: %v", err)
	}
	if !cfg.ClientFoundRows {
		t.Error("expected clientFoundRows to be enabled")
	}
	if !cfg.ParseTime {
		t.Error("expected parseTime to be preserved")
	}
	if cfg.DBName != "housingportal" || cfg.Addr != "127.0.0.1:3306" {
		t.Errorf("unexpected target %s/%s", cfg.Addr, cfg.DBName)
	}
}

func TestNormalizeDSN_Invalid(t *testing.T) {
	if _, err := normalizeDSN("not a dsn"); err == nil {
		t.Fatal("expected error for malformed DSN")
	}
}
