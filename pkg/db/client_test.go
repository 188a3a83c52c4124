package db

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return &Client{conn: conn}
}

func TestPingAndClose(t *testing.T) {
	client := newTestClient(t)

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	if client.DB() == nil {
		t.Fatal("expected underlying gorm connection")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestTranslatedUniqueViolation(t *testing.T) {
	type row struct {
		ID   int
		Name string `gorm:"uniqueIndex"`
	}

	client := newTestClient(t)
	if err := client.DB().AutoMigrate(&row{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := client.DB().Create(&row{ID: 1, Name: "dup"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := client.DB().Create(&row{ID: 2, Name: "dup"}).Error
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected translated unique violation, got %v", err)
	}
}
