package service

import (
	"ai_hub_backend/internal/repository"
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestCSVExport(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repository.NewSubmissionRepository(db))

	seedSubmission(t, db, "alice", "alice@dynamicsgex.com.au", 1, 8)
	seedSubmission(t, db, "bob", "bob@dynamicsgex.com.au", 2, 6)

	data, count, err := svc.CSV()
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d records", len(records))
	}
	if records[0][1] != "Name" || records[0][7] != "Percent" {
		t.Fatalf("unexpected header: %v", records[0])
	}
}

func TestCSVExportEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repository.NewSubmissionRepository(db))

	_, count, err := svc.CSV()
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 rows, got %d", count)
	}
}

func TestHTMLView(t *testing.T) {
	db := newTestDB(t)
	svc := NewExportService(repository.NewSubmissionRepository(db))

	seedSubmission(t, db, "alice", "alice@dynamicsgex.com.au", 1, 8)

	page, count, err := svc.HTMLView()
	if err != nil {
		t.Fatalf("html view: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
	html := string(page)
	if !strings.Contains(html, "<h1>Quiz Results</h1>") {
		t.Fatal("missing page heading")
	}
	if !strings.Contains(html, "alice") {
		t.Fatal("missing submission row")
	}
}
