package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"example.com/studylog/internal/domain"
)

const legacyListing = `{
	"success": true,
	"total": 2,
	"data": [
		{
			"id_atividade": 1,
			"titulo": "Simulado CESPE",
			"tipo": "SIMULADO",
			"area": "Direito",
			"questoes": 40,
			"acertos": "30",
			"data_execucao": "10/01/2026",
			"comentarios": null
		},
		{
			"id_atividade": "2",
			"titulo": "Bloco de Português",
			"tipo": "BLOCO DE EXERCICIOS",
			"materia": "Gramática",
			"assunto": "Crase",
			"data_execucao": "12/01/2026"
		}
	]
}`

func TestListAllDecodesMixedCells(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/listar_atividades" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(legacyListing))
	}))
	defer srv.Close()

	client := NewLegacyClient(srv.URL)
	records, err := client.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records got %d", len(records))
	}

	// Numeric id cell.
	if records[0].ID != 1 || records[0].Questions != "40" || records[0].Correct != "30" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	// Null cell decodes to empty text.
	if records[0].Comment != "" {
		t.Fatalf("expected empty comment, got %q", records[0].Comment)
	}
	// String id cell.
	if records[1].ID != 2 || records[1].Subject != "Gramática" {
		t.Fatalf("unexpected second record %+v", records[1])
	}
}

func TestListAllReportsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "planilha indisponível"}`))
	}))
	defer srv.Close()

	client := NewLegacyClient(srv.URL)
	if _, err := client.ListAll(context.Background()); err == nil {
		t.Fatalf("expected error on success=false")
	}
}

func TestListAllRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewLegacyClient(srv.URL)
	if _, err := client.ListAll(context.Background()); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestGetScansListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(legacyListing))
	}))
	defer srv.Close()

	client := NewLegacyClient(srv.URL)

	record, err := client.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record == nil || record.Title != "Bloco de Português" {
		t.Fatalf("unexpected record %+v", record)
	}

	record, err = client.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil for unknown id, got %+v", record)
	}
}

func TestWritesAreRejected(t *testing.T) {
	client := NewLegacyClient("http://unused")

	if _, err := client.CreateActivity(context.Background(), domain.Activity{}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := client.AddExamResult(context.Background(), 1, domain.DetailEntry{}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := client.AddExerciseResult(context.Background(), 1, domain.DetailEntry{}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}
