package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nova/internal/persona"
	"nova/internal/service/llm"
)

type fakeCatalog struct {
	models []llm.ModelEntry
}

func (f *fakeCatalog) ListModels(ctx context.Context) []llm.ModelEntry {
	return f.models
}

func TestListModelsReturnsMergedEntries(t *testing.T) {
	h := NewModelsHandler(&fakeCatalog{models: []llm.ModelEntry{
		{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash"},
		{ID: "llama3:latest", Name: "llama3:latest"},
	}}, testLogger())

	rec := httptest.NewRecorder()
	h.ListModels(rec, httptest.NewRequest(http.MethodGet, "/models", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var entries []llm.ModelEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "gemini-2.0-flash" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestListModelsEmptyIsStillOK(t *testing.T) {
	h := NewModelsHandler(&fakeCatalog{}, testLogger())

	rec := httptest.NewRecorder()
	h.ListModels(rec, httptest.NewRequest(http.MethodGet, "/models", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with no reachable source", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Errorf("body = %q, want an empty JSON array", body)
	}
}

func TestGetPersona(t *testing.T) {
	h := NewPersonaHandler(&persona.Persona{
		Name:         "Nova AI",
		Instructions: "You are a helpful AI.",
	}, testLogger())

	rec := httptest.NewRecorder()
	h.GetPersona(rec, httptest.NewRequest(http.MethodGet, "/persona", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got persona.Persona
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Name != "Nova AI" || got.Instructions != "You are a helpful AI." {
		t.Errorf("unexpected persona: %+v", got)
	}
}
