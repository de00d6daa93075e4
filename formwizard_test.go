package formwizard_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/storage"
)

const petSurvey = `
title: Pet Survey
report:
  title: PET SURVEY
  filenamePrefix: Pets
sections:
  - ordinal: 1
    id: owner
    title: Owner
    fields:
      - {id: owner, label: Owner, kind: text, required: true}
  - ordinal: 2
    id: pet
    title: Pet
    fields:
      - {id: species, label: Species, kind: select, options: [{value: cat}, {value: dog}]}
`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pets.yaml")
	if err := os.WriteFile(path, []byte(petSurvey), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return path
}

func TestQuestionnairesContainsDefault(t *testing.T) {
	if _, err := fs.ReadFile(formwizard.Questionnaires(), "clinic.yaml"); err != nil {
		t.Fatalf("bundled questionnaire not readable: %v", err)
	}
	s, err := formwizard.DefaultSchema()
	if err != nil {
		t.Fatalf("default schema: %v", err)
	}
	if s.Total() != 9 {
		t.Fatalf("expected 9 sections, got %d", s.Total())
	}
}

func TestNewSession_ResumeAndSubmit(t *testing.T) {
	ctx := context.Background()
	s, err := formwizard.LoadSchema(writeSchema(t))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	at := time.Date(2026, time.October, 16, 8, 30, 0, 0, time.UTC)
	kv := storage.NewMemory()
	var out bytes.Buffer
	opts := []formwizard.Option{
		formwizard.WithStore(kv),
		formwizard.WithSink(export.NewWriterSink(&out)),
		formwizard.WithClock(func() time.Time { return at }),
	}

	first, err := formwizard.NewSession(ctx, s, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := first.Set(ctx, "owner", "Ada"); err != nil {
		t.Fatalf("set: %v", err)
	}

	resumed, err := formwizard.NewSession(ctx, s, opts...)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := resumed.Answers().Get("owner"); got != "Ada" {
		t.Fatalf("owner not restored: %q", got)
	}
	if err := resumed.Next(2); err != nil {
		t.Fatalf("next: %v", err)
	}
	if err := resumed.Set(ctx, "species", "cat"); err != nil {
		t.Fatalf("set species: %v", err)
	}

	result, err := resumed.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Filename != "Pets_2026-10-16T08-30-00.txt" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if want := formwizard.Report(s, result.Answers, at); result.Report != want || out.String() != want {
		t.Fatalf("report mismatch\nwant: %q\n got: %q", want, result.Report)
	}
	if kv.Len() != 0 {
		t.Fatalf("drafts kept after submit: %v", kv.Keys())
	}

	payload, err := formwizard.Payload(result.Answers)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if !strings.Contains(string(payload), `"species":"cat"`) {
		t.Fatalf("payload missing species: %s", payload)
	}
}

func TestNewSession_RequiresSchema(t *testing.T) {
	if _, err := formwizard.NewSession(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}
