package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/storage"
)

func backends(t *testing.T) map[string]storage.KV {
	t.Helper()
	ctx := context.Background()

	file, err := storage.OpenFile(filepath.Join(t.TempDir(), "nested", "draft.json"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	db, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "draft.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]storage.KV{
		"memory": storage.NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestKV_Backends(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get(ctx, "form_x"); err != nil || ok {
				t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
			}
			if err := kv.Set(ctx, "form_x", "one"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, "form_x", "two"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			v, ok, err := kv.Get(ctx, "form_x")
			if err != nil || !ok || v != "two" {
				t.Fatalf("get = %q %v %v", v, ok, err)
			}
			if err := kv.Remove(ctx, "form_x"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if err := kv.Remove(ctx, "form_x"); err != nil {
				t.Fatalf("remove missing: %v", err)
			}
			if _, ok, _ := kv.Get(ctx, "form_x"); ok {
				t.Fatalf("expected key removed")
			}
		})
	}
}

func TestFile_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "draft.json")

	first, err := storage.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set(ctx, "form_clinicName", "Acme Clinic"); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, err := storage.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok, _ := second.Get(ctx, "form_clinicName")
	if !ok || v != "Acme Clinic" {
		t.Fatalf("value lost across reopen: %q %v", v, ok)
	}

	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := storage.OpenFile(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func draftSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Parse([]byte(`
sections:
  - ordinal: 1
    id: one
    title: One
    fields:
      - {id: clinicName, kind: text}
      - {id: adminPassword, kind: password}
      - {id: saturdayClosed, kind: checkbox}
      - {id: kind, kind: radio, options: [{value: new}, {value: existing}]}
      - {id: notes, kind: textarea}
`), "draft.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s
}

func TestDrafts_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := draftSchema(t)
	kv := storage.NewMemory()
	drafts := storage.NewDrafts(kv)

	src := form.New(s)
	_ = src.Set("clinicName", "Acme Clinic")
	_ = src.Set("adminPassword", "secret123")
	_ = src.Set("saturdayClosed", true)
	_ = src.Set("kind", "existing")
	for _, id := range []string{"clinicName", "adminPassword", "saturdayClosed", "kind", "notes"} {
		if err := drafts.Save(ctx, src, id); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	wantKeys := []string{"form_clinicName", "form_kind", "form_notes", "form_saturdayClosed"}
	if diff := cmp.Diff(wantKeys, kv.Keys()); diff != "" {
		t.Fatalf("stored keys mismatch (-want +got):\n%s", diff)
	}

	dst := form.New(s)
	n, err := drafts.LoadAll(ctx, dst)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 restored values, got %d", n)
	}
	if dst.String("clinicName") != "Acme Clinic" || !dst.Checked("saturdayClosed") || dst.String("kind") != "existing" {
		t.Fatalf("values not restored: %#v", dst.Values())
	}
	if dst.Has("adminPassword") {
		t.Fatalf("password must never restore")
	}
	if dst.Has("notes") {
		t.Fatalf("empty saved values must not restore")
	}
}

func TestDrafts_SensitiveNeverRestoredEvenIfPresent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	_ = kv.Set(ctx, "form_adminPassword", "leaked")
	_ = kv.Set(ctx, "form_kind", "legacy-value")

	f := form.New(draftSchema(t))
	n, err := storage.NewDrafts(kv).LoadAll(ctx, f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if n != 0 || f.Has("adminPassword") || f.Has("kind") {
		t.Fatalf("unexpected restore: n=%d values=%#v", n, f.Values())
	}
}

func TestDrafts_ClearAll(t *testing.T) {
	ctx := context.Background()
	s := draftSchema(t)
	kv := storage.NewMemory()
	_ = kv.Set(ctx, "form_clinicName", "Acme")
	_ = kv.Set(ctx, "form_adminPassword", "old")
	_ = kv.Set(ctx, "unrelated", "keep")

	if err := storage.NewDrafts(kv).ClearAll(ctx, s); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if diff := cmp.Diff([]string{"unrelated"}, kv.Keys()); diff != "" {
		t.Fatalf("keys after clear (-want +got):\n%s", diff)
	}
}

type failingKV struct{ storage.KV }

var errBoom = errors.New("quota exceeded")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBoom }
func (failingKV) Set(context.Context, string, string) error         { return errBoom }
func (failingKV) Remove(context.Context, string) error              { return errBoom }

func TestDrafts_FaultsAreTyped(t *testing.T) {
	ctx := context.Background()
	s := draftSchema(t)
	f := form.New(s)
	drafts := storage.NewDrafts(failingKV{}, storage.WithPrefix("q_"))

	err := drafts.Save(ctx, f, "clinicName")
	var fault *storage.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected *Fault, got %v", err)
	}
	if fault.Key != "q_clinicName" || fault.Op != "set" {
		t.Fatalf("fault details unexpected: %#v", fault)
	}
	if !errors.Is(err, storage.ErrStorage) || !errors.Is(err, errBoom) {
		t.Fatalf("fault must match ErrStorage and the cause")
	}

	if _, err := drafts.LoadAll(ctx, f); !errors.Is(err, storage.ErrStorage) {
		t.Fatalf("expected load fault, got %v", err)
	}
	if err := drafts.ClearAll(ctx, s); !errors.Is(err, storage.ErrStorage) {
		t.Fatalf("expected clear fault, got %v", err)
	}
}
