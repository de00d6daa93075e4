package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/pkg/export"
)

func TestFilename(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	cases := []struct {
		name   string
		prefix string
		at     time.Time
		want   string
	}{
		{"utc", "Questionnaire", time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC), "Questionnaire_2026-10-16T08-30-00.txt"},
		{"drops fraction", "Questionnaire", time.Date(2026, 10, 16, 8, 30, 0, 987_000_000, time.UTC), "Questionnaire_2026-10-16T08-30-00.txt"},
		{"converts zone", "Report", time.Date(2026, 10, 16, 14, 0, 5, 0, ist), "Report_2026-10-16T08-30-05.txt"},
		{"default prefix", "  ", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), "Questionnaire_2026-01-02T03-04-05.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := export.Filename(tc.prefix, tc.at); got != tc.want {
				t.Fatalf("Filename = %q want %q", got, tc.want)
			}
		})
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	sink := export.NewDirSink(dir)

	path, err := sink.Export(context.Background(), "Questionnaire_x.txt", "hello\n")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != filepath.Join(dir, "Questionnaire_x.txt") {
		t.Fatalf("unexpected path %q", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != "hello\n" {
		t.Fatalf("body = %q", raw)
	}
}

func TestDirSink_Faults(t *testing.T) {
	sink := export.NewDirSink(t.TempDir())

	_, err := sink.Export(context.Background(), "../escape.txt", "x")
	if !errors.Is(err, export.ErrExport) {
		t.Fatalf("expected ErrExport, got %v", err)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err = export.NewDirSink(blocker).Export(context.Background(), "r.txt", "x")
	var fault *export.Fault
	if !errors.As(err, &fault) || fault.Name != "r.txt" {
		t.Fatalf("expected fault for r.txt, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sink.Export(ctx, "r.txt", "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := export.NewWriterSink(&buf)
	where, err := sink.Export(context.Background(), "r.txt", "body")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if where != "r.txt" || buf.String() != "body" {
		t.Fatalf("unexpected result %q %q", where, buf.String())
	}

	if _, err := (&export.WriterSink{}).Export(context.Background(), "r.txt", "x"); !errors.Is(err, export.ErrExport) {
		t.Fatalf("expected ErrExport without writer, got %v", err)
	}
}
