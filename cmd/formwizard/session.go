package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/pkg/export"
	"github.com/goliatone/go-formwizard/pkg/form"
	"github.com/goliatone/go-formwizard/pkg/notify"
	"github.com/goliatone/go-formwizard/pkg/report"
	reporttpl "github.com/goliatone/go-formwizard/pkg/report/template"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/storage"
	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func loadSchema(c config.Config) (*schema.Schema, error) {
	if c.Schema == "" {
		return schema.Default()
	}
	return schema.LoadFile(c.Schema)
}

// openStore returns the configured draft store and a closer.
func openStore(ctx context.Context, c config.Config) (storage.KV, func() error, error) {
	noop := func() error { return nil }
	switch c.Store {
	case config.StoreMemory:
		return storage.NewMemory(), noop, nil
	case config.StoreSQLite:
		if err := ensureDir(c.StorePath); err != nil {
			return nil, nil, err
		}
		db, err := storage.OpenSQLite(ctx, c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		file, err := storage.OpenFile(c.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return file, noop, nil
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// reportFormatter returns the fixed layout formatter, or the pongo2 template
// renderer when a report template is configured.
func reportFormatter(s *schema.Schema, c config.Config) (wizard.FormatFunc, error) {
	if c.ReportTemplate != "" {
		return templateFormatter(s, c.ReportTemplate)
	}
	formatter := report.New(s)
	return func(answers form.AnswerMap, at time.Time) (string, error) {
		return formatter.Format(answers, at), nil
	}, nil
}

// templateFormatter renders reports through the pongo2 template at path.
func templateFormatter(s *schema.Schema, path string) (wizard.FormatFunc, error) {
	engine, err := reporttpl.New(
		reporttpl.WithFS(os.DirFS(filepath.Dir(path))),
		reporttpl.WithExtension(filepath.Ext(path)),
	)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	return func(answers form.AnswerMap, at time.Time) (string, error) {
		return engine.RenderTemplate(name, reporttpl.Context(s, answers, at))
	}, nil
}

// openSession builds and loads a session from the active configuration.
// Notifications are written to notices. The returned closer releases the
// draft store.
func openSession(ctx context.Context, c config.Config, notices io.Writer) (*wizard.Session, func() error, error) {
	s, err := loadSchema(c)
	if err != nil {
		return nil, nil, err
	}
	kv, closeStore, err := openStore(ctx, c)
	if err != nil {
		return nil, nil, err
	}

	opts := []wizard.Option{
		wizard.WithStore(kv, storage.WithPrefix(c.DraftPrefix)),
		wizard.WithNotifier(notify.NewWriter(notices)),
		wizard.WithSink(export.NewDirSink(c.OutputDir)),
		wizard.WithSubmitter(submit.NewNop(c.SubmitEndpoint, logger)),
		wizard.WithLogger(logger),
	}
	format, err := reportFormatter(s, c)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	opts = append(opts, wizard.WithFormatter(format))

	sess, err := wizard.New(s, opts...)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	if err := restoreDraft(ctx, sess); err != nil {
		closeStore()
		return nil, nil, err
	}
	return sess, closeStore, nil
}

// restoreDraft loads sess. Storage faults have already been reported by the
// session, which still holds the defaults and whatever could be read; any
// other failure is returned.
func restoreDraft(ctx context.Context, sess *wizard.Session) error {
	if err := sess.Load(ctx); err != nil && !errors.Is(err, storage.ErrStorage) {
		return err
	}
	return nil
}
