package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/submit"
	"github.com/goliatone/go-formwizard/pkg/tui"
)

func runQuestionnaire(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, closeStore, err := openSession(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeStore()

	runner, err := tui.New(sess, tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())))
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx)
	switch {
	case errors.Is(err, tui.ErrSuspended), errors.Is(err, tui.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Fprintln(cmd.OutOrStdout(), "Progress saved. Run formwizard again to resume.")
		return nil
	case err != nil && result.Location == "":
		return err
	}

	logger.Info("report exported", zap.String("location", result.Location), zap.String("id", result.ID.String()))
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", result.Location)
	return err
}

func runReport(cmd *cobra.Command, args []string) error {
	sess, closeStore, err := openSession(commandContext(cmd), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeStore()

	s := sess.Schema()
	format, err := reportFormatter(s, cfg)
	if err != nil {
		return err
	}
	body, err := format(sess.Answers(), time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), body)
	return err
}

func runPayload(cmd *cobra.Command, args []string) error {
	sess, closeStore, err := openSession(commandContext(cmd), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeStore()

	raw, err := submit.Encode(sess.Answers())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

func runClear(cmd *cobra.Command, args []string) error {
	sess, closeStore, err := openSession(commandContext(cmd), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := sess.Clear(commandContext(cmd)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared")
	return nil
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, err := loadSchema(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d sections, %d fields, %d rules)\n", s.Title, s.Total(), len(s.Fields()), len(s.Rules))
	for _, section := range s.Sections {
		required := 0
		for _, field := range section.Fields {
			if field.Required {
				required++
			}
		}
		fmt.Fprintf(out, "  %d. %s: %d fields, %d required\n", section.Ordinal, section.Title, len(section.Fields), required)
	}
	return nil
}
