package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"phishguard-api/bootstrap"
	"phishguard-api/config"
	"phishguard-api/features"
	"phishguard-api/models"
	"phishguard-api/services"

	"github.com/spf13/cobra"
)

type classifyFunc func(ctx context.Context, url string) (*services.PredictionResult, error)

type listFunc func(ctx context.Context) ([]models.Prediction, error)

func newCheckCmd(open func() (*bootstrap.App, error)) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Classify a URL and record the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := open()
			if err != nil {
				return err
			}
			defer app.Close()
			return runCheck(cmd.Context(), cmd.OutOrStdout(), app.Pipeline.ClassifyAndRecord, args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func runCheck(ctx context.Context, w io.Writer, classify classifyFunc, url string, asJSON bool) error {
	res, err := classify(ctx, url)
	var auditErr *services.AuditWriteError
	if err != nil && !(errors.As(err, &auditErr) && res != nil) {
		return fmt.Errorf("%s: %w", services.ErrorKind(err), err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(res); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprintf(w, "id:          %d\n", res.ID)
		fmt.Fprintf(w, "url:         %s\n", res.URL)
		fmt.Fprintf(w, "label:       %s\n", res.Label)
		fmt.Fprintf(w, "probability: %.2f\n", res.Probability)
		fmt.Fprintf(w, "verdict:     %s\n", res.Verdict)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", services.ErrorKind(err), err)
	}
	return nil
}

func openStore() (listFunc, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, store, err := bootstrap.OpenStore(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return store.ListAll, closeFn, nil
}

func newHistoryCmd(open func() (listFunc, func(), error)) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print every stored prediction, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, closeFn, err := open()
			if err != nil {
				return err
			}
			defer closeFn()
			return runHistory(cmd.Context(), cmd.OutOrStdout(), list)
		},
	}
}

func runHistory(ctx context.Context, w io.Writer, list listFunc) error {
	rows, err := list(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tURL\tPREDICTION\tSUGGESTION")
	for _, r := range rows {
		suggestion := "-"
		if r.LegitimateSuggestion != nil {
			suggestion = *r.LegitimateSuggestion
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", r.ID, r.URL, oneLine(r.Verdict), suggestion)
	}
	return tw.Flush()
}

func oneLine(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\n' || r == '\r' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func newExtractor() (features.Extractor, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return bootstrap.NewExtractor(cfg.Features, nil), nil
}

func newFeaturesCmd(build func() (features.Extractor, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "features <url>",
		Short: "Print the feature vector extracted for a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, err := build()
			if err != nil {
				return err
			}
			return runFeatures(cmd.Context(), cmd.OutOrStdout(), ex, args[0])
		},
	}
}

func runFeatures(ctx context.Context, w io.Writer, ex features.Extractor, url string) error {
	v, err := ex.Extract(ctx, url)
	if err != nil {
		return err
	}
	if err := v.CheckLen(); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, name := range features.Names {
		fmt.Fprintf(tw, "%s\t%g\n", name, v[i])
	}
	return tw.Flush()
}
