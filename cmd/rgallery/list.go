package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/filter"
	"github.com/kk-code-lab/rgallery/internal/navstate"
	"github.com/kk-code-lab/rgallery/internal/textutil"
)

const defaultListLimit = 20

func newListCmd(opts *rootOptions) *cobra.Command {
	limit := defaultListLimit

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the entries of a view without opening the browser",
		Long: `Load the catalog, apply the --view query and print its canonical form
followed by up to --limit entries starting at the query's idx.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.source()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), listTimeout(opts))
			defer cancel()

			started := time.Now()
			entries, err := catalog.Load(ctx, src, opts.cfg.PathOptions())
			if err != nil {
				opts.logger.Error().Err(err).Str("source", src.String()).Msg("catalog load failed")
				return fmt.Errorf("load catalog %s: %w", src, err)
			}
			opts.logger.Info().
				Int("entries", len(entries)).
				Dur("elapsed", time.Since(started)).
				Msg("catalog loaded")

			return writeList(cmd.OutOrStdout(), catalog.NewStore(entries), opts.view, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultListLimit, "Maximum number of entries to print")
	return cmd
}

// listTimeout bounds the whole load, retries included.
func listTimeout(opts *rootOptions) time.Duration {
	attempts := max(opts.cfg.Catalog.RetryMax, 0) + 1
	if t := opts.cfg.Timeout(); t > 0 {
		return time.Duration(attempts) * t
	}
	return time.Minute
}

// writeList resolves the query against store the way the browser does: the
// index is clamped to the view and an unknown preview is dropped.
func writeList(w io.Writer, store *catalog.Store, query string, limit int) error {
	ns := navstate.Decode(query)
	if _, ok := store.Lookup(ns.PreviewID); !ok {
		ns.PreviewID = ""
	}
	view := filter.ComputeView(store.All(), ns.Filter, ns.Sort)
	ns.AnchorIndex = min(max(ns.AnchorIndex, 0), max(len(view)-1, 0))

	if _, err := fmt.Fprintf(w, "?%s\n", navstate.Encode(ns)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d of %d entries\n", len(view), store.Len()); err != nil {
		return err
	}
	if len(view) == 0 || limit <= 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	end := min(ns.AnchorIndex+limit, len(view))
	for i := ns.AnchorIndex; i < end; i++ {
		e := view[i]
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i,
			textutil.Label(e.ID),
			textutil.LabelOr(e.Author, "-"),
			textutil.LabelOr(e.Version, "-"),
			createdLabel(e.CreatedAt))
	}
	return tw.Flush()
}

func createdLabel(unix int64) string {
	if unix == 0 {
		return "-"
	}
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
