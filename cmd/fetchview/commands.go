package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/samvad-hq/fetchview/internal/app"
	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/internal/probe"
	"github.com/samvad-hq/fetchview/internal/server"
	"github.com/samvad-hq/fetchview/internal/tui"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(false)
		if err != nil {
			return err
		}
		defer logger.Close()

		reg, err := app.LoadEndpoints(cfg.EndpointsFile, log)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, ep := range reg.All() {
			fmt.Fprintf(out, "%s  %s\n", view.HighlightStyle.Render(ep.ID), view.NormalStyle.Render(ep.Name+" ("+ep.Type+")"))
			fmt.Fprintf(out, "    %s\n", view.MutedStyle.Render(ep.URL))
			if len(ep.Items) > 0 {
				fmt.Fprintf(out, "    items: %s\n", strings.Join(ep.Items, ", "))
			}
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <endpoint> [name]",
	Short: "Fetch one endpoint and print the rendered result",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup(false)
		if err != nil {
			return err
		}
		defer logger.Close()

		reg, err := app.LoadEndpoints(cfg.EndpointsFile, log)
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 2 {
			name = args[1]
		}

		out := cmd.OutOrStdout()
		var (
			renderer view.Renderer
			doc      *view.Document
			regions  *view.Regions
		)
		switch strings.ToLower(fetchFormat) {
		case "text":
			renderer = view.NewTerminal(out)
		case "html":
			doc, err = view.NewDocument("fetchview", server.Controls(reg))
			if err != nil {
				return err
			}
			renderer = doc
		case "json":
			regions = view.NewRegions()
			renderer = regions
		default:
			return fmt.Errorf("unsupported format %q (expected text, html or json)", fetchFormat)
		}

		ctx, stop := signalContext()
		defer stop()

		rt, err := app.New(ctx, cfg, reg, renderer, log)
		if err != nil {
			return err
		}
		defer rt.Close()

		if _, err := rt.Fetch(ctx, args[0], name); err != nil {
			return err
		}

		switch {
		case doc != nil:
			page, err := doc.HTML()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, page)
		case regions != nil:
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(regions.Snapshot())
		}
		return nil
	},
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive view",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup(true)
		if err != nil {
			return err
		}
		defer logger.Close()

		reg, err := app.LoadEndpoints(cfg.EndpointsFile, log)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		regions := view.NewRegions()
		rt, err := app.New(ctx, cfg, reg, regions, log)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := tui.Run(ctx, rt, regions, reg.All()); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fetch view as an HTML page",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, log, err := setup(false)
		if err != nil {
			return err
		}
		defer logger.Close()

		reg, err := app.LoadEndpoints(cfg.EndpointsFile, log)
		if err != nil {
			return err
		}
		doc, err := view.NewDocument("fetchview", server.Controls(reg))
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		rt, err := app.New(ctx, cfg, reg, doc, log)
		if err != nil {
			return err
		}
		defer rt.Close()

		srv := server.New(rt, doc, log)
		errCh := make(chan error, 1)
		go func() { errCh <- srv.Listen(cfg.ListenAddr) }()

		select {
		case err := <-errCh:
			return fmt.Errorf("page server: %w", err)
		case <-ctx.Done():
			log.InfoObj("page server shutting down", "reason", ctx.Err().Error())
			return srv.Shutdown()
		}
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe every endpoint once and report its outcome",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(false)
		if err != nil {
			return err
		}
		defer logger.Close()

		reg, err := app.LoadEndpoints(cfg.EndpointsFile, log)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		rt, err := app.New(ctx, cfg, reg, view.NewRegions(), log)
		if err != nil {
			return err
		}
		defer rt.Close()

		reports, err := rt.Check(ctx)
		out := cmd.OutOrStdout()
		for _, r := range reports {
			target := r.EndpointID
			if r.Parameter != "" {
				target += "/" + r.Parameter
			}
			style := view.SuccessStyle
			if r.Err != nil {
				style = view.ErrorStyle
			}
			fmt.Fprintf(out, "%-28s %s  items=%d  %s\n", target, style.Render(r.Outcome), r.Items, r.Elapsed.Round(time.Millisecond))
		}
		if err != nil {
			return fmt.Errorf("%d endpoint(s) failed", countFailed(reports))
		}
		return nil
	},
}

func countFailed(reports []probe.Report) int {
	n := 0
	for _, r := range reports {
		if r.Err != nil {
			n++
		}
	}
	return n
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently presented fetch outcomes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup(false)
		if err != nil {
			return err
		}
		defer logger.Close()

		store, err := app.OpenHistory(cfg, log)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(historyLimit)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, view.MutedStyle.Render("no history recorded"))
			return nil
		}
		for _, e := range entries {
			target := e.EndpointID
			if e.Parameter != "" {
				target += "/" + e.Parameter
			}
			style := view.SuccessStyle
			if e.Outcome != "success" {
				style = view.ErrorStyle
			}
			line := fmt.Sprintf("%s  %-24s %s", e.At.Local().Format("2006-01-02 15:04:05"), target, style.Render(e.Outcome))
			if e.Message != "" {
				line += "  " + e.Message
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
