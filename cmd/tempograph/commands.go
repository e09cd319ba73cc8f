package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/tempograph/internal/batch"
	"github.com/san-kum/tempograph/internal/config"
	"github.com/san-kum/tempograph/internal/export"
	"github.com/san-kum/tempograph/internal/filter"
	"github.com/san-kum/tempograph/internal/graph"
	"github.com/san-kum/tempograph/internal/metrics"
	"github.com/san-kum/tempograph/internal/playback"
	"github.com/san-kum/tempograph/internal/session"
	"github.com/san-kum/tempograph/internal/storage"
	"github.com/san-kum/tempograph/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func showFields(cmd *cobra.Command, args []string) error {
	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	sess, err := newSession()
	if err != nil {
		return err
	}
	if err := sess.Load(text); err != nil {
		return err
	}

	fields := sess.Fields()
	if len(fields) == 0 {
		fmt.Println("no fields found")
		return nil
	}
	for _, f := range fields {
		fmt.Println(f)
	}

	suggested := sess.SuggestedRoles()
	if suggested.Source != "" || suggested.Target != "" {
		fmt.Printf("\nsuggested: --source %q --target %q\n", suggested.Source, suggested.Target)
	}
	return nil
}

func printSummary(g *graph.Graph) {
	fmt.Printf("nodes: %d\n", len(g.Nodes))
	fmt.Printf("edges: %d\n", len(g.Edges))
	if g.Skipped > 0 {
		fmt.Printf("skipped: %d\n", g.Skipped)
	}
	if g.Range != nil {
		fmt.Printf("range: %d..%d\n", g.Range.Min, g.Range.Max)
	}
}

func mapGraph(cmd *cobra.Command, args []string) error {
	sess, err := loadSession(cmd, args[0])
	if err != nil {
		return err
	}
	g := sess.Graph()
	printSummary(g)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tWEIGHT")
	for _, n := range g.Nodes {
		fmt.Fprintf(w, "%s\t%g\n", n.ID, n.Weight)
	}
	return w.Flush()
}

func filterGraph(cmd *cobra.Command, args []string) error {
	sess, err := loadSession(cmd, args[0])
	if err != nil {
		return err
	}
	g := sess.Graph()

	var vis filter.Visibility
	if cmd.Flags().Changed("at") {
		vis, err = sess.Seek(at)
	} else {
		vis, err = sess.Visibility()
		if errors.Is(err, session.ErrNotTemporal) {
			vis, err = filter.At(g, 0, filter.PolicyVisible), nil
		}
	}
	if err != nil {
		return err
	}

	var hl filter.Highlight
	if keyword != "" {
		hl, err = sess.Highlight(keyword)
		if err != nil {
			return err
		}
	}

	fmt.Printf("cursor: %d\n", vis.Cursor)
	fmt.Printf("visible: %d/%d nodes, %d/%d edges\n\n", vis.VisibleNodes(), len(g.Nodes), vis.VisibleEdges(), len(g.Edges))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTARGET\tWEIGHT\tINTERVAL\t")
	for i, e := range g.Edges {
		if !vis.Edges[i] {
			continue
		}
		mark := ""
		if keyword != "" && hl.Edges[i] {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.Source, e.Target, optFloat(e.Weight), optInt(e.Interval), mark)
	}
	return w.Flush()
}

func optFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func plotTimeline(cmd *cobra.Command, args []string) error {
	sess, err := loadSession(cmd, args[0])
	if err != nil {
		return err
	}
	return printTimeline(sess)
}

const timelineWidth = 60

func printTimeline(sess *session.Session) error {
	r, ok := sess.Range()
	if !ok {
		return session.ErrNotTemporal
	}

	nodes, edges := sess.Index().Timeline(r, timelineWidth)
	fmt.Printf("range: %d..%d (%d steps)\n\n", r.Min, r.Max, r.Span())
	if len(nodes) < 2 {
		fmt.Printf("at %d: %.0f nodes, %.0f edges\n", r.Min, nodes[0], edges[0])
		printMetrics(sess)
		return nil
	}

	fmt.Println(asciigraph.Plot(nodes, asciigraph.Height(8), asciigraph.Width(timelineWidth), asciigraph.Caption("visible nodes")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(edges, asciigraph.Height(8), asciigraph.Width(timelineWidth), asciigraph.Caption("visible edges")))
	printMetrics(sess)
	return nil
}

func printMetrics(sess *session.Session) {
	fmt.Println("\nmetrics:")
	for _, r := range metrics.Sweep(sess.Graph(), sess.Index(), metrics.Defaults()) {
		fmt.Printf("  %s: %.4g\n", r.Name, r.Value)
	}
}

func playGraph(cmd *cobra.Command, args []string) error {
	sess, err := loadSession(cmd, args[0])
	if err != nil {
		return err
	}

	ctrl := playback.New(sess,
		playback.WithInterval(cfg.TickInterval()),
		playback.WithScheduler(playback.ManualScheduler{}),
		playback.WithLogger(appLog),
	)
	m := viz.NewModel(sess, ctrl, viz.Options{
		Title:     args[0],
		Theme:     cfg.Render.Theme,
		NodeColor: cfg.Render.NodeColor,
	})
	return viz.Run(m)
}

func saveGraph(cmd *cobra.Command, args []string) error {
	sess, err := loadSession(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir).WithLogger(appLog)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(runName, sess.Graph())
	if err != nil {
		return err
	}

	printSummary(sess.Graph())
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir).WithLogger(appLog)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tNODES\tEDGES\tRANGE")
	for _, run := range runs {
		rng := "-"
		if run.Range != nil {
			rng = fmt.Sprintf("%d..%d", run.Range.Min, run.Range.Max)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nodes,
			run.Edges,
			rng,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir).WithLogger(appLog)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	g, err := st.LoadGraph(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("saved: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("roles: source=%s target=%s weight=%s interval=%s\n",
		meta.Roles.Source, meta.Roles.Target, orDash(meta.Roles.Weight), orDash(meta.Roles.Interval))
	printSummary(g)

	if g.Range == nil {
		return nil
	}
	sess, err := newSession()
	if err != nil {
		return err
	}
	sess.Use(g)
	fmt.Println()
	return printTimeline(sess)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir).WithLogger(appLog)
	g, err := st.LoadGraph(args[0])
	if err != nil {
		return err
	}

	var vis *filter.Visibility
	if cmd.Flags().Changed("at") {
		sess, err := newSession()
		if err != nil {
			return err
		}
		sess.Use(g)
		v, err := sess.Seek(at)
		if err != nil {
			return err
		}
		vis = &v
	}

	write := func(w io.Writer) error {
		switch strings.ToLower(exportAs) {
		case "json":
			return export.WriteJSON(w, g, vis)
		case "csv":
			return export.WriteEdgesCSV(w, g)
		case "svg":
			opts := export.DefaultSVGOptions()
			opts.Width, opts.Height = cfg.Render.Width, cfg.Render.Height
			opts.NodeColor = cfg.Render.NodeColor
			opts.Labels = !noLabels
			_, err := io.WriteString(w, export.SVG(g, vis, opts))
			return err
		}
		return fmt.Errorf("unknown export format: %s (want json, csv or svg)", exportAs)
	}
	if err := writeOutput(outFile, write); err != nil {
		return err
	}

	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	}
	return nil
}

// writeOutput sends fn's output to stdout, or to path when one is given.
// The file's close error is returned when fn succeeds.
func writeOutput(path string, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir).WithLogger(appLog)
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func batchFiles(cmd *cobra.Command, args []string) error {
	inputs := make([]batch.Input, 0, len(args))
	for _, path := range args {
		text, err := readInput(path)
		if err != nil {
			return err
		}
		inputs = append(inputs, batch.Input{Name: path, Text: text})
	}

	parseOpts, err := cfg.ParseOptions()
	if err != nil {
		return err
	}
	opts := batch.Options{Parse: parseOpts, Limit: limit, Log: appLog}
	if cmd.Flags().Changed("min") && cmd.Flags().Changed("max") {
		opts.Bounds = &graph.TimeRange{Min: minBound, Max: maxBound}
	}

	var fields []string
	if len(inputs) > 0 {
		sess, err := newSession()
		if err != nil {
			return err
		}
		if err := sess.Load(inputs[0].Text); err == nil {
			fields = sess.Fields()
		}
	}
	roles, err := resolveRoles(fields)
	if err != nil {
		return err
	}

	sums, err := batch.Summarize(context.Background(), inputs, roles, opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tRECORDS\tNODES\tEDGES\tSKIPPED\tRANGE\tHEAVIEST")
	for _, s := range sums {
		rng := "-"
		if s.Range != nil {
			rng = fmt.Sprintf("%d..%d", s.Range.Min, s.Range.Max)
			if s.Deferred {
				rng += " (given)"
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n", s.Name, s.Records, s.Nodes, s.Edges, s.Skipped, rng, orDash(s.Heaviest))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSOURCE\tTARGET\tWEIGHT\tINTERVAL")
	for _, name := range config.ListPresets() {
		r, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, r.Source, r.Target, orDash(r.Weight), orDash(r.Interval))
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("config written to %s\n", outFile)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
