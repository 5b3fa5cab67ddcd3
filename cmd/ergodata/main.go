package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tomless5599/TP2/internal/common"
	"github.com/tomless5599/TP2/internal/export"
	"github.com/tomless5599/TP2/internal/extract"
	"github.com/tomless5599/TP2/internal/history"
	"github.com/tomless5599/TP2/internal/ocr"
)

func main() {
	app := &cli.App{
		Name:  "ergodata",
		Usage: "extract Garg, Kodak and RSST metrics from ergonomic assessment documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
			&cli.BoolFlag{Name: "verbose", Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			extractCommand(),
			combineCommand(),
			historyCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context, cfg common.Config) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") || cfg.Log.Level == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: "output file path"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "output format: csv, json or xlsx"},
	}
}

func writeResults(svc *export.Service, format, path string, results []*extract.Result) error {
	switch format {
	case "csv":
		return svc.WriteCSV(path, results)
	case "json":
		return svc.WriteJSON(path, results)
	case "xlsx":
		return svc.WriteXLSX(path, results)
	default:
		return fmt.Errorf("unsupported output format %q (want csv, json or xlsx)", format)
	}
}

func extractCommand() *cli.Command {
	flags := append(outputFlags(),
		&cli.BoolFlag{Name: "merge", Usage: "merge results from all input files into one table"},
		&cli.StringFlag{Name: "history", Usage: "sqlite file recording processed documents"},
	)
	return &cli.Command{
		Name:      "extract",
		Usage:     "read PDF or image files and export the metrics found in them",
		ArgsUsage: "FILES...",
		Flags:     flags,
		Action:    extractAction,
	}
}

type fileResults struct {
	path    string
	results []*extract.Result
}

func extractAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}
	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	reader := ocr.NewExtractor(ocr.Config{
		Pdftotext:     cfg.OCR.Pdftotext,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	var store *history.Store
	historyPath := c.String("history")
	if historyPath == "" {
		historyPath = cfg.History.Path
	}
	if historyPath != "" {
		store, err = history.Open(historyPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	var all []fileResults
	for _, path := range c.Args().Slice() {
		start := time.Now()
		read, err := reader.Extract(c.Context, path)
		if err != nil {
			return fmt.Errorf("impossible de traiter %s: %w", path, err)
		}
		results := extract.ExtractMetrics(read.Text)
		all = append(all, fileResults{path: path, results: results})

		metricCount := 0
		for _, r := range results {
			metricCount += len(r.Metrics)
		}
		logger.Info("extract.file.ok",
			"path", path,
			"read_method", read.Method,
			"pages", read.Pages,
			"language", read.Language,
			"methods", len(results),
			"metrics", metricCount,
		)
		if store != nil {
			if _, err := store.RecordExtraction(c.Context, history.Record{
				SourcePath:  path,
				SourceType:  read.SourceType,
				Method:      read.Method,
				Language:    read.Language,
				Pages:       read.Pages,
				MethodCount: len(results),
				MetricCount: metricCount,
				DurationMS:  time.Since(start).Milliseconds(),
			}); err != nil {
				logger.Warn("extract.history.record", "path", path, "error", err)
			}
		}
	}

	toExport := assembleResults(all, c.Bool("merge"))
	return writeResults(export.NewService(logger), c.String("format"), c.String("output"), toExport)
}

// assembleResults prepares the export rows. With merge set, results are
// combined per method across files (later files overwrite on metric
// collisions); without it each result is labelled "file:method" and files
// yielding nothing get a placeholder row.
func assembleResults(all []fileResults, merge bool) []*extract.Result {
	if merge {
		index := map[string]*extract.Result{}
		var combined []*extract.Result
		for _, fr := range all {
			for _, r := range fr.results {
				dst, ok := index[r.Method]
				if !ok {
					dst = extract.NewResult(r.Method)
					index[r.Method] = dst
					combined = append(combined, dst)
				}
				dst.MergeFrom(r)
			}
		}
		return combined
	}

	var labelled []*extract.Result
	for _, fr := range all {
		base := filepath.Base(fr.path)
		if len(fr.results) == 0 {
			placeholder := extract.NewResult(base)
			placeholder.Add("info", export.NoDataMessage, "")
			labelled = append(labelled, placeholder)
			continue
		}
		for _, r := range fr.results {
			renamed := extract.NewResult(fmt.Sprintf("%s:%s", base, r.Method))
			renamed.MergeFrom(r)
			labelled = append(labelled, renamed)
		}
	}
	return labelled
}

func combineCommand() *cli.Command {
	return &cli.Command{
		Name:      "combine",
		Usage:     "merge previously exported JSON result files into one table",
		ArgsUsage: "JSON_FILES...",
		Flags:     outputFlags(),
		Action:    combineAction,
	}
}

func combineAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no input files given")
	}
	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	logger := newLogger(c, cfg)

	var all []fileResults
	for _, path := range c.Args().Slice() {
		results, err := export.ReadJSON(path)
		if err != nil {
			return err
		}
		all = append(all, fileResults{path: path, results: results})
	}
	merged := assembleResults(all, true)
	logger.Info("combine.ok", "files", c.NArg(), "methods", len(merged))
	return writeResults(export.NewService(logger), c.String("format"), c.String("output"), merged)
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "list recently processed documents",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "history", Usage: "sqlite file recording processed documents"},
			&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of entries to show"},
		},
		Action: historyAction,
	}
}

func historyAction(c *cli.Context) error {
	cfg, err := common.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	newLogger(c, cfg)

	path := c.String("history")
	if path == "" {
		path = cfg.History.Path
	}
	if path == "" {
		return fmt.Errorf("no history database configured: pass --history or set history.path in the config file")
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ListRecent(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("%s  %-40s  %-9s  %2d page(s)  %d method(s)  %d metric(s)  %dms\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.SourcePath, rec.Method, rec.Pages, rec.MethodCount, rec.MetricCount, rec.DurationMS)
	}
	return nil
}
