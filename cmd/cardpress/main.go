package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/printworks/cardpress"
	"github.com/printworks/cardpress/config"
	"github.com/printworks/cardpress/diag"
	"github.com/printworks/cardpress/export"
	"github.com/printworks/cardpress/pdfdoc"
	"github.com/printworks/cardpress/xlsx"
)

func main() {
	var (
		input      string
		output     string
		configPath string
		cardsDir   string
		noExport   bool
	)

	flag.StringVar(&input, "i", "", "Path to the roster workbook (.xlsx)")
	flag.StringVar(&output, "o", "", "Output PDF path (default: workbook name with .pdf)")
	flag.StringVar(&configPath, "config", "", "Configuration file (default: discovered beside the workbook)")
	flag.StringVar(&cardsDir, "cards-dir", "", "Directory for individual card PNGs (default: cards/ beside the PDF)")
	flag.BoolVar(&noExport, "no-export", false, "Skip exporting individual card PNGs")
	flag.Usage = printUsage
	flag.Parse()

	switch {
	case input == "" && flag.NArg() == 1:
		input = flag.Arg(0)
	case flag.NArg() > 0:
		printUsage()
		os.Exit(2)
	}
	if input == "" {
		printUsage()
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(log, input, output, configPath, cardsDir, noExport); err != nil {
		log.Error("card generation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, input, output, configPath, cardsDir string, noExport bool) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input workbook: %w", err)
	}
	folder := filepath.Dir(input)

	cfg := config.Default()
	if configPath == "" {
		if found, ok := config.Discover(folder); ok {
			configPath = found
		}
	}
	if configPath != "" {
		var warnings []diag.Warning
		var err error
		cfg, warnings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logWarnings(log, warnings)
		log.Info("configuration loaded", "file", configPath)
	}

	records, warnings, err := xlsx.ReadRecords(input)
	if err != nil {
		return err
	}
	logWarnings(log, warnings)
	log.Info("workbook read", "file", filepath.Base(input), "records", len(records))

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	output = pdfdoc.ResolveOutputPath(output)

	gen := cardpress.NewGenerator(cfg).WithFontDir(folder)
	exporting := cfg.ExportCards && !noExport
	if exporting {
		if cardsDir == "" {
			cardsDir = filepath.Join(filepath.Dir(output), "cards")
		}
		gen = gen.WithExporter(export.DirExporter{Dir: cardsDir})
	}

	doc, warnings, err := gen.Generate(records)
	if err != nil {
		return err
	}
	logWarnings(log, warnings)

	if err := pdfdoc.WriteFile(doc, output); err != nil {
		return err
	}
	log.Info("PDF written", "file", output, "pages", doc.PageCount(), "cards", len(records))
	if exporting {
		log.Info("cards exported", "dir", cardsDir)
	}
	return nil
}

func logWarnings(log *slog.Logger, warnings []diag.Warning) {
	for _, w := range warnings {
		log.Warn(w.Message, "code", string(w.Code))
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `cardpress generates printable EAN-13 card sheets from an Excel roster.

Usage:
  cardpress [flags] <roster.xlsx>

Flags:
  -i string           Path to the roster workbook (.xlsx); may also be given
                      as the positional argument
  -o string           Output PDF path (default: the workbook name with a .pdf
                      extension; an existing file gets a _v2, _v3 ... suffix)
  -config string      Configuration file, JSON or YAML (default: config.json /
                      config.yaml / config.yml beside the workbook)
  -cards-dir string   Directory for individual card PNGs (default: cards/
                      beside the PDF)
  -no-export          Skip exporting individual card PNGs even when the
                      configuration enables it

Example:
  cardpress -o sheets.pdf roster.xlsx
`)
}
