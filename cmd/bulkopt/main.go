// Command bulkopt re-encodes every image under a directory tree at the
// large preset, for one-off migrations of existing media libraries.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"mediapress/internal/infra"
	"mediapress/internal/optimize"
)

func main() {
	_ = godotenv.Load()

	var (
		root = flag.String("dir", "", "directory tree to optimize (required)")
		exts = flag.String("ext", "", "comma-separated source extensions (default: common image types)")
	)
	flag.Parse()

	if *root == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	var extList []string
	for _, e := range strings.Split(*exts, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		extList = append(extList, e)
	}

	// Bulk runs write derivatives beside their sources; no store needed.
	pipeline := optimize.New(optimize.Config{}, nil, logger)

	report, err := pipeline.BulkOptimize(*root, extList)
	if err != nil {
		logger.Fatal().Err(err).Msg("bulk optimization aborted")
	}

	for _, f := range report.Files {
		if f.Err != "" {
			fmt.Printf("ERR  %-60s %s\n", f.Path, f.Err)
			continue
		}
		fmt.Printf("OK   %-60s %8d -> %8d  (%s)\n", f.Path, f.Before, f.After, f.Label)
	}
	fmt.Printf("\nprocessed=%d optimized=%d errors=%d before=%dB after=%dB savings=%.1f%%\n",
		report.Processed, report.Optimized, report.Errors,
		report.TotalBefore, report.TotalAfter, report.SavingsPercent())

	if report.Errors > 0 {
		os.Exit(1)
	}
}
