package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/tiferet-tools/tifscan/tifscan"
)

// scanConfig mirrors the scan flags so recurring invocations can live in a
// config file. Flags given on the command line win over the file.
type scanConfig struct {
	GroupType string   `yaml:"group_type"`
	Extract   []string `yaml:"extract"`
	Absolute  bool     `yaml:"absolute"`
	Pretty    bool     `yaml:"pretty"`
	Out       string   `yaml:"out"`
}

func scanCommand(args []string) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	group := fs.String("group", "event", "artifact group type to extract")
	configPath := fs.String("config", "", "YAML scan configuration")
	absolute := fs.Bool("absolute", false, "report positions in original-file coordinates")
	pretty := fs.Bool("pretty", false, "indent the JSON output")
	outPath := fs.String("out", "", "write the result to a file instead of stdout")
	var extract nameList
	fs.Var(&extract, "extract", "block name to extract (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("tifscan scan: source file required")
	}

	cfg := scanConfig{
		GroupType: *group,
		Extract:   extract,
		Absolute:  *absolute,
		Pretty:    *pretty,
		Out:       *outPath,
	}
	if *configPath != "" {
		loaded, err := loadScanConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = mergeScanConfig(loaded, cfg, flagsSet(fs))
	}

	sourcePath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	blocks, err := tifscan.ExtractBlocks(string(source), cfg.GroupType, nil)
	if err != nil {
		return fmt.Errorf("extract blocks from %s: %w", sourcePath, err)
	}

	if len(cfg.Extract) > 0 {
		if err := checkExtractNames(cfg.Extract, tifscan.BlockNames(blocks)); err != nil {
			return err
		}
		blocks, err = tifscan.ExtractBlocks(string(source), cfg.GroupType, cfg.Extract)
		if err != nil {
			return fmt.Errorf("extract blocks from %s: %w", sourcePath, err)
		}
	}

	if err := tifscan.ValidateBlocks(blocks); err != nil {
		return fmt.Errorf("validate blocks: %w", err)
	}

	result := tifscan.Analyze(blocks, tifscan.AnalyzeOptions{Absolute: cfg.Absolute})

	out := os.Stdout
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := tifscan.WriteJSON(out, result, cfg.Pretty); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func loadScanConfig(path string) (scanConfig, error) {
	var cfg scanConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// mergeScanConfig overlays command-line values onto the file config for
// every flag that was explicitly set.
func mergeScanConfig(file, flags scanConfig, set map[string]bool) scanConfig {
	cfg := file
	if cfg.GroupType == "" {
		cfg.GroupType = "event"
	}
	if set["group"] {
		cfg.GroupType = flags.GroupType
	}
	if set["extract"] {
		cfg.Extract = flags.Extract
	}
	if set["absolute"] {
		cfg.Absolute = flags.Absolute
	}
	if set["pretty"] {
		cfg.Pretty = flags.Pretty
	}
	if set["out"] {
		cfg.Out = flags.Out
	}
	return cfg
}

func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// checkExtractNames rejects unknown block names up front, suggesting the
// closest available names instead of silently producing a partial scan.
func checkExtractNames(requested, available []string) error {
	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		known[name] = struct{}{}
	}
	for _, name := range requested {
		if _, ok := known[name]; ok {
			continue
		}
		ranks := fuzzy.RankFindNormalizedFold(name, available)
		sort.Sort(ranks)
		if len(ranks) > 3 {
			ranks = ranks[:3]
		}
		if len(ranks) > 0 {
			suggestions := make([]string, len(ranks))
			for i, r := range ranks {
				suggestions[i] = r.Target
			}
			return fmt.Errorf("unknown block %q (closest: %s)", name, strings.Join(suggestions, ", "))
		}
		return fmt.Errorf("unknown block %q", name)
	}
	return nil
}
