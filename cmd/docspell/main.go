// Command docspell extracts documentation comments from a tree, checks them
// (currently: paragraph reflow against a configured max line width), and
// either reports or applies the resulting suggestions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"docspell.dev/docspell/config"
	"docspell.dev/docspell/driver"
	"docspell.dev/docspell/extract"
	"docspell.dev/docspell/obslog"
	"docspell.dev/docspell/patch"
	"docspell.dev/docspell/reflow"
	"docspell.dev/docspell/suggestion"
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "docspell: %v\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}

func run() (int, error) {
	configPath := flag.String("config", "", "path to a docspell.toml configuration file")
	fix := flag.Bool("fix", false, "apply suggested patches instead of just reporting them")
	recursive := flag.Bool("recursive", true, "recurse into subdirectories")
	devComments := flag.Bool("dev-comments", false, "also check ordinary (non-doc) comments")
	workers := flag.Int("workers", 0, "worker pool size, 0 selects runtime.NumCPU() (logical CPUs)")
	mistakeExitCode := flag.Int("mistake-exit-code", 1, "exit code to use when suggestions are found and -fix is not set")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(obslog.AttrsWrap(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))))

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return 1, err
		}
		cfg = loaded
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		// Wait for any write already underway to finish before letting the
		// rest of the run see cancellation, so a signal can never land
		// mid-write.
		patch.BeginSignalHandling()
		cancel()
	}()
	defer signal.Stop(sigCh)
	ctx = obslog.WithAttrs(ctx, slog.String("run_id", obslog.RunID()))

	e := extract.Extractor{Options: extract.Options{DevComments: *devComments, Recursive: *recursive}}
	doc, err := e.Extract(paths)
	if err != nil {
		return 1, fmt.Errorf("extracting documentation: %w", err)
	}

	var units []driver.Unit
	for _, o := range doc.Origins() {
		units = append(units, driver.Unit{Origin: o, Chunks: doc.Chunks(o)})
	}

	reflowCfg := reflow.Config{MaxLineWidth: cfg.MaxLineLength}

	checker := func(ctx context.Context, u driver.Unit) ([]suggestion.Suggestion, error) {
		var out []suggestion.Suggestion
		for _, c := range u.Chunks {
			if cfg.VariantPolicy[c.Variant()].SkipReflow {
				continue
			}
			sugs, err := reflow.Suggest(u.Origin, c, reflowCfg)
			if err != nil {
				return nil, err
			}
			out = append(out, sugs...)
		}
		return out, nil
	}

	result, err := driver.Run(ctx, units, checker, driver.Options{Workers: *workers})
	if err != nil {
		return 1, fmt.Errorf("running checks: %w", err)
	}

	if result.Finish == driver.Abort {
		return result.Finish.ExitCode(*mistakeExitCode), nil
	}

	if !*fix {
		for _, s := range result.Suggestions {
			fmt.Printf("%s: %s\n", s.Origin, strings.TrimSpace(s.Message))
		}
		return result.Finish.ExitCode(*mistakeExitCode), nil
	}

	if err := applyFixes(result.Suggestions); err != nil {
		return 1, fmt.Errorf("applying fixes: %w", err)
	}
	return 0, nil
}

// applyFixes groups suggestions by file and rewrites each file once.
func applyFixes(suggestions []suggestion.Suggestion) error {
	byPath := map[string][]suggestion.Suggestion{}
	var order []string
	for _, s := range suggestions {
		path := s.Origin.Path
		if _, ok := byPath[path]; !ok {
			order = append(order, path)
		}
		byPath[path] = append(byPath[path], s)
	}

	for _, path := range order {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}
		lines := strings.Split(string(data), "\n")

		var patches []patch.Patch
		for _, s := range byPath[path] {
			bandaids, err := patch.Split(s)
			if err != nil {
				return fmt.Errorf("splitting suggestion for %q: %w", path, err)
			}
			for _, b := range bandaids {
				patches = append(patches, patch.FromBandAid(b))
			}
		}

		patched, err := patch.ApplyPatches(patches, lines)
		if err != nil {
			slog.Error("docspell: skipping file due to patch error", "path", path, "error", err)
			continue
		}
		if err := patch.WriteFile(path, []byte(patched), 0o644); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
	}
	return nil
}
