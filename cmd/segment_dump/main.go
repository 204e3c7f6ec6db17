// segment_dump prints the postings of one segment of a stored arena as
// "<id,impact>" pairs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	postings "github.com/lezhnev74/postings_codec"
	"github.com/lezhnev74/postings_codec/codec"
	"github.com/lezhnev74/postings_codec/sink"
)

type config struct {
	dir       string
	key       string
	codecName string
	segment   postings.Segment
	logLevel  string
}

var errUsage = errors.New("usage")

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("segment_dump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.dir, "dir", ".", "directory holding the arena file")
	fs.StringVar(&cfg.key, "key", "", "arena key, as returned when it was saved")
	fs.StringVar(&cfg.codecName, "codec", codec.EliasDeltaName, "codec: "+strings.Join(codec.Names(), ", "))
	fs.Uint64Var(&cfg.segment.Impact, "impact", 1, "impact reported with every posting")
	fs.Uint64Var(&cfg.segment.Count, "count", 0, "number of postings in the segment")
	fs.Uint64Var(&cfg.segment.Offset, "offset", 0, "first byte of the segment in the arena")
	fs.Uint64Var(&cfg.segment.End, "end", 0, "end of the segment in the arena, exclusive")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "debug, info, warn or error")

	err := fs.Parse(args)
	if err != nil {
		return cfg, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if cfg.key == "" {
		return cfg, fmt.Errorf("%w: -key is required", errUsage)
	}
	if cfg.segment.Count == 0 || cfg.segment.Count > math.MaxInt {
		return cfg, fmt.Errorf("%w: -count must be in [1,%d]", errUsage, math.MaxInt)
	}
	if cfg.segment.End <= cfg.segment.Offset {
		return cfg, fmt.Errorf("%w: -end must be past -offset", errUsage)
	}
	return cfg, nil
}

func setupLogger(level string) {
	l := slog.LevelWarn
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "error":
		l = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

func run(cfg config, out io.Writer) error {
	log := slog.Default().With("component", "segment_dump")

	c, err := codec.New(cfg.codecName)
	if err != nil {
		return err
	}

	arena, err := postings.LoadArena(cfg.dir, cfg.key)
	if err != nil {
		return err
	}
	src, err := arena.Slice(cfg.segment)
	if err != nil {
		return err
	}
	log.Debug("segment loaded", "codec", c.Name(), "arena_bytes", arena.Len(), "segment_bytes", len(src))

	p := sink.NewPrinter(out)
	c.SetWeight(cfg.segment.Impact)
	err = codec.NewValidating(c).DecodeWithWriterChecked(p, int(cfg.segment.Count), src)
	if err != nil {
		return err
	}
	p.WriteString("\n")
	return p.Flush()
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "segment_dump: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "usage: segment_dump -key <key> -count <n> -offset <from> -end <to> [-dir <dir>] [-codec <name>] [-impact <n>]")
		}
		os.Exit(1)
	}
	setupLogger(cfg.logLevel)

	err = run(cfg, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "segment_dump: %v\n", err)
		os.Exit(1)
	}
}
