// Package main provides the nbt command-line tool.
//
// Usage:
//
//	nbt dump [--format snbt|yaml|json|cbor] [--compression auto|none|gzip|zlib|zstd|lz4] [--unnamed] [--jobs N] FILE...
//	nbt recompress --compression gzip|zlib|zstd|lz4|none [--unnamed] IN OUT
//	nbt version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/born-ml/nbt/internal/export"
	"github.com/born-ml/nbt/internal/nbtfile"
	"github.com/born-ml/nbt/internal/parallel"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. Output goes to stdout; logs and help go
// to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	switch args[0] {
	case "dump":
		return runDump(ctx, args[1:], stdout, stderr)
	case "recompress":
		return runRecompress(args[1:], stderr)
	case "version", "--version":
		fmt.Fprintf(stdout, "nbt %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %q", args[0])
	}
}

// commonFlags are shared by every file-handling subcommand.
type commonFlags struct {
	compression string
	unnamed     bool
	verbose     bool
}

func (c *commonFlags) register(flagSet *pflag.FlagSet, compressionDefault, compressionUsage string) {
	flagSet.StringVarP(&c.compression, "compression", "c", compressionDefault, compressionUsage)
	flagSet.BoolVar(&c.unnamed, "unnamed", false, "root tag carries no name")
	flagSet.BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")
	flagSet.BoolP("help", "h", false, "show help")
}

func (c *commonFlags) logger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// parseFlags parses args and reports whether help was requested.
func parseFlags(flagSet *pflag.FlagSet, args []string, stderr io.Writer) (bool, error) {
	flagSet.SetOutput(stderr)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	help, _ := flagSet.GetBool("help")
	if help {
		flagSet.PrintDefaults()
	}
	return help, nil
}

func runDump(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags commonFlags
	var format string
	var jobs int

	flagSet := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	flags.register(flagSet, "auto", "input compression: auto, none, gzip, zlib, zstd or lz4")
	flagSet.StringVarP(&format, "format", "f", "snbt", "output format: snbt, yaml, json or cbor")
	flagSet.IntVarP(&jobs, "jobs", "j", 0, "files read concurrently (0 = one per CPU)")

	if help, err := parseFlags(flagSet, args, stderr); help || err != nil {
		return err
	}
	if flagSet.NArg() == 0 {
		return errors.New("dump: expected at least 1 file argument")
	}

	compression, err := nbtfile.ParseCompression(flags.compression)
	if err != nil {
		return err
	}
	outFormat, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	logger := flags.logger(stderr)
	paths := flagSet.Args()

	docs, err := nbtfile.ReadFiles(ctx, paths,
		nbtfile.Options{Compression: compression, Unnamed: flags.unnamed},
		parallel.Config{Workers: jobs})
	if err != nil {
		return err
	}

	for i, doc := range docs {
		logger.Debug("read document",
			"path", paths[i],
			"compression", doc.Compression.String(),
			"root_name", doc.Root.Name,
			"root_kind", doc.Root.Tag.Kind().String())

		// CBOR output stays a plain CBOR sequence.
		if len(docs) > 1 && outFormat != export.FormatCBOR {
			fmt.Fprintf(stdout, "==> %s <==\n", paths[i])
		}
		if err := export.Encode(stdout, doc.Root.Tag, outFormat); err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
	}
	return nil
}

func runRecompress(args []string, stderr io.Writer) error {
	var flags commonFlags

	flagSet := pflag.NewFlagSet("recompress", pflag.ContinueOnError)
	flags.register(flagSet, "gzip", "output compression: none, gzip, zlib, zstd or lz4")

	if help, err := parseFlags(flagSet, args, stderr); help || err != nil {
		return err
	}
	if flagSet.NArg() != 2 {
		return fmt.Errorf("recompress: expected IN and OUT arguments, got %d", flagSet.NArg())
	}

	target, err := nbtfile.ParseCompression(flags.compression)
	if err != nil {
		return err
	}

	logger := flags.logger(stderr)
	in, out := flagSet.Arg(0), flagSet.Arg(1)

	doc, err := nbtfile.ReadFile(in, nbtfile.Options{Unnamed: flags.unnamed})
	if err != nil {
		return err
	}
	if err := nbtfile.WriteFile(out, doc.Root, nbtfile.Options{Compression: target, Unnamed: flags.unnamed}); err != nil {
		return err
	}

	if target == nbtfile.CompressionAuto {
		target = nbtfile.CompressionGzip
	}
	logger.Info("recompressed",
		"in", in,
		"out", out,
		"from", doc.Compression.String(),
		"to", target.String())
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `nbt %s - inspect and convert NBT files

Usage:
  nbt dump [flags] FILE...       Print files as snbt, yaml, json or cbor
  nbt recompress [flags] IN OUT  Rewrite IN to OUT with another compression
  nbt version                    Show version

Run "nbt <command> --help" for command flags.
`, version)
}
