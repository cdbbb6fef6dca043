// gosdml inspects, encodes and decodes typed values described by SDML/DDML
// (XML) or YAML description documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"

	gosdml "github.com/reoring/gosdml"
	"github.com/reoring/gosdml/codec"
	"github.com/reoring/gosdml/internal/config"
)

// exitError carries a process exit code without a message.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitError) ExitCode() int { return int(e) }

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env is the state shared by every subcommand. cfg and log are set by
// parse.
type env struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool

	cfg *config.Config
	log *slog.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return exitError(2)
	}
	sub, rest := args[0], args[1:]
	var cmd func(*env, []string) error
	switch sub {
	case "describe":
		cmd = describeCmd
	case "encode":
		cmd = encodeCmd
	case "decode":
		cmd = decodeCmd
	case "compat":
		cmd = compatCmd
	case "units":
		cmd = unitsCmd
	case "validate":
		cmd = validateCmd
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return exitError(2)
	}

	return cmd(&env{ctx: ctx, stdout: stdout, stderr: stderr}, rest)
}

func usage(w io.Writer) {
	fmt.Fprint(w, `gosdml CLI

Usage:
  gosdml describe SCHEMA [--json-schema]
  gosdml encode   SCHEMA [-o FILE] [--format binary|json|cbor] [--compress zstd|lz4]
  gosdml decode   SCHEMA DATA [--format ...] [--compress ...] [--as sdml|json|text]
  gosdml compat   DST SRC
  gosdml units    A B
  gosdml validate SCHEMA

Global flags: --config FILE, -v/--verbose
Schema files ending in .yaml or .yml are read as YAML descriptions.
`)
}

// newFlags returns a flag set carrying the global flags.
func newFlags(name string, e *env) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.StringVar(&e.configPath, "config", "", "YAML config file (default $"+config.EnvVar+")")
	fs.BoolVarP(&e.verbose, "verbose", "v", false, "log at debug level")
	return fs
}

// parse parses args and then loads the configuration and the logger.
func (e *env) parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	level := slog.LevelInfo
	if e.verbose {
		level = slog.LevelDebug
	}
	e.log = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.log.Debug("configuration loaded", "codec", cfg.CodecName(), "max_depth", cfg.Load.MaxDepth)
	return nil
}

func marshalIndent(x any) ([]byte, error) {
	return json.MarshalIndent(x, "", "  ")
}

func (e *env) loadOpt() gosdml.LoadOpt {
	return gosdml.LoadOpt{MaxDepth: e.cfg.Load.MaxDepth, MaxBytes: e.cfg.Load.MaxBytes}
}

func (e *env) textOpt() gosdml.TextOpt {
	return gosdml.TextOpt{Indent: e.cfg.Output.Indent, Tab: e.cfg.Output.Tab}
}

func schemaSource(path string) (gosdml.SchemaSource, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return gosdml.YAMLBytes(b), nil
	default:
		return gosdml.XMLBytes(b), nil
	}
}

func (e *env) loadValue(path string) (*gosdml.Value, error) {
	src, err := schemaSource(path)
	if err != nil {
		return nil, err
	}
	v, err := gosdml.FromSchema(src, e.loadOpt())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// codecFor resolves --format/--compress against the configuration.
func (e *env) codecFor(format, compress string) (gosdml.Codec, error) {
	if format == "" {
		format = e.cfg.Output.Format
	}
	if compress == "" {
		compress = e.cfg.Output.Compression
	}
	name := format
	if compress != "" && compress != "none" {
		name += "+" + compress
	}
	return codec.ByName(name)
}

func describeCmd(e *env, args []string) error {
	fs := newFlags("describe", e)
	asJSONSchema := fs.Bool("json-schema", false, "print a JSON Schema instead of DDML")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("describe: expected SCHEMA")
	}
	v, err := e.loadValue(fs.Arg(0))
	if err != nil {
		return err
	}
	if *asJSONSchema {
		b, err := marshalIndent(v.JSONSchema())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(e.stdout, string(b))
		return err
	}
	_, err = io.WriteString(e.stdout, v.DDML(e.textOpt()))
	return err
}

func encodeCmd(e *env, args []string) error {
	fs := newFlags("encode", e)
	out := fs.StringP("output", "o", "", "output file (default stdout)")
	format := fs.String("format", "", "binary, json or cbor")
	compress := fs.String("compress", "", "zstd, lz4 or none")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("encode: expected SCHEMA")
	}
	v, err := e.loadValue(fs.Arg(0))
	if err != nil {
		return err
	}
	c, err := e.codecFor(*format, *compress)
	if err != nil {
		return err
	}
	b, err := gosdml.Encode(e.ctx, c, v)
	if err != nil {
		return err
	}
	e.log.Info("encoded", "codec", c.Name(), "bytes", len(b), "wire_bytes", v.SizeBytes(), "blake3", codec.Sum(v).String())
	if *out == "" {
		_, err = e.stdout.Write(b)
		return err
	}
	return os.WriteFile(*out, b, 0o644)
}

func decodeCmd(e *env, args []string) error {
	fs := newFlags("decode", e)
	format := fs.String("format", "", "binary, json or cbor")
	compress := fs.String("compress", "", "zstd, lz4 or none")
	as := fs.String("as", "sdml", "output: sdml, json or text")
	if err := e.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("decode: expected SCHEMA DATA")
	}
	v, err := e.loadValue(fs.Arg(0))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	c, err := e.codecFor(*format, *compress)
	if err != nil {
		return err
	}
	if err := gosdml.Decode(e.ctx, c, data, v); err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(1), err)
	}
	e.log.Debug("decoded", "codec", c.Name(), "bytes", len(data), "blake3", codec.SumBytes(data).String())

	switch *as {
	case "sdml":
		_, err = io.WriteString(e.stdout, v.SDML(e.textOpt()))
	case "json":
		var b []byte
		if b, err = v.MarshalJSON(); err == nil {
			_, err = fmt.Fprintln(e.stdout, string(b))
		}
	case "text":
		_, err = fmt.Fprintln(e.stdout, v.AsText())
	default:
		err = fmt.Errorf("decode: unknown --as %q", *as)
	}
	return err
}

func compatCmd(e *env, args []string) error {
	fs := newFlags("compat", e)
	if err := e.parse(fs, args); err != nil {
		return err
	}
	args = fs.Args()
	if len(args) != 2 {
		return fmt.Errorf("compat: expected DST SRC")
	}
	dst, err := e.loadValue(args[0])
	if err != nil {
		return err
	}
	src, err := e.loadValue(args[1])
	if err != nil {
		return err
	}
	rank := dst.CanAssignFrom(src)
	e.log.Debug("compared", "dst", dst.Name(), "src", src.Name(), "rank", rank.String())
	_, err = fmt.Fprintln(e.stdout, rank)
	return err
}

func unitsCmd(e *env, args []string) error {
	fs := newFlags("units", e)
	if err := e.parse(fs, args); err != nil {
		return err
	}
	args = fs.Args()
	if len(args) != 2 {
		return fmt.Errorf("units: expected A B")
	}
	_, err := fmt.Fprintln(e.stdout, gosdml.UnitsMatch(args[0], args[1]))
	return err
}

func validateCmd(e *env, args []string) error {
	fs := newFlags("validate", e)
	if err := e.parse(fs, args); err != nil {
		return err
	}
	args = fs.Args()
	if len(args) != 1 {
		return fmt.Errorf("validate: expected SCHEMA")
	}
	src, err := schemaSource(args[0])
	if err != nil {
		return err
	}
	iss := gosdml.ValidateSchema(src, e.loadOpt())
	for _, it := range iss {
		fmt.Fprintf(e.stdout, "%s\t%s\t%s\n", it.Path, it.Code, it.Message)
	}
	if len(iss) > 0 {
		e.log.Warn("schema has issues", "file", args[0], "count", len(iss))
		return exitError(1)
	}
	fmt.Fprintln(e.stdout, "ok")
	return nil
}
