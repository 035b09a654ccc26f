package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/clbanning/mxj"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/alexandria-dm/sirxml/binding"
	"github.com/alexandria-dm/sirxml/internal/commandline"
	"github.com/alexandria-dm/sirxml/sirin"
	"github.com/alexandria-dm/sirxml/xmltree"
)

type cmdopts struct {
	Style      commandline.Style    `long:"style" default:"stream" description:"parser strategy: stream or dom"`
	Validate   bool                 `long:"validate" description:"validate documents against the sir/in schema"`
	Format     commandline.Format   `long:"format" default:"xml" description:"output format: xml, json or name"`
	Encoding   commandline.Encoding `long:"encoding" description:"character set of documents without an encoding declaration"`
	FallbackNS string               `long:"fallback-ns" value-name:"URI" description:"namespace of unqualified document elements"`
	Verbose    []bool               `short:"v" long:"verbose" description:"log parser activity; repeat for debug output"`
}

type input struct {
	name string
	r    io.Reader
}

func main() {
	os.Exit(_main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func _main(argv []string, stdin *os.File, stdout, stderr io.Writer) int {
	var opts cmdopts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	args, err := parser.ParseArgs(argv)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, err)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	var inputs []input
	switch {
	case len(args) > 0:
		for _, name := range args {
			inputs = append(inputs, input{name: name})
		}
	case !term.IsTerminal(int(stdin.Fd())):
		inputs = append(inputs, input{name: "<stdin>", r: stdin})
	default:
		fmt.Fprintln(stderr, "Usage: sirparse [options] FILE ...")
		return 1
	}

	cfg, err := configure(&opts, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("loading schema")
		return 1
	}
	for _, in := range inputs {
		if err := run(cfg, &opts, in, stdout); err != nil {
			logger.Error().Err(err).Str("file", in.name).Msg("parse failed")
			return 1
		}
	}
	return 0
}

func configure(opts *cmdopts, logger *zerolog.Logger) (*binding.Config, error) {
	cfg := sirin.NewConfig(
		binding.UseStrategy(opts.Style.Strategy),
		binding.LogOutput(logger),
		binding.LogLevel(loglevel(len(opts.Verbose))),
	)
	if opts.FallbackNS != "" {
		cfg.Option(binding.FallbackNamespace(opts.FallbackNS))
	}
	if opts.Validate {
		schema, err := sirin.LoadSchema()
		if err != nil {
			return nil, err
		}
		cfg.Option(binding.ValidateWith(schema))
	}
	return cfg, nil
}

func loglevel(verbose int) int {
	if verbose > 1 {
		return 5
	}
	return verbose
}

func run(cfg *binding.Config, opts *cmdopts, in input, w io.Writer) error {
	data, err := read(in)
	if err != nil {
		return err
	}
	if xmltree.DeclaredEncoding(data) == "" {
		if data, err = io.ReadAll(opts.Encoding.Reader(bytes.NewReader(data))); err != nil {
			return err
		}
	}
	cfg.Option(binding.LocationBase(in.name))
	root, err := cfg.Parse(data)
	if err != nil {
		return err
	}
	return output(w, opts.Format, root)
}

func read(in input) ([]byte, error) {
	if in.r != nil {
		return io.ReadAll(in.r)
	}
	return os.ReadFile(in.name)
}

func output(w io.Writer, format commandline.Format, root *binding.Root) error {
	switch format {
	case commandline.FormatName:
		_, err := fmt.Fprintf(w, "{%s}%s\t%s\n", root.Name.Space, root.Name.Local, root.Binding.Type)
		return err
	case commandline.FormatJSON:
		doc, err := binding.Marshal(root)
		if err != nil {
			return err
		}
		m, err := mxj.NewMapXml(doc)
		if err != nil {
			return err
		}
		js, err := m.JsonIndent("", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", js)
		return err
	default:
		doc, err := binding.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", doc)
		return err
	}
}
