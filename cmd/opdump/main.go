package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/veilstone/objectprop/op"
	"github.com/veilstone/objectprop/schema"
)

// Serialized files produced by the game client tooling carry a 4-byte
// magic ahead of the flags byte.
var fileMagic = []byte("BINd")

func main() {
	var (
		typesFile   = flag.String("types", "", "Path to type list file (json or yaml)")
		inFile      = flag.String("in", "", "Path to serialized object file")
		list        = flag.Bool("list", false, "List classes in the type list and exit")
		jsonOut     = flag.Bool("json", false, "Print the decoded object as JSON")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		lenient     = flag.Bool("lenient", false, "Ignore trailing bytes after the root object")
		maxDepth    = flag.Int("max-depth", op.DefaultMaxDepth, "Maximum object nesting depth")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *typesFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: opdump -types <types.json> -in <file.bin> [-json] [-lenient]")
		fmt.Fprintln(os.Stderr, "       opdump -types <types.json> -list")
		fmt.Fprintln(os.Stderr, "       opdump -types <types.json> -in <file.bin> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		op.SetLogger(logger)
	}

	reg, err := schema.LoadFile(*typesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		listClasses(os.Stdout, reg)
		return
	}

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required unless -list is given")
		os.Exit(1)
	}

	cfg := op.DefaultConfig()
	cfg.StrictTrailing = !*lenient
	cfg.MaxDepth = *maxDepth

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, reg, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(*inFile, reg, cfg, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readBlob loads a serialized object file and strips the optional file
// magic so the codec sees the flags byte first.
func readBlob(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	data = bytes.TrimPrefix(data, fileMagic)
	return data, nil
}

func dump(path string, reg *schema.Registry, cfg op.WireConfig, jsonOut bool) error {
	data, err := readBlob(path)
	if err != nil {
		return err
	}

	v, hdr, err := op.DecodeWithHeader(data, reg, cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if jsonOut {
		return writeJSON(os.Stdout, v)
	}

	printHeader(os.Stdout, path, len(data), hdr)
	printTree(os.Stdout, v, reg)
	return nil
}
