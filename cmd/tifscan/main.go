package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "scan":
		return scanCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <scan|tokens|repl> [flags] <source-file>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  scan    extract artifact blocks, tokenize them, and emit a JSON scan result")
	fmt.Fprintln(os.Stderr, "  tokens  print the token stream of a source file")
	fmt.Fprintln(os.Stderr, "  repl    interactive token explorer")
	fmt.Fprintln(os.Stderr, "Scan flags:")
	fmt.Fprintln(os.Stderr, "  -group <type>")
	fmt.Fprintln(os.Stderr, "    artifact group type to extract (default \"event\")")
	fmt.Fprintln(os.Stderr, "  -extract <name>")
	fmt.Fprintln(os.Stderr, "    block name to extract (repeatable)")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    YAML scan configuration")
	fmt.Fprintln(os.Stderr, "  -absolute")
	fmt.Fprintln(os.Stderr, "    report positions in original-file coordinates")
	fmt.Fprintln(os.Stderr, "  -pretty")
	fmt.Fprintln(os.Stderr, "    indent the JSON output")
	fmt.Fprintln(os.Stderr, "  -out <file>")
	fmt.Fprintln(os.Stderr, "    write the result to a file instead of stdout")
	fmt.Fprintln(os.Stderr, "Tokens flags:")
	fmt.Fprintln(os.Stderr, "  -defects")
	fmt.Fprintln(os.Stderr, "    list only unrecognized characters")
	fmt.Fprintln(os.Stderr, "  -dump")
	fmt.Fprintln(os.Stderr, "    raw dump of the token stream")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

type nameList []string

func (l *nameList) String() string {
	return strings.Join(*l, ",")
}

func (l *nameList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}
