package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sable-lang/sable/internal/diag"
	"github.com/sable-lang/sable/internal/lexer"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sablec <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  tokens <file>   Tokenize a Sable source file and dump the tokens\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "tokens":
		runTokens(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runTokens(args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: sablec tokens <file>\n")
		os.Exit(1)
	}
	path := args[0]

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sablec: cannot read %s: %v\n", path, err)
		os.Exit(1)
	}

	handler := diag.NewHandler()
	toks := lexer.New(string(src), path, handler).Tokenize()

	for _, tok := range toks {
		fmt.Printf("%s:%d:%d\t%s\t%q\n", tok.File, tok.Line, tok.Column, tok.Kind, tok.Lexeme)
	}

	for _, d := range handler.Diagnostics() {
		fmt.Fprintln(os.Stderr, d)
	}
	if handler.HasErrors() {
		os.Exit(1)
	}
}
