// Command mdconvert converts dialect markdown to block JSON and back.
//
//	mdconvert -in notes.md -out blocks.json
//	mdconvert -reverse -in blocks.json
//	mdconvert -syntax
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"notemark-be/internal/pkg/logger"
	"notemark-be/pkg/block"
	"notemark-be/pkg/converter"
	"notemark-be/pkg/resolver"

	"github.com/fatih/color"
)

const logModule = "mdconvert"

// cliLogger keeps stdout for converted output: warnings go to stderr in
// yellow and everything goes to the log file.
type cliLogger struct {
	file    *logger.ZapLogger
	verbose bool
}

func (l *cliLogger) Debug(module, message string, details map[string]interface{}) {
	l.file.Debug(module, message, details)
	if l.verbose {
		color.New(color.FgHiBlack).Fprintf(os.Stderr, "debug: %s %v\n", message, details)
	}
}

func (l *cliLogger) Warn(module, message string, details map[string]interface{}) {
	l.file.Warn(module, message, details)
	color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s %v\n", message, details)
}

func main() {
	in := flag.String("in", "", "input file (default stdin)")
	out := flag.String("out", "", "output file (default stdout)")
	reverse := flag.Bool("reverse", false, "convert block JSON to markdown")
	showSyntax := flag.Bool("syntax", false, "print the syntax cheat sheet and exit")
	names := flag.String("names", "", `JSON file of mention names, {"page": {"Name": "id"}}`)
	indent := flag.Int("indent", 4, "spaces per nesting level")
	logFile := flag.String("log", "mdconvert.log", "log file")
	verbose := flag.Bool("v", false, "print debug messages")
	flag.Parse()

	log := &cliLogger{file: logger.NewIsolatedLogger(*logFile), verbose: *verbose}
	defer log.file.Sync()

	opts := []converter.Option{
		converter.WithLogger(log),
		converter.WithIndentUnit(*indent),
	}
	if *names != "" {
		lookup, err := resolver.LoadStaticLookup(*names)
		if err != nil {
			fail(err)
		}
		opts = append(opts, converter.WithResolvers(resolver.NewResolvers(lookup, nil)))
	}
	conv := converter.New(opts...)

	if *showSyntax {
		fmt.Println(conv.Syntax().Cheatsheet())
		return
	}

	input, err := readInput(*in)
	if err != nil {
		fail(err)
	}

	output, err := convert(context.Background(), conv, input, *reverse)
	if err != nil {
		log.file.Error(logModule, "Conversion failed", map[string]interface{}{"error": err.Error(), "in": *in})
		fail(err)
	}

	if err := writeOutput(*out, output); err != nil {
		fail(err)
	}
	if *out != "" {
		color.Green("✅ Wrote %s", *out)
	}
}

func convert(ctx context.Context, conv *converter.Converter, input []byte, reverse bool) ([]byte, error) {
	if reverse {
		blocks, err := block.DecodeList(input)
		if err != nil {
			return nil, err
		}
		markdown, err := conv.BlocksToMarkdown(ctx, blocks)
		if err != nil {
			return nil, err
		}
		return []byte(markdown + "\n"), nil
	}

	blocks, err := conv.MarkdownToBlocks(ctx, string(input))
	if err != nil {
		return nil, err
	}
	data, err := block.EncodeList(blocks)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fail(err error) {
	color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
