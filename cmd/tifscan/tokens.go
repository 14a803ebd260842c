package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/tiferet-tools/tifscan/tifscan"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	artifactStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	idiomStyle    = lipgloss.NewStyle().Foreground(highlightColor)
	keywordStyle  = lipgloss.NewStyle().Foreground(successColor)
	defectStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
)

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	defectsOnly := fs.Bool("defects", false, "list only unrecognized characters")
	dump := fs.Bool("dump", false, "raw dump of the token stream")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("tifscan tokens: source file required")
	}
	sourcePath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve source path: %w", err)
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	tokens := tifscan.Tokenize(string(source))

	if *dump {
		spew.Fdump(os.Stdout, tokens)
		return nil
	}

	if *defectsOnly {
		defects := tifscan.Defects(tokens)
		if len(defects) == 0 {
			fmt.Println("No defects found")
			return nil
		}
		for _, d := range defects {
			fmt.Printf("%s:%d:%d: unrecognized character %q\n",
				sourcePath, d.Start.Line, d.Start.Column, d.Literal)
		}
		return fmt.Errorf("found %d lexical defect(s)", len(defects))
	}

	for _, tok := range tokens {
		if tok.Type == tifscan.TokenNewline {
			continue
		}
		pos := mutedStyle.Render(fmt.Sprintf("%4d:%-3d", tok.Start.Line, tok.Start.Column))
		kind := tokenStyle(tok).Render(fmt.Sprintf("%-22s", string(tok.Type)))
		line := fmt.Sprintf("%s %s %q", pos, kind, tok.Literal)
		if tok.Value != "" {
			line += mutedStyle.Render(" = " + tok.Value)
		}
		fmt.Println(line)
	}
	return nil
}

func tokenStyle(tok tifscan.Token) lipgloss.Style {
	switch {
	case tok.Type == tifscan.TokenUnknown:
		return defectStyle
	case tok.IsArtifact():
		return artifactStyle
	case tok.IsDomainIdiom():
		return idiomStyle
	case tok.IsKeyword():
		return keywordStyle
	default:
		return mutedStyle
	}
}
