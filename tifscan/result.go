package tifscan

import (
	"encoding/json"
	"io"
)

// ScanResult is the assembled outcome of tokenizing a set of blocks.
type ScanResult struct {
	Blocks     []Block `json:"blocks"`
	Tokens     []Token `json:"tokens"`
	TokenCount int     `json:"token_count"`
	Metrics    Metrics `json:"metrics"`
}

// AnalyzeOptions tunes block analysis.
type AnalyzeOptions struct {
	// Absolute reports token positions in original-file coordinates by
	// translating each block's tokens by its start line.
	Absolute bool
}

// Analyze tokenizes every block in order and assembles the scan result.
func Analyze(blocks []Block, opts AnalyzeOptions) ScanResult {
	var tokens []Token
	for _, b := range blocks {
		if opts.Absolute {
			tokens = append(tokens, TokenizeAt(b.Text, Position{Line: b.StartLine, Column: 1})...)
		} else {
			tokens = append(tokens, Tokenize(b.Text)...)
		}
	}
	return ScanResult{
		Blocks:     blocks,
		Tokens:     tokens,
		TokenCount: len(tokens),
		Metrics:    ComputeMetrics(tokens),
	}
}

// WriteJSON emits a scan result as JSON.
func WriteJSON(w io.Writer, result ScanResult, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
