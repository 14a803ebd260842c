package tifscan

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ImportsBlockName is the reserved name of the synthetic block holding the
// imports region of a source file.
const ImportsBlockName = "__imports__"

var (
	// ErrNoBlocks is returned when extraction finds no matching blocks.
	ErrNoBlocks = errors.New("no artifact blocks found")
	// ErrEmptyBlock is returned when a block holds no scannable text.
	ErrEmptyBlock = errors.New("empty artifact block")
)

// Block is one artifact region sliced out of a larger source file.
// StartLine is 1-based and inclusive, EndLine exclusive, so TokenizeAt
// with Position{Line: StartLine, Column: 1} yields absolute coordinates.
type Block struct {
	Name      string `json:"name"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"-"`
	Chars     int    `json:"chars"`
}

var (
	importsStartLine = regexp.MustCompile(`^\s*#\s*\*{3}\s+imports\s*$`)
	topLevelLine     = regexp.MustCompile(`^\s*#\s*\*{3}\s+\S+`)
)

// ExtractBlocks locates the imports block and every "# ** <groupType>:
// <name>" section of source. When names is non-empty only the named
// sections are kept; the imports block is always included when present.
// Extraction over a source with no matching blocks is an error.
func ExtractBlocks(source, groupType string, names []string) ([]Block, error) {
	lines := strings.SplitAfter(source, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	sectionLine := regexp.MustCompile(
		`^\s*#\s*\*\*\s+` + regexp.QuoteMeta(groupType) + `:\s+(\S+)`)

	var wanted map[string]struct{}
	if len(names) > 0 {
		wanted = make(map[string]struct{}, len(names))
		for _, n := range names {
			wanted[strings.TrimSpace(n)] = struct{}{}
		}
	}

	imports := findImportsBlock(lines)

	var blocks []Block
	var current *Block
	closeCurrent := func(end int) {
		if current == nil {
			return
		}
		current.EndLine = end + 1
		current.Text = strings.Join(lines[current.StartLine-1:end], "")
		current.Chars = len(current.Text)
		blocks = append(blocks, *current)
		current = nil
	}

	for i, line := range lines {
		m := sectionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		closeCurrent(i)
		current = &Block{Name: m[1], StartLine: i + 1}
	}
	closeCurrent(len(lines))

	if wanted != nil {
		kept := blocks[:0]
		for _, b := range blocks {
			if _, ok := wanted[b.Name]; ok {
				kept = append(kept, b)
			}
		}
		blocks = kept
	}

	if imports != nil {
		blocks = append([]Block{*imports}, blocks...)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w for group %q", ErrNoBlocks, groupType)
	}
	return blocks, nil
}

// findImportsBlock scans for the "# *** imports" opener and slices
// through the next top-level marker. Files without an imports region
// yield nil.
func findImportsBlock(lines []string) *Block {
	start := -1
	for i, line := range lines {
		if start < 0 {
			if importsStartLine.MatchString(strings.TrimRight(line, "\n")) {
				start = i
			}
			continue
		}
		if topLevelLine.MatchString(line) {
			text := strings.Join(lines[start:i], "")
			return &Block{
				Name:      ImportsBlockName,
				StartLine: start + 1,
				EndLine:   i + 1,
				Text:      text,
				Chars:     len(text),
			}
		}
	}
	return nil
}

// ValidateBlocks gates a block list before tokenization: the list must be
// non-empty and every block must carry non-blank text.
func ValidateBlocks(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrNoBlocks
	}
	for _, b := range blocks {
		if strings.TrimSpace(b.Text) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyBlock, b.Name)
		}
	}
	return nil
}

// BlockNames returns the block names in order, for filter diagnostics.
func BlockNames(blocks []Block) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name
	}
	return names
}
