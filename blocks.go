package finbrief

import (
	"regexp"
	"strings"
)

// BlockKind identifies the semantic type of a parsed block.
type BlockKind uint8

const (
	// BlockBlank is an empty source line; it renders as a small vertical gap.
	BlockBlank BlockKind = iota
	// BlockHeading is an ATX heading of level 1-4.
	BlockHeading
	// BlockParagraph is a plain text run.
	BlockParagraph
	// BlockBullet is a single bullet list item.
	BlockBullet
	// BlockNumbered is a single numbered list item.
	BlockNumbered
	// BlockTable is a pipe table; the first row is the header.
	BlockTable
	// BlockRule is a horizontal rule.
	BlockRule
)

func (k BlockKind) String() string {
	switch k {
	case BlockBlank:
		return "blank"
	case BlockHeading:
		return "heading"
	case BlockParagraph:
		return "paragraph"
	case BlockBullet:
		return "bullet"
	case BlockNumbered:
		return "numbered"
	case BlockTable:
		return "table"
	case BlockRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Block is one semantic unit of a parsed report. Fields beyond Kind are
// populated per kind: Level for headings, Index and Text for numbered items,
// Rows for tables, Text for everything else that carries text.
type Block struct {
	Kind  BlockKind
	Level int
	Index string
	Text  string
	Rows  [][]string
}

var (
	tableSeparator = regexp.MustCompile(`^\|?[\s\-:|]+\|?[\s\-:|]*$`)
	numberedItem   = regexp.MustCompile(`^(\d+)\.\s(.+)$`)
)

// ParseBlocks segments src into an ordered block sequence. Lines are
// whitespace-trimmed before classification. A table needs a header row, a
// separator row and at least one data row; a header with no data rows is
// dropped entirely.
func ParseBlocks(src string) []Block {
	lines := strings.Split(src, "\n")
	blocks := make([]Block, 0, len(lines))
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			blocks = append(blocks, Block{Kind: BlockBlank})
			i++
			continue
		}

		if strings.Contains(line, "|") && i+1 < len(lines) &&
			tableSeparator.MatchString(strings.TrimSpace(lines[i+1])) {
			rows := [][]string{splitTableRow(line)}
			i += 2 // consume header and separator
			for i < len(lines) {
				rowLine := strings.TrimSpace(lines[i])
				if rowLine == "" || !strings.Contains(rowLine, "|") {
					break
				}
				if cells := splitTableRow(rowLine); len(cells) > 0 {
					rows = append(rows, cells)
				}
				i++
			}
			// A lone header row is not a table; it is dropped rather than
			// reinterpreted as text.
			if len(rows) >= 2 {
				blocks = append(blocks, Block{Kind: BlockTable, Rows: rows})
			}
			continue
		}

		if level, text, ok := headingLine(line); ok {
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Text: text})
			i++
			continue
		}

		if isRuleLine(line) {
			blocks = append(blocks, Block{Kind: BlockRule})
			i++
			continue
		}

		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			blocks = append(blocks, Block{Kind: BlockBullet, Text: line[2:]})
			i++
			continue
		}

		if m := numberedItem.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: BlockNumbered, Index: m[1], Text: m[2]})
			i++
			continue
		}

		blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
		i++
	}
	return blocks
}

// headingLine recognizes 1-4 leading hashes followed by a space. Deeper
// levels are tested first so "#### " is never mistaken for a bare "#".
func headingLine(line string) (level int, text string, ok bool) {
	for level = 4; level >= 1; level-- {
		marker := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, marker) {
			return level, strings.TrimSpace(line[len(marker):]), true
		}
	}
	return 0, "", false
}

// isRuleLine reports whether line is three or more dashes or asterisks and
// nothing else.
func isRuleLine(line string) bool {
	if len(line) < 3 {
		return false
	}
	first := line[0]
	if first != '-' && first != '*' {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != first {
			return false
		}
	}
	return true
}

// splitTableRow splits a pipe-delimited row into trimmed cells, discarding
// the empty leading/trailing fields produced by pipe framing. Interior empty
// cells are preserved.
func splitTableRow(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
