package finbrief

import (
	"strings"
	"testing"
)

func TestParseBlocksKinds(t *testing.T) {
	src := strings.Join([]string{
		"# Title",
		"",
		"Plain paragraph.",
		"- first bullet",
		"* second bullet",
		"3. third item",
		"---",
		"#### Deep heading",
	}, "\n")

	blocks := ParseBlocks(src)
	want := []BlockKind{
		BlockHeading, BlockBlank, BlockParagraph, BlockBullet,
		BlockBullet, BlockNumbered, BlockRule, BlockHeading,
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, k := range want {
		if blocks[i].Kind != k {
			t.Fatalf("block %d = %v, want %v", i, blocks[i].Kind, k)
		}
	}
	if blocks[0].Level != 1 || blocks[0].Text != "Title" {
		t.Fatalf("unexpected heading block: %+v", blocks[0])
	}
	if blocks[7].Level != 4 || blocks[7].Text != "Deep heading" {
		t.Fatalf("#### must map to level 4, got %+v", blocks[7])
	}
}

func TestParseBlocksHeadingPrecedence(t *testing.T) {
	cases := map[string]int{
		"# one":      1,
		"## two":     2,
		"### three":  3,
		"#### four":  4,
		"#not space": 0, // no space after the marker: a paragraph
	}
	for line, level := range cases {
		blocks := ParseBlocks(line)
		if len(blocks) != 1 {
			t.Fatalf("%q: got %d blocks", line, len(blocks))
		}
		if level == 0 {
			if blocks[0].Kind != BlockParagraph {
				t.Fatalf("%q: expected paragraph, got %v", line, blocks[0].Kind)
			}
			continue
		}
		if blocks[0].Kind != BlockHeading || blocks[0].Level != level {
			t.Fatalf("%q: got %+v, want heading level %d", line, blocks[0], level)
		}
	}
}

func TestParseBlocksTable(t *testing.T) {
	src := strings.Join([]string{
		"| Name | Value | Note |",
		"|---|---:|---|",
		"| alpha | 1 | first |",
		"| beta | 2 | second |",
		"after the table",
	}, "\n")

	blocks := ParseBlocks(src)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want table + paragraph: %+v", len(blocks), blocks)
	}
	table := blocks[0]
	if table.Kind != BlockTable {
		t.Fatalf("expected table, got %v", table.Kind)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(table.Rows))
	}
	if got := table.Rows[0]; len(got) != 3 || got[0] != "Name" || got[2] != "Note" {
		t.Fatalf("unexpected header row: %v", got)
	}
	if got := table.Rows[2][1]; got != "2" {
		t.Fatalf("unexpected cell: %q", got)
	}
	if blocks[1].Kind != BlockParagraph || blocks[1].Text != "after the table" {
		t.Fatalf("unexpected trailing block: %+v", blocks[1])
	}
}

func TestParseBlocksHeaderOnlyTableDropped(t *testing.T) {
	src := "| Only | Header |\n|---|---|\n\nnext"
	blocks := ParseBlocks(src)
	for _, b := range blocks {
		if b.Kind == BlockTable {
			t.Fatalf("header-only table must be dropped, got %+v", b)
		}
	}
	if len(blocks) != 2 || blocks[0].Kind != BlockBlank || blocks[1].Text != "next" {
		t.Fatalf("unexpected blocks: %+v", blocks)
	}
}

func TestParseBlocksTableStopsAtBlank(t *testing.T) {
	src := strings.Join([]string{
		"| A | B |",
		"|---|---|",
		"| 1 | 2 |",
		"",
		"| not | a | table | row |",
	}, "\n")
	blocks := ParseBlocks(src)
	if blocks[0].Kind != BlockTable || len(blocks[0].Rows) != 2 {
		t.Fatalf("unexpected table: %+v", blocks[0])
	}
	last := blocks[len(blocks)-1]
	if last.Kind != BlockParagraph {
		t.Fatalf("pipe line without separator must be a paragraph, got %v", last.Kind)
	}
}

func TestParseBlocksNumberedVerbatim(t *testing.T) {
	src := "7. seventh\n7. seventh again\n2. out of order"
	blocks := ParseBlocks(src)
	want := []string{"7", "7", "2"}
	for i, idx := range want {
		if blocks[i].Kind != BlockNumbered || blocks[i].Index != idx {
			t.Fatalf("block %d = %+v, want verbatim index %q", i, blocks[i], idx)
		}
	}
}

func TestParseBlocksRule(t *testing.T) {
	for _, line := range []string{"---", "----", "***", "*****"} {
		blocks := ParseBlocks(line)
		if len(blocks) != 1 || blocks[0].Kind != BlockRule {
			t.Fatalf("%q: expected rule, got %+v", line, blocks)
		}
	}
	for _, line := range []string{"--", "-*-", "--- not a rule"} {
		blocks := ParseBlocks(line)
		if blocks[0].Kind == BlockRule {
			t.Fatalf("%q must not be a rule", line)
		}
	}
}
