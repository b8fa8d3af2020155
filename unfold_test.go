package vcard4

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Unfolding
// ============================================================

func TestUnfold_JoinsContinuationLines(t *testing.T) {
	src := "NOTE:This is a long\r\n  description.\r\nFN:Jane\r\n"
	lines := unfold(src)
	require.Len(t, lines, 2)
	assert.Equal(t, "NOTE:This is a long description.", lines[0].text)
	assert.Equal(t, 1, lines[0].num)
	assert.Equal(t, "FN:Jane", lines[1].text)
	assert.Equal(t, 3, lines[1].num)
}

func TestUnfold_TabContinuation(t *testing.T) {
	lines := unfold("NOTE:ab\r\n\tcd\r\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "NOTE:abcd", lines[0].text)
}

func TestUnfold_OnlyOneWhitespaceByteIsConsumed(t *testing.T) {
	// The second space belongs to the content.
	lines := unfold("NOTE:ab\r\n  cd\r\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "NOTE:ab cd", lines[0].text)
}

func TestUnfold_LineBreakVariants(t *testing.T) {
	for _, brk := range []string{"\r\n", "\n", "\r"} {
		lines := unfold("FN:A" + brk + "FN:B" + brk)
		require.Len(t, lines, 2, "break %q", brk)
		assert.Equal(t, "FN:A", lines[0].text)
		assert.Equal(t, "FN:B", lines[1].text)
		assert.Equal(t, 2, lines[1].num)
	}
}

func TestUnfold_MissingFinalBreak(t *testing.T) {
	lines := unfold("FN:Jane")
	require.Len(t, lines, 1)
	assert.Equal(t, "FN:Jane", lines[0].text)
}

func TestUnfold_FoldedLineKeepsStartingLineNumber(t *testing.T) {
	lines := unfold("FN:A\r\nNOTE:a\r\n b\r\n c\r\nFN:B\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 2, lines[1].num)
	assert.Equal(t, "NOTE:abc", lines[1].text)
	assert.Equal(t, 5, lines[2].num)
}

// ============================================================
// Folding
// ============================================================

func TestFoldLine_ShortLineUntouched(t *testing.T) {
	line := strings.Repeat("a", 75)
	assert.Equal(t, line, foldLine(line))
}

func TestFoldLine_BreaksAtOctetBoundary(t *testing.T) {
	line := strings.Repeat("a", 76)
	folded := foldLine(line)
	assert.Equal(t, strings.Repeat("a", 75)+"\r\n "+"a", folded)
}

func TestFoldLine_NeverSplitsRunes(t *testing.T) {
	// Two-byte rune straddling the boundary must move to the next
	// physical line whole.
	line := strings.Repeat("a", 74) + "é" + strings.Repeat("b", 10)
	for _, phys := range strings.Split(foldLine(line), "\r\n") {
		assert.True(t, utf8.ValidString(phys), "split rune in %q", phys)
	}
}

func TestFoldLine_NeverSplitsEscapePairs(t *testing.T) {
	line := "NOTE:" + strings.Repeat("a", 68) + `\;` + "tail"
	for _, phys := range strings.Split(foldLine(line), "\r\n") {
		trimmed := strings.TrimSuffix(phys, `\`)
		assert.Equal(t, phys, trimmed, "escape pair split in %q", phys)
	}
}

func TestFoldLine_PhysicalLinesWithinLimit(t *testing.T) {
	line := "NOTE:" + strings.Repeat("word ", 60)
	for _, phys := range strings.Split(foldLine(line), "\r\n") {
		assert.LessOrEqual(t, len(phys), 75)
	}
}

func TestFoldUnfold_Inverse(t *testing.T) {
	inputs := []string{
		strings.Repeat("x", 200),
		"NOTE:" + strings.Repeat("é", 100),
		"NOTE:" + strings.Repeat(`\n`, 80),
		strings.Repeat("a", 75),
		strings.Repeat("a", 76),
		strings.Repeat("a", 150),
		strings.Repeat("a", 151),
	}
	for _, line := range inputs {
		lines := unfold(foldLine(line) + "\r\n")
		require.Len(t, lines, 1)
		assert.Equal(t, line, lines[0].text)
	}
}
