package display

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	table := NewTable("MODEL", "SIZE")
	table.AddRow("phi4", "3.8B")
	table.AddRow("tinyllama", "1.1B")

	var sb strings.Builder
	table.Render(&sb)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "MODEL      SIZE", lines[0])
	require.Equal(t, "---------  ----", lines[1])
	require.Equal(t, "phi4       3.8B", lines[2])
	require.Equal(t, "tinyllama  1.1B", lines[3])
}

func TestTable_WideRunes(t *testing.T) {
	table := NewTable("NAME", "NOTE")
	table.AddRow("中文模型", "wide")
	table.AddRow("ascii", "ok")

	var sb strings.Builder
	table.Render(&sb)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	// Both NOTE cells must start at the same terminal column, measured in
	// display width rather than bytes.
	wideCol := runewidth.StringWidth(lines[2][:strings.Index(lines[2], "wide")])
	okCol := runewidth.StringWidth(lines[3][:strings.Index(lines[3], "ok")])
	require.Equal(t, wideCol, okCol)
}

func TestTable_ShortRow(t *testing.T) {
	table := NewTable("A", "B", "C")
	table.AddRow("only")

	var sb strings.Builder
	table.Render(&sb)
	require.Contains(t, sb.String(), "only")
}

func TestPercent(t *testing.T) {
	require.Equal(t, "95%", Percent(0.95))
	require.Equal(t, "0%", Percent(0))
	require.Equal(t, "100%", Percent(1))
}

func TestYesNo(t *testing.T) {
	require.Equal(t, "yes", YesNo(true))
	require.Equal(t, "no", YesNo(false))
}
