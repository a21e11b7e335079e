package menu

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choose(t *testing.T, input string, root Branch) (Operation, string, error) {
	t.Helper()
	var out bytes.Buffer
	op, err := Choose(context.Background(), NewLines(strings.NewReader(input)), &out, root)
	return op, out.String(), err
}

func TestChooseMainMenu(t *testing.T) {
	tests := []struct {
		input string
		want  Operation
	}{
		{"a\na\n", OpListSymbols},
		{"a\nb\n", OpStockStats},
		{"b\n", OpExit},
		{" B \n", OpExit},
		{"b", OpExit},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			op, _, err := choose(t, tt.input, MainMenu())
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
		})
	}
}

func TestChoosePrintsOptions(t *testing.T) {
	_, out, err := choose(t, "a\nb\n", MainMenu())
	require.NoError(t, err)
	assert.Equal(t,
		"a. Display stock data\nb. Exit\n"+
			"a. Display available stock symbols\nb. Display statistics of a specific stock\n",
		out)
}

func TestChooseRepromptsOnInvalid(t *testing.T) {
	op, out, err := choose(t, "z\n\nb\n", MainMenu())
	require.NoError(t, err)
	assert.Equal(t, OpExit, op)
	assert.Equal(t, 2, strings.Count(out, "Invalid option. Choose again: a/b\n"))
	assert.Equal(t, 3, strings.Count(out, "b. Exit\n"))
}

func TestChooseInvalidInSubMenuStaysThere(t *testing.T) {
	op, out, err := choose(t, "a\nq\nb\n", MainMenu())
	require.NoError(t, err)
	assert.Equal(t, OpStockStats, op)
	assert.Contains(t, out, "Invalid option. Choose again: a/b\n")
	assert.Equal(t, 2, strings.Count(out, "a. Display available stock symbols\n"))
}

func TestChooseEOF(t *testing.T) {
	_, _, err := choose(t, "", MainMenu())
	assert.ErrorIs(t, err, io.EOF)

	_, _, err = choose(t, "a\n", MainMenu())
	assert.ErrorIs(t, err, io.EOF)
}

func TestAnalysisMenu(t *testing.T) {
	m := AnalysisMenu()
	require.NoError(t, Validate(m))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, m.Keys())

	want := map[string]Operation{
		"a": OpClosingStats, "b": OpDailyYieldStats, "c": OpSharpe,
		"d": OpPlotPrices, "e": OpPlotYields, "f": OpHistogramPrices, "g": OpHistogramYields,
		"h": OpEndAnalysis, "i": OpAlpha, "j": OpBeta, "k": OpIntradayYieldStats,
	}
	for key, op := range want {
		got, _, err := choose(t, key+"\n", m)
		require.NoError(t, err)
		assert.Equal(t, op, got, key)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(MainMenu()))

	assert.ErrorContains(t, Validate(Branch{Label: "empty"}), "no options")
	assert.ErrorContains(t, Validate(Branch{Label: "dup", Children: []Node{
		Leaf{Key: "a", Op: OpExit}, Leaf{Key: "a", Op: OpExit},
	}}), "duplicate key")
	assert.ErrorContains(t, Validate(Branch{Label: "nested", Children: []Node{
		Branch{Key: "a", Label: "inner"},
	}}), `menu "inner" has no options`)
	assert.ErrorContains(t, Validate(Branch{Label: "nokey", Children: []Node{
		Leaf{Label: "x"},
	}}), "has no key")
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "sharpe", OpSharpe.String())
	assert.Equal(t, "beta", OpBeta.String())
	assert.Equal(t, "Operation(99)", Operation(99).String())
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("  EBAY \r\nlast"))
	line, err := ReadLine(r)
	require.NoError(t, err)
	assert.Equal(t, "EBAY", line)

	line, err = ReadLine(r)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = ReadLine(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestChooseReturnsWhenContextDone(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Choose(ctx, NewLines(pr), io.Discard, MainMenu())
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Choose still blocked on input after cancel")
	}
}

func TestLinesKeepsAbandonedRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	lines := NewLines(pr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := lines.Next(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() { _, _ = io.WriteString(pw, "ebay\n") }()

	line, err := lines.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ebay", line)
}

func TestLinesCancelledBeforeRead(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLines(strings.NewReader("a\n")).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
