// Package menu implements the lettered menu tree used by the interactive
// session.
package menu

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Operation is what a leaf of the menu tree asks the session to do.
type Operation int

const (
	OpNone Operation = iota
	OpListSymbols
	OpStockStats
	OpExit
	OpClosingStats
	OpDailyYieldStats
	OpIntradayYieldStats
	OpSharpe
	OpPlotPrices
	OpPlotYields
	OpHistogramPrices
	OpHistogramYields
	OpEndAnalysis
	OpAlpha
	OpBeta
)

var opNames = map[Operation]string{
	OpNone:               "none",
	OpListSymbols:        "list-symbols",
	OpStockStats:         "stock-stats",
	OpExit:               "exit",
	OpClosingStats:       "closing-stats",
	OpDailyYieldStats:    "daily-yield-stats",
	OpIntradayYieldStats: "intraday-yield-stats",
	OpSharpe:             "sharpe",
	OpPlotPrices:         "plot-prices",
	OpPlotYields:         "plot-yields",
	OpHistogramPrices:    "histogram-prices",
	OpHistogramYields:    "histogram-yields",
	OpEndAnalysis:        "end-analysis",
	OpAlpha:              "alpha",
	OpBeta:               "beta",
}

func (o Operation) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Node is a Leaf or a Branch.
type Node interface {
	key() string
	label() string
}

// Leaf selects an operation.
type Leaf struct {
	Key   string
	Label string
	Op    Operation
}

// Branch opens a sub-menu.
type Branch struct {
	Key      string
	Label    string
	Children []Node
}

func (l Leaf) key() string   { return l.Key }
func (l Leaf) label() string { return l.Label }

func (b Branch) key() string   { return b.Key }
func (b Branch) label() string { return b.Label }

// Keys returns the child keys in display order.
func (b Branch) Keys() []string {
	keys := make([]string, len(b.Children))
	for i, c := range b.Children {
		keys[i] = c.key()
	}
	return keys
}

func (b Branch) child(key string) (Node, bool) {
	for _, c := range b.Children {
		if c.key() == key {
			return c, true
		}
	}
	return nil, false
}

// Validate checks that every branch has children and unique keys.
func Validate(b Branch) error {
	if len(b.Children) == 0 {
		return fmt.Errorf("menu %q has no options", b.Label)
	}
	seen := make(map[string]bool, len(b.Children))
	for _, c := range b.Children {
		if c.key() == "" {
			return fmt.Errorf("menu %q: option %q has no key", b.Label, c.label())
		}
		if seen[c.key()] {
			return fmt.Errorf("menu %q: duplicate key %q", b.Label, c.key())
		}
		seen[c.key()] = true
		if sub, ok := c.(Branch); ok {
			if err := Validate(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// Choose prints the options of root, reads a key per line from in and
// descends until a Leaf is picked. Unknown keys are reported and the current
// menu is shown again. It returns io.EOF when input runs out and ctx.Err()
// when ctx is done while waiting for input.
func Choose(ctx context.Context, in *Lines, out io.Writer, root Branch) (Operation, error) {
	node := root
	for {
		for _, c := range node.Children {
			fmt.Fprintf(out, "%s. %s\n", c.key(), c.label())
		}

		line, err := in.Next(ctx)
		if err != nil {
			return OpNone, err
		}

		picked, ok := node.child(strings.ToLower(line))
		if !ok {
			fmt.Fprintf(out, "Invalid option. Choose again: %s\n", strings.Join(node.Keys(), "/"))
			continue
		}

		switch n := picked.(type) {
		case Leaf:
			return n.Op, nil
		case Branch:
			node = n
		default:
			return OpNone, fmt.Errorf("menu: unexpected node %T", picked)
		}
	}
}
