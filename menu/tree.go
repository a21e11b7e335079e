package menu

// MainMenu is the top-level menu.
func MainMenu() Branch {
	return Branch{
		Label: "Main menu",
		Children: []Node{
			Branch{Key: "a", Label: "Display stock data", Children: []Node{
				Leaf{Key: "a", Label: "Display available stock symbols", Op: OpListSymbols},
				Leaf{Key: "b", Label: "Display statistics of a specific stock", Op: OpStockStats},
			}},
			Leaf{Key: "b", Label: "Exit", Op: OpExit},
		},
	}
}

// AnalysisMenu is shown after a stock's statistics until the user ends the analysis.
func AnalysisMenu() Branch {
	return Branch{
		Label: "Analysis",
		Children: []Node{
			Leaf{Key: "a", Label: "Display statistics of the adjusted closing rate (Average / Standard Deviation / Maximum / Minimum)", Op: OpClosingStats},
			Leaf{Key: "b", Label: "Display statistics of the daily yield of the adjusted closing rate (Average / Standard Deviation / Maximum / Minimum)", Op: OpDailyYieldStats},
			Leaf{Key: "c", Label: "Calculate the Sharpe metric", Op: OpSharpe},
			Leaf{Key: "d", Label: "Plot a graph of the stock's exchange rates", Op: OpPlotPrices},
			Leaf{Key: "e", Label: "Plot a graph of the daily yields", Op: OpPlotYields},
			Leaf{Key: "f", Label: "Plot a histogram of the stock's exchange rates", Op: OpHistogramPrices},
			Leaf{Key: "g", Label: "Plot a histogram of the daily yields", Op: OpHistogramYields},
			Leaf{Key: "h", Label: "End analysis", Op: OpEndAnalysis},
			Leaf{Key: "i", Label: "Calculate α", Op: OpAlpha},
			Leaf{Key: "j", Label: "Calculate β", Op: OpBeta},
			Leaf{Key: "k", Label: "Display statistics of the intraday yield (1 - adjusted close / open)", Op: OpIntradayYieldStats},
		},
	}
}
