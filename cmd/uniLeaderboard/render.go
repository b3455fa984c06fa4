package main

import (
	"fmt"
	"io"
	"strings"

	"uniLeaderboard/internal/domain/model"
)

// renderLeaderboard prints a ranked trader table and summary block.
func renderLeaderboard(w io.Writer, lb *model.Leaderboard) {
	rule := strings.Repeat("=", 104)

	fmt.Fprintln(w, "UNISWAP V3 TRADER LEADERBOARD")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-4s %-42s %-6s %-6s %-16s %-16s %-8s\n",
		"Rank", "Trader Address", "Buys", "Sells", "Total Vol USD", "Net Token Vol", "B/S")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, t := range lb.Traders {
		fmt.Fprintf(w, "%-4d %-42s %-6d %-6d $%-15s %-16s %-8.2f\n",
			i+1, t.Address, t.TotalBuys, t.TotalSells, t.TotalVolumeUSD, t.NetVolumeToken, t.BuySellRatio)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SUMMARY STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 21))
	fmt.Fprintf(w, "Total Traders: %d\n", lb.Summary.TotalTraders)
	fmt.Fprintf(w, "Total Volume (USD): $%s\n", lb.Summary.TotalVolumeUSD)
	fmt.Fprintf(w, "Total Buy Transactions: %d\n", lb.Summary.TotalBuyTransactions)
	fmt.Fprintf(w, "Total Sell Transactions: %d\n", lb.Summary.TotalSellTransactions)
	fmt.Fprintf(w, "Average Volume per Trader: $%s\n", lb.Summary.AverageVolumePerTrader)
}
