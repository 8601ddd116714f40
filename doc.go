// Package folio holds the portfolio snapshot model consumed by the risk, tabular,
// renderer and export packages.
//
// A snapshot is assembled by the caller (price feeds, wallet synchronization and AI
// insights live elsewhere) and handed over once. Everything in this module reads it
// and never modifies it:
//   - risk derives the Sharpe and Sortino ratios, maximum drawdown and value at risk
//     from the performance history.
//   - tabular writes the holdings, transactions and full-portfolio CSV exports.
//   - renderer builds the printable narrative report as a typed document tree.
//   - export sequences the above and delivers the artifacts to a sink or a print surface.
//
// This package serves as the foundational model for the `pfx` command-line tool.
package folio
