package tabular

import "fmt"

// ContentType is the media type of every tabular export.
const ContentType = "text/csv"

// Kind selects one of the tabular exports.
type Kind int

const (
	// Full is the combined summary, holdings and performance export.
	Full Kind = iota
	// Transactions is the transaction list export.
	Transactions
	// Holdings is the holding list export.
	Holdings
)

func (k Kind) String() string {
	switch k {
	case Full:
		return "portfolio"
	case Transactions:
		return "transactions"
	case Holdings:
		return "holdings"
	default:
		return "unknown"
	}
}

// Filename returns the artifact name of the export.
func (k Kind) Filename() string {
	switch k {
	case Full:
		return "portfolio_report.csv"
	case Transactions:
		return "transactions.csv"
	case Holdings:
		return "holdings.csv"
	default:
		return ""
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "portfolio", "full":
		return Full, nil
	case "transactions":
		return Transactions, nil
	case "holdings":
		return Holdings, nil
	default:
		return 0, fmt.Errorf("unknown export type: %q", s)
	}
}
