package tabular

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/etnz/folio"
)

func loadSample(t *testing.T) *folio.Portfolio {
	t.Helper()
	f, err := os.Open("../testdata/portfolio.json")
	if err != nil {
		t.Fatalf("cannot open sample: %v", err)
	}
	defer f.Close()
	p, err := folio.DecodePortfolio(f)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	return p
}

// records parses an export back, asserting that every field of every line is quoted.
func records(t *testing.T, data []byte) [][]string {
	t.Helper()
	for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Errorf("line %d is not fully quoted: %s", i, line)
		}
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}
	return recs
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write("a", `say "hi"`, "1,5", "")
	w.Separator()
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\"a\",\"say \"\"hi\"\"\",\"1,5\",\"\"\n\"\",\"\"\n"
	if got := buf.String(); got != want {
		t.Errorf("Writer wrote %q, want %q", got, want)
	}
}

func TestWriteTransactions(t *testing.T) {
	p := loadSample(t)
	data, err := Bytes(Transactions, p)
	if err != nil {
		t.Fatal(err)
	}
	recs := records(t, data)

	if len(recs) != 1+len(p.Transactions) {
		t.Fatalf("got %d records, want %d", len(recs), 1+len(p.Transactions))
	}
	if got, want := strings.Join(recs[0], "|"), "Date|Type|Asset|Amount|Price|Total Value|Fee (USD)|P&L|Status|Transaction ID"; got != want {
		t.Errorf("header = %q, want %q", got, want)
	}
	wantRows := map[int]string{
		1: "2025-01-01 09:30:00|sell|BTC|0.5|100|50|1.25|-20|confirmed|0x0000",
		2: "2025-01-03 09:30:00|buy|ETH|1.5|110|165|1.25||confirmed|0x0001",
	}
	for i, want := range wantRows {
		if got := strings.Join(recs[i], "|"); got != want {
			t.Errorf("record %d = %q, want %q", i, got, want)
		}
	}
}

func TestWriteTransactions_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTransactions(&buf, nil); err != nil {
		t.Fatal(err)
	}
	recs := records(t, buf.Bytes())
	if len(recs) != 1 || len(recs[0]) != len(TransactionHeader) {
		t.Errorf("empty export = %v, want a single header row", recs)
	}
}

func TestWriteHoldings(t *testing.T) {
	p := loadSample(t)
	data, err := Bytes(Holdings, p)
	if err != nil {
		t.Fatal(err)
	}
	recs := records(t, data)

	if len(recs) != 1+len(p.Holdings) {
		t.Fatalf("got %d records, want %d", len(recs), 1+len(p.Holdings))
	}
	for i, rec := range recs {
		if len(rec) != len(HoldingHeader) {
			t.Errorf("record %d has %d fields, want %d", i, len(rec), len(HoldingHeader))
		}
	}
	if got, want := recs[2][0], `ETH, "classic"`; got != want {
		t.Errorf("asset = %q, want %q", got, want)
	}
	want := "BTC|crypto|0.12345678|40000|50000|4938.2712|6172.839|1234.5678|25|100|1334.5678|27.02|1.5|-2.25|10|2025-01-01 09:30:00|2025-01-19 09:30:00|3|1|45.5|1.1"
	if got := strings.Join(recs[1], "|"); got != want {
		t.Errorf("record 1 = %q, want %q", got, want)
	}
}

func TestWritePortfolio(t *testing.T) {
	p := loadSample(t)
	data, err := Bytes(Full, p)
	if err != nil {
		t.Fatal(err)
	}
	recs := records(t, data)

	labels := SummaryLabels()
	holdingsAt := len(labels) + 1
	historyAt := holdingsAt + 1 + len(p.Holdings) + 1
	if got, want := len(recs), historyAt+1+HistoryLimit; got != want {
		t.Fatalf("got %d records, want %d", got, want)
	}

	for i, label := range labels {
		if recs[i][0] != label || len(recs[i]) != 2 {
			t.Errorf("summary record %d = %v, want label %q", i, recs[i], label)
		}
	}
	if got := recs[2]; got[0] != "Total Value" || got[1] != "12500" {
		t.Errorf("summary total value = %v", got)
	}
	for _, i := range []int{holdingsAt - 1, historyAt - 1} {
		if len(recs[i]) != 2 || recs[i][0] != "" || recs[i][1] != "" {
			t.Errorf("record %d = %v, want a blank separator", i, recs[i])
		}
	}
	if got, want := strings.Join(recs[holdingsAt], "|"), strings.Join(HoldingHeader, "|"); got != want {
		t.Errorf("holdings header = %q", got)
	}
	if got, want := strings.Join(recs[historyAt], "|"), "Date|Total Value|P&L|P&L %|Day Return %"; got != want {
		t.Errorf("history header = %q, want %q", got, want)
	}
	// last 30 of 35 points, oldest first
	if got, want := strings.Join(recs[historyAt+1], "|"), "2025-01-06 00:00:00|9900|-100|-1|-2.9412"; got != want {
		t.Errorf("first history record = %q, want %q", got, want)
	}
	if got, want := recs[len(recs)-1][0], "2025-02-04 00:00:00"; got != want {
		t.Errorf("last history date = %q, want %q", got, want)
	}
}

func TestKind(t *testing.T) {
	for _, kind := range []Kind{Full, Transactions, Holdings} {
		parsed, err := ParseKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("ParseKind(%q) = %v, %v", kind.String(), parsed, err)
		}
	}
	if Full.Filename() != "portfolio_report.csv" || Transactions.Filename() != "transactions.csv" || Holdings.Filename() != "holdings.csv" {
		t.Error("unexpected artifact names")
	}
	if _, err := ParseKind("pdf"); err == nil {
		t.Error("ParseKind(\"pdf\") should fail")
	}
}
