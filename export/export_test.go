package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/tabular"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *folio.Portfolio {
	t.Helper()
	f, err := os.Open("../testdata/portfolio.json")
	require.NoError(t, err)
	defer f.Close()
	p, err := folio.DecodePortfolio(f)
	require.NoError(t, err)
	return p
}

func testDriver(buf *bytes.Buffer) *Driver {
	d := NewDriver(zerolog.New(buf).Level(zerolog.DebugLevel))
	d.Now = func() time.Time { return time.Date(2025, 2, 4, 12, 0, 0, 0, time.UTC) }
	return d
}

// memorySink keeps artifacts in memory.
type memorySink struct {
	mu        sync.Mutex
	artifacts map[string]Artifact
	err       error
}

func (s *memorySink) Put(ctx context.Context, a Artifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifacts == nil {
		s.artifacts = make(map[string]Artifact)
	}
	s.artifacts[a.Name] = a
	return "mem://" + a.Name, nil
}

// fakePrinter records the calls made on its surface.
type fakePrinter struct {
	openErr, presentErr, printErr error

	calls []string
	doc   *renderer.Document
}

func (p *fakePrinter) Open(ctx context.Context) (Surface, error) {
	p.calls = append(p.calls, "open")
	if p.openErr != nil {
		return nil, p.openErr
	}
	return p, nil
}

func (p *fakePrinter) Present(ctx context.Context, doc *renderer.Document) error {
	p.calls = append(p.calls, "present")
	p.doc = doc
	return p.presentErr
}

func (p *fakePrinter) Print(ctx context.Context) error {
	p.calls = append(p.calls, "print")
	return p.printErr
}

func (p *fakePrinter) Close() error {
	p.calls = append(p.calls, "close")
	return nil
}

func TestTabular(t *testing.T) {
	var logs bytes.Buffer
	p := loadSample(t)
	sink := &memorySink{}

	r := testDriver(&logs).Tabular(context.Background(), p, tabular.Holdings, sink)

	require.NoError(t, r.Err)
	assert.Equal(t, Delivered, r.State)
	assert.Equal(t, []State{Idle, Computing, Serialized, Delivered}, r.Trail)
	assert.Equal(t, "mem://holdings.csv", r.Artifact)
	assert.Equal(t, "text/csv", r.ContentType)
	assert.Equal(t, "holdings", r.Kind)
	assert.NotEmpty(t, r.ID)

	a := sink.artifacts["holdings.csv"]
	assert.Equal(t, "text/csv", a.ContentType)
	want, err := tabular.Bytes(tabular.Holdings, p)
	require.NoError(t, err)
	assert.Equal(t, want, a.Data)

	assert.Contains(t, logs.String(), `"export_id":"`+r.ID+`"`)
	assert.Contains(t, logs.String(), `"state":"serialized"`)
	assert.Contains(t, logs.String(), `"content_type":"text/csv"`)
}

func TestTabular_ArtifactNames(t *testing.T) {
	p := loadSample(t)
	sink := &memorySink{}
	d := testDriver(&bytes.Buffer{})
	for _, kind := range []tabular.Kind{tabular.Full, tabular.Transactions, tabular.Holdings} {
		r := d.Tabular(context.Background(), p, kind, sink)
		require.NoError(t, r.Err)
	}
	assert.Len(t, sink.artifacts, 3)
	for _, name := range []string{"portfolio_report.csv", "transactions.csv", "holdings.csv"} {
		assert.Contains(t, sink.artifacts, name)
	}
}

func TestTabular_SinkFailureIsBlocked(t *testing.T) {
	p := loadSample(t)
	sink := &memorySink{err: fmt.Errorf("disk: %w", os.ErrPermission)}

	r := testDriver(&bytes.Buffer{}).Tabular(context.Background(), p, tabular.Transactions, sink)

	assert.True(t, r.Failed())
	assert.Equal(t, []State{Idle, Computing, Serialized, Failed}, r.Trail)
	assert.ErrorIs(t, r.Err, ErrBlocked)
	assert.ErrorIs(t, r.Err, os.ErrPermission)
	assert.NotErrorIs(t, r.Err, ErrInternal)

	var f *Failure
	require.ErrorAs(t, r.Err, &f)
	assert.Equal(t, "deliver", f.Op)
	assert.Contains(t, f.Hint(), "blocked")
}

func TestTabular_SerializationFailureIsInternal(t *testing.T) {
	r := testDriver(&bytes.Buffer{}).Tabular(context.Background(), loadSample(t), tabular.Kind(42), &memorySink{})

	assert.Equal(t, []State{Idle, Computing, Failed}, r.Trail)
	assert.ErrorIs(t, r.Err, ErrInternal)
	assert.NotErrorIs(t, r.Err, ErrBlocked)
}

func TestTabular_Truncation(t *testing.T) {
	var logs bytes.Buffer
	p := loadSample(t)
	d := testDriver(&logs)
	d.Limits = folio.Limits{MaxTransactions: 3, MaxHistory: 5}
	sink := &memorySink{}

	r := d.Tabular(context.Background(), p, tabular.Transactions, sink)
	require.NoError(t, r.Err)

	data := string(sink.artifacts["transactions.csv"].Data)
	assert.Equal(t, 4, strings.Count(data, "\n"), "header and the 3 most recent transactions")
	assert.Contains(t, data, "0x000b")
	assert.NotContains(t, data, "0x0008")
	assert.Len(t, p.Transactions, 12, "the input snapshot is not modified")
	assert.Contains(t, logs.String(), "snapshot truncated")
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	p := loadSample(t)

	r := testDriver(&bytes.Buffer{}).Tabular(context.Background(), p, tabular.Full, DirSink{Dir: dir})
	require.NoError(t, r.Err)
	assert.Equal(t, filepath.Join(dir, "portfolio_report.csv"), r.Artifact)

	got, err := os.ReadFile(r.Artifact)
	require.NoError(t, err)
	want, err := tabular.Bytes(tabular.Full, p)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDirSink_Blocked(t *testing.T) {
	// a regular file where the directory should be
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	r := testDriver(&bytes.Buffer{}).Tabular(context.Background(), loadSample(t), tabular.Holdings, DirSink{Dir: filepath.Join(file, "out")})
	assert.True(t, r.Failed())
	assert.ErrorIs(t, r.Err, ErrBlocked)
}

func TestReport(t *testing.T) {
	var logs bytes.Buffer
	printer := &fakePrinter{}

	r := testDriver(&logs).Report(context.Background(), loadSample(t), printer)

	require.NoError(t, r.Err)
	assert.Equal(t, []State{Idle, Rendering, Presented, PrintRequested, Closed}, r.Trail)
	assert.Equal(t, []string{"open", "present", "print", "close"}, printer.calls)
	require.NotNil(t, printer.doc)
	assert.Equal(t, "0xAbC123<&>", printer.doc.Header.Address)
	assert.Equal(t, "2025-02-04 12:00:00 UTC", printer.doc.Timestamp())
	assert.Equal(t, 3.88, riskCard(printer.doc, "Max Drawdown"))
}

// riskCard returns the magnitude shown on a risk card.
func riskCard(doc *renderer.Document, label string) float64 {
	for _, c := range doc.Risk {
		if c.Label == label {
			var v float64
			fmt.Sscanf(strings.TrimPrefix(strings.TrimSuffix(c.Value.Value, "%"), "-"), "%g", &v)
			return v
		}
	}
	return -1
}

func TestReport_Failures(t *testing.T) {
	testCases := []struct {
		name    string
		printer *fakePrinter
		trail   []State
		calls   []string
		target  error
	}{
		{
			name:    "surface cannot be created",
			printer: &fakePrinter{openErr: errors.New("no browser")},
			trail:   []State{Idle, Rendering, Failed},
			calls:   []string{"open"},
			target:  ErrBlocked,
		},
		{
			name:    "encoding error",
			printer: &fakePrinter{presentErr: internal("render", errors.New("bad tree"))},
			trail:   []State{Idle, Rendering, Failed},
			calls:   []string{"open", "present", "close"},
			target:  ErrInternal,
		},
		{
			name:    "print dialog refused",
			printer: &fakePrinter{printErr: context.DeadlineExceeded},
			trail:   []State{Idle, Rendering, Presented, Failed},
			calls:   []string{"open", "present", "print", "close"},
			target:  ErrBlocked,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := testDriver(&bytes.Buffer{}).Report(context.Background(), loadSample(t), tc.printer)
			assert.True(t, r.Failed())
			assert.True(t, r.State.Terminal())
			assert.Equal(t, tc.trail, r.Trail)
			assert.Equal(t, tc.calls, tc.printer.calls)
			assert.ErrorIs(t, r.Err, tc.target)
		})
	}
}

func TestReport_HTMLPrinter(t *testing.T) {
	var out bytes.Buffer
	p := loadSample(t)
	d := testDriver(&bytes.Buffer{})

	r := d.Report(context.Background(), p, HTMLPrinter{W: &out})
	require.NoError(t, r.Err)

	want, err := renderer.HTML(renderer.NewReport(p, d.Calculator.Compute(p.PerformanceHistory), d.Now()))
	require.NoError(t, err)
	assert.Equal(t, string(want), out.String())
}

func TestReport_HTMLPrinterWithoutOutput(t *testing.T) {
	r := testDriver(&bytes.Buffer{}).Report(context.Background(), loadSample(t), HTMLPrinter{})
	assert.ErrorIs(t, r.Err, ErrBlocked)
}

func TestReport_TerminalPrinter(t *testing.T) {
	var out bytes.Buffer
	r := testDriver(&bytes.Buffer{}).Report(context.Background(), loadSample(t), TerminalPrinter{W: &out, Style: "ascii", Width: 120})
	require.NoError(t, r.Err)
	assert.Contains(t, out.String(), "Portfolio Report")
	assert.Contains(t, out.String(), "Recent Transactions")
}

func TestConcurrentExports(t *testing.T) {
	a := loadSample(t)
	b := loadSample(t)
	b.Address = "0xOther"
	b.Holdings = b.Holdings[:1]
	b.Transactions = b.Transactions[:2]

	wantA, err := tabular.Bytes(tabular.Full, a)
	require.NoError(t, err)
	wantB, err := tabular.Bytes(tabular.Full, b)
	require.NoError(t, err)

	d := NewDriver(zerolog.Nop())
	const n = 20
	results := make([][]byte, 2*n)
	var wg sync.WaitGroup
	for i := range 2 * n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := a
			if i%2 == 1 {
				p = b
			}
			sink := &memorySink{}
			r := d.Tabular(context.Background(), p, tabular.Full, sink)
			if r.Err == nil {
				results[i] = sink.artifacts["portfolio_report.csv"].Data
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		want := wantA
		if i%2 == 1 {
			want = wantB
		}
		assert.Equal(t, want, got, "export %d", i)
	}
}
