package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/etnz/folio/renderer"
)

// ChromePrinter prints the report to PDF with a headless Chrome.
type ChromePrinter struct {
	W        io.Writer     // receives the PDF
	ExecPath string        // browser binary, looked up in PATH when empty
	Headless bool
	Timeout  time.Duration // bounds the whole surface lifetime, none when 0
}

// Open starts the browser. It fails with a Blocked failure when no browser can be run.
func (p ChromePrinter) Open(ctx context.Context) (Surface, error) {
	if p.W == nil {
		return nil, fmt.Errorf("no output for the pdf report")
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", p.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(p.ExecPath))
	}

	var cancels []context.CancelFunc
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		cancels = append(cancels, cancel)
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancels = append(cancels, allocCancel, tabCancel)

	s := &chromeSurface{ctx: tabCtx, w: p.W, cancels: cancels}
	// an empty Run starts the browser
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, fmt.Errorf("cannot start browser: %w", err)
	}
	return s, nil
}

type chromeSurface struct {
	ctx     context.Context
	w       io.Writer
	cancels []context.CancelFunc
	loaded  bool
}

// Present loads the HTML document in the tab and waits for the body to be ready.
func (s *chromeSurface) Present(_ context.Context, doc *renderer.Document) error {
	content, err := renderer.HTML(doc)
	if err != nil {
		return internal("render", err)
	}
	err = chromedp.Run(s.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(content)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("cannot load report in browser: %w", err)
	}
	s.loaded = true
	return nil
}

// Print prints the loaded page to PDF.
func (s *chromeSurface) Print(_ context.Context) error {
	if !s.loaded {
		return internal("print", fmt.Errorf("nothing presented"))
	}
	var pdf []byte
	err := chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
		pdf = data
		return err
	}))
	if err != nil {
		return fmt.Errorf("cannot print report: %w", err)
	}
	if _, err := s.w.Write(pdf); err != nil {
		return fmt.Errorf("cannot write pdf: %w", err)
	}
	return nil
}

// Close shuts the tab and the browser down.
func (s *chromeSurface) Close() error {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
	s.cancels = nil
	return nil
}
