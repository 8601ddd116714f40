package export

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/folio/renderer"
)

// Printer opens print surfaces.
type Printer interface {
	// Open creates a surface, it fails when the environment cannot provide one.
	Open(ctx context.Context) (Surface, error)
}

// Surface is an opened presentation surface.
type Surface interface {
	// Present loads the document and returns once it is ready.
	Present(ctx context.Context, doc *renderer.Document) error
	// Print triggers the print flow of the loaded document.
	Print(ctx context.Context) error
	// Close releases the surface.
	Close() error
}

// HTMLPrinter prints the HTML encoding of the report to W.
type HTMLPrinter struct {
	W io.Writer
}

func (p HTMLPrinter) Open(ctx context.Context) (Surface, error) {
	if p.W == nil {
		return nil, fmt.Errorf("no output for the html report")
	}
	return &bufferSurface{w: p.W, encode: renderer.HTML}, nil
}

// TerminalPrinter prints the report to W, styled for a terminal.
type TerminalPrinter struct {
	W     io.Writer
	Style string // glamour style, auto detected when empty
	Width int    // word wrap, 0 for the default
}

func (p TerminalPrinter) Open(ctx context.Context) (Surface, error) {
	if p.W == nil {
		return nil, fmt.Errorf("no output for the terminal report")
	}
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if p.Style != "" {
		opts = []glamour.TermRendererOption{glamour.WithStandardStyle(p.Style)}
	}
	if p.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(p.Width))
	}
	term, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	encode := func(doc *renderer.Document) ([]byte, error) {
		src, err := renderer.Markdown(doc)
		if err != nil {
			return nil, err
		}
		out, err := term.Render(src)
		return []byte(out), err
	}
	return &bufferSurface{w: p.W, encode: encode}, nil
}

// bufferSurface encodes the document on Present and writes it on Print.
type bufferSurface struct {
	w      io.Writer
	encode func(*renderer.Document) ([]byte, error)
	data   []byte
}

func (s *bufferSurface) Present(ctx context.Context, doc *renderer.Document) error {
	data, err := s.encode(doc)
	if err != nil {
		return internal("render", err)
	}
	s.data = data
	return nil
}

func (s *bufferSurface) Print(ctx context.Context) error {
	if s.data == nil {
		return internal("print", fmt.Errorf("nothing presented"))
	}
	_, err := s.w.Write(s.data)
	return err
}

func (s *bufferSurface) Close() error {
	s.data = nil
	return nil
}
