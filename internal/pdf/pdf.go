// Package pdf draws paginated report commands onto an A4 PDF document.
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/daily-report/internal/render"
	"github.com/go-pdf/fpdf"
)

// DefaultFontSize is used when Options.FontSize is zero.
const DefaultFontSize = 10

// Options controls the document.
type Options struct {
	FontSize float64
	Author   string
}

// Write renders cmds as a PDF to w. The first page is created implicitly;
// every PageBreak command starts a new one.
func Write(w io.Writer, cmds []render.Command, opts Options) error {
	size := opts.FontSize
	if size == 0 {
		size = DefaultFontSize
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	if opts.Author != "" {
		doc.SetAuthor(opts.Author, true)
	}
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "", size)

	for _, cmd := range cmds {
		switch cmd.Kind {
		case render.PageBreak:
			doc.AddPage()
		case render.DrawText:
			doc.Text(cmd.X, cmd.Y, tr(cmd.Text))
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// WriteFile renders cmds to a PDF file at path.
func WriteFile(path string, cmds []render.Command, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pdf: %w", err)
	}

	if err := Write(file, cmds, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
