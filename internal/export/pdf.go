// Package export renders notes as PDF documents.
package export

import (
	"bytes"
	"fmt"
	"io"

	"notig/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	TitleSize   = 24.0
	lineSpacing = 1.2
	pageMargin  = 56.0 // pt, about 2cm
	ContentType = "application/pdf"
)

// Render writes the note as a PDF: the title in bold at TitleSize, then the
// body in the note's font size and colour, underlined when the note is.
func Render(w io.Writer, note *models.Note) error {
	font := ResolveFont(note.Style.FontFamily, note.Style.IsBold, note.Style.IsItalic)
	title := ResolveFont(note.Style.FontFamily, true, false)

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCreationDate(note.CreatedAt.UTC())
	pdf.SetModificationDate(note.LastModified().UTC())
	pdf.SetTitle(note.Title, true)
	pdf.SetCreator("notig", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont(title.Family, title.Style, TitleSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, TitleSize*lineSpacing, tr(note.Title), "", "L", false)
	pdf.Ln(TitleSize / 2)

	size := float64(note.Style.FontSize)
	if size <= 0 {
		size = models.DefaultFontSize
	}
	style := font.Style
	if note.Style.IsUnderline {
		style += "U"
	}
	c := ParseColor(note.Style.Color)

	pdf.SetFont(font.Family, style, size)
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))

	var body string
	if note.Content != nil {
		body = *note.Content
	}
	pdf.MultiCell(0, size*lineSpacing, tr(body), "", "L", false)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// RenderBytes renders into memory so callers can report failures before any
// byte reaches the client.
func RenderBytes(note *models.Note) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, note); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
