// Package render prints Deezer responses for the terminal.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/gjson"
)

// Formats
const (
	JSON  = "json"
	Table = "table"
)

// Options control the output.
type Options struct {
	Format string // JSON or Table
	Width  int    // Fixed width of the title column in table output (0 = fit content)
}

// Row is one line of table output.
type Row struct {
	ID     string
	Type   string
	Title  string
	Artist string
}

// Response writes resp to w in the requested format.
func Response(w io.Writer, resp *deezer.Response, opts Options) error {
	switch opts.Format {
	case Table:
		return writeTable(w, resp, opts.Width)
	case JSON, "":
		return writeJSON(w, resp.Raw())
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

func writeJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func writeTable(w io.Writer, resp *deezer.Response, width int) error {
	root := resp.Get("@this")

	var rows []Row
	switch {
	case root.Get("data").IsArray():
		for _, item := range resp.Data() {
			rows = append(rows, RowOf(item))
		}
	case root.IsObject():
		rows = append(rows, RowOf(root))
	case root.IsArray():
		for _, item := range root.Array() {
			rows = append(rows, RowOf(item))
		}
	default:
		// Mutations answer with a bare true or an id
		_, err := fmt.Fprintln(w, root.String())
		return err
	}

	if err := WriteRows(w, rows, width); err != nil {
		return err
	}

	if total := resp.Total(); total >= 0 {
		footer := fmt.Sprintf("%d of %d", len(rows), total)
		if _, ok := resp.Next(); ok {
			footer += " (more with --pages)"
		}
		if _, err := fmt.Fprintln(w, footer); err != nil {
			return err
		}
	}
	return nil
}

// RowOf extracts the table columns from a catalog object.
func RowOf(item gjson.Result) Row {
	title := item.Get("title").String()
	if title == "" {
		title = item.Get("name").String()
	}
	artist := item.Get("artist.name").String()
	if artist == "" {
		artist = item.Get("user.name").String()
	}
	return Row{
		ID:     item.Get("id").String(),
		Type:   item.Get("type").String(),
		Title:  title,
		Artist: artist,
	}
}

// WriteRows prints rows as aligned columns. Column widths are measured in
// display cells so wide characters line up.
func WriteRows(w io.Writer, rows []Row, titleWidth int) error {
	header := Row{ID: "ID", Type: "TYPE", Title: "TITLE", Artist: "ARTIST"}
	all := append([]Row{header}, rows...)

	idWidth, typeWidth, fitTitle := 0, 0, 0
	for _, r := range all {
		idWidth = max(idWidth, runewidth.StringWidth(r.ID))
		typeWidth = max(typeWidth, runewidth.StringWidth(r.Type))
		fitTitle = max(fitTitle, runewidth.StringWidth(r.Title))
	}
	if titleWidth <= 0 {
		titleWidth = fitTitle
	}

	for _, r := range all {
		line := strings.Join([]string{
			padToWidth(r.ID, idWidth),
			padToWidth(r.Type, typeWidth),
			padToWidth(r.Title, titleWidth),
			r.Artist,
		}, "  ")
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// A wide rune cut at the boundary leaves a gap
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
