package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jfmyers9/dzr/pkg/deezer"
	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "Harder, Better, Faster, Stronger",
			width:    20,
			expected: "Harder, Better, F...",
		},
		{
			name:     "handle emoji correctly",
			input:    "🎵 Music",
			width:    15,
			expected: "🎵 Music       ", // emoji is 2 columns wide
		},
		{
			name:     "truncate emoji text",
			input:    "🎵 This is a very long song title",
			width:    15,
			expected: "🎵 This is a...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 columns, ... is 3, need 1 space
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func mustResponse(t *testing.T, body string) *deezer.Response {
	t.Helper()
	resp, err := deezer.NewResponse("https://api.deezer.com/test", []byte(body))
	if err != nil {
		t.Fatalf("NewResponse() error = %v", err)
	}
	return resp
}

func TestResponse_JSON(t *testing.T) {
	var buf bytes.Buffer
	resp := mustResponse(t, `{"id":3135556,"title":"Harder, Better, Faster, Stronger"}`)

	if err := Response(&buf, resp, Options{Format: JSON}); err != nil {
		t.Fatalf("Response() error = %v", err)
	}

	want := "{\n  \"id\": 3135556,\n  \"title\": \"Harder, Better, Faster, Stronger\"\n}\n"
	if buf.String() != want {
		t.Errorf("Response() = %q, want %q", buf.String(), want)
	}
}

func TestResponse_Table(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		width int
		want  []string
	}{
		{
			name: "collection",
			body: `{"data": [
				{"id": 3135556, "type": "track", "title": "Harder, Better, Faster, Stronger", "artist": {"name": "Daft Punk"}},
				{"id": 27, "type": "artist", "name": "Daft Punk"}
			], "total": 2}`,
			want: []string{
				"ID       TYPE    TITLE                             ARTIST",
				"3135556  track   Harder, Better, Faster, Stronger  Daft Punk",
				"27       artist  Daft Punk",
				"2 of 2",
			},
		},
		{
			name:  "collection with more pages and fixed width",
			body:  `{"data": [{"id": 1, "type": "playlist", "title": "Les titres du moment", "user": {"name": "Deezer"}}], "total": 40, "next": "https://api.deezer.com/chart/0/playlists?index=1"}`,
			width: 10,
			want: []string{
				"ID  TYPE      TITLE       ARTIST",
				"1   playlist  Les tit...  Deezer",
				"1 of 40 (more with --pages)",
			},
		},
		{
			name: "single object",
			body: `{"id": 302127, "type": "album", "title": "Discovery", "artist": {"name": "Daft Punk"}}`,
			want: []string{
				"ID      TYPE   TITLE      ARTIST",
				"302127  album  Discovery  Daft Punk",
			},
		},
		{
			name: "bare value",
			body: `true`,
			want: []string{"true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Response(&buf, mustResponse(t, tt.body), Options{Format: Table, Width: tt.width}); err != nil {
				t.Fatalf("Response() error = %v", err)
			}

			got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(got) != len(tt.want) {
				t.Fatalf("Response() printed %d lines, want %d:\n%s", len(got), len(tt.want), buf.String())
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResponse_UnknownFormat(t *testing.T) {
	if err := Response(&bytes.Buffer{}, mustResponse(t, `{}`), Options{Format: "xml"}); err == nil {
		t.Fatal("Response() expected error for unknown format")
	}
}
