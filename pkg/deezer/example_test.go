package deezer_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/jfmyers9/dzr/pkg/deezer"
)

func ExampleParseID() {
	id, warning := deezer.ParseID(deezer.ResourceAlbum, "https://www.deezer.com/en/album/302127?utm_source=share")
	fmt.Println(id, warning == "")

	id, warning = deezer.ParseID(deezer.ResourceTrack, "https://www.deezer.com/en/album/302127")
	fmt.Println(id, warning)
	// Output:
	// 302127 true
	// 302127 Expecting 'track', found 'album' instead.
}

func ExampleClient_Pages() {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("index") == "" {
			fmt.Fprintf(w, `{"data": [{"title": "One More Time"}], "next": "%s/album/302127/tracks?index=1"}`, server.URL)
			return
		}
		fmt.Fprint(w, `{"data": [{"title": "Aerodynamic"}]}`)
	}))
	defer server.Close()

	client, err := deezer.NewClient(deezer.Config{BaseURL: server.URL})
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	first, err := client.Album(ctx, "302127", "tracks")
	if err != nil {
		fmt.Println(err)
		return
	}
	for page, err := range client.Pages(ctx, first) {
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, track := range page.Data() {
			fmt.Println(track.Get("title").String())
		}
	}
	// Output:
	// One More Time
	// Aerodynamic
}
