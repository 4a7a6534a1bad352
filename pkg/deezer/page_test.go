package deezer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

// pagedAPI serves three pages of playlist tracks, linking them with "next".
func pagedAPI(t *testing.T) *fakeAPI {
	t.Helper()
	var api *fakeAPI
	api = newFakeAPIFunc(t, func(w http.ResponseWriter, r *http.Request) {
		var body string
		switch r.URL.Query().Get("index") {
		case "":
			body = fmt.Sprintf(`{"data": [{"id": 1}, {"id": 2}], "total": 5, "next": "%s/playlist/9/tracks?index=2"}`, api.URL)
		case "2":
			body = fmt.Sprintf(`{"data": [{"id": 3}, {"id": 4}], "total": 5, "prev": "%s/playlist/9/tracks?index=0", "next": "%s/playlist/9/tracks?index=4"}`, api.URL, api.URL)
		case "4":
			body = `{"data": [{"id": 5}], "total": 5}`
		default:
			w.WriteHeader(http.StatusBadRequest)
			body = `{"error": {"type": "ParameterException", "message": "bad index", "code": 500}}`
		}
		_, _ = w.Write([]byte(body))
	})
	return api
}

func TestClient_Next(t *testing.T) {
	api := pagedAPI(t)
	client, _ := newTestClient(t, Config{BaseURL: api.URL})
	ctx := context.Background()

	first, err := client.Playlist(ctx, "9", "tracks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, ok, err := client.Next(ctx, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a second page")
	}

	last := api.Last(t)
	if last.Path != "/playlist/9/tracks" || last.Query.Get("index") != "2" {
		t.Errorf("expected request to the next URL, got %s?%s", last.Path, last.Query.Encode())
	}
	if got := second.Data()[0].Get("id").Int(); got != 3 {
		t.Errorf("expected first item 3, got %d", got)
	}
}

func TestClient_Next_EndOfSequence(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	client, _ := newTestClient(t, Config{BaseURL: api.URL})

	resp, err := NewResponse("test", []byte(`{"data": [{"id": 1}], "total": 1}`))
	if err != nil {
		t.Fatalf("failed to build response: %v", err)
	}

	page, ok, err := client.Next(context.Background(), resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || page != nil {
		t.Errorf("expected end of sequence, got ok=%v page=%v", ok, page)
	}
	if n := len(api.Requests()); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}

	if _, ok, _ := client.Next(context.Background(), nil); ok {
		t.Error("expected end of sequence for nil response")
	}
}

func TestClient_Next_AuthenticatedKeepsQuery(t *testing.T) {
	api := pagedAPI(t)
	client, _ := newTestClient(t, Config{BaseURL: api.URL, AccessToken: "T1"})
	ctx := context.Background()

	first, err := client.Playlist(ctx, "9", "tracks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := client.Next(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := api.Last(t)
	if last.Query.Get("index") != "2" || last.Query.Get("access_token") != "T1" {
		t.Errorf("expected index and token on next request, got %v", last.Query)
	}
}

func TestClient_Pages(t *testing.T) {
	api := pagedAPI(t)
	client, _ := newTestClient(t, Config{BaseURL: api.URL})
	ctx := context.Background()

	first, err := client.Playlist(ctx, "9", "tracks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []int64
	pages := 0
	for page, err := range client.Pages(ctx, first) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pages++
		for _, item := range page.Data() {
			ids = append(ids, item.Get("id").Int())
		}
	}

	if pages != 3 {
		t.Errorf("expected 3 pages, got %d", pages)
	}
	if len(ids) != 5 || ids[0] != 1 || ids[4] != 5 {
		t.Errorf("unexpected ids %v", ids)
	}
	if n := len(api.Requests()); n != 3 {
		t.Errorf("expected 3 requests, got %d", n)
	}
}

func TestClient_Pages_StopsEarly(t *testing.T) {
	api := pagedAPI(t)
	client, _ := newTestClient(t, Config{BaseURL: api.URL})
	ctx := context.Background()

	first, err := client.Playlist(ctx, "9", "tracks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range client.Pages(ctx, first) {
		break
	}
	if n := len(api.Requests()); n != 1 {
		t.Errorf("expected only the first request, got %d", n)
	}
}

func TestClient_Pages_Error(t *testing.T) {
	var api *fakeAPI
	api = newFakeAPIFunc(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("index") == "" {
			_, _ = fmt.Fprintf(w, `{"data": [], "next": "%s/chart/0/tracks?index=99"}`, api.URL)
			return
		}
		_, _ = w.Write([]byte(`{"error": {"type": "ParameterException", "message": "bad index", "code": 500}}`))
	})
	client, _ := newTestClient(t, Config{BaseURL: api.URL})
	ctx := context.Background()

	first, err := client.Chart(ctx, "tracks")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var gotErr error
	for page, err := range client.Pages(ctx, first) {
		if err != nil {
			gotErr = err
			if page != nil {
				t.Error("expected nil page with error")
			}
		}
	}

	var apiErr *Error
	if !errors.As(gotErr, &apiErr) || apiErr.Code != ErrCodeParameter {
		t.Errorf("expected parameter error, got %v", gotErr)
	}
}
