// Package deezer provides a client library for the Deezer web API.
//
// # Overview
//
// Every catalog endpoint reduces to one generic primitive: a resource type,
// an optional identifier and an optional sub-method are composed into a path
// under https://api.deezer.com/, an access token is attached when one is
// available, and the JSON body is decoded into a *Response or classified as
// an error.
//
// # Installation
//
//	go get github.com/jfmyers9/dzr/pkg/deezer
//
// # Quick Start
//
//	client, err := deezer.NewClient(deezer.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	album, err := client.Album(ctx, "https://www.deezer.com/en/album/13095256", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(album.Get("title").String())
//
// # Identifiers
//
// Methods taking an identifier accept either a bare id ("7112591") or a full
// deezer.com URL ("https://www.deezer.com/en/artist/1164295"). When the URL
// names a different resource type than the method expects, a warning is
// written through the configured Logger and the trailing segment is used
// anyway.
//
// # Authentication
//
// The access token for a request is chosen, in order, from:
//
//  1. Config.AccessToken, a static token that is never refreshed
//  2. Config.Credentials, when it already holds a token (no expiry check)
//  3. Config.Credentials, acquiring a token on demand
//
// Without either the call is anonymous. Credentials implements the
// interactive OAuth flow:
//
//	creds := deezer.NewCredentials(deezer.CredentialsConfig{
//	    Perms:    "basic_access,manage_library",
//	    Prompter: deezer.ConsolePrompter{In: os.Stdin, Out: os.Stdout},
//	})
//	client, err := deezer.NewClient(deezer.Config{Credentials: creds})
//
// Any golang.org/x/oauth2 token source can be used via TokenSourceProvider.
//
// # Pagination
//
// Collection responses carry a "next" URL. Next fetches one page, Pages
// iterates over all of them:
//
//	first, err := client.Playlist(ctx, "908622995", "tracks")
//	for page, err := range client.Pages(ctx, first) {
//	    if err != nil {
//	        return err
//	    }
//	    for _, item := range page.Data() {
//	        fmt.Println(item.Get("title").String())
//	    }
//	}
//
// # Error Handling
//
// API errors reported in the response body are returned as *Error. Network
// failures and undecodable bodies are returned as *TransportError:
//
//	_, err := client.Me(ctx, "")
//	var apiErr *deezer.Error
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.Type, apiErr.Code)
//	}
//
// The client does not cache, rate limit or retry.
package deezer
