package hostclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGetAppendsExplicitToken(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		w.Write([]byte(`{"data":{"name":"lib"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "explicit-token"

	var out struct {
		Name string `json:"name"`
	}
	if err := c.Get(context.Background(), "/api/library/info", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotToken != "explicit-token" {
		t.Errorf("token = %q, want explicit-token", gotToken)
	}
	if out.Name != "lib" {
		t.Errorf("Name = %q, want lib", out.Name)
	}
}

func TestGetRepeatsArrayQueryKeys(t *testing.T) {
	var gotIDs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDs = r.URL.Query()["ids"]
		w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "t"

	q := url.Values{"ids": []string{"a", "b", "c"}}
	if err := c.Get(context.Background(), "/api/item/info", q, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(gotIDs) != 3 || gotIDs[0] != "a" || gotIDs[2] != "c" {
		t.Errorf("ids = %v, want [a b c]", gotIDs)
	}
}

func TestPostStripsNullFields(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "t"

	body := map[string]interface{}{
		"name":       "a folder",
		"annotation": nil,
		"star":       3,
	}
	if err := c.Post(context.Background(), "/api/folder/create", body, nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if _, ok := gotBody["annotation"]; ok {
		t.Error("expected annotation to be stripped from request body")
	}
	if gotBody["name"] != "a folder" {
		t.Errorf("name = %v, want 'a folder'", gotBody["name"])
	}
}

func TestNon2xxSurfacesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.Token = "t"

	err := c.Get(context.Background(), "/api/library/info", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	statusErr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != 500 || statusErr.Body != "boom" {
		t.Errorf("unexpected StatusError: %+v", statusErr)
	}
}

func TestTokenCacheSharesInFlightRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"data":{"preferences":{"developer":{"apiToken":"tok-123"}}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	var wg sync.WaitGroup
	tokens := make([]string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := c.resolveToken(context.Background())
			if err != nil {
				t.Errorf("resolveToken: %v", err)
				return
			}
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	for _, tok := range tokens {
		if tok != "tok-123" {
			t.Errorf("token = %q, want tok-123", tok)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected exactly 1 call to /api/application/info, got %d", calls)
	}

	c.ClearTokenCache()
	tok, err := c.resolveToken(context.Background())
	if err != nil {
		t.Fatalf("resolveToken after clear: %v", err)
	}
	if tok != "tok-123" {
		t.Errorf("token after clear = %q", tok)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected a second call after ClearTokenCache, got %d", calls)
	}
}

func TestNoTokenFoundError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.Get(context.Background(), "/api/library/info", nil, nil)
	if err == nil {
		t.Fatal("expected error when token resolution fails")
	}
}
