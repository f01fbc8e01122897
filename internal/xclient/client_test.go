package xclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// helper to create client with injected http client
func newTestClient(ts *httptest.Server) *HTTPClient {
	c := NewHTTPClient("test")
	c.maxAttempts = 3
	c.baseBackoff = 10 * time.Millisecond
	c.httpClient = ts.Client()
	c.baseURL = ts.URL
	return c
}

func TestDoWithRetryHandles429(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/test", nil)
	resp, err := c.doWithRetry(context.Background(), req)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if attempts < 2 {
		t.Fatalf("expected at least 2 attempts, got %d", attempts)
	}
}

func TestGetUserByUsername(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"42","name":"Alice","username":"alice",
			"public_metrics":{"followers_count":1200,"tweet_count":340}}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	u, err := c.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "42" || u.Username != "alice" || u.FollowersCount != 1200 {
		t.Fatalf("bad user: %+v", u)
	}
}

func TestGetUserByUsernameMiss(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"title":"Not Found Error"}]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	if _, err := c.GetUserByUsername(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for missing user")
	}
}

func TestGetUserTweetsMediaDetection(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"1","text":"with pic","attachments":{"media_keys":["3_111"]},
			 "public_metrics":{"like_count":10,"retweet_count":2,"reply_count":1,"quote_count":0}},
			{"id":"2","text":"plain","public_metrics":{"like_count":3}}
		]}`))
	}))
	defer ts.Close()

	c := newTestClient(ts)
	tweets, err := c.GetUserTweets(context.Background(), "42", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(tweets) != 2 {
		t.Fatalf("got %d tweets", len(tweets))
	}
	if !tweets[0].HasMedia || tweets[1].HasMedia {
		t.Fatalf("media detection wrong: %+v", tweets)
	}
	if tweets[0].AuthorID != "42" || tweets[0].LikeCount != 10 {
		t.Fatalf("bad tweet: %+v", tweets[0])
	}
}
