package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestTelegramSend(t *testing.T) {
	var got struct {
		ChatID string `json:"chat_id"`
		Text   string `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/botTOKEN/sendMessage") {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42").WithAPIBase(srv.URL)
	if err := tg.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != "42" || got.Text != "hello" {
		t.Errorf("payload = %+v", got)
	}
}

func TestTelegramSend_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42").WithAPIBase(srv.URL)
	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected an error for http 401")
	}
}

func TestFanout_KeepsGoingOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var delivered int32
	ok := notifierFunc(func(ctx context.Context, text string) error {
		atomic.AddInt32(&delivered, 1)
		return nil
	})
	failing := NewTelegramNotifier("TOKEN", "42").WithAPIBase(srv.URL)

	f := NewFanout(failing, ok)
	if err := f.Send(context.Background(), "msg"); err != nil {
		t.Fatalf("fanout must never surface backend errors, got %v", err)
	}
	if delivered != 1 {
		t.Error("later backend skipped after earlier failure")
	}
}

type notifierFunc func(ctx context.Context, text string) error

func (f notifierFunc) Send(ctx context.Context, text string) error { return f(ctx, text) }

func TestListener_RepliesToStatus(t *testing.T) {
	var served int32
	replies := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "getUpdates"):
			// First poll delivers the command, later polls are empty.
			if atomic.AddInt32(&served, 1) == 1 {
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/status","chat":{"id":99}}}
				]}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case strings.Contains(r.URL.Path, "sendMessage"):
			var body struct {
				ChatID string `json:"chat_id"`
				Text   string `json:"text"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if body.ChatID != "99" {
				t.Errorf("reply chat_id = %q, want 99", body.ChatID)
			}
			select {
			case replies <- body.Text:
			default:
			}
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42").WithAPIBase(srv.URL)
	l := NewListener(tg, func() string { return "snapshot" })
	l.pollWait = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()

	select {
	case got := <-replies:
		if got != "snapshot" {
			t.Errorf("reply = %q, want snapshot", got)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no /status reply within 3s")
	}
	cancel()
	<-done
}

func TestListener_IgnoresOtherMessages(t *testing.T) {
	var sends int32
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "getUpdates"):
			if atomic.AddInt32(&polls, 1) == 1 {
				fmt.Fprint(w, `{"ok":true,"result":[
					{"update_id":1,"message":{"text":"hello","chat":{"id":99}}},
					{"update_id":2,"message":{"text":"/other","chat":{"id":99}}}
				]}`)
				return
			}
			fmt.Fprint(w, `{"ok":true,"result":[]}`)
		case strings.Contains(r.URL.Path, "sendMessage"):
			atomic.AddInt32(&sends, 1)
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	tg := NewTelegramNotifier("TOKEN", "42").WithAPIBase(srv.URL)
	l := NewListener(tg, func() string { return "snapshot" })
	l.pollWait = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	l.Run(ctx)

	if atomic.LoadInt32(&sends) != 0 {
		t.Errorf("non-status messages triggered %d replies", sends)
	}
}
