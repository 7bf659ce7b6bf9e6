package libcal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient returns a client against the test server that records sleeps
// instead of performing them.
func newTestClient(serverURL string, slept *[]time.Duration) *Client {
	c := NewClient(serverURL, 250*time.Millisecond)
	c.sleep = func(d time.Duration) {
		*slept = append(*slept, d)
	}
	return c
}

func TestFetchGridSendsFixedForm(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/spaces/availability/grid" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Requested-With"); got != "XMLHttpRequest" {
			t.Errorf("X-Requested-With = %q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Write([]byte(`{"slots":[]}`))
	}))
	defer server.Close()

	var slept []time.Duration
	client := newTestClient(server.URL, &slept)

	if _, err := client.FetchGrid(context.Background(), 30514, 7314, "2026-09-01", "2026-09-02"); err != nil {
		t.Fatalf("FetchGrid: %v", err)
	}

	want := map[string]string{
		"lid":       "3446",
		"gid":       "7314",
		"eid":       "30514",
		"seat":      "0",
		"seatId":    "0",
		"zone":      "0",
		"start":     "2026-09-01",
		"end":       "2026-09-02",
		"pageIndex": "0",
		"pageSize":  "18",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Errorf("form[%s] = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestFetchGridDecodesSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"slots":[
			{"itemId":10,"start":"2026-09-01 08:00:00","end":"2026-09-01 08:30:00","checksum":"x"},
			{"itemId":20,"start":"2026-09-01 08:00:00","end":"2026-09-01 08:30:00","className":"s-lc-eq-checkout"}
		]}`))
	}))
	defer server.Close()

	var slept []time.Duration
	client := newTestClient(server.URL, &slept)

	grid, err := client.FetchGrid(context.Background(), 10, 1, "2026-09-01", "2026-09-01")
	if err != nil {
		t.Fatalf("FetchGrid: %v", err)
	}

	if len(grid.Slots) != 2 {
		t.Fatalf("slot count = %d, want 2", len(grid.Slots))
	}
	if grid.Slots[0].ItemID != 10 || grid.Slots[0].Checksum != "x" {
		t.Errorf("first slot wrong: %+v", grid.Slots[0])
	}
	if grid.Slots[1].ClassName != CheckoutClass {
		t.Errorf("second slot className = %q", grid.Slots[1].ClassName)
	}
}

func TestFetchGridThrottlesAfterSuccessOnly(t *testing.T) {
	var status int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(`{"slots":[]}`))
	}))
	defer server.Close()

	var slept []time.Duration
	client := newTestClient(server.URL, &slept)

	if _, err := client.FetchGrid(context.Background(), 1, 1, "2026-09-01", "2026-09-01"); err != nil {
		t.Fatalf("FetchGrid: %v", err)
	}
	if len(slept) != 1 || slept[0] != 250*time.Millisecond {
		t.Errorf("expected one 250ms sleep after success, got %v", slept)
	}

	status = http.StatusInternalServerError
	if _, err := client.FetchGrid(context.Background(), 1, 1, "2026-09-01", "2026-09-01"); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if len(slept) != 1 {
		t.Errorf("failure must not throttle, sleeps = %v", slept)
	}
}

func TestFetchGridFailureModes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.FormValue("eid") {
		case "1":
			w.WriteHeader(http.StatusForbidden)
		case "2":
			w.Write([]byte(`not json at all`))
		case "3":
			w.Write([]byte(`{"other":"shape"}`))
		}
	}))
	defer server.Close()

	var slept []time.Duration
	client := newTestClient(server.URL, &slept)
	ctx := context.Background()

	if _, err := client.FetchGrid(ctx, 1, 1, "2026-09-01", "2026-09-01"); err == nil {
		t.Error("non-2xx status should be an error")
	}
	if _, err := client.FetchGrid(ctx, 2, 1, "2026-09-01", "2026-09-01"); err == nil {
		t.Error("undecodable body should be an error")
	}
	if _, err := client.FetchGrid(ctx, 3, 1, "2026-09-01", "2026-09-01"); err == nil {
		t.Error("body without a slots array should be an error")
	}
	if len(slept) != 0 {
		t.Errorf("failures must not throttle, sleeps = %v", slept)
	}

	// Transport failure.
	server.Close()
	if _, err := client.FetchGrid(ctx, 1, 1, "2026-09-01", "2026-09-01"); err == nil {
		t.Error("transport failure should be an error")
	}
}
