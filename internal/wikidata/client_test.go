package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeWikidata is a minimal stand-in for the MediaWiki API: token fetch,
// login, haswbstatement search, and entity creation.
type fakeWikidata struct {
	existing map[string]string // "P356=10.1/x" -> QID
	created  []string          // identifiers passed to wbeditentity
	loggedIn bool
}

func (f *fakeWikidata) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		switch {
		case r.Form.Get("meta") == "tokens":
			tokenType := r.Form.Get("type")
			writeJSON(w, map[string]any{
				"query": map[string]any{
					"tokens": map[string]string{tokenType + "token": tokenType + "-token-value"},
				},
			})
		case r.Form.Get("action") == "login":
			if r.Form.Get("lgpassword") != "hunter2" {
				writeJSON(w, map[string]any{"login": map[string]string{"result": "Failed", "reason": "wrong password"}})
				return
			}
			f.loggedIn = true
			writeJSON(w, map[string]any{"login": map[string]string{"result": "Success"}})
		case r.Form.Get("list") == "search":
			qid, ok := f.existing[r.Form.Get("srsearch")]
			results := []map[string]string{}
			if ok {
				results = append(results, map[string]string{"title": qid})
			}
			writeJSON(w, map[string]any{
				"query": map[string]any{"search": results},
			})
		case r.Form.Get("action") == "wbeditentity":
			if r.Form.Get("token") != "csrf-token-value" {
				writeJSON(w, map[string]any{"error": map[string]string{"code": "badtoken", "info": "invalid CSRF token"}})
				return
			}
			f.created = append(f.created, r.Form.Get("data"))
			writeJSON(w, map[string]any{
				"entity":  map[string]string{"id": fmt.Sprintf("Q%d", 9000+len(f.created))},
				"success": 1,
			})
		default:
			writeJSON(w, map[string]any{"error": map[string]string{"code": "unknown_action", "info": "unrecognized request"}})
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, fake *fakeWikidata) *Client {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)
	return NewClient(
		WithBaseURL(server.URL),
		WithCredentials("TestUser", "hunter2"),
		WithEditInterval(time.Millisecond),
	)
}

func TestLogin(t *testing.T) {
	fake := &fakeWikidata{}
	client := newTestClient(t, fake)

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !fake.loggedIn {
		t.Error("server never saw a login")
	}
	if client.csrfToken != "csrf-token-value" {
		t.Errorf("csrfToken = %q", client.csrfToken)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	fake := &fakeWikidata{}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	client := NewClient(
		WithBaseURL(server.URL),
		WithCredentials("TestUser", "wrong"),
		WithEditInterval(time.Millisecond),
	)
	err := client.Login(context.Background())
	if !IsAuthError(err) {
		t.Errorf("Login() error = %v, want auth error", err)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	client := NewClient(WithCredentials("", ""))
	if err := client.Login(context.Background()); !IsAuthError(err) {
		t.Errorf("Login() error = %v, want auth error", err)
	}
}

func TestFindPublication(t *testing.T) {
	fake := &fakeWikidata{
		existing: map[string]string{"haswbstatement:P356=10.1101/174094": "Q12345"},
	}
	client := newTestClient(t, fake)
	ctx := context.Background()

	qid, err := client.FindPublication(ctx, "doi", "10.1101/174094")
	if err != nil {
		t.Fatalf("FindPublication() error = %v", err)
	}
	if qid != "Q12345" {
		t.Errorf("qid = %q, want Q12345", qid)
	}

	_, err = client.FindPublication(ctx, "doi", "10.9999/missing")
	if !IsNotFound(err) {
		t.Errorf("FindPublication(missing) error = %v, want not found", err)
	}

	_, err = client.FindPublication(ctx, "isbn", "whatever")
	if err == nil {
		t.Error("FindPublication() accepted an unmapped identifier type")
	}
}

func TestCreatePublication_RequiresLogin(t *testing.T) {
	client := newTestClient(t, &fakeWikidata{})
	if _, err := client.CreatePublication(context.Background(), "doi", "10.1/x"); !IsAuthError(err) {
		t.Errorf("CreatePublication() error = %v, want auth error", err)
	}
}

type memoryLedger struct {
	seen map[string]string
}

func (m *memoryLedger) Seen(idType, identifier string) (bool, error) {
	_, ok := m.seen[idType+":"+identifier]
	return ok, nil
}

func (m *memoryLedger) Record(idType, identifier, qid string) error {
	m.seen[idType+":"+identifier] = qid
	return nil
}

func TestEnsurePublications(t *testing.T) {
	fake := &fakeWikidata{
		existing: map[string]string{"haswbstatement:P698=11111111": "Q100"},
	}
	client := newTestClient(t, fake)
	ctx := context.Background()
	if err := client.Login(ctx); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	ledger := &memoryLedger{seen: map[string]string{"pmid:33333333": "Q300"}}
	results := client.EnsurePublications(ctx, "pmid", "europepmc",
		[]string{"11111111", "22222222", "33333333"}, ledger)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	// Existing item is found, not recreated.
	if results[0].QID != "Q100" || results[0].Created {
		t.Errorf("existing id result = %+v", results[0])
	}
	// Missing item is created.
	if !results[1].Created || results[1].QID == "" {
		t.Errorf("created id result = %+v", results[1])
	}
	// Ledgered item is skipped without any API traffic.
	if !results[2].Skipped {
		t.Errorf("ledgered id result = %+v", results[2])
	}

	// Both uploads landed in the ledger.
	for _, id := range []string{"11111111", "22222222"} {
		if seen, _ := ledger.Seen("pmid", id); !seen {
			t.Errorf("identifier %s not recorded in ledger", id)
		}
	}

	if len(fake.created) != 1 {
		t.Errorf("server saw %d creations, want 1", len(fake.created))
	}
}
