// ABOUTME: Tests for the fake HubSpot upstream.
// ABOUTME: Covers auth, endpoint shapes, paging, and a full client round trip.

package mockhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389/hublens/internal/hubspot"
)

func newTestServer(t *testing.T) (*httptest.Server, *Fixtures) {
	t.Helper()
	fixtures := BuildFixtures(context.Background(), &Generator{})
	ts := httptest.NewServer(NewServer(fixtures).Router())
	t.Cleanup(ts.Close)
	return ts, fixtures
}

func authedGet(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	req, _ := http.NewRequest("GET", url, nil)
	req.Header.Set("Authorization", "Bearer test-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func TestRequireBearer(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/marketing/v3/forms")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 401 {
		t.Errorf("status without token = %d, want 401", resp.StatusCode)
	}

	authed, _ := authedGet(t, ts.URL+"/marketing/v3/forms")
	if authed.StatusCode != 200 {
		t.Errorf("status with token = %d, want 200", authed.StatusCode)
	}
}

func TestListFormsV3Shape(t *testing.T) {
	ts, fixtures := newTestServer(t)

	_, body := authedGet(t, ts.URL+"/marketing/v3/forms")
	results, ok := body["results"].([]any)
	if !ok || len(results) != len(fixtures.Forms) {
		t.Fatalf("results = %v", body["results"])
	}
	first := results[0].(map[string]any)
	if first["id"] == "" || first["name"] == "" {
		t.Errorf("form entry = %v", first)
	}
	if _, ok := first["fieldGroups"]; !ok {
		t.Errorf("v3 form missing fieldGroups: %v", first)
	}
}

func TestListFormsV2BareArray(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest("GET", ts.URL+"/forms/v2/forms", nil)
	req.Header.Set("Authorization", "Bearer test-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("v2 forms is not a bare array: %v", err)
	}
	if len(list) == 0 || list[0]["guid"] == "" {
		t.Errorf("v2 forms = %v", list)
	}
	if _, ok := list[0]["formFieldGroups"]; !ok {
		t.Errorf("v2 form missing formFieldGroups: %v", list[0])
	}
}

func TestSubmissionsCursorPaging(t *testing.T) {
	ts, fixtures := newTestServer(t)
	formID := fixtures.Forms[0].ID

	_, body := authedGet(t, ts.URL+"/form-integrations/v1/submissions/forms/"+formID+"?limit=50")
	results := body["results"].([]any)
	if len(results) != 50 {
		t.Fatalf("first page size = %d, want 50", len(results))
	}
	if body["total"] != float64(submissionsPerForm) {
		t.Errorf("total = %v, want %d", body["total"], submissionsPerForm)
	}

	after := body["paging"].(map[string]any)["next"].(map[string]any)["after"].(string)
	if after != "50" {
		t.Errorf("after = %q, want 50", after)
	}

	// Walk to the end; the final page carries no paging block.
	_, last := authedGet(t, ts.URL+"/form-integrations/v1/submissions/forms/"+formID+"?limit=50&after=100")
	if len(last["results"].([]any)) != submissionsPerForm-100 {
		t.Errorf("last page size = %d", len(last["results"].([]any)))
	}
	if _, ok := last["paging"]; ok {
		t.Errorf("final page still advertises a next cursor")
	}
}

func TestSearchContactsFiltersByForm(t *testing.T) {
	ts, fixtures := newTestServer(t)
	formID := fixtures.Forms[0].ID

	search := func(body string) map[string]any {
		req, _ := http.NewRequest("POST", ts.URL+"/crm/v3/objects/contacts/search", strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer test-token")
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}
		defer resp.Body.Close()
		var out map[string]any
		json.NewDecoder(resp.Body).Decode(&out)
		return out
	}

	out := search(`{
		"filterGroups": [{"filters": [{
			"propertyName": "hs_calculated_form_submissions",
			"operator": "CONTAINS_TOKEN",
			"value": "` + formID + `"
		}]}],
		"limit": 10,
		"after": 20
	}`)

	results := out["results"].([]any)
	if len(results) != 10 {
		t.Fatalf("results = %d, want 10", len(results))
	}
	if out["total"] != float64(contactsPerForm) {
		t.Errorf("total = %v, want %d", out["total"], contactsPerForm)
	}
	props := results[0].(map[string]any)["properties"].(map[string]any)
	if !strings.HasPrefix(props["hs_calculated_form_submissions"].(string), formID+"::") {
		t.Errorf("contact not scoped to form: %v", props)
	}

	// An unknown form matches nothing.
	empty := search(`{
		"filterGroups": [{"filters": [{
			"propertyName": "hs_calculated_form_submissions",
			"operator": "CONTAINS_TOKEN",
			"value": "nonexistent-form"
		}]}],
		"limit": 10
	}`)
	if len(empty["results"].([]any)) != 0 {
		t.Errorf("unknown form returned contacts")
	}
}

func TestTableRowsOffsetPaging(t *testing.T) {
	ts, fixtures := newTestServer(t)
	tableID := fixtures.Tables[0].ID

	_, body := authedGet(t, ts.URL+"/cms/v3/hubdb/tables/"+tableID+"/rows?limit=2&offset=2")
	results := body["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if body["total"] != float64(len(fixtures.Tables[0].Rows)) {
		t.Errorf("total = %v", body["total"])
	}
	if body["offset"] != float64(2) {
		t.Errorf("offset = %v, want 2", body["offset"])
	}
}

// TestClientRoundTrip runs the real client against the fake upstream to make
// sure the two ends agree on wire shapes.
func TestClientRoundTrip(t *testing.T) {
	ts, fixtures := newTestServer(t)
	client := hubspot.NewClient(ts.URL, "test-token")
	ctx := context.Background()

	forms, reason := client.ListForms(ctx)
	if reason != "" || len(forms) != len(fixtures.Forms) {
		t.Fatalf("ListForms = %d forms, reason %q", len(forms), reason)
	}
	if len(forms[0].Fields) == 0 {
		t.Errorf("form schema did not normalize: %+v", forms[0])
	}

	page := client.Submissions(ctx, forms[0].ID, 25, "", 1)
	if !page.Supported || page.Paging.RecordCount != 25 || !page.Paging.HasNext {
		t.Fatalf("submissions page = %+v", page.Paging)
	}
	if page.Columns[0] != "conversationId" || page.Columns[1] != "submittedAt" || page.Columns[2] != "pageUrl" {
		t.Errorf("columns = %v", page.Columns)
	}

	contacts := client.ContactsFromForm(ctx, forms[0].ID, 25, 0)
	if !contacts.Supported || contacts.Paging.RecordCount != 25 {
		t.Fatalf("contacts page = %+v", contacts.Paging)
	}

	tables, reason := client.ListTables(ctx)
	if reason != "" || len(tables) != 1 {
		t.Fatalf("ListTables = %d tables, reason %q", len(tables), reason)
	}
	rows := client.TableRows(ctx, tables[0].ID, 10, 0)
	if !rows.Supported || rows.Paging.RecordCount != len(fixtures.Tables[0].Rows) {
		t.Fatalf("table rows page = %+v", rows.Paging)
	}
}
