// ABOUTME: Tests for the shape normalizer.
// ABOUTME: Covers all four form schema variants, row flattening, and resort.

package hubspot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/hublens/internal/grid"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestNormalizeFormFields_EquivalentAcrossShapes(t *testing.T) {
	want := []grid.Field{
		{Name: "email", Label: "Email", Type: "text"},
		{Name: "firstname", Label: "First name", Type: "text"},
	}

	shapes := map[string]string{
		"fieldGroups": `{"fieldGroups":[{"fields":[
			{"name":"email","label":"Email","fieldType":"text"},
			{"name":"firstname","label":"First name","fieldType":"text"}]}]}`,
		"formFieldGroups": `{"formFieldGroups":[{"fields":[
			{"name":"email","label":"Email","fieldType":"text"},
			{"name":"firstname","label":"First name","fieldType":"text"}]}]}`,
		"flat fields": `{"fields":[
			{"name":"email","label":"Email","type":"text"},
			{"name":"firstname","label":"First name","type":"text"}]}`,
		"postSubmitActions": `{"configuration":{"postSubmitActions":[{"fields":[
			{"name":"email","label":"Email","fieldType":"text"},
			{"name":"firstname","label":"First name","fieldType":"text"}]}]}}`,
	}

	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, normalizeFormFields(decode(t, raw)))
		})
	}
}

func TestNormalizeFormFields_FirstShapeWins(t *testing.T) {
	data := decode(t, `{
		"fieldGroups":[{"fields":[{"name":"v3_field"}]}],
		"formFieldGroups":[{"fields":[{"name":"legacy_field"}]}]
	}`)

	fields := normalizeFormFields(data)
	require.Len(t, fields, 1)
	assert.Equal(t, "v3_field", fields[0].Name)
}

func TestNormalizeFormFields_ThreeFieldsAcrossTwoGroups(t *testing.T) {
	data := decode(t, `{"fieldGroups":[
		{"fields":[{"name":"email","label":"Email","fieldType":"text"},{"name":"phone","fieldType":"phonenumber"}]},
		{"fields":[{"name":"message","placeholder":"Your message","fieldType":"textarea"}]}
	]}`)

	fields := normalizeFormFields(data)
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"email", "phone", "message"}, []string{fields[0].Name, fields[1].Name, fields[2].Name})
	for _, f := range fields {
		assert.NotEmpty(t, f.Label, "label falls back to placeholder or name")
	}
	assert.Equal(t, "phone", fields[1].Label)
	assert.Equal(t, "Your message", fields[2].Label)
}

func TestNormalizeFormFields_MalformedDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{
		`{}`,
		`{"fieldGroups":"not-a-list"}`,
		`{"fieldGroups":[{"fields":"nope"}]}`,
		`{"configuration":{}}`,
	} {
		assert.Empty(t, normalizeFormFields(decode(t, raw)), "payload %s", raw)
	}
}

func TestNormalizeTableFields(t *testing.T) {
	data := decode(t, `{"columns":[
		{"name":"title","label":"Title","type":"TEXT","id":"1"},
		{"name":"price","type":"NUMBER","id":"2"}
	]}`)

	fields := normalizeTableFields(data)
	require.Len(t, fields, 2)
	assert.Equal(t, grid.Field{Name: "title", Label: "Title", Type: "TEXT", ID: "1"}, fields[0])
	assert.Equal(t, "price", fields[1].Label, "label falls back to name")
}

func TestNormalizeTableRows(t *testing.T) {
	var results []any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"101","values":{"title":"Hello","tags":["a","b"],"price":19.5},"createdAt":"2024-01-02T03:04:05Z"}
	]`), &results))

	records := normalizeTableRows(results)
	require.Len(t, records, 1)
	row := records[0].Row()

	assert.Equal(t, "101", row["id"])
	assert.Equal(t, "Hello", row["title"])
	assert.Equal(t, `["a","b"]`, row["tags"], "structured values serialize to JSON")
	assert.Equal(t, "19.5", row["price"])
	assert.Equal(t, "2024-01-02T03:04:05Z", row["createdAt"])
	assert.Equal(t, "id", records[0].Keys()[0])
}

func TestNormalizeSubmissionRows_SortsAndStripsInternalKey(t *testing.T) {
	var results []any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"submittedAt":"2024-03-01T08:00:00Z","pageUrl":"/a","values":[{"name":"email","value":"old@x.com"}]},
		{"submittedAt":"2024-03-02T09:00:00Z","pageUrl":"/b","values":[{"name":"email","value":"new@x.com"}]}
	]`), &results))

	records := normalizeSubmissionRows(results)
	require.Len(t, records, 2)

	assert.Equal(t, "new@x.com", records[0].Get("email"), "newest submission first")
	assert.Equal(t, "old@x.com", records[1].Get("email"))

	for _, rec := range records {
		assert.NotContains(t, rec.Keys(), rawSubmittedAtKey)
		assert.Equal(t, "", rec.Get("conversationId"), "identity column present even when absent upstream")
		_, hasConversation := rec.Row()["conversationId"]
		assert.True(t, hasConversation)
	}
}

func TestNormalizeSubmissionRows_JoinsMultiValues(t *testing.T) {
	var results []any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"submittedAt":"2024-03-01T08:00:00Z","values":[
			{"name":"firstname","values":["John","Q"]},
			{"name":"email","value":"j@x.com"},
			{"name":""}
		]}
	]`), &results))

	records := normalizeSubmissionRows(results)
	require.Len(t, records, 1)
	assert.Equal(t, "John, Q", records[0].Get("firstname"))
	assert.Equal(t, "j@x.com", records[0].Get("email"))
}

func TestNormalizeContactRows_PinsStandardProperties(t *testing.T) {
	var results []any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"301","properties":{
			"email":"c@x.com","firstname":"Casey","lastname":"Lee",
			"createdate":"1711900000000","lifecyclestage":"lead","company":"Acme"
		}}
	]`), &results))

	records := normalizeContactRows(results)
	require.Len(t, records, 1)

	keys := records[0].Keys()
	assert.Equal(t, contactPrefix, keys[:len(contactPrefix)])
	assert.Equal(t, "", records[0].Get("franchise_id"), "missing standard property defaults to empty")
	assert.Contains(t, keys, "company")
	assert.Contains(t, keys, "lifecyclestage")
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "", displayValue(nil))
	assert.Equal(t, "plain", displayValue("plain"))
	assert.Equal(t, "true", displayValue(true))
	assert.Equal(t, "42", displayValue(float64(42)))
	assert.Equal(t, "3.14", displayValue(3.14))
	assert.Equal(t, `{"a":"b"}`, displayValue(map[string]any{"a": "b"}))
}
