// ABOUTME: Shape normalizer turning raw HubSpot payloads into canonical form.
// ABOUTME: Tolerant multi-shape parsing; malformed input degrades to defaults.

package hubspot

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/2389/hublens/internal/grid"
)

// rawSubmittedAtKey carries the raw submission timestamp for the client-side
// resort. It is stripped before a row is finalized and never reaches the
// column union.
const rawSubmittedAtKey = "_rawSubmittedAt"

// submissionPrefix pins the submission identity columns to the front of the
// grid.
var submissionPrefix = []string{"conversationId", "submittedAt", "pageUrl"}

// contactPrefix pins the standard CRM properties (plus the two
// account-specific custom ones) to the front of the contacts grid.
var contactPrefix = []string{"id", "email", "firstname", "lastname", "createdate", "franchise_id", "hs_analytics_first_url"}

// tablePrefix puts the HubDB row id first.
var tablePrefix = []string{"id"}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asList(v any) []any {
	l, _ := v.([]any)
	return l
}

// str reads m[key] as a display string, empty when absent or non-scalar-free.
func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return displayValue(v)
}

// firstStr returns the first non-empty string among m[keys...].
func firstStr(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m, k); s != "" {
			return s
		}
	}
	return ""
}

// displayValue renders any decoded JSON value as a display string. Scalars
// format plainly; structured values serialize to their JSON representation.
func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

// fieldFromMap builds one canonical Field. Label falls back to placeholder
// then name; type prefers fieldType over type. Missing values stay empty
// strings, never null.
func fieldFromMap(m map[string]any) grid.Field {
	name := str(m, "name")
	return grid.Field{
		Name:  name,
		Label: firstStr(m, "label", "placeholder", "name"),
		Type:  firstStr(m, "fieldType", "type"),
		ID:    str(m, "id"),
	}
}

// schemaMatcher tries to read a field list out of one known payload shape,
// reporting false when the payload is not that shape or yields nothing.
type schemaMatcher func(data map[string]any) ([]grid.Field, bool)

// formSchemaMatchers is the ordered shape-dispatch table for form schemas:
// v3 fieldGroups, legacy formFieldGroups, a flat fields list, then the
// configuration.postSubmitActions fallback. First non-empty result wins;
// shapes are never merged.
var formSchemaMatchers = []schemaMatcher{
	matchFieldGroups,
	matchLegacyFieldGroups,
	matchFlatFields,
	matchPostSubmitActions,
}

func fieldsFromGroups(groups []any) []grid.Field {
	var fields []grid.Field
	for _, g := range groups {
		for _, f := range asList(asMap(g)["fields"]) {
			if fm := asMap(f); fm != nil {
				fields = append(fields, fieldFromMap(fm))
			}
		}
	}
	return fields
}

func matchFieldGroups(data map[string]any) ([]grid.Field, bool) {
	fields := fieldsFromGroups(asList(data["fieldGroups"]))
	return fields, len(fields) > 0
}

func matchLegacyFieldGroups(data map[string]any) ([]grid.Field, bool) {
	fields := fieldsFromGroups(asList(data["formFieldGroups"]))
	return fields, len(fields) > 0
}

func matchFlatFields(data map[string]any) ([]grid.Field, bool) {
	var fields []grid.Field
	for _, f := range asList(data["fields"]) {
		if fm := asMap(f); fm != nil {
			fields = append(fields, fieldFromMap(fm))
		}
	}
	return fields, len(fields) > 0
}

func matchPostSubmitActions(data map[string]any) ([]grid.Field, bool) {
	var fields []grid.Field
	cfg := asMap(data["configuration"])
	for _, a := range asList(cfg["postSubmitActions"]) {
		for _, f := range asList(asMap(a)["fields"]) {
			if fm := asMap(f); fm != nil {
				fields = append(fields, fieldFromMap(fm))
			}
		}
	}
	return fields, len(fields) > 0
}

// normalizeFormFields resolves the form schema shape and extracts its field
// list. An unrecognized payload yields an empty list, not an error.
func normalizeFormFields(data map[string]any) []grid.Field {
	for _, match := range formSchemaMatchers {
		if fields, ok := match(data); ok {
			return fields
		}
	}
	return []grid.Field{}
}

// normalizeTableFields reads the flat HubDB "columns" list.
func normalizeTableFields(data map[string]any) []grid.Field {
	fields := []grid.Field{}
	for _, c := range asList(data["columns"]) {
		if cm := asMap(c); cm != nil {
			fields = append(fields, grid.Field{
				Name:  str(cm, "name"),
				Label: firstStr(cm, "label", "name"),
				Type:  str(cm, "type"),
				ID:    str(cm, "id"),
			})
		}
	}
	return fields
}

// normalizeTableRows flattens HubDB rows: id first, then the nested values
// map, then the created/updated timestamps when present. Structured cell
// values serialize to JSON strings.
func normalizeTableRows(results []any) []*grid.Record {
	records := make([]*grid.Record, 0, len(results))
	for _, raw := range results {
		rm := asMap(raw)
		if rm == nil {
			continue
		}
		rec := grid.NewRecord()
		rec.Set("id", str(rm, "id"))

		if values := asMap(rm["values"]); values != nil {
			// The values object decodes unordered; sort its keys so two
			// identical responses produce identical pages.
			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				rec.Set(k, displayValue(values[k]))
			}
		}

		if _, ok := rm["createdAt"]; ok {
			rec.Set("createdAt", str(rm, "createdAt"))
		}
		if _, ok := rm["updatedAt"]; ok {
			rec.Set("updatedAt", str(rm, "updatedAt"))
		}
		records = append(records, rec)
	}
	return records
}

// normalizeSubmissionRows flattens each submission's value list to
// name -> value (multi-value entries joined with ", "), force-populates the
// identity columns, resorts newest-first on the raw timestamp, then strips
// the internal sort key.
func normalizeSubmissionRows(results []any) []*grid.Record {
	records := make([]*grid.Record, 0, len(results))
	for _, raw := range results {
		sm := asMap(raw)
		if sm == nil {
			continue
		}
		rec := grid.NewRecord()

		for _, v := range asList(sm["values"]) {
			vm := asMap(v)
			if vm == nil {
				continue
			}
			name := str(vm, "name")
			if name == "" {
				continue
			}
			value := ""
			if _, ok := vm["value"]; ok {
				value = str(vm, "value")
			} else if list := asList(vm["values"]); list != nil {
				for i, item := range list {
					if i > 0 {
						value += ", "
					}
					value += displayValue(item)
				}
			}
			rec.Set(name, value)
		}

		// Identity columns are present even when the source omits them.
		rec.Set("conversationId", str(sm, "conversationId"))
		rec.Set("submittedAt", str(sm, "submittedAt"))
		rec.Set("pageUrl", str(sm, "pageUrl"))
		rec.Set(rawSubmittedAtKey, str(sm, "submittedAt"))

		records = append(records, rec)
	}

	// Safety-net resort: newest first, comparing the raw timestamps as
	// strings. Fixed-width zero-padded timestamps make lexicographic
	// descending equal to chronological descending.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Get(rawSubmittedAtKey) > records[j].Get(rawSubmittedAtKey)
	})

	for _, rec := range records {
		rec.Delete(rawSubmittedAtKey)
	}
	return records
}

// normalizeContactRows pulls the standard properties out explicitly so they
// pin to the front of the key set, then appends the remaining CRM
// properties in sorted order.
func normalizeContactRows(results []any) []*grid.Record {
	standard := make(map[string]bool, len(contactPrefix))
	for _, k := range contactPrefix {
		standard[k] = true
	}

	records := make([]*grid.Record, 0, len(results))
	for _, raw := range results {
		cm := asMap(raw)
		if cm == nil {
			continue
		}
		props := asMap(cm["properties"])

		rec := grid.NewRecord()
		rec.Set("id", str(cm, "id"))
		for _, k := range contactPrefix[1:] {
			rec.Set(k, str(props, k))
		}

		extra := make([]string, 0, len(props))
		for k := range props {
			if !standard[k] {
				extra = append(extra, k)
			}
		}
		sort.Strings(extra)
		for _, k := range extra {
			rec.Set(k, displayValue(props[k]))
		}

		records = append(records, rec)
	}
	return records
}
