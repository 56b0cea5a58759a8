// ABOUTME: Forms catalog and schema lookup with v3-to-legacy-v2 fallback.
// ABOUTME: Normalizes both marketing/v3 and forms/v2 payload shapes.

package hubspot

import (
	"context"
	"log"
	"net/url"

	"github.com/2389/hublens/internal/grid"
)

// ListForms returns every form visible to the token. It tries the v3
// marketing API first and falls back to the legacy v2 API when v3 fails or
// lacks its results container. Failures degrade to an empty list plus a
// diagnostic reason code, never an error.
func (c *Client) ListForms(ctx context.Context) ([]grid.Entity, string) {
	if !c.TokenConfigured() {
		log.Println("hubspot: token not configured, skipping forms lookup")
		return []grid.Entity{}, ReasonTokenNotConfigured
	}

	r := c.get(ctx, "/marketing/v3/forms", url.Values{"limit": {"250"}})
	if results := asList(r.Map()["results"]); r.OK && results != nil {
		forms := make([]grid.Entity, 0, len(results))
		for _, raw := range results {
			fm := asMap(raw)
			if fm == nil {
				continue
			}
			forms = append(forms, grid.Entity{
				ID:     firstStr(fm, "id", "guid"),
				Name:   formName(fm),
				Fields: normalizeFormFields(fm),
			})
		}
		return forms, ""
	}
	log.Printf("hubspot: v3 forms lookup failed (status %d), trying v2", r.Code)

	r2 := c.get(ctx, "/forms/v2/forms", nil)
	if list := r2.List(); r2.OK && list != nil {
		forms := make([]grid.Entity, 0, len(list))
		for _, raw := range list {
			fm := asMap(raw)
			if fm == nil {
				continue
			}
			forms = append(forms, grid.Entity{
				ID:     str(fm, "guid"),
				Name:   formName(fm),
				Fields: normalizeFormFields(fm),
			})
		}
		return forms, ""
	}
	log.Printf("hubspot: v2 forms lookup also failed (status %d)", r2.Code)

	return []grid.Entity{}, ReasonUpstreamError
}

// FormDetails fetches one form's normalized schema, v3 first then v2.
// A form that cannot be found degrades to an entity with empty fields.
func (c *Client) FormDetails(ctx context.Context, formID string) grid.Entity {
	if !c.TokenConfigured() {
		return grid.Entity{ID: formID, Fields: []grid.Field{}}
	}

	r := c.get(ctx, "/marketing/v3/forms/"+url.PathEscape(formID), nil)
	if data := r.Map(); r.OK && data != nil {
		id := str(data, "id")
		if id == "" {
			id = formID
		}
		return grid.Entity{
			ID:     id,
			Name:   str(data, "name"),
			Fields: normalizeFormFields(data),
		}
	}
	log.Printf("hubspot: v3 form details failed for %s (status %d), trying v2", formID, r.Code)

	r2 := c.get(ctx, "/forms/v2/forms/"+url.PathEscape(formID), nil)
	if data := r2.Map(); r2.OK && data != nil {
		return grid.Entity{
			ID:     formID,
			Name:   str(data, "name"),
			Fields: normalizeFormFields(data),
		}
	}
	log.Printf("hubspot: no form details found for %s", formID)

	return grid.Entity{ID: formID, Fields: []grid.Field{}}
}

func formName(fm map[string]any) string {
	if name := str(fm, "name"); name != "" {
		return name
	}
	return "Untitled form"
}
