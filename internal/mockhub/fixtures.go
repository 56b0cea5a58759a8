// ABOUTME: In-memory fixture data for the fake HubSpot upstream.
// ABOUTME: Builds forms, tables, submissions, and contacts with stable ids.

package mockhub

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type FormField struct {
	Name  string
	Label string
	Type  string
}

type Form struct {
	ID     string
	Name   string
	Fields []FormField
}

type TableColumn struct {
	ID    string
	Name  string
	Label string
	Type  string
}

type TableRow struct {
	ID     string
	Values map[string]any
}

type Table struct {
	ID      string
	Name    string
	Columns []TableColumn
	Rows    []TableRow
}

type Submission struct {
	ConversationID string
	SubmittedAt    time.Time
	PageURL        string
	Values         []SubmissionValue
}

type SubmissionValue struct {
	Name  string
	Value string
}

type Contact struct {
	ID         string
	Properties map[string]string
	CreatedAt  time.Time
}

// Fixtures is the whole fake account state.
type Fixtures struct {
	Forms       []Form
	Tables      []Table
	Submissions map[string][]Submission // form id -> newest first
	Contacts    map[string][]Contact    // form id -> createdate descending
}

const (
	submissionsPerForm = 120
	contactsPerForm    = 60
)

// BuildFixtures seeds a fake account: two forms with different schemas, one
// HubDB table, and enough submissions and contacts to exercise pagination.
func BuildFixtures(ctx context.Context, gen *Generator) *Fixtures {
	contactFormID := uuid.NewString()
	quoteFormID := uuid.NewString()

	f := &Fixtures{
		Forms: []Form{
			{
				ID:   contactFormID,
				Name: "Contact Us",
				Fields: []FormField{
					{Name: "email", Label: "Email", Type: "email"},
					{Name: "firstname", Label: "First name", Type: "text"},
					{Name: "lastname", Label: "Last name", Type: "text"},
					{Name: "message", Label: "How can we help?", Type: "textarea"},
				},
			},
			{
				ID:   quoteFormID,
				Name: "Free Quote Request",
				Fields: []FormField{
					{Name: "email", Label: "Email", Type: "email"},
					{Name: "firstname", Label: "First name", Type: "text"},
					{Name: "phone", Label: "Phone", Type: "phonenumber"},
					{Name: "service", Label: "Service needed", Type: "select"},
				},
			},
		},
		Tables:      []Table{buildLocationsTable()},
		Submissions: map[string][]Submission{},
		Contacts:    map[string][]Contact{},
	}

	seedSubs := gen.GenerateSubmissions(ctx, submissionsPerForm)
	seedContacts := gen.GenerateContacts(ctx, contactsPerForm)

	for _, form := range f.Forms {
		f.Submissions[form.ID] = buildSubmissions(seedSubs)
		f.Contacts[form.ID] = buildContacts(form.ID, seedContacts)
	}
	return f
}

func buildLocationsTable() Table {
	rows := []TableRow{
		{Values: map[string]any{"name": "Downtown", "city": "Minneapolis", "rating": 4.8, "services": []any{"roofing", "gutters"}}},
		{Values: map[string]any{"name": "Lakeside", "city": "Duluth", "rating": 4.6, "services": []any{"gutters"}}},
		{Values: map[string]any{"name": "Northgate", "city": "St. Paul", "rating": 4.9, "services": []any{"roofing", "drainage", "gutters"}}},
		{Values: map[string]any{"name": "Westfield", "city": "Bloomington", "rating": 4.2, "services": []any{"drainage"}}},
	}
	for i := range rows {
		rows[i].ID = fmt.Sprintf("%d", 1000+i)
	}
	return Table{
		ID:   "5001234",
		Name: "locations",
		Columns: []TableColumn{
			{ID: "1", Name: "name", Label: "Location name", Type: "TEXT"},
			{ID: "2", Name: "city", Label: "City", Type: "TEXT"},
			{ID: "3", Name: "rating", Label: "Rating", Type: "NUMBER"},
			{ID: "4", Name: "services", Label: "Services", Type: "MULTISELECT"},
		},
		Rows: rows,
	}
}

func buildSubmissions(seeds []SubmissionData) []Submission {
	subs := make([]Submission, 0, len(seeds))
	// Spread submissions backward in time, newest first.
	at := time.Now().Add(-10 * time.Minute)
	for i, seed := range seeds {
		subs = append(subs, Submission{
			ConversationID: uuid.NewString(),
			SubmittedAt:    at.Add(-time.Duration(i) * 7 * time.Hour),
			PageURL:        seed.PageURL,
			Values: []SubmissionValue{
				{Name: "email", Value: seed.Email},
				{Name: "firstname", Value: seed.Firstname},
				{Name: "lastname", Value: seed.Lastname},
				{Name: "message", Value: seed.Message},
			},
		})
	}
	return subs
}

func buildContacts(formID string, seeds []ContactData) []Contact {
	contacts := make([]Contact, 0, len(seeds))
	at := time.Now().Add(-1 * time.Hour)
	for i, seed := range seeds {
		created := at.Add(-time.Duration(i) * 26 * time.Hour)
		contacts = append(contacts, Contact{
			ID: fmt.Sprintf("%d", 90000+i),
			Properties: map[string]string{
				"email":      seed.Email,
				"firstname":  seed.Firstname,
				"lastname":   seed.Lastname,
				"company":    seed.Company,
				"jobtitle":   seed.JobTitle,
				"phone":      seed.Phone,
				"createdate": created.UTC().Format(time.RFC3339),
				"hs_calculated_form_submissions": fmt.Sprintf("%s::%d", formID, created.UnixMilli()),
			},
			CreatedAt: created,
		})
	}
	return contacts
}
