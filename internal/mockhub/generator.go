// ABOUTME: AI-powered data generator for realistic fake HubSpot data.
// ABOUTME: Uses OpenAI to generate form submissions and contacts.

package mockhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// Generator creates fake data using OpenAI or falls back to static data.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator, loading API key from .env if available.
func NewGenerator() *Generator {
	g := &Generator{}

	// Try to load .env from current dir or parent dirs
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Also check home directory
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	g.model = os.Getenv("OPENAI_MODEL")
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
		g.useAI = true
		log.Printf("OpenAI API key found, using AI-generated data with model: %s", g.model)
	} else {
		log.Println("No OPENAI_API_KEY found, using static fallback data")
	}

	return g
}

// SubmissionData is one generated form submission.
type SubmissionData struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Message   string `json:"message"`
	PageURL   string `json:"page_url"`
}

// ContactData is one generated CRM contact.
type ContactData struct {
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobtitle"`
	Phone     string `json:"phone"`
}

// GenerateSubmissions creates fake form submissions, newest first.
func (g *Generator) GenerateSubmissions(ctx context.Context, count int) []SubmissionData {
	if !g.useAI {
		return staticSubmissions(count)
	}

	prompt := fmt.Sprintf(`Generate %d realistic fake contact-form submissions for a home-services company website. Include a mix of:
- Quote requests
- Support questions
- General inquiries
- The occasional obvious spam entry

Return as JSON array with objects containing: email, firstname, lastname, message, page_url.
Page URLs should be paths on example.com (landing pages, service pages, blog posts).
Each message should be 1-3 sentences.`, count)

	subs, err := callOpenAI[[]SubmissionData](ctx, g.client, g.model, prompt)
	if err != nil || len(subs) == 0 {
		log.Printf("AI submission generation failed, using static data: %v", err)
		return staticSubmissions(count)
	}
	return subs
}

// GenerateContacts creates fake CRM contacts.
func (g *Generator) GenerateContacts(ctx context.Context, count int) []ContactData {
	if !g.useAI {
		return staticContacts(count)
	}

	prompt := fmt.Sprintf(`Generate %d realistic fake CRM contacts captured from website forms. Include a mix of:
- Homeowners requesting quotes
- Property managers
- Small business owners
- Some with missing company or phone fields

Return as JSON array with objects containing: email, firstname, lastname, company, jobtitle, phone.
Use diverse but realistic names. Phone numbers should be US format (555-XXX-XXXX).`, count)

	contacts, err := callOpenAI[[]ContactData](ctx, g.client, g.model, prompt)
	if err != nil || len(contacts) == 0 {
		log.Printf("AI contact generation failed, using static data: %v", err)
		return staticContacts(count)
	}
	return contacts
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}
