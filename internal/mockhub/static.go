// ABOUTME: Static fallback data when OpenAI API key is not available.
// ABOUTME: Provides a diverse set of realistic-looking fake submissions and contacts.

package mockhub

func staticSubmissions(count int) []SubmissionData {
	templates := []SubmissionData{
		{Email: "alice.chen@gmail.com", Firstname: "Alice", Lastname: "Chen", Message: "Hi, I'd like a quote for gutter cleaning on a two-story house. We're in the Maple Grove area.", PageURL: "https://example.com/services/gutter-cleaning"},
		{Email: "bob.martinez@yahoo.com", Firstname: "Bob", Lastname: "Martinez", Message: "Do you service commercial properties? We manage a strip mall downtown and need regular maintenance.", PageURL: "https://example.com/commercial"},
		{Email: "sarah.j@outlook.com", Firstname: "Sarah", Lastname: "Johnson", Message: "Following up on the estimate from last week. Can we schedule for this Saturday?", PageURL: "https://example.com/contact"},
		{Email: "mike.brown@gmail.com", Firstname: "Mike", Lastname: "Brown", Message: "Your crew did a great job on our roof last fall. We'd like to book the spring package.", PageURL: "https://example.com/spring-special"},
		{Email: "emma.davis@icloud.com", Firstname: "Emma", Lastname: "Davis", Message: "Is the first-time customer discount still running? Saw it mentioned on the blog.", PageURL: "https://example.com/blog/spring-maintenance-checklist"},
		{Email: "dave.wilson@hotmail.com", Firstname: "Dave", Lastname: "Wilson", Message: "Need someone to look at water pooling near the foundation after the storms.", PageURL: "https://example.com/services/drainage"},
		{Email: "winbig@definitely-legit.biz", Firstname: "WIN", Lastname: "BIG", Message: "CONGRATULATIONS you have been selected!!! Click here to claim your prize now!!!", PageURL: "https://example.com/contact"},
		{Email: "jenna.taylor@gmail.com", Firstname: "Jenna", Lastname: "Taylor", Message: "What's your availability for an estimate next week? Mornings work best for me.", PageURL: "https://example.com/free-estimate"},
		{Email: "chris.lee@protonmail.com", Firstname: "Chris", Lastname: "Lee", Message: "Do you offer snow removal contracts for the winter season?", PageURL: "https://example.com/services"},
		{Email: "peter.zhang@gmail.com", Firstname: "Peter", Lastname: "Zhang", Message: "The link on your pricing page seems broken, just a heads up. Also interested in lawn care.", PageURL: "https://example.com/pricing"},
	}
	return cycle(templates, count)
}

func staticContacts(count int) []ContactData {
	templates := []ContactData{
		{Email: "alice.chen@gmail.com", Firstname: "Alice", Lastname: "Chen", Company: "", JobTitle: "", Phone: "555-201-3344"},
		{Email: "bob.martinez@acmeproperties.com", Firstname: "Bob", Lastname: "Martinez", Company: "Acme Properties", JobTitle: "Property Manager", Phone: "555-887-2210"},
		{Email: "sarah.j@outlook.com", Firstname: "Sarah", Lastname: "Johnson", Company: "", JobTitle: "", Phone: ""},
		{Email: "mike.brown@gmail.com", Firstname: "Mike", Lastname: "Brown", Company: "Brown's Bakery", JobTitle: "Owner", Phone: "555-443-9087"},
		{Email: "emma.davis@icloud.com", Firstname: "Emma", Lastname: "Davis", Company: "", JobTitle: "", Phone: "555-312-6678"},
		{Email: "dave.wilson@hotmail.com", Firstname: "Dave", Lastname: "Wilson", Company: "", JobTitle: "", Phone: ""},
		{Email: "jenna.taylor@taylorrealty.com", Firstname: "Jenna", Lastname: "Taylor", Company: "Taylor Realty", JobTitle: "Broker", Phone: "555-990-1123"},
		{Email: "chris.lee@protonmail.com", Firstname: "Chris", Lastname: "Lee", Company: "", JobTitle: "", Phone: "555-774-5561"},
	}
	return cycle(templates, count)
}

// cycle repeats templates until count entries exist.
func cycle[T any](templates []T, count int) []T {
	out := make([]T, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, templates[i%len(templates)])
	}
	return out
}
