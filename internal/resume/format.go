package resume

import (
	"fmt"
	"strings"
)

const na = "N/A"

// br is a markdown hard line break.
const br = "  "

// Section is one tab of the viewer.
type Section struct {
	ID       string
	Title    string
	Markdown string
}

// Sections returns the tabs in display order.
func Sections(r *Resume) []Section {
	return []Section{
		{ID: "about", Title: "About Me", Markdown: FormatAbout(r)},
		{ID: "contact", Title: "Contact", Markdown: FormatContact(r)},
		{ID: "experience", Title: "Experience", Markdown: FormatExperience(r)},
		{ID: "education", Title: "Education", Markdown: FormatEducation(r)},
		{ID: "skills", Title: "Skills", Markdown: FormatSkills(r)},
	}
}

// Find returns the section with the given id.
func Find(r *Resume, id string) (Section, bool) {
	for _, s := range Sections(r) {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func or(v string) string {
	if strings.TrimSpace(v) == "" {
		return na
	}
	return v
}

func FormatAbout(r *Resume) string {
	var b strings.Builder
	b.WriteString("# About Me\n\n")
	if r.Contact.Name != "" {
		fmt.Fprintf(&b, "## %s\n\n", r.Contact.Name)
	}
	if strings.TrimSpace(r.About) == "" {
		b.WriteString("Use the tabs to browse contact details, experience, education and skills.\n")
	} else {
		b.WriteString(strings.TrimSpace(r.About))
		b.WriteString("\n")
	}
	return b.String()
}

func FormatContact(r *Resume) string {
	c := r.Contact
	fields := []struct{ label, value string }{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
		{"Birthdate", c.DOB},
		{"Nationality", c.Nationality},
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("**%s:** %s", f.label, or(f.value))
	}
	return "# Contact Information\n\n" + strings.Join(lines, br+"\n") + "\n"
}

func FormatExperience(r *Resume) string {
	var b strings.Builder
	b.WriteString("# Work Experience\n")
	if len(r.Experience) == 0 {
		b.WriteString("\nNo experience data found.")
		return b.String()
	}
	for _, e := range r.Experience {
		fmt.Fprintf(&b, "\n---\n## %s at %s\n\n", or(e.Title), or(e.Company))
		fmt.Fprintf(&b, "**Location:** %s"+br+"\n**Period:** %s\n\n", or(e.Location), or(e.Period))
		b.WriteString("**Responsibilities / Details:**\n")
		if len(e.Details) == 0 {
			b.WriteString("- N/A\n")
			continue
		}
		for _, d := range e.Details {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}

func FormatEducation(r *Resume) string {
	var b strings.Builder
	b.WriteString("# Education\n")
	if len(r.Education) == 0 {
		b.WriteString("\nNo education data found.")
		return b.String()
	}
	for _, e := range r.Education {
		fmt.Fprintf(&b, "\n---\n## %s - %s\n\n", or(e.Degree), or(e.University))
		fmt.Fprintf(&b, "**Location:** %s"+br+"\n**Period:** %s"+br+"\n", or(e.Location), or(e.Period))
		switch {
		case e.Website == "":
		case strings.HasPrefix(e.Website, "http://"), strings.HasPrefix(e.Website, "https://"):
			fmt.Fprintf(&b, "**Website:** [%s](%s)\n", e.Website, e.Website)
		default:
			fmt.Fprintf(&b, "**Website:** %s\n", e.Website)
		}
	}
	return b.String()
}

func FormatSkills(r *Resume) string {
	var b strings.Builder
	b.WriteString("# Skills\n")
	b.WriteString("\n## Languages\n")
	list(&b, r.Skills.Languages)
	b.WriteString("\n## Digital Skills\n")
	list(&b, r.Skills.Digital)
	return b.String()
}

func list(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- N/A\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
