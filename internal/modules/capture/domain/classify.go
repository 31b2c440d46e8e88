// Package domain classifies captured clipboard text into prospect
// fields and lays out the in-terminal suggestion popup.
package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field names the prospect attribute a captured text most likely
// belongs to. The zero value FieldNone means no suggestion.
type Field string

const (
	FieldNone        Field = ""
	FieldName        Field = "name"
	FieldEmail       Field = "email"
	FieldNumber      Field = "number"
	FieldCompanyName Field = "company_name"
	FieldWebsiteLink Field = "website_link"
	FieldLinkedInURL Field = "linkedin_url"
	FieldCategory    Field = "category"
	FieldSources     Field = "sources"
	FieldStatus      Field = "status"
	FieldAbout       Field = "about_prospect"
	FieldIntentSkill Field = "intent_skills"
)

// FieldInfo carries the presentation metadata for one assignable field.
type FieldInfo struct {
	Field Field
	Label string
	Icon  string
}

// AssignableFields lists every field the popup menu may offer, in
// display order. The suggested field is pulled to the front of the menu
// by the UI, not by reordering this slice.
var AssignableFields = []FieldInfo{
	{FieldName, "Name", "👤"},
	{FieldEmail, "Email", "📧"},
	{FieldNumber, "Phone", "📞"},
	{FieldCompanyName, "Company", "🏢"},
	{FieldWebsiteLink, "Website", "🌐"},
	{FieldLinkedInURL, "LinkedIn", "🔗"},
	{FieldCategory, "Category", "🏷️"},
	{FieldSources, "Source", "📋"},
	{FieldStatus, "Status", "📊"},
	{FieldAbout, "About", "📝"},
	{FieldIntentSkill, "Skill", "🛠️"},
}

// InfoFor returns the presentation metadata for a field, falling back
// to the about entry.
func InfoFor(f Field) FieldInfo {
	for _, info := range AssignableFields {
		if info.Field == f {
			return info
		}
	}
	return FieldInfo{Field: f, Label: "About", Icon: "📝"}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[\d\s().-]+$`)
	urlRe   = regexp.MustCompile(`^(https?://)?(www\.)?[a-zA-Z0-9-]+(\.[a-zA-Z0-9-]+)+(/\S*)?$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]{2,40}$`)
)

var companyKeywords = []string{
	"inc", "ltd", "llc", "corp", "corporation", "company",
	"co", "group", "tech", "solutions", "systems", "services",
}

// Classify maps trimmed clipboard text to its most likely field. Rules
// are ordered by specificity and the first match wins; the order is
// load-bearing, since an email address would otherwise match the URL
// and company rules too. Empty or whitespace-only input yields no
// suggestion.
func Classify(text string) (Field, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return FieldNone, false
	}
	lower := strings.ToLower(trimmed)

	if emailRe.MatchString(trimmed) {
		return FieldEmail, true
	}
	if strings.Contains(lower, "linkedin.com/in/") {
		return FieldLinkedInURL, true
	}
	if isPhone(trimmed) {
		return FieldNumber, true
	}
	if urlRe.MatchString(trimmed) && !strings.ContainsAny(trimmed, " \t") {
		return FieldWebsiteLink, true
	}
	if isCompany(trimmed, lower) {
		return FieldCompanyName, true
	}
	if isPersonName(trimmed) {
		return FieldName, true
	}
	if utf8.RuneCountInString(trimmed) > 50 {
		return FieldAbout, true
	}
	return FieldNone, false
}

// isPhone accepts digit runs with common separators, 7 to 15 digits
// once separators are stripped.
func isPhone(text string) bool {
	if !phoneRe.MatchString(text) {
		return false
	}
	digits := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// isCompany matches either a suffix keyword or a short phrase that
// does not read as a person name. The name-shape carve-out keeps
// "Jane Doe" classified as a name while "Duo3 Labs" lands here.
func isCompany(trimmed, lower string) bool {
	for _, w := range strings.Fields(lower) {
		w = strings.Trim(w, ".,")
		for _, kw := range companyKeywords {
			if w == kw {
				return true
			}
		}
	}
	words := strings.Fields(trimmed)
	shortPhrase := utf8.RuneCountInString(trimmed) > 3 &&
		len(words) <= 4 &&
		strings.ContainsFunc(trimmed, unicode.IsLetter) &&
		!strings.Contains(trimmed, "@") &&
		!strings.Contains(lower, "http")
	return shortPhrase && !isPersonName(trimmed)
}

func isPersonName(text string) bool {
	if !nameRe.MatchString(text) {
		return false
	}
	words := strings.Fields(text)
	return len(words) >= 2 && len(words) <= 4
}
