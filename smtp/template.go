package smtp

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Mirnes420/leadgen"
)

// Placeholders recognized in template subject and body.
const (
	placeholderName = "[Business Name]"
	placeholderCity = "[Location]"
)

// Template is an outreach message with placeholders substituted per lead.
type Template struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// DefaultTemplate returns a minimal outreach template used when no
// template file is configured.
func DefaultTemplate() Template {
	return Template{
		Subject: "Quick question about [Business Name]",
		Body: "Hello,\n\n" +
			"I came across [Business Name] while researching businesses in [Location] " +
			"and wanted to reach out.\n\n" +
			"Best regards",
	}
}

// LoadTemplate reads a template from a YAML file.
func LoadTemplate(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("reading template: %w", err)
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Template{}, leadgen.Errorf(leadgen.EINVALID, "parsing template %s: %v", path, err)
	}
	if t.Subject == "" || t.Body == "" {
		return Template{}, leadgen.Errorf(leadgen.EINVALID, "template %s must set subject and body", path)
	}
	return t, nil
}

// Render substitutes the lead's business name and city into the template.
func (t Template) Render(businessName, city string) (subject, body string) {
	replacer := strings.NewReplacer(
		placeholderName, businessName,
		placeholderCity, city,
	)
	return replacer.Replace(t.Subject), replacer.Replace(t.Body)
}
