// internal/workers/communication/purchase-notification/templates.go
package purchasenotification

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Template is one entry in the JSON template registry.
type Template struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const purchaseIntentTemplate = "purchase-intent"

func loadTemplates(path string) (map[string]Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template registry: %w", err)
	}

	var templates map[string]Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("parse template registry: %w", err)
	}

	if _, ok := templates[purchaseIntentTemplate]; !ok {
		return nil, fmt.Errorf("template registry missing %q", purchaseIntentTemplate)
	}

	return templates, nil
}

// renderTemplate substitutes {{placeholder}} tokens with values from data.
// Unknown placeholders are left untouched.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	rendered := tmpl
	for key, value := range data {
		rendered = strings.ReplaceAll(rendered, "{{"+key+"}}", fmt.Sprintf("%v", value))
	}
	return rendered
}
