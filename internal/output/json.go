package output

import (
	"encoding/json"
	"os"

	"github.com/homelab-infra/portscope/pkg/model"
)

func ToJSON(doc model.ReportDocument) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteJSON persists the report artifact. The rendered views are derived
// from this file; only the JSON is authoritative.
func WriteJSON(doc model.ReportDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
