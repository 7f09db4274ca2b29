package output

import (
	"encoding/json"

	"github.com/rgehrsitz/ukpaye/internal/payrun"
)

// JSONFormatter emits the pay run result as JSON.
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *payrun.Result) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}
