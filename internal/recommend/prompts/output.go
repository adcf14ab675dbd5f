package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrOutputInvalid is matched by responses that do not satisfy the prompt's
// declared schema.
var ErrOutputInvalid = errors.New("generated output does not match schema")

// OutputError lists the schema violations of one response.
type OutputError struct {
	Prompt   string
	Problems []string
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Prompt, ErrOutputInvalid.Error(), strings.Join(e.Problems, "; "))
}

func (e *OutputError) Is(target error) bool { return target == ErrOutputInvalid }

// ValidateOutput checks a generated object against p's schema.
func ValidateOutput(p Prompt, out map[string]any) error {
	if out == nil {
		return &OutputError{Prompt: p.Name, Problems: []string{"empty response"}}
	}
	if len(p.Schema) == 0 {
		return nil
	}
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(p.Schema), gojsonschema.NewGoLoader(out))
	if err != nil {
		return fmt.Errorf("%s: schema validation error: %w", p.Name, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &OutputError{Prompt: p.Name, Problems: problems}
}

// Decode validates out and converts it into dst, a pointer to the flow's
// typed result.
func Decode(p Prompt, out map[string]any, dst any) error {
	if err := ValidateOutput(p, out); err != nil {
		return err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return &OutputError{Prompt: p.Name, Problems: []string{err.Error()}}
	}
	return nil
}
