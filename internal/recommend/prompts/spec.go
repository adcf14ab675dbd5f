package prompts

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidInput is matched by every input rejection raised before a
// prompt is rendered.
var ErrInvalidInput = errors.New("invalid prompt input")

// InputError names the required fields that were blank.
type InputError struct {
	Prompt  PromptName
	Missing []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Prompt, strings.Join(e.Missing, ", "))
}

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

type Validator func(Input) error

// Spec is the declaration format for a prompt.
type Spec struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() map[string]any
	// Plain strings or Go templates over Input ({{.Field}}).
	System     string
	User       string
	Required   []string
	Validators []Validator
}

// Required rejects input whose named Input fields are blank. Names are Go
// field names; errors report them in lowerCamel form.
func Required(fields ...string) Validator {
	return func(in Input) error {
		v := reflect.ValueOf(in)
		var missing []string
		for _, f := range fields {
			fv := v.FieldByName(f)
			if !fv.IsValid() || fv.Kind() != reflect.String || strings.TrimSpace(fv.String()) == "" {
				missing = append(missing, lowerFirst(f))
			}
		}
		if len(missing) > 0 {
			return &InputError{Missing: missing}
		}
		return nil
	}
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// MakeTemplate compiles a Spec into a Template.
func MakeTemplate(s Spec) (Template, error) {
	if strings.TrimSpace(string(s.Name)) == "" {
		return Template{}, fmt.Errorf("missing prompt name")
	}
	if s.Version <= 0 {
		return Template{}, fmt.Errorf("invalid version for %s", s.Name)
	}
	if strings.TrimSpace(s.SchemaName) == "" {
		return Template{}, fmt.Errorf("missing schema name for %s", s.Name)
	}
	if s.Schema == nil {
		return Template{}, fmt.Errorf("missing schema func for %s", s.Name)
	}
	t := reflect.TypeOf(Input{})
	for _, f := range s.Required {
		if _, ok := t.FieldByName(f); !ok {
			return Template{}, fmt.Errorf("%s requires unknown input field %s", s.Name, f)
		}
	}
	sysT, err := template.New("system").Option("missingkey=zero").Parse(s.System)
	if err != nil {
		return Template{}, fmt.Errorf("%s system template parse: %w", s.Name, err)
	}
	userT, err := template.New("user").Option("missingkey=zero").Parse(s.User)
	if err != nil {
		return Template{}, fmt.Errorf("%s user template parse: %w", s.Name, err)
	}
	render := func(t *template.Template, in Input) string {
		var b bytes.Buffer
		_ = t.Execute(&b, in)
		return strings.TrimSpace(b.String())
	}

	validators := s.Validators
	if len(s.Required) > 0 {
		validators = append([]Validator{Required(s.Required...)}, validators...)
	}
	tt := Template{
		Name:       s.Name,
		Version:    s.Version,
		SchemaName: s.SchemaName,
		Schema:     s.Schema,
		System:     func(in Input) string { return render(sysT, in) },
		User:       func(in Input) string { return render(userT, in) },
	}
	if len(validators) > 0 {
		tt.Validate = func(in Input) error {
			for _, v := range validators {
				if v == nil {
					continue
				}
				if err := v(in); err != nil {
					var ie *InputError
					if errors.As(err, &ie) && ie.Prompt == "" {
						ie.Prompt = s.Name
					}
					return err
				}
			}
			return nil
		}
	}
	return tt, nil
}

// RegisterSpec compiles and registers s, panicking on a malformed spec.
func RegisterSpec(s Spec) {
	t, err := MakeTemplate(s)
	if err != nil {
		panic(err)
	}
	Register(t)
}
