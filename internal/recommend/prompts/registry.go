package prompts

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrUnknownPrompt = errors.New("unknown prompt")

// Template is a compiled Spec.
type Template struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() map[string]any
	System     func(Input) string
	User       func(Input) string
	Validate   Validator
}

func (t Template) complete() error {
	switch {
	case t.Schema == nil:
		return fmt.Errorf("prompt %s has no schema", t.Name)
	case t.System == nil, t.User == nil:
		return fmt.Errorf("prompt %s has no system/user renderer", t.Name)
	}
	return nil
}

var registry = struct {
	sync.RWMutex
	byName map[PromptName]Template
}{byName: map[PromptName]Template{}}

// Register adds t, replacing an earlier template with the same name.
func Register(t Template) {
	registry.Lock()
	defer registry.Unlock()
	registry.byName[t.Name] = t
}

func lookup(name PromptName) (Template, error) {
	registry.RLock()
	t, ok := registry.byName[name]
	registry.RUnlock()
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownPrompt, name)
	}
	return t, t.complete()
}

// Build checks in against the prompt's validators and renders it. Input
// errors carry the prompt name and match ErrInvalidInput.
func Build(name PromptName, in Input) (Prompt, error) {
	t, err := lookup(name)
	if err != nil {
		return Prompt{}, err
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			var ie *InputError
			if errors.As(err, &ie) && ie.Prompt == "" {
				ie.Prompt = name
			}
			return Prompt{}, err
		}
	}
	return Prompt{
		Name:       string(t.Name),
		Version:    t.Version,
		SchemaName: strings.TrimSpace(t.SchemaName),
		Schema:     t.Schema(),
		System:     strings.TrimSpace(t.System(in)),
		User:       strings.TrimSpace(t.User(in)),
	}, nil
}

// Schema returns the response schema declared for name.
func Schema(name PromptName) (schemaName string, schema map[string]any, ok bool) {
	t, err := lookup(name)
	if err != nil {
		return "", nil, false
	}
	return t.SchemaName, t.Schema(), true
}
