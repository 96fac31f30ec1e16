// Package enum holds the code -> label tables used to present employee
// attributes: statuses, employment types, hiring sources and so on.
// Defaults are registered by NewRegistry; deployments override or extend them
// with Register or a YAML file.
package enum

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

type Kind string

const (
	KindStatus          Kind = "status"
	KindType            Kind = "type"
	KindSource          Kind = "source"
	KindGender          Kind = "gender"
	KindMaritalStatus   Kind = "marital_status"
	KindPayType         Kind = "pay_type"
	KindPayChangeReason Kind = "pay_change_reason"
	KindCountry         Kind = "country"
)

// Option is a single code/label pair in registration order.
type Option struct {
	Code  string `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[Kind][]Option
}

func NewRegistry() *Registry {
	r := &Registry{tables: make(map[Kind][]Option)}
	for kind, opts := range defaults {
		r.tables[kind] = append([]Option(nil), opts...)
	}
	return r
}

// Register adds code to kind or replaces the label of an existing code.
func (r *Registry) Register(kind Kind, code, label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := r.tables[kind]
	for i := range opts {
		if opts[i].Code == code {
			opts[i].Label = label
			return
		}
	}
	r.tables[kind] = append(opts, Option{Code: code, Label: label})
}

// Remove drops code from kind. Unknown codes are ignored.
func (r *Registry) Remove(kind Kind, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := r.tables[kind]
	for i := range opts {
		if opts[i].Code == code {
			r.tables[kind] = append(opts[:i:i], opts[i+1:]...)
			return
		}
	}
}

// Label resolves code within kind. Empty or unknown codes report false.
func (r *Registry) Label(kind Kind, code string) (string, bool) {
	if code == "" {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.tables[kind] {
		if o.Code == code {
			return o.Label, true
		}
	}
	return "", false
}

// Options returns a copy of kind's table in registration order.
func (r *Registry) Options(kind Kind) []Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Option(nil), r.tables[kind]...)
}

// Kinds lists every kind that currently has a table, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.tables))
	for k := range r.tables {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// overrideFile is the YAML layout accepted by LoadFile:
//
//	status:
//	  - code: sabbatical
//	    label: On Sabbatical
//	remove:
//	  type: [trainee]
type overrideFile struct {
	Tables map[string][]Option `yaml:",inline"`
	Remove map[Kind][]string   `yaml:"remove"`
}

// LoadFile applies the overrides found at path. An empty path is a no-op.
func (r *Registry) LoadFile(path string) error {
	if path == "" {
		return nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("enum: read file %s: %w", path, err)
	}
	return r.Load(b)
}

// Load applies YAML encoded overrides.
func (r *Registry) Load(b []byte) error {
	var f overrideFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("enum: parse yaml: %w", err)
	}

	for kind, codes := range f.Remove {
		for _, code := range codes {
			r.Remove(kind, code)
		}
	}
	for kind, opts := range f.Tables {
		for _, o := range opts {
			if o.Code == "" {
				return fmt.Errorf("enum: %s entry with empty code", kind)
			}
			r.Register(Kind(kind), o.Code, o.Label)
		}
	}
	return nil
}
