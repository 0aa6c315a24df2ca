// Package view holds the display models shared by every output renderer.
// They are flat, serializable projections of template definitions and
// batch reports.
package view

import (
	"sort"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/pipeline"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// Target is one output of a definition
type Target struct {
	Path     string `json:"path" yaml:"path"`
	Root     string `json:"root" yaml:"root"`
	Template string `json:"template" yaml:"template"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

// Extra is one auxiliary data source of a definition
type Extra struct {
	Key   string `json:"key" yaml:"key"`
	Root  string `json:"root" yaml:"root"`
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Definition is the display form of a template definition
type Definition struct {
	Manifest string   `json:"manifest" yaml:"manifest"`
	Kind     string   `json:"kind" yaml:"kind"`
	Source   string   `json:"source" yaml:"source"`
	Key      string   `json:"key" yaml:"key"`
	Extra    []Extra  `json:"extra,omitempty" yaml:"extra,omitempty"`
	Targets  []Target `json:"targets" yaml:"targets"`
}

// DefinitionList is the result of listing the registry
type DefinitionList struct {
	Definitions []Definition `json:"definitions" yaml:"definitions"`
}

// Failure is the display form of a failed unit of work
type Failure struct {
	Change   string `json:"change" yaml:"change"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
	Template string `json:"template,omitempty" yaml:"template,omitempty"`
	Code     string `json:"code" yaml:"code"`
	Error    string `json:"error" yaml:"error"`
}

// Report is the display form of a batch report
type Report struct {
	Changes     int       `json:"changes" yaml:"changes"`
	Matches     int       `json:"matches" yaml:"matches"`
	Reloaded    bool      `json:"reloaded" yaml:"reloaded"`
	Invalidated []string  `json:"invalidated,omitempty" yaml:"invalidated,omitempty"`
	Written     []string  `json:"written" yaml:"written"`
	Failures    []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// OK reports whether the batch had no failures
func (r Report) OK() bool {
	return len(r.Failures) == 0
}

// FromDefinitions builds the display list, ordered by manifest then source
func FromDefinitions(defs []types.TemplateDefinition) DefinitionList {
	list := DefinitionList{Definitions: make([]Definition, 0, len(defs))}
	for _, def := range defs {
		list.Definitions = append(list.Definitions, FromDefinition(def))
	}
	sort.SliceStable(list.Definitions, func(i, j int) bool {
		a, b := list.Definitions[i], list.Definitions[j]
		if a.Manifest != b.Manifest {
			return a.Manifest < b.Manifest
		}
		return a.Source < b.Source
	})
	return list
}

// FromDefinition builds the display form of one definition
func FromDefinition(def types.TemplateDefinition) Definition {
	d := Definition{
		Manifest: def.Root,
		Kind:     string(def.Source.Kind),
		Source:   def.Source.Value,
		Key:      def.DataKey(),
	}
	for _, e := range def.Extra {
		d.Extra = append(d.Extra, Extra{
			Key:   e.Key,
			Root:  string(e.Root),
			Type:  string(e.Type),
			Value: e.Value,
		})
	}
	for _, t := range def.Targets {
		d.Targets = append(d.Targets, Target{
			Path:     t.Value,
			Root:     string(t.Root),
			Template: t.Template,
			Encoding: t.Encoding,
		})
	}
	return d
}

// FromReport builds the display form of a batch report
func FromReport(report *pipeline.BatchReport) Report {
	r := Report{
		Changes:     report.Changes,
		Matches:     report.Matches,
		Reloaded:    report.Reloaded,
		Invalidated: report.Invalidated,
		Written:     report.Written,
	}
	if r.Written == nil {
		r.Written = []string{}
	}
	for _, f := range report.Failures {
		r.Failures = append(r.Failures, Failure{
			Change:   f.Change,
			Target:   f.Target,
			Template: f.Template,
			Code:     string(errors.GetErrorCode(f.Err)),
			Error:    f.Err.Error(),
		})
	}
	return r
}
