package parser

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"payadvice/internal/domain"
	"payadvice/internal/parser/cxml"
	"payadvice/internal/port"
)

// Factory creates a customer parser labelled with the resolved customer name.
type Factory func(customerName string) port.AdviceParser

// Registry maps customer identifiers (and aliases) to parser factories and
// routes parse inputs by file kind. It is built once at startup and injected
// wherever dispatch is needed; there is no package-level registration state.
type Registry struct {
	factories map[string]Factory // canonical customer name -> factory
	aliases   map[string]string  // upper-cased alias -> canonical name
	xmlParser Factory
}

// NewRegistry returns a registry preloaded with the known customer parsers
// and the default cXML remittance parser.
func NewRegistry() *Registry {
	r := &Registry{
		factories: map[string]Factory{},
		aliases:   map[string]string{},
		xmlParser: func(customer string) port.AdviceParser {
			return cxml.NewRemittanceParser(customer)
		},
	}

	r.Register("Hindustan Zinc India Ltd", []string{"Hindustan Zinc", "HZL"},
		func(customer string) port.AdviceParser { return NewHindustanZincParser(customer) })

	return r
}

// Register associates a canonical customer name and its aliases with a
// parser factory. New customers plug in here; dispatch logic is untouched.
func (r *Registry) Register(name string, aliases []string, f Factory) {
	r.factories[name] = f
	r.aliases[strings.ToUpper(name)] = name
	for _, a := range aliases {
		r.aliases[strings.ToUpper(a)] = name
	}
}

// Customers lists the registered canonical customer names, sorted.
func (r *Registry) Customers() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// resolve maps a user-supplied customer string to a canonical registered
// name, accepting aliases case-insensitively.
func (r *Registry) resolve(customer string) (string, bool) {
	name, ok := r.aliases[strings.ToUpper(strings.TrimSpace(customer))]
	return name, ok
}

// DetectCustomer scans text for any registered customer name or alias and
// returns the canonical name of the first one found.
func (r *Registry) DetectCustomer(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	upper := strings.ToUpper(text)

	// Longer aliases first so "Hindustan Zinc India Ltd" wins over "HZL".
	keys := make([]string, 0, len(r.aliases))
	for alias := range r.aliases {
		keys = append(keys, alias)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	for _, alias := range keys {
		if strings.Contains(upper, alias) {
			return r.aliases[alias], true
		}
	}
	return "", false
}

// ForText selects the parser for text-bearing (PDF-origin) input.
// Precedence: registered user-selected customer, then customer detected in
// the text, then the generic fallback. Never fails.
func (r *Registry) ForText(customerHint, rawText string) port.AdviceParser {
	if customerHint != "" {
		if name, ok := r.resolve(customerHint); ok {
			return r.factories[name](name)
		}
		log.Printf("parser.Registry: no parser registered for customer %q, trying detection", customerHint)
	}

	if name, ok := r.DetectCustomer(rawText); ok {
		return r.factories[name](name)
	}

	if customerHint != "" {
		return NewGenericParser(customerHint)
	}
	log.Printf("parser.Registry: customer not detected, using generic parser")
	return NewGenericParser("")
}

// ForXML selects the parser for structured XML input. A single remittance
// parser serves all customers today; per-customer XML parsers would register
// through the same pattern.
func (r *Registry) ForXML(customerHint string) port.AdviceParser {
	return r.xmlParser(customerHint)
}

// ForInput routes by declared file kind to the right parser family. An
// unrecognized kind is a configuration error, not a silent fallback.
func (r *Registry) ForInput(input port.ParseInput) (port.AdviceParser, error) {
	switch input.FileKind {
	case domain.FileKindPDF:
		return r.ForText(input.CustomerHint, input.RawPayload), nil
	case domain.FileKindXML:
		return r.ForXML(input.CustomerHint), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileKind, input.FileKind)
	}
}
