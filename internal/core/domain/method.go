package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MethodKind discriminates how a result was produced.
type MethodKind int

const (
	// MethodDirect means the requested target was called as-is.
	MethodDirect MethodKind = iota
	// MethodRedirected means the upstream call went to a substitute target.
	MethodRedirected
)

const redirectedLabelPrefix = "redirected-from:"

// Method is a tagged variant: either Direct, or RedirectedFrom(substitute).
// Callers branch on Kind rather than inspecting the wire label.
type Method struct {
	Kind       MethodKind
	Substitute string
}

func DirectMethod() Method {
	return Method{Kind: MethodDirect}
}

func RedirectedMethod(substitute string) Method {
	return Method{Kind: MethodRedirected, Substitute: substitute}
}

// Label renders the wire form used in output documents and API payloads:
// "direct" or "redirected-from:<substitute>".
func (m Method) Label() string {
	if m.Kind == MethodRedirected {
		return redirectedLabelPrefix + m.Substitute
	}
	return "direct"
}

func (m Method) String() string {
	return m.Label()
}

// ParseMethodLabel inverts Label. Used when reading results back from a
// cache backend or an output document.
func ParseMethodLabel(label string) (Method, error) {
	if label == "direct" {
		return DirectMethod(), nil
	}
	if sub, ok := strings.CutPrefix(label, redirectedLabelPrefix); ok && sub != "" {
		return RedirectedMethod(sub), nil
	}
	return Method{}, fmt.Errorf("unrecognized method label %q", label)
}

func (m Method) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Label())
}

func (m *Method) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseMethodLabel(label)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
