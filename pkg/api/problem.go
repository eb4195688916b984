package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Problem implements RFC 9457
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	Extensions map[string]interface{} `json:"-"`

	Log error `json:"-"`
}

func (p *Problem) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

func (p *Problem) MarshalJSON() ([]byte, error) {
	type Alias Problem

	data := make(map[string]interface{})

	for k, v := range p.Extensions {
		data[k] = v
	}

	stdJSON, _ := json.Marshal(Alias(*p))
	_ = json.Unmarshal(stdJSON, &data)

	return json.Marshal(data)
}

type ProblemOption func(*Problem)

// NewProblem creates a generic Problem
func NewProblem(status int, title, detail string, opts ...ProblemOption) *Problem {
	p := &Problem{
		Type:       "about:blank", // Default as per RFC
		Title:      title,
		Status:     status,
		Detail:     detail,
		Extensions: make(map[string]interface{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// WithExtension adds a custom key-value pair to the response
func WithExtension(key string, value interface{}) ProblemOption {
	return func(p *Problem) {
		p.Extensions[key] = value
	}
}

// WithLog attaches an internal error for server-side logging
func WithLog(err error) ProblemOption {
	return func(p *Problem) {
		p.Log = err
	}
}

// WithType sets the RFC "type" URI
func WithType(uri string) ProblemOption {
	return func(p *Problem) {
		p.Type = uri
	}
}

// ValidationProblem creates a rich validation error
func ValidationProblem(validationErrors map[string]string) *Problem {
	return NewProblem(
		http.StatusBadRequest,
		"Validation Error",
		"One or more fields failed validation",
		WithExtension("errors", validationErrors),
	)
}

// BadRequestProblem creates a standard error for a bad request
func BadRequestProblem(detail string, opts ...ProblemOption) *Problem {
	return NewProblem(http.StatusBadRequest, "Bad Request", detail, opts...)
}

// UnauthorizedProblem creates a 401 unauthed error
func UnauthorizedProblem(detail string) *Problem {
	return NewProblem(http.StatusUnauthorized, "Unauthorized", detail)
}

// UnknownTargetProblem signals a target identifier that is in neither the
// supported set nor the redirect table.
func UnknownTargetProblem(target string) *Problem {
	return NewProblem(
		http.StatusUnprocessableEntity,
		"Unknown Target",
		fmt.Sprintf("target %q is not configured for optimization", target),
		WithExtension("target", target),
	)
}

// UpstreamProblem creates a 502 gateway error for optimizer failures
func UpstreamProblem(detail string, err error) *Problem {
	return NewProblem(http.StatusBadGateway, "Upstream Optimization Failed", detail, WithLog(err))
}

// RateLimitProblem creates standard 429 rate limit error
func RateLimitProblem(detail string) *Problem {
	return NewProblem(http.StatusTooManyRequests, "Rate Limit Exceeded", detail)
}

// InternalProblem creates a catch-all 500 error
func InternalProblem(detail string, err error) *Problem {
	return NewProblem(http.StatusInternalServerError, "Internal Server Error", detail, WithLog(err))
}
