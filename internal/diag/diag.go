package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// Node is an opaque reference to the source construct an error is
// attributed to. Resolving it to file/line/column is done by the
// reporting layer, not here.
type Node interface {
	SourceLocation() string
}

type Error struct {
	Node    Node // may be nil for synthesized code
	Message string
}

func (e *Error) Location() string {
	if e.Node == nil {
		return "<synthesized>"
	}
	return e.Node.SourceLocation()
}

// Reporter accumulates recoverable translation errors. Append order is
// preserved so diagnostics come out deterministically per translation
// unit.
type Reporter struct {
	errors []*Error
}

func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) ReportError(node Node, format string, args ...interface{}) {
	e := &Error{
		Node:    node,
		Message: fmt.Sprintf(format, args...),
	}
	r.errors = append(r.errors, e)
	log.Errorf("translation error at %s: %s", e.Location(), e.Message)
}

func (r *Reporter) Errors() []*Error {
	return r.errors
}

func (r *Reporter) HasErrors() bool {
	return len(r.errors) > 0
}

func (r *Reporter) Render() string {
	var sb strings.Builder
	for _, e := range r.errors {
		sb.WriteString(color.New(color.FgRed).Sprintf("Error: %s\n", e.Message))
		sb.WriteString(color.New(color.FgYellow).Sprintf("  at %s\n", e.Location()))
	}
	return sb.String()
}
