// =============================================================================
// Lead Converter - Text Writer
// =============================================================================
//
// This module renders leads into the two plain-text documents downstream
// agents read.
//
// INDEX (one line per lead, no column ever omitted):
//   Ada Lovelace | Analytical Engines | Founder | ada@example.com
//   Grace Hopper | Navy |  | grace@example.com
//
// DETAILS (one block per lead, optional lines omitted when empty):
//   === LEAD ===
//   Name: Ada Lovelace
//   Company: Analytical Engines
//   Role: Founder
//   Email: ada@example.com
//   Website: https://analytical.io
//   Location: London
//   LinkedIn: https://linkedin.com/in/ada
//   Headline: ...
//   Summary: ...
//   <blank line>
//
// =============================================================================

package textwriter

import (
	"bytes"
	"io"

	"github.com/ginjaninja78/leadconv/internal/types"
)

// LeadMarker opens every block of the details document.
const LeadMarker = "=== LEAD ==="

// =============================================================================
// INDEX
// =============================================================================

// WriteIndex writes one "name | company | role | email" line per lead.
func WriteIndex(w io.Writer, leads []types.Lead) error {
	bw := &errWriter{w: w}
	for i := range leads {
		l := &leads[i]
		bw.line(l.Name + " | " + l.Company + " | " + l.Role + " | " + l.Email)
	}
	return bw.err
}

// RenderIndex returns the index document for leads.
func RenderIndex(leads []types.Lead) []byte {
	var buf bytes.Buffer
	_ = WriteIndex(&buf, leads)
	return buf.Bytes()
}

// =============================================================================
// DETAILS
// =============================================================================

// WriteDetails writes one block per lead, each followed by a blank line.
// Name, Company, Role and Email are always written; the other fields only
// when non-empty.
func WriteDetails(w io.Writer, leads []types.Lead) error {
	bw := &errWriter{w: w}
	for i := range leads {
		l := &leads[i]

		bw.line(LeadMarker)
		bw.line("Name: " + l.Name)
		bw.line("Company: " + l.Company)
		bw.line("Role: " + l.Role)
		bw.line("Email: " + l.Email)
		bw.optional("Website: ", l.Website)
		bw.optional("Location: ", l.Location)
		bw.optional("LinkedIn: ", l.LinkedIn)
		bw.optional("Headline: ", l.Headline)
		bw.optional("Summary: ", l.Summary)
		bw.line("")
	}
	return bw.err
}

// RenderDetails returns the details document for leads.
func RenderDetails(leads []types.Lead) []byte {
	var buf bytes.Buffer
	_ = WriteDetails(&buf, leads)
	return buf.Bytes()
}

// =============================================================================
// HELPERS
// =============================================================================

// errWriter remembers the first write error and ignores later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) line(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s+"\n")
}

func (e *errWriter) optional(label, value string) {
	if value != "" {
		e.line(label + value)
	}
}
