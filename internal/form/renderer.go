// internal/form/renderer.go
//
// Linkpage – Forms: contact form HTML renderer.
//
// Context
//   Converts the fixed contact field list into safe, accessible markup.
//   Inputs carry HTML5 hints (required, minlength, type=email) that mirror
//   the server rules, previously entered values are pre-filled, and every
//   field gets an inline error slot filled from the last rejection.
//
// Workflow
//   •  RenderContact writes each field via writeField, then the hidden CSRF
//      input and the submit button.
//   •  While a submission is in flight the button reads “Sending...” and is
//      disabled.
//   •  The caller receives template.HTML so the page template does not
//      double-escape the markup.
//
// Style
//   Output HTML is plain; themes style it through class hooks.  Each input
//   gets id="fld-{name}" and sits in <div class="form-field">.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"html"
	"html/template"
	"strconv"

	"github.com/yanizio/linkpage/internal/contact"
)

// Button captions.
const (
	SubmitLabel  = "Send Message"
	SendingLabel = "Sending..."
)

// FieldDef describes one rendered input.
type FieldDef struct {
	Name        string
	Type        string // text, email, textarea
	Label       string
	Placeholder string
	MinLength   int
}

// ContactFields is the fixed field list, in display order.
var ContactFields = []FieldDef{
	{Name: "name", Type: "text", Label: "Name", Placeholder: "Your Name", MinLength: 2},
	{Name: "email", Type: "email", Label: "Email", Placeholder: "Your Email"},
	{Name: "message", Type: "textarea", Label: "Message", Placeholder: "Your Message", MinLength: 10},
}

// ContactView is everything the renderer needs for one modal.
type ContactView struct {
	Action    string
	CSRFToken string
	Values    contact.Request
	Errors    contact.FieldErrors
	Sending   bool
}

// RenderContact returns the contact form markup.
func RenderContact(cv ContactView) template.HTML {
	var buf bytes.Buffer

	buf.WriteString(`<form class="contact-form" method="post" action="` + html.EscapeString(cv.Action) + `" novalidate>` + "\n")
	for _, f := range ContactFields {
		writeField(&buf, f, fieldValue(cv.Values, f.Name), cv.Errors[f.Name], cv.Sending)
	}
	buf.WriteString(`<input type="hidden" name="` + CSRFField + `" value="` + html.EscapeString(cv.CSRFToken) + `">` + "\n")

	if cv.Sending {
		buf.WriteString(`<button type="submit" disabled aria-busy="true">` + SendingLabel + `</button>` + "\n")
	} else {
		buf.WriteString(`<button type="submit">` + SubmitLabel + `</button>` + "\n")
	}
	buf.WriteString(`</form>`)
	return template.HTML(buf.String())
}

// writeField emits one wrapped input with its label and error slot.
func writeField(buf *bytes.Buffer, f FieldDef, val, errMsg string, disabled bool) {
	id := "fld-" + f.Name
	buf.WriteString(`<div class="form-field`)
	if errMsg != "" {
		buf.WriteString(` has-error`)
	}
	buf.WriteString(`">` + "\n")
	buf.WriteString(`<label for="` + id + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	attrs := ` id="` + id + `" name="` + f.Name + `" placeholder="` + html.EscapeString(f.Placeholder) + `" required`
	if f.MinLength > 0 {
		attrs += ` minlength="` + strconv.Itoa(f.MinLength) + `"`
	}
	if errMsg != "" {
		attrs += ` aria-invalid="true" aria-describedby="` + id + `-error"`
	}
	if disabled {
		attrs += ` disabled`
	}

	switch f.Type {
	case "textarea":
		buf.WriteString(`<textarea` + attrs + ` rows="5">` + html.EscapeString(val) + `</textarea>` + "\n")
	default:
		buf.WriteString(`<input type="` + f.Type + `"` + attrs + ` value="` + html.EscapeString(val) + `">` + "\n")
	}

	buf.WriteString(`<span class="error" id="` + id + `-error" aria-live="polite">` + html.EscapeString(errMsg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
}

func fieldValue(r contact.Request, name string) string {
	switch name {
	case "name":
		return r.Name
	case "email":
		return r.Email
	case "message":
		return r.Message
	}
	return ""
}
