// internal/form/decode.go
//
// Linkpage – Forms: request decoding.
//
// Context
//   The contact endpoints accept either a urlencoded form post (the modal)
//   or a JSON body (the API).  Decode turns both into a contact.Request so
//   handlers stay terse.  Bodies are capped at MaxBody.
//
//------------------------------------------------------------------------------

package form

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"

	"github.com/yanizio/linkpage/internal/contact"
)

// MaxBody caps request bodies.
const MaxBody = 64 << 10

// Decode reads a contact request from r.  JSON is chosen by Content-Type;
// everything else is parsed as a form.
func Decode(w http.ResponseWriter, r *http.Request) (contact.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBody)

	var req contact.Request
	if isJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return contact.Request{}, fmt.Errorf("decode json: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return contact.Request{}, fmt.Errorf("decode form: %w", err)
	}
	req.Name = r.PostForm.Get("name")
	req.Email = r.PostForm.Get("email")
	req.Message = r.PostForm.Get("message")
	return req, nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
