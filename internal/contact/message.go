package contact

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Notification is a toast shown to the visitor.
type Notification struct {
	Kind        string `json:"kind"` // "success" or "error"
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Notifications emitted by the controller.
var (
	SuccessNotice = Notification{
		Kind:        "success",
		Title:       "Message sent! 🎉",
		Description: "I'll get back to you as soon as possible.",
	}
	FailureNotice = Notification{
		Kind:        "error",
		Title:       "Failed to send message",
		Description: "Please try again later.",
	}
)

// Format renders the text delivered to the sink.
func Format(req Request) string {
	return fmt.Sprintf("New contact form submission:\nName: %s\nEmail: %s\nMessage: %s",
		req.Name, req.Email, req.Message)
}

// MaskEmail hides most of the local part so addresses can be logged.
func MaskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return "***"
	}
	// Cut on rune boundaries so the log line stays valid UTF-8.
	first, _ := utf8.DecodeRuneInString(local)
	if utf8.RuneCountInString(local) <= 2 {
		return string(first) + "***@" + domain
	}
	last, _ := utf8.DecodeLastRuneInString(local)
	return string(first) + "***" + string(last) + "@" + domain
}
