// internal/profile/profile.go
//
// Linkpage – profile card model.
//
// Context
//   The card shows a name, a title, a location line with a flag, an avatar,
//   and an ordered list of links.  Configured links come first in YAML order
//   and open in a new tab.  Two links are built in and always last:
//
//     •  “Email”              → /email (server-side mailto redirect), only
//                               when profile.email is set.
//     •  “Send me a message”  → /contact (opens the contact modal).
//
//------------------------------------------------------------------------------

package profile

import "github.com/yanizio/linkpage/internal/config"

// Built-in link targets.
const (
	EmailPath   = "/email"
	ContactPath = "/contact"
)

// Link is one button on the card.
type Link struct {
	Label    string
	URL      string
	Icon     string
	External bool // opens in a new tab with rel="noopener noreferrer"
}

// Profile is the immutable page content.
type Profile struct {
	Name        string
	Title       string
	Location    string
	Flag        string
	Avatar      string
	Email       string
	Description string
	Links       []Link
}

// FromConfig builds the card from config, appending the built-in links.
func FromConfig(c config.Profile) *Profile {
	p := &Profile{
		Name:        c.Name,
		Title:       c.Title,
		Location:    c.Location,
		Flag:        c.Flag,
		Avatar:      c.Avatar,
		Email:       c.Email,
		Description: c.Description,
		Links:       make([]Link, 0, len(c.Links)+2),
	}

	for _, l := range c.Links {
		icon := l.Icon
		if icon == "" {
			icon = "globe"
		}
		p.Links = append(p.Links, Link{Label: l.Label, URL: l.URL, Icon: icon, External: true})
	}

	if c.Email != "" {
		p.Links = append(p.Links, Link{Label: "Email", URL: EmailPath, Icon: "envelope"})
	}
	p.Links = append(p.Links, Link{Label: "Send me a message", URL: ContactPath, Icon: "paper-plane"})
	return p
}

// MailTo returns the mailto URL for the configured address, or "".
func (p *Profile) MailTo() string {
	if p.Email == "" {
		return ""
	}
	return "mailto:" + p.Email
}
