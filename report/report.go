// Package report renders an investigation record for a terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	instagram "github.com/anatolykoptev/go-instagram"
)

const (
	ruleWidth = 70
	bioMax    = 100
)

var numbers = message.NewPrinter(language.English)

// Styles holds the lipgloss styles used for each kind of output.
type Styles struct {
	Header  lipgloss.Style
	Section lipgloss.Style
	Good    lipgloss.Style
	Bad     lipgloss.Style
	Warn    lipgloss.Style
	Info    lipgloss.Style
}

// Colored returns the default terminal styles.
func Colored() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Section: lipgloss.NewStyle().Bold(true),
		Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

// Plain returns styles that render text unchanged.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Header: s, Section: s, Good: s, Bad: s, Warn: s, Info: s}
}

// Renderer writes human-readable profile reports.
type Renderer struct {
	st Styles
}

// New creates a renderer with the given styles.
func New(st Styles) *Renderer {
	return &Renderer{st: st}
}

// Styles returns the renderer's styles, for callers printing status lines.
func (r *Renderer) Styles() Styles { return r.st }

// Render writes the report for p, stamped with now.
func (r *Renderer) Render(w io.Writer, p instagram.Profile, now time.Time) error {
	var b strings.Builder
	rule := strings.Repeat("=", ruleWidth)

	b.WriteString("\n" + r.st.Header.Render(rule) + "\n")
	b.WriteString(r.st.Header.Render("INVESTIGATION RESULTS") + "\n")
	b.WriteString(r.st.Header.Render(rule) + "\n")

	r.section(&b, "BASIC INFO")
	r.line(&b, "Username", r.st.Good.Render(orNA(p.String("username"))))
	r.line(&b, "User ID", r.st.Good.Render(orNA(p.String(instagram.UserIDField))))
	r.line(&b, "Full name", r.st.Good.Render(orNA(p.String("full_name"))))
	r.line(&b, "Verified", r.flag(p.Bool("is_verified"), false))
	r.line(&b, "Business account", r.flag(p.Bool("is_business"), false))
	r.line(&b, "Private account", r.flag(p.Bool("is_private"), true))

	r.section(&b, "STATISTICS")
	r.line(&b, "Followers", r.st.Info.Render(count(p["follower_count"])))
	r.line(&b, "Following", r.st.Info.Render(count(p["following_count"])))
	r.line(&b, "Posts", r.st.Info.Render(count(p["media_count"])))
	r.line(&b, "IGTV videos", r.st.Info.Render(orNA(scalar(p["total_igtv_videos"]))))

	r.section(&b, "CONTACT")
	if v := p.String("public_email"); v != "" {
		r.line(&b, "Public email", r.st.Good.Render(v))
	}
	if v := p.String("public_phone_number"); v != "" {
		phone := fmt.Sprintf("+%s %s", scalar(p["public_phone_country_code"]), v)
		r.line(&b, "Public phone", r.st.Good.Render(phone))
	}
	if v := p.String("obfuscated_email"); v != "" {
		r.line(&b, "Obfuscated email", r.st.Warn.Render(v))
	}
	if v := p.String("obfuscated_phone"); v != "" {
		r.line(&b, "Obfuscated phone", r.st.Warn.Render(v))
	}
	r.line(&b, "WhatsApp linked", r.flag(p.Bool("is_whatsapp_linked"), false))

	r.section(&b, "OTHER")
	if v := p.String("external_url"); v != "" {
		r.line(&b, "External URL", r.st.Info.Render(v))
	}
	if v := p.String("biography"); v != "" {
		r.line(&b, "Biography", r.st.Info.Render(truncate(v, bioMax)))
	}
	if pic, ok := p["hd_profile_pic_url_info"].(map[string]any); ok {
		if u, _ := pic["url"].(string); u != "" {
			r.line(&b, "Profile picture", r.st.Info.Render(u))
		}
	}

	b.WriteString("\n" + r.st.Header.Render(rule) + "\n")
	b.WriteString(r.st.Header.Render("Investigation finished at: "+now.Format("02/01/2006 15:04:05")) + "\n")
	b.WriteString(r.st.Header.Render(rule) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) section(b *strings.Builder, title string) {
	b.WriteString("\n" + r.st.Section.Render(title+":") + "\n")
}

func (r *Renderer) line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "   %s: %s\n", label, value)
}

// flag renders a yes/no value. inverted marks "yes" as the unfavourable answer.
func (r *Renderer) flag(v, inverted bool) string {
	text := "No"
	if v {
		text = "Yes"
	}
	if v != inverted {
		return r.st.Good.Render(text)
	}
	return r.st.Bad.Render(text)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// count formats an integer field with thousands separators.
func count(v any) string {
	var n int64
	switch x := v.(type) {
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return x.String()
		}
		n = i
	case float64:
		n = int64(x)
	case int:
		n = int64(x)
	case int64:
		n = x
	default:
		return "N/A"
	}
	return numbers.Sprintf("%d", n)
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n]) + "..."
}
