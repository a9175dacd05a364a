package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"
	"github.com/rqpush/rqpush/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Foreground(dim)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

const labelWidth = 12

// field pairs a Go field name with its resolved value. The name is split
// into words for display, so ShortHTML renders as "Short HTML".
type field struct {
	name  string
	value string
}

func outboundFields(out domain.OutboundNotification) []field {
	return []field{
		{"App", out.App},
		{"URL", out.URL},
		{"Tagline", out.Tagline},
		{"Category", out.Category},
		{"Lang", out.Lang},
		{"ShortText", out.ShortText},
		{"ShortHTML", out.ShortHTML},
		{"LongText", out.LongText},
		{"LongHTML", out.LongHTML},
	}
}

// Label turns a Go identifier into a display label.
func Label(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

// RenderPreview formats a prepared notification and its envelope.
func RenderPreview(p domain.Prepared) string {
	var b strings.Builder

	out := p.Outbound
	header := headerStyle.Render("rqpush") + "  " + titleStyle.Render(out.Title)
	meta := dimStyle.Render(fmt.Sprintf("priority %d · ttl %ds", out.Priority, out.TTL))
	b.WriteString(boxStyle.Render(header + "\n" + meta))
	b.WriteString("\n\n")

	for _, f := range outboundFields(out) {
		renderField(&b, Label(f.name), f.value)
	}

	b.WriteString("\n  " + separatorLine + "\n\n")

	digest := faintStyle.Render("unsigned")
	if p.Message.SHA256 != nil {
		digest = *p.Message.SHA256
	}
	renderField(&b, "SHA256", digest)
	renderField(&b, "Contents", dimStyle.Render(fmt.Sprintf("%d bytes", len(p.Message.Contents))))
	b.WriteString("\n")

	return b.String()
}

func renderField(b *strings.Builder, label, value string) {
	name := labelStyle.Render(padRight(label, labelWidth))
	if value == "" {
		fmt.Fprintf(b, "  %s %s\n", name, faintStyle.Render("·"))
		return
	}
	lines := strings.Split(value, "\n")
	fmt.Fprintf(b, "  %s %s\n", name, lines[0])
	indent := strings.Repeat(" ", labelWidth+3)
	for _, line := range lines[1:] {
		b.WriteString(indent + line + "\n")
	}
}

// RenderSendResult formats the outcome of a delivery attempt.
func RenderSendResult(endpoint string, resp *domain.Response, err error) string {
	var b strings.Builder
	switch {
	case err != nil:
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), dimStyle.Render(endpoint))
		fmt.Fprintf(&b, "    %s\n", failStyle.Render(err.Error()))
	case resp.OK():
		fmt.Fprintf(&b, "  %s %s %s\n", passStyle.Render("✓"), dimStyle.Render(endpoint), passStyle.Render(resp.Status))
	default:
		fmt.Fprintf(&b, "  %s %s %s\n", warnStyle.Render("!"), dimStyle.Render(endpoint), warnStyle.Render(resp.Status))
		if body := strings.TrimSpace(string(resp.Body)); body != "" {
			fmt.Fprintf(&b, "    %s\n", faintStyle.Render(body))
		}
	}
	return b.String()
}

// RenderHistory formats send history for terminal output.
func RenderHistory(records []domain.SendRecord) string {
	if len(records) == 0 {
		return "  " + dimStyle.Render("No sends recorded.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Send History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, r := range records {
		digest := r.SHA256
		if len(digest) > 7 {
			digest = digest[:7]
		}
		if digest == "" {
			digest = "·······"
		}

		var status string
		switch {
		case r.Error != "":
			status = failStyle.Render("error")
		case r.Failed():
			status = warnStyle.Render(fmt.Sprintf("%d", r.StatusCode))
		default:
			status = passStyle.Render(fmt.Sprintf("%d", r.StatusCode))
		}

		ts := r.Timestamp
		if len(ts) > 19 {
			ts = ts[:19]
		}

		fmt.Fprintf(&b, "  %s  %s  %s  %s %s\n",
			dimStyle.Render(ts),
			faintStyle.Render(digest),
			status,
			titleStyle.Render(r.App),
			r.Title,
		)
		if r.Error != "" {
			fmt.Fprintf(&b, "      %s\n", dimStyle.Render(r.Error))
		}
	}

	return b.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
