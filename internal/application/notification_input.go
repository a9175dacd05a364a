package application

import (
	"fmt"

	"github.com/rqpush/rqpush/internal/domain"
)

// NotificationInput collects builder arguments from an inbound adapter.
// Nil pointers leave the corresponding field unset so the resolver can
// apply its fallbacks.
type NotificationInput struct {
	App   string `json:"app"`
	Title string `json:"title"`
	Text  string `json:"text"`

	URL       *string `json:"url,omitempty"`
	Tagline   *string `json:"tagline,omitempty"`
	Category  *string `json:"category,omitempty"`
	Lang      *string `json:"lang,omitempty"`
	ShortHTML *string `json:"short_html,omitempty"`
	LongText  *string `json:"long_text,omitempty"`
	LongHTML  *string `json:"long_html,omitempty"`

	TitleTemplate     *string `json:"title_template,omitempty"`
	ShortTextTemplate *string `json:"short_text_template,omitempty"`
	ShortHTMLTemplate *string `json:"short_html_template,omitempty"`
	LongTextTemplate  *string `json:"long_text_template,omitempty"`
	LongHTMLTemplate  *string `json:"long_html_template,omitempty"`

	Values map[string]any `json:"values,omitempty"`
}

// Build creates a notification from the effective defaults and applies in.
// Values are added before the reserved setters so that app, url and the
// other reserved keys always reflect the fields.
func (s *SendService) Build(in NotificationInput) *domain.Notification {
	n := s.NewNotification(in.App, in.Title, in.Text)
	for k, v := range in.Values {
		n.AddValue(k, v)
	}

	apply := func(p *string, set func(string) *domain.Notification) {
		if p != nil {
			set(*p)
		}
	}
	apply(in.URL, n.SetURL)
	apply(in.Tagline, n.SetTagline)
	apply(in.Category, n.SetCategory)
	apply(in.Lang, n.SetLang)
	apply(in.ShortHTML, n.SetShortHTML)
	apply(in.LongText, n.SetLongText)
	apply(in.LongHTML, n.SetLongHTML)
	apply(in.TitleTemplate, n.SetTitleTemplate)
	apply(in.ShortTextTemplate, n.SetShortTextTemplate)
	apply(in.ShortHTMLTemplate, n.SetShortHTMLTemplate)
	apply(in.LongTextTemplate, n.SetLongTextTemplate)
	apply(in.LongHTMLTemplate, n.SetLongHTMLTemplate)

	return n
}

// GitValues returns the "commit" and "branch" substitution values for the
// repository containing projectPath.
func GitValues(g domain.GitInfo, projectPath string) (map[string]any, error) {
	if !g.IsGitRepo(projectPath) {
		return nil, fmt.Errorf("%s is not inside a git repository", projectPath)
	}
	commit, err := g.CommitHash(projectPath)
	if err != nil {
		return nil, fmt.Errorf("reading commit: %w", err)
	}
	branch, err := g.Branch(projectPath)
	if err != nil {
		return nil, fmt.Errorf("reading branch: %w", err)
	}
	values := map[string]any{
		"commit": commit,
		"branch": branch,
	}
	if len(commit) >= 7 {
		values["commit_short"] = commit[:7]
	}
	return values, nil
}
