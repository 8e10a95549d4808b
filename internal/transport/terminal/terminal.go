// Package terminal prints review statuses for humans.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"pr-review-status/internal/entities"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	dim     lipgloss.Style
	number  lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	ok      lipgloss.Style
}

// Printer renders reports and single classifications to a writer.
type Printer struct {
	out io.Writer
	st  styles
}

// NewPrinter detects the color profile from w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out: w,
		st: styles{
			title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
			heading: r.NewStyle().Bold(true),
			dim:     r.NewStyle().Faint(true),
			number:  r.NewStyle().Foreground(lipgloss.Color("12")),
			err:     r.NewStyle().Foreground(lipgloss.Color("196")),
			warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
			ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		},
	}
}

var headings = []struct {
	status entities.ReviewStatus
	title  string
}{
	{entities.StatusPendingReview, "Pending review"},
	{entities.StatusChangesRequested, "Changes requested"},
	{entities.StatusApproved, "Approved"},
}

// PrintReport writes the grouped PRs with their flags.
func (p *Printer) PrintReport(r *entities.Report) error {
	var b strings.Builder

	b.WriteString(p.st.title.Render(fmt.Sprintf("%s: %d open pull requests", r.Repository, r.Total)))
	b.WriteString(" " + p.st.dim.Render(r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")) + "\n")

	for _, h := range headings {
		prs := r.Groups[h.status]
		b.WriteString("\n" + p.statusStyle(h.status).Render(fmt.Sprintf("%s (%d)", h.title, len(prs))) + "\n")
		if len(prs) == 0 {
			b.WriteString("  " + p.st.dim.Render("none") + "\n")
			continue
		}
		for _, pr := range prs {
			b.WriteString("  " + p.line(pr) + "\n")
		}
	}

	b.WriteString("\n" + p.st.dim.Render(fmt.Sprintf("stale = opened more than %d days ago", r.StaleDays)) + "\n")

	_, err := io.WriteString(p.out, b.String())
	return err
}

// PrintClassification writes one PR's status and the counts behind it.
func (p *Printer) PrintClassification(repo entities.Repository, c *entities.Classification) error {
	var b strings.Builder

	b.WriteString(p.st.number.Render(fmt.Sprintf("%s#%d", repo, c.PullRequest.Number)))
	b.WriteString(" " + c.PullRequest.Title + " ")
	b.WriteString(p.statusStyle(c.Status).Render(string(c.Status)) + "\n")

	if c.Status != entities.StatusDraft {
		b.WriteString(p.st.dim.Render(fmt.Sprintf(
			"  approvals %d, changes requested %d, unresolved threads %d",
			c.Decision.Approvals, c.Decision.ChangesRequested, c.Decision.UnresolvedThreads,
		)))
		if !c.Decision.ThreadsComplete {
			b.WriteString(" " + p.st.warn.Render("(partial)"))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(p.out, b.String())
	return err
}

func (p *Printer) line(pr entities.EnrichedPullRequest) string {
	parts := []string{
		p.st.number.Render(fmt.Sprintf("#%d", pr.Number)),
		pr.Title,
		p.st.dim.Render("@" + pr.Author.Login),
	}
	if pr.HasBuildFailure {
		parts = append(parts, p.st.err.Render("[build failing]"))
	}
	if pr.HasMergeConflicts {
		parts = append(parts, p.st.err.Render("[conflicts]"))
	}
	if !pr.MergeableResolved {
		parts = append(parts, p.st.warn.Render("[mergeable?]"))
	}
	if pr.IsStale {
		parts = append(parts, p.st.warn.Render("[stale]"))
	}
	return strings.Join(parts, " ")
}

func (p *Printer) statusStyle(s entities.ReviewStatus) lipgloss.Style {
	switch s {
	case entities.StatusApproved:
		return p.st.ok.Bold(true)
	case entities.StatusChangesRequested:
		return p.st.err.Bold(true)
	case entities.StatusPendingReview:
		return p.st.warn.Bold(true)
	default:
		return p.st.dim
	}
}
