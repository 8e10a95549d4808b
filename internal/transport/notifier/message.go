package notifier

import (
	"fmt"

	"pr-review-status/internal/entities"

	"github.com/slack-go/slack"
)

const summaryTitle = "Pull Request Summary"

// Badge emoji names.
const (
	EmojiBuildFailure     = "rotating_light"
	EmojiMergeConflicts   = "crossed_swords"
	EmojiStale            = "ice_cube"
	EmojiMergeableUnknown = "grey_question"
)

// Message is a Slack message with a plain text fallback.
type Message struct {
	Text   string
	Blocks []slack.Block
}

type section struct {
	emoji  string
	title  string
	status entities.ReviewStatus
}

var reportSections = []section{
	{emoji: "eyes", title: "Pending review", status: entities.StatusPendingReview},
	{emoji: "pencil2", title: "Changes requested", status: entities.StatusChangesRequested},
	{emoji: "white_check_mark", title: "Approved", status: entities.StatusApproved},
}

// BuildMessage renders the report as Block Kit.
func BuildMessage(r *entities.Report) Message {
	blocks := []slack.Block{
		markdown(fmt.Sprintf(":loudspeaker: *%s* :loudspeaker:", summaryTitle)),
		markdown(fmt.Sprintf("*Total open PRs*: %d", r.Total)),
		markdown(" "),
	}
	for _, s := range reportSections {
		blocks = append(blocks, pullRequestSection(s, r.Groups[s.status]), markdown(" "))
	}
	blocks = append(blocks, legend(r.StaleDays), markdown(" "))

	return Message{Text: summaryTitle, Blocks: blocks}
}

func markdown(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func pullRequestSection(s section, prs []entities.EnrichedPullRequest) *slack.RichTextBlock {
	title := slack.NewRichTextSection(
		slack.NewRichTextSectionEmojiElement(s.emoji, 0, nil),
		slack.NewRichTextSectionTextElement(" ", nil),
		slack.NewRichTextSectionTextElement(fmt.Sprintf("%s (%d)", s.title, len(prs)), &slack.RichTextSectionTextStyle{Bold: true}),
	)

	items := make([]slack.RichTextElement, 0, len(prs))
	for _, pr := range prs {
		items = append(items, pullRequestItem(pr))
	}
	if len(items) == 0 {
		items = append(items, slack.NewRichTextSection(slack.NewRichTextSectionTextElement("None", nil)))
	}

	return slack.NewRichTextBlock("", title, slack.NewRichTextList(slack.RTEListBullet, 0, items...))
}

func pullRequestItem(pr entities.EnrichedPullRequest) *slack.RichTextSection {
	elements := []slack.RichTextSectionElement{
		slack.NewRichTextSectionLinkElement(pr.HTMLURL, fmt.Sprintf("%s (#%d)", pr.Title, pr.Number), nil),
		slack.NewRichTextSectionTextElement(" by ", nil),
		slack.NewRichTextSectionLinkElement(pr.Author.HTMLURL, "@"+pr.Author.Login, nil),
		slack.NewRichTextSectionTextElement(" ", nil),
	}
	for _, b := range Badges(pr) {
		elements = append(elements, slack.NewRichTextSectionEmojiElement(b, 0, nil))
	}
	return slack.NewRichTextSection(elements...)
}

// Badges lists the emoji flags of a PR in display order.
func Badges(pr entities.EnrichedPullRequest) []string {
	var res []string
	if pr.HasBuildFailure {
		res = append(res, EmojiBuildFailure)
	}
	if pr.HasMergeConflicts {
		res = append(res, EmojiMergeConflicts)
	}
	if !pr.MergeableResolved {
		res = append(res, EmojiMergeableUnknown)
	}
	if pr.IsStale {
		res = append(res, EmojiStale)
	}
	return res
}

func legend(staleDays int) *slack.RichTextBlock {
	entry := func(emoji, text string) *slack.RichTextSection {
		return slack.NewRichTextSection(
			slack.NewRichTextSectionEmojiElement(emoji, 0, nil),
			slack.NewRichTextSectionTextElement(text, nil),
		)
	}

	return slack.NewRichTextBlock("",
		slack.NewRichTextSection(slack.NewRichTextSectionTextElement("Legend:", &slack.RichTextSectionTextStyle{Bold: true})),
		entry(EmojiBuildFailure, " = Build failure"),
		entry(EmojiMergeConflicts, " = Merge conflicts"),
		entry(EmojiMergeableUnknown, " = Mergeability not computed yet"),
		entry(EmojiStale, fmt.Sprintf(" = Stale PR (> %d days)", staleDays)),
	)
}
