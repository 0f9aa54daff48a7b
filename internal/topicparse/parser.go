package topicparse

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/topicgraph/internal/builder"
	"github.com/specialistvlad/topicgraph/internal/ctxlog"
	"github.com/specialistvlad/topicgraph/internal/model"
)

const (
	// DefaultMaxContentLines bounds the content collected for one topic.
	DefaultMaxContentLines = 100
	// AmbiguousConfidence is the default score of a doubtful topic.
	AmbiguousConfidence = 0.7
	// MinConfidence drops topics scored below it.
	MinConfidence = 0.5

	minTitleLen      = 3
	minContentLength = 20
)

// headerPatterns are tried in order; the first match wins.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+(?:\.\d+)*(?:\.[a-z])?)\s+(.+?)$`), // 18.3, 5.1.a
	regexp.MustCompile(`^([IVX]+(?:\.[IVX]+)*)\s+(.+?)$`),       // IV, II.III
	regexp.MustCompile(`^([A-Z](?:\.[A-Z])*)\s+(.+?)$`),         // A, A.B
}

// wellFormedID matches ids that need no further scoring.
var wellFormedID = regexp.MustCompile(`^\d+(?:\.\d+)*(?:\.[a-z])?$`)

// Scorer assigns a confidence to an ambiguous topic.
type Scorer func(ctx context.Context, t *model.Topic) (float64, error)

// Parser extracts topics from text.
type Parser struct {
	MaxContentLines int
	Scorer          Scorer
}

// New creates a parser with the default rules.
func New() *Parser {
	return &Parser{MaxContentLines: DefaultMaxContentLines}
}

func matchHeader(line string) (id, title string, ok bool) {
	for _, re := range headerPatterns {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

// Parse extracts topics, links their hierarchy and extracts references.
func (p *Parser) Parse(ctx context.Context, text string) []*model.Topic {
	logger := ctxlog.FromContext(ctx)
	lines := strings.Split(text, "\n")

	maxLines := p.MaxContentLines
	if maxLines <= 0 {
		maxLines = DefaultMaxContentLines
	}

	var topics []*model.Topic
	offset := 0
	for i, raw := range lines {
		lineStart := offset
		offset += utf8.RuneCountInString(raw) + 1

		line := strings.TrimSpace(raw)
		id, title, ok := matchHeader(line)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(title) < minTitleLen {
			logger.Debug("Skipping topic with short title.", "id", id, "title", title)
			continue
		}

		content, end := p.collectContent(lines[i+1:], offset, maxLines)
		t := &model.Topic{
			ID:         id,
			Title:      title,
			Content:    content,
			Position:   &model.Position{Start: lineStart, End: end},
			Confidence: model.DefaultConfidence,
		}
		if ambiguous(t) {
			t.Confidence = p.score(ctx, t)
			if t.Confidence < MinConfidence {
				logger.Debug("Dropping low confidence topic.", "id", id, "confidence", t.Confidence)
				continue
			}
		}
		topics = append(topics, t)
	}
	logger.Debug("Parsed topics.", "count", len(topics), "lines", len(lines))

	builder.LinkHierarchy(topics)
	ExtractReferences(topics)
	return topics
}

// collectContent joins the non-empty lines up to the next header. offset is
// the start of the first line. It returns the content and the end offset of
// the last line consumed, or of the header line when nothing was consumed.
func (p *Parser) collectContent(lines []string, offset, maxLines int) (string, int) {
	var parts []string
	end := offset - 1
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if _, _, isHeader := matchHeader(line); isHeader {
			break
		}
		end = offset + utf8.RuneCountInString(raw)
		offset += utf8.RuneCountInString(raw) + 1
		if line == "" {
			continue
		}
		parts = append(parts, line)
		if len(parts) >= maxLines {
			break
		}
	}
	return strings.Join(parts, " "), end
}

func ambiguous(t *model.Topic) bool {
	return utf8.RuneCountInString(t.Content) < minContentLength || !wellFormedID.MatchString(t.ID)
}

func (p *Parser) score(ctx context.Context, t *model.Topic) float64 {
	if p.Scorer == nil {
		return AmbiguousConfidence
	}
	c, err := p.Scorer(ctx, t)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Topic scoring failed, using default confidence.", "id", t.ID, "error", err)
		return AmbiguousConfidence
	}
	return min(max(c, 0), 1)
}
