package filesystem

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"locus/internal/domain"
)

const frontmatterDelim = "---"

// frontmatter is the YAML header of an item file
type frontmatter struct {
	ID        string `yaml:"id"`
	Kind      string `yaml:"kind"`
	Title     string `yaml:"title"`
	Status    string `yaml:"status,omitempty"`
	Placement string `yaml:"placement"`
	Rank      string `yaml:"rank"`
	Created   string `yaml:"created"`
	Updated   string `yaml:"updated,omitempty"`
}

// MarshalItem renders an item as markdown with a YAML frontmatter block
func MarshalItem(item domain.Item) ([]byte, error) {
	fm := frontmatter{
		ID:        item.ID.String(),
		Kind:      string(item.Kind),
		Title:     item.Title,
		Status:    string(item.Status),
		Placement: item.Placement.String(),
		Rank:      item.Rank.String(),
		Created:   item.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !item.UpdatedAt.IsZero() {
		fm.Updated = item.UpdatedAt.UTC().Format(time.RFC3339)
	}

	header, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	buf.Write(header)
	buf.WriteString(frontmatterDelim + "\n")
	if body := strings.TrimSpace(item.Body); body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// UnmarshalItem parses an item file written by MarshalItem. Hand edits are
// tolerated as long as the frontmatter stays valid.
func UnmarshalItem(data []byte) (domain.Item, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, frontmatterDelim+"\n") {
		return domain.Item{}, fmt.Errorf("missing frontmatter")
	}
	rest := text[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim)
	if end < 0 {
		return domain.Item{}, fmt.Errorf("unterminated frontmatter")
	}
	header := rest[:end+1]
	body := strings.TrimPrefix(rest[end+1+len(frontmatterDelim):], "\n")

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return domain.Item{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	id, err := domain.ParseItemID(fm.ID)
	if err != nil {
		return domain.Item{}, err
	}
	kind, err := domain.ParseItemKind(fm.Kind)
	if err != nil {
		return domain.Item{}, err
	}
	placement, err := domain.ParsePlacement(fm.Placement)
	if err != nil {
		return domain.Item{}, err
	}
	rank, err := domain.ParseRank(fm.Rank)
	if err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{
		ID:        id,
		Kind:      kind,
		Title:     fm.Title,
		Body:      strings.TrimSpace(body),
		Status:    domain.TaskStatus(fm.Status),
		Placement: placement,
		Rank:      rank,
	}
	if item.CreatedAt, err = parseTimestamp(fm.Created); err != nil {
		return domain.Item{}, fmt.Errorf("invalid created: %w", err)
	}
	if item.UpdatedAt, err = parseTimestamp(fm.Updated); err != nil {
		return domain.Item{}, fmt.Errorf("invalid updated: %w", err)
	}
	return item, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
