package services

import (
	"fmt"
	"strings"

	"philoblog/pkg/models"
)

// DeepDiveMarker delimits named collapsible subsections inside an article
// body. Everything before the first marker is leading content; each marker
// starts a dive whose first line is its title.
const DeepDiveMarker = "### Deep Dive:"

// Render parses a raw article body into a structured document in a single
// linear pass. It performs no HTML sanitization: callers are expected to
// emit the result through html/template so untrusted text gets escaped.
func Render(body string) *models.RenderedDocument {
	doc := &models.RenderedDocument{}

	segments := strings.Split(body, DeepDiveMarker)

	leading := segments[0]
	if len(segments) > 1 {
		// The newline before the first marker belongs to the marker line,
		// not to the leading content.
		leading = strings.TrimSuffix(leading, "\n")
	}
	for _, line := range strings.Split(leading, "\n") {
		doc.LeadingBlocks = append(doc.LeadingBlocks, parseBlock(line))
	}

	for i, segment := range segments[1:] {
		title, rest, hasBody := strings.Cut(segment, "\n")
		dive := models.Dive{
			// 1-based among dive segments; stable across re-renders of the
			// same body so session expand state keyed by id stays valid.
			ID:    fmt.Sprintf("dive-%d", i+1),
			Title: title,
		}
		if hasBody {
			dive.BodyLines = strings.Split(rest, "\n")
		}
		doc.Dives = append(doc.Dives, dive)
	}

	return doc
}

func parseBlock(line string) models.Block {
	switch {
	case strings.HasPrefix(line, "# "):
		return models.Block{Kind: models.BlockHeading1, Text: line[2:]}
	case strings.HasPrefix(line, "## "):
		return models.Block{Kind: models.BlockHeading2, Text: line[3:]}
	case strings.TrimSpace(line) == "":
		return models.Block{Kind: models.BlockBlank}
	default:
		return models.Block{Kind: models.BlockParagraph, Text: line}
	}
}

// ToggleDive flips the expanded flag of the named dive and leaves every
// other dive untouched. An unknown id is a no-op: ids are generated
// internally, so a miss means a stale reference, not a caller error.
func ToggleDive(doc *models.RenderedDocument, diveID string) {
	for i := range doc.Dives {
		if doc.Dives[i].ID == diveID {
			doc.Dives[i].Expanded = !doc.Dives[i].Expanded
			return
		}
	}
}

// ApplyExpanded marks the dives named in ids as expanded. Used to restore
// per-session expand state onto a freshly rendered document.
func ApplyExpanded(doc *models.RenderedDocument, ids []string) {
	if len(ids) == 0 {
		return
	}
	expanded := make(map[string]bool, len(ids))
	for _, id := range ids {
		expanded[id] = true
	}
	for i := range doc.Dives {
		if expanded[doc.Dives[i].ID] {
			doc.Dives[i].Expanded = true
		}
	}
}

// ExpandedIDs returns the ids of currently expanded dives in document order.
func ExpandedIDs(doc *models.RenderedDocument) []string {
	var ids []string
	for _, d := range doc.Dives {
		if d.Expanded {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
