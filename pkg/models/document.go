package models

// BlockKind tags the variants of a rendered content block.
type BlockKind string

const (
	BlockHeading1  BlockKind = "h1"
	BlockHeading2  BlockKind = "h2"
	BlockParagraph BlockKind = "p"
	BlockBlank     BlockKind = "blank"
)

// Block is one line of leading article content.
type Block struct {
	Kind BlockKind
	Text string
}

// Dive is a named collapsible subsection of an article body. IDs are
// assigned deterministically per article so expand/collapse state keyed by
// id survives re-renders.
type Dive struct {
	ID        string
	Title     string
	BodyLines []string
	Expanded  bool
}

// RenderedDocument is the ephemeral, client-only structure produced from a
// raw article body. Expanded is the only mutable field.
type RenderedDocument struct {
	LeadingBlocks []Block
	Dives         []Dive
}
