package models

// SiteConfig holds site identity loaded from config.toml.
type SiteConfig struct {
	Title       string   `toml:"title"`
	Tagline     string   `toml:"tagline"`
	Description string   `toml:"description"`
	Author      string   `toml:"author"`
	Categories  []string `toml:"categories"`
}
