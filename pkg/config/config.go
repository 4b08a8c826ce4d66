package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"philoblog/pkg/models"
)

var (
	ListenAddr = ":8080"

	// Backend blog API settings
	APIBaseURL    = "http://localhost:5000/api"
	backendOrigin = "http://localhost:5000"

	// Widget data settings
	DataDir = "./data"

	// Admin settings
	AdminLogin     = ""
	MaxUploadBytes = int64(5 << 20)

	// Site identity, overridable via config.toml
	Site = models.SiteConfig{
		Title:      "Contemplations",
		Tagline:    "Essays on how to live",
		Author:     "Doterra",
		Categories: []string{"Ethics", "Metaphysics", "Epistemology", "Existentialism"},
	}
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	APIBaseURL = getEnv("API_BASE_URL", "http://localhost:5000/api")
	DataDir = getEnv("DATA_DIR", "./data")
	AdminLogin = getEnv("ADMIN_GITHUB_LOGIN", "")

	if mb := os.Getenv("MAX_UPLOAD_MB"); mb != "" {
		if val, err := strconv.Atoi(mb); err == nil && val > 0 {
			MaxUploadBytes = int64(val) << 20
		}
	}

	backendOrigin = deriveOrigin(APIBaseURL)

	loadSiteConfig(getEnv("SITE_CONFIG", "./config.toml"))

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

// loadSiteConfig merges config.toml over the built-in site defaults.
// A missing file is fine; a malformed one is reported and skipped.
func loadSiteConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Could not read %s: %v\n", path, err)
		}
		return
	}

	var site models.SiteConfig
	if err := toml.Unmarshal(data, &site); err != nil {
		fmt.Printf("Could not parse %s: %v\n", path, err)
		return
	}

	if site.Title != "" {
		Site.Title = site.Title
	}
	if site.Tagline != "" {
		Site.Tagline = site.Tagline
	}
	if site.Author != "" {
		Site.Author = site.Author
	}
	if site.Description != "" {
		Site.Description = site.Description
	}
	if len(site.Categories) > 0 {
		Site.Categories = site.Categories
	}
}

// deriveOrigin strips the path from the API base URL so root-relative
// image references can be resolved against the backend host.
func deriveOrigin(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// BackendOrigin returns the scheme://host of the configured blog API.
func BackendOrigin() string {
	return backendOrigin
}

func SessionSecret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "philoblog-dev-secret"
}
