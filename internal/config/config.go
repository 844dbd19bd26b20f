// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"careers-engine/internal/domain"

	"gopkg.in/yaml.v3"
)

type Office struct {
	City      string `yaml:"city"`
	State     string `yaml:"state"`
	StateName string `yaml:"state_name"`
}

type Config struct {
	Company struct {
		Name          string `yaml:"name"`
		URL           string `yaml:"url"`
		Logo          string `yaml:"logo"`
		Description   string `yaml:"description"`
		CareersEmail  string `yaml:"careers_email"`
		DefaultOffice string `yaml:"default_office"`
	} `yaml:"company"`

	Source struct {
		Kind            string `yaml:"kind"` // feed | board
		TimeoutSeconds  int    `yaml:"timeout_seconds"`  // per request
		DeadlineSeconds int    `yaml:"deadline_seconds"` // whole fetch, detail pages included

		Feed struct {
			URL string `yaml:"url"`
		} `yaml:"feed"`

		Board struct {
			URL          string `yaml:"url"`
			BaseURL      string `yaml:"base_url"`
			UserAgent    string `yaml:"user_agent"`
			Render       bool   `yaml:"render"`
			FetchDetails bool   `yaml:"fetch_details"`
		} `yaml:"board"`
	} `yaml:"source"`

	Location struct {
		DefaultCountry string   `yaml:"default_country"`
		Offices        []Office `yaml:"offices"`
	} `yaml:"location"`

	Normalize struct {
		DetailMarker string `yaml:"detail_marker"`
	} `yaml:"normalize"`

	Output struct {
		Dir         string `yaml:"dir"`
		PagesDir    string `yaml:"pages_dir"`
		FeedsDir    string `yaml:"feeds_dir"`
		PagesPath   string `yaml:"pages_path"` // URL path the pages are served under
		Stylesheet  string `yaml:"stylesheet"`
		Logo        string `yaml:"logo"`
		Precompress bool   `yaml:"precompress"`
	} `yaml:"output"`

	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`

	Publish struct {
		Enabled               bool   `yaml:"enabled"`
		Host                  string `yaml:"host"`
		Port                  int    `yaml:"port"`
		User                  string `yaml:"user"`
		RemoteDir             string `yaml:"remote_dir"`
		KnownHosts            string `yaml:"known_hosts"`
		InsecureIgnoreHostKey bool   `yaml:"insecure_ignore_host_key"`
	} `yaml:"publish"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

const (
	SourceFeed  = "feed"
	SourceBoard = "board"
)

// Default returns the stock configuration for the Zonos careers site.
func Default() Config {
	var cfg Config

	cfg.Company.Name = "Zonos"
	cfg.Company.URL = "https://www.zonos.com"
	cfg.Company.Logo = "https://www.zonos.com/logo.png"
	cfg.Company.Description = "Zonos provides scalable technology to simplify the complexities of international commerce, making it accessible to everyone. We create trust in global trade."
	cfg.Company.CareersEmail = "careers@zonos.com"
	cfg.Company.DefaultOffice = "St. George, UT"

	cfg.Source.Kind = SourceFeed
	cfg.Source.TimeoutSeconds = 10
	cfg.Source.DeadlineSeconds = 120
	cfg.Source.Feed.URL = "https://zonos.github.io/deel-job-feed/feeds/jobs.json"
	cfg.Source.Board.URL = "https://jobs.deel.com/job-boards/zonos"
	cfg.Source.Board.BaseURL = "https://jobs.deel.com"
	cfg.Source.Board.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	cfg.Location.DefaultCountry = "US"
	cfg.Location.Offices = []Office{{City: "St. George", State: "UT", StateName: "Utah"}}

	cfg.Normalize.DetailMarker = "/job-details/"

	cfg.Output.Dir = "."
	cfg.Output.PagesDir = "careers"
	cfg.Output.FeedsDir = "feeds"
	cfg.Output.PagesPath = "/careers/"
	cfg.Output.Stylesheet = "careers.css"
	cfg.Output.Logo = "careers/zonos-logo-black.png"

	cfg.Publish.Port = 22

	cfg.Log.Level = "info"
	return cfg
}

// Load reads path on top of Default. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// ApplyEnv overlays CAREERS_* environment variables (and LOG_LEVEL).
func ApplyEnv(cfg *Config) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	str("CAREERS_SOURCE", &cfg.Source.Kind)
	str("CAREERS_FEED_URL", &cfg.Source.Feed.URL)
	str("CAREERS_BOARD_URL", &cfg.Source.Board.URL)
	boolean("CAREERS_BOARD_RENDER", &cfg.Source.Board.Render)
	str("CAREERS_OUTPUT_DIR", &cfg.Output.Dir)
	str("CAREERS_STORE_PATH", &cfg.Store.Path)
	boolean("CAREERS_PUBLISH", &cfg.Publish.Enabled)
	str("CAREERS_SFTP_HOST", &cfg.Publish.Host)
	str("CAREERS_SFTP_USER", &cfg.Publish.User)
	str("LOG_LEVEL", &cfg.Log.Level)
}

func (c Config) Timeout() time.Duration {
	if c.Source.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Deadline bounds a whole fetch. Zero means only per-request timeouts apply.
func (c Config) Deadline() time.Duration {
	if c.Source.DeadlineSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Source.DeadlineSeconds) * time.Second
}

func (c Config) CompanyInfo() domain.Company {
	return domain.Company{
		Name:          c.Company.Name,
		URL:           c.Company.URL,
		Logo:          c.Company.Logo,
		Description:   c.Company.Description,
		CareersEmail:  c.Company.CareersEmail,
		DefaultOffice: c.Company.DefaultOffice,
	}
}
