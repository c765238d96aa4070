package main

import (
	"bytes"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	chatpage "github.com/wanderxuhq/chat-with-page-sub000"
	"github.com/wanderxuhq/chat-with-page-sub000/readability"
)

// Built-in settings used when neither a flag nor the config file sets one.
const (
	defaultFormat      = FormatMarkdown
	defaultEngine      = EngineReadability
	defaultConcurrency = 4
	defaultTimeout     = 10 * time.Second
)

// Extraction engines.
const (
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// FileConfig is the YAML configuration file named by --config or
// CHATPAGE_CONFIG. Every field is optional; flags given on the command line
// take precedence.
type FileConfig struct {
	Engine      string            `yaml:"engine"`
	Format      string            `yaml:"format"`
	Browser     bool              `yaml:"browser"`
	Sanitize    bool              `yaml:"sanitize"`
	Concurrency int               `yaml:"concurrency"`
	Timeout     time.Duration     `yaml:"timeout"`
	RateLimit   float64           `yaml:"rate_limit"`
	UserAgent   string            `yaml:"user_agent"`
	Readability ReadabilityConfig `yaml:"readability"`
}

// ReadabilityConfig holds the readability engine options.
type ReadabilityConfig struct {
	CharThreshold       int      `yaml:"char_threshold"`
	NbTopCandidates     int      `yaml:"nb_top_candidates"`
	MaxElemsToParse     int      `yaml:"max_elems_to_parse"`
	ClassesToPreserve   []string `yaml:"classes_to_preserve"`
	KeepClasses         bool     `yaml:"keep_classes"`
	DisableJSONLD       bool     `yaml:"disable_json_ld"`
	LinkDensityModifier float64  `yaml:"link_density_modifier"`
	AllowedVideoRegex   string   `yaml:"allowed_video_regex"`
}

// LoadConfig reads and decodes the config file at path. Unknown keys are
// rejected so that typos do not go unnoticed.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, chatpage.Errorf(chatpage.ENOTFOUND, "config file not found: %s", path)
		}
		return nil, err
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration.
func ParseConfig(data []byte) (*FileConfig, error) {
	var fc FileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return &fc, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, chatpage.Errorf(chatpage.EINVALID, "invalid config: %v", err)
	}
	return &fc, nil
}

// ApplyConfig fills every setting the command line left unset from fc.
func (c *ExtractCmd) ApplyConfig(fc *FileConfig) {
	if fc == nil {
		return
	}
	c.Engine = firstString(c.Engine, fc.Engine)
	c.Format = firstString(c.Format, fc.Format)
	c.Browser = c.Browser || fc.Browser
	c.Sanitize = c.Sanitize || fc.Sanitize
	c.Concurrency = firstInt(c.Concurrency, fc.Concurrency)
	if c.Timeout == 0 {
		c.Timeout = fc.Timeout
	}
	if c.RateLimit == 0 {
		c.RateLimit = fc.RateLimit
	}
	c.UserAgent = firstString(c.UserAgent, fc.UserAgent)

	r := fc.Readability
	c.CharThreshold = firstInt(c.CharThreshold, r.CharThreshold)
	c.NbTopCandidates = firstInt(c.NbTopCandidates, r.NbTopCandidates)
	c.MaxElems = firstInt(c.MaxElems, r.MaxElemsToParse)
	if len(c.PreserveClasses) == 0 {
		c.PreserveClasses = r.ClassesToPreserve
	}
	c.KeepClasses = c.KeepClasses || r.KeepClasses
	c.DisableJSONLD = c.DisableJSONLD || r.DisableJSONLD
	if c.LinkDensityModifier == 0 {
		c.LinkDensityModifier = r.LinkDensityModifier
	}
	c.VideoRegex = firstString(c.VideoRegex, r.AllowedVideoRegex)
}

// ApplyDefaults fills the remaining unset settings and validates the
// result.
func (c *ExtractCmd) ApplyDefaults() error {
	c.Format = firstString(c.Format, defaultFormat)
	c.Engine = firstString(c.Engine, defaultEngine)
	c.Concurrency = firstInt(c.Concurrency, defaultConcurrency)
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}

	if !validFormats[c.Format] {
		return chatpage.Errorf(chatpage.EINVALID, "unknown format %q: expected html, text, markdown, json or prompt", c.Format)
	}
	switch c.Engine {
	case EngineReadability, EngineTrafilatura:
	default:
		return chatpage.Errorf(chatpage.EINVALID, "unknown engine %q: expected readability or trafilatura", c.Engine)
	}
	if c.Concurrency < 0 {
		return chatpage.Errorf(chatpage.EINVALID, "concurrency must be positive")
	}
	return nil
}

// ReadabilityOptions converts the engine settings into readability.Options.
func (c *ExtractCmd) ReadabilityOptions() (readability.Options, error) {
	opts := readability.Options{
		MaxElemsToParse:     c.MaxElems,
		NbTopCandidates:     c.NbTopCandidates,
		CharThreshold:       c.CharThreshold,
		ClassesToPreserve:   c.PreserveClasses,
		KeepClasses:         c.KeepClasses,
		DisableJSONLD:       c.DisableJSONLD,
		LinkDensityModifier: c.LinkDensityModifier,
	}
	if c.VideoRegex != "" {
		rx, err := regexp.Compile(c.VideoRegex)
		if err != nil {
			return opts, chatpage.Errorf(chatpage.EINVALID, "invalid video regex: %v", err)
		}
		opts.AllowedVideoRegex = rx
	}
	return opts, nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
