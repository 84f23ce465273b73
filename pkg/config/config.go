package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Config provides access to a parsed configuration file.
type Config struct {
	sections map[string]*Section
	order    []string // Maintains section order
}

// New creates a new empty Config.
func New() *Config {
	return &Config{
		sections: make(map[string]*Section),
	}
}

// Load reads a configuration file and returns a Config.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: unable to open %s: %w", path, err)
	}
	defer f.Close()

	c := New()
	if err := c.parse(f); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// LoadString parses configuration data from a string.
func LoadString(data string) (*Config, error) {
	c := New()
	if err := c.parse(strings.NewReader(data)); err != nil {
		return nil, err
	}
	return c, nil
}

// parse reads sections and options from r.
func (c *Config) parse(r io.Reader) error {
	var currentSection string
	currentOptions := make(map[string]string)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines
		if line == "" {
			continue
		}

		// Strip comments
		if idx := strings.IndexAny(line, "#;"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
			if line == "" {
				continue
			}
		}

		// Section header
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			if currentSection != "" {
				c.addSection(currentSection, currentOptions)
			}
			currentSection = strings.TrimSpace(line[1 : len(line)-1])
			currentOptions = make(map[string]string)
			continue
		}

		// Option line, "key: value" or "key = value"
		sep := strings.IndexAny(line, ":=")
		if sep < 0 {
			return fmt.Errorf("line %d: unable to parse '%s'", lineNum, line)
		}
		if currentSection == "" {
			return fmt.Errorf("line %d: option before any section header", lineNum)
		}
		key := strings.TrimSpace(line[:sep])
		value := strings.TrimSpace(line[sep+1:])
		if key == "" {
			return fmt.Errorf("line %d: empty option name", lineNum)
		}
		currentOptions[key] = value
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if currentSection != "" {
		c.addSection(currentSection, currentOptions)
	}
	return nil
}

// addSection stores a parsed section. A repeated section header merges
// its options into the existing section.
func (c *Config) addSection(name string, options map[string]string) {
	if existing, ok := c.sections[name]; ok {
		for k, v := range options {
			existing.options[strings.ToLower(k)] = v
		}
		return
	}
	c.sections[name] = newSection(name, options)
	c.order = append(c.order, name)
}

// HasSection checks if a section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.sections[name]
	return ok
}

// Section returns the named section, or an error if it does not exist.
func (c *Config) Section(name string) (*Section, error) {
	s, ok := c.sections[name]
	if !ok {
		return nil, ErrMissingSection(name)
	}
	return s, nil
}

// SectionOrDefault returns the named section, or an empty section when
// the file omits it (every option then resolves to its fallback).
func (c *Config) SectionOrDefault(name string) *Section {
	if s, ok := c.sections[name]; ok {
		return s
	}
	return newSection(name, nil)
}

// SectionNames returns the section names in file order.
func (c *Config) SectionNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}
