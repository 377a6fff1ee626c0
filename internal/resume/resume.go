package resume

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound indicates the résumé file does not exist.
	ErrNotFound = errors.New("resume: file not found")

	// ErrInvalid indicates the résumé file could not be parsed.
	ErrInvalid = errors.New("resume: invalid data")
)

type Resume struct {
	About      string       `yaml:"about" json:"about,omitempty"`
	Contact    Contact      `yaml:"contact" json:"contact"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Education  []Education  `yaml:"education" json:"education"`
	Skills     Skills       `yaml:"skills" json:"skills"`
}

type Contact struct {
	Name        string `yaml:"name" json:"name"`
	Email       string `yaml:"email" json:"email"`
	Phone       string `yaml:"phone" json:"phone,omitempty"`
	Address     string `yaml:"address" json:"address,omitempty"`
	DOB         string `yaml:"dob" json:"dob,omitempty"`
	Nationality string `yaml:"nationality" json:"nationality,omitempty"`
}

type Experience struct {
	Title    string   `yaml:"title" json:"title"`
	Company  string   `yaml:"company" json:"company"`
	Location string   `yaml:"location" json:"location,omitempty"`
	Period   string   `yaml:"period" json:"period,omitempty"`
	Details  []string `yaml:"details" json:"details,omitempty"`
}

type Education struct {
	Degree     string `yaml:"degree" json:"degree"`
	University string `yaml:"university" json:"university"`
	Location   string `yaml:"location" json:"location,omitempty"`
	Period     string `yaml:"period" json:"period,omitempty"`
	Website    string `yaml:"website" json:"website,omitempty"`
}

type Skills struct {
	Languages []string `yaml:"languages" json:"languages"`
	Digital   []string `yaml:"digital" json:"digital"`
}

// Load reads a résumé from a JSON or YAML file.
func Load(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes JSON or YAML résumé data.
func Parse(data []byte) (*Resume, error) {
	r := &Resume{}
	var err error
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		// yaml rejects the tab indentation common in hand-written JSON
		err = json.Unmarshal(trimmed, r)
	} else {
		err = yaml.Unmarshal(data, r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return r, nil
}

// Fallback builds a placeholder résumé that reports err in its panels.
func Fallback(err error) *Resume {
	var hint string
	switch {
	case errors.Is(err, ErrNotFound):
		hint = "Check the resume file path"
	case errors.Is(err, ErrInvalid):
		hint = "Check the resume file format"
	}
	r := &Resume{
		Contact:    Contact{Name: "Error", Email: err.Error()},
		Experience: []Experience{{Title: "N/A"}},
		Education:  []Education{{Degree: "N/A"}},
	}
	if hint != "" {
		r.Experience[0].Details = []string{hint}
	}
	return r
}
