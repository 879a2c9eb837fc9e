package rubric

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// File is the on-disk shape of a rubric definition.
type File struct {
	Criteria []Criterion `yaml:"criteria" validate:"required,min=1,unique=ID,dive"`
}

// LoadFile reads a YAML rubric definition from path.
func LoadFile(path string) (*Rubric, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rubric file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and validates a YAML rubric definition. Unlike interactive
// edits, a rubric file must carry unique positive ids, non-empty names,
// non-negative weights and max scores of at least 1.
func Load(r io.Reader) (*Rubric, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode rubric file: %w", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("rubric validation failed: %w", err)
	}

	return New(file.Criteria...), nil
}
