package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Jumpaku/go-screening/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const (
	KindLogistic = "logistic"
	KindTree     = "tree"
)

// Artifact is the serialized form of a trained classifier.
// Artifacts are YAML documents; JSON artifacts are accepted as well.
type Artifact struct {
	Kind      string    `yaml:"kind"`
	Features  int       `yaml:"features"`
	Weights   []float64 `yaml:"weights"`
	Bias      float64   `yaml:"bias"`
	Threshold float64   `yaml:"threshold"`
	Nodes     []Node    `yaml:"nodes"`
}

// Node is a decision tree node. A node with Value set is a leaf.
// Children must come after their parent so that evaluation always terminates.
type Node struct {
	Feature   int     `yaml:"feature"`
	Threshold float64 `yaml:"threshold"`
	Left      int     `yaml:"left"`
	Right     int     `yaml:"right"`
	Value     *int    `yaml:"value"`
}

//go:embed artifact.schema.json
var artifactSchemaJSON []byte

var (
	artifactSchemaOnce sync.Once
	artifactSchema     *jsonschema.Schema
	artifactSchemaErr  error
)

func compiledArtifactSchema() (*jsonschema.Schema, error) {
	artifactSchemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(artifactSchemaJSON, &doc); err != nil {
			artifactSchemaErr = fmt.Errorf("parse artifact schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://model-artifact.json"
		if err := c.AddResource(url, doc); err != nil {
			artifactSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		artifactSchema, artifactSchemaErr = c.Compile(url)
	})
	return artifactSchema, artifactSchemaErr
}

// Load reads and parses the artifact at path.
func Load(path string) (classifier Classifier, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to read model artifact %q", path), err)
	}
	classifier, err = Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact %q: %w", path, err)
	}
	return classifier, nil
}

// Parse validates the artifact document and builds the classifier it describes.
func Parse(data []byte) (classifier Classifier, err error) {
	if err := validateArtifact(data); err != nil {
		return nil, err
	}
	var a Artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, errors.NewModelError("failed to decode artifact", err)
	}
	switch a.Kind {
	case KindLogistic:
		return newLogistic(a)
	case KindTree:
		return newTree(a)
	}
	return nil, errors.NewModelError(fmt.Sprintf("unknown kind %q", a.Kind), nil)
}

func validateArtifact(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.NewModelError("failed to decode artifact", err)
	}
	if doc == nil {
		return errors.NewModelError("empty artifact", nil)
	}
	// Round-trip through JSON so the validator sees plain JSON values.
	b, err := json.Marshal(doc)
	if err != nil {
		return errors.NewModelError("artifact is not representable as JSON", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return errors.NewModelError("artifact is not representable as JSON", err)
	}
	schema, err := compiledArtifactSchema()
	if err != nil {
		return fmt.Errorf("failed to compile artifact schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return errors.NewModelError("schema validation failed", err)
	}
	return nil
}
