// YAML parameter-file loading for file mode
package paramio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Okanagan-Marine-Robotics/tuneGUI/internal/params"
)

// rosParamsKey is the wrapper mapping ROS 2 parameter files put around
// the actual parameters; it is flattened away so paths read naturally.
const rosParamsKey = "ros__parameters"

// Loader reads flat dotted-path parameter mappings from YAML files.
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load parses a YAML parameter file into path/value entries, preserving
// the file's key order so sibling order on screen matches the file.
func (l *Loader) Load(filepath string) ([]params.PathParam, error) {
	l.logger.WithField("filepath", filepath).Debug("Loading parameter file")

	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameter file: %w", err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath, err)
	}

	l.logger.WithFields(logrus.Fields{
		"filepath":   filepath,
		"parameters": len(entries),
	}).Info("Parameter file loaded")

	return entries, nil
}

// Parse flattens YAML document content into dotted-path entries. Nested
// mappings contribute path segments; scalars become values typed by their
// YAML tag. Key order in the document is preserved.
func Parse(data []byte) ([]params.PathParam, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parameter file must be a mapping at the top level")
	}

	var entries []params.PathParam
	if err := flatten(root, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flatten(node *yaml.Node, prefix []string, out *[]params.PathParam) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]

		segments := prefix
		if key != rosParamsKey {
			segments = append(append([]string{}, prefix...), key)
		}

		switch val.Kind {
		case yaml.MappingNode:
			if err := flatten(val, segments, out); err != nil {
				return err
			}
		case yaml.ScalarNode:
			if len(segments) == 0 {
				return fmt.Errorf("scalar %q has no parameter name", val.Value)
			}
			*out = append(*out, params.PathParam{
				Path: strings.Join(segments, "."),
				Raw:  scalarValue(val),
			})
		default:
			// sequences and aliases are not editable parameters; keep
			// them as their string form so the tree still shows them
			if len(segments) > 0 {
				*out = append(*out, params.PathParam{
					Path: strings.Join(segments, "."),
					Raw:  rawString(val),
				})
			}
		}
	}
	return nil
}

func scalarValue(node *yaml.Node) interface{} {
	switch node.Tag {
	case "!!int":
		if n, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
			return n
		}
	case "!!float":
		if f, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return f
		}
	case "!!bool":
		if v, err := params.ParseInCategory(node.Value, params.CategoryBool); err == nil {
			return v.Bool()
		}
	}
	return node.Value
}

func rawString(node *yaml.Node) string {
	data, err := yaml.Marshal(node)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
