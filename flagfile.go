// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package appbase

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// LoadFlagFile sets flags in fs from a YAML mapping of flag names to values,
// applied in document order. Sequence values are joined with commas, which
// is how pflag parses slice flags.
//
//	max_speed: 45
//	debug: true
//	topics: [planning, control]
func LoadFlagFile(fs *pflag.FlagSet, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read flag file")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return errors.Wrapf(err, "parse flag file %q", path)
	}
	if len(doc.Content) == 0 {
		return nil // empty file
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.Errorf("flag file %q: line %d: expected a mapping of flag names to values", path, root.Line)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		v, err := flagValue(value)
		if err != nil {
			return errors.Wrapf(err, "flag file %q: flag %q", path, key.Value)
		}
		if fs.Lookup(key.Value) == nil {
			return errors.Errorf("flag file %q: line %d: unknown flag %q", path, key.Line, key.Value)
		}
		if err := fs.Set(key.Value, v); err != nil {
			return errors.Wrapf(err, "flag file %q: flag %q", path, key.Value)
		}
	}
	return nil
}

func flagValue(n *yaml.Node) (string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return "", errors.Errorf("line %d: nested values are not supported", item.Line)
			}
			items = append(items, item.Value)
		}
		return strings.Join(items, ","), nil
	default:
		return "", errors.Errorf("line %d: expected a scalar or a sequence", n.Line)
	}
}
