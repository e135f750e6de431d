// Package docs embeds the user documentation shown by 'simtrade topic'.
//
// Each markdown file is a topic named after the file. readme.md is the index
// and is not a topic itself.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

const index = "readme"

// All matches every topic in Topic and Topics.
const All = "*"

// Topic returns the markdown of a topic, or of every topic for All.
func Topic(name string) (string, error) {
	if name == All {
		return Topics(All)
	}
	content, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics concatenates the markdown of the given topics, expanding All.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			var err error
			if expanded, err = Names(); err != nil {
				return "", err
			}
		}
		for _, n := range expanded {
			content, err := Topic(n)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// Index returns the topic index.
func Index() (string, error) {
	content, err := files.ReadFile(index + ".md")
	return string(content), err
}

// Names lists the topics in alphabetical order.
func Names() ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
