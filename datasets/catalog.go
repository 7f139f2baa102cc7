// Copyright 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datasets

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/pkg/errors"
	"github.com/renstrom/fuzzysearch/fuzzy"
	"gopkg.in/yaml.v3"
)

// A Catalog maps short dataset names to CSV files. It is loaded from
// a YAML manifest of the form
//
//	datasets:
//	  airquality:
//	    path: airquality.csv
//	    description: Daily New York air quality readings, summer 1973.
//
// Relative paths are resolved against the manifest's directory.
type Catalog struct {
	dir     string
	entries map[string]catalogEntry
}

type catalogEntry struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

type catalogManifest struct {
	Datasets map[string]catalogEntry `yaml:"datasets"`
}

// LoadCatalog reads the YAML manifest at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m catalogManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if len(m.Datasets) == 0 {
		return nil, errors.Errorf("%s: manifest defines no datasets", path)
	}
	for name, e := range m.Datasets {
		if e.Path == "" {
			return nil, errors.Errorf("%s: dataset %q has no path", path, name)
		}
	}
	return &Catalog{dir: filepath.Dir(path), entries: m.Datasets}, nil
}

// Names returns the dataset names in the catalog, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the manifest description of the named dataset,
// or "" if the catalog has no such dataset.
func (c *Catalog) Description(name string) string {
	return c.entries[name].Description
}

// Path returns the resolved file path of the named dataset.
func (c *Catalog) Path(name string) (string, error) {
	e, ok := c.entries[name]
	if !ok {
		return "", c.unknown(name)
	}
	if filepath.IsAbs(e.Path) {
		return e.Path, nil
	}
	return filepath.Join(c.dir, e.Path), nil
}

// Table loads the named dataset.
func (c *Catalog) Table(name string) (*table.Table, error) {
	path, err := c.Path(name)
	if err != nil {
		return nil, err
	}
	return ReadCSVFile(path)
}

// An UnknownDatasetError reports a name with no catalog entry, along
// with the closest cataloged name if there is a plausible one.
type UnknownDatasetError struct {
	Name       string
	Suggestion string
}

func (e *UnknownDatasetError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown dataset %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown dataset %q", e.Name)
}

func (c *Catalog) unknown(name string) error {
	ranks := fuzzy.RankFindFold(name, c.Names())
	if len(ranks) == 0 {
		return &UnknownDatasetError{Name: name}
	}
	sort.Sort(ranks)
	return &UnknownDatasetError{Name: name, Suggestion: ranks[0].Target}
}
