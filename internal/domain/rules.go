package domain

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk shape of a workspace rules override.
type rulesFile struct {
	Domains []Rule `yaml:"domains"`
}

// LoadRules reads a YAML rules file. File order is precedence order. A
// missing file yields the built-in defaults; a present-but-broken file is an
// error, since silently ignoring a team's rules would misclassify every path.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rf.Domains) == 0 {
		return DefaultRules(), nil
	}
	for i, r := range rf.Domains {
		if r.Name == "" {
			return nil, fmt.Errorf("parse rules file %s: domain %d has no name", path, i)
		}
	}
	return rf.Domains, nil
}
