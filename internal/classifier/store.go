package classifier

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/fintrack/internal/logging"
)

// tableFile is the on-disk structure of the keyword table YAML file.
type tableFile struct {
	Categories []Rule `yaml:"categories"`
}

// TableStore loads keyword tables from YAML files, falling back to the
// built-in default table when no file is configured or present.
type TableStore struct {
	Path   string
	logger logging.Logger
}

// NewTableStore creates a store for the given table file path. An empty
// path means "use the defaults".
func NewTableStore(path string, logger logging.Logger) *TableStore {
	return &TableStore{Path: path, logger: logger}
}

// LoadRules reads the configured keyword table. A missing file is not an
// error; the default table is returned instead.
func (s *TableStore) LoadRules() ([]Rule, error) {
	if s.Path == "" {
		return DefaultRules(), nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			if s.logger != nil {
				s.logger.WithField("path", s.Path).Warn("Keyword table not found, using defaults")
			}
			return DefaultRules(), nil
		}
		return nil, fmt.Errorf("error reading keyword table: %w", err)
	}

	var table tableFile
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("error parsing keyword table %s: %w", s.Path, err)
	}
	if len(table.Categories) == 0 {
		return DefaultRules(), nil
	}

	if s.logger != nil {
		s.logger.WithField("count", len(table.Categories)).Debug("Loaded keyword table")
	}
	return table.Categories, nil
}

// SaveRules writes a keyword table back to the configured path, creating
// the parent directory as needed.
func (s *TableStore) SaveRules(rules []Rule) error {
	if s.Path == "" {
		return fmt.Errorf("no keyword table path configured")
	}

	data, err := yaml.Marshal(tableFile{Categories: rules})
	if err != nil {
		return fmt.Errorf("error marshaling keyword table: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("error writing keyword table: %w", err)
	}
	return nil
}

// DefaultRules returns the built-in keyword table. Rule order matters:
// earlier rules win when a keyword appears twice.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Groceries", Keywords: []string{"food", "supermarket", "grocery", "groceries", "market"}},
		{Category: "Rent", Keywords: []string{"rent", "landlord", "lease"}},
		{Category: "Utilities", Keywords: []string{"electricity", "water", "gas", "internet", "utility"}},
		{Category: "Entertainment", Keywords: []string{"movie", "cinema", "trip", "concert", "netflix"}},
		{Category: "Transportation", Keywords: []string{"bus", "car", "fuel", "uber", "taxi", "train", "ticket"}},
		{Category: "Shopping", Keywords: []string{"clothes", "shopping", "shoes", "mall"}},
		{Category: "Health", Keywords: []string{"hospital", "medication", "drugs", "pharmacy", "doctor"}},
		{Category: "Salary", Keywords: []string{"salary", "paycheck", "payroll", "wages"}},
	}
}

// NewDefaultClassifier builds a KeywordClassifier over the built-in table.
func NewDefaultClassifier() *KeywordClassifier {
	return NewKeywordClassifier(DefaultRules())
}
