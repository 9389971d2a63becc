package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sphereconfig/pkg/logging"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	environmentsDir = "environments"
	schemaBaseName  = "schema"

	// RootEnvVar overrides the default configuration root.
	RootEnvVar = "SPHERE_CONFIG_ROOT"
)

// documentExtensions is the lookup order when resolving a document by name.
var documentExtensions = []string{".json", ".jsonc", ".yaml", ".yml"}

// DefaultRoot returns the configuration root used when none is given explicitly:
// $SPHERE_CONFIG_ROOT if set, otherwise the current directory.
func DefaultRoot() string {
	if root := os.Getenv(RootEnvVar); root != "" {
		return root
	}
	return "."
}

// Store resolves environment and schema documents below a single
// configuration root:
//
//	<root>/environments/<name>.json|.jsonc|.yaml|.yml
//	<root>/schema.json|.jsonc|.yaml|.yml
type Store struct {
	root string
}

// NewStore creates a Store reading documents below root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// LoadEnvironment returns the environment document for the named tier.
// An unknown name yields an *EnvironmentNotFoundError; a document lacking
// config_version, server_url or enrollment_api_key yields a *MissingFieldError.
func (s *Store) LoadEnvironment(name string) (EnvironmentDocument, error) {
	dir := filepath.Join(s.root, environmentsDir)
	if name == "" || filepath.Base(name) != name || strings.HasPrefix(name, ".") {
		return EnvironmentDocument{}, &EnvironmentNotFoundError{Name: name, Path: dir}
	}

	path, err := findDocument(dir, name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EnvironmentDocument{}, &EnvironmentNotFoundError{Name: name, Path: filepath.Join(dir, name+".json")}
		}
		return EnvironmentDocument{}, err
	}

	var doc EnvironmentDocument
	if err := decodeFile(path, &doc); err != nil {
		return EnvironmentDocument{}, err
	}
	if missing := doc.missingRequired(); len(missing) > 0 {
		return EnvironmentDocument{}, &MissingFieldError{Path: path, Fields: missing}
	}
	doc.Name = name

	logging.Info("ConfigStore", "Loaded environment %s from %s", name, path)
	return doc, nil
}

// LoadSchema returns the schema document. A missing schema is not an error:
// it yields an empty document, meaning no required-field constraints.
func (s *Store) LoadSchema() (SchemaDocument, error) {
	path, err := findDocument(s.root, schemaBaseName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigStore", "No schema found in %s, skipping required-field checks", s.root)
			return SchemaDocument{}, nil
		}
		return SchemaDocument{}, err
	}

	var schema SchemaDocument
	if err := decodeFile(path, &schema); err != nil {
		return SchemaDocument{}, err
	}

	logging.Info("ConfigStore", "Loaded schema from %s (%d required fields)", path, len(schema.Required))
	return schema, nil
}

// ListEnvironments returns the sorted names of all environment documents
// below the root. A missing environments directory yields an empty list.
func (s *Store) ListEnvironments() ([]string, error) {
	dir := filepath.Join(s.root, environmentsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list environments in %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if !isDocumentExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	logging.Debug("ConfigStore", "Listed %d environments in %s", len(names), dir)
	return names, nil
}

// findDocument returns the first existing file dir/base+ext in lookup order.
func findDocument(dir, base string) (string, error) {
	for _, ext := range documentExtensions {
		path := filepath.Join(dir, base+ext)
		info, err := os.Stat(path)
		if err == nil {
			if info.IsDir() {
				continue
			}
			return path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", os.ErrNotExist
}

func isDocumentExtension(ext string) bool {
	for _, known := range documentExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// decodeFile reads a JSON (comments and trailing commas tolerated) or YAML
// document into out, choosing the decoder by file extension.
func decodeFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), out)
	}
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	return nil
}
