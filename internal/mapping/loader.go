package mapping

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"sync"
	"time"

	elxerrors "elavonx/internal/errors"
)

var semverRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "PATCH": true,
}

// Resolver owns the memoized dictionary and all lookups over it.
// The dictionary is loaded once and swapped atomically on Reload;
// callers must not cache their own longer-lived copies.
type Resolver struct {
	mu     sync.RWMutex
	dict   *Dictionary
	path   string
	logger *slog.Logger
}

// NewResolver creates a resolver. path may be empty, in which case the
// builtin dictionary is used.
func NewResolver(path string, logger *slog.Logger) *Resolver {
	return &Resolver{path: path, logger: logger}
}

// Load parses and validates the dictionary on first use; subsequent
// calls return the memoized dictionary.
func (r *Resolver) Load() (*Dictionary, error) {
	r.mu.RLock()
	if r.dict != nil {
		defer r.mu.RUnlock()
		return r.dict, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.dict != nil {
		return r.dict, nil
	}
	dict, err := r.load()
	if err != nil {
		return nil, err
	}
	r.dict = dict
	return dict, nil
}

// Reload clears the memo and re-parses. The swap is atomic: lookups in
// progress complete against the pre-swap dictionary.
func (r *Resolver) Reload() (*Dictionary, error) {
	dict, err := r.load()
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.dict = dict
	r.mu.Unlock()
	r.logger.Info("Mapping dictionary reloaded", "version", dict.Version, "endpoints", len(dict.Endpoints))
	return dict, nil
}

func (r *Resolver) load() (*Dictionary, error) {
	if r.path == "" {
		dict := BuiltinDictionary()
		if err := Validate(dict); err != nil {
			return nil, err
		}
		return dict, nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, elxerrors.Wrap(elxerrors.DictionaryInvalid, "failed to read mapping dictionary", err)
	}

	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, elxerrors.Wrap(elxerrors.DictionaryInvalid, "failed to parse mapping dictionary", err)
	}
	if err := Validate(&dict); err != nil {
		return nil, err
	}
	return &dict, nil
}

// current returns the loaded dictionary, loading on first use.
func (r *Resolver) current() (*Dictionary, error) {
	return r.Load()
}

// Validate checks the dictionary structure. Validation is fail-fast: the
// first violation aborts the load and names the offending element.
func Validate(d *Dictionary) error {
	if d.Version == "" || !semverRe.MatchString(d.Version) {
		return elxerrors.New(elxerrors.DictionaryInvalid,
			fmt.Sprintf("missing or invalid \"version\" (want MAJOR.MINOR.PATCH, got %q)", d.Version))
	}
	if d.LastUpdated != "" {
		if _, err := time.Parse(time.RFC3339, d.LastUpdated); err != nil {
			return elxerrors.New(elxerrors.DictionaryInvalid,
				fmt.Sprintf("invalid \"lastUpdated\" timestamp %q", d.LastUpdated))
		}
	}
	if d.Endpoints == nil {
		return elxerrors.New(elxerrors.DictionaryInvalid, `missing or invalid "endpoints"`)
	}

	for i, ep := range d.Endpoints {
		if ep.ConvergeEndpoint == "" || ep.ElavonEndpoint == "" {
			return elxerrors.New(elxerrors.DictionaryInvalid,
				fmt.Sprintf("endpoints[%d]: both convergeEndpoint and elavonEndpoint are required", i))
		}
		if !validMethods[ep.Method] {
			return elxerrors.New(elxerrors.DictionaryInvalid,
				fmt.Sprintf("endpoints[%d] (%s): missing or invalid method %q", i, ep.ConvergeEndpoint, ep.Method))
		}
		for j, fm := range ep.FieldMappings {
			if err := validateField(fm, fmt.Sprintf("endpoints[%d].fieldMappings[%d]", i, j)); err != nil {
				return err
			}
		}
	}

	for i, fm := range d.CommonFields {
		if err := validateField(fm, fmt.Sprintf("commonFields[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateField(fm FieldMapping, where string) error {
	if fm.ConvergeField == "" {
		return elxerrors.New(elxerrors.DictionaryInvalid, where+": convergeField is required")
	}
	if fm.DataType == "" {
		return elxerrors.New(elxerrors.DictionaryInvalid,
			fmt.Sprintf("%s (%s): dataType is required", where, fm.ConvergeField))
	}
	return nil
}

// Stats summarizes the loaded dictionary.
func (r *Resolver) Stats() (Stats, error) {
	dict, err := r.current()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		Version:             dict.Version,
		LastUpdated:         dict.LastUpdated,
		Endpoints:           len(dict.Endpoints),
		CommonFields:        len(dict.CommonFields),
		TransformationRules: len(dict.TransformationRules),
		MigrationNotes:      len(dict.MigrationNotes),
	}
	for _, ep := range dict.Endpoints {
		stats.EndpointFields += len(ep.FieldMappings)
	}
	return stats, nil
}
