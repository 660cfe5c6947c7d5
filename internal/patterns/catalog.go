package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	elxerrors "elavonx/internal/errors"
)

// Catalog is an immutable, compiled set of detection rules.
type Catalog struct {
	rules      []Rule
	byCategory map[Category][]Rule
}

// NewCatalog compiles a rule set into a catalog. Regex rules are compiled
// here; a malformed regex fails the whole catalog with CONFIG_INVALID.
func NewCatalog(rules []Rule) (*Catalog, error) {
	compiled := make([]Rule, len(rules))
	byCategory := make(map[Category][]Rule)

	for i, r := range rules {
		if r.Pattern == "" {
			return nil, elxerrors.New(elxerrors.ConfigInvalid,
				fmt.Sprintf("rule %q has an empty pattern", r.ID))
		}
		if !r.Literal {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, elxerrors.Wrap(elxerrors.ConfigInvalid,
					fmt.Sprintf("rule %q has a malformed regex", r.ID), err)
			}
			r.Regex = re
		}
		if r.Weight == 0 {
			r.Weight = CategoryWeight(r.Category)
		}
		compiled[i] = r
		byCategory[r.Category] = append(byCategory[r.Category], r)
	}

	return &Catalog{rules: compiled, byCategory: byCategory}, nil
}

// Rules returns the rules for a category in catalog order.
func (c *Catalog) Rules(category Category) []Rule {
	return c.byCategory[category]
}

// Stats summarizes the catalog.
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		TotalRules: len(c.rules),
		ByCategory: make(map[Category]int),
	}
	for cat, rules := range c.byCategory {
		stats.ByCategory[cat] = len(rules)
	}
	return stats
}

// active holds the process-wide catalog. Reconfiguration is an atomic
// point-in-time swap: in-flight detections keep the catalog pointer they
// started with.
var active atomic.Pointer[Catalog]

// Current returns the active catalog, initializing it to the builtin
// catalog on first use.
func Current() *Catalog {
	if c := active.Load(); c != nil {
		return c
	}
	c := BuiltinCatalog()
	if active.CompareAndSwap(nil, c) {
		return c
	}
	return active.Load()
}

// Reconfigure atomically replaces the active catalog.
func Reconfigure(c *Catalog) {
	active.Store(c)
}

// ResetToBuiltin restores the builtin catalog (used by tests and reload).
func ResetToBuiltin() {
	active.Store(BuiltinCatalog())
}

// catalogFile is the on-disk pattern configuration schema. Every section
// is optional; omitted sections fall back to the builtin rules for that
// concern.
type catalogFile struct {
	Endpoints     map[string]patternList `yaml:"endpoints" toml:"endpoints"`
	FieldPrefixes []string               `yaml:"fieldPrefixes" toml:"fieldPrefixes"`
	Hosts         []string               `yaml:"hosts" toml:"hosts"`
	CallIdioms    map[string]patternList `yaml:"callIdioms" toml:"callIdioms"`
}

type patternList struct {
	Literals []string `yaml:"literals" toml:"literals"`
	Regexes  []string `yaml:"regexes" toml:"regexes"`
}

var endpointTypes = map[string]EndpointType{
	"hosted_payments":     EndpointHostedPayments,
	"checkout":            EndpointCheckout,
	"process_transaction": EndpointProcessTransaction,
	"batch_processing":    EndpointBatchProcessing,
	"device_management":   EndpointDeviceManagement,
}

// LoadCatalogFile reads a YAML or TOML pattern configuration and compiles
// it into a catalog. The file overrides builtin rules per section.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, elxerrors.Wrap(elxerrors.ConfigInvalid, "failed to read pattern catalog", err)
	}

	var cf catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, elxerrors.Wrap(elxerrors.ConfigInvalid, "failed to parse YAML pattern catalog", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cf); err != nil {
			return nil, elxerrors.Wrap(elxerrors.ConfigInvalid, "failed to parse TOML pattern catalog", err)
		}
	default:
		return nil, elxerrors.New(elxerrors.ConfigInvalid,
			fmt.Sprintf("unsupported pattern catalog format %q (want .yaml or .toml)", filepath.Ext(path)))
	}

	return cf.compile()
}

// compile merges the file sections with builtin defaults and compiles.
func (cf *catalogFile) compile() (*Catalog, error) {
	var rules []Rule

	if len(cf.Endpoints) > 0 {
		for family, list := range cf.Endpoints {
			et, ok := endpointTypes[family]
			if !ok {
				return nil, elxerrors.New(elxerrors.ConfigInvalid,
					fmt.Sprintf("unknown endpoint family %q", family))
			}
			for i, lit := range list.Literals {
				rules = append(rules, Rule{
					ID:       fmt.Sprintf("%s_literal_%d", family, i),
					Category: CategoryEndpoint,
					Endpoint: et,
					Pattern:  lit,
					Literal:  true,
				})
			}
			for i, re := range list.Regexes {
				rules = append(rules, Rule{
					ID:       fmt.Sprintf("%s_regex_%d", family, i),
					Category: CategoryEndpoint,
					Endpoint: et,
					Pattern:  re,
				})
			}
		}
	} else {
		rules = append(rules, builtinCategory(CategoryEndpoint)...)
	}

	if len(cf.FieldPrefixes) > 0 {
		for i, prefix := range cf.FieldPrefixes {
			rules = append(rules, Rule{
				ID:       fmt.Sprintf("field_prefix_%d", i),
				Category: CategorySslField,
				Pattern:  `\b` + regexp.QuoteMeta(prefix) + `[A-Za-z0-9_]+`,
			})
		}
	} else {
		rules = append(rules, builtinCategory(CategorySslField)...)
	}

	if len(cf.Hosts) > 0 {
		for i, host := range cf.Hosts {
			rules = append(rules, Rule{
				ID:       fmt.Sprintf("host_%d", i),
				Category: CategoryURL,
				Pattern:  `https?://[A-Za-z0-9._-]*` + regexp.QuoteMeta(host) + `[^\s"'` + "`" + `]*`,
			})
		}
	} else {
		rules = append(rules, builtinCategory(CategoryURL)...)
	}

	if len(cf.CallIdioms) > 0 {
		for lang, list := range cf.CallIdioms {
			for i, lit := range list.Literals {
				rules = append(rules, Rule{
					ID:        fmt.Sprintf("%s_call_literal_%d", lang, i),
					Category:  CategoryAPICall,
					Pattern:   lit,
					Literal:   true,
					Languages: []string{lang},
				})
			}
			for i, re := range list.Regexes {
				rules = append(rules, Rule{
					ID:        fmt.Sprintf("%s_call_regex_%d", lang, i),
					Category:  CategoryAPICall,
					Pattern:   re,
					Languages: []string{lang},
				})
			}
		}
	} else {
		rules = append(rules, builtinCategory(CategoryAPICall)...)
	}

	return NewCatalog(rules)
}

func builtinCategory(c Category) []Rule {
	var out []Rule
	for _, r := range builtinRules {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}
