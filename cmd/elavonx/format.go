package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ScanResponseCLI:
		return formatScanHuman(v)
	case *SearchResponseCLI:
		return formatSearchHuman(v)
	case *FieldResponseCLI:
		return formatFieldHuman(v)
	case *EndpointResponseCLI:
		return formatEndpointHuman(v)
	case *GenerateResponseCLI:
		return formatGenerateHuman(v)
	case *ComplexityResponseCLI:
		return formatComplexityHuman(v)
	case *MappingsResponseCLI:
		return formatMappingsHuman(v)
	case *CacheResponseCLI:
		return formatCacheHuman(v)
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatScanHuman(resp *ScanResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scan of %s\n", resp.Root))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	if resp.Partial {
		b.WriteString("! Scan was cancelled; results are partial.\n\n")
	}
	b.WriteString(fmt.Sprintf("Files scanned: %d (cache hits: %d, skipped: %d)\n", resp.ScannedFiles, resp.CacheHits, resp.SkippedFiles))
	b.WriteString(fmt.Sprintf("Duration: %dms\n", resp.DurationMs))
	b.WriteString(fmt.Sprintf("Endpoint usages: %d\n\n", len(resp.Endpoints)))

	if len(resp.ByType) > 0 {
		b.WriteString("By endpoint family:\n")
		for _, entry := range resp.ByType {
			b.WriteString(fmt.Sprintf("  %-20s %d\n", entry.EndpointType, entry.Count))
		}
		b.WriteString("\n")
	}

	if len(resp.Analyses) > 0 {
		b.WriteString("Migration analysis:\n")
		for _, a := range resp.Analyses {
			b.WriteString(fmt.Sprintf("  %s: %.2f (%s), %d/%d fields mapped\n",
				a.EndpointType, a.Complexity.Score, a.Complexity.Level, a.Complexity.Mapped, a.Complexity.TotalFields))
		}
		b.WriteString("\n")
	}

	for i, rec := range resp.Endpoints {
		b.WriteString(fmt.Sprintf("%d. %s:%d (%s, %s)\n", i+1, rec.FilePath, rec.LineNumber, rec.EndpointType, rec.Language))
		if len(rec.SslFields) > 0 {
			b.WriteString(fmt.Sprintf("   Fields: %s\n", strings.Join(rec.SslFields, ", ")))
		}
	}

	return b.String(), nil
}

func formatSearchHuman(resp *SearchResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Mapping search: %s\n", resp.Term))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Found %d matches\n\n", resp.TotalMatches))

	for i, res := range resp.Results {
		b.WriteString(fmt.Sprintf("%d. [%s] %s -> %s (%.2f)\n", i+1, res.Kind, res.Source, res.Target, res.Confidence))
	}

	return b.String(), nil
}

func formatFieldHuman(resp *FieldResponseCLI) (string, error) {
	var b strings.Builder

	fm := resp.Mapping
	b.WriteString(fmt.Sprintf("Field: %s\n", fm.ConvergeField))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Elavon field: %s\n", fm.ElavonField))
	b.WriteString(fmt.Sprintf("Data type:    %s\n", fm.DataType))
	b.WriteString(fmt.Sprintf("Required:     %v\n", fm.Required))
	if fm.MaxLength > 0 {
		b.WriteString(fmt.Sprintf("Max length:   %d\n", fm.MaxLength))
	}
	if fm.Transformation != "" {
		b.WriteString(fmt.Sprintf("Transform:    %s\n", fm.Transformation))
	}
	if fm.Deprecated {
		b.WriteString("! This field is deprecated in the Elavon API.\n")
	}

	return b.String(), nil
}

func formatEndpointHuman(resp *EndpointResponseCLI) (string, error) {
	var b strings.Builder

	ep := resp.Mapping
	b.WriteString(fmt.Sprintf("Endpoint: %s\n", ep.ConvergeEndpoint))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Elavon endpoint: %s %s\n", ep.Method, ep.ElavonEndpoint))
	if ep.Description != "" {
		b.WriteString(fmt.Sprintf("Description:     %s\n", ep.Description))
	}
	if len(ep.FieldMappings) > 0 {
		b.WriteString("\nField mappings:\n")
		for _, fm := range ep.FieldMappings {
			b.WriteString(fmt.Sprintf("  %-24s -> %s\n", fm.ConvergeField, fm.ElavonField))
		}
	}

	return b.String(), nil
}

func formatGenerateHuman(resp *GenerateResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Migration snippet (%s):\n\n", resp.Language))
	b.WriteString(resp.Code + "\n")

	return b.String(), nil
}

func formatComplexityHuman(resp *ComplexityResponseCLI) (string, error) {
	var b strings.Builder

	r := resp.Report
	b.WriteString("Migration Complexity\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Score: %.2f (%s)\n\n", r.Score, r.Level))
	b.WriteString(fmt.Sprintf("Fields:             %d\n", r.TotalFields))
	b.WriteString(fmt.Sprintf("Mapped:             %d\n", r.Mapped))
	b.WriteString(fmt.Sprintf("Unmapped:           %d\n", r.Unmapped))
	b.WriteString(fmt.Sprintf("Deprecated:         %d\n", r.Deprecated))
	b.WriteString(fmt.Sprintf("Transform required: %d\n", r.TransformRequired))
	if len(r.UnmappedFields) > 0 {
		b.WriteString(fmt.Sprintf("\nUnmapped fields: %s\n", strings.Join(r.UnmappedFields, ", ")))
	}

	return b.String(), nil
}

func formatMappingsHuman(resp *MappingsResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Mapping Dictionary\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	if resp.Reloaded {
		b.WriteString("Dictionary reloaded.\n\n")
	}
	b.WriteString(fmt.Sprintf("Version:       %s (updated %s)\n", resp.Stats.Version, resp.Stats.LastUpdated))
	b.WriteString(fmt.Sprintf("Endpoints:     %d (%d endpoint-scoped fields)\n", resp.Stats.Endpoints, resp.Stats.EndpointFields))
	b.WriteString(fmt.Sprintf("Common fields: %d\n", resp.Stats.CommonFields))
	b.WriteString(fmt.Sprintf("Transforms:    %d\n", resp.Stats.TransformationRules))
	b.WriteString(fmt.Sprintf("Notes:         %d\n", resp.Stats.MigrationNotes))

	return b.String(), nil
}

func formatCacheHuman(resp *CacheResponseCLI) (string, error) {
	var b strings.Builder

	b.WriteString("Scan Cache\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	if resp.Cleared {
		b.WriteString("Cache cleared.\n\n")
	}
	b.WriteString(fmt.Sprintf("In-memory entries: %d\n", resp.Memory.Entries))
	b.WriteString(fmt.Sprintf("Lookups:           %d\n", resp.Memory.Lookups))
	b.WriteString(fmt.Sprintf("Hits:              %d (%.1f%%)\n", resp.Memory.Hits, resp.Memory.HitRate*100))
	if resp.Persistent != nil {
		b.WriteString(fmt.Sprintf("Persistent entries: %d (%s)\n", resp.Persistent.Entries, formatBytes(resp.Persistent.SizeBytes)))
	}

	return b.String(), nil
}

// formatBytes formats byte size in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
