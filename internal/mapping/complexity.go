package mapping

import elxerrors "elavonx/internal/errors"

// Deduction weights for the complexity score. Unmapped fields have no
// dictionary entry and always need a manual transformation, so they
// count in both fractions; the two worked calibration points (1 of 3
// unmapped = 73.33, 2 of 3 unmapped = 46.67) fix both weights at 40.
const (
	unmappedWeight  = 40.0
	transformWeight = 40.0
)

// GetMigrationComplexity scores the manual porting effort for a set of
// legacy field names. score = 100 − unmappedFraction×40 −
// transformFraction×40, bucketed >70 low, 40–70 medium, <40 high.
func (r *Resolver) GetMigrationComplexity(fields []string) (ComplexityReport, error) {
	if _, err := r.current(); err != nil {
		return ComplexityReport{}, err
	}

	report := ComplexityReport{TotalFields: len(fields)}
	if len(fields) == 0 {
		report.Score = 100
		report.Level = ComplexityLow
		return report, nil
	}

	for _, field := range fields {
		fm, err := r.GetFieldMapping(field)
		if err != nil {
			if elxerrors.IsNotFound(err) {
				report.Unmapped++
				report.TransformRequired++
				report.UnmappedFields = append(report.UnmappedFields, field)
				continue
			}
			return ComplexityReport{}, err
		}
		report.Mapped++
		if fm.Deprecated {
			report.Deprecated++
		}
		if fm.Transformation != "" {
			report.TransformRequired++
		}
	}

	total := float64(report.TotalFields)
	unmappedFraction := float64(report.Unmapped) / total
	transformFraction := float64(report.TransformRequired) / total

	score := 100 - unmappedFraction*unmappedWeight - transformFraction*transformWeight
	if score < 0 {
		score = 0
	}
	report.Score = score
	report.Level = complexityLevel(score)
	return report, nil
}

func complexityLevel(score float64) ComplexityLevel {
	switch {
	case score > 70:
		return ComplexityLow
	case score >= 40:
		return ComplexityMedium
	default:
		return ComplexityHigh
	}
}
