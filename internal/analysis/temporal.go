package analysis

import (
	"time"

	"ragdebug/internal/domain"
)

// Risk levels for temporal cohesion of a feature vector.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

const (
	mediumRiskSpread = 5 * time.Minute
	highRiskSpread   = time.Hour
)

// SLOReport summarizes the serving-latency metadata of a lookup.
type SLOReport struct {
	Eligible                 bool
	ServerTimeSeconds        float64
	SLOServerTimeSeconds     float64
	StoreResponseTimeSeconds float64
}

// TemporalReport describes how far apart in time the features in a
// vector were computed. A wide spread means the context mixes fresh and
// stale data and may be logically inconsistent.
type TemporalReport struct {
	FeatureTimestamps map[string]time.Time
	MinEffectiveTime  time.Time
	MaxEffectiveTime  time.Time
	TimeSpreadSeconds float64
	RiskLevel         string
}

// VectorReport is the freshness-oriented view of a feature vector,
// separate from the retrieved-context health analysis.
type VectorReport struct {
	Features map[string]any
	SLO      *SLOReport
	Temporal *TemporalReport
}

// AnalyzeFeatureVector inspects the raw feature values, SLO metadata
// and effective times of a vector. The temporal section requires at
// least two timestamped features; otherwise it is omitted.
func AnalyzeFeatureVector(fv *domain.FeatureVector) VectorReport {
	if fv == nil {
		return VectorReport{Features: map[string]any{}}
	}

	report := VectorReport{Features: fv.Features}
	if report.Features == nil {
		report.Features = map[string]any{}
	}

	if fv.SLO != nil {
		report.SLO = &SLOReport{
			Eligible:                 fv.SLO.Eligible,
			ServerTimeSeconds:        fv.SLO.ServerTimeSeconds,
			SLOServerTimeSeconds:     fv.SLO.SLOServerTimeSeconds,
			StoreResponseTimeSeconds: fv.SLO.StoreResponseTimeSeconds,
		}
	}

	if len(fv.EffectiveTimes) >= 2 {
		report.Temporal = temporalCohesion(fv.EffectiveTimes)
	}
	return report
}

func temporalCohesion(effectiveTimes map[string]time.Time) *TemporalReport {
	var minTime, maxTime time.Time
	first := true
	for _, ts := range effectiveTimes {
		if first {
			minTime, maxTime = ts, ts
			first = false
			continue
		}
		if ts.Before(minTime) {
			minTime = ts
		}
		if ts.After(maxTime) {
			maxTime = ts
		}
	}

	spread := maxTime.Sub(minTime)
	risk := RiskLow
	switch {
	case spread >= highRiskSpread:
		risk = RiskHigh
	case spread >= mediumRiskSpread:
		risk = RiskMedium
	}

	timestamps := make(map[string]time.Time, len(effectiveTimes))
	for name, ts := range effectiveTimes {
		timestamps[name] = ts
	}
	return &TemporalReport{
		FeatureTimestamps: timestamps,
		MinEffectiveTime:  minTime,
		MaxEffectiveTime:  maxTime,
		TimeSpreadSeconds: spread.Seconds(),
		RiskLevel:         risk,
	}
}
