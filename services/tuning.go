package services

// Tuning gathers every heuristic constant of the pipeline in one place so
// future tuning never touches algorithm code. All weights and thresholds
// are fixed design parameters at runtime; only tests and experiments
// override them.
type Tuning struct {
	// Consumption resolver
	BaseConfidence          float64 // floor added before the weighted terms
	CompletenessWeight      float64
	ProfileConfidenceWeight float64
	RecencyWeight           float64
	SourceWeight            float64
	RecencyDecayDays        float64 // e^(-ageDays/decay)
	RecencyFloor            float64
	MissingProfileScore     float64 // confidence and recency when no profile exists
	MinServingScale         float64 // guards against near-zero serving counts

	// Analytics engine
	DefaultWindowDays     int
	RecentWindowDays      int
	AnomalyMinPoints      int
	AnomalyZThreshold     float64
	DayCoverageWeight     float64
	MacroCoverageWeight   float64
	ProfileMatchWeight    float64
	ConfidenceBlendWeight float64
	LogConfidenceShare    float64 // log vs profile share inside the blend
	ProfileConfShare      float64

	// Consumption modeler
	ModelWindowDays      int
	ModelVolumeRows      float64 // row count at which volume confidence saturates
	ModelRowConfWeight   float64
	ModelVolumeWeight    float64
	ModelStabilityWeight float64

	// Alert engine
	MinReliability      float64 // below this, nutrient alerting is skipped entirely
	LowTrustReliability float64
	LowTrustMagnitude   float64
	DeficiencyGap       float64 // targetGapRatio below this flags a deficiency
	ExcessGap           float64 // targetGapRatio above this flags an excess
	ZScoreMagnitude     float64 // z contribution to severity magnitude
	CriticalMagnitude   float64
	HighMagnitude       float64
	MediumMagnitude     float64
	LowMagnitude        float64
	ExpiryLookaheadDays int
}

// DefaultTuning returns the production constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseConfidence:          0.15,
		CompletenessWeight:      0.35,
		ProfileConfidenceWeight: 0.25,
		RecencyWeight:           0.15,
		SourceWeight:            0.10,
		RecencyDecayDays:        120,
		RecencyFloor:            0.5,
		MissingProfileScore:     0.45,
		MinServingScale:         0.1,

		DefaultWindowDays:     56,
		RecentWindowDays:      7,
		AnomalyMinPoints:      7,
		AnomalyZThreshold:     2.2,
		DayCoverageWeight:     0.35,
		MacroCoverageWeight:   0.25,
		ProfileMatchWeight:    0.20,
		ConfidenceBlendWeight: 0.20,
		LogConfidenceShare:    0.65,
		ProfileConfShare:      0.35,

		ModelWindowDays:      42,
		ModelVolumeRows:      14,
		ModelRowConfWeight:   0.6,
		ModelVolumeWeight:    0.25,
		ModelStabilityWeight: 0.15,

		MinReliability:      0.35,
		LowTrustReliability: 0.4,
		LowTrustMagnitude:   0.9,
		DeficiencyGap:       -0.2,
		ExcessGap:           0.2,
		ZScoreMagnitude:     0.16,
		CriticalMagnitude:   1.1,
		HighMagnitude:       0.8,
		MediumMagnitude:     0.45,
		LowMagnitude:        0.25,
		ExpiryLookaheadDays: 3,
	}
}
