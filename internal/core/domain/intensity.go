package domain

// FeatureWindow is the acoustic target for one intensity level.
type FeatureWindow struct {
	MinTempo     float64 `json:"min_tempo"`
	MaxTempo     float64 `json:"max_tempo"`
	TargetEnergy float64 `json:"target_energy"`
	MinValence   float64 `json:"min_valence"`
	MaxValence   float64 `json:"max_valence"`
}

// EnergyTolerance is how far from TargetEnergy a strict match may stray.
const EnergyTolerance = 0.2

var intensityWindows = map[Intensity]FeatureWindow{
	IntensityLow:    {MinTempo: 80, MaxTempo: 110, TargetEnergy: 0.3, MinValence: 0.3, MaxValence: 0.6},
	IntensityMedium: {MinTempo: 110, MaxTempo: 130, TargetEnergy: 0.55, MinValence: 0.4, MaxValence: 0.7},
	IntensityHigh:   {MinTempo: 130, MaxTempo: 170, TargetEnergy: 0.9, MinValence: 0.6, MaxValence: 1.0},
}

// WindowFor returns the feature window of a normalized intensity.
func WindowFor(i Intensity) (FeatureWindow, bool) {
	w, ok := intensityWindows[i]
	return w, ok
}

// InTempo reports whether tempo falls inside the window's tempo range.
func (w FeatureWindow) InTempo(tempo float64) bool {
	return tempo >= w.MinTempo && tempo <= w.MaxTempo
}

// Matches reports whether f satisfies every bound of the window.
func (w FeatureWindow) Matches(f AudioFeatures) bool {
	return w.InTempo(f.Tempo) &&
		f.Energy >= w.TargetEnergy-EnergyTolerance &&
		f.Energy <= w.TargetEnergy+EnergyTolerance &&
		f.Valence >= w.MinValence &&
		f.Valence <= w.MaxValence
}
