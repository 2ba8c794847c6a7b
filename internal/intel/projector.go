// Package intel converts hidden truth into the noisy, confidence-tagged
// estimates the player actually sees. Projections are recomputed from scratch
// on every snapshot build and never persisted as truth.
package intel

import (
	"github.com/talgya/statecraft/internal/mathx"
	"github.com/talgya/statecraft/internal/rng"
	"github.com/talgya/statecraft/internal/state"
)

// Confidence is the player-facing certainty band on an estimate.
type Confidence string

const (
	ConfidenceLow  Confidence = "LOW"
	ConfidenceMed  Confidence = "MED"
	ConfidenceHigh Confidence = "HIGH"
)

// ObservedMetric is one projected scalar: a rounded estimate, a confidence
// band, and the drivers the analysts are willing to name.
type ObservedMetric struct {
	EstimatedValue int        `json:"estimatedValue"`
	Confidence     Confidence `json:"confidence"`
	KnownDrivers   []string   `json:"knownDrivers,omitempty"`
}

// Sigma bands for confidence annotation.
const (
	sigmaHigh = 4.0
	sigmaMed  = 9.0
)

// warFog is the average conflict front intensity, 0–1. Active fighting blinds
// your own services as much as anyone's.
func warFog(w *state.WorldState) float64 {
	total, fronts := 0.0, 0
	for _, c := range w.Conflicts {
		for _, f := range c.Fronts {
			total += f.Intensity
			fronts++
		}
	}
	if fronts == 0 {
		return 0
	}
	return mathx.Clamp01(total / float64(fronts) / 100)
}

// deceptionPressure estimates how hard hostile actors are working your
// information space, 0–1: escalation appetite and distrust, amplified when
// the world is watching.
func deceptionPressure(w *state.WorldState) float64 {
	pressure := 0.0
	for _, id := range state.AllActors() {
		a := w.Actors[id]
		if a.Posture != state.PostureHostile {
			continue
		}
		pressure += (a.EscalationWillingness/100)*0.6 + ((100-a.Trust)/100)*0.4
	}
	pressure *= 0.5 // two hostile powers saturate
	amp := 1 + 0.5*(w.Global.Attention/100)
	return mathx.Clamp01(pressure * amp)
}

// IntelQuality01 is the derived 0–1 quality of the player's picture of their
// own country: service capacity and media reach help, fog and deception hurt.
func IntelQuality01(w *state.WorldState) float64 {
	capacity := w.Player.Institutions.IntelCapacity / 100
	media := w.Player.Politics.MediaControl / 100
	q := 0.65*capacity + 0.35*media
	q -= 0.30 * warFog(w)
	q -= 0.25 * deceptionPressure(w)
	return mathx.Clamp01(q)
}

// ObserveOptions tunes one metric projection.
type ObserveOptions struct {
	// KnownDrivers is flavor the analysts attach to the estimate.
	KnownDrivers []string
	// ExtraUncertainty widens sigma for metrics that are inherently hard to
	// count (e.g. unrest).
	ExtraUncertainty float64
}

// ObserveMetric projects one true 0–100 value into a player-visible estimate.
// Noise draws come from r, a fork of the world stream, so observation never
// advances authoritative state. Low intel quality under deception can also
// overstate confidence by one band: the worst failures arrive well-labeled.
func ObserveMetric(w *state.WorldState, r *rng.State, trueValue float64, opts ObserveOptions) ObservedMetric {
	q := IntelQuality01(w)
	fog := warFog(w)
	deception := deceptionPressure(w)

	sigma := 2.0 + 9.0*(1-q) + 5.0*fog + 4.0*deception + opts.ExtraUncertainty

	estimate := trueValue + r.NormalApprox()*sigma

	// Gross misread: a rare, large additional error when quality is poor and
	// someone is actively feeding you a picture.
	if r.Chance(0.06 * (1 - q) * (0.5 + deception)) {
		swing := 15 + 20*r.Float01()
		if r.Chance(0.5) {
			swing = -swing
		}
		estimate += swing
	}

	conf := ConfidenceLow
	switch {
	case sigma <= sigmaHigh:
		conf = ConfidenceHigh
	case sigma <= sigmaMed:
		conf = ConfidenceMed
	}

	// False confidence: occasionally report one band better than warranted.
	if conf != ConfidenceHigh && q < 0.4 && deception > 0.3 && r.Chance(0.15) {
		if conf == ConfidenceLow {
			conf = ConfidenceMed
		} else {
			conf = ConfidenceHigh
		}
	}

	return ObservedMetric{
		EstimatedValue: mathx.RoundInt(mathx.Clamp100(estimate)),
		Confidence:     conf,
		KnownDrivers:   opts.KnownDrivers,
	}
}
