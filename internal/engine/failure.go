package engine

import (
	"fmt"
	"sort"

	"github.com/talgya/statecraft/internal/state"
)

// Failure types.
const (
	FailLossOfSovereignty = "LOSS_OF_SOVEREIGNTY"
	FailDomesticOuster    = "DOMESTIC_OUSTER"
)

// Thresholds for the terminal conditions.
const (
	sovereigntyFloor   = 20
	legitimacyFloor    = 24
	cohesionFloor      = 34
	loyaltyFloor       = 34
	unrestOusterLevel  = 72
	unrestRevoltLevel  = 88
	mediaControlRevolt = 40
)

// FailureDetails describes a terminal outcome. RecentHistory is backfilled by
// the caller from the last turns' resolution text before it reaches the
// player.
type FailureDetails struct {
	Type            string   `json:"type"`
	Title           string   `json:"title"`
	Drivers         []string `json:"drivers"`
	PointOfNoReturn string   `json:"pointOfNoReturn"`
	RecentHistory   []string `json:"recentHistory,omitempty"`
}

// EvaluateFailure checks the two terminal conditions. Called once per turn
// after all mutation; returns nil while the game is survivable.
func EvaluateFailure(w *state.WorldState) *FailureDetails {
	p := w.Player

	if p.CapitalOccupied || p.Puppet || p.Politics.Sovereignty <= sovereigntyFloor {
		return &FailureDetails{
			Type:            FailLossOfSovereignty,
			Title:           "Loss of Sovereignty",
			Drivers:         sovereigntyDrivers(w),
			PointOfNoReturn: "The moment foreign leverage stopped being something you spent and became something spent on you.",
		}
	}

	cracked := p.Politics.EliteCohesion <= cohesionFloor ||
		p.Politics.MilitaryLoyalty <= loyaltyFloor ||
		p.Politics.Unrest >= unrestOusterLevel
	if p.Politics.Legitimacy <= legitimacyFloor && cracked {
		return &FailureDetails{
			Type:            FailDomesticOuster,
			Title:           "Domestic Ouster",
			Drivers:         ousterDrivers(w),
			PointOfNoReturn: "The night the inner circle stopped returning calls and started making their own.",
		}
	}
	if p.Politics.Unrest >= unrestRevoltLevel && p.Politics.MediaControl <= mediaControlRevolt {
		return &FailureDetails{
			Type:            FailDomesticOuster,
			Title:           "Domestic Ouster",
			Drivers:         ousterDrivers(w),
			PointOfNoReturn: "When the broadcasters switched feeds to the square and never switched back.",
		}
	}
	return nil
}

type driver struct {
	text     string
	severity float64
}

func rankDrivers(ds []driver) []string {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].severity > ds[j].severity })
	if len(ds) > 3 {
		ds = ds[:3]
	}
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.text
	}
	return out
}

func sovereigntyDrivers(w *state.WorldState) []string {
	p := w.Player
	var ds []driver
	if p.CapitalOccupied {
		ds = append(ds, driver{"Enemy forces occupy the capital.", 100})
	}
	if p.Puppet {
		ds = append(ds, driver{"The government now answers to a foreign sponsor.", 95})
	}
	if p.Politics.Sovereignty <= sovereigntyFloor {
		ds = append(ds, driver{fmt.Sprintf("Sovereign control collapsed to %.0f.", p.Politics.Sovereignty), 90 - p.Politics.Sovereignty})
	}
	if w.Global.SanctionsActive {
		ds = append(ds, driver{"Sanctions hollowed out the state's independence.", 40})
	}
	if len(w.Conflicts) > 0 {
		ds = append(ds, driver{"A losing war invited intervention.", 55})
	}
	return rankDrivers(ds)
}

func ousterDrivers(w *state.WorldState) []string {
	p := w.Player
	var ds []driver
	if p.Politics.Legitimacy <= legitimacyFloor {
		ds = append(ds, driver{fmt.Sprintf("Legitimacy fell to %.0f; nobody defends the government's right to rule.", p.Politics.Legitimacy), 80 - p.Politics.Legitimacy})
	}
	if p.Politics.Unrest >= unrestOusterLevel {
		ds = append(ds, driver{fmt.Sprintf("Unrest at %.0f overwhelmed the security services.", p.Politics.Unrest), p.Politics.Unrest - 30})
	}
	if p.Politics.EliteCohesion <= cohesionFloor {
		ds = append(ds, driver{"The elite split and struck its own bargains.", 60 - p.Politics.EliteCohesion})
	}
	if p.Politics.MilitaryLoyalty <= loyaltyFloor {
		ds = append(ds, driver{"The army declined to fire on the crowds.", 65 - p.Politics.MilitaryLoyalty})
	}
	if p.Politics.MediaControl <= mediaControlRevolt {
		ds = append(ds, driver{"The state lost the information space.", 35})
	}
	return rankDrivers(ds)
}
