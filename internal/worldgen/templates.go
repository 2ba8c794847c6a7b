// Package worldgen builds a new hidden world from a seed: a region template
// draw, correlated starting scalars, and the six external powers with their
// objectives. Everything downstream of the seed flows through the world's own
// random stream.
package worldgen

// Range is an inclusive bounded draw range for a starting scalar.
type Range struct {
	Lo, Hi float64
}

// EconRanges are the starting bands for economy metrics.
type EconRanges struct {
	Stability, Inflation, Unemployment, DebtStress Range
}

// MilRanges are the starting bands for military metrics.
type MilRanges struct {
	Readiness, Logistics, Tech, AirDefense, Cyber Range
}

// PolRanges are the starting bands for politics metrics.
type PolRanges struct {
	Legitimacy, EliteCohesion, MilitaryLoyalty, PublicApproval Range
	MediaControl, Corruption, WarSupport, Unrest               Range
	Sovereignty, GlobalCredibility                             Range
}

// InstRanges are the starting bands for institutional capacity.
type InstRanges struct {
	IntelCapacity, Bureaucracy, RuleOfLaw Range
}

// TensionRanges are the starting bands for internal tensions.
type TensionRanges struct {
	Ethnic, Border, Separatist Range
}

// ResourceRanges are the starting bands for strategic resources.
type ResourceRanges struct {
	EnergySecurity, FoodSecurity, Reserves Range
}

// Template is one region archetype. The generator picks exactly one per game.
type Template struct {
	Region       string
	NamePool     []string
	GeoPool      []string
	NeighborSets [][]string
	RegimePool   []string

	// Display names for the two regional-power actor slots.
	RivalName  string
	PatronName string

	Econ      EconRanges
	Mil       MilRanges
	Pol       PolRanges
	Inst      InstRanges
	Tensions  TensionRanges
	Resources ResourceRanges
}

// catalog is the fixed region catalog. Order matters: the template draw
// indexes into it, so reordering changes every seed's world.
var catalog = []Template{
	{
		Region: "Caspian Rim",
		NamePool: []string{
			"Zakaristan", "Velgoria", "Qaravia", "Tharkand", "Aralem",
		},
		GeoPool: []string{
			"a landlocked plateau republic squeezed between the steppe and the mountains, its lifelines two pipelines and one rail corridor",
			"an arid basin state ringed by ridgelines, rich in gas and short on water",
			"a crossroads country on the old caravan routes, its valleys fertile and its borders drawn by someone else",
		},
		NeighborSets: [][]string{
			{"Russia", "Iran", "Turkmenia", "the Khorat Federation"},
			{"Russia", "the Aral League", "Iran"},
		},
		RegimePool: []string{
			"presidential republic with managed elections",
			"post-Soviet strongman state",
			"military-backed caretaker government",
		},
		RivalName:  "Khorat Federation",
		PatronName: "Aral League",
		Econ: EconRanges{
			Stability:    Range{38, 58},
			Inflation:    Range{35, 60},
			Unemployment: Range{30, 55},
			DebtStress:   Range{40, 65},
		},
		Mil: MilRanges{
			Readiness:  Range{35, 60},
			Logistics:  Range{30, 55},
			Tech:       Range{25, 45},
			AirDefense: Range{30, 55},
			Cyber:      Range{20, 40},
		},
		Pol: PolRanges{
			Legitimacy:        Range{40, 62},
			EliteCohesion:     Range{45, 70},
			MilitaryLoyalty:   Range{50, 75},
			PublicApproval:    Range{35, 58},
			MediaControl:      Range{50, 78},
			Corruption:        Range{45, 72},
			WarSupport:        Range{25, 45},
			Unrest:            Range{20, 42},
			Sovereignty:       Range{55, 78},
			GlobalCredibility: Range{32, 52},
		},
		Inst: InstRanges{
			IntelCapacity: Range{40, 65},
			Bureaucracy:   Range{30, 55},
			RuleOfLaw:     Range{22, 45},
		},
		Tensions: TensionRanges{
			Ethnic:     Range{30, 60},
			Border:     Range{35, 65},
			Separatist: Range{20, 50},
		},
		Resources: ResourceRanges{
			EnergySecurity: Range{55, 80},
			FoodSecurity:   Range{35, 60},
			Reserves:       Range{25, 50},
		},
	},
	{
		Region: "Western Balkans",
		NamePool: []string{
			"Vardania", "Morzenia", "Ostrevo", "Danubria", "Silistra",
		},
		GeoPool: []string{
			"a mountainous republic on the Adriatic watershed, half its diaspora abroad and half its politics run from café tables",
			"a river-valley state straddling the old imperial frontier, candidate for everything and member of nothing",
			"a small highland country whose borders were settled by a conference nobody local attended",
		},
		NeighborSets: [][]string{
			{"Serbia", "the Morava Compact", "Greece", "the Illyrian Union"},
			{"Hungary", "the Morava Compact", "the Illyrian Union"},
		},
		RegimePool: []string{
			"fragile parliamentary coalition",
			"stabilitocracy under a dominant party",
			"technocratic caretaker cabinet",
		},
		RivalName:  "Morava Compact",
		PatronName: "Illyrian Union",
		Econ: EconRanges{
			Stability:    Range{42, 62},
			Inflation:    Range{28, 50},
			Unemployment: Range{38, 62},
			DebtStress:   Range{45, 70},
		},
		Mil: MilRanges{
			Readiness:  Range{25, 45},
			Logistics:  Range{28, 50},
			Tech:       Range{30, 52},
			AirDefense: Range{22, 42},
			Cyber:      Range{28, 50},
		},
		Pol: PolRanges{
			Legitimacy:        Range{42, 65},
			EliteCohesion:     Range{38, 62},
			MilitaryLoyalty:   Range{55, 78},
			PublicApproval:    Range{35, 60},
			MediaControl:      Range{35, 60},
			Corruption:        Range{48, 75},
			WarSupport:        Range{15, 32},
			Unrest:            Range{25, 48},
			Sovereignty:       Range{60, 82},
			GlobalCredibility: Range{38, 58},
		},
		Inst: InstRanges{
			IntelCapacity: Range{32, 55},
			Bureaucracy:   Range{38, 60},
			RuleOfLaw:     Range{32, 55},
		},
		Tensions: TensionRanges{
			Ethnic:     Range{45, 75},
			Border:     Range{30, 58},
			Separatist: Range{35, 65},
		},
		Resources: ResourceRanges{
			EnergySecurity: Range{30, 55},
			FoodSecurity:   Range{50, 75},
			Reserves:       Range{30, 55},
		},
	},
	{
		Region: "Horn of Africa",
		NamePool: []string{
			"Asharal", "Gedonia", "Marsabia", "Oborno", "Keflan",
		},
		GeoPool: []string{
			"a Red Sea littoral state commanding a strait the whole world ships through and few can find on a map",
			"a highland federation of rival provinces held together by a port and a railway",
			"a drought-prone republic whose pastoral borderlands answer to clans before capitals",
		},
		NeighborSets: [][]string{
			{"Ethiopia", "the Ogaden Assembly", "Sudan", "the Axum Pact"},
			{"Kenya", "the Ogaden Assembly", "the Axum Pact"},
		},
		RegimePool: []string{
			"transitional military council",
			"dominant-party developmental state",
			"federal government of national unity",
		},
		RivalName:  "Ogaden Assembly",
		PatronName: "Axum Pact",
		Econ: EconRanges{
			Stability:    Range{30, 52},
			Inflation:    Range{42, 68},
			Unemployment: Range{40, 65},
			DebtStress:   Range{50, 75},
		},
		Mil: MilRanges{
			Readiness:  Range{38, 62},
			Logistics:  Range{25, 48},
			Tech:       Range{15, 35},
			AirDefense: Range{18, 38},
			Cyber:      Range{10, 28},
		},
		Pol: PolRanges{
			Legitimacy:        Range{35, 58},
			EliteCohesion:     Range{35, 60},
			MilitaryLoyalty:   Range{48, 72},
			PublicApproval:    Range{32, 55},
			MediaControl:      Range{42, 68},
			Corruption:        Range{50, 78},
			WarSupport:        Range{28, 50},
			Unrest:            Range{30, 55},
			Sovereignty:       Range{50, 72},
			GlobalCredibility: Range{28, 48},
		},
		Inst: InstRanges{
			IntelCapacity: Range{30, 52},
			Bureaucracy:   Range{22, 45},
			RuleOfLaw:     Range{18, 40},
		},
		Tensions: TensionRanges{
			Ethnic:     Range{50, 80},
			Border:     Range{45, 72},
			Separatist: Range{40, 70},
		},
		Resources: ResourceRanges{
			EnergySecurity: Range{25, 48},
			FoodSecurity:   Range{22, 45},
			Reserves:       Range{15, 38},
		},
	},
	{
		Region: "Southeast Asian Littoral",
		NamePool: []string{
			"Santelago", "Maharlika", "Vintanu", "Coronesia", "Palawei",
		},
		GeoPool: []string{
			"an archipelago republic of seven thousand islands, three navies' sea lanes, and one overworked coast guard",
			"a peninsula state whose river delta feeds half the region and floods the other half",
			"a littoral federation strung along a contested shelf of reefs, rigs, and fishing grounds",
		},
		NeighborSets: [][]string{
			{"China", "Vietnam", "the Sunda Concord", "the Mekong Council"},
			{"Indonesia", "the Sunda Concord", "the Mekong Council"},
		},
		RegimePool: []string{
			"presidential democracy with dynastic politics",
			"semi-authoritarian developmental state",
			"unsteady civilian government after a coup era",
		},
		RivalName:  "Sunda Concord",
		PatronName: "Mekong Council",
		Econ: EconRanges{
			Stability:    Range{45, 68},
			Inflation:    Range{30, 52},
			Unemployment: Range{28, 50},
			DebtStress:   Range{35, 58},
		},
		Mil: MilRanges{
			Readiness:  Range{32, 55},
			Logistics:  Range{30, 55},
			Tech:       Range{28, 50},
			AirDefense: Range{25, 48},
			Cyber:      Range{25, 48},
		},
		Pol: PolRanges{
			Legitimacy:        Range{45, 68},
			EliteCohesion:     Range{40, 65},
			MilitaryLoyalty:   Range{45, 70},
			PublicApproval:    Range{40, 65},
			MediaControl:      Range{30, 55},
			Corruption:        Range{42, 68},
			WarSupport:        Range{20, 40},
			Unrest:            Range{22, 45},
			Sovereignty:       Range{58, 80},
			GlobalCredibility: Range{40, 62},
		},
		Inst: InstRanges{
			IntelCapacity: Range{35, 58},
			Bureaucracy:   Range{35, 58},
			RuleOfLaw:     Range{30, 55},
		},
		Tensions: TensionRanges{
			Ethnic:     Range{30, 58},
			Border:     Range{40, 70},
			Separatist: Range{35, 65},
		},
		Resources: ResourceRanges{
			EnergySecurity: Range{35, 58},
			FoodSecurity:   Range{45, 70},
			Reserves:       Range{35, 58},
		},
	},
}
