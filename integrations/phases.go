package integrations

type Phase struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Progress int    `json:"progress"`
}

const (
	PhaseIdle      = "idle"
	PhaseImporting = "importing"
	PhaseDone      = "done"
)

// Phases is the fixed progression of a sync run. Only the final step does
// real work; the others pace the progress display.
var Phases = []Phase{
	{Key: "connecting", Label: "Connecting to e-mail...", Progress: 15},
	{Key: "scanning-postnl", Label: "Scanning PostNL messages...", Progress: 30},
	{Key: "scanning-dhl", Label: "Fetching DHL tracking...", Progress: 45},
	{Key: "scanning-vinted", Label: "Loading Vinted orders...", Progress: 62},
	{Key: "scanning-bolcom", Label: "Syncing Bol.com orders...", Progress: 78},
	{Key: PhaseImporting, Label: "Importing parcels...", Progress: 92},
	{Key: PhaseDone, Label: "Sync complete!", Progress: 100},
}
