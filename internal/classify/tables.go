// tables.go: fixed keyword tables for filename-based identification.
// Table order matters: the first matching entry wins, so the slices must
// never be reordered casually.
package classify

// brandPattern maps a brand to its filename keywords and model aliases.
type brandPattern struct {
	Brand    string
	Keywords []string
	Models   []modelPattern
}

// modelPattern maps a model name to its filename keyword aliases.
type modelPattern struct {
	Model    string
	Keywords []string
}

var brandPatterns = []brandPattern{
	{
		Brand:    "Nike",
		Keywords: []string{"nike", "dunk", "air force", "air max", "jordan", "jordan brand"},
		Models: []modelPattern{
			{"Dunk Low", []string{"dunk low", "dunk-low"}},
			{"Dunk High", []string{"dunk high", "dunk-high"}},
			{"Air Force 1", []string{"air force", "af1", "air force 1"}},
			{"Air Max", []string{"air max", "airmax"}},
			{"Jordan 1", []string{"jordan 1", "aj1"}},
			{"Jordan 4", []string{"jordan 4", "aj4"}},
		},
	},
	{
		Brand:    "New Balance",
		Keywords: []string{"new balance", "nb", "newbalance"},
		Models: []modelPattern{
			{"990v5", []string{"990v5", "990 v5"}},
			{"990v4", []string{"990v4", "990 v4"}},
			{"991", []string{"991"}},
			{"992", []string{"992"}},
			{"993", []string{"993"}},
			{"574", []string{"574"}},
			{"550", []string{"550"}},
			{"327", []string{"327"}},
		},
	},
	{
		Brand:    "adidas",
		Keywords: []string{"adidas", "adidas originals"},
		Models: []modelPattern{
			{"Ultraboost", []string{"ultraboost", "ultra boost"}},
			{"Stan Smith", []string{"stan smith"}},
			{"Superstar", []string{"superstar"}},
			{"Yeezy", []string{"yeezy"}},
			{"Samba", []string{"samba"}},
		},
	},
	{
		Brand:    "On",
		Keywords: []string{"on", "on cloud", "oncloud"},
		Models: []modelPattern{
			{"Cloud", []string{"cloud"}},
			{"Cloudrunner", []string{"cloudrunner", "cloud runner"}},
			{"Cloudflow", []string{"cloudflow", "cloud flow"}},
			{"Cloudswift", []string{"cloudswift", "cloud swift"}},
			{"Cloudventure", []string{"cloudventure", "cloud venture"}},
		},
	},
	{
		Brand:    "Olukai",
		Keywords: []string{"olukai", "olukia"},
		Models: []modelPattern{
			{"Mio Li", []string{"mio li", "mioli"}},
			{"Ohana", []string{"ohana"}},
			{"Nohea", []string{"nohea"}},
		},
	},
	{
		Brand:    "Asics",
		Keywords: []string{"asics", "asics gel"},
		Models: []modelPattern{
			{"Gel-Kayano", []string{"kayano", "gel kayano"}},
			{"Gel-Nimbus", []string{"nimbus", "gel nimbus"}},
			{"Gel-Cumulus", []string{"cumulus", "gel cumulus"}},
		},
	},
	{
		Brand:    "LOWE",
		Keywords: []string{"lowe"},
	},
	{
		Brand:    "Puma",
		Keywords: []string{"puma"},
	},
	{
		Brand:    "Vans",
		Keywords: []string{"vans"},
		Models: []modelPattern{
			{"Old Skool", []string{"old skool", "oldskool"}},
			{"Authentic", []string{"authentic"}},
			{"Sk8-Hi", []string{"sk8", "sk8-hi"}},
		},
	},
	{
		Brand:    "Converse",
		Keywords: []string{"converse"},
		Models: []modelPattern{
			{"Chuck Taylor", []string{"chuck", "chuck taylor"}},
		},
	},
}

// colorPattern maps a display color to its filename aliases, including
// common abbreviations and a few multilingual variants.
type colorPattern struct {
	Color    string
	Keywords []string
}

var colorPatterns = []colorPattern{
	{"White", []string{"white", "wht", "blanc", "bianco"}},
	{"Black", []string{"black", "blk", "noir", "nero"}},
	{"Grey", []string{"grey", "gray", "gry", "gris"}},
	{"Navy", []string{"navy", "navy blue"}},
	{"Red", []string{"red", "rd", "rouge", "rosso"}},
	{"Blue", []string{"blue", "blu", "bleu"}},
	{"Green", []string{"green", "grn", "vert", "verde"}},
	{"Orange", []string{"orange", "org", "orng"}},
	{"Pink", []string{"pink", "pnk"}},
	{"Brown", []string{"brown", "brn", "brwn"}},
	{"Beige", []string{"beige", "tan", "khaki"}},
	{"Yellow", []string{"yellow", "ylw", "yel"}},
}

// priceBand is a retail price range; the estimate is its midpoint.
type priceBand struct {
	Min int
	Max int
}

// msrpBands holds typical retail price ranges per brand and model.
type msrpBands struct {
	Brand   string
	Models  map[string]priceBand
	Default priceBand
}

var msrpTable = []msrpBands{
	{
		Brand: "Nike",
		Models: map[string]priceBand{
			"Dunk Low":    {100, 120},
			"Dunk High":   {110, 130},
			"Air Force 1": {90, 110},
			"Air Max":     {120, 180},
		},
		Default: priceBand{90, 200},
	},
	{
		Brand: "New Balance",
		Models: map[string]priceBand{
			"990": {185, 220},
			"991": {180, 210},
			"992": {180, 210},
			"993": {180, 210},
			"574": {80, 100},
			"550": {100, 120},
			"327": {80, 100},
		},
		Default: priceBand{100, 220},
	},
	{
		Brand: "adidas",
		Models: map[string]priceBand{
			"Ultraboost": {180, 220},
			"Stan Smith": {80, 100},
			"Superstar":  {80, 100},
			"Yeezy":      {200, 300},
		},
		Default: priceBand{80, 200},
	},
	{
		Brand: "On",
		Models: map[string]priceBand{
			"Cloudrunner": {130, 150},
			"Cloudflow":   {140, 160},
			"Cloud":       {120, 140},
		},
		Default: priceBand{120, 180},
	},
	{
		Brand: "Olukai",
		Models: map[string]priceBand{
			"Mio Li": {100, 130},
		},
		Default: priceBand{100, 150},
	},
	{
		Brand:   "Asics",
		Default: priceBand{90, 160},
	},
	{
		Brand:   "Jordan",
		Default: priceBand{150, 250},
	},
}

// Flat lists used by the display parser in ParseFilename.
var knownBrands = []string{
	"Nike", "New Balance", "adidas", "On", "On Cloud", "Olukai", "Asics",
	"LOWE", "Puma", "Vans", "Converse", "Hoka", "Brooks", "Saucony", "Jordan",
}

// Longer entries come before their prefixes so the first substring hit is
// the most specific one.
var knownModels = []string{
	"Dunk Low", "Dunk High", "Dunk", "Air Force", "Air Max",
	"990", "991", "992", "993", "574", "550", "327",
	"Ultraboost", "Stan Smith", "Superstar", "Yeezy",
	"Chuck Taylor", "Old Skool", "Authentic", "Sk8-Hi",
	"Cloudrunner", "Cloudflow", "Cloudswift", "Cloudventure", "Cloud",
}

// Fallback model-number tokens scanned when the keyword tables come up empty.
var fallbackModelNumbers = []string{"990", "991", "992", "993", "574", "550", "327"}

// Fallback model signatures: every keyword must appear somewhere in the
// filename tokens for the model to be inferred.
type modelSignature struct {
	Model    string
	Keywords []string
}

var fallbackModelSignatures = []modelSignature{
	{"Dunk Low", []string{"dunk", "low"}},
	{"Dunk High", []string{"dunk", "high"}},
	{"Air Force 1", []string{"force", "af1"}},
	{"Cloudrunner", []string{"cloudrunner", "cloud", "runner"}},
	{"Cloudflow", []string{"cloudflow", "flow"}},
	{"Mio Li", []string{"mio", "li"}},
}
