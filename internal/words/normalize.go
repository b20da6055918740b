package words

import "strings"

// spellingVariants maps regional spellings onto the canonical (American)
// form used by the embedding vocabulary.
var spellingVariants = map[string]string{
	"aeroplane":    "airplane",
	"aeroplanes":   "airplanes",
	"ageing":       "aging",
	"aluminium":    "aluminum",
	"analyse":      "analyze",
	"apologise":    "apologize",
	"armour":       "armor",
	"behaviour":    "behavior",
	"catalogue":    "catalog",
	"centre":       "center",
	"centres":      "centers",
	"colour":       "color",
	"colours":      "colors",
	"defence":      "defense",
	"favour":       "favor",
	"favourite":    "favorite",
	"favourites":   "favorites",
	"fibre":        "fiber",
	"flavour":      "flavor",
	"grey":         "gray",
	"harbour":      "harbor",
	"honour":       "honor",
	"humour":       "humor",
	"jewellery":    "jewelry",
	"labour":       "labor",
	"licence":      "license",
	"litre":        "liter",
	"metre":        "meter",
	"mould":        "mold",
	"moustache":    "mustache",
	"neighbour":    "neighbor",
	"neighbours":   "neighbors",
	"offence":      "offense",
	"organisation": "organization",
	"organise":     "organize",
	"paralyse":     "paralyze",
	"plough":       "plow",
	"programme":    "program",
	"pyjamas":      "pajamas",
	"realise":      "realize",
	"recognise":    "recognize",
	"rumour":       "rumor",
	"sceptic":      "skeptic",
	"theatre":      "theater",
	"theatres":     "theaters",
	"travelling":   "traveling",
	"tyre":         "tire",
	"vapour":       "vapor",
	"woollen":      "woolen",
}

// Normalizer canonicalizes raw guess text. The zero value is not usable,
// build one with NewNormalizer.
type Normalizer struct {
	variants map[string]string
}

// NewNormalizer builds a normalizer from the built-in variant table plus
// extra variant -> canonical pairs. Extra entries win over built-ins.
func NewNormalizer(extra map[string]string) *Normalizer {
	variants := make(map[string]string, len(spellingVariants)+len(extra))
	for k, v := range spellingVariants {
		variants[k] = v
	}
	for k, v := range extra {
		variants[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}

	return &Normalizer{
		variants: variants,
	}
}

// Normalize lowercases, trims and collapses spelling variants. An empty
// result means the input carried no word.
func (n *Normalizer) Normalize(raw string) string {
	word := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := n.variants[word]; ok {
		return canonical
	}
	return word
}
