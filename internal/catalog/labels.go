package catalog

// labelEmojis maps every detector class name to a display emoji. Labels the
// detector can emit but that we have no glyph for fall back to "❓".
var labelEmojis = map[string]string{
	"person":         "🧑",
	"bicycle":        "🚲",
	"car":            "🚗",
	"motorcycle":     "🏍️",
	"airplane":       "✈️",
	"bus":            "🚌",
	"train":          "🚂",
	"truck":          "🚛",
	"boat":           "⛵",
	"traffic light":  "🚦",
	"fire hydrant":   "🚒",
	"stop sign":      "🛑",
	"parking meter":  "🅿️",
	"bench":          "🪑",
	"bird":           "🐦",
	"cat":            "🐱",
	"dog":            "🐕",
	"horse":          "🐴",
	"sheep":          "🐑",
	"cow":            "🐄",
	"elephant":       "🐘",
	"bear":           "🐻",
	"zebra":          "🦓",
	"giraffe":        "🦒",
	"backpack":       "🎒",
	"umbrella":       "☂️",
	"handbag":        "👜",
	"tie":            "👔",
	"suitcase":       "🧳",
	"frisbee":        "🥏",
	"skis":           "⛷️",
	"snowboard":      "🏂",
	"sports ball":    "⚽",
	"kite":           "🪁",
	"baseball bat":   "🏏",
	"baseball glove": "🧤",
	"skateboard":     "🛹",
	"surfboard":      "🏄",
	"tennis racket":  "🎾",
	"bottle":         "🍶",
	"wine glass":     "🍷",
	"cup":            "☕",
	"fork":           "🍴",
	"knife":          "🔪",
	"spoon":          "🥄",
	"bowl":           "🥣",
	"banana":         "🍌",
	"apple":          "🍎",
	"sandwich":       "🥪",
	"orange":         "🍊",
	"broccoli":       "🥦",
	"carrot":         "🥕",
	"hot dog":        "🌭",
	"pizza":          "🍕",
	"donut":          "🍩",
	"cake":           "🎂",
	"chair":          "🪑",
	"couch":          "🛋️",
	"potted plant":   "🪴",
	"bed":            "🛏️",
	"dining table":   "🍽️",
	"toilet":         "🚽",
	"tv":             "📺",
	"laptop":         "💻",
	"mouse":          "🖱️",
	"remote":         "📡",
	"keyboard":       "⌨️",
	"cell phone":     "📱",
	"microwave":      "📦",
	"oven":           "🔥",
	"toaster":        "🍞",
	"sink":           "🚰",
	"refrigerator":   "🧊",
	"book":           "📚",
	"clock":          "🕐",
	"vase":           "🏺",
	"scissors":       "✂️",
	"teddy bear":     "🧸",
	"hair drier":     "💨",
	"toothbrush":     "🪥",
}

// preferredLabels is the quest sampling pool, biased toward objects findable
// indoors or at school.
var preferredLabels = []string{
	"person", "cat", "dog", "cup", "bottle", "book", "chair",
	"laptop", "cell phone", "keyboard", "mouse", "remote", "clock",
	"backpack", "teddy bear", "scissors", "toothbrush", "apple",
	"banana", "orange", "couch", "potted plant", "bowl", "spoon",
	"fork", "vase", "bed", "tv", "sink", "refrigerator", "umbrella",
	"cake", "pizza", "donut", "sandwich", "carrot",
}

// Emoji returns the display emoji for a detector label, or "❓" when the
// label has no glyph.
func Emoji(label string) string {
	if e, ok := labelEmojis[label]; ok {
		return e
	}
	return "❓"
}

// KnownLabel reports whether the detector can emit this label at all.
func KnownLabel(label string) bool {
	_, ok := labelEmojis[label]
	return ok
}

// PreferredLabels returns a copy of the quest sampling pool.
func PreferredLabels() []string {
	pool := make([]string, len(preferredLabels))
	copy(pool, preferredLabels)
	return pool
}
