package statusync

// Emoji is one entry of the workspace emoji catalog. Custom workspace
// emojis carry an image path; builtin ones resolve by name through the
// static glyph table.
type Emoji struct {
	Name      string
	ImagePath *string
}

// Render resolves the emoji to something displayable: the image path
// when the catalog supplied one, the glyph for known builtin names, and
// the :name: colon form otherwise.
func (e Emoji) Render() string {
	if e.ImagePath != nil && *e.ImagePath != "" {
		return *e.ImagePath
	}
	if g, ok := Glyph(e.Name); ok {
		return g
	}
	return ":" + e.Name + ":"
}

// Glyph looks up a builtin emoji name in the static table. No network
// call is involved.
func Glyph(name string) (string, bool) {
	g, ok := glyphs[name]
	return g, ok
}

var glyphs = map[string]string{
	"smile":                "😄",
	"grinning":             "😀",
	"wave":                 "👋",
	"thumbsup":             "👍",
	"+1":                   "👍",
	"thumbsdown":           "👎",
	"-1":                   "👎",
	"heart":                "❤️",
	"tada":                 "🎉",
	"rocket":               "🚀",
	"fire":                 "🔥",
	"eyes":                 "👀",
	"thinking_face":        "🤔",
	"sunglasses":           "😎",
	"cry":                  "😢",
	"joy":                  "😂",
	"sweat_smile":          "😅",
	"zzz":                  "💤",
	"sleeping":             "😴",
	"coffee":               "☕",
	"pizza":                "🍕",
	"hamburger":            "🍔",
	"fork_and_knife":       "🍴",
	"calendar":             "📆",
	"spiral_calendar_pad":  "🗓️",
	"date":                 "📅",
	"clock1":               "🕐",
	"alarm_clock":          "⏰",
	"hourglass":            "⌛",
	"phone":                "☎️",
	"telephone_receiver":   "📞",
	"computer":             "💻",
	"headphones":           "🎧",
	"speech_balloon":       "💬",
	"email":                "✉️",
	"memo":                 "📝",
	"books":                "📚",
	"dart":                 "🎯",
	"bulb":                 "💡",
	"warning":              "⚠️",
	"no_entry":             "⛔",
	"x":                    "❌",
	"white_check_mark":     "✅",
	"heavy_check_mark":     "✔️",
	"question":             "❓",
	"airplane":             "✈️",
	"car":                  "🚗",
	"bus":                  "🚌",
	"train2":               "🚆",
	"bike":                 "🚲",
	"walking":              "🚶",
	"runner":               "🏃",
	"house":                "🏠",
	"office":               "🏢",
	"hospital":             "🏥",
	"palm_tree":            "🌴",
	"sunny":                "☀️",
	"umbrella":             "☔",
	"snowflake":            "❄️",
	"dog":                  "🐶",
	"cat":                  "🐱",
	"spiral_note_pad":      "🗒️",
	"mega":                 "📣",
	"lock":                 "🔒",
	"key":                  "🔑",
	"repeat":               "🔁",
	"muscle":               "💪",
	"pray":                 "🙏",
	"clap":                 "👏",
	"raised_hands":         "🙌",
	"handshake":            "🤝",
	"man-biking":           "🚴‍♂️",
	"woman-biking":         "🚴‍♀️",
	"female-technologist":  "👩‍💻",
	"male-technologist":    "👨‍💻",
	"brain":                "🧠",
	"microphone":           "🎤",
	"movie_camera":         "🎥",
	"video_camera":         "📹",
	"tv":                   "📺",
	"game_die":             "🎲",
	"soccer":               "⚽",
	"basketball":           "🏀",
	"tennis":               "🎾",
	"trophy":               "🏆",
	"medal":                "🏅",
	"gift":                 "🎁",
	"birthday":             "🎂",
	"beers":                "🍻",
	"wine_glass":           "🍷",
	"apple":                "🍎",
	"banana":               "🍌",
	"seedling":             "🌱",
	"evergreen_tree":       "🌲",
	"mountain":             "⛰️",
	"beach_with_umbrella":  "🏖️",
	"world_map":            "🗺️",
	"round_pushpin":        "📍",
	"stopwatch":            "⏱️",
	"battery":              "🔋",
	"electric_plug":        "🔌",
	"wrench":               "🔧",
	"hammer_and_wrench":    "🛠️",
	"gear":                 "⚙️",
	"link":                 "🔗",
	"paperclip":            "📎",
	"scissors":             "✂️",
	"crystal_ball":         "🔮",
	"sparkles":             "✨",
	"star":                 "⭐",
	"zap":                  "⚡",
	"cloud":                "☁️",
	"rainbow":              "🌈",
	"moon":                 "🌙",
	"earth_americas":       "🌎",
	"musical_note":         "🎵",
	"notes":                "🎶",
	"art":                  "🎨",
	"circus_tent":          "🎪",
	"hourglass_flowing_sand": "⏳",
}
