package models

// CardColor identifies one of the fixed card palette entries.
type CardColor string

const (
	CardColor1  CardColor = "c1"
	CardColor2  CardColor = "c2"
	CardColor3  CardColor = "c3"
	CardColor4  CardColor = "c4"
	CardColor5  CardColor = "c5"
	CardColor6  CardColor = "c6"
	CardColor7  CardColor = "c7"
	CardColor8  CardColor = "c8"
	CardColor9  CardColor = "c9"
	CardColor10 CardColor = "c10"
	CardColor11 CardColor = "c11"
	CardColor12 CardColor = "c12"
	CardColor13 CardColor = "c13"
	CardColor14 CardColor = "c14"
	CardColor15 CardColor = "c15"
	CardColor16 CardColor = "c16"
	CardColor17 CardColor = "c17"
	CardColor18 CardColor = "c18"
)

var cardColorHex = map[CardColor]string{
	CardColor1:  "#FD4C49",
	CardColor2:  "#FF881E",
	CardColor3:  "#007BFA",
	CardColor4:  "#6E44FE",
	CardColor5:  "#33CF69",
	CardColor6:  "#E66DD4",
	CardColor7:  "#F9D4D4",
	CardColor8:  "#34A7FE",
	CardColor9:  "#46E69D",
	CardColor10: "#35347C",
	CardColor11: "#FF674D",
	CardColor12: "#FF99CC",
	CardColor13: "#F6C48B",
	CardColor14: "#7994F5",
	CardColor15: "#832CF1",
	CardColor16: "#AD56DA",
	CardColor17: "#8D72E3",
	CardColor18: "#2FD058",
}

// AllCardColors lists the palette in display order.
var AllCardColors = []CardColor{
	CardColor1, CardColor2, CardColor3, CardColor4, CardColor5, CardColor6,
	CardColor7, CardColor8, CardColor9, CardColor10, CardColor11, CardColor12,
	CardColor13, CardColor14, CardColor15, CardColor16, CardColor17, CardColor18,
}

// Valid reports whether c is a known palette entry.
func (c CardColor) Valid() bool {
	_, ok := cardColorHex[c]
	return ok
}

// Hex returns the display hex value for the color ("" for unknown colors).
func (c CardColor) Hex() string {
	return cardColorHex[c]
}

// Emojis is the fixed set of card emojis.
var Emojis = []string{
	"🙂", "😻", "🌺", "🐶", "❤️", "😱",
	"😇", "😡", "🥶", "🤔", "🙌", "🍔",
	"🥦", "🏓", "🥇", "🎸", "🏝", "😪",
}

// ValidEmoji reports whether e belongs to the fixed emoji set.
func ValidEmoji(e string) bool {
	for _, known := range Emojis {
		if known == e {
			return true
		}
	}
	return false
}
