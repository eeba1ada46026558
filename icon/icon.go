// Package icon renders UI symbols in the variant selected by icons.variant.
package icon

import (
	"github.com/animecritique/critique/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	kaomoji = "kaomoji"
	squares = "squares"
)

// AvailableVariants lists the accepted icons.variant values.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, kaomoji, squares}
}

// Icon identifies a registered symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Decline
	Progress
	Star
	StarEmpty
	Favorite
	Watchlist
	User
)

type def struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d def) get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case kaomoji:
		return d.kaomoji
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]def{
	Success:   {emoji: "✅", nerd: "", plain: "✓", kaomoji: "(ᵔ◡ᵔ)", squares: "▣"},
	Fail:      {emoji: "❌", nerd: "", plain: "✗", kaomoji: "(╥﹏╥)", squares: "▨"},
	Decline:   {emoji: "⚠️", nerd: "", plain: "!", kaomoji: "(・_・;)", squares: "▧"},
	Progress:  {emoji: "⏳", nerd: "", plain: "…", kaomoji: "(・・ )?", squares: "▢"},
	Star:      {emoji: "⭐", nerd: "", plain: "★", kaomoji: "☆彡", squares: "■"},
	StarEmpty: {emoji: "▫️", nerd: "", plain: "☆", kaomoji: "・", squares: "□"},
	Favorite:  {emoji: "❤️", nerd: "", plain: "♥", kaomoji: "(♡˙︶˙♡)", squares: "◆"},
	Watchlist: {emoji: "📺", nerd: "", plain: "▶", kaomoji: "(⌐■_■)", squares: "▶"},
	User:      {emoji: "👤", nerd: "", plain: "@", kaomoji: "(^_^)", squares: "●"},
}

// Get returns the symbol for i in the configured variant, or "" for an unknown variant.
func Get(i Icon) string {
	return icons[i].get()
}
