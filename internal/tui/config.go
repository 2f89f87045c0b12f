package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

var (
	SelectedColor = tcell.ColorYellow
	NormalColor   = tcell.ColorWhite
	DisabledColor = tcell.ColorDarkGray
	ErrorColor    = tcell.ColorRed
)

func initIconsMap(config *viper.Viper) map[string]string {
	iconsMap := map[string]string{
		"Back":       "<-",
		"Owner":      "@",
		"Repository": "📦",
		"Issue":      "#",
		"User":       "👤",
		"Label":      "🏷",
		"Prior":      "◀",
		"Next":       "▶",
		"Loading":    "⏳",
		"Error":      "⚠",
	}

	if config.GetBool("general.useNerdFontIcons") {
		nerdIconsMaps := map[string]string{
			"Back":       "\uf060",
			"Owner":      "\uf09b",
			"Repository": "\uf401",
			"Issue":      "\uf41b",
			"User":       "\uf007",
			"Label":      "\uf02b",
			"Prior":      "\uf053",
			"Next":       "\uf054",
			"Loading":    "\uf110",
			"Error":      "\uf071",
		}

		for k := range nerdIconsMaps {
			iconsMap[k] = nerdIconsMaps[k]
		}
	}

	for k := range iconsMap {
		p := fmt.Sprintf("icons.%s", k)
		if icon := config.GetString(p); icon != "" {
			iconsMap[k] = icon
		}
	}

	return iconsMap
}
