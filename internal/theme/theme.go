// Package theme derives the full color palette from the user's accent
// choice and light/dark preference. Values are HSL triples matching the
// CSS custom properties the UI applies at the document root.
package theme

import "github.com/tekguyz/myplace/internal/model"

type accentPair struct {
	light string
	dark  string
}

var accentMap = map[model.AccentColor]accentPair{
	model.AccentDefault: {light: "240 5.9% 10%", dark: "0 0% 98%"},
	model.AccentBlue:    {light: "221.2 83.2% 53.3%", dark: "217.2 91.2% 59.8%"},
	model.AccentGreen:   {light: "142.1 76.2% 36.3%", dark: "142.1 70.6% 45.3%"},
	model.AccentYellow:  {light: "47.9 95.8% 53.1%", dark: "47.9 95.8% 53.1%"},
	model.AccentPink:    {light: "333.3 80.4% 53.1%", dark: "333.3 80.4% 53.1%"},
	model.AccentOrange:  {light: "24.6 95% 53.1%", dark: "24.6 95% 53.1%"},
}

var darkBase = map[string]string{
	"background":             "0 0% 3.9%",
	"foreground":             "0 0% 98%",
	"card":                   "0 0% 3.9%",
	"card-foreground":        "0 0% 98%",
	"popover":                "0 0% 3.9%",
	"popover-foreground":     "0 0% 98%",
	"primary":                "0 0% 98%",
	"primary-foreground":     "0 0% 9%",
	"secondary":              "0 0% 14.9%",
	"secondary-foreground":   "0 0% 98%",
	"muted":                  "0 0% 14.9%",
	"muted-foreground":       "0 0% 63.9%",
	"accent-foreground":      "0 0% 98%",
	"destructive":            "0 62.8% 30.6%",
	"destructive-foreground": "0 0% 98%",
	"border":                 "0 0% 14.9%",
	"input":                  "0 0% 14.9%",
	"ring":                   "0 0% 83.1%",
}

var lightBase = map[string]string{
	"background":             "0 0% 100%",
	"foreground":             "0 0% 3.9%",
	"card":                   "0 0% 100%",
	"card-foreground":        "0 0% 3.9%",
	"popover":                "0 0% 100%",
	"popover-foreground":     "0 0% 3.9%",
	"primary":                "0 0% 9%",
	"primary-foreground":     "0 0% 98%",
	"secondary":              "0 0% 96.1%",
	"secondary-foreground":   "0 0% 9%",
	"muted":                  "0 0% 96.1%",
	"muted-foreground":       "0 0% 45.1%",
	"accent-foreground":      "0 0% 9%",
	"destructive":            "0 84.2% 60.2%",
	"destructive-foreground": "0 0% 98%",
	"border":                 "0 0% 89.8%",
	"input":                  "0 0% 89.8%",
	"ring":                   "0 0% 3.9%",
}

// Palette returns the CSS variable map for the given preference. The
// "system" theme is a client-side concern (it depends on the OS setting),
// so it resolves to light here; callers that know the OS preference should
// pass the resolved theme.
func Palette(t model.Theme, accent model.AccentColor) map[string]string {
	dark := t == model.ThemeDark

	base := lightBase
	if dark {
		base = darkBase
	}

	vars := make(map[string]string, len(base)+1)
	for k, v := range base {
		vars[k] = v
	}

	pair, ok := accentMap[accent]
	if !ok {
		pair = accentMap[model.AccentDefault]
	}
	if dark {
		vars["accent"] = pair.dark
	} else {
		vars["accent"] = pair.light
	}
	return vars
}

// Accents lists the selectable accent colors in display order.
func Accents() []model.AccentColor {
	return []model.AccentColor{
		model.AccentDefault, model.AccentBlue, model.AccentGreen,
		model.AccentYellow, model.AccentPink, model.AccentOrange,
	}
}
