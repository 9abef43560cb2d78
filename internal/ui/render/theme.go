package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines application colors.
type ColorTheme struct {
	Background  tcell.Color
	Foreground  tcell.Color
	HeaderBg    tcell.Color
	HeaderFg    tcell.Color
	SummaryFg   tcell.Color
	CardBorder  tcell.Color
	CardFg      tcell.Color
	MutedFg     tcell.Color
	SelectionBg tcell.Color
	SelectionFg tcell.Color
	MatchFg     tcell.Color
	IncludeFg   tcell.Color
	ExcludeFg   tcell.Color
	ErrorFg     tcell.Color
	FooterBg    tcell.Color
	FooterFg    tcell.Color
	FlashBg     tcell.Color
	FlashFg     tcell.Color
	OverlayBg   tcell.Color
	OverlayFg   tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		HeaderBg:    tcell.Color236,
		HeaderFg:    tcell.ColorWhite,
		SummaryFg:   tcell.Color250,
		CardBorder:  tcell.Color240,
		CardFg:      tcell.ColorDefault,
		MutedFg:     tcell.ColorLightSlateGray,
		SelectionBg: tcell.Color33,
		SelectionFg: tcell.ColorWhite,
		MatchFg:     tcell.Color214, // amber for search hits
		IncludeFg:   tcell.Color42,
		ExcludeFg:   tcell.Color203,
		ErrorFg:     tcell.Color196,
		FooterBg:    tcell.ColorDefault,
		FooterFg:    tcell.ColorDefault,
		FlashBg:     tcell.ColorGreen,
		FlashFg:     tcell.ColorBlack,
		OverlayBg:   tcell.Color234,
		OverlayFg:   tcell.Color252,
	}
}
