package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██████╗ ███████╗██████╗ ██╗███████╗
 ██╔══██╗██╔══██╗██╔════╝██╔══██╗██║╚══███╔╝
 ██████╔╝██████╔╝█████╗  ██████╔╝██║  ███╔╝
 ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝ ██║ ███╔╝
 ██║     ██║  ██║███████╗██║     ██║███████╗
 ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝╚══════╝`

const bannerCompact = "P R E P I Z"

// Tagline is shown under the banner.
const Tagline = "Crack the UPSC, one test at a time"

// RenderBanner returns the PREPIZ banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
