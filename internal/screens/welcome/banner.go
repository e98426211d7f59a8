package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/pugivik/sumas/internal/ui/theme"
)

// BannerArt is the block-letter SUMAS title, shared with the home screen.
const BannerArt = ` ███████╗██╗   ██╗███╗   ███╗ █████╗ ███████╗
 ██╔════╝██║   ██║████╗ ████║██╔══██╗██╔════╝
 ███████╗██║   ██║██╔████╔██║███████║███████╗
 ╚════██║██║   ██║██║╚██╔╝██║██╔══██║╚════██║
 ███████║╚██████╔╝██║ ╚═╝ ██║██║  ██║███████║
 ╚══════╝ ╚═════╝ ╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝`

// BannerCompact replaces BannerArt on narrow terminals.
const BannerCompact = "S · U · M · A · S"

// bannerMinWidth is the narrowest width that fits BannerArt.
const bannerMinWidth = 48

// RenderBanner returns the SUMAS banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
