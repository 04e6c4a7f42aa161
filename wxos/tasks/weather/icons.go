package weather

import "wristwx/wxos/ui"

// Icon ids as sent by the phone.
const (
	IconSun uint8 = iota
	IconCloud
	IconRain
	IconSnow
)

const iconScale = 4

// Icons are 20x20 art drawn at 80x80.
var icons = [...]*ui.Bitmap{
	IconSun:   ui.MustParseBitmap(sunArt, iconScale),
	IconCloud: ui.MustParseBitmap(cloudArt, iconScale),
	IconRain:  ui.MustParseBitmap(rainArt, iconScale),
	IconSnow:  ui.MustParseBitmap(snowArt, iconScale),
}

// iconBitmap returns the bitmap for id, or false when id is unknown.
func iconBitmap(id int32) (*ui.Bitmap, bool) {
	if id < 0 || int(id) >= len(icons) {
		return nil, false
	}
	return icons[id], true
}

var sunArt = []string{
	"....................",
	".........##.........",
	".........##.........",
	"..##............##..",
	"...##...####...##...",
	"......########......",
	".....##########.....",
	".....##########.....",
	"....############....",
	"##..############..##",
	"##..############..##",
	"....############....",
	".....##########.....",
	".....##########.....",
	"......########......",
	"...##...####...##...",
	"..##............##..",
	".........##.........",
	".........##.........",
	"....................",
}

var cloudArt = []string{
	"....................",
	"....................",
	"....................",
	"........####........",
	"......########......",
	".....##########.....",
	"....############....",
	"..##################",
	".###################",
	"####################",
	"####################",
	"####################",
	"####################",
	".##################.",
	"..################..",
	"....................",
	"....................",
	"....................",
	"....................",
	"....................",
}

var rainArt = []string{
	"........####........",
	"......########......",
	".....##########.....",
	"...##############...",
	"..################..",
	".##################.",
	"####################",
	"####################",
	".##################.",
	"..################..",
	"....................",
	"...#....#....#....#.",
	"..#....#....#....#..",
	"....................",
	".#....#....#....#...",
	"#....#....#....#....",
	"....................",
	"...#....#....#....#.",
	"..#....#....#....#..",
	"....................",
}

var snowArt = []string{
	".........##.........",
	"......#..##..#......",
	".......#.##.#.......",
	"........####........",
	"..#......##......#..",
	"...#.....##.....#...",
	"....#....##....#....",
	".....#...##...#.....",
	"......#..##..#......",
	"####################",
	"####################",
	"......#..##..#......",
	".....#...##...#.....",
	"....#....##....#....",
	"...#.....##.....#...",
	"..#......##......#..",
	"........####........",
	".......#.##.#.......",
	"......#..##..#......",
	".........##.........",
}
