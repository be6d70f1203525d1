package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pazsp/lifefinder/internal/tui/styles"
)

// Point represents a geographic point to plot.
type Point struct {
	Lat float64
	Lng float64
}

// MapView renders a scatter plot of group locations around the visitor using
// Braille characters. The visitor origin gets its own layer so it stays
// visible when groups cluster on top of it.
type MapView struct {
	width    int
	height   int
	points   []Point
	origin   *Point
	selected int // index of selected point, -1 if none
	// Viewport bounds
	minLat, maxLat float64
	minLng, maxLng float64
	// Base bounds (for zoom reference)
	basMinLat, basMaxLat float64
	basMinLng, basMaxLng float64
	zoomLevel            float64 // 1.0 = no zoom, >1 = zoomed in
	panLat, panLng       float64 // pan offset in degrees
}

func NewMapView(width, height int) MapView {
	return MapView{
		width:     width,
		height:    height,
		selected:  -1,
		zoomLevel: 1.0,
	}
}

func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetOrigin marks the visitor's resolved location.
func (m *MapView) SetOrigin(p Point) {
	m.origin = &p
	m.fitBounds()
}

func (m *MapView) SetPoints(points []Point) {
	m.points = points
	m.fitBounds()
}

func (m *MapView) SetSelected(idx int) {
	m.selected = idx
}

func (m *MapView) ZoomIn() {
	m.zoomLevel *= 1.5
	if m.zoomLevel > 20 {
		m.zoomLevel = 20
	}
	m.applyZoom()
}

func (m *MapView) ZoomOut() {
	m.zoomLevel /= 1.5
	if m.zoomLevel < 0.5 {
		m.zoomLevel = 0.5
	}
	m.applyZoom()
}

func (m *MapView) ZoomReset() {
	m.zoomLevel = 1.0
	m.panLat = 0
	m.panLng = 0
	m.applyZoom()
}

func (m *MapView) Pan(dLat, dLng float64) {
	latRange := m.basMaxLat - m.basMinLat
	lngRange := m.basMaxLng - m.basMinLng
	m.panLat += dLat * latRange * 0.1 / m.zoomLevel
	m.panLng += dLng * lngRange * 0.1 / m.zoomLevel
	m.applyZoom()
}

func (m *MapView) applyZoom() {
	centerLat := (m.basMinLat+m.basMaxLat)/2 + m.panLat
	centerLng := (m.basMinLng+m.basMaxLng)/2 + m.panLng
	halfLat := (m.basMaxLat - m.basMinLat) / 2 / m.zoomLevel
	halfLng := (m.basMaxLng - m.basMinLng) / 2 / m.zoomLevel
	m.minLat = centerLat - halfLat
	m.maxLat = centerLat + halfLat
	m.minLng = centerLng - halfLng
	m.maxLng = centerLng + halfLng
}

// fitBounds frames every plotted point plus the origin with a small margin.
func (m *MapView) fitBounds() {
	all := m.points
	if m.origin != nil {
		all = append(append([]Point{}, m.points...), *m.origin)
	}
	if len(all) == 0 {
		return
	}

	m.basMinLat = all[0].Lat
	m.basMaxLat = all[0].Lat
	m.basMinLng = all[0].Lng
	m.basMaxLng = all[0].Lng
	for _, p := range all {
		m.basMinLat = math.Min(m.basMinLat, p.Lat)
		m.basMaxLat = math.Max(m.basMaxLat, p.Lat)
		m.basMinLng = math.Min(m.basMinLng, p.Lng)
		m.basMaxLng = math.Max(m.basMaxLng, p.Lng)
	}

	latPad := (m.basMaxLat - m.basMinLat) * 0.05
	lngPad := (m.basMaxLng - m.basMinLng) * 0.05
	if latPad == 0 {
		latPad = 0.01
	}
	if lngPad == 0 {
		lngPad = 0.01
	}
	m.basMinLat -= latPad
	m.basMaxLat += latPad
	m.basMinLng -= lngPad
	m.basMaxLng += lngPad
	m.applyZoom()
}

// Braille character encoding:
// Each braille char is a 2x4 dot grid.
// Dot positions:  0 3
//
//	1 4
//	2 5
//	6 7
//
// Unicode: 0x2800 + sum of raised dot bits
var brailleDots = [8]rune{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

func (m MapView) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	// Each braille char represents 2 columns x 4 rows of dots
	cols := m.width
	rows := m.height
	dotW := cols * 2
	dotH := rows * 4

	latRange := m.maxLat - m.minLat
	lngRange := m.maxLng - m.minLng
	if latRange == 0 || lngRange == 0 {
		return strings.Repeat(strings.Repeat(" ", cols)+"\n", rows)
	}

	// Aspect ratio correction: 1° lng is shorter than 1° lat away from the
	// equator. A terminal char is ~2x taller than wide; braille dots are
	// 2 wide x 4 tall per char, so each dot is roughly square on screen.
	avgLat := (m.minLat + m.maxLat) / 2
	cosLat := math.Cos(avgLat * math.Pi / 180)
	geoW := lngRange * cosLat
	geoH := latRange

	geoAspect := geoW / geoH
	dotAspect := float64(dotW) / float64(dotH)

	effectiveW, effectiveH := dotW, dotH
	offsetX, offsetY := 0, 0
	if geoAspect < dotAspect {
		effectiveW = int(float64(dotH) * geoAspect)
		if effectiveW < 4 {
			effectiveW = 4
		}
		offsetX = (dotW - effectiveW) / 2
	} else {
		effectiveH = int(float64(dotW) / geoAspect)
		if effectiveH < 4 {
			effectiveH = 4
		}
		offsetY = (dotH - effectiveH) / 2
	}

	pointGrid := make([][]bool, dotH)
	selGrid := make([][]bool, dotH)
	originGrid := make([][]bool, dotH)
	for i := range pointGrid {
		pointGrid[i] = make([]bool, dotW)
		selGrid[i] = make([]bool, dotW)
		originGrid[i] = make([]bool, dotW)
	}

	toDot := func(lat, lng float64) (int, int) {
		x := offsetX + int((lng-m.minLng)/lngRange*float64(effectiveW-1))
		y := offsetY + int((m.maxLat-lat)/latRange*float64(effectiveH-1))
		return x, y
	}

	plot := func(grid [][]bool, lat, lng float64) {
		x, y := toDot(lat, lng)
		if x >= 0 && x < dotW && y >= 0 && y < dotH {
			grid[y][x] = true
		}
	}

	for i, p := range m.points {
		if i == m.selected {
			plot(selGrid, p.Lat, p.Lng)
			continue
		}
		plot(pointGrid, p.Lat, p.Lng)
	}
	if m.origin != nil {
		plot(originGrid, m.origin.Lat, m.origin.Lng)
	}

	pointStyle := lipgloss.NewStyle().Foreground(styles.Success)
	selStyle := lipgloss.NewStyle().Foreground(styles.Warning)
	originStyle := lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true)

	dotPositions := [8][2]int{
		{0, 0}, {1, 0}, {2, 0}, {0, 1},
		{1, 1}, {2, 1}, {3, 0}, {3, 1},
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			var pointVal rune = 0x2800
			var selVal rune = 0x2800
			var originVal rune = 0x2800

			for dot := 0; dot < 8; dot++ {
				dy := row*4 + dotPositions[dot][0]
				dx := col*2 + dotPositions[dot][1]
				if dy < dotH && dx < dotW {
					if pointGrid[dy][dx] {
						pointVal |= brailleDots[dot]
					}
					if selGrid[dy][dx] {
						selVal |= brailleDots[dot]
					}
					if originGrid[dy][dx] {
						originVal |= brailleDots[dot]
					}
				}
			}

			// Origin wins, then the selected group, then everything else.
			switch {
			case originVal != 0x2800:
				sb.WriteString(originStyle.Render(string(originVal)))
			case selVal != 0x2800:
				sb.WriteString(selStyle.Render(string(selVal)))
			case pointVal != 0x2800:
				sb.WriteString(pointStyle.Render(string(pointVal)))
			default:
				sb.WriteRune(' ')
			}
		}
		if row < rows-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}
