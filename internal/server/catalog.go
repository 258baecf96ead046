package server

// styleInfo is the discovery record one style gets in /api/styles.
type styleInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Speed       string `json:"processing_time"`
}

var styleCatalog = map[string]styleInfo{
	"classic": {
		Title:       "Classic Cartoon",
		Description: "Edge detection with color quantization",
		Speed:       "fast",
	},
	"smooth": {
		Title:       "Smooth Cartoon",
		Description: "Softer edges with smooth colors",
		Speed:       "fast",
	},
	"edge-heavy": {
		Title:       "Bold Edges",
		Description: "Prominent, bold edge lines",
		Speed:       "fast",
	},
	"ultra": {
		Title:       "Ultra Quality",
		Description: "Multi-method edges, rich palette and local contrast",
		Speed:       "slow",
	},
	"pencil-sketch": {
		Title:       "Pencil Sketch",
		Description: "Grayscale hand-drawn sketch",
		Speed:       "fast",
	},
	"pencil-sketch-color": {
		Title:       "Color Pencil Sketch",
		Description: "Sketch shading with original hues",
		Speed:       "fast",
	},
	"oil-painting": {
		Title:       "Oil Painting",
		Description: "Painterly brush regions",
		Speed:       "medium",
	},
	"watercolor": {
		Title:       "Watercolor",
		Description: "Soft washes with boosted color",
		Speed:       "medium",
	},
	"cartoon": {
		Title:       "Cartoon",
		Description: "Flat-color cartoon look",
		Speed:       "medium",
	},
	"anime": {
		Title:       "Anime",
		Description: "Heavy smoothing with thick outlines",
		Speed:       "medium",
	},
}

func describeStyle(name string) styleInfo {
	info, ok := styleCatalog[name]
	if !ok {
		info = styleInfo{Title: name, Description: "Custom style", Speed: "unknown"}
	}
	info.Name = name
	return info
}
