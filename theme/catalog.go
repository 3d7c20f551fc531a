// Package theme owns the fixed catalog of site themes and the read/write
// path for the per-couple theme selection embedded in the settings blob.
package theme

type Colors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

type Theme struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Colors      Colors `json:"colors"`
	Fonts       Fonts  `json:"fonts"`
	Styling     string `json:"styling"`
	Animations  string `json:"animations"`
}

// catalog order matters: the first entry is the fallback for couples with no
// stored or unrecognized theme id.
var catalog = []Theme{
	{
		Name:        "classic-rose",
		DisplayName: "Classic Rose",
		Colors: Colors{
			Primary:    "#9d174d",
			Secondary:  "#fbcfe8",
			Accent:     "#be185d",
			Background: "#fff1f2",
			Text:       "#1f2937",
		},
		Fonts:      Fonts{Heading: "Playfair Display", Body: "Lora"},
		Styling:    "serif",
		Animations: "fade",
	},
	{
		Name:        "midnight-gold",
		DisplayName: "Midnight Gold",
		Colors: Colors{
			Primary:    "#ca8a04",
			Secondary:  "#1e293b",
			Accent:     "#facc15",
			Background: "#0f172a",
			Text:       "#f8fafc",
		},
		Fonts:      Fonts{Heading: "Cormorant Garamond", Body: "Montserrat"},
		Styling:    "elegant",
		Animations: "slide",
	},
	{
		Name:        "garden-sage",
		DisplayName: "Garden Sage",
		Colors: Colors{
			Primary:    "#15803d",
			Secondary:  "#dcfce7",
			Accent:     "#65a30d",
			Background: "#f7fee7",
			Text:       "#14532d",
		},
		Fonts:      Fonts{Heading: "EB Garamond", Body: "Source Sans Pro"},
		Styling:    "botanical",
		Animations: "fade",
	},
	{
		Name:        "coastal-blue",
		DisplayName: "Coastal Blue",
		Colors: Colors{
			Primary:    "#0369a1",
			Secondary:  "#e0f2fe",
			Accent:     "#0ea5e9",
			Background: "#f0f9ff",
			Text:       "#0c4a6e",
		},
		Fonts:      Fonts{Heading: "Libre Baskerville", Body: "Open Sans"},
		Styling:    "airy",
		Animations: "none",
	},
}

func Catalog() []Theme {
	out := make([]Theme, len(catalog))
	copy(out, catalog)
	return out
}

func Default() Theme {
	return catalog[0]
}

func ByName(name string) (Theme, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
