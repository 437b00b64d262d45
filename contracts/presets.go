package contracts

// Preset describes one supported conversion: what the uploaded file must
// declare itself as, what it is re-encoded to, and the extension of the
// download. External presets are shown in the selector but require
// processing beyond an in-process bitmap re-encode and never convert here.
type Preset struct {
	Label      string `json:"label"`
	InputType  string `json:"inputType"`
	OutputType string `json:"outputType"`
	Extension  string `json:"extension"`
	External   bool   `json:"external"`
}

// DefaultPresetIndex is the selection a fresh page view starts with.
const DefaultPresetIndex = 1

// Presets is the ordered preset table. Selection is by index; the order is
// the tab order on the page.
var Presets = []Preset{
	{Label: "JPG to PNG", InputType: "image/jpeg", OutputType: "image/png", Extension: "png"},
	{Label: "PNG to JPG", InputType: "image/png", OutputType: "image/jpeg", Extension: "jpg"},
	{Label: "WEBP to PNG", InputType: "image/webp", OutputType: "image/png", Extension: "png"},
	{Label: "TIFF to PNG", InputType: "image/tiff", OutputType: "image/png", Extension: "png"},
	{Label: "PDF to JPG", InputType: "application/pdf", OutputType: "image/jpeg", Extension: "jpg", External: true},
	{Label: "JPG to PDF", InputType: "image/jpeg", OutputType: "application/pdf", Extension: "pdf", External: true},
}

// PresetAt returns the preset at index i, or false when i is out of range.
func PresetAt(i int) (Preset, bool) {
	if i < 0 || i >= len(Presets) {
		return Preset{}, false
	}
	return Presets[i], true
}
