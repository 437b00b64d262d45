package contracts

// Upload is a candidate file as the page received it: raw bytes plus the
// type the browser (or batch scanner) declared for it.
type Upload struct {
	Name         string
	DeclaredType string
	Data         []byte
}

// Result is the encoded output of a successful conversion, held until it is
// cleared or superseded.
type Result struct {
	Data      []byte
	MIMEType  string
	Extension string
	Width     int
	Height    int
}

// DownloadName is the suggested filename for a result.
func (r Result) DownloadName() string {
	return "converted." + r.Extension
}
