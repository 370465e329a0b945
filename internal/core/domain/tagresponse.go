package domain

// Metadata holds the descriptive metadata of a document.
// Filename is informational; every other field is free-form text.
// CreationDate and ModDate use the PDF date encoding (D:YYYYMMDDHHmmSS...).
type Metadata struct {
	Filename     string `json:"filename"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Subject      string `json:"subject"`
	Keywords     string `json:"keywords"`
	Creator      string `json:"creator"`
	Producer     string `json:"producer"`
	CreationDate string `json:"creation_date"`
	ModDate      string `json:"mod_date"`
}

// PageInfo describes the dimensions of one page.
type PageInfo struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Span is a read-only run of text inside a region.
type Span struct {
	Text  string     `json:"text"`
	Font  string     `json:"font"`
	Size  float64    `json:"size"`
	BBox  [4]float64 `json:"bbox"`
	Color [3]float64 `json:"color"`
}

// Region is one structural unit of the document.
// A region is identified by its position in TagResponse.Structure;
// only Tag is ever rewritten.
type Region struct {
	Page    int        `json:"page"`
	Type    string     `json:"type"`
	Content string     `json:"content"`
	BBox    [4]float64 `json:"bbox"`
	Tag     string     `json:"tag"`
	Spans   []Span     `json:"spans,omitempty"`

	// Image regions carry the extracted image alongside the text fields.
	XRef        *int   `json:"xref,omitempty"`
	RawPNG      string `json:"raw_png,omitempty"`
	ImageWidth  *int   `json:"image_width,omitempty"`
	ImageHeight *int   `json:"image_height,omitempty"`
}

// TagResponse is a snapshot of a tagging session: page data, the ordered
// region structure and the document metadata.
//
// A TagResponse is treated as an immutable value. Edits go through
// ReplaceMetadata and ReplaceRegionTag, which return a new snapshot and
// leave the receiver untouched. Unmodified parts are shared between
// snapshots, so callers must never write into the slices directly.
type TagResponse struct {
	Pages     []PageInfo `json:"pages"`
	Structure []Region   `json:"structure"`
	Metadata  Metadata   `json:"metadata"`
}

// ReplaceMetadata returns a snapshot whose metadata is replaced wholesale
// by m. The region structure is shared with the receiver.
func (t TagResponse) ReplaceMetadata(m Metadata) TagResponse {
	t.Metadata = m
	return t
}

// ReplaceRegionTag returns a snapshot where the region at index has its tag
// set to tag. Every other field and region is unchanged.
//
// index must satisfy 0 <= index < len(t.Structure); callers guard this,
// see InRange.
func (t TagResponse) ReplaceRegionTag(index int, tag string) TagResponse {
	structure := make([]Region, len(t.Structure))
	copy(structure, t.Structure)
	structure[index].Tag = tag
	t.Structure = structure
	return t
}

// InRange reports whether index addresses a region of the snapshot.
func (t TagResponse) InRange(index int) bool {
	return index >= 0 && index < len(t.Structure)
}

// Tags returns the tag of every region in structure order.
func (t TagResponse) Tags() []string {
	tags := make([]string, len(t.Structure))
	for i := range t.Structure {
		tags[i] = t.Structure[i].Tag
	}
	return tags
}
