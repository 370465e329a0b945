package domain

// Region tags. This vocabulary is closed: a region may carry no other tag.
const (
	TagTitle        = "title"
	TagSubtitle     = "subtitle"
	TagH1           = "h1"
	TagH2           = "h2"
	TagH3           = "h3"
	TagH4           = "h4"
	TagH5           = "h5"
	TagH6           = "h6"
	TagParagraph    = "paragraph"
	TagImageCaption = "image_caption"
	TagImage        = "image"
	TagHeader       = "header"
	TagFooter       = "footer"
	TagFormLabel    = "form_label"
	TagCheckbox     = "checkbox"
)

// AllTags lists the tag vocabulary in presentation order.
var AllTags = []string{
	TagTitle,
	TagSubtitle,
	TagH1,
	TagH2,
	TagH3,
	TagH4,
	TagH5,
	TagH6,
	TagParagraph,
	TagImageCaption,
	TagImage,
	TagHeader,
	TagFooter,
	TagFormLabel,
	TagCheckbox,
}

// roleMap maps tags to the PDF/UA structure role the renderer emits.
// header and footer are artifacts and have no role of their own.
var roleMap = map[string]string{
	TagTitle:        "Title",
	TagSubtitle:     "H1",
	TagH1:           "H1",
	TagH2:           "H2",
	TagH3:           "H3",
	TagH4:           "H4",
	TagH5:           "H5",
	TagH6:           "H6",
	TagParagraph:    "P",
	TagImage:        "Figure",
	TagImageCaption: "Caption",
	TagFormLabel:    "Lbl",
	TagCheckbox:     "Form",
}

// IsValidTag reports whether tag belongs to the vocabulary.
func IsValidTag(tag string) bool {
	return TagIndex(tag) >= 0
}

// TagIndex returns the position of tag in AllTags, or -1.
func TagIndex(tag string) int {
	for i, t := range AllTags {
		if t == tag {
			return i
		}
	}
	return -1
}

// RoleFor returns the PDF/UA role for tag, defaulting to "P".
func RoleFor(tag string) string {
	if role, ok := roleMap[tag]; ok {
		return role
	}
	return "P"
}
