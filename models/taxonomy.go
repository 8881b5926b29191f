package models

// The closed content-category taxonomy. Classification always resolves into
// one of these labels; LabelGeneral is the floor for anything unrecognized.
const (
	LabelBlogPost    = "Blog Post"
	LabelSocialMedia = "Social Media"
	LabelEmail       = "Email"
	LabelAdCopy      = "Ad Copy"
	LabelProduct     = "Product Description"
	LabelLanding     = "Landing Page"
	LabelPress       = "Press Release"
	LabelGeneral     = "General"
)

// Taxonomy lists every valid content-category label.
var Taxonomy = []string{
	LabelBlogPost,
	LabelSocialMedia,
	LabelEmail,
	LabelAdCopy,
	LabelProduct,
	LabelLanding,
	LabelPress,
	LabelGeneral,
}

// InTaxonomy reports whether label is a member of the closed taxonomy.
func InTaxonomy(label string) bool {
	for _, l := range Taxonomy {
		if l == label {
			return true
		}
	}
	return false
}
