package classify

import "regexp"

// rule pairs a compiled pattern with the raw label it implies. The table is
// ordered and order is part of the contract: the first matching rule wins, so
// "email copy" classifies as Email even though "copy" appears in ad phrasing.
type rule struct {
	pattern *regexp.Regexp
	label   string
}

var textRules = []rule{
	{regexp.MustCompile(`\b(email|email copy|subject:|recipient:|write a professional email|free trial)\b`), "Email"},
	{regexp.MustCompile(`\b(ad copy|adcopy|ad creative|advertis(e|ing)|facebook ad|google ad|instagram ad)\b`), "Ad Copy"},
	{regexp.MustCompile(`\b(blog post|blog|article|write a (professional |long |short )?blog|10 proven strategies)\b`), "Blog Post"},
	{regexp.MustCompile(`\b(social media|social post|instagram|facebook post|linkedin post|tiktok post|caption|hashtag)\b`), "Social Post"},
	{regexp.MustCompile(`\b(tweet|twitter|x post|thread)\b`), "Tweet"},
	{regexp.MustCompile(`\b(landing page|landingpage|hero section|call to action|cta)\b`), "Landing Page"},
	{regexp.MustCompile(`\b(product description|product detail)\b`), "Product Description"},
	{regexp.MustCompile(`\b(press release|press)\b`), "Press Release"},
}
