package model

// SiteText is one editable piece of site copy (titles, hero text, footer).
//
// Key is the stable lookup handle used by the storefront ("site_title",
// "footer_text", ...). Description tells the admin what the text is for.
// SiteTexts carry no timestamps — they are edited in place, never listed
// by recency.
type SiteText struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}
