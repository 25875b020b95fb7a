package media

import (
	"net/url"
	"path"
)

// DefaultExtension is used when a photo URL has no file extension
const DefaultExtension = ".jpg"

// Item is the part of a photo needed to name and fetch it
type Item struct {
	Likes    int
	Variants []Variant
}

// Descriptor describes one file to copy
type Descriptor struct {
	NameStem    string
	Extension   string
	SourceURL   string
	VariantType string
}

// FileName returns stem plus extension
func (d Descriptor) FileName() string {
	return d.NameStem + d.Extension
}

// Extension returns the extension of the URL path, ignoring the query
// string that photo CDNs append.
func Extension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultExtension
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return DefaultExtension
}

// Describe builds one descriptor per item in order, naming each by its
// like count. Names are unique within the call.
func Describe(items []Item) []Descriptor {
	names := NewRegistry()
	out := make([]Descriptor, 0, len(items))
	for _, item := range items {
		sel := SelectVariant(item.Variants)
		out = append(out, Descriptor{
			NameStem:    names.Claim(item.Likes),
			Extension:   Extension(sel.URL),
			SourceURL:   sel.URL,
			VariantType: sel.Type,
		})
	}
	return out
}
