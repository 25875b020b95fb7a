// Package media turns photo size listings into upload-ready descriptors.
package media

// Variant is one stored size of a photo
type Variant struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	URL    string `json:"url"`
}

// Area returns width times height
func (v Variant) Area() int {
	return v.Width * v.Height
}

// typeRank orders size codes from smallest to largest. Photos uploaded
// before 2012 carry no dimensions, so this is the only way to rank them.
var typeRank = map[string]int{
	"s": 1, "m": 2, "x": 3, "o": 4, "p": 5,
	"q": 6, "r": 7, "y": 8, "z": 9, "w": 10,
}

// TypeRank returns the priority of a size code; unknown codes rank 0
func TypeRank(code string) int {
	return typeRank[code]
}

// Selection is the variant chosen for upload
type Selection struct {
	URL string
	// Type is the best-ranked size code among the variants. It is recorded
	// even when the URL was chosen by area.
	Type string
}

// SelectVariant picks the URL of the largest variant by area. When every
// variant has zero area it falls back to the highest-ranked size code.
// Ties keep the earliest variant in both rankings.
func SelectVariant(variants []Variant) Selection {
	var byArea, byRank Selection
	bestArea, bestRank := -1, -1

	for _, v := range variants {
		if area := v.Area(); area > bestArea {
			bestArea = area
			byArea.URL = v.URL
		}
		if rank := TypeRank(v.Type); rank > bestRank {
			bestRank = rank
			byRank = Selection{URL: v.URL, Type: v.Type}
		}
	}

	if bestArea == 0 {
		return byRank
	}
	return Selection{URL: byArea.URL, Type: byRank.Type}
}
