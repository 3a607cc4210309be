package model

// Location identifies where an element appeared in its source
type Location struct {
	Raw   string // Raw source text of the element
	Start int    // Start byte offset
	End   int    // End byte offset
}

type LocationNode struct {
	Text string
	Location
}

func NewNodeLocation(text string) *LocationNode {
	return &LocationNode{
		Text: text,
	}
}
