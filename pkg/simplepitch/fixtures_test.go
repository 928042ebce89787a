package simplepitch_test

import (
	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

func slide(id string) simplepitch.Slide {
	return simplepitch.Slide{ID: id, Type: simplepitch.SlideTypeImage, URL: "https://cdn.example.com/" + id + ".jpg", Name: id}
}

func brand(id string, slideIDs ...string) simplepitch.Brand {
	b := simplepitch.Brand{ID: id, Name: "Brand " + id, Slides: []simplepitch.Slide{}}
	for i, sid := range slideIDs {
		s := slide(sid)
		s.Order = i
		b.Slides = append(b.Slides, s)
	}
	return b
}

// catalog returns Brand A [s1, s2] and Brand B [s3].
func catalog() []simplepitch.Brand {
	return []simplepitch.Brand{brand("A", "s1", "s2"), brand("B", "s3")}
}

func slideIDs(b simplepitch.Brand) []string {
	ids := make([]string, len(b.Slides))
	for i, s := range b.Slides {
		ids[i] = s.ID
	}
	return ids
}

func orders(b simplepitch.Brand) []int {
	out := make([]int, len(b.Slides))
	for i, s := range b.Slides {
		out[i] = s.Order
	}
	return out
}

func denseOrders(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
