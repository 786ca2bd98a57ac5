package md

// Segment splits blocks into one group per slide.
// Every HorizontalRule closes the current group, even an empty one, and is dropped.
// A trailing group is emitted only when it is not empty.
func Segment(blocks []Block) [][]Block {
	var (
		groups  [][]Block
		current = []Block{}
	)
	for _, b := range blocks {
		if _, ok := b.(*HorizontalRule); ok {
			groups = append(groups, current)
			current = []Block{}
			continue
		}
		current = append(current, b)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}
