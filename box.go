package veil

type Box struct {
	Min, Max Vector
}

func BoxForBoxes(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	box := boxes[0]
	for _, b := range boxes[1:] {
		box = box.Extend(b)
	}
	return box
}

func (a Box) Extend(b Box) Box {
	return Box{a.Min.Min(b.Min), a.Max.Max(b.Max)}
}

func (a Box) Center() Vector {
	return a.Min.Add(a.Max).MulScalar(0.5)
}

func (a Box) Size() Vector {
	return a.Max.Sub(a.Min)
}

func (a Box) Corners() []Vector {
	min, max := a.Min, a.Max
	return []Vector{
		{min.X, min.Y, min.Z},
		{max.X, min.Y, min.Z},
		{min.X, max.Y, min.Z},
		{max.X, max.Y, min.Z},
		{min.X, min.Y, max.Z},
		{max.X, min.Y, max.Z},
		{min.X, max.Y, max.Z},
		{max.X, max.Y, max.Z},
	}
}
