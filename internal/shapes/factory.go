package shapes

// New returns a fresh shape of the given kind with all coordinates at zero.
func New(k Kind) (Shape, error) {
	switch k {
	case KindPoint:
		return &Point{}, nil
	case KindLine:
		return &Line{}, nil
	case KindRect:
		return &Rect{}, nil
	case KindEllipse:
		return &Ellipse{}, nil
	case KindStar:
		return &Star{}, nil
	case KindLineCircles:
		return &LineWithCircles{}, nil
	case KindCube:
		return &CubeFrame{}, nil
	}
	return nil, &UnknownKindError{Name: k.String()}
}

// NewNamed resolves name with ParseKind and constructs the shape.
func NewNamed(name string) (Shape, error) {
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return New(k)
}

// NewAt constructs a shape of kind k with the given coordinates.
func NewAt(k Kind, x1, y1, x2, y2 float64) (Shape, error) {
	s, err := New(k)
	if err != nil {
		return nil, err
	}
	s.SetCoords(x1, y1, x2, y2)
	return s, nil
}
