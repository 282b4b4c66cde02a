package symmetry

// Rotation parts of the Laue groups, applied to row vectors (hkl · R).
// The first eight tables are the reference settings used by SAINT/XD2006 data;
// the trigonal, hexagonal and m-3 tables use the standard hexagonal and cubic
// reciprocal axes.

var laue1 = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

var laueBar1 = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
}

var laue2OverM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
}

var laue222 = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
}

var laueMMM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

var laue4OverM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, -1}},
}

var laue4OverMMM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}},
}

var laueMBar3 = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, -1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{0, -1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{0, -1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {-1, 0, 0}, {0, -1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, -1, 0}},
	{{0, 0, -1}, {1, 0, 0}, {0, -1, 0}},
	{{0, 1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{0, 1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, 0, -1}, {1, 0, 0}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {-1, 0, 0}, {0, 1, 0}},
	{{0, 0, 1}, {1, 0, 0}, {0, -1, 0}},
	{{0, -1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
}

var laueMBar3M = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, 1}, {-1, 0, 0}, {0, -1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {1, 0, 0}, {0, -1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{0, 1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{0, -1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{1, 0, 0}, {0, 0, 1}, {0, -1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, 0, -1}, {-1, 0, 0}, {0, -1, 0}},
	{{0, 0, -1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, 1}, {1, 0, 0}, {0, -1, 0}},
	{{0, 0, 1}, {-1, 0, 0}, {0, 1, 0}},
	{{0, -1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{0, 1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{0, -1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, 1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
	{{1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, -1, 0}},
	{{0, 0, -1}, {0, -1, 0}, {1, 0, 0}},
	{{0, 0, -1}, {0, 1, 0}, {-1, 0, 0}},
	{{0, 0, 1}, {0, -1, 0}, {-1, 0, 0}},
	{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}},
}

var laueBar3 = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{-1, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {-1, 1, 0}, {0, 0, -1}},
	{{1, -1, 0}, {1, 0, 0}, {0, 0, -1}},
}

var laue6OverM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}},
	{{-1, 1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{0, 1, 0}, {-1, 1, 0}, {0, 0, -1}},
	{{-1, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 1, 0}, {0, 0, 1}},
	{{1, -1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, -1, 0}, {0, 0, -1}},
}

var laue6OverMMM = []Operator{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{1, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, -1, 0}, {0, 0, 1}},
	{{-1, 1, 0}, {0, 1, 0}, {0, 0, -1}},
	{{-1, 1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{1, 0, 0}, {1, -1, 0}, {0, 0, -1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {-1, 1, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 1, 0}, {0, 0, -1}},
	{{1, -1, 0}, {0, -1, 0}, {0, 0, 1}},
	{{1, -1, 0}, {0, -1, 0}, {0, 0, -1}},
	{{0, 1, 0}, {-1, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {-1, 1, 0}, {0, 0, 1}},
	{{-1, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {1, -1, 0}, {0, 0, 1}},
	{{-1, 1, 0}, {0, 1, 0}, {0, 0, 1}},
	{{0, -1, 0}, {1, -1, 0}, {0, 0, -1}},
	{{1, -1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}},
}

var registry = map[string][]Operator{
	"1":     laue1,
	"-1":    laueBar1,
	"2/m":   laue2OverM,
	"222":   laue222,
	"mmm":   laueMMM,
	"4/m":   laue4OverM,
	"4/mmm": laue4OverMMM,
	"m-3":   laueMBar3,
	"m-3m":  laueMBar3M,
	"-3":    laueBar3,
	"6/m":   laue6OverM,
	"6/mmm": laue6OverMMM,
}
