package minvalues

func single() int {
	x := 1
	return x
}

func double(c bool) int { // want `x may be one of \[1 2\] at exit of double`
	x := 1
	if c {
		x = 2
	}
	return x
}
