package a

import "strconv"

func constant() int { // want `x may be one of \[1\] at exit of constant`
	x := 1
	return x
}

func redefined() int { // want `x may be one of \[2\] at exit of redefined`
	x := 1
	x = 2
	return x
}

func branch(c bool) int { // want `x may be one of \[1 2\] at exit of branch`
	x := 1
	if c {
		x = 2
	}
	return x
}

func elseIgnored(c bool) int { // want `x may be one of \[1 2\] at exit of elseIgnored`
	x := 1
	if c {
		x = 2
	} else {
		x = 3
	}
	return x
}

func shadowed(c bool) int { // want `x may be one of \[1\] at exit of shadowed`
	x := 1
	if c {
		x := 2
		_ = x
	}
	return x
}

func octal() int { // want `y may be one of \[0\] at exit of octal`
	x := 010
	y := 0
	return x + y
}

func copies(c bool) (int, int) { // want `a may be one of \[3 4\] at exit of copies` `b may be one of \[3\] at exit of copies`
	a := 3
	b := a
	if c {
		a = 4
	}
	return a, b
}

func nested(c, d bool) int { // want `x may be one of \[1 4 5 6\] at exit of nested`
	x := 1
	if c {
		x = 4
		if d {
			x = 5
		}
	}
	if !d {
		x = 6
	}
	return x
}

func unknown(n int, s string) int {
	x := n
	y, _ := strconv.Atoi(s)
	z := 0x10
	var w int
	w = x + y + z
	return w
}

type T struct{}

func (T) method() int { // want `v may be one of \[7\] at exit of T.method`
	v := 7
	return v
}

func (t *T) pointer() int { // want `v may be one of \[8 9\] at exit of T.pointer`
	v := 8
	if t == nil {
		v = 9
	}
	return v
}
