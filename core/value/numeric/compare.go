package numeric

// Compare orders l against r under the same widening rules Binary uses:
// signed vs. signed widen to the wider signed width, unsigned vs.
// unsigned to the wider unsigned width, anything touching a float widens
// to f64, anything touching Decimal widens to Decimal. It returns -1, 0,
// or 1, or an error only when a mixed signed/unsigned comparison involves
// an unsigned operand that cannot fit in i128 (mirrors Binary's
// ErrConversion case).
func Compare(l, r Number) (int, error) {
	switch {
	case l.Kind == Dec || r.Kind == Dec:
		ld, rd := toDecimal(l), toDecimal(r)
		return ld.Cmp(rd), nil
	case l.Kind.IsFloat() || r.Kind.IsFloat():
		lf, rf := toFloat(l), toFloat(r)
		switch {
		case lf < rf:
			return -1, nil
		case lf > rf:
			return 1, nil
		default:
			return 0, nil
		}
	case l.Kind.IsSigned() && r.Kind.IsSigned():
		return l.SI.Cmp(r.SI), nil
	case l.Kind.IsUnsigned() && r.Kind.IsUnsigned():
		return l.UI.Cmp(r.UI), nil
	default:
		lb, err := toBigSigned(l)
		if err != nil {
			return 0, err
		}
		rb, err := toBigSigned(r)
		if err != nil {
			return 0, err
		}
		return lb.Cmp(rb), nil
	}
}

// Equal reports whether l and r compare equal under Compare's widening,
// treating a failed widening (ErrConversion) as "not equal" rather than
// propagating the error — used by Value equality, which never errors.
func Equal(l, r Number) bool {
	c, err := Compare(l, r)
	return err == nil && c == 0
}
