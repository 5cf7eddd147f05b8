package decay

import "fmt"

// AngularMomentumRange2 returns the allowed orbital angular momentum
// range [minL, maxL] for a two-body decay, from the doubled spins of the
// mother (s0) and daughters. Errors if the combined spin sum is not an
// integer.
func AngularMomentumRange2(s0, s1, s2 int) (minL, maxL int, err error) {
	m := absInt(s0 - s1 - s2)
	if v := absInt(s0 - s1 + s2); v < m {
		m = v
	}
	if v := absInt(s0 + s1 - s2); v < m {
		m = v
	}
	if m%2 != 0 {
		return 0, 0, fmt.Errorf("decay: sum of spins %d %d %d is not integer", s0, s1, s2)
	}
	return m / 2, (s0 + s1 + s2) / 2, nil
}

// AngularMomentumRange3 is the three-body analogue: the minimum runs over
// all sign combinations of |s0 ± s1 ± s2 ± s3|.
func AngularMomentumRange3(s0, s1, s2, s3 int) (minL, maxL int, err error) {
	m := absInt(s0 + s1 + s2 - s3)
	for _, v := range [...]int{
		absInt(s0 - s1 + s2 + s3),
		absInt(s0 + s1 - s2 + s3),
		absInt(s0 - s1 - s2 + s3),
		absInt(s0 - s1 + s2 - s3),
		absInt(s0 + s1 - s2 - s3),
		absInt(s0 - s1 - s2 - s3),
	} {
		if v < m {
			m = v
		}
	}
	if m%2 != 0 {
		return 0, 0, fmt.Errorf("decay: sum of spins %d %d %d %d is not integer", s0, s1, s2, s3)
	}
	return m / 2, (s0 + s1 + s2 + s3) / 2, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
