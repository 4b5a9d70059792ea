package counting

import "math"

// BucketMin and BucketMax bound the TC bucketing range; bucket 0 holds every
// floor(TC) <= BucketMin ("<=-2"), and the last bucket holds every
// floor(TC) >= BucketMax (">=12").
const (
	BucketMin = -2
	BucketMax = 12
)

// NumBuckets is len({<=-2, -1, 0, ..., 11, >=12}): the 13 integers -1..11
// plus the two clipped ends, so 15.
// Kept as a derived constant so callers never hardcode the bucket count.
const NumBuckets = (BucketMax - 1) - (BucketMin + 1) + 1 + 2

// Bucket maps the integer floor of a true count to its bucket index in
// [0, NumBuckets). Index 0 is the "<=-2" catch-all, index NumBuckets-1 is the
// ">=12" catch-all, and everything between is floor(tc)-BucketMin (so -1 -> 1,
// 0 -> 2, ..., 11 -> 13).
func Bucket(tc float64) int {
	floor := int(math.Floor(tc))
	if floor <= BucketMin {
		return 0
	}
	if floor >= BucketMax {
		return NumBuckets - 1
	}
	return floor - BucketMin
}

// BucketLabel renders a bucket index back to its display label.
func BucketLabel(idx int) string {
	if idx == 0 {
		return "<=-2"
	}
	if idx == NumBuckets-1 {
		return ">=12"
	}
	tc := idx + BucketMin
	if tc >= 0 {
		return "+" + itoa(tc)
	}
	return itoa(tc)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
