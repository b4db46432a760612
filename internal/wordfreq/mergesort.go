package wordfreq

// mergeSort sorts entries by word with a bottom-up merge sort, alternating
// between entries and one scratch buffer. It owns entries and may return
// either backing array.
func mergeSort(entries []Entry) Vector {
	n := len(entries)
	if n < 2 {
		return Vector(entries)
	}
	src := entries
	dst := make([]Entry, n)
	for width := 1; width < n; width *= 2 {
		for lo := 0; lo < n; lo += 2 * width {
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			merge(dst[lo:hi], src[lo:mid], src[mid:hi])
		}
		src, dst = dst, src
	}
	return Vector(src)
}

// merge writes the ordered union of the sorted runs left and right into out,
// which must have room for both. Ties take from left first.
func merge(out, left, right []Entry) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if right[j].Word < left[i].Word {
			out[k] = right[j]
			j++
		} else {
			out[k] = left[i]
			i++
		}
		k++
	}
	k += copy(out[k:], left[i:])
	copy(out[k:], right[j:])
}
