package common

// There's no standard library package to deal with slices [grumble grumble]

// Contains returns whether `v` is in `slice`.
func Contains[T comparable](slice []T, v T) bool {
	for i := range slice {
		if slice[i] == v {
			return true
		}
	}
	return false
}

// Without returns slice with every occurrence of v removed. The original slice isn't modified.
func Without[T comparable](slice []T, v T) []T {
	if !Contains(slice, v) {
		return slice
	}

	out := make([]T, 0, len(slice)-1)
	for i := range slice {
		if slice[i] != v {
			out = append(out, slice[i])
		}
	}
	return out
}
