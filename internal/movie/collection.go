package movie

import "strings"

// Add appends m to list. It performs no uniqueness check; callers use Exists first.
func Add(list []Movie, m Movie) []Movie {
	out := make([]Movie, 0, len(list)+1)
	out = append(out, list...)
	return append(out, m)
}

// Update overlays patch on the element with the given id. Unknown ids leave
// the list unchanged.
func Update(list []Movie, id int64, patch Patch) []Movie {
	out := make([]Movie, len(list))
	for i, m := range list {
		if m.ID == id {
			m = patch.Apply(m)
		}
		out[i] = m
	}
	return out
}

// Delete removes every element with the given id.
func Delete(list []Movie, id int64) []Movie {
	return filter(list, func(m Movie) bool { return m.ID != id })
}

// Exists reports whether any element has the given id.
func Exists(list []Movie, id int64) bool {
	return Find(list, id) >= 0
}

// Find returns the index of the first element with the given id, or -1.
func Find(list []Movie, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Rate sets the user rating on the element with the given id.
func Rate(list []Movie, id int64, rating int) []Movie {
	return Update(list, id, Patch{Rating: &rating})
}

// ByDirector keeps elements whose director matches name exactly.
func ByDirector(list []Movie, name string) []Movie {
	return filter(list, func(m Movie) bool { return m.Director == name })
}

// ByGenre keeps elements whose joined genre string contains name.
// Matching is by substring, so "Crime" also matches "Crime Thriller".
func ByGenre(list []Movie, name string) []Movie {
	return filter(list, func(m Movie) bool { return strings.Contains(m.Genres, name) })
}

func filter(list []Movie, keep func(Movie) bool) []Movie {
	out := make([]Movie, 0, len(list))
	for _, m := range list {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
