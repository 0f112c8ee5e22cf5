// Package vectordb owns embedding generation and similarity search over
// chunked content.
package vectordb

// Filter is a tagged metadata predicate for retrieval and deletion. The
// index compiles a Filter into its native filter syntax, keeping retrieval
// logic independent of any particular store's filter grammar.
type Filter interface {
	isFilter()
}

// ByFilename matches chunks whose filename is in the given set.
type ByFilename struct {
	Names []string
}

// ByURL matches chunks whose source URL is in the given set.
type ByURL struct {
	URLs []string
}

// Or matches chunks satisfying any of the nested filters.
type Or struct {
	Filters []Filter
}

func (ByFilename) isFilter() {}
func (ByURL) isFilter()      {}
func (Or) isFilter()         {}

// ContentFilter builds the filter for a mixed set of names, where each name
// is either a filename or a URL. URL-ness is determined by an "http" prefix.
// A single-kind set compiles to a single-discriminant filter; a mixed set
// becomes a disjunction.
func ContentFilter(names []string) Filter {
	var files, urls []string
	for _, name := range names {
		if isURL(name) {
			urls = append(urls, name)
		} else {
			files = append(files, name)
		}
	}

	switch {
	case len(files) > 0 && len(urls) > 0:
		return Or{Filters: []Filter{ByFilename{Names: files}, ByURL{URLs: urls}}}
	case len(urls) > 0:
		return ByURL{URLs: urls}
	default:
		return ByFilename{Names: files}
	}
}

// KeyFilter matches every chunk belonging to the source key, whichever
// discriminant it lives under.
func KeyFilter(key string) Filter {
	return Or{Filters: []Filter{
		ByFilename{Names: []string{key}},
		ByURL{URLs: []string{key}},
	}}
}

func isURL(name string) bool {
	return len(name) >= 4 && name[:4] == "http"
}
