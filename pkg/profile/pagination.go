package profile

// PageLink is one entry of the pagination strip.
type PageLink struct {
	Number int
	Active bool
}

// TotalPages returns ceil(total/size), or 0 when size is not positive.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Links returns one link per page, with the current page marked active.
func Links(total, size, current int) []PageLink {
	n := TotalPages(total, size)
	if n == 0 {
		return nil
	}
	links := make([]PageLink, n)
	for i := range links {
		links[i] = PageLink{Number: i + 1, Active: i+1 == current}
	}
	return links
}
