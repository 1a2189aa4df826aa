package leadview

const DefaultPageSize = 10

type Page struct {
	Rows       []Lead
	Number     int
	TotalPages int
	Total      int
}

// Paginate slices leads into 1-indexed pages. The page number is clamped to
// [1, totalPages] and an empty collection still yields one (empty) page.
func Paginate(leads []Lead, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(leads)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Rows:       leads[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}
