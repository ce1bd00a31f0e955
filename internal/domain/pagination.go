package domain

// FirstPage is the page every feed starts from.
const FirstPage = 1

// TotalPages returns ceiling(Total / PerPage); if PerPage is 0, TotalPages is 0.
func (p EventPage) TotalPages() int {
	if p.PerPage <= 0 {
		return 0
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// NormalizePage clamps page numbers below FirstPage to FirstPage.
func NormalizePage(page int) int {
	if page < FirstPage {
		return FirstPage
	}
	return page
}
