package domain

// Metadata describes one page of a paginated listing.
type Metadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

// NewMetadata computes paging bounds; LastPage is 0 for an empty result.
func NewMetadata(totalRecords, page, pageSize int) *Metadata {
	lastPage := 0
	if pageSize > 0 {
		lastPage = (totalRecords + pageSize - 1) / pageSize
	}

	return &Metadata{
		CurrentPage:  page,
		FirstPage:    1,
		LastPage:     lastPage,
		PageSize:     pageSize,
		TotalRecords: totalRecords,
	}
}
