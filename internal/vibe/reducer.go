package vibe

// Event is a vibe search state transition.
type Event interface {
	vibeEvent()
}

// SearchRequested starts a search for Query within Artist's songs.
type SearchRequested struct {
	Query  string
	Artist string
	Page   int
}

// SearchSucceeded delivers one server page.
type SearchSucceeded struct {
	Songs      []Song
	Page       int
	TotalPages int
	TotalItems int
}

// SearchFailed reports a failed search; prior results stay visible.
type SearchFailed struct{ Message string }

// YearSelected applies or clears the year filter.
type YearSelected struct{ ID string }

// PageChangeRequested moves to another server page.
type PageChangeRequested struct{ Page int }

func (SearchRequested) vibeEvent()     {}
func (SearchSucceeded) vibeEvent()     {}
func (SearchFailed) vibeEvent()        {}
func (YearSelected) vibeEvent()        {}
func (PageChangeRequested) vibeEvent() {}

// Reduce applies e to s and returns the new state. s is not modified.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case SearchRequested:
		s.Fetch = s.Fetch.Request()
		s.Query = e.Query
		s.Artist = e.Artist

	case SearchSucceeded:
		s.Fetch = s.Fetch.Succeed(e.Songs)
		s.Pagination = Pagination{
			CurrentPage: e.Page,
			TotalPages:  e.TotalPages,
			TotalItems:  e.TotalItems,
		}
		s.YearOptions = GenerateYearOptions(e.Songs)
		s = clearFilter(s)

	case SearchFailed:
		s.Fetch = s.Fetch.Fail(e.Message)

	case YearSelected:
		if e.ID == AllYearsID {
			return clearFilter(s)
		}
		year, ok := optionYear(s.YearOptions, e.ID)
		if !ok {
			return s
		}
		s.SelectedYear = e.ID
		s.YearOptions = selectOption(s.YearOptions, e.ID)
		s.IsFiltered = true
		s.FilteredSongs = FilterByYear(s.Fetch.Data, year)

	case PageChangeRequested:
		s.Pagination.CurrentPage = e.Page
		s = clearFilter(s)
	}
	return s
}

func clearFilter(s State) State {
	s.IsFiltered = false
	s.FilteredSongs = nil
	s.SelectedYear = AllYearsID
	s.YearOptions = selectOption(s.YearOptions, AllYearsID)
	return s
}

func optionYear(options []YearOption, id string) (string, bool) {
	for _, o := range options {
		if o.ID == id {
			return o.Year, true
		}
	}
	return "", false
}

func selectOption(options []YearOption, id string) []YearOption {
	out := make([]YearOption, len(options))
	for i, o := range options {
		o.IsSelected = o.ID == id
		out[i] = o
	}
	return out
}
