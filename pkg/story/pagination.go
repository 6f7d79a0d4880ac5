package story

// Pagination is a cursor over the pages of a story. Next and Previous
// saturate at the ends.
type Pagination struct {
	pages  []Page
	cursor int
}

func NewPagination(pages []Page) (*Pagination, error) {
	if len(pages) == 0 {
		return nil, ErrEmptyStory
	}
	return &Pagination{pages: append([]Page(nil), pages...)}, nil
}

func (p *Pagination) Next() {
	if p.cursor < len(p.pages)-1 {
		p.cursor++
	}
}

func (p *Pagination) Previous() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *Pagination) Current() Page {
	return p.pages[p.cursor]
}

func (p *Pagination) Index() int {
	return p.cursor
}

func (p *Pagination) Len() int {
	return len(p.pages)
}

func (p *Pagination) IsFirst() bool {
	return p.cursor == 0
}

func (p *Pagination) IsLast() bool {
	return p.cursor == len(p.pages)-1
}
