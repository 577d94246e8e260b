package client

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders a listing by one field.
type Sort struct {
	Field     string
	Direction Direction
}

func (s Sort) String() string {
	return s.Field + "," + string(s.Direction)
}

// ParseSort parses "field,direction". A missing direction means ascending.
func ParseSort(s string) (Sort, error) {
	field, dir, _ := strings.Cut(strings.TrimSpace(s), ",")
	if field == "" {
		return Sort{}, fmt.Errorf("invalid sort %q: missing field", s)
	}
	switch Direction(strings.ToLower(dir)) {
	case "", Asc:
		return Sort{Field: field, Direction: Asc}, nil
	case Desc:
		return Sort{Field: field, Direction: Desc}, nil
	}
	return Sort{}, fmt.Errorf("invalid sort %q: direction must be asc or desc", s)
}

// QueryOptions are the listing parameters the resource understands.
// Nil fields are not sent.
type QueryOptions struct {
	Page *int
	Size *int
	Sort []Sort
}

// Values encodes o as query parameters. Each sort becomes its own
// sort=field,direction parameter.
func (o QueryOptions) Values() url.Values {
	v := url.Values{}
	if o.Page != nil {
		v.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		v.Set("size", strconv.Itoa(*o.Size))
	}
	for _, s := range o.Sort {
		v.Add("sort", s.String())
	}
	return v
}

// TotalCountHeader carries the number of items across all pages.
const TotalCountHeader = "X-Total-Count"

// TotalCount returns the X-Total-Count header value, if present.
func (r *Response) TotalCount() (int, bool) {
	if r == nil {
		return 0, false
	}
	n, err := strconv.Atoi(r.Header.Get(TotalCountHeader))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Links parses the Link header into rel → page number.
func (r *Response) Links() (map[string]int, error) {
	if r == nil {
		return map[string]int{}, nil
	}
	return ParseLinks(r.Header.Get("Link"))
}

var linkRel = regexp.MustCompile(`^rel="?([^"]+)"?$`)

// ParseLinks parses an RFC 5988 Link header such as
//
//	<http://h/api/time-entries?page=1&size=20>; rel="next",<...>; rel="last"
//
// into a map from rel to the page query parameter of its URL.
func ParseLinks(header string) (map[string]int, error) {
	links := map[string]int{}
	if strings.TrimSpace(header) == "" {
		return links, nil
	}
	for _, part := range strings.Split(header, ",") {
		section := strings.Split(part, ";")
		if len(section) != 2 {
			return nil, fmt.Errorf("section could not be split on ';': %q", part)
		}
		rawURL := strings.TrimSpace(section[0])
		if !strings.HasPrefix(rawURL, "<") || !strings.HasSuffix(rawURL, ">") {
			return nil, fmt.Errorf("link url not enclosed in <>: %q", rawURL)
		}
		u, err := url.Parse(rawURL[1 : len(rawURL)-1])
		if err != nil {
			return nil, fmt.Errorf("parsing link url: %w", err)
		}
		m := linkRel.FindStringSubmatch(strings.TrimSpace(section[1]))
		if m == nil {
			return nil, fmt.Errorf("malformed rel: %q", section[1])
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil {
			return nil, fmt.Errorf("link %q has no page parameter", m[1])
		}
		links[m[1]] = page
	}
	return links, nil
}
