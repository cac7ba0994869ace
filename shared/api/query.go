package api

import (
	"net/url"
	"strconv"
)

// GalleryQuery carries the raw filter values of a gallery request. Values are
// sent as-is; the server normalizes them and drops anything it cannot parse.
type GalleryQuery struct {
	Username   string
	PostNumber int
	FromDate   string
	ToDate     string
}

func (q GalleryQuery) IsZero() bool {
	return q == GalleryQuery{}
}

// Values encodes the query as URL parameters, omitting unset fields.
func (q GalleryQuery) Values() url.Values {
	v := url.Values{}
	if q.Username != "" {
		v.Set("username", q.Username)
	}
	if q.PostNumber > 0 {
		v.Set("post_number", strconv.Itoa(q.PostNumber))
	}
	if q.FromDate != "" {
		v.Set("from_date", q.FromDate)
	}
	if q.ToDate != "" {
		v.Set("to_date", q.ToDate)
	}
	return v
}

// GalleryQueryFromValues picks the gallery filter parameters out of a raw
// query string. Unparseable post_number is kept as zero, matching the
// server's silent-degradation rule.
func GalleryQueryFromValues(v url.Values) GalleryQuery {
	q := GalleryQuery{
		Username: v.Get("username"),
		FromDate: v.Get("from_date"),
		ToDate:   v.Get("to_date"),
	}
	if n, err := strconv.Atoi(v.Get("post_number")); err == nil && n > 0 {
		q.PostNumber = n
	}
	return q
}
