package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/timezone"
)

// ListFilter turns a query parameter into a WHERE clause.
type ListFilter func(c *gin.Context, q *resource.ListQuery) error

func parseListQuery(c *gin.Context, filters []ListFilter) (resource.ListQuery, error) {
	q := resource.ListQuery{
		Search: c.Query("search"),
		SortBy: c.Query("sortBy"),
		Sort:   c.Query("sort"),
		Page:   resource.ParseInt(c.Query("page"), resource.DefaultPage),
		Limit:  resource.ParseInt(c.Query("limit"), resource.DefaultLimit),
	}

	for _, f := range filters {
		if err := f(c, &q); err != nil {
			return resource.ListQuery{}, err
		}
	}
	return q, nil
}

func invalidFilter(param string) error {
	return httperr.ErrBadRequest("invalid_filter", "Invalid value for "+param)
}

// --------------------------------------------------
// Filter builders
// --------------------------------------------------

func EqFilter(param, column string) ListFilter {
	return func(c *gin.Context, q *resource.ListQuery) error {
		if v := c.Query(param); v != "" {
			q.Where(column+" = ?", v)
		}
		return nil
	}
}

func IntFilter(param, column, op string) ListFilter {
	return func(c *gin.Context, q *resource.ListQuery) error {
		v := c.Query(param)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalidFilter(param)
		}
		q.Where(column+" "+op+" ?", n)
		return nil
	}
}

func FloatFilter(param, column, op string) ListFilter {
	return func(c *gin.Context, q *resource.ListQuery) error {
		v := c.Query(param)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return invalidFilter(param)
		}
		q.Where(column+" "+op+" ?", f)
		return nil
	}
}

func BoolFilter(param, column string) ListFilter {
	return func(c *gin.Context, q *resource.ListQuery) error {
		v := c.Query(param)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return invalidFilter(param)
		}
		q.Where(column+" = ?", b)
		return nil
	}
}

// DayFilter keeps rows whose column falls on the YYYY-MM-DD day in tz.
func DayFilter(param, column, tz string) ListFilter {
	return func(c *gin.Context, q *resource.ListQuery) error {
		v := c.Query(param)
		if v == "" {
			return nil
		}
		start, end, err := timezone.DayRange(v, tz)
		if err != nil {
			return err
		}
		q.Where(column+" >= ? AND "+column+" < ?", start.UTC(), end.UTC())
		return nil
	}
}
