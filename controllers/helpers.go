package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	switch id := v.(type) {
	case uint:
		return id, true
	case int:
		return uint(id), true
	case int64:
		return uint(id), true
	default:
		return 0, false
	}
}

// windowFromQuery parses optional from/to date query params, defaulting to
// the given bounds.
func windowFromQuery(c *gin.Context, defFrom, defTo time.Time) (time.Time, time.Time, error) {
	loc := time.Now().Location()
	from, to := defFrom, defTo

	if v := c.Query("from"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return from, to, errors.New("invalid from date")
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, loc)
		if err != nil {
			return from, to, errors.New("invalid to date")
		}
		to = parsed
	}
	if to.Before(from) {
		return from, to, errors.New("`to` must be on/after `from`")
	}
	return from, to, nil
}
