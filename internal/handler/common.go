package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/repository"
)

// getUserID extracts the authenticated user's ID stored by the JWTAuth
// middleware.  Values may arrive as several numeric types depending on
// how they were set; anything unparseable is treated as missing.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentUser returns the resolved user record stored by JWTAuth.
func currentUser(c echo.Context) (repository.User, error) {
	u, ok := c.Get("user").(repository.User)
	if !ok {
		return repository.User{}, errors.New("no user in context")
	}
	return u, nil
}

// parsePagination validates the order/page/page_size browse parameters.
// Empty strings take the documented defaults (asc, page 1, size 100);
// page and page_size must both be at least 1.
func parsePagination(order, page, pageSize string) (string, int, int, error) {
	if order == "" {
		order = "asc"
	}
	if order != "asc" && order != "desc" {
		return "", 0, 0, errors.New("order must be asc or desc")
	}
	p := 1
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return "", 0, 0, errors.New("page must be >= 1")
		}
		p = n
	}
	ps := 100
	if pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil || n < 1 {
			return "", 0, 0, errors.New("page_size must be >= 1")
		}
		ps = n
	}
	return order, p, ps, nil
}

// validateSearchQuery enforces the 3..255 character bounds on catalog
// search input.
func validateSearchQuery(q string) error {
	if len(q) < 3 {
		return errors.New("query must be at least 3 characters")
	}
	if len(q) > 255 {
		return errors.New("query must be at most 255 characters")
	}
	return nil
}
