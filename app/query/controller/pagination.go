package controller

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

type pageSpec struct {
	Page     int
	PageSize int
}

func parsePageSpec(r *http.Request) (pageSpec, error) {
	qs := r.URL.Query()

	page := 1
	if v := qs.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return pageSpec{}, errInvalidPage
		}
		page = n
	}

	pageSize := defaultPageSize
	if v := qs.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return pageSpec{}, errInvalidPageSize
		}
		if n > maxPageSize {
			n = maxPageSize
		}
		pageSize = n
	}

	return pageSpec{Page: page, PageSize: pageSize}, nil
}

var (
	errInvalidPage     = &parseError{msg: "invalid page, must be a positive integer"}
	errInvalidPageSize = &parseError{msg: "invalid pageSize, must be a positive integer"}
)

type parseError struct{ msg string }

func (e *parseError) Error() string { return e.msg }
