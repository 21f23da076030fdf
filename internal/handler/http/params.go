package http

import (
	"net/http"
	"strconv"

	"github.com/emp-proj/employee-register-go/internal/domain/attendance"
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// queryParser collects malformed query parameters so they are reported together.
type queryParser struct {
	r    *http.Request
	errs validator.ValidationErrors
}

func newQueryParser(r *http.Request) *queryParser {
	return &queryParser{r: r}
}

func (p *queryParser) str(key string) string {
	return p.r.URL.Query().Get(key)
}

func (p *queryParser) strPtr(key string) *string {
	if v := p.str(key); v != "" {
		return &v
	}
	return nil
}

func (p *queryParser) int(key string) int {
	v := p.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = append(p.errs, validator.ValidationError{Field: key, Message: key + " must be a number"})
		return 0
	}
	return n
}

func (p *queryParser) intPtr(key string) *int {
	if p.str(key) == "" {
		return nil
	}
	n := p.int(key)
	return &n
}

func (p *queryParser) int64(key string) int64 {
	v := p.str(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.errs = append(p.errs, validator.ValidationError{Field: key, Message: key + " must be a number"})
		return 0
	}
	return n
}

func (p *queryParser) bool(key string) bool {
	v := p.str(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, validator.ValidationError{Field: key, Message: key + " must be true or false"})
		return false
	}
	return b
}

// filter reads the shared attendance filter parameters.
func (p *queryParser) filter() attendance.FilterQuery {
	return attendance.FilterQuery{
		EmployeeID: p.int64("employee_id"),
		Status:     p.str("status"),
		StartDate:  p.strPtr("start_date"),
		EndDate:    p.strPtr("end_date"),
		Search:     p.str("search"),
	}
}

func (p *queryParser) err() error {
	if len(p.errs) > 0 {
		return p.errs
	}
	return nil
}

// idParam parses a positive int64 URL parameter.
func idParam(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, key), 10, 64)
	if err != nil || id <= 0 {
		return 0, validator.ValidationErrors{{Field: key, Message: key + " must be a positive number"}}
	}
	return id, nil
}
