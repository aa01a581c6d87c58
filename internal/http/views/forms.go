package views

import (
	"net/http"
	"strconv"
	"strings"
)

// form reads raw form values and collects the ones that do not parse.
type form struct {
	r      *http.Request
	errors map[string]string
}

func newForm(r *http.Request) *form {
	return &form{r: r, errors: map[string]string{}}
}

func (f *form) str(name string) string {
	return strings.TrimSpace(f.r.PostFormValue(name))
}

func (f *form) intVal(name string) int {
	s := f.str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.errors[name] = "must be a whole number"
	}
	return v
}

func (f *form) optionalInt(name string) *int {
	if f.str(name) == "" {
		return nil
	}
	v := f.intVal(name)
	return &v
}

func (f *form) floatVal(name string) float64 {
	s := f.str(name)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.errors[name] = "must be a number"
	}
	return v
}

func (f *form) optionalFloat(name string) *float64 {
	if f.str(name) == "" {
		return nil
	}
	v := f.floatVal(name)
	return &v
}

func (f *form) valid() bool {
	return len(f.errors) == 0
}

// merge adds the controller's field errors to the parse errors.
func (f *form) merge(errs map[string]string) {
	for k, v := range errs {
		if _, ok := f.errors[k]; !ok {
			f.errors[k] = v
		}
	}
}
