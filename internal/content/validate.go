package content

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
)

// Problem is one content defect found by Validate.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Report summarizes a validation pass.
type Report struct {
	Episodes int
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Validate checks the whole content tree: malformed files, empty or duplicate
// slugs, duplicate numbers, numbered episodes stored outside their number's
// directory, and transcripts that fail to decode. The error is non-nil only
// when the content root itself cannot be read.
func (r *Repository) Validate() (Report, error) {
	entries, errs, err := r.scan()
	if err != nil {
		return Report{}, err
	}

	report := Report{Episodes: len(entries)}
	for _, err := range errs {
		report.Problems = append(report.Problems, problemFromError(err))
	}

	slugs := map[string]string{}
	numbers := map[int]string{}
	for _, e := range entries {
		path := filepath.Join(r.root, e.dir, metaFile)
		ep := e.episode

		if ep.Slug == "" {
			report.add(path, "missing slug")
		} else if other, dup := slugs[ep.Slug]; dup {
			report.add(path, fmt.Sprintf("slug %q already used by %s", ep.Slug, other))
		} else {
			slugs[ep.Slug] = path
		}

		if ep.Number == nil {
			continue
		}
		n := *ep.Number
		if other, dup := numbers[n]; dup {
			report.add(path, fmt.Sprintf("number %d already used by %s", n, other))
		} else {
			numbers[n] = path
		}
		if e.dir != strconv.Itoa(n) {
			report.add(path, fmt.Sprintf("episode %d is stored in directory %q; transcripts are looked up in %q", n, e.dir, strconv.Itoa(n)))
			continue
		}

		locales, err := r.Locales(n)
		if err != nil {
			report.Problems = append(report.Problems, problemFromError(err))
			continue
		}
		for _, loc := range locales {
			if _, _, err := r.GetSegments(n, loc); err != nil {
				report.Problems = append(report.Problems, problemFromError(err))
			}
		}
	}
	return report, nil
}

func (r *Report) add(path, msg string) {
	r.Problems = append(r.Problems, Problem{Path: path, Message: msg})
}

func problemFromError(err error) Problem {
	var mce *MalformedContentError
	if errors.As(err, &mce) {
		return Problem{Path: mce.Path, Message: mce.Err.Error()}
	}
	return Problem{Path: "", Message: err.Error()}
}
