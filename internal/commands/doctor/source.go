package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/chance/pkg/randgen"
)

const (
	sourceSamples = 64
	sourceRange   = 1 << 30
)

// SourceCheck verifies that the random source returns in-range, varying
// values.
type SourceCheck struct {
	src randgen.Source
}

// NewSourceCheck creates a check over src.
func NewSourceCheck(src randgen.Source) *SourceCheck {
	return &SourceCheck{src: src}
}

func (c *SourceCheck) Name() string {
	return "Random Source"
}

func (c *SourceCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	values, err := c.sample()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Source readable",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{Label: "Source readable", Status: StatusPass})

	distinct := map[int]struct{}{}
	for _, v := range values {
		if v < 0 || v >= sourceRange {
			result.Items = append(result.Items, CheckItem{
				Label:  "Values in range",
				Status: StatusFail,
				Detail: fmt.Sprintf("got %d, want [0, %d)", v, sourceRange),
			})
			return result
		}
		distinct[v] = struct{}{}
	}
	result.Items = append(result.Items, CheckItem{Label: "Values in range", Status: StatusPass})

	if len(distinct) == 1 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Values vary",
			Status: StatusFail,
			Detail: fmt.Sprintf("%d samples returned the same value", len(values)),
		})
		return result
	}
	result.Items = append(result.Items, CheckItem{Label: "Values vary", Status: StatusPass})

	return result
}

// sample draws from the source, converting a panic into an error.
func (c *SourceCheck) sample() (values []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()

	values = make([]int, 0, sourceSamples)
	for range sourceSamples {
		values = append(values, c.src.IntN(sourceRange))
	}
	return values, nil
}
