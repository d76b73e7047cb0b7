package doctor

import "context"

// Formatter expands named templates.
type Formatter interface {
	TemplateNames() []string
	Template(name string) (string, error)
	Format(template string, n int, plain bool) ([]string, error)
}

// TemplatesCheck expands every named template once with the active rules.
type TemplatesCheck struct {
	formatter Formatter
}

// NewTemplatesCheck creates a new named template check.
func NewTemplatesCheck(f Formatter) *TemplatesCheck {
	return &TemplatesCheck{formatter: f}
}

func (c *TemplatesCheck) Name() string {
	return "Templates"
}

func (c *TemplatesCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	names := c.formatter.TemplateNames()
	if len(names) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Named templates",
			Status: StatusPass,
			Detail: "none defined",
		})
		return result
	}

	for _, name := range names {
		item := CheckItem{Label: name, Status: StatusPass}

		tmpl, err := c.formatter.Template(name)
		if err == nil {
			var out []string
			out, err = c.formatter.Format(tmpl, 1, false)
			if err == nil {
				item.Detail = out[0]
			}
		}
		if err != nil {
			item.Status = StatusFail
			item.Detail = err.Error()
		}

		result.Items = append(result.Items, item)
	}

	return result
}
