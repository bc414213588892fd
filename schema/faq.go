package schema

// FAQItem is one question and its answer.
type FAQItem struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// FAQSchema builds an FAQPage. Items keep their input order.
func FAQSchema(items []FAQItem) Object {
	questions := make([]Object, 0, len(items))
	for _, it := range items {
		questions = append(questions, Object{
			"@type": "Question",
			"name":  it.Question,
			"acceptedAnswer": Object{
				"@type": "Answer",
				"text":  it.Answer,
			},
		})
	}
	return Object{
		"@context":   Context,
		"@type":      "FAQPage",
		"mainEntity": questions,
	}
}

// HowToStep is one step of a guide. Image is optional.
type HowToStep struct {
	Name  string `json:"name" yaml:"name"`
	Text  string `json:"text" yaml:"text"`
	Image string `json:"image,omitempty" yaml:"image"`
}

// HowToSchema builds a HowTo. Steps are numbered by their position in steps;
// totalTime is an ISO-8601 duration such as "PT30M" and may be empty.
func HowToSchema(name, description string, steps []HowToStep, totalTime string) Object {
	el := make([]Object, 0, len(steps))
	for i, s := range steps {
		step := Object{
			"@type":    "HowToStep",
			"position": i + 1,
			"name":     s.Name,
			"text":     s.Text,
		}
		if s.Image != "" {
			step["image"] = s.Image
		}
		el = append(el, step)
	}
	m := Object{
		"@context":    Context,
		"@type":       "HowTo",
		"name":        name,
		"description": description,
		"step":        el,
	}
	if totalTime != "" {
		m["totalTime"] = totalTime
	}
	return m
}
