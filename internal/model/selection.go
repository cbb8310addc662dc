package model

// Selection is the user input for one render pass.
type Selection struct {
	Months    int      `json:"months"`
	YMin      float64  `json:"ymin"`
	YMax      float64  `json:"ymax"`
	Companies []string `json:"companies"`
}

// Has reports whether name is among the selected companies.
func (s Selection) Has(name string) bool {
	for _, c := range s.Companies {
		if c == name {
			return true
		}
	}
	return false
}
