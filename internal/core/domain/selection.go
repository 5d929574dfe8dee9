package domain

// A Selection maps an option name to the value chosen by the shopper.
// It may be incomplete while the shopper is still choosing.
type Selection map[string]string

func (s Selection) Clone() Selection {
	c := make(Selection, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// With returns a copy of s with option set to value.
func (s Selection) With(option, value string) Selection {
	c := s.Clone()
	c[option] = value
	return c
}
