package variant

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/niksmo/zeroproof/internal/core/domain"
)

var (
	ErrUndeclaredOption = errors.New("undeclared option")
	ErrUndeclaredValue  = errors.New("undeclared option value")
	ErrDuplicateVariant = errors.New("duplicate option combination")
	ErrPartialVariant   = errors.New("variant misses declared options")
)

// Sanitize returns p without the variants that violate catalog integrity,
// along with the violations. The first of duplicate variants is kept.
func Sanitize(p domain.Product) (domain.Product, error) {
	var errs []error
	seen := make(map[string]string, len(p.Variants))
	kept := make([]domain.Variant, 0, len(p.Variants))

	for _, v := range p.Variants {
		if err := validateVariant(p, v); err != nil {
			errs = append(errs, err)
			continue
		}

		key := combinationKey(v.Options)
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf(
				"variant %q: %w with variant %q", v.ID, ErrDuplicateVariant, prev,
			))
			continue
		}
		seen[key] = v.ID
		kept = append(kept, v)
	}

	p.Variants = kept
	return p, errors.Join(errs...)
}

func validateVariant(p domain.Product, v domain.Variant) error {
	if len(v.Options) < len(p.Options) {
		return fmt.Errorf("variant %q: %w", v.ID, ErrPartialVariant)
	}
	for name, value := range v.Options {
		o, ok := p.Option(name)
		if !ok {
			return fmt.Errorf("variant %q: %w %q", v.ID, ErrUndeclaredOption, name)
		}
		if !o.HasValue(value) {
			return fmt.Errorf(
				"variant %q: %w %q=%q", v.ID, ErrUndeclaredValue, name, value,
			)
		}
	}
	return nil
}

func combinationKey(options map[string]string) string {
	pairs := make([]string, 0, len(options))
	for name, value := range options {
		pairs = append(pairs, name+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x00")
}
