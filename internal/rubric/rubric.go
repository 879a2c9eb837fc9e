package rubric

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultCriterionName     = "New Criterion"
	defaultCriterionWeight   = 10
	defaultCriterionMaxScore = 10

	targetTotalWeight = 100.0
)

var (
	ErrCriterionNotFound = errors.New("criterion not found")
	ErrUnknownField      = errors.New("unknown criterion field")
)

// Criterion is a named, weighted scoring dimension with a maximum raw score.
type Criterion struct {
	ID       int     `json:"id" yaml:"id" validate:"gt=0"`
	Name     string  `json:"name" yaml:"name" validate:"required"`
	Weight   float64 `json:"weight" yaml:"weight" validate:"gte=0"`
	MaxScore float64 `json:"maxScore" yaml:"max_score" validate:"gte=1"`
}

// Field names an editable attribute of a Criterion.
type Field string

const (
	FieldName     Field = "name"
	FieldWeight   Field = "weight"
	FieldMaxScore Field = "maxScore"
)

// ParseField maps a widget field name onto a Field.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldName, FieldWeight, FieldMaxScore:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Rubric is the ordered collection of criteria in effect for evaluations.
// It is not safe for concurrent use; callers serialize access.
type Rubric struct {
	criteria []Criterion
}

// New builds a rubric holding a copy of the given criteria in order.
func New(criteria ...Criterion) *Rubric {
	c := make([]Criterion, len(criteria))
	copy(c, criteria)
	return &Rubric{criteria: c}
}

// DefaultCriteria returns the built-in presentation rubric.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{ID: 1, Name: "Content Organization", Weight: 25, MaxScore: 10},
		{ID: 2, Name: "Delivery & Speaking", Weight: 25, MaxScore: 10},
		{ID: 3, Name: "Visual Aids", Weight: 20, MaxScore: 10},
		{ID: 4, Name: "Audience Engagement", Weight: 20, MaxScore: 10},
		{ID: 5, Name: "Time Management", Weight: 10, MaxScore: 10},
	}
}

// Default returns a rubric seeded with DefaultCriteria.
func Default() *Rubric {
	return New(DefaultCriteria()...)
}

// Criteria returns a copy of the criteria in insertion order.
func (r *Rubric) Criteria() []Criterion {
	out := make([]Criterion, len(r.criteria))
	copy(out, r.criteria)
	return out
}

func (r *Rubric) Len() int {
	return len(r.criteria)
}

// Get returns the criterion with the given id.
func (r *Rubric) Get(id int) (Criterion, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.criteria[i], true
	}
	return Criterion{}, false
}

// Add appends a criterion with default attributes and an id one above the
// current maximum.
func (r *Rubric) Add() Criterion {
	maxID := 0
	for _, c := range r.criteria {
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	c := Criterion{
		ID:       maxID + 1,
		Name:     defaultCriterionName,
		Weight:   defaultCriterionWeight,
		MaxScore: defaultCriterionMaxScore,
	}
	r.criteria = append(r.criteria, c)
	return c
}

// Update replaces one field of the criterion identified by id. Numeric fields
// are coerced from widget text; no range validation is applied.
func (r *Rubric) Update(id int, field Field, value string) (Criterion, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Criterion{}, fmt.Errorf("%w: id %d", ErrCriterionNotFound, id)
	}

	c := r.criteria[i]
	switch field {
	case FieldName:
		c.Name = value
	case FieldWeight:
		c.Weight = CoerceWeight(value)
	case FieldMaxScore:
		c.MaxScore = CoerceMaxScore(value)
	default:
		return Criterion{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	r.criteria[i] = c
	return c, nil
}

// Remove deletes the criterion with the given id.
func (r *Rubric) Remove(id int) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: id %d", ErrCriterionNotFound, id)
	}
	r.criteria = append(r.criteria[:i], r.criteria[i+1:]...)
	return nil
}

// TotalWeight sums the weights of all criteria.
func (r *Rubric) TotalWeight() float64 {
	var total float64
	for _, c := range r.criteria {
		total += c.Weight
	}
	return total
}

// WeightWarning returns a notice when the weights do not sum to 100, or an
// empty string when they do.
func (r *Rubric) WeightWarning() string {
	total := r.TotalWeight()
	if math.Abs(total-targetTotalWeight) < 1e-9 {
		return ""
	}
	return fmt.Sprintf("Total weight is %g%%, should equal 100%%", total)
}

func (r *Rubric) indexOf(id int) int {
	for i, c := range r.criteria {
		if c.ID == id {
			return i
		}
	}
	return -1
}
