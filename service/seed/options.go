package seed

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const (
	DefaultCategories = 10
	DefaultSuppliers  = 25
	DefaultWarehouses = 1000
	DefaultItems      = 100_000
	DefaultAttributes = 1_000_000
	DefaultBatchSize  = 1000
	// MaxBatchSize keeps the widest row (items_denormalized, 10 columns) under
	// SQLite's 32,766 bind-variable limit in a single multi-row INSERT.
	MaxBatchSize      = 3000
)

// Options configures a seed run.
type Options struct {
	Categories int `validate:"gte=0"`
	Suppliers  int `validate:"gte=0"`
	Warehouses int `validate:"gte=0"`
	Items      int `validate:"gte=0"`
	Attributes int `validate:"gte=0"`
	// BatchSize caps the rows handed to a single bulk insert. <= 0 means DefaultBatchSize.
	BatchSize int `validate:"gte=1,lte=3000"`
	// Seed drives names and id sampling. 0 picks a time-derived seed, reported in Result.Seed.
	Seed uint64
	// Partial stops after items: no attributes, no denormalization.
	Partial bool
	// SkipTruncate keeps existing rows; the run then appends.
	SkipTruncate bool
	// Atomic wraps the whole run in one transaction. Not supported by CopyWriter.
	Atomic bool
	Writer Writer             `validate:"-"`
	Logger logrus.FieldLogger `validate:"-"`
}

// DefaultOptions returns the full-size seed targets.
func DefaultOptions() Options {
	return Options{
		Categories: DefaultCategories,
		Suppliers:  DefaultSuppliers,
		Warehouses: DefaultWarehouses,
		Items:      DefaultItems,
		Attributes: DefaultAttributes,
		BatchSize:  DefaultBatchSize,
	}
}

// normalize fills defaults and validates opts against the target dialect.
func (o Options) normalize(dialect Dialect) (Options, error) {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Writer == nil {
		o.Writer = GormWriter{}
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if err := validator.New().Struct(o); err != nil {
		return o, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if _, isCopy := o.Writer.(CopyWriter); isCopy {
		if dialect != DialectPostgres {
			return o, fmt.Errorf("%w: copy writer needs postgres, store is %s", ErrInvalidOptions, dialect)
		}
		if o.Atomic {
			return o, fmt.Errorf("%w: copy writer cannot run atomically", ErrInvalidOptions)
		}
	}
	return o, nil
}
