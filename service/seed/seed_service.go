// Package seed fills the inventory schema with synthetic data and builds the
// denormalized items projection.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
	inventoryRepo "inventory.GO/model/repository/inventory"
)

// StepTiming is the elapsed time of one logged step.
type StepTiming struct {
	Name    string
	Elapsed time.Duration
}

// Result holds counters and timing from a seed run. Counts are rows handed to
// the store; after a failure they cover the batches that went through.
type Result struct {
	Seed         uint64
	Categories   int
	Suppliers    int
	Warehouses   int
	Items        int
	Attributes   int
	Denormalized int
	// Skipped counts items left out of the projection for unresolved references.
	Skipped   int
	Batches   int
	Steps     []StepTiming
	TotalTime time.Duration
}

type seeder struct {
	db     *gorm.DB
	opts   Options
	log    logrus.FieldLogger
	gen    *generator
	now    time.Time
	result *Result
}

// Run executes the seed procedure: truncate, references, items, attributes,
// denormalize. Partial stops after items. The first failure aborts the run and
// is returned as a *PhaseError together with the partial Result.
func Run(ctx context.Context, db *gorm.DB, opts Options) (*Result, error) {
	start := time.Now()
	opts, err := opts.normalize(DetectDialect(db))
	if err != nil {
		return nil, err
	}
	seed := ResolveSeed(opts.Seed)
	s := &seeder{
		opts:   opts,
		log:    opts.Logger.WithField("seed", seed),
		gen:    newGenerator(seed),
		now:    time.Now(),
		result: &Result{Seed: seed},
	}

	if opts.Atomic {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.run(ctx, tx)
		})
	} else {
		err = s.run(ctx, db)
	}
	s.result.TotalTime = time.Since(start)
	return s.result, err
}

func (s *seeder) run(ctx context.Context, db *gorm.DB) error {
	s.db = db

	if !s.opts.SkipTruncate {
		s.log.Info("Truncating database...")
		if err := TruncateAll(ctx, db); err != nil {
			return err
		}
		s.log.Info("Database truncated.")
	}

	steps := []struct {
		name  string
		title string
		fn    func(context.Context) error
	}{
		{"categories", "Categories", s.createCategories},
		{"suppliers", "Suppliers", s.createSuppliers},
		{"warehouses", "Warehouses", s.createWarehouses},
		{"items", "Items", s.createItems},
		{"item attributes", "Item attributes", s.createAttributes},
		{"denormalized items", "Denormalized items", s.createDenormalized},
	}
	if s.opts.Partial {
		steps = steps[:4]
	}
	for _, st := range steps {
		if err := s.step(ctx, st.name, st.title, st.fn); err != nil {
			return err
		}
	}
	return nil
}

// step logs "Creating <name>." and "<title> created." around fn.
func (s *seeder) step(ctx context.Context, name, title string, fn func(context.Context) error) error {
	s.log.Infof("Creating %s.", name)
	start := time.Now()
	if err := fn(ctx); err != nil {
		s.log.WithError(err).Errorf("Creating %s failed.", name)
		return err
	}
	elapsed := time.Since(start)
	s.result.Steps = append(s.result.Steps, StepTiming{Name: name, Elapsed: elapsed})
	s.log.WithField("elapsed", elapsed.Round(time.Millisecond)).Infof("%s created.", title)
	return nil
}

// Reference rows are written one per call.

func (s *seeder) createCategories(ctx context.Context) error {
	for i := 0; i < s.opts.Categories; i++ {
		c := inventoryEntity.Category{Name: s.gen.categoryName(), CreatedAt: s.now, UpdatedAt: s.now}
		if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
			return &PhaseError{Phase: PhaseReferences, Table: c.TableName(), Err: err}
		}
		s.result.Categories++
	}
	return nil
}

func (s *seeder) createSuppliers(ctx context.Context) error {
	for i := 0; i < s.opts.Suppliers; i++ {
		sup := inventoryEntity.Supplier{Name: s.gen.supplierName(), CreatedAt: s.now, UpdatedAt: s.now}
		if err := s.db.WithContext(ctx).Create(&sup).Error; err != nil {
			return &PhaseError{Phase: PhaseReferences, Table: sup.TableName(), Err: err}
		}
		s.result.Suppliers++
	}
	return nil
}

func (s *seeder) createWarehouses(ctx context.Context) error {
	for i := 0; i < s.opts.Warehouses; i++ {
		w := inventoryEntity.Warehouse{Name: s.gen.warehouseName(), Location: s.gen.location(), CreatedAt: s.now, UpdatedAt: s.now}
		if err := s.db.WithContext(ctx).Create(&w).Error; err != nil {
			return &PhaseError{Phase: PhaseReferences, Table: w.TableName(), Err: err}
		}
		s.result.Warehouses++
	}
	return nil
}

func (s *seeder) createItems(ctx context.Context) error {
	table := inventoryEntity.Item{}.TableName()
	if s.opts.Items == 0 {
		return nil
	}
	categoryIDs, err := inventoryRepo.IDs(ctx, s.db, &inventoryEntity.Category{})
	if err != nil {
		return &PhaseError{Phase: PhaseItems, Table: table, Err: fmt.Errorf("load category ids: %w", err)}
	}
	supplierIDs, err := inventoryRepo.IDs(ctx, s.db, &inventoryEntity.Supplier{})
	if err != nil {
		return &PhaseError{Phase: PhaseItems, Table: table, Err: fmt.Errorf("load supplier ids: %w", err)}
	}
	warehouseIDs, err := inventoryRepo.IDs(ctx, s.db, &inventoryEntity.Warehouse{})
	if err != nil {
		return &PhaseError{Phase: PhaseItems, Table: table, Err: fmt.Errorf("load warehouse ids: %w", err)}
	}
	if len(categoryIDs) == 0 || len(supplierIDs) == 0 || len(warehouseIDs) == 0 {
		return &PhaseError{Phase: PhaseItems, Table: table, Err: fmt.Errorf("%w: categories=%d suppliers=%d warehouses=%d",
			ErrNoCandidates, len(categoryIDs), len(supplierIDs), len(warehouseIDs))}
	}

	items := make([]inventoryEntity.Item, s.opts.Items)
	for i := range items {
		items[i] = inventoryEntity.Item{
			Name:        s.gen.productName(),
			CategoryID:  s.gen.pick(categoryIDs),
			SupplierID:  s.gen.pick(supplierIDs),
			WarehouseID: s.gen.pick(warehouseIDs),
			CreatedAt:   s.now,
			UpdatedAt:   s.now,
		}
	}

	batches, err := writeChunked(ctx, s.db, s.opts.Writer, itemRows(items), s.opts.BatchSize, PhaseItems)
	s.result.Batches += batches
	s.result.Items += min(batches*s.opts.BatchSize, len(items))
	return err
}

func (s *seeder) createAttributes(ctx context.Context) error {
	table := inventoryEntity.ItemAttribute{}.TableName()
	if s.opts.Attributes == 0 {
		return nil
	}
	itemIDs, err := inventoryRepo.IDs(ctx, s.db, &inventoryEntity.Item{})
	if err != nil {
		return &PhaseError{Phase: PhaseAttributes, Table: table, Err: fmt.Errorf("load item ids: %w", err)}
	}
	if len(itemIDs) == 0 {
		return &PhaseError{Phase: PhaseAttributes, Table: table, Err: fmt.Errorf("%w: items=0", ErrNoCandidates)}
	}

	attrs := make([]inventoryEntity.ItemAttribute, s.opts.Attributes)
	for i := range attrs {
		attrs[i] = inventoryEntity.ItemAttribute{
			AttributeName:  s.gen.attributeWord(),
			AttributeValue: s.gen.attributeWord(),
			ItemID:         s.gen.pick(itemIDs),
			CreatedAt:      s.now,
			UpdatedAt:      s.now,
		}
	}

	batches, err := writeChunked(ctx, s.db, s.opts.Writer, attributeRows(attrs), s.opts.BatchSize, PhaseAttributes)
	s.result.Batches += batches
	s.result.Attributes += min(batches*s.opts.BatchSize, len(attrs))
	return err
}

func (s *seeder) createDenormalized(ctx context.Context) error {
	res, err := Denormalize(ctx, s.db, DenormalizeOptions{
		BatchSize: s.opts.BatchSize,
		Writer:    s.opts.Writer,
		Logger:    s.log,
	})
	if res != nil {
		s.result.Denormalized += res.Written
		s.result.Skipped += res.Skipped
		s.result.Batches += res.Batches
	}
	return err
}
