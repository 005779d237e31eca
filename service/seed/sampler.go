package seed

import (
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// ResolveSeed returns seed, or a time-derived seed when seed is 0.
func ResolveSeed(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

// Sampler picks ids uniformly at random, with replacement.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns one element of ids. ids must not be empty.
func (s *Sampler) Pick(ids []uint) uint {
	return ids[s.rng.IntN(len(ids))]
}

// generator produces synthetic rows. Both the faker and the sampler derive
// from the same seed, so a given seed reproduces a run.
type generator struct {
	fake    *gofakeit.Faker
	sampler *Sampler
}

func newGenerator(seed uint64) *generator {
	return &generator{
		fake:    gofakeit.New(seed),
		sampler: NewSampler(seed),
	}
}

func (g *generator) categoryName() string  { return g.fake.BookGenre() }
func (g *generator) supplierName() string  { return g.fake.Company() }
func (g *generator) warehouseName() string { return g.fake.Company() }
func (g *generator) location() string      { return g.fake.Address().Address }
func (g *generator) productName() string   { return g.fake.ProductName() }
func (g *generator) attributeWord() string { return g.fake.LoremIpsumWord() }

// pick returns a pointer to a freshly sampled id.
func (g *generator) pick(ids []uint) *uint {
	id := g.sampler.Pick(ids)
	return &id
}
