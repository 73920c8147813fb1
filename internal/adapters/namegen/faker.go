// Package namegen generates fake rider names.
package namegen

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/baditaflorin/monegros/internal/ports"
)

// DefaultSeed keeps anonymized output reproducible between runs.
const DefaultSeed = 42

// Faker draws full names from a seeded gofakeit source. It is not safe for
// concurrent use.
type Faker struct {
	faker *gofakeit.Faker
}

// New creates a generator seeded with seed.
func New(seed uint64) ports.NameGenerator {
	return &Faker{faker: gofakeit.New(seed)}
}

// Name returns a "First Last" name.
func (f *Faker) Name() string {
	return f.faker.Name()
}
