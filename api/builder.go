package api

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	target  Target
	workers int
}

// WithTarget sets the backend.
func (b DriverBuilder) WithTarget(target Target) DriverBuilder {
	b.target = target
	return b
}

// WithWorkers sets how many functions are lowered at the same time.
func (b DriverBuilder) WithWorkers(n int) DriverBuilder {
	b.workers = n
	return b
}

// Build creates a driver.
func (b DriverBuilder) Build() Driver {
	if b.target == nil {
		panic("driver needs a target")
	}

	workers := b.workers
	if workers < 1 {
		workers = 1
	}

	return &driverImpl{
		target:  b.target,
		workers: workers,
	}
}
