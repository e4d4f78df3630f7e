package builder

// Package is one buildable unit handed to a strategy.
type Package struct {
	Name string
	// Path is the absolute package source directory.
	Path string
	// Deps holds the dependency names declared in the package descriptor.
	Deps map[string]bool
}

// Strategy prepares a package and assembles the command lines for its
// external build tool. One implementation exists per package kind; the
// executor stays generic. Command assembly is pure string work with no
// side effects, so it can be inspected and tested without running anything.
type Strategy interface {
	Prepare(pkg *Package) error
	BuildCommand(pkg *Package, extraArgs []string) []string
	TestCommand(pkg *Package, extraArgs []string) []string
}

// Executor runs packages through a strategy: prepare, then hand the
// assembled command line to the runner.
type Executor struct {
	Strategy Strategy
	Runner   *Runner
}

// Build prepares pkg and runs its build command.
func (e *Executor) Build(pkg *Package, extraArgs []string) error {
	if err := e.Strategy.Prepare(pkg); err != nil {
		return err
	}
	return e.Runner.Run(e.Strategy.BuildCommand(pkg, extraArgs))
}

// Test runs pkg's test command. Tests are built by the build step, so no
// prepare is needed here.
func (e *Executor) Test(pkg *Package, extraArgs []string) error {
	return e.Runner.Run(e.Strategy.TestCommand(pkg, extraArgs))
}
