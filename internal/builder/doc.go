// Package builder turns identified packages into external build-tool
// invocations. A Strategy bundles the prepare step and command assembly
// for one package kind; the Executor and Runner are kind-agnostic.
package builder
