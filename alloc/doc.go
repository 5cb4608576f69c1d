// Package alloc provides the priority-driven relief allocation core.
//
// # Reading Guide
//
// Start with these three files to understand the allocation kernel:
//   - household.go: Household raw attributes and the derived Profile
//   - estimator.go: exact and Bayesian attribute estimation strategies
//   - allocator.go: the greedy pass over shared budget and inventory
//
// # Architecture
//
// One pass flows Household records through an Estimator (derived counts and
// expectations), a Scorer (scalar priority), and a NeedPolicy (per-resource
// quantities), then commits greedily in processing order against the budget
// and catalogue availability. Records land in alloc/ledger, a pure data
// package with no dependency on alloc.
//
// Two callers share this core: an exact record-keeper (known age lists,
// size-scaled needs) and a stochastic simulator (noisy self-reports,
// Bayesian expectations, expected-size needs). Their behavioral differences
// are policy selections in a Scenario, never branches inside the allocator.
//
// # Key Interfaces
//
// The extension points are single-method interfaces with name factories:
//   - Estimator: raw attributes → Profile
//   - Scorer: Profile → priority score
//   - NeedPolicy: Profile → quantity per resource kind
//   - OrderPolicy: total processing order over the household set
//
// A pass is sequential by construction: a household late in the order must
// observe every earlier household's commits, so the allocator is never
// parallelized across households. Runner serializes whole passes.
package alloc
