// Package pipeline orchestrates file discovery, record building, the
// naming transform, collision resolution and plan derivation, and the
// batch summary.
//
// Types:
//   - Env (filesystem, extractor, logger, metrics, progress sinks)
//   - Result (plans + RunStats)
//   - RunStats (Total, NeedRename, Unchanged, Failed, MetadataErrors, TotalBytes)
//
// Functions:
//   - Run(ctx, cfg, env) → Result
//     discover → build records (parallel) → Prepare + Apply transform
//     (parallel) → ResolveCollisions + DerivePlan (parallel) → stats.
//   - Inspect(ctx, cfg, env) → records without any transform.
//   - Discover(fs, paths, recursive) → sorted unique file paths.
package pipeline
