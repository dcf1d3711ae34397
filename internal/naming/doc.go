// Package naming holds the per-file rename model and the operations that
// change it: naming transforms, name collision resolution and rename plan
// derivation.
//
// Types:
//   - FileRecord: immutable identity plus the mutable NewName/NewExtension
//     proposal
//   - RenamePlan, Outcome
//   - Transform and its implementations (AddText, RemoveText, ReplaceText,
//     ChangeCase, Truncate, Sequence, ParentFolders, DateTime,
//     ImageDimensions, ExtensionChange)
//
// Functions:
//   - BuildRecord(ops, extractor, path) → *FileRecord
//   - FullName(base, ext) → base + "."-prefixed ext
//   - ResolveCollisions(records) → records with unique renamed names
//   - DerivePlan(record) → RenamePlan
//
// Transforms always start from the original name, so applying one twice
// gives the same proposal.
package naming
