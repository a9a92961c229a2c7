// Package tasks orchestrates the companion's user actions on top of the services and repositories.
//
// # Fallback chains
//
// Both the content loader and the partner-app resolver are an ordered list of attempts evaluated
// by [Chain]: each [Attempt] runs only after the previous one failed, the first success wins, and
// the terminal attempt runs only when every candidate is exhausted. Failures are logged, never
// surfaced, unless the terminal attempt itself fails.
//
// # Core Operations
//
//  1. [Loader.Load] : remote listing → manifest aggregate or per-item fetch → bundled fallback
//     with a banner message
//  2. [Resolver.Open] : scheme probe → store-app links → store web pages → marketplace search
//  3. [PlanService] : weekly template or partner plan; note edits and moves within the week
//  4. [DocumentCache.Ensure] : download-if-missing into the documents directory
//  5. [Assessment] : TouchPoint ratings and percentage
//  6. [IssueReport] : support mail body assembly
//
// # Progress Reporting
//
// Chains emit [ProgressUpdate] values on an optional channel. Sends are non-blocking; a slow or
// absent reader never stalls a chain.
package tasks
